package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"campus/config"
	"campus/infras/otel"
	"campus/internal/domains/program/model"
	"campus/internal/domains/program/model/dto"
	"campus/internal/domains/program/repository"
	teacherModel "campus/internal/domains/teacher/model"
	teacherRepository "campus/internal/domains/teacher/repository"
	"campus/shared"
	"campus/shared/cache"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/failure"
)

const (
	cacheGetProgram    = "program:get"
	cacheGetAllProgram = "program:gets"
	cacheCountProgram  = "program:count"
)

type Program interface {
	Create(ctx context.Context, req dto.CreateProgramRequest) (dto.ProgramResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetProgramsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ProgramResponse, error)
	Update(ctx context.Context, req dto.UpdateProgramRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Program
	teacherRepo teacherRepository.Teacher
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Program,
	teacherRepo teacherRepository.Teacher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Program {
	return &serviceImpl{
		repo:        repo,
		teacherRepo: teacherRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func filterByCode(code string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCode,
				Value:    code,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) checkResponsible(ctx context.Context, responsibleID string) error {
	if responsibleID == constant.Empty {
		return nil
	}

	exist, err := s.teacherRepo.Exist(ctx, shared.FilterByID(responsibleID, teacherModel.FieldID, teacherModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to check responsible teacher: %w", err)
	}

	if !exist {
		return failure.ReferenceNotFound(teacherModel.EntityName) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateProgramRequest) (res dto.ProgramResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	codeTaken, err := s.repo.Exist(ctx, filterByCode(req.Code))
	if err != nil {
		log.Error().Err(err).Msg("failed to check program code uniqueness")

		return res, fmt.Errorf("failed to check program code uniqueness: %w", err)
	}

	if codeTaken {
		return res, failure.Duplicate("a program with this code already exists") // nolint:wrapcheck
	}

	if err = s.checkResponsible(ctx, req.ResponsibleID); err != nil {
		log.Error().Err(err).Msg("responsible teacher check failed")

		return res, err
	}

	program := req.ToModel(shared.Actor(ctx))

	if err = s.repo.Insert(ctx, program); err != nil {
		log.Error().Err(err).Msg("failed to create program")

		return res, fmt.Errorf("failed to create program: %w", err)
	}

	res.FromModel(program)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllProgram)
		shared.InvalidateCaches(c, s.cache, cacheCountProgram)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetProgramsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllProgram, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for programs")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count programs")

		return res, fmt.Errorf("failed to count programs: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get programs")

		return res, fmt.Errorf("failed to get programs: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save programs to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountProgram, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for program count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count programs")

		return res, fmt.Errorf("failed to count programs: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save program count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ProgramResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetProgram, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for program")

		return res, nil
	}

	program, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get program")

		return res, fmt.Errorf("failed to get program: %w", err)
	}

	if program.ID == constant.Empty {
		return res, failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	res.FromModel(program)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save program to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateProgramRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateProgramRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get program for update")

		return fmt.Errorf("failed to get program for update: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	if req.Code != constant.Empty && req.Code != current.Code {
		codeTaken, err := s.repo.Exist(ctx, filterByCode(req.Code))
		if err != nil {
			log.Error().Err(err).Msg("failed to check program code uniqueness")

			return fmt.Errorf("failed to check program code uniqueness: %w", err)
		}

		if codeTaken {
			return failure.Duplicate("a program with this code already exists") // nolint:wrapcheck
		}
	}

	if err = s.checkResponsible(ctx, req.ResponsibleID); err != nil {
		log.Error().Err(err).Msg("responsible teacher check failed")

		return err
	}

	updatedFields := shared.TransformFields(req, shared.Actor(ctx))
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update program")

		return fmt.Errorf("failed to update program: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetProgram, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete program from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllProgram)
		shared.InvalidateCaches(c, s.cache, cacheCountProgram)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if program exists")

		return fmt.Errorf("failed to check if program exists: %w", err)
	}

	if !exist {
		log.Error().Msg("program not found")

		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete program")

		return fmt.Errorf("failed to delete program: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetProgram, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete program from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllProgram)
		shared.InvalidateCaches(c, s.cache, cacheCountProgram)
	}()

	return nil
}
