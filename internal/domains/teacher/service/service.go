package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"campus/config"
	"campus/infras/otel"
	"campus/internal/domains/teacher/model"
	"campus/internal/domains/teacher/model/dto"
	"campus/internal/domains/teacher/repository"
	"campus/shared"
	"campus/shared/cache"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/failure"
)

const (
	cacheGetTeacher    = "teacher:get"
	cacheGetAllTeacher = "teacher:gets"
	cacheCountTeacher  = "teacher:count"
)

type Teacher interface {
	Create(ctx context.Context, req dto.CreateTeacherRequest) (dto.TeacherResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTeachersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.TeacherResponse, error)
	Update(ctx context.Context, req dto.UpdateTeacherRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Teacher
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Teacher, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Teacher {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func filterByEmail(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Value:    email,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTeacherRequest) (res dto.TeacherResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Email != constant.Empty {
		emailTaken, err := s.repo.Exist(ctx, filterByEmail(req.Email))
		if err != nil {
			log.Error().Err(err).Msg("failed to check teacher email uniqueness")

			return res, fmt.Errorf("failed to check teacher email uniqueness: %w", err)
		}

		if emailTaken {
			return res, failure.Duplicate("a teacher with this email already exists") // nolint:wrapcheck
		}
	}

	teacher := req.ToModel(shared.Actor(ctx))

	if err = s.repo.Insert(ctx, teacher); err != nil {
		log.Error().Err(err).Msg("failed to create teacher")

		return res, fmt.Errorf("failed to create teacher: %w", err)
	}

	res.FromModel(teacher)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTeacher)
		shared.InvalidateCaches(c, s.cache, cacheCountTeacher)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTeachersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTeacher, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for teachers")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count teachers")

		return res, fmt.Errorf("failed to count teachers: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get teachers")

		return res, fmt.Errorf("failed to get teachers: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save teachers to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountTeacher, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for teacher count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count teachers")

		return res, fmt.Errorf("failed to count teachers: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save teacher count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TeacherResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetTeacher, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for teacher")

		return res, nil
	}

	teacher, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get teacher")

		return res, fmt.Errorf("failed to get teacher: %w", err)
	}

	if teacher.ID == constant.Empty {
		return res, failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	res.FromModel(teacher)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save teacher to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTeacherRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateTeacherRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get teacher for update")

		return fmt.Errorf("failed to get teacher for update: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	if req.Email != constant.Empty && req.Email != current.Email {
		emailTaken, err := s.repo.Exist(ctx, filterByEmail(req.Email))
		if err != nil {
			log.Error().Err(err).Msg("failed to check teacher email uniqueness")

			return fmt.Errorf("failed to check teacher email uniqueness: %w", err)
		}

		if emailTaken {
			return failure.Duplicate("a teacher with this email already exists") // nolint:wrapcheck
		}
	}

	updatedFields := shared.TransformFields(req, shared.Actor(ctx))
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update teacher")

		return fmt.Errorf("failed to update teacher: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTeacher, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete teacher from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTeacher)
		shared.InvalidateCaches(c, s.cache, cacheCountTeacher)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if teacher exists")

		return fmt.Errorf("failed to check if teacher exists: %w", err)
	}

	if !exist {
		log.Error().Msg("teacher not found")

		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete teacher")

		return fmt.Errorf("failed to delete teacher: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTeacher, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete teacher from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTeacher)
		shared.InvalidateCaches(c, s.cache, cacheCountTeacher)
	}()

	return nil
}
