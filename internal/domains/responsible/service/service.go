package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"campus/infras/otel"
	programModel "campus/internal/domains/program/model"
	programDto "campus/internal/domains/program/model/dto"
	programRepository "campus/internal/domains/program/repository"
	"campus/internal/domains/responsible/model/dto"
	teacherModel "campus/internal/domains/teacher/model"
	teacherDto "campus/internal/domains/teacher/model/dto"
	teacherRepository "campus/internal/domains/teacher/repository"
	teacherService "campus/internal/domains/teacher/service"
	"campus/shared"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/failure"
)

// Responsible exposes the operations gated on derived program
// ownership. Ownership is recomputed on every call so it can never
// drift from the programs table.
type Responsible interface {
	Status(ctx context.Context, teacherID string) (dto.ResponsibleStatusResponse, error)
	ProgramsOwned(ctx context.Context, teacherID string, req gDto.QueryParams) (programDto.GetProgramsResponse, error)
	NonResponsibleTeachers(ctx context.Context, req gDto.QueryParams) (teacherDto.GetTeachersResponse, error)
	CreateTeacher(ctx context.Context, actorID string, req teacherDto.CreateTeacherRequest) (teacherDto.TeacherResponse, error)
	UpdateTeacher(ctx context.Context, actorID string, req teacherDto.UpdateTeacherRequest, id string) error
	DeleteTeacher(ctx context.Context, actorID, id string) error
}

type serviceImpl struct {
	teacherSvc  teacherService.Teacher
	teacherRepo teacherRepository.Teacher
	programRepo programRepository.Program
	otel        otel.Otel
}

func New(
	teacherSvc teacherService.Teacher,
	teacherRepo teacherRepository.Teacher,
	programRepo programRepository.Program,
	otel otel.Otel,
) Responsible {
	return &serviceImpl{
		teacherSvc:  teacherSvc,
		teacherRepo: teacherRepo,
		programRepo: programRepo,
		otel:        otel,
	}
}

func filterByResponsible(teacherID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    programModel.FieldResponsibleID,
				Value:    teacherID,
				Operator: gDto.FilterOperatorEq,
				Table:    programModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) isResponsible(ctx context.Context, teacherID string) (bool, error) {
	exist, err := s.programRepo.Exist(ctx, filterByResponsible(teacherID))
	if err != nil {
		return false, fmt.Errorf("failed to check program ownership: %w", err)
	}

	return exist, nil
}

func (s *serviceImpl) Status(ctx context.Context, teacherID string) (res dto.ResponsibleStatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Status")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.teacherRepo.Exist(ctx, shared.FilterByID(teacherID, teacherModel.FieldID, teacherModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if teacher exists")

		return res, fmt.Errorf("failed to check if teacher exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound(teacherModel.EntityName) // nolint:wrapcheck
	}

	owned, err := s.programRepo.Count(ctx, filterByResponsible(teacherID))
	if err != nil {
		log.Error().Err(err).Msg("failed to count owned programs")

		return res, fmt.Errorf("failed to count owned programs: %w", err)
	}

	res.TeacherID = teacherID
	res.Responsible = owned > 0
	res.ProgramsOwned = owned

	return res, nil
}

func (s *serviceImpl) ProgramsOwned(ctx context.Context, teacherID string, req gDto.QueryParams) (res programDto.GetProgramsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ProgramsOwned")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := filterByResponsible(teacherID)

	total, err := s.programRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count owned programs")

		return res, fmt.Errorf("failed to count owned programs: %w", err)
	}

	models, err := s.programRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get owned programs")

		return res, fmt.Errorf("failed to get owned programs: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

// NonResponsibleTeachers lists teachers that no program references as
// responsible.
func (s *serviceImpl) NonResponsibleTeachers(ctx context.Context, req gDto.QueryParams) (res teacherDto.GetTeachersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".NonResponsibleTeachers")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Operator: gDto.FilterPlainQuery,
				Value: fmt.Sprintf(
					"%s.%s NOT IN (SELECT %s FROM %s)",
					teacherModel.TableName, teacherModel.FieldID,
					programModel.FieldResponsibleID, programModel.TableName,
				),
			},
		},
	}

	return s.teacherSvc.GetAll(ctx, req, filter) // nolint:wrapcheck
}

func (s *serviceImpl) CreateTeacher(ctx context.Context, actorID string, req teacherDto.CreateTeacherRequest) (res teacherDto.TeacherResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateTeacher")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err := s.requireResponsible(ctx, actorID); err != nil {
		return res, err
	}

	return s.teacherSvc.Create(ctx, req) // nolint:wrapcheck
}

func (s *serviceImpl) UpdateTeacher(ctx context.Context, actorID string, req teacherDto.UpdateTeacherRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateTeacher")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err := s.requireResponsible(ctx, actorID); err != nil {
		return err
	}

	return s.teacherSvc.Update(ctx, req, id) // nolint:wrapcheck
}

// DeleteTeacher removes a teacher on behalf of a responsible actor. A
// teacher still referenced by a program cannot be removed; reassign the
// program first.
func (s *serviceImpl) DeleteTeacher(ctx context.Context, actorID, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteTeacher")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err := s.requireResponsible(ctx, actorID); err != nil {
		return err
	}

	targetResponsible, err := s.isResponsible(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to check target program ownership")

		return err
	}

	if targetResponsible {
		return failure.BadRequestFromString("teacher is still responsible for one or more programs") // nolint:wrapcheck
	}

	return s.teacherSvc.Delete(ctx, id) // nolint:wrapcheck
}

func (s *serviceImpl) requireResponsible(ctx context.Context, actorID string) error {
	responsible, err := s.isResponsible(ctx, actorID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check actor program ownership")

		return err
	}

	if !responsible {
		return failure.Forbidden("only a responsible teacher can manage teachers") // nolint:wrapcheck
	}

	return nil
}
