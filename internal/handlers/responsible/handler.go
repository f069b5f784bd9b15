package responsible

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"campus/infras/otel"
	"campus/internal/domains/responsible/service"
	teacherDto "campus/internal/domains/teacher/model/dto"
	"campus/shared"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/validator"
	"campus/transport/http/response"
)

// Handler exposes the derived program-ownership operations. The acting
// teacher is identified by the X-Actor header; ownership is recomputed
// from the programs table on every call.
type Handler struct {
	service service.Responsible
	otel    otel.Otel
}

func New(service service.Responsible, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/responsibles", func(routerGroup chi.Router) {
		routerGroup.Get("/candidates", handler.GetNonResponsibleTeachers)
		routerGroup.Get("/{id}", handler.GetStatus)
		routerGroup.Get("/{id}/programs", handler.GetProgramsOwned)
		routerGroup.Post("/teachers", handler.CreateTeacher)
		routerGroup.Patch("/teachers/{id}", handler.UpdateTeacher)
		routerGroup.Delete("/teachers/{id}", handler.DeleteTeacher)
	})
}

// GetStatus reports whether a teacher is responsible for any program.
// @Summary Get the responsibility status of a teacher
// @Description Report whether the teacher owns at least one program, and how many.
// @Tags Responsible
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Data[dto.ResponsibleStatusResponse] "Responsibility status"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/responsibles/{id} [get]
func (handler *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	status, err := handler.service.Status(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get responsibility status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Responsibility status retrieved successfully")

	response.WithJSON(w, http.StatusOK, status)
}

// GetProgramsOwned lists the programs a teacher is responsible for.
// @Summary Get the programs owned by a teacher
// @Description Retrieve every program referencing the teacher as responsible.
// @Tags Responsible
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetProgramsResponse] "Programs owned"
// @Failure 500 {object} response.Error
// @Router /v1/responsibles/{id}/programs [get]
func (handler *Handler) GetProgramsOwned(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProgramsOwned")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	programs, err := handler.service.ProgramsOwned(ctx, id, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get owned programs")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Owned programs retrieved successfully")

	response.WithJSON(w, http.StatusOK, programs)
}

// GetNonResponsibleTeachers lists teachers that own no program.
// @Summary Get non-responsible teachers
// @Description Retrieve every teacher that no program references as responsible.
// @Tags Responsible
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetTeachersResponse] "Non-responsible teachers"
// @Failure 500 {object} response.Error
// @Router /v1/responsibles/candidates [get]
func (handler *Handler) GetNonResponsibleTeachers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNonResponsibleTeachers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	teachers, err := handler.service.NonResponsibleTeachers(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get non-responsible teachers")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Non-responsible teachers retrieved successfully")

	response.WithJSON(w, http.StatusOK, teachers)
}

// CreateTeacher creates a teacher on behalf of a responsible actor.
// @Summary Create a teacher as a responsible
// @Description Create a teacher. The acting teacher (X-Actor header) must be responsible for at least one program.
// @Tags Responsible
// @Accept json
// @Produce json
// @Param X-Actor header string true "Acting teacher ID"
// @Param request body teacherDto.CreateTeacherRequest true "Create Teacher Request"
// @Success 201 {object} response.Data[dto.TeacherResponse] "Teacher created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/responsibles/teachers [post]
func (handler *Handler) CreateTeacher(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTeacher")
	defer scope.End()

	req := teacherDto.CreateTeacherRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	teacher, err := handler.service.CreateTeacher(ctx, shared.Actor(ctx), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create teacher as responsible")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Teacher created successfully by responsible")

	response.WithJSON(w, http.StatusCreated, teacher)
}

// UpdateTeacher updates a teacher on behalf of a responsible actor.
// @Summary Update a teacher as a responsible
// @Description Update a teacher. The acting teacher (X-Actor header) must be responsible for at least one program.
// @Tags Responsible
// @Accept json
// @Produce json
// @Param X-Actor header string true "Acting teacher ID"
// @Param id path string true "Teacher ID"
// @Param request body teacherDto.UpdateTeacherRequest true "Update Teacher Request"
// @Success 200 {object} response.Message "Teacher updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/responsibles/teachers/{id} [patch]
func (handler *Handler) UpdateTeacher(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTeacher")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := teacherDto.UpdateTeacherRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateTeacher(ctx, shared.Actor(ctx), req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update teacher as responsible")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Teacher updated successfully by responsible")

	response.WithMessage(w, http.StatusOK, "Teacher updated successfully")
}

// DeleteTeacher removes a teacher on behalf of a responsible actor.
// @Summary Delete a teacher as a responsible
// @Description Delete a teacher. The target must not be responsible for any program.
// @Tags Responsible
// @Accept json
// @Produce json
// @Param X-Actor header string true "Acting teacher ID"
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Message "Teacher deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/responsibles/teachers/{id} [delete]
func (handler *Handler) DeleteTeacher(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTeacher")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.DeleteTeacher(ctx, shared.Actor(ctx), id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete teacher as responsible")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Teacher deleted successfully by responsible")

	response.WithMessage(w, http.StatusOK, "Teacher deleted successfully")
}
