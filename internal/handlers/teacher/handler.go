package teacher

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"campus/infras/otel"
	"campus/internal/domains/teacher/model"
	"campus/internal/domains/teacher/model/dto"
	"campus/internal/domains/teacher/service"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/validator"
	"campus/transport/http/response"
)

type Handler struct {
	service service.Teacher
	otel    otel.Otel
}

func New(service service.Teacher, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/teachers", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTeacher)
		routerGroup.Get("/", handler.GetTeachers)
		routerGroup.Get("/{id}", handler.GetTeacherByID)
		routerGroup.Patch("/{id}", handler.UpdateTeacher)
		routerGroup.Delete("/{id}", handler.DeleteTeacher)
	})
}

// CreateTeacher handles the creation of a new teacher.
// @Summary Create a new teacher
// @Description Create a new teacher with a unique email address.
// @Tags Teacher
// @Accept json
// @Produce json
// @Param request body dto.CreateTeacherRequest true "Create Teacher Request"
// @Success 201 {object} response.Data[dto.TeacherResponse] "Teacher created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/teachers [post]
func (handler *Handler) CreateTeacher(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTeacher")
	defer scope.End()

	req := dto.CreateTeacherRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	teacher, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create teacher")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Teacher created successfully")

	response.WithJSON(writer, http.StatusCreated, teacher)
}

// GetTeachers retrieves teachers filtered by email or specialty.
// @Summary Get all teachers
// @Description Retrieve teachers with optional filtering and pagination.
// @Tags Teacher
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param email query string false "Filter by email"
// @Param specialty query string false "Filter by specialty (partial match)"
// @Success 200 {object} response.Data[dto.GetTeachersResponse] "List of teachers"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/teachers [get]
func (handler *Handler) GetTeachers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTeachers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	query := r.URL.Query()

	if email := query.Get(model.FieldEmail); email != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldEmail,
			Operator: gDto.FilterOperatorEq,
			Value:    email,
			Table:    model.TableName,
		})
	}

	if specialty := query.Get(model.FieldSpecialty); specialty != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldSpecialty,
			Operator: gDto.FilterOperatorLike,
			Value:    specialty,
			Table:    model.TableName,
		})
	}

	teachers, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get teachers")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Teachers retrieved successfully")

	response.WithJSON(w, http.StatusOK, teachers)
}

// GetTeacherByID retrieves a teacher by their ID.
// @Summary Get a teacher by ID
// @Description Retrieve a teacher by their unique identifier.
// @Tags Teacher
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Data[dto.TeacherResponse] "Teacher details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/teachers/{id} [get]
func (handler *Handler) GetTeacherByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTeacherByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	teacher, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get teacher by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Teacher retrieved successfully")

	response.WithJSON(w, http.StatusOK, teacher)
}

// UpdateTeacher updates an existing teacher by their ID.
// @Summary Update a teacher by ID
// @Description Update the details of an existing teacher. Email changes are checked for uniqueness.
// @Tags Teacher
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param request body dto.UpdateTeacherRequest true "Update Teacher Request"
// @Success 200 {object} response.Message "Teacher updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/teachers/{id} [patch]
func (handler *Handler) UpdateTeacher(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTeacher")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateTeacherRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update teacher")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Teacher updated successfully")

	response.WithMessage(w, http.StatusOK, "Teacher updated successfully")
}

// DeleteTeacher deletes a teacher by their ID.
// @Summary Delete a teacher by ID
// @Description Delete a teacher using their unique identifier.
// @Tags Teacher
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Message "Teacher deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/teachers/{id} [delete]
func (handler *Handler) DeleteTeacher(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTeacher")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete teacher")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Teacher deleted successfully")

	response.WithMessage(w, http.StatusOK, "Teacher deleted successfully")
}
