package program

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"campus/infras/otel"
	"campus/internal/domains/program/model"
	"campus/internal/domains/program/model/dto"
	"campus/internal/domains/program/service"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/validator"
	"campus/transport/http/response"
)

type Handler struct {
	service service.Program
	otel    otel.Otel
}

func New(service service.Program, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/programs", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateProgram)
		routerGroup.Get("/", handler.GetPrograms)
		routerGroup.Get("/{id}", handler.GetProgramByID)
		routerGroup.Patch("/{id}", handler.UpdateProgram)
		routerGroup.Delete("/{id}", handler.DeleteProgram)
	})
}

// CreateProgram handles the creation of a new program.
// @Summary Create a new program
// @Description Create a program with a unique code and a responsible teacher.
// @Tags Program
// @Accept json
// @Produce json
// @Param request body dto.CreateProgramRequest true "Create Program Request"
// @Success 201 {object} response.Data[dto.ProgramResponse] "Program created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/programs [post]
func (handler *Handler) CreateProgram(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateProgram")
	defer scope.End()

	req := dto.CreateProgramRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	program, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create program")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Program created successfully")

	response.WithJSON(writer, http.StatusCreated, program)
}

// GetPrograms retrieves programs filtered by code, level or responsible teacher.
// @Summary Get all programs
// @Description Retrieve programs with optional filtering and pagination.
// @Tags Program
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param code query string false "Filter by program code"
// @Param level query string false "Filter by level"
// @Param responsible_id query string false "Filter by responsible teacher ID"
// @Success 200 {object} response.Data[dto.GetProgramsResponse] "List of programs"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/programs [get]
func (handler *Handler) GetPrograms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPrograms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	appendEq := func(field, value string) {
		if value == "" {
			return
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    field,
			Operator: gDto.FilterOperatorEq,
			Value:    value,
			Table:    model.TableName,
		})
	}

	query := r.URL.Query()

	appendEq(model.FieldCode, query.Get(model.FieldCode))
	appendEq(model.FieldLevel, query.Get(model.FieldLevel))
	appendEq(model.FieldResponsibleID, query.Get(model.FieldResponsibleID))

	programs, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get programs")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Programs retrieved successfully")

	response.WithJSON(w, http.StatusOK, programs)
}

// GetProgramByID retrieves a program by its ID.
// @Summary Get a program by ID
// @Description Retrieve a program by its unique identifier.
// @Tags Program
// @Accept json
// @Produce json
// @Param id path string true "Program ID"
// @Success 200 {object} response.Data[dto.ProgramResponse] "Program details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/programs/{id} [get]
func (handler *Handler) GetProgramByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProgramByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	program, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get program by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Program retrieved successfully")

	response.WithJSON(w, http.StatusOK, program)
}

// UpdateProgram updates an existing program by its ID.
// @Summary Update a program by ID
// @Description Update the details of an existing program. Code changes are checked for uniqueness and the responsible teacher must exist.
// @Tags Program
// @Accept json
// @Produce json
// @Param id path string true "Program ID"
// @Param request body dto.UpdateProgramRequest true "Update Program Request"
// @Success 200 {object} response.Message "Program updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/programs/{id} [patch]
func (handler *Handler) UpdateProgram(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateProgram")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateProgramRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update program")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Program updated successfully")

	response.WithMessage(w, http.StatusOK, "Program updated successfully")
}

// DeleteProgram deletes a program by its ID.
// @Summary Delete a program by ID
// @Description Delete a program using its unique identifier.
// @Tags Program
// @Accept json
// @Produce json
// @Param id path string true "Program ID"
// @Success 200 {object} response.Message "Program deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/programs/{id} [delete]
func (handler *Handler) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteProgram")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete program")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Program deleted successfully")

	response.WithMessage(w, http.StatusOK, "Program deleted successfully")
}
