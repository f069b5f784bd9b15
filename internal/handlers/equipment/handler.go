package equipment

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"campus/infras/otel"
	bookingModel "campus/internal/domains/booking/model"
	"campus/internal/domains/equipment/model"
	"campus/internal/domains/equipment/model/dto"
	"campus/internal/domains/equipment/service"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/failure"
	"campus/shared/validator"
	"campus/transport/http/response"
)

type Handler struct {
	service service.Equipment
	otel    otel.Otel
}

func New(service service.Equipment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/equipments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateEquipment)
		routerGroup.Get("/", handler.GetEquipments)
		routerGroup.Get("/free", handler.GetFreeEquipments)
		routerGroup.Get("/{id}", handler.GetEquipmentByID)
		routerGroup.Patch("/{id}", handler.UpdateEquipment)
		routerGroup.Patch("/{id}/condition", handler.UpdateEquipmentCondition)
		routerGroup.Patch("/{id}/location", handler.RelocateEquipment)
		routerGroup.Patch("/{id}/availability", handler.SetEquipmentAvailability)
		routerGroup.Delete("/{id}", handler.DeleteEquipment)
	})
}

// CreateEquipment handles the creation of a new equipment item.
// @Summary Create a new equipment item
// @Description Create a computer or video projector with its variant attributes.
// @Tags Equipment
// @Accept json
// @Produce json
// @Param request body dto.CreateEquipmentRequest true "Create Equipment Request"
// @Success 201 {object} response.Data[dto.EquipmentResponse] "Equipment created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/equipments [post]
func (handler *Handler) CreateEquipment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateEquipment")
	defer scope.End()

	req := dto.CreateEquipmentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	equipment, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create equipment")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Equipment created successfully")

	response.WithJSON(writer, http.StatusCreated, equipment)
}

// GetEquipments retrieves equipment filtered by type, availability, condition or location.
// @Summary Get all equipment
// @Description Retrieve equipment items with optional filtering and pagination.
// @Tags Equipment
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param code query string false "Filter by equipment code"
// @Param equipment_type query string false "Filter by variant (computer, video_projector)"
// @Param available query boolean false "Filter by availability flag"
// @Param condition query string false "Filter by condition (good, fair, faulty)"
// @Param location query string false "Filter by location (partial match)"
// @Success 200 {object} response.Data[dto.GetEquipmentsResponse] "List of equipment"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/equipments [get]
func (handler *Handler) GetEquipments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEquipments")
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
	appendEq(model.FieldType, query.Get(model.FieldType))
	appendEq(model.FieldAvailable, query.Get(model.FieldAvailable))
	appendEq(model.FieldBrand, query.Get(model.FieldBrand))
	appendEq(model.FieldCondition, query.Get(model.FieldCondition))

	if location := query.Get(model.FieldLocation); location != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldLocation,
			Operator: gDto.FilterOperatorLike,
			Value:    location,
			Table:    model.TableName,
		})
	}

	equipments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get equipments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Equipments retrieved successfully")

	response.WithJSON(w, http.StatusOK, equipments)
}

// GetFreeEquipments lists available equipment with no overlapping booking on a slot.
// @Summary Get free equipment for a time slot
// @Description Retrieve equipment that is available and has no conflicting booking on the given day and interval.
// @Tags Equipment
// @Accept json
// @Produce json
// @Param day query string true "Day (YYYY-MM-DD)"
// @Param start_time query string true "Start time (HH:MM)"
// @Param end_time query string true "End time (HH:MM)"
// @Success 200 {object} response.Data[dto.FreeEquipmentsResponse] "List of free equipment"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/equipments/free [get]
func (handler *Handler) GetFreeEquipments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFreeEquipments")
	defer scope.End()

	query := r.URL.Query()

	req := dto.FreeEquipmentsRequest{
		Day:       query.Get(bookingModel.FieldDay),
		StartTime: query.Get(bookingModel.FieldStartTime),
		EndTime:   query.Get(bookingModel.FieldEndTime),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate query parameters")

		response.WithError(w, err)

		return
	}

	equipments, err := handler.service.FreeForInterval(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get free equipments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Free equipments retrieved successfully")

	response.WithJSON(w, http.StatusOK, equipments)
}

// GetEquipmentByID retrieves an equipment item by its ID.
// @Summary Get an equipment item by ID
// @Description Retrieve an equipment item by its unique identifier.
// @Tags Equipment
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Success 200 {object} response.Data[dto.EquipmentResponse] "Equipment details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/equipments/{id} [get]
func (handler *Handler) GetEquipmentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEquipmentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	equipment, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get equipment by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Equipment retrieved successfully")

	response.WithJSON(w, http.StatusOK, equipment)
}

// UpdateEquipment updates the shared fields of an equipment item.
// @Summary Update an equipment item by ID
// @Description Update the shared details of an existing equipment item.
// @Tags Equipment
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Param request body dto.UpdateEquipmentRequest true "Update Equipment Request"
// @Success 200 {object} response.Message "Equipment updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/equipments/{id} [patch]
func (handler *Handler) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateEquipment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateEquipmentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update equipment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Equipment updated successfully")

	response.WithMessage(w, http.StatusOK, "Equipment updated successfully")
}

// UpdateEquipmentCondition updates the condition of an equipment item.
// @Summary Update equipment condition
// @Description Set the condition of an equipment item. A faulty condition also marks the item unavailable.
// @Tags Equipment
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Param request body dto.UpdateConditionRequest true "Update Condition Request"
// @Success 200 {object} response.Message "Equipment condition updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/equipments/{id}/condition [patch]
func (handler *Handler) UpdateEquipmentCondition(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateEquipmentCondition")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateConditionRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateCondition(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update equipment condition")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Equipment condition updated successfully")

	response.WithMessage(w, http.StatusOK, "Equipment condition updated successfully")
}

// RelocateEquipment updates the location of an equipment item.
// @Summary Relocate an equipment item
// @Description Move an equipment item to a new location.
// @Tags Equipment
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Param request body dto.RelocateEquipmentRequest true "Relocate Equipment Request"
// @Success 200 {object} response.Message "Equipment relocated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/equipments/{id}/location [patch]
func (handler *Handler) RelocateEquipment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RelocateEquipment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.RelocateEquipmentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Relocate(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to relocate equipment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Equipment relocated successfully")

	response.WithMessage(w, http.StatusOK, "Equipment relocated successfully")
}

// SetEquipmentAvailability toggles the availability flag of an equipment item.
// @Summary Set equipment availability
// @Description Mark an equipment item as available or unavailable for booking. A faulty item cannot be made available.
// @Tags Equipment
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Param available query boolean true "Availability flag"
// @Success 200 {object} response.Message "Equipment availability updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/equipments/{id}/availability [patch]
func (handler *Handler) SetEquipmentAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetEquipmentAvailability")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	available, err := strconv.ParseBool(r.URL.Query().Get(model.FieldAvailable))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse availability flag")

		response.WithError(w, failure.BadRequestFromString("available must be a boolean"))

		return
	}

	if err := handler.service.SetAvailability(ctx, id, available); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set equipment availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Equipment availability updated successfully")

	response.WithMessage(w, http.StatusOK, "Equipment availability updated successfully")
}

// DeleteEquipment deletes an equipment item by its ID.
// @Summary Delete an equipment item by ID
// @Description Delete an equipment item using its unique identifier.
// @Tags Equipment
// @Accept json
// @Produce json
// @Param id path string true "Equipment ID"
// @Success 200 {object} response.Message "Equipment deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/equipments/{id} [delete]
func (handler *Handler) DeleteEquipment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteEquipment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete equipment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Equipment deleted successfully")

	response.WithMessage(w, http.StatusOK, "Equipment deleted successfully")
}
