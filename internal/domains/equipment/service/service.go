package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"campus/config"
	"campus/infras/otel"
	"campus/internal/domains/equipment/model"
	"campus/internal/domains/equipment/model/dto"
	"campus/internal/domains/equipment/repository"
	"campus/shared"
	"campus/shared/cache"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/failure"
	"campus/shared/timezone"
)

const (
	cacheGetEquipment    = "equipment:get"
	cacheGetAllEquipment = "equipment:gets"
	cacheCountEquipment  = "equipment:count"
)

type Equipment interface {
	Create(ctx context.Context, req dto.CreateEquipmentRequest) (dto.EquipmentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetEquipmentsResponse, error)
	FreeForInterval(ctx context.Context, req dto.FreeEquipmentsRequest) (dto.FreeEquipmentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.EquipmentResponse, error)
	Update(ctx context.Context, req dto.UpdateEquipmentRequest, id string) error
	UpdateCondition(ctx context.Context, req dto.UpdateConditionRequest, id string) error
	Relocate(ctx context.Context, req dto.RelocateEquipmentRequest, id string) error
	SetAvailability(ctx context.Context, id string, available bool) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Equipment
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Equipment, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Equipment {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
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

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateEquipmentRequest) (res dto.EquipmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	codeTaken, err := s.repo.Exist(ctx, filterByCode(req.Code))
	if err != nil {
		log.Error().Err(err).Msg("failed to check equipment code uniqueness")

		return res, fmt.Errorf("failed to check equipment code uniqueness: %w", err)
	}

	if codeTaken {
		return res, failure.Duplicate("an equipment with this code already exists") // nolint:wrapcheck
	}

	equipment := req.ToModel(shared.Actor(ctx))

	if err = s.repo.Insert(ctx, equipment); err != nil {
		log.Error().Err(err).Msg("failed to create equipment")

		return res, fmt.Errorf("failed to create equipment: %w", err)
	}

	res.FromModel(equipment)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllEquipment)
		shared.InvalidateCaches(c, s.cache, cacheCountEquipment)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetEquipmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllEquipment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for equipments")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count equipments")

		return res, fmt.Errorf("failed to count equipments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get equipments")

		return res, fmt.Errorf("failed to get equipments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save equipments to cache")
		}
	}()

	return res, nil
}

// FreeForInterval lists available equipment with no overlapping booking on
// the given slot. Results are slot-sensitive, so they bypass the cache.
func (s *serviceImpl) FreeForInterval(ctx context.Context, req dto.FreeEquipmentsRequest) (res dto.FreeEquipmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FreeForInterval")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.EndTime <= req.StartTime {
		return res, failure.InvalidTimeRange() // nolint:wrapcheck
	}

	day, err := timezone.Parse(constant.DayFormat, req.Day)
	if err != nil {
		return res, failure.BadRequest(fmt.Errorf("invalid day format: %w", err)) // nolint:wrapcheck
	}

	models, err := s.repo.GetFreeForSlot(ctx, day, req.StartTime, req.EndTime)
	if err != nil {
		log.Error().Err(err).Msg("failed to get free equipments")

		return res, fmt.Errorf("failed to get free equipments: %w", err)
	}

	res.FromModels(models)

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountEquipment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for equipment count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count equipments")

		return res, fmt.Errorf("failed to count equipments: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save equipment count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.EquipmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetEquipment, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for equipment")

		return res, nil
	}

	equipment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get equipment")

		return res, fmt.Errorf("failed to get equipment: %w", err)
	}

	if equipment.ID == constant.Empty {
		return res, failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	res.FromModel(equipment)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save equipment to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateEquipmentRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateEquipmentRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get equipment for update")

		return fmt.Errorf("failed to get equipment for update: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	if req.Code != constant.Empty && req.Code != current.Code {
		codeTaken, err := s.repo.Exist(ctx, filterByCode(req.Code))
		if err != nil {
			log.Error().Err(err).Msg("failed to check equipment code uniqueness")

			return fmt.Errorf("failed to check equipment code uniqueness: %w", err)
		}

		if codeTaken {
			return failure.Duplicate("an equipment with this code already exists") // nolint:wrapcheck
		}
	}

	updatedFields := shared.TransformFields(req, shared.Actor(ctx))
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update equipment")

		return fmt.Errorf("failed to update equipment: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// UpdateCondition changes the physical condition of a unit. A faulty
// condition also clears the availability flag in the same write.
func (s *serviceImpl) UpdateCondition(ctx context.Context, req dto.UpdateConditionRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateCondition")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if equipment exists")

		return fmt.Errorf("failed to check if equipment exists: %w", err)
	}

	if !exist {
		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldCondition:     req.Condition,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: shared.Actor(ctx),
	}

	if req.Condition == model.ConditionFaulty {
		updatedFields[model.FieldAvailable] = false
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update equipment condition")

		return fmt.Errorf("failed to update equipment condition: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Relocate(ctx context.Context, req dto.RelocateEquipmentRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Relocate")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if equipment exists")

		return fmt.Errorf("failed to check if equipment exists: %w", err)
	}

	if !exist {
		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldLocation:      req.Location,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: shared.Actor(ctx),
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to relocate equipment")

		return fmt.Errorf("failed to relocate equipment: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) SetAvailability(ctx context.Context, id string, available bool) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get equipment")

		return fmt.Errorf("failed to get equipment: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	if available && current.Condition == model.ConditionFaulty {
		return failure.BadRequestFromString("a faulty equipment cannot be made available") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldAvailable:     available,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: shared.Actor(ctx),
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update equipment availability")

		return fmt.Errorf("failed to update equipment availability: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if equipment exists")

		return fmt.Errorf("failed to check if equipment exists: %w", err)
	}

	if !exist {
		log.Error().Msg("equipment not found")

		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete equipment")

		return fmt.Errorf("failed to delete equipment: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetEquipment, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete equipment from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllEquipment)
		shared.InvalidateCaches(c, s.cache, cacheCountEquipment)
	}()
}
