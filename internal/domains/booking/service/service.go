package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"campus/config"
	"campus/infras/kafka"
	"campus/infras/otel"
	"campus/internal/domains/booking/model"
	"campus/internal/domains/booking/model/dto"
	"campus/internal/domains/booking/repository"
	equipmentModel "campus/internal/domains/equipment/model"
	equipmentRepository "campus/internal/domains/equipment/repository"
	programModel "campus/internal/domains/program/model"
	programRepository "campus/internal/domains/program/repository"
	roomModel "campus/internal/domains/room/model"
	roomRepository "campus/internal/domains/room/repository"
	teacherModel "campus/internal/domains/teacher/model"
	teacherRepository "campus/internal/domains/teacher/repository"
	"campus/shared"
	"campus/shared/cache"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/failure"
	"campus/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

const (
	EventBookingCreated   = "booking_created"
	EventBookingCancelled = "booking_cancelled"
)

// BookingEvent is the payload published to the booking-events topic on
// create and cancel.
type BookingEvent struct {
	Type      string `json:"type"`
	BookingID string `json:"booking_id"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	TeacherID string `json:"teacher_id"`
	RoomID    string `json:"room_id"`
	Status    string `json:"status"`
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
	ProgramRecap(ctx context.Context, programID string, req gDto.QueryParams) (dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	repo          repository.Booking
	teacherRepo   teacherRepository.Teacher
	roomRepo      roomRepository.Room
	equipmentRepo equipmentRepository.Equipment
	programRepo   programRepository.Program
	cfg           *config.Config
	cache         cache.RedisCache
	otel          otel.Otel
	kafka         kafka.Client
}

func New(
	repo repository.Booking,
	teacherRepo teacherRepository.Teacher,
	roomRepo roomRepository.Room,
	equipmentRepo equipmentRepository.Equipment,
	programRepo programRepository.Program,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	kafka kafka.Client,
) Booking {
	return &serviceImpl{
		repo:          repo,
		teacherRepo:   teacherRepo,
		roomRepo:      roomRepo,
		equipmentRepo: equipmentRepo,
		programRepo:   programRepo,
		cfg:           cfg,
		cache:         cache,
		otel:          otel,
		kafka:         kafka,
	}
}

// pipelineCheck is one step of the admission pipeline. Checks run in
// order and the first failure wins; no check has side effects.
type pipelineCheck struct {
	name string
	run  func(ctx context.Context, tx *sqlx.Tx) error
}

// validate runs the admission pipeline for a candidate booking. The
// candidate carries its own id, so conflict scans never match the row
// being updated. The two conflict checks run inside the caller's
// transaction; the earlier reference checks do not need it.
func (s *serviceImpl) validate(ctx context.Context, tx *sqlx.Tx, candidate model.Booking) error {
	var room roomModel.Room

	checks := []pipelineCheck{
		{
			name: "time range",
			run: func(_ context.Context, _ *sqlx.Tx) error {
				if candidate.EndTime <= candidate.StartTime {
					return failure.InvalidTimeRange() // nolint:wrapcheck
				}

				return nil
			},
		},
		{
			name: "past date",
			run: func(_ context.Context, _ *sqlx.Tx) error {
				now := timezone.Now()
				today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

				if candidate.Day.Before(today) {
					return failure.PastDate() // nolint:wrapcheck
				}

				return nil
			},
		},
		{
			name: "teacher reference",
			run: func(ctx context.Context, _ *sqlx.Tx) error {
				exist, err := s.teacherRepo.Exist(ctx, shared.FilterByID(candidate.TeacherID, teacherModel.FieldID, teacherModel.TableName))
				if err != nil {
					return fmt.Errorf("failed to check teacher reference: %w", err)
				}

				if !exist {
					return failure.ReferenceNotFound(teacherModel.EntityName) // nolint:wrapcheck
				}

				return nil
			},
		},
		{
			name: "room reference and availability",
			run: func(ctx context.Context, _ *sqlx.Tx) error {
				var err error

				room, err = s.roomRepo.Get(ctx, shared.FilterByID(candidate.RoomID, roomModel.FieldID, roomModel.TableName))
				if err != nil {
					return fmt.Errorf("failed to get room reference: %w", err)
				}

				if room.ID == constant.Empty {
					return failure.ReferenceNotFound(roomModel.EntityName) // nolint:wrapcheck
				}

				if !room.Available {
					return failure.RoomUnavailable() // nolint:wrapcheck
				}

				return nil
			},
		},
		{
			name: "room capacity",
			run: func(_ context.Context, _ *sqlx.Tx) error {
				if candidate.Participants != nil && *candidate.Participants > room.Capacity {
					return failure.CapacityExceeded() // nolint:wrapcheck
				}

				return nil
			},
		},
		{
			name: "equipment reference and availability",
			run: func(ctx context.Context, _ *sqlx.Tx) error {
				if candidate.EquipmentID == nil {
					return nil
				}

				equipment, err := s.equipmentRepo.Get(ctx, shared.FilterByID(*candidate.EquipmentID, equipmentModel.FieldID, equipmentModel.TableName))
				if err != nil {
					return fmt.Errorf("failed to get equipment reference: %w", err)
				}

				if equipment.ID == constant.Empty {
					return failure.ReferenceNotFound(equipmentModel.EntityName) // nolint:wrapcheck
				}

				if !equipment.Available {
					return failure.EquipmentUnavailable() // nolint:wrapcheck
				}

				return nil
			},
		},
		{
			name: "program reference",
			run: func(ctx context.Context, _ *sqlx.Tx) error {
				if candidate.ProgramID == nil {
					return nil
				}

				exist, err := s.programRepo.Exist(ctx, shared.FilterByID(*candidate.ProgramID, programModel.FieldID, programModel.TableName))
				if err != nil {
					return fmt.Errorf("failed to check program reference: %w", err)
				}

				if !exist {
					return failure.ReferenceNotFound(programModel.EntityName) // nolint:wrapcheck
				}

				return nil
			},
		},
		{
			name: "room conflict",
			run: func(ctx context.Context, tx *sqlx.Tx) error {
				conflict, err := s.repo.HasRoomConflict(ctx, tx, candidate)
				if err != nil {
					return fmt.Errorf("failed to scan room conflicts: %w", err)
				}

				if conflict {
					return failure.RoomConflict() // nolint:wrapcheck
				}

				return nil
			},
		},
		{
			name: "equipment conflict",
			run: func(ctx context.Context, tx *sqlx.Tx) error {
				if candidate.EquipmentID == nil {
					return nil
				}

				conflict, err := s.repo.HasEquipmentConflict(ctx, tx, candidate)
				if err != nil {
					return fmt.Errorf("failed to scan equipment conflicts: %w", err)
				}

				if conflict {
					return failure.EquipmentConflict() // nolint:wrapcheck
				}

				return nil
			},
		},
	}

	for _, check := range checks {
		if err := check.run(ctx, tx); err != nil {
			log.Info().
				Str("check", check.name).
				Str("bookingID", candidate.ID).
				Err(err).
				Msg("booking rejected")

			return err
		}
	}

	return nil
}

// mapWriteConflict turns the unique-violation backstop (the partial
// indexes racing with a concurrent commit) into the matching taxonomy
// failure.
func mapWriteConflict(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
		if pqErr.Constraint != "" && pqErr.Constraint == "bookings_equipment_slot_key" {
			return failure.EquipmentConflict() // nolint:wrapcheck
		}

		return failure.RoomConflict() // nolint:wrapcheck
	}

	return err
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := req.ToModel(shared.Actor(ctx))
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	err = s.repo.InTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.validate(ctx, tx, booking); err != nil {
			return err
		}

		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return mapWriteConflict(err)
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	s.invalidate(ctx, booking.ID)
	s.publish(ctx, EventBookingCreated, booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Update replaces the mutable fields wholesale after re-running the full
// admission pipeline with the booking's own id excluded from the scans.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking for update")

		return res, fmt.Errorf("failed to get booking for update: %w", err)
	}

	if current.ID == constant.Empty {
		return res, failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	updated, err := req.ToModel(current, shared.Actor(ctx))
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking update request")

		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	err = s.repo.InTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.validate(ctx, tx, updated); err != nil {
			return err
		}

		updatedFields := map[string]any{
			model.FieldDay:           updated.Day,
			model.FieldStartTime:     updated.StartTime,
			model.FieldEndTime:       updated.EndTime,
			model.FieldTeacherID:     updated.TeacherID,
			model.FieldRoomID:        updated.RoomID,
			model.FieldEquipmentID:   updated.EquipmentID,
			model.FieldProgramID:     updated.ProgramID,
			model.FieldParticipants:  updated.Participants,
			model.FieldPurpose:       updated.Purpose,
			model.FieldStatus:        updated.Status,
			constant.FieldModifiedAt: updated.ModifiedAt,
			constant.FieldModifiedBy: updated.ModifiedBy,
		}

		if err := s.repo.UpdateTx(ctx, tx, updatedFields, filter); err != nil {
			return mapWriteConflict(err)
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	s.invalidate(ctx, id)

	return res, nil
}

// Cancel is idempotent: cancelling a cancelled booking is a no-op that
// still reports success.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking for cancel")

		return res, fmt.Errorf("failed to get booking for cancel: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	if !booking.IsCancelled() {
		updatedFields := map[string]any{
			model.FieldStatus:        model.StatusCancelled,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: shared.Actor(ctx),
		}

		if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
			log.Error().Err(err).Msg("failed to cancel booking")

			return res, fmt.Errorf("failed to cancel booking: %w", err)
		}

		booking.Status = model.StatusCancelled

		s.invalidate(ctx, id)
		s.publish(ctx, EventBookingCancelled, booking)
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		log.Error().Msg("booking not found")

		return failure.NotFound(model.EntityName) // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// ProgramRecap lists every booking attached to a program, ordered
// chronologically.
func (s *serviceImpl) ProgramRecap(ctx context.Context, programID string, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ProgramRecap")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.SortBy = model.FieldDay + ", " + model.FieldStartTime
	req.SortDir = gDto.SortDirAsc

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldProgramID,
				Value:    programID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	return s.GetAll(ctx, req, filter)
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking) {
	topic := s.cfg.Kafka.Topics.BookingEvents
	if s.kafka == nil || topic == constant.Empty {
		return
	}

	event := BookingEvent{
		Type:      eventType,
		BookingID: booking.ID,
		Day:       booking.Day.Format(constant.DayFormat),
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		TeacherID: booking.TeacherID,
		RoomID:    booking.RoomID,
		Status:    booking.Status,
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.kafka.SendMessages(c, topic, kafka.Message{Key: booking.ID, Value: event}); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("failed to publish booking event")
		}
	}()
}
