package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"campus/config"
	kafkaMocks "campus/infras/kafka/mocks"
	"campus/infras/otel/mocks"
	bookingMocks "campus/internal/domains/booking/mocks"
	"campus/internal/domains/booking/model"
	"campus/internal/domains/booking/model/dto"
	"campus/internal/domains/booking/service"
	equipmentMocks "campus/internal/domains/equipment/mocks"
	equipmentModel "campus/internal/domains/equipment/model"
	programMocks "campus/internal/domains/program/mocks"
	roomMocks "campus/internal/domains/room/mocks"
	roomModel "campus/internal/domains/room/model"
	teacherMocks "campus/internal/domains/teacher/mocks"
	cacheMocks "campus/shared/cache/mocks"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/failure"
	"campus/shared/timezone"
)

type bookingMockSet struct {
	repo      *bookingMocks.MockBooking
	teacher   *teacherMocks.MockTeacher
	room      *roomMocks.MockRoom
	equipment *equipmentMocks.MockEquipment
	program   *programMocks.MockProgram
	cache     *cacheMocks.MockRedisCache
	kafka     *kafkaMocks.MockClient
}

func newService(t *testing.T) (service.Booking, bookingMockSet) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	set := bookingMockSet{
		repo:      bookingMocks.NewMockBooking(ctrl),
		teacher:   teacherMocks.NewMockTeacher(ctrl),
		room:      roomMocks.NewMockRoom(ctrl),
		equipment: equipmentMocks.NewMockEquipment(ctrl),
		program:   programMocks.NewMockProgram(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		kafka:     kafkaMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topics.BookingEvents = "booking-events"

	svc := service.New(
		set.repo,
		set.teacher,
		set.room,
		set.equipment,
		set.program,
		cfg,
		set.cache,
		mocks.NewOtel(),
		set.kafka,
	)

	return svc, set
}

// inTxPassthrough makes the mocked transaction run the unit of work
// directly; the tx handle is nil because only mocked scans receive it.
func inTxPassthrough(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

func (s bookingMockSet) expectAsyncCalls() {
	s.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	s.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	s.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func validCreateRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		Day:       "2030-05-12",
		StartTime: "09:00",
		EndTime:   "11:00",
		TeacherID: "4a8f1f9e-44a3-4b9e-8f6c-0d2b7cf5a111",
		RoomID:    "9b3c2d1a-5e6f-4a7b-8c9d-0e1f2a3b4222",
		Purpose:   "Algorithms lecture",
	}
}

func availableRoom() roomModel.Room {
	return roomModel.Room{
		ID:        "9b3c2d1a-5e6f-4a7b-8c9d-0e1f2a3b4222",
		Code:      "B-204",
		Capacity:  30,
		Available: true,
	}
}

func TestBookingService_Create(t *testing.T) {
	equipmentID := "7c6d5e4f-3a2b-4c1d-9e8f-7a6b5c4d3333"
	programID := "1f2e3d4c-5b6a-4978-8675-5443322111aa"
	participants := 30
	tooMany := 31

	tests := []struct {
		name      string
		req       func() dto.CreateBookingRequest
		setupMock func(set bookingMockSet)
		wantErr   bool
		wantKind  failure.Kind
	}{
		{
			name: "successful creation",
			req:  validCreateRequest,
			setupMock: func(set bookingMockSet) {
				set.repo.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(inTxPassthrough)
				set.teacher.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				set.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(availableRoom(), nil)
				set.repo.EXPECT().HasRoomConflict(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				set.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				set.expectAsyncCalls()
			},
			wantErr: false,
		},
		{
			name: "end time not after start time",
			req: func() dto.CreateBookingRequest {
				req := validCreateRequest()
				req.EndTime = "09:00"

				return req
			},
			setupMock: func(set bookingMockSet) {
				set.repo.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(inTxPassthrough)
			},
			wantErr:  true,
			wantKind: failure.KindInvalidTimeRange,
		},
		{
			name: "day in the past",
			req: func() dto.CreateBookingRequest {
				req := validCreateRequest()
				req.Day = timezone.Now().AddDate(0, 0, -1).Format(constant.DayFormat)

				return req
			},
			setupMock: func(set bookingMockSet) {
				set.repo.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(inTxPassthrough)
			},
			wantErr:  true,
			wantKind: failure.KindPastDate,
		},
		{
			name: "booking for today is allowed",
			req: func() dto.CreateBookingRequest {
				req := validCreateRequest()
				req.Day = timezone.Now().Format(constant.DayFormat)

				return req
			},
			setupMock: func(set bookingMockSet) {
				set.repo.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(inTxPassthrough)
				set.teacher.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				set.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(availableRoom(), nil)
				set.repo.EXPECT().HasRoomConflict(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				set.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				set.expectAsyncCalls()
			},
			wantErr: false,
		},
		{
			name: "unknown teacher stops the pipeline before the room lookup",
			req:  validCreateRequest,
			setupMock: func(set bookingMockSet) {
				set.repo.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(inTxPassthrough)
				set.teacher.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantKind: failure.KindReferenceNotFound,
		},
		{
			name: "unknown room",
			req:  validCreateRequest,
			setupMock: func(set bookingMockSet) {
				set.repo.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(inTxPassthrough)
				set.teacher.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				set.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindReferenceNotFound,
		},
		{
			name: "room marked unavailable",
			req:  validCreateRequest,
			setupMock: func(set bookingMockSet) {
				set.repo.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(inTxPassthrough)
				set.teacher.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

				room := availableRoom()
				room.Available = false
				set.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(room, nil)
			},
			wantErr:  true,
			wantKind: failure.KindRoomUnavailable,
		},
		{
			name: "participants exactly at capacity is allowed",
			req: func() dto.CreateBookingRequest {
				req := validCreateRequest()
				req.Participants = &participants

				return req
			},
			setupMock: func(set bookingMockSet) {
				set.repo.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(inTxPassthrough)
				set.teacher.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				set.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(availableRoom(), nil)
				set.repo.EXPECT().HasRoomConflict(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				set.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				set.expectAsyncCalls()
			},
			wantErr: false,
		},
		{
			name: "participants above capacity",
			req: func() dto.CreateBookingRequest {
				req := validCreateRequest()
				req.Participants = &tooMany

				return req
			},
			setupMock: func(set bookingMockSet) {
				set.repo.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(inTxPassthrough)
				set.teacher.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				set.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(availableRoom(), nil)
			},
			wantErr:  true,
			wantKind: failure.KindCapacityExceeded,
		},
		{
			name: "unknown equipment",
			req: func() dto.CreateBookingRequest {
				req := validCreateRequest()
				req.EquipmentID = &equipmentID

				return req
			},
			setupMock: func(set bookingMockSet) {
				set.repo.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(inTxPassthrough)
				set.teacher.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				set.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(availableRoom(), nil)
				set.equipment.EXPECT().Get(gomock.Any(), gomock.Any()).Return(equipmentModel.Equipment{}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindReferenceNotFound,
		},
		{
			name: "equipment marked unavailable",
			req: func() dto.CreateBookingRequest {
				req := validCreateRequest()
				req.EquipmentID = &equipmentID

				return req
			},
			setupMock: func(set bookingMockSet) {
				set.repo.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(inTxPassthrough)
				set.teacher.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				set.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(availableRoom(), nil)
				set.equipment.EXPECT().Get(gomock.Any(), gomock.Any()).Return(equipmentModel.Equipment{
					ID:        equipmentID,
					Available: false,
				}, nil)
			},
			wantErr:  true,
			wantKind: failure.KindEquipmentUnavailable,
		},
		{
			name: "unknown program",
			req: func() dto.CreateBookingRequest {
				req := validCreateRequest()
				req.ProgramID = &programID

				return req
			},
			setupMock: func(set bookingMockSet) {
				set.repo.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(inTxPassthrough)
				set.teacher.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				set.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(availableRoom(), nil)
				set.program.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantKind: failure.KindReferenceNotFound,
		},
		{
			name: "room slot already taken",
			req:  validCreateRequest,
			setupMock: func(set bookingMockSet) {
				set.repo.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(inTxPassthrough)
				set.teacher.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				set.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(availableRoom(), nil)
				set.repo.EXPECT().HasRoomConflict(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantKind: failure.KindRoomConflict,
		},
		{
			// against an existing 08:00-10:00 booking, the 10:00-12:00
			// candidate touches but does not overlap
			name: "back-to-back slot is accepted",
			req: func() dto.CreateBookingRequest {
				req := validCreateRequest()
				req.StartTime = "10:00"
				req.EndTime = "12:00"

				return req
			},
			setupMock: func(set bookingMockSet) {
				set.repo.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(inTxPassthrough)
				set.teacher.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				set.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(availableRoom(), nil)
				set.repo.EXPECT().
					HasRoomConflict(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, candidate model.Booking) (bool, error) {
						return model.Overlaps(candidate.StartTime, candidate.EndTime, "08:00", "10:00"), nil
					})
				set.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				set.expectAsyncCalls()
			},
			wantErr: false,
		},
		{
			name: "equipment slot already taken",
			req: func() dto.CreateBookingRequest {
				req := validCreateRequest()
				req.EquipmentID = &equipmentID

				return req
			},
			setupMock: func(set bookingMockSet) {
				set.repo.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(inTxPassthrough)
				set.teacher.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				set.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(availableRoom(), nil)
				set.equipment.EXPECT().Get(gomock.Any(), gomock.Any()).Return(equipmentModel.Equipment{
					ID:        equipmentID,
					Available: true,
				}, nil)
				set.repo.EXPECT().HasRoomConflict(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				set.repo.EXPECT().HasEquipmentConflict(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantKind: failure.KindEquipmentConflict,
		},
		{
			name: "insert failure propagates",
			req:  validCreateRequest,
			setupMock: func(set bookingMockSet) {
				set.repo.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(inTxPassthrough)
				set.teacher.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				set.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(availableRoom(), nil)
				set.repo.EXPECT().HasRoomConflict(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				set.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, set := newService(t)
			tt.setupMock(set)

			res, err := svc.Create(context.Background(), tt.req())

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantKind != "" {
					assert.Equal(t, tt.wantKind, failure.GetKind(err))
				}
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.Equal(t, model.StatusConfirmed, res.Status)
			}
		})
	}
}

func TestBookingService_Update(t *testing.T) {
	bookingID := "aa11bb22-cc33-4d44-9e55-ff6677889900"

	current := model.Booking{
		ID:        bookingID,
		Day:       timezone.Now().AddDate(0, 0, 7),
		StartTime: "09:00",
		EndTime:   "11:00",
		TeacherID: "4a8f1f9e-44a3-4b9e-8f6c-0d2b7cf5a111",
		RoomID:    "9b3c2d1a-5e6f-4a7b-8c9d-0e1f2a3b4222",
		Status:    model.StatusConfirmed,
	}

	t.Run("successful update keeps the booking id in the conflict scans", func(t *testing.T) {
		svc, set := newService(t)

		set.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(current, nil)

		set.repo.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(inTxPassthrough)
		set.teacher.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		set.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(availableRoom(), nil)

		set.repo.EXPECT().
			HasRoomConflict(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, candidate model.Booking) (bool, error) {
				assert.Equal(t, bookingID, candidate.ID)

				return false, nil
			})

		set.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		set.expectAsyncCalls()

		res, err := svc.Update(context.Background(), dto.UpdateBookingRequest{
			Day:       current.Day.Format(constant.DayFormat),
			StartTime: "10:00",
			EndTime:   "12:00",
			TeacherID: current.TeacherID,
			RoomID:    current.RoomID,
		}, bookingID)

		assert.NoError(t, err)
		assert.Equal(t, "10:00", res.StartTime)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, set := newService(t)

		set.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		_, err := svc.Update(context.Background(), dto.UpdateBookingRequest{}, bookingID)

		assert.Error(t, err)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("new slot collides with another booking", func(t *testing.T) {
		svc, set := newService(t)

		set.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(current, nil)

		set.repo.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(inTxPassthrough)
		set.teacher.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		set.room.EXPECT().Get(gomock.Any(), gomock.Any()).Return(availableRoom(), nil)
		set.repo.EXPECT().HasRoomConflict(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.Update(context.Background(), dto.UpdateBookingRequest{
			Day:       current.Day.Format(constant.DayFormat),
			StartTime: "09:00",
			EndTime:   "11:00",
			TeacherID: current.TeacherID,
			RoomID:    current.RoomID,
		}, bookingID)

		assert.Error(t, err)
		assert.Equal(t, failure.KindRoomConflict, failure.GetKind(err))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	bookingID := "aa11bb22-cc33-4d44-9e55-ff6677889900"

	confirmed := model.Booking{
		ID:        bookingID,
		Day:       timezone.Now().AddDate(0, 0, 7),
		StartTime: "09:00",
		EndTime:   "11:00",
		TeacherID: "4a8f1f9e-44a3-4b9e-8f6c-0d2b7cf5a111",
		RoomID:    "9b3c2d1a-5e6f-4a7b-8c9d-0e1f2a3b4222",
		Status:    model.StatusConfirmed,
	}

	t.Run("cancel a confirmed booking", func(t *testing.T) {
		svc, set := newService(t)

		set.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(confirmed, nil)

		set.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])

				return nil
			})

		set.expectAsyncCalls()

		res, err := svc.Cancel(context.Background(), bookingID)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, res.Status)
	})

	t.Run("cancelling twice is a no-op", func(t *testing.T) {
		svc, set := newService(t)

		cancelled := confirmed
		cancelled.Status = model.StatusCancelled

		set.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(cancelled, nil)

		res, err := svc.Cancel(context.Background(), bookingID)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, res.Status)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, set := newService(t)

		set.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		_, err := svc.Cancel(context.Background(), bookingID)

		assert.Error(t, err)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})
}

func TestBookingService_ProgramRecap(t *testing.T) {
	programID := "1f2e3d4c-5b6a-4978-8675-5443322111aa"

	svc, set := newService(t)

	set.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(2)

	set.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(2, nil)

	set.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			assert.Equal(t, model.FieldDay+", "+model.FieldStartTime, params.SortBy)
			assert.Equal(t, "ASC", params.SortDir)

			return []model.Booking{
				{ID: "b1", ProgramID: &programID},
				{ID: "b2", ProgramID: &programID},
			}, nil
		})

	set.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := svc.ProgramRecap(context.Background(), programID, gDto.QueryParams{Limit: 10})

	assert.NoError(t, err)
	assert.Len(t, res.Bookings, 2)
	assert.Equal(t, 2, res.TotalData)
}
