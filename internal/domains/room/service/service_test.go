package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"campus/config"
	"campus/infras/otel/mocks"
	roomMocks "campus/internal/domains/room/mocks"
	"campus/internal/domains/room/model"
	"campus/internal/domains/room/model/dto"
	"campus/internal/domains/room/service"
	cacheMocks "campus/shared/cache/mocks"
	"campus/shared/constant"
	"campus/shared/failure"
)

func TestRoomService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		req       dto.CreateRoomRequest
		setupMock func()
		wantErr   bool
		wantKind  failure.Kind
	}{
		{
			name: "successful creation",
			req: dto.CreateRoomRequest{
				Code:     "B-204",
				Name:     "Lab B-204",
				Capacity: 30,
				RoomType: model.RoomTypeLaboratory,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "duplicate code",
			req: dto.CreateRoomRequest{
				Code:     "B-204",
				Name:     "Lab B-204",
				Capacity: 30,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantKind: failure.KindDuplicate,
		},
		{
			name: "repository error",
			req: dto.CreateRoomRequest{
				Code:     "B-204",
				Name:     "Lab B-204",
				Capacity: 30,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyActor, "test-actor")
			res, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantKind != "" {
					assert.Equal(t, tt.wantKind, failure.GetKind(err))
				}
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.True(t, res.Available)
			}
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	room := model.Room{
		ID:        "room-1",
		Code:      "B-204",
		Name:      "Lab B-204",
		Capacity:  30,
		Available: true,
	}

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantID    string
	}{
		{
			name: "cache miss, successful get from db",
			id:   "room-1",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantID:  "room-1",
		},
		{
			name: "room not found",
			id:   "nonexistent-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, res.ID)
			}
		})
	}
}

func TestRoomService_SetAvailability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		id        string
		available bool
		setupMock func()
		wantErr   bool
	}{
		{
			name:      "mark unavailable",
			id:        "room-1",
			available: false,
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, false, fields[model.FieldAvailable])

						return nil
					})

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name:      "room not found",
			id:        "nonexistent-id",
			available: true,
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.SetAvailability(context.Background(), tt.id, tt.available)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	current := model.Room{
		ID:       "room-1",
		Code:     "B-204",
		Name:     "Lab B-204",
		Capacity: 30,
	}

	tests := []struct {
		name      string
		req       dto.UpdateRoomRequest
		id        string
		setupMock func()
		wantErr   bool
		wantKind  failure.Kind
	}{
		{
			name: "successful update",
			req:  dto.UpdateRoomRequest{Name: "Renovated Lab B-204"},
			id:   "room-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(current, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name:      "empty request",
			req:       dto.UpdateRoomRequest{},
			id:        "room-1",
			setupMock: func() {},
			wantErr:   true,
			wantKind:  failure.KindBadRequest,
		},
		{
			name: "new code already taken",
			req:  dto.UpdateRoomRequest{Code: "C-101"},
			id:   "room-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(current, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantKind: failure.KindDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyActor, "test-actor")
			err := svc.Update(ctx, tt.req, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantKind != "" {
					assert.Equal(t, tt.wantKind, failure.GetKind(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_FreeForInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	t.Run("lists free rooms ordered by code", func(t *testing.T) {
		mockRepo.EXPECT().
			GetFreeForSlot(gomock.Any(), gomock.Any(), "09:00", "11:00").
			DoAndReturn(func(_ context.Context, day time.Time, _, _ string) ([]model.Room, error) {
				assert.Equal(t, "2030-05-12", day.Format("2006-01-02"))

				return []model.Room{
					{ID: "room-1", Code: "A-101"},
					{ID: "room-2", Code: "B-204"},
				}, nil
			})

		res, err := svc.FreeForInterval(context.Background(), dto.FreeRoomsRequest{
			Day:       "2030-05-12",
			StartTime: "09:00",
			EndTime:   "11:00",
		})

		assert.NoError(t, err)
		assert.Len(t, res.Rooms, 2)
		assert.Equal(t, "A-101", res.Rooms[0].Code)
	})

	t.Run("rejects inverted interval", func(t *testing.T) {
		_, err := svc.FreeForInterval(context.Background(), dto.FreeRoomsRequest{
			Day:       "2030-05-12",
			StartTime: "11:00",
			EndTime:   "09:00",
		})

		assert.Error(t, err)
		assert.Equal(t, failure.KindInvalidTimeRange, failure.GetKind(err))
	})

	t.Run("rejects malformed day", func(t *testing.T) {
		_, err := svc.FreeForInterval(context.Background(), dto.FreeRoomsRequest{
			Day:       "12/05/2030",
			StartTime: "09:00",
			EndTime:   "11:00",
		})

		assert.Error(t, err)
		assert.Equal(t, failure.KindBadRequest, failure.GetKind(err))
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		mockRepo.EXPECT().
			GetFreeForSlot(gomock.Any(), gomock.Any(), "09:00", "11:00").
			Return(nil, errors.New("db error"))

		_, err := svc.FreeForInterval(context.Background(), dto.FreeRoomsRequest{
			Day:       "2030-05-12",
			StartTime: "09:00",
			EndTime:   "11:00",
		})

		assert.Error(t, err)
	})
}
