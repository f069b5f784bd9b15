package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"campus/config"
	"campus/infras/otel/mocks"
	equipmentMocks "campus/internal/domains/equipment/mocks"
	"campus/internal/domains/equipment/model"
	"campus/internal/domains/equipment/model/dto"
	"campus/internal/domains/equipment/service"
	cacheMocks "campus/shared/cache/mocks"
	"campus/shared/constant"
	"campus/shared/failure"
)

func newService(t *testing.T) (service.Equipment, *equipmentMocks.MockEquipment, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := equipmentMocks.NewMockEquipment(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestEquipmentService_Create(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	tests := []struct {
		name      string
		req       dto.CreateEquipmentRequest
		setupMock func()
		wantErr   bool
		wantKind  failure.Kind
		check     func(t *testing.T, res dto.EquipmentResponse)
	}{
		{
			name: "successful computer creation",
			req: dto.CreateEquipmentRequest{
				Code:          "PC-042",
				EquipmentType: model.TypeComputer,
				Brand:         "Lenovo",
				Computer: &dto.ComputerAttributes{
					Processor: "i7-1260P",
					RAM:       16,
					Storage:   512,
				},
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
			check: func(t *testing.T, res dto.EquipmentResponse) {
				assert.True(t, res.Available)
				assert.Equal(t, model.ConditionGood, res.Condition)
				assert.NotNil(t, res.Computer)
				assert.Nil(t, res.VideoProjector)
			},
		},
		{
			name: "faulty unit is created unavailable",
			req: dto.CreateEquipmentRequest{
				Code:          "VP-007",
				EquipmentType: model.TypeVideoProjector,
				Condition:     model.ConditionFaulty,
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
			check: func(t *testing.T, res dto.EquipmentResponse) {
				assert.False(t, res.Available)
			},
		},
		{
			name: "duplicate code",
			req: dto.CreateEquipmentRequest{
				Code:          "PC-042",
				EquipmentType: model.TypeComputer,
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
			req: dto.CreateEquipmentRequest{
				Code:          "PC-042",
				EquipmentType: model.TypeComputer,
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
				if tt.check != nil {
					tt.check(t, res)
				}
			}
		})
	}
}

func TestEquipmentService_UpdateCondition(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	tests := []struct {
		name      string
		req       dto.UpdateConditionRequest
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "faulty condition clears availability",
			req:  dto.UpdateConditionRequest{Condition: model.ConditionFaulty},
			id:   "equipment-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, model.ConditionFaulty, fields[model.FieldCondition])
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
			name: "good condition leaves availability untouched",
			req:  dto.UpdateConditionRequest{Condition: model.ConditionGood},
			id:   "equipment-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, model.ConditionGood, fields[model.FieldCondition])
						assert.NotContains(t, fields, model.FieldAvailable)

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
			name: "equipment not found",
			req:  dto.UpdateConditionRequest{Condition: model.ConditionFair},
			id:   "nonexistent-id",
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

			err := svc.UpdateCondition(context.Background(), tt.req, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEquipmentService_SetAvailability(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	faulty := model.Equipment{
		ID:            "equipment-1",
		Code:          "PC-042",
		EquipmentType: model.TypeComputer,
		Condition:     model.ConditionFaulty,
	}

	healthy := faulty
	healthy.Condition = model.ConditionGood

	tests := []struct {
		name      string
		id        string
		available bool
		setupMock func()
		wantErr   bool
		wantKind  failure.Kind
	}{
		{
			name:      "marking a healthy unit available",
			id:        "equipment-1",
			available: true,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(healthy, nil)

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
			name:      "faulty unit cannot be made available",
			id:        "equipment-1",
			available: true,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(faulty, nil)
			},
			wantErr:  true,
			wantKind: failure.KindBadRequest,
		},
		{
			name:      "faulty unit can still be marked unavailable",
			id:        "equipment-1",
			available: false,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(faulty, nil)

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
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.SetAvailability(context.Background(), tt.id, tt.available)

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

func TestEquipmentService_Relocate(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful relocation",
			id:   "equipment-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, "Building C, storage", fields[model.FieldLocation])

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
			name: "equipment not found",
			id:   "nonexistent-id",
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

			err := svc.Relocate(context.Background(), dto.RelocateEquipmentRequest{Location: "Building C, storage"}, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEquipmentService_FreeForInterval(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	t.Run("lists free equipment", func(t *testing.T) {
		mockRepo.EXPECT().
			GetFreeForSlot(gomock.Any(), gomock.Any(), "09:00", "11:00").
			Return([]model.Equipment{
				{ID: "equipment-1", Code: "PC-042", EquipmentType: model.TypeComputer},
			}, nil)

		res, err := svc.FreeForInterval(context.Background(), dto.FreeEquipmentsRequest{
			Day:       "2030-05-12",
			StartTime: "09:00",
			EndTime:   "11:00",
		})

		assert.NoError(t, err)
		assert.Len(t, res.Equipments, 1)
		assert.Equal(t, "PC-042", res.Equipments[0].Code)
	})

	t.Run("rejects inverted interval", func(t *testing.T) {
		_, err := svc.FreeForInterval(context.Background(), dto.FreeEquipmentsRequest{
			Day:       "2030-05-12",
			StartTime: "11:00",
			EndTime:   "09:00",
		})

		assert.Error(t, err)
		assert.Equal(t, failure.KindInvalidTimeRange, failure.GetKind(err))
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		mockRepo.EXPECT().
			GetFreeForSlot(gomock.Any(), gomock.Any(), "09:00", "11:00").
			Return(nil, errors.New("db error"))

		_, err := svc.FreeForInterval(context.Background(), dto.FreeEquipmentsRequest{
			Day:       "2030-05-12",
			StartTime: "09:00",
			EndTime:   "11:00",
		})

		assert.Error(t, err)
	})
}
