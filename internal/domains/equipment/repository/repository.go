package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"campus/infras/otel"
	"campus/infras/postgres"
	bookingModel "campus/internal/domains/booking/model"
	"campus/internal/domains/equipment/model"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/logger"
	gRepo "campus/shared/repository"
)

// Free means available and not held by any non-cancelled booking that
// overlaps the slot.
const freeForSlotQuery = `SELECT * FROM equipments
	WHERE available = TRUE
	  AND id NOT IN (
		SELECT equipment_id FROM bookings
		WHERE equipment_id IS NOT NULL
		  AND day = :day
		  AND status <> '` + bookingModel.StatusCancelled + `'
		  AND start_time < :end_time
		  AND end_time > :start_time)
	ORDER BY code ASC`

type Equipment interface {
	Insert(ctx context.Context, model model.Equipment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Equipment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Equipment, error)
	GetFreeForSlot(ctx context.Context, day time.Time, startTime, endTime string) ([]model.Equipment, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Equipment]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Equipment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Equipment](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) GetFreeForSlot(ctx context.Context, day time.Time, startTime, endTime string) ([]model.Equipment, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".equipment.GetFreeForSlot")
	defer scope.End()
	scope.SetAttribute(constant.OtelQueryAttributeKey, freeForSlotQuery)

	args := map[string]any{
		"day":        day,
		"start_time": startTime,
		"end_time":   endTime,
	}

	rows, err := sqlx.NamedQueryContext(ctx, repo.db.Read, freeForSlotQuery, args)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get free equipments: %w", err)
	}
	defer rows.Close()

	equipments := []model.Equipment{}

	for rows.Next() {
		var equipment model.Equipment
		if err := rows.StructScan(&equipment); err != nil {
			logger.ErrorWithStack(err)

			return nil, fmt.Errorf("failed to get free equipments: %w", err)
		}

		equipments = append(equipments, equipment)
	}

	if err := rows.Err(); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get free equipments: %w", err)
	}

	return equipments, nil
}
