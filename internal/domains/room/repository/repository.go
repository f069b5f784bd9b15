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
	"campus/internal/domains/room/model"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/logger"
	gRepo "campus/shared/repository"
)

// Free means available and not held by any non-cancelled booking that
// overlaps the slot.
const freeForSlotQuery = `SELECT * FROM rooms
	WHERE available = TRUE
	  AND id NOT IN (
		SELECT room_id FROM bookings
		WHERE day = :day
		  AND status <> '` + bookingModel.StatusCancelled + `'
		  AND start_time < :end_time
		  AND end_time > :start_time)
	ORDER BY code ASC`

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	GetFreeForSlot(ctx context.Context, day time.Time, startTime, endTime string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) GetFreeForSlot(ctx context.Context, day time.Time, startTime, endTime string) ([]model.Room, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.GetFreeForSlot")
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

		return nil, fmt.Errorf("failed to get free rooms: %w", err)
	}
	defer rows.Close()

	rooms := []model.Room{}

	for rows.Next() {
		var room model.Room
		if err := rows.StructScan(&room); err != nil {
			logger.ErrorWithStack(err)

			return nil, fmt.Errorf("failed to get free rooms: %w", err)
		}

		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get free rooms: %w", err)
	}

	return rooms, nil
}
