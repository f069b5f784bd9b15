package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"campus/infras/otel"
	"campus/infras/postgres"
	"campus/internal/domains/booking/model"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/logger"
	gRepo "campus/shared/repository"
)

// The conflict scan mirrors model.Overlaps: half-open intervals, touching
// endpoints are legal. Cancelled bookings never block, and the candidate's
// own id is excluded so updates do not collide with themselves.
const (
	roomConflictQuery = `SELECT EXISTS(
		SELECT 1 FROM bookings
		WHERE room_id = :room_id
		  AND day = :day
		  AND status <> '` + model.StatusCancelled + `'
		  AND start_time < :end_time
		  AND end_time > :start_time
		  AND id <> :id)`

	equipmentConflictQuery = `SELECT EXISTS(
		SELECT 1 FROM bookings
		WHERE equipment_id = :equipment_id
		  AND day = :day
		  AND status <> '` + model.StatusCancelled + `'
		  AND start_time < :end_time
		  AND end_time > :start_time
		  AND id <> :id)`
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	InTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	HasRoomConflict(ctx context.Context, sqltx *sqlx.Tx, candidate model.Booking) (bool, error)
	HasEquipmentConflict(ctx context.Context, sqltx *sqlx.Tx, candidate model.Booking) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) HasRoomConflict(ctx context.Context, sqltx *sqlx.Tx, candidate model.Booking) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.HasRoomConflict")
	defer scope.End()
	scope.SetAttribute(constant.OtelQueryAttributeKey, roomConflictQuery)

	return repo.scanConflict(ctx, sqltx, roomConflictQuery, candidate)
}

func (repo *repositoryImpl) HasEquipmentConflict(ctx context.Context, sqltx *sqlx.Tx, candidate model.Booking) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.HasEquipmentConflict")
	defer scope.End()
	scope.SetAttribute(constant.OtelQueryAttributeKey, equipmentConflictQuery)

	if candidate.EquipmentID == nil {
		return false, nil
	}

	return repo.scanConflict(ctx, sqltx, equipmentConflictQuery, candidate)
}

// scanConflict runs an EXISTS scan inside the given transaction, falling
// back to the read pool when no transaction is in flight.
func (repo *repositoryImpl) scanConflict(ctx context.Context, sqltx *sqlx.Tx, query string, candidate model.Booking) (bool, error) {
	var ext sqlx.ExtContext = repo.db.Read
	if sqltx != nil {
		ext = sqltx
	}

	rows, err := sqlx.NamedQueryContext(ctx, ext, query, candidate)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to scan booking conflicts: %w", err)
	}
	defer rows.Close()

	exist := false

	if rows.Next() {
		if err := rows.Scan(&exist); err != nil {
			logger.ErrorWithStack(err)

			return false, fmt.Errorf("failed to scan booking conflicts: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to scan booking conflicts: %w", err)
	}

	return exist, nil
}
