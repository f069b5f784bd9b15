package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"campus/infras/otel"
	"campus/infras/postgres"
	"campus/internal/domains/program/model"
	gDto "campus/shared/dto"
	gRepo "campus/shared/repository"
)

type Program interface {
	Insert(ctx context.Context, model model.Program) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Program, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Program, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Program]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Program {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Program](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
