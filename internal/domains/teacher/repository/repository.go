package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"campus/infras/otel"
	"campus/infras/postgres"
	"campus/internal/domains/teacher/model"
	gDto "campus/shared/dto"
	gRepo "campus/shared/repository"
)

type Teacher interface {
	Insert(ctx context.Context, model model.Teacher) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Teacher, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Teacher, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Teacher]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Teacher {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Teacher](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
