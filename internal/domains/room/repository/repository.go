package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"dormhub/infras/otel"
	"dormhub/infras/postgres"
	"dormhub/internal/domains/room/model"
	gDto "dormhub/shared/dto"
	"dormhub/shared/logger"
	gRepo "dormhub/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Room interface {
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	InsertBulk(ctx context.Context, models []model.Room) error
	InsertBulkTx(ctx context.Context, tx *sqlx.Tx, models []model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
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

func (repo *repositoryImpl) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return tx, nil
}
