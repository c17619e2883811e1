package repository

//go:generate go run go.uber.org/mock/mockgen -source=./owner.go -destination=../mocks/owner_mock.go -package=mocks

import (
	"context"
	"dormhub/infras/otel"
	"dormhub/infras/postgres"
	"dormhub/internal/domains/user/model"
	gDto "dormhub/shared/dto"
	gRepo "dormhub/shared/repository"
)

type Owner interface {
	InsertReturning(ctx context.Context, model model.Owner) (model.Owner, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Owner, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type ownerRepositoryImpl struct {
	gRepo.Repository[model.Owner]
	db   *postgres.Connection
	otel otel.Otel
}

func NewOwner(db *postgres.Connection, otel otel.Otel) Owner {
	return &ownerRepositoryImpl{
		Repository: gRepo.NewRepository[model.Owner](model.OwnerEntityName, model.OwnerTableName, model.OwnerFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
