package repository

//go:generate go run go.uber.org/mock/mockgen -source=./room_type.go -destination=../mocks/room_type_mock.go -package=mocks

import (
	"context"

	"dormhub/infras/otel"
	"dormhub/infras/postgres"
	"dormhub/internal/domains/room/model"
	gDto "dormhub/shared/dto"
	gRepo "dormhub/shared/repository"

	"github.com/jmoiron/sqlx"
)

type RoomType interface {
	InsertReturning(ctx context.Context, model model.RoomType) (model.RoomType, error)
	InsertReturningTx(ctx context.Context, tx *sqlx.Tx, model model.RoomType) (model.RoomType, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.RoomType, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomType, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type roomTypeRepositoryImpl struct {
	gRepo.Repository[model.RoomType]
	db   *postgres.Connection
	otel otel.Otel
}

func NewRoomType(db *postgres.Connection, otel otel.Otel) RoomType {
	return &roomTypeRepositoryImpl{
		Repository: gRepo.NewRepository[model.RoomType](model.TypeEntityName, model.TypeTableName, model.TypeFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
