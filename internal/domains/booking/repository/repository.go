package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dormhub/infras/otel"
	"dormhub/infras/postgres"
	"dormhub/internal/domains/booking/model"
	roomModel "dormhub/internal/domains/room/model"
	"dormhub/shared/constant"
	gDto "dormhub/shared/dto"
	"dormhub/shared/logger"
	gRepo "dormhub/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	GetRoomTypeTx(ctx context.Context, tx *sqlx.Tx, roomTypeID int64) (roomModel.RoomType, error)
	GetCandidateRoomsTx(ctx context.Context, tx *sqlx.Tx, roomTypeID int64) ([]roomModel.Room, error)
	CountOverlappingTx(ctx context.Context, tx *sqlx.Tx, roomID int64, begin, end time.Time) (int, error)
	InsertReturningTx(ctx context.Context, tx *sqlx.Tx, model model.Booking) (model.Booking, error)
	IncrementRoomOccupancyTx(ctx context.Context, tx *sqlx.Tx, roomID int64) error
	CountActiveOnDateTx(ctx context.Context, tx *sqlx.Tx, roomID int64, date time.Time) (int, error)
	SetRoomStatusTx(ctx context.Context, tx *sqlx.Tx, roomID int64, status string) error
	GetAccess(ctx context.Context, bookingID int64) (model.Access, error)
	UpdateStatusReturning(ctx context.Context, bookingID int64, status, modifiedBy string) (model.Booking, error)
	GetDetail(ctx context.Context, bookingID int64) (model.Detail, error)
	GetDetailsByBooker(ctx context.Context, bookerID int64, params gDto.QueryParams) ([]model.Detail, error)
	GetDetailsByOwnerUser(ctx context.Context, ownerUserID int64, params gDto.QueryParams) ([]model.Detail, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
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

// Overlap test for half-open [begin, end) intervals: touching bookings where
// one ends on the day the other begins do not collide.
const overlapCondition = `((b.begin_at <= $2 AND b.end_at > $2)
	OR (b.begin_at < $3 AND b.end_at >= $3)
	OR (b.begin_at >= $2 AND b.end_at <= $3))`

const detailSelect = `SELECT b.*,
	r.name AS room_name,
	rt.id AS room_type_id,
	rt.name AS room_type_name,
	rt.max_occupancy,
	d.id AS dorm_id,
	d.name AS dorm_name
FROM bookings b
JOIN rooms r ON r.id = b.room_id
JOIN room_types rt ON rt.id = r.room_type_id
JOIN dorms d ON d.id = rt.dorm_id`

func (repo *repositoryImpl) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return tx, nil
}

func (repo *repositoryImpl) GetRoomTypeTx(ctx context.Context, tx *sqlx.Tx, roomTypeID int64) (roomType roomModel.RoomType, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetRoomTypeTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := "SELECT * FROM room_types WHERE id = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = tx.GetContext(ctx, &roomType, query, roomTypeID)
	if errors.Is(err, sql.ErrNoRows) {
		return roomType, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return roomType, fmt.Errorf("failed to get room type: %w", err)
	}

	return roomType, nil
}

// GetCandidateRoomsTx locks the type's rooms for the duration of the
// transaction so concurrent bookings serialize on the same candidates.
// Ordering is the allocation tie-break: lowest occupancy first, then id.
func (repo *repositoryImpl) GetCandidateRoomsTx(ctx context.Context, tx *sqlx.Tx, roomTypeID int64) (rooms []roomModel.Room, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetCandidateRoomsTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := `SELECT * FROM rooms
		WHERE room_type_id = $1
		ORDER BY cur_occupancy ASC, id ASC
		FOR UPDATE`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = tx.SelectContext(ctx, &rooms, query, roomTypeID); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get candidate rooms: %w", err)
	}

	return rooms, nil
}

func (repo *repositoryImpl) CountOverlappingTx(ctx context.Context, tx *sqlx.Tx, roomID int64, begin, end time.Time) (count int, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CountOverlappingTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := `SELECT COUNT(*) FROM bookings b
		WHERE b.room_id = $1
		AND b.status NOT IN ('cancelled', 'rejected', 'lease_ended')
		AND ` + overlapCondition
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = tx.GetContext(ctx, &count, query, roomID, begin, end); err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}

	return count, nil
}

func (repo *repositoryImpl) IncrementRoomOccupancyTx(ctx context.Context, tx *sqlx.Tx, roomID int64) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.IncrementRoomOccupancyTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := "UPDATE rooms SET cur_occupancy = cur_occupancy + 1 WHERE id = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err = tx.ExecContext(ctx, query, roomID); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to increment room occupancy: %w", err)
	}

	return nil
}

func (repo *repositoryImpl) CountActiveOnDateTx(ctx context.Context, tx *sqlx.Tx, roomID int64, date time.Time) (count int, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CountActiveOnDateTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := `SELECT COUNT(*) FROM bookings b
		WHERE b.room_id = $1
		AND b.status NOT IN ('cancelled', 'rejected', 'lease_ended')
		AND b.begin_at <= $2 AND b.end_at > $2`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = tx.GetContext(ctx, &count, query, roomID, date); err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to count active bookings: %w", err)
	}

	return count, nil
}

func (repo *repositoryImpl) SetRoomStatusTx(ctx context.Context, tx *sqlx.Tx, roomID int64, status string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.SetRoomStatusTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := "UPDATE rooms SET status = $1 WHERE id = $2"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err = tx.ExecContext(ctx, query, status, roomID); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to set room status: %w", err)
	}

	return nil
}

func (repo *repositoryImpl) GetAccess(ctx context.Context, bookingID int64) (access model.Access, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetAccess")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := `SELECT b.id, b.booker_id, b.status, b.room_id, o.user_id AS owner_user_id
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		JOIN room_types rt ON rt.id = r.room_type_id
		JOIN dorms d ON d.id = rt.dorm_id
		JOIN dorm_owners o ON o.id = d.owner_id
		WHERE b.id = $1`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, &access, query, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return access, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return access, fmt.Errorf("failed to get booking access: %w", err)
	}

	return access, nil
}

func (repo *repositoryImpl) UpdateStatusReturning(ctx context.Context, bookingID int64, status, modifiedBy string) (booking model.Booking, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.UpdateStatusReturning")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := `UPDATE bookings
		SET status = $1, modified_at = NOW(), modified_by = $2
		WHERE id = $3
		RETURNING *`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Write.GetContext(ctx, &booking, query, status, modifiedBy, bookingID); err != nil {
		logger.ErrorWithStack(err)

		return booking, fmt.Errorf("failed to update booking status: %w", err)
	}

	return booking, nil
}

func (repo *repositoryImpl) GetDetail(ctx context.Context, bookingID int64) (detail model.Detail, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetDetail")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := detailSelect + " WHERE b.id = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.db.Read.GetContext(ctx, &detail, query, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return detail, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return detail, fmt.Errorf("failed to get booking detail: %w", err)
	}

	return detail, nil
}

func (repo *repositoryImpl) GetDetailsByBooker(ctx context.Context, bookerID int64, params gDto.QueryParams) ([]model.Detail, error) {
	return repo.getDetails(ctx, "b.booker_id = $1", bookerID, params)
}

func (repo *repositoryImpl) GetDetailsByOwnerUser(ctx context.Context, ownerUserID int64, params gDto.QueryParams) ([]model.Detail, error) {
	query := detailSelect + `
		JOIN dorm_owners o ON o.id = d.owner_id
		WHERE o.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3`

	return repo.selectDetails(ctx, "GetDetailsByOwnerUser", query, ownerUserID, params)
}

func (repo *repositoryImpl) getDetails(ctx context.Context, condition string, arg int64, params gDto.QueryParams) ([]model.Detail, error) {
	query := detailSelect + `
		WHERE ` + condition + `
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3`

	return repo.selectDetails(ctx, "GetDetailsByBooker", query, arg, params)
}

func (repo *repositoryImpl) selectDetails(ctx context.Context, name, query string, arg int64, params gDto.QueryParams) (details []model.Detail, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking."+name)
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	limit := params.Limit
	if limit <= 0 {
		limit = constant.DefaultValueLimit
	}

	page := params.Page
	if page <= 0 {
		page = constant.DefaultValuePage
	}

	offset := (page - 1) * limit

	if err = repo.db.Read.SelectContext(ctx, &details, query, arg, limit, offset); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get booking details: %w", err)
	}

	return details, nil
}
