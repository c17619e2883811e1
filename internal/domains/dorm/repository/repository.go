package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"dormhub/infras/otel"
	"dormhub/infras/postgres"
	"dormhub/internal/domains/dorm/model"
	"dormhub/shared/constant"
	gDto "dormhub/shared/dto"
	"dormhub/shared/logger"
	gRepo "dormhub/shared/repository"
)

type Dorm interface {
	InsertReturning(ctx context.Context, model model.Dorm) (model.Dorm, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Dorm, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Dorm, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Search(ctx context.Context, criteria SearchCriteria) ([]model.SearchRow, error)
	SetFacilities(ctx context.Context, dormID int64, facilityIDs []int64) error
	GetFacilityNames(ctx context.Context, dormID int64) ([]string, error)
}

// SearchCriteria is the repository-level view of a dorm search. Pointer
// fields are skipped when nil; Limit is assumed pre-clamped by the service.
type SearchCriteria struct {
	Query             string
	Latitude          *float64
	Longitude         *float64
	RadiusKm          *float64
	MinPrice          *float64
	MaxPrice          *float64
	Facilities        []string
	HasAvailableRooms bool
	Limit             int
	Offset            int
}

type repositoryImpl struct {
	gRepo.Repository[model.Dorm]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Dorm {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Dorm](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const searchStatsCTE = `WITH dorm_stats AS (
	SELECT d.id AS dorm_id,
		COUNT(r.id) AS total_rooms,
		COUNT(r.id) FILTER (WHERE r.status = 'vacant') AS available_rooms,
		MIN(rt.rent_per_month) AS min_price,
		MAX(rt.rent_per_month) AS max_price
	FROM dorms d
	LEFT JOIN room_types rt ON rt.dorm_id = d.id
	LEFT JOIN rooms r ON r.room_type_id = rt.id
	GROUP BY d.id
)`

const haversineExpr = `(6371 * acos(
	cos(radians(:geo_lat)) * cos(radians(d.latitude)) *
	cos(radians(d.longitude) - radians(:geo_lng)) +
	sin(radians(:geo_lat)) * sin(radians(d.latitude))
))`

// Search runs the dorm search as a single statement: a stats CTE joined back
// to dorms, with every filter expressed as a named condition. Ordering is
// distance first when the criteria carry a geo point, score first otherwise.
func (repo *repositoryImpl) Search(ctx context.Context, criteria SearchCriteria) (rows []model.SearchRow, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".dorm.Search")
	defer scope.End()
	defer scope.TraceIfError(err)

	args := map[string]any{
		"limit":  criteria.Limit,
		"offset": criteria.Offset,
	}

	distanceSelect := "NULL::float8 AS distance_km"
	geo := criteria.Latitude != nil && criteria.Longitude != nil

	if geo {
		distanceSelect = haversineExpr + " AS distance_km"
		args["geo_lat"] = *criteria.Latitude
		args["geo_lng"] = *criteria.Longitude
	}

	conditions := []string{}

	if criteria.Query != "" {
		conditions = append(conditions, `(LOWER(d.name) LIKE LOWER(:text_query)
			OR LOWER(COALESCE(d.description, '')) LIKE LOWER(:text_query)
			OR LOWER(CONCAT_WS(' ', d.road, d.subdistrict, d.district, d.province)) LIKE LOWER(:text_query))`)
		args["text_query"] = "%" + criteria.Query + "%"
	}

	if geo && criteria.RadiusKm != nil {
		conditions = append(conditions, "d.latitude IS NOT NULL AND d.longitude IS NOT NULL AND "+haversineExpr+" <= :radius_km")
		args["radius_km"] = *criteria.RadiusKm
	}

	if criteria.MinPrice != nil {
		conditions = append(conditions, "s.min_price >= :min_price")
		args["min_price"] = *criteria.MinPrice
	}

	if criteria.MaxPrice != nil {
		conditions = append(conditions, "s.min_price <= :max_price")
		args["max_price"] = *criteria.MaxPrice
	}

	if criteria.HasAvailableRooms {
		conditions = append(conditions, "s.available_rooms > 0")
	}

	if len(criteria.Facilities) > 0 {
		facilityConds := make([]string, len(criteria.Facilities))

		for i, name := range criteria.Facilities {
			argName := fmt.Sprintf("facility_%d", i)
			facilityConds[i] = fmt.Sprintf(`:%s = ANY(
				SELECT f.name FROM dorm_facilities df
				JOIN facilities f ON f.id = df.facility_id
				WHERE df.dorm_id = d.id)`, argName)
			args[argName] = name
		}

		conditions = append(conditions, strings.Join(facilityConds, " AND "))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	ordering := "ORDER BY d.avg_score DESC, d.name ASC"
	if geo {
		ordering = "ORDER BY distance_km ASC, d.avg_score DESC"
	}

	query := fmt.Sprintf(`%s
SELECT d.*, s.total_rooms, s.available_rooms, s.min_price, s.max_price, %s
FROM dorms d
JOIN dorm_stats s ON s.dorm_id = d.id
%s
%s
LIMIT :limit OFFSET :offset`, searchStatsCTE, distanceSelect, where, ordering)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to prepare statement (dorm search): %w", err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, &rows, args); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to search dorms: %w", err)
	}

	return rows, nil
}

// SetFacilities replaces the dorm's facility links in one transaction.
func (repo *repositoryImpl) SetFacilities(ctx context.Context, dormID int64, facilityIDs []int64) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".dorm.SetFacilities")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.ErrorWithStack(rbErr)
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM dorm_facilities WHERE dorm_id = $1", dormID); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to clear dorm facilities: %w", err)
	}

	for _, facilityID := range facilityIDs {
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO dorm_facilities (dorm_id, facility_id) VALUES ($1, $2)", dormID, facilityID); err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to link dorm facility: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (repo *repositoryImpl) GetFacilityNames(ctx context.Context, dormID int64) (names []string, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".dorm.GetFacilityNames")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := `SELECT f.name FROM dorm_facilities df
		JOIN facilities f ON f.id = df.facility_id
		WHERE df.dorm_id = $1
		ORDER BY f.name`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.SelectContext(ctx, &names, query, dormID); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get dorm facilities: %w", err)
	}

	return names, nil
}
