package model

import "dormhub/shared/model"

const (
	TableName  = "dorms"
	EntityName = "dorm"

	FieldID          = "id"
	FieldOwnerID     = "owner_id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldLatitude    = "latitude"
	FieldLongitude   = "longitude"
	FieldSoi         = "soi"
	FieldMoo         = "moo"
	FieldRoad        = "road"
	FieldProvince    = "province"
	FieldDistrict    = "district"
	FieldSubdistrict = "subdistrict"
	FieldPostalCode  = "postal_code"
	FieldTel         = "tel"
	FieldLineID      = "line_id"
	FieldWaterCost   = "water_cost_per_unit"
	FieldPowerCost   = "power_cost_per_unit"
	FieldMedias      = "medias"
	FieldAvgScore    = "avg_score"
)

type Dorm struct {
	ID               int64     `db:"id"`
	OwnerID          int64     `db:"owner_id"`
	Name             string    `db:"name"`
	Description      *string   `db:"description"`
	Latitude         *float64  `db:"latitude"`
	Longitude        *float64  `db:"longitude"`
	Soi              *string   `db:"soi"`
	Moo              *string   `db:"moo"`
	Road             *string   `db:"road"`
	Province         string    `db:"province"`
	District         string    `db:"district"`
	Subdistrict      *string   `db:"subdistrict"`
	PostalCode       *string   `db:"postal_code"`
	Tel              *string   `db:"tel"`
	LineID           *string   `db:"line_id"`
	WaterCostPerUnit *float64  `db:"water_cost_per_unit"`
	PowerCostPerUnit *float64  `db:"power_cost_per_unit"`
	Medias           MediaList `db:"medias"`
	AvgScore         float64   `db:"avg_score"`
	model.Metadata
}

// SearchRow is a dorm joined with its per-dorm room statistics. DistanceKm
// is only populated when the search carries a geo point.
type SearchRow struct {
	Dorm
	TotalRooms     int      `db:"total_rooms"`
	AvailableRooms int      `db:"available_rooms"`
	MinPrice       *float64 `db:"min_price"`
	MaxPrice       *float64 `db:"max_price"`
	DistanceKm     *float64 `db:"distance_km"`
}
