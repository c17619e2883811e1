package model

import "dormhub/shared/model"

const (
	TypeTableName  = "room_types"
	TypeEntityName = "room_type"

	TypeFieldID            = "id"
	TypeFieldDormID        = "dorm_id"
	TypeFieldName          = "name"
	TypeFieldDescription   = "description"
	TypeFieldMaxOccupancy  = "max_occupancy"
	TypeFieldDepositAmount = "deposit_amount"
	TypeFieldRentPerMonth  = "rent_per_month"
	TypeFieldRentPerDay    = "rent_per_day"
)

type RoomType struct {
	ID            int64    `db:"id"`
	DormID        int64    `db:"dorm_id"`
	Name          string   `db:"name"`
	Description   *string  `db:"description"`
	MaxOccupancy  int      `db:"max_occupancy"`
	DepositAmount float64  `db:"deposit_amount"`
	RentPerMonth  float64  `db:"rent_per_month"`
	RentPerDay    *float64 `db:"rent_per_day"`
	model.Metadata
}
