package model

import "dormhub/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID           = "id"
	FieldRoomTypeID   = "room_type_id"
	FieldName         = "name"
	FieldStatus       = "status"
	FieldCurOccupancy = "cur_occupancy"
)

const (
	StatusVacant   = "vacant"
	StatusOccupied = "occupied"
)

type Room struct {
	ID           int64  `db:"id"`
	RoomTypeID   int64  `db:"room_type_id"`
	Name         string `db:"name"`
	Status       string `db:"status"`
	CurOccupancy int    `db:"cur_occupancy"`
	model.Metadata
}

// GetJoinQuery lets room queries filter on room type columns, dorm_id in particular.
func (Room) GetJoinQuery() string {
	return "JOIN room_types ON room_types.id = rooms.room_type_id"
}
