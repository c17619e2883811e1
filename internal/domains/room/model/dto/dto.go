package dto

import (
	"fmt"

	"dormhub/internal/domains/room/model"
	"dormhub/shared"
	gDto "dormhub/shared/dto"
	gModel "dormhub/shared/model"
	"dormhub/shared/timezone"
)

type CreateRoomTypeRequest struct {
	DormID        int64    `json:"dorm_id"               validate:"required,gt=0"`
	Name          string   `json:"name"                  validate:"required,min=1,max=255"`
	Description   *string  `json:"description,omitempty"`
	MaxOccupancy  int      `json:"max_occupancy"         validate:"required,gte=1"`
	DepositAmount float64  `json:"deposit_amount"        validate:"gte=0"`
	RentPerMonth  float64  `json:"rent_per_month"        validate:"required,gt=0"`
	RentPerDay    *float64 `json:"rent_per_day,omitempty" validate:"omitempty,gt=0"`
}

func (r *CreateRoomTypeRequest) ToModel(username string) model.RoomType {
	return model.RoomType{
		DormID:        r.DormID,
		Name:          r.Name,
		Description:   r.Description,
		MaxOccupancy:  r.MaxOccupancy,
		DepositAmount: r.DepositAmount,
		RentPerMonth:  r.RentPerMonth,
		RentPerDay:    r.RentPerDay,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type CreateRoomsRequest struct {
	RoomTypeID int64 `json:"room_type_id" validate:"required,gt=0"`
	Count      int   `json:"count"        validate:"required,gte=1,max=1000"`
}

// ToModels expands the request into room rows named after the type with a
// running number, all starting vacant.
func (r *CreateRoomsRequest) ToModels(typeName, username string, startIndex int) []model.Room {
	rooms := make([]model.Room, r.Count)
	for i := range rooms {
		rooms[i] = model.Room{
			RoomTypeID:   r.RoomTypeID,
			Name:         fmt.Sprintf("%s %d", typeName, startIndex+i+1),
			Status:       model.StatusVacant,
			CurOccupancy: 0,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  username,
				ModifiedBy: username,
			},
		}
	}

	return rooms
}

type CreateRoomTypeWithRoomsRequest struct {
	CreateRoomTypeRequest
	RoomCount int `json:"room_count" validate:"required,gte=1,max=1000"`
}

type UpdateRoomRequest struct {
	Status       *string `db:"status"        json:"status,omitempty"        validate:"omitempty,oneof=vacant occupied"`
	CurOccupancy *int    `db:"cur_occupancy" json:"cur_occupancy,omitempty" validate:"omitempty,gte=0"`
}

type RoomTypeResponse struct {
	ID            int64    `json:"id"`
	DormID        int64    `json:"dorm_id"`
	Name          string   `json:"name"`
	Description   *string  `json:"description,omitempty"`
	MaxOccupancy  int      `json:"max_occupancy"`
	DepositAmount float64  `json:"deposit_amount"`
	RentPerMonth  float64  `json:"rent_per_month"`
	RentPerDay    *float64 `json:"rent_per_day,omitempty"`
	gDto.Metadata
}

func (r *RoomTypeResponse) FromModel(model model.RoomType) {
	r.ID = model.ID
	r.DormID = model.DormID
	r.Name = model.Name
	r.Description = model.Description
	r.MaxOccupancy = model.MaxOccupancy
	r.DepositAmount = model.DepositAmount
	r.RentPerMonth = model.RentPerMonth
	r.RentPerDay = model.RentPerDay
	r.Metadata.FromModel(model.Metadata)
}

type RoomResponse struct {
	ID           int64  `json:"id"`
	RoomTypeID   int64  `json:"room_type_id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	CurOccupancy int    `json:"cur_occupancy"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomTypeID = model.RoomTypeID
	r.Name = model.Name
	r.Status = model.Status
	r.CurOccupancy = model.CurOccupancy
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type GetRoomTypesResponse struct {
	RoomTypes []RoomTypeResponse `json:"room_types"`
	Count     int                `json:"count"`
}

func (r *GetRoomTypesResponse) FromModels(models []model.RoomType) {
	r.Count = len(models)

	r.RoomTypes = make([]RoomTypeResponse, len(models))
	for i, mod := range models {
		r.RoomTypes[i].FromModel(mod)
	}
}

type RoomTypeWithRoomsResponse struct {
	RoomType RoomTypeResponse `json:"room_type"`
	Rooms    []RoomResponse   `json:"rooms"`
}
