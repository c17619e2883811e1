package dto

import (
	"dormhub/internal/domains/dorm/model"
	roomDto "dormhub/internal/domains/room/model/dto"
	"dormhub/shared"
	"dormhub/shared/constant"
	gDto "dormhub/shared/dto"
	gModel "dormhub/shared/model"
	"dormhub/shared/timezone"
)

type CreateDormRequest struct {
	Name             string   `json:"name"                          validate:"required,min=1,max=255"`
	Description      *string  `json:"description,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"            validate:"omitempty,latitude"`
	Longitude        *float64 `json:"longitude,omitempty"           validate:"omitempty,longitude"`
	Soi              *string  `json:"soi,omitempty"                 validate:"omitempty,max=100"`
	Moo              *string  `json:"moo,omitempty"                 validate:"omitempty,max=100"`
	Road             *string  `json:"road,omitempty"                validate:"omitempty,max=100"`
	Province         string   `json:"province"                      validate:"required,max=100"`
	District         string   `json:"district"                      validate:"required,max=100"`
	Subdistrict      *string  `json:"subdistrict,omitempty"         validate:"omitempty,max=100"`
	PostalCode       *string  `json:"postal_code,omitempty"         validate:"omitempty,max=10"`
	Tel              *string  `json:"tel,omitempty"                 validate:"omitempty,max=20"`
	LineID           *string  `json:"line_id,omitempty"             validate:"omitempty,max=100"`
	WaterCostPerUnit *float64 `json:"water_cost_per_unit,omitempty" validate:"omitempty,gte=0"`
	PowerCostPerUnit *float64 `json:"power_cost_per_unit,omitempty" validate:"omitempty,gte=0"`
	FacilityIDs      []int64  `json:"facility_ids,omitempty"        validate:"omitempty,dive,gt=0"`
}

func (r *CreateDormRequest) ToModel(ownerID int64, username string) model.Dorm {
	return model.Dorm{
		OwnerID:          ownerID,
		Name:             r.Name,
		Description:      r.Description,
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
		Soi:              r.Soi,
		Moo:              r.Moo,
		Road:             r.Road,
		Province:         r.Province,
		District:         r.District,
		Subdistrict:      r.Subdistrict,
		PostalCode:       r.PostalCode,
		Tel:              r.Tel,
		LineID:           r.LineID,
		WaterCostPerUnit: r.WaterCostPerUnit,
		PowerCostPerUnit: r.PowerCostPerUnit,
		Medias:           model.MediaList{},
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type UpdateDormRequest struct {
	Name             *string  `db:"name"                json:"name,omitempty"                validate:"omitempty,min=1,max=255"`
	Description      *string  `db:"description"         json:"description,omitempty"`
	Latitude         *float64 `db:"latitude"            json:"latitude,omitempty"            validate:"omitempty,latitude"`
	Longitude        *float64 `db:"longitude"           json:"longitude,omitempty"           validate:"omitempty,longitude"`
	Soi              *string  `db:"soi"                 json:"soi,omitempty"                 validate:"omitempty,max=100"`
	Moo              *string  `db:"moo"                 json:"moo,omitempty"                 validate:"omitempty,max=100"`
	Road             *string  `db:"road"                json:"road,omitempty"                validate:"omitempty,max=100"`
	Province         *string  `db:"province"            json:"province,omitempty"            validate:"omitempty,max=100"`
	District         *string  `db:"district"            json:"district,omitempty"            validate:"omitempty,max=100"`
	Subdistrict      *string  `db:"subdistrict"         json:"subdistrict,omitempty"         validate:"omitempty,max=100"`
	PostalCode       *string  `db:"postal_code"         json:"postal_code,omitempty"         validate:"omitempty,max=10"`
	Tel              *string  `db:"tel"                 json:"tel,omitempty"                 validate:"omitempty,max=20"`
	LineID           *string  `db:"line_id"             json:"line_id,omitempty"             validate:"omitempty,max=100"`
	WaterCostPerUnit *float64 `db:"water_cost_per_unit" json:"water_cost_per_unit,omitempty" validate:"omitempty,gte=0"`
	PowerCostPerUnit *float64 `db:"power_cost_per_unit" json:"power_cost_per_unit,omitempty" validate:"omitempty,gte=0"`
}

type MediaResponse struct {
	FileName   string `json:"file_name"`
	FilePath   string `json:"file_path"`
	FileType   string `json:"file_type"`
	FileSize   int64  `json:"file_size"`
	MimeType   string `json:"mime_type"`
	UploadedAt string `json:"uploaded_at"`
}

func mediaResponses(medias model.MediaList) []MediaResponse {
	res := make([]MediaResponse, len(medias))
	for i, media := range medias {
		res[i] = MediaResponse{
			FileName:   media.FileName,
			FilePath:   media.FilePath,
			FileType:   media.FileType,
			FileSize:   media.FileSize,
			MimeType:   media.MimeType,
			UploadedAt: timezone.Format(media.UploadedAt, constant.DateFormat),
		}
	}

	return res
}

type DormResponse struct {
	ID               int64           `json:"id"`
	OwnerID          int64           `json:"owner_id"`
	Name             string          `json:"name"`
	Description      *string         `json:"description,omitempty"`
	Latitude         *float64        `json:"latitude,omitempty"`
	Longitude        *float64        `json:"longitude,omitempty"`
	Soi              *string         `json:"soi,omitempty"`
	Moo              *string         `json:"moo,omitempty"`
	Road             *string         `json:"road,omitempty"`
	Province         string          `json:"province"`
	District         string          `json:"district"`
	Subdistrict      *string         `json:"subdistrict,omitempty"`
	PostalCode       *string         `json:"postal_code,omitempty"`
	Tel              *string         `json:"tel,omitempty"`
	LineID           *string         `json:"line_id,omitempty"`
	WaterCostPerUnit *float64        `json:"water_cost_per_unit,omitempty"`
	PowerCostPerUnit *float64        `json:"power_cost_per_unit,omitempty"`
	Medias           []MediaResponse `json:"medias"`
	AvgScore         float64         `json:"avg_score"`
	gDto.Metadata
}

func (r *DormResponse) FromModel(model model.Dorm) {
	r.ID = model.ID
	r.OwnerID = model.OwnerID
	r.Name = model.Name
	r.Description = model.Description
	r.Latitude = model.Latitude
	r.Longitude = model.Longitude
	r.Soi = model.Soi
	r.Moo = model.Moo
	r.Road = model.Road
	r.Province = model.Province
	r.District = model.District
	r.Subdistrict = model.Subdistrict
	r.PostalCode = model.PostalCode
	r.Tel = model.Tel
	r.LineID = model.LineID
	r.WaterCostPerUnit = model.WaterCostPerUnit
	r.PowerCostPerUnit = model.PowerCostPerUnit
	r.Medias = mediaResponses(model.Medias)
	r.AvgScore = model.AvgScore
	r.Metadata.FromModel(model.Metadata)
}

type GetDormsResponse struct {
	Dorms     []DormResponse `json:"dorms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetDormsResponse) FromModels(models []model.Dorm, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Dorms = make([]DormResponse, len(models))
	for i, mod := range models {
		r.Dorms[i].FromModel(mod)
	}
}

type OwnerInfo struct {
	UserID    int64   `json:"user_id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Tel       *string `json:"tel,omitempty"`
}

type DormDetailResponse struct {
	DormResponse
	Facilities []string                   `json:"facilities"`
	RoomTypes  []roomDto.RoomTypeResponse `json:"room_types"`
	Owner      OwnerInfo                  `json:"owner"`
}

type SearchDormsRequest struct {
	Query             string   `json:"query"                validate:"omitempty,max=255"`
	Latitude          *float64 `json:"latitude"             validate:"omitempty,latitude"`
	Longitude         *float64 `json:"longitude"            validate:"omitempty,longitude"`
	RadiusKm          *float64 `json:"radius_km"            validate:"omitempty,gt=0"`
	MinPrice          *float64 `json:"min_price"            validate:"omitempty,gte=0"`
	MaxPrice          *float64 `json:"max_price"            validate:"omitempty,gte=0"`
	Facilities        []string `json:"facilities"           validate:"omitempty,dive,min=1"`
	HasAvailableRooms bool     `json:"has_available_rooms"`
	Limit             int      `json:"limit"                validate:"omitempty,min=1,max=100"`
	Offset            int      `json:"offset"               validate:"omitempty,gte=0"`
}

// HasGeo reports whether the request carries a usable geo point.
func (r *SearchDormsRequest) HasGeo() bool {
	return r.Latitude != nil && r.Longitude != nil
}

type SearchDormResult struct {
	DormResponse
	TotalRooms     int      `json:"total_rooms"`
	AvailableRooms int      `json:"available_rooms"`
	MinPrice       *float64 `json:"min_price,omitempty"`
	MaxPrice       *float64 `json:"max_price,omitempty"`
	DistanceKm     *float64 `json:"distance_km,omitempty"`
}

type SearchDormsResponse struct {
	Dorms []SearchDormResult `json:"dorms"`
	Count int                `json:"count"`
}

func (r *SearchDormsResponse) FromRows(rows []model.SearchRow) {
	r.Count = len(rows)

	r.Dorms = make([]SearchDormResult, len(rows))
	for i, row := range rows {
		r.Dorms[i].DormResponse.FromModel(row.Dorm)
		r.Dorms[i].TotalRooms = row.TotalRooms
		r.Dorms[i].AvailableRooms = row.AvailableRooms
		r.Dorms[i].MinPrice = row.MinPrice
		r.Dorms[i].MaxPrice = row.MaxPrice
		r.Dorms[i].DistanceKm = row.DistanceKm
	}
}
