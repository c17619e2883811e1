package dto

import (
	"dormhub/internal/domains/facility/model"
	"dormhub/shared"
	gDto "dormhub/shared/dto"
	gModel "dormhub/shared/model"
	"dormhub/shared/timezone"
)

type CreateFacilityRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (r *CreateFacilityRequest) ToModel(username string) model.Facility {
	return model.Facility{
		Name: r.Name,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type UpdateFacilityRequest struct {
	Name string `db:"name" json:"name" validate:"required,max=100"`
}

type FacilityResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	gDto.Metadata
}

func (r *FacilityResponse) FromModel(model model.Facility) {
	r.ID = model.ID
	r.Name = model.Name
	r.Metadata.FromModel(model.Metadata)
}

type GetFacilitiesResponse struct {
	Facilities []FacilityResponse `json:"facilities"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetFacilitiesResponse) FromModels(models []model.Facility, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Facilities = make([]FacilityResponse, len(models))
	for i, m := range models {
		r.Facilities[i].FromModel(m)
	}
}
