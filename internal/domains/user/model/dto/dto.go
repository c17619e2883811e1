package dto

import (
	"dormhub/internal/domains/user/model"
	"dormhub/shared"
	gDto "dormhub/shared/dto"
)

type UserResponse struct {
	ID           int64   `json:"id"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Tel          *string `json:"tel,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
	LastLogin    *string `json:"last_login,omitempty"`
	Active       bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Role = model.Role
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.Tel = model.Tel
	r.ProfileImage = model.ProfileImage
	r.LastLogin = model.LastLogin
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type UpdateUserRequest struct {
	FirstName    *string `db:"first_name"    json:"first_name,omitempty"    validate:"omitempty,min=1,max=100"`
	LastName     *string `db:"last_name"     json:"last_name,omitempty"     validate:"omitempty,min=1,max=100"`
	Tel          *string `db:"tel"           json:"tel,omitempty"           validate:"omitempty,max=20"`
	ProfileImage *string `db:"profile_image" json:"profile_image,omitempty"`
	Active       *bool   `db:"active"        json:"active,omitempty"`
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

type RegisterOwnerRequest struct {
	BankToken *string `json:"bank_token,omitempty" validate:"omitempty,max=255"`
}

type UpdateBankTokenRequest struct {
	BankToken string `db:"bank_token" json:"bank_token" validate:"required,max=255"`
}

type OwnerResponse struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	BankToken *string `json:"bank_token,omitempty"`
	gDto.Metadata
}

func (r *OwnerResponse) FromModel(model model.Owner) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.BankToken = model.BankToken
	r.Metadata.FromModel(model.Metadata)
}
