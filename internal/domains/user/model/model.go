package model

import "dormhub/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID           = "id"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldRole         = "role"
	FieldFirstName    = "first_name"
	FieldLastName     = "last_name"
	FieldTel          = "tel"
	FieldProfileImage = "profile_image"
	FieldLastLogin    = "last_login"
	FieldActive       = "active"
)

type User struct {
	ID           int64   `db:"id"`
	Email        string  `db:"email"`
	Password     string  `db:"password"`
	Role         string  `db:"role"`
	FirstName    string  `db:"first_name"`
	LastName     string  `db:"last_name"`
	Tel          *string `db:"tel"`
	ProfileImage *string `db:"profile_image"`
	LastLogin    *string `db:"last_login"`
	Active       bool    `db:"active"`
	model.Metadata
}
