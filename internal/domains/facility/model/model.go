package model

import "dormhub/shared/model"

const (
	TableName  = "facilities"
	EntityName = "facility"

	FieldID   = "id"
	FieldName = "name"
)

type Facility struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	model.Metadata
}
