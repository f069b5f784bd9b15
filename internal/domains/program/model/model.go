package model

import (
	"campus/shared/model"
)

const (
	TableName  = "programs"
	EntityName = "program"
)

const (
	FieldID            = "id"
	FieldCode          = "code"
	FieldName          = "name"
	FieldDescription   = "description"
	FieldLevel         = "level"
	FieldDurationHours = "duration_hours"
	FieldResponsibleID = "responsible_id"
)

type Program struct {
	ID            string  `db:"id"             json:"id"`
	Code          string  `db:"code"           json:"code"`
	Name          string  `db:"name"           json:"name"`
	Description   string  `db:"description"    json:"description"`
	Level         string  `db:"level"          json:"level"`
	DurationHours int     `db:"duration_hours" json:"duration_hours"`
	ResponsibleID string  `db:"responsible_id" json:"responsible_id"`
	model.Metadata
}
