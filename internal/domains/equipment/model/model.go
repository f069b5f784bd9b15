package model

import (
	"time"

	"campus/shared/model"
)

const (
	TableName  = "equipments"
	EntityName = "equipment"

	FieldID        = "id"
	FieldCode      = "code"
	FieldType      = "equipment_type"
	FieldAvailable = "available"
	FieldBrand     = "brand"
	FieldModel     = "model"
	FieldCondition = "condition"
	FieldLocation  = "location"
)

// Discriminant values for the equipment variants.
const (
	TypeComputer       = "computer"
	TypeVideoProjector = "video_projector"
)

const (
	ConditionGood   = "good"
	ConditionFair   = "fair"
	ConditionFaulty = "faulty"
)

// Equipment is a tagged union over the two variants. The shared columns
// are always set; variant columns are nullable and only populated for
// the matching EquipmentType.
type Equipment struct {
	ID            string  `db:"id"`
	Code          string  `db:"code"`
	EquipmentType string  `db:"equipment_type"`
	Available     bool    `db:"available"`
	Brand         string  `db:"brand"`
	Model         string  `db:"model"`
	Condition     string  `db:"condition"`
	AcquiredAt    *time.Time `db:"acquired_at"`
	Location      string  `db:"location"`

	// computer
	Processor       *string `db:"processor"`
	RAM             *int    `db:"ram"`
	Storage         *int    `db:"storage"`
	ScreenSize      *float64 `db:"screen_size"`
	OperatingSystem *string `db:"operating_system"`
	FormFactor      *string `db:"form_factor"`

	// video projector
	Description    *string  `db:"description"`
	Resolution     *string  `db:"resolution"`
	Brightness     *int     `db:"brightness"`
	Connectivity   *string  `db:"connectivity"`
	Weight         *float64 `db:"weight"`
	ProjectionType *string  `db:"projection_type"`

	model.Metadata
}

func (e *Equipment) IsComputer() bool {
	return e.EquipmentType == TypeComputer
}

func (e *Equipment) IsVideoProjector() bool {
	return e.EquipmentType == TypeVideoProjector
}
