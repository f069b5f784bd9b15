package dto

import (
	"time"

	"github.com/google/uuid"

	"campus/internal/domains/equipment/model"
	"campus/shared"
	gDto "campus/shared/dto"
	gModel "campus/shared/model"
	"campus/shared/timezone"
)

type CreateEquipmentRequest struct {
	Code          string     `json:"code"           validate:"required,max=50"`
	EquipmentType string     `json:"equipment_type" validate:"required,oneof=computer video_projector"`
	Available     *bool      `json:"available"      validate:"omitempty"`
	Brand         string     `json:"brand"          validate:"omitempty,max=100"`
	Model         string     `json:"model"          validate:"omitempty,max=100"`
	Condition     string     `json:"condition"      validate:"omitempty,oneof=good fair faulty"`
	AcquiredAt    *time.Time `json:"acquired_at"    validate:"omitempty"`
	Location      string     `json:"location"       validate:"omitempty,max=100"`

	Computer       *ComputerAttributes       `json:"computer"        validate:"omitempty"`
	VideoProjector *VideoProjectorAttributes `json:"video_projector" validate:"omitempty"`
}

type ComputerAttributes struct {
	Processor       string  `json:"processor"        validate:"omitempty,max=100"`
	RAM             int     `json:"ram"              validate:"omitempty,gt=0"`
	Storage         int     `json:"storage"          validate:"omitempty,gt=0"`
	ScreenSize      float64 `json:"screen_size"      validate:"omitempty,gt=0"`
	OperatingSystem string  `json:"operating_system" validate:"omitempty,max=50"`
	FormFactor      string  `json:"form_factor"      validate:"omitempty,max=50"`
}

type VideoProjectorAttributes struct {
	Description    string  `json:"description"     validate:"omitempty,max=500"`
	Resolution     string  `json:"resolution"      validate:"omitempty,max=50"`
	Brightness     int     `json:"brightness"      validate:"omitempty,gt=0"`
	Connectivity   string  `json:"connectivity"    validate:"omitempty,max=100"`
	Weight         float64 `json:"weight"          validate:"omitempty,gt=0"`
	ProjectionType string  `json:"projection_type" validate:"omitempty,max=50"`
}

func (c *CreateEquipmentRequest) ToModel(actor string) model.Equipment {
	available := true
	if c.Available != nil {
		available = *c.Available
	}

	condition := c.Condition
	if condition == "" {
		condition = model.ConditionGood
	}

	// condition "faulty" never yields an available unit
	if condition == model.ConditionFaulty {
		available = false
	}

	equipment := model.Equipment{
		ID:            uuid.NewString(),
		Code:          c.Code,
		EquipmentType: c.EquipmentType,
		Available:     available,
		Brand:         c.Brand,
		Model:         c.Model,
		Condition:     condition,
		AcquiredAt:    c.AcquiredAt,
		Location:      c.Location,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}

	switch c.EquipmentType {
	case model.TypeComputer:
		if c.Computer != nil {
			equipment.Processor = &c.Computer.Processor
			equipment.RAM = &c.Computer.RAM
			equipment.Storage = &c.Computer.Storage
			equipment.ScreenSize = &c.Computer.ScreenSize
			equipment.OperatingSystem = &c.Computer.OperatingSystem
			equipment.FormFactor = &c.Computer.FormFactor
		}
	case model.TypeVideoProjector:
		if c.VideoProjector != nil {
			equipment.Description = &c.VideoProjector.Description
			equipment.Resolution = &c.VideoProjector.Resolution
			equipment.Brightness = &c.VideoProjector.Brightness
			equipment.Connectivity = &c.VideoProjector.Connectivity
			equipment.Weight = &c.VideoProjector.Weight
			equipment.ProjectionType = &c.VideoProjector.ProjectionType
		}
	}

	return equipment
}

type UpdateEquipmentRequest struct {
	Code      string `db:"code"      json:"code"      validate:"omitempty,max=50"`
	Available *bool  `db:"available" json:"available" validate:"omitempty"`
	Brand     string `db:"brand"     json:"brand"     validate:"omitempty,max=100"`
	Model     string `db:"model"     json:"model"     validate:"omitempty,max=100"`
	Location  string `db:"location"  json:"location"  validate:"omitempty,max=100"`
}

type UpdateConditionRequest struct {
	Condition string `json:"condition" validate:"required,oneof=good fair faulty"`
}

type RelocateEquipmentRequest struct {
	Location string `json:"location" validate:"required,max=100"`
}

type EquipmentResponse struct {
	ID            string     `json:"id"`
	Code          string     `json:"code"`
	EquipmentType string     `json:"equipment_type"`
	Available     bool       `json:"available"`
	Brand         string     `json:"brand"`
	Model         string     `json:"model"`
	Condition     string     `json:"condition"`
	AcquiredAt    *time.Time `json:"acquired_at,omitempty"`
	Location      string     `json:"location"`

	Computer       *ComputerAttributes       `json:"computer,omitempty"`
	VideoProjector *VideoProjectorAttributes `json:"video_projector,omitempty"`

	gDto.Metadata
}

func (r *EquipmentResponse) FromModel(mod model.Equipment) {
	r.ID = mod.ID
	r.Code = mod.Code
	r.EquipmentType = mod.EquipmentType
	r.Available = mod.Available
	r.Brand = mod.Brand
	r.Model = mod.Model
	r.Condition = mod.Condition
	r.AcquiredAt = mod.AcquiredAt
	r.Location = mod.Location
	r.Metadata.FromModel(mod.Metadata)

	switch {
	case mod.IsComputer():
		r.Computer = &ComputerAttributes{
			Processor:       deref(mod.Processor),
			RAM:             deref(mod.RAM),
			Storage:         deref(mod.Storage),
			ScreenSize:      deref(mod.ScreenSize),
			OperatingSystem: deref(mod.OperatingSystem),
			FormFactor:      deref(mod.FormFactor),
		}
	case mod.IsVideoProjector():
		r.VideoProjector = &VideoProjectorAttributes{
			Description:    deref(mod.Description),
			Resolution:     deref(mod.Resolution),
			Brightness:     deref(mod.Brightness),
			Connectivity:   deref(mod.Connectivity),
			Weight:         deref(mod.Weight),
			ProjectionType: deref(mod.ProjectionType),
		}
	}
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}

	return *v
}

type FreeEquipmentsRequest struct {
	Day       string `json:"day"        validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time"   validate:"required,datetime=15:04"`
}

type FreeEquipmentsResponse struct {
	Equipments []EquipmentResponse `json:"equipments"`
}

func (r *FreeEquipmentsResponse) FromModels(models []model.Equipment) {
	r.Equipments = make([]EquipmentResponse, len(models))
	for i, mod := range models {
		r.Equipments[i].FromModel(mod)
	}
}

type GetEquipmentsResponse struct {
	Equipments []EquipmentResponse `json:"equipments"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetEquipmentsResponse) FromModels(models []model.Equipment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Equipments = make([]EquipmentResponse, len(models))
	for i, mod := range models {
		r.Equipments[i].FromModel(mod)
	}
}
