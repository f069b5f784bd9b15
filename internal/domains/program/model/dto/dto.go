package dto

import (
	"github.com/google/uuid"

	"campus/internal/domains/program/model"
	"campus/shared"
	gDto "campus/shared/dto"
	gModel "campus/shared/model"
	"campus/shared/timezone"
)

type CreateProgramRequest struct {
	Code          string  `json:"code"           validate:"required,max=50"`
	Name          string  `json:"name"           validate:"required,max=150"`
	Description   string  `json:"description"    validate:"omitempty,max=500"`
	Level         string  `json:"level"          validate:"omitempty,max=50"`
	DurationHours int     `json:"duration_hours" validate:"omitempty,gte=0"`
	ResponsibleID string  `json:"responsible_id" validate:"required,uuid"`
}

func (c *CreateProgramRequest) ToModel(actor string) model.Program {
	return model.Program{
		ID:            uuid.NewString(),
		Code:          c.Code,
		Name:          c.Name,
		Description:   c.Description,
		Level:         c.Level,
		DurationHours: c.DurationHours,
		ResponsibleID: c.ResponsibleID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type UpdateProgramRequest struct {
	Code          string  `db:"code"           json:"code"           validate:"omitempty,max=50"`
	Name          string  `db:"name"           json:"name"           validate:"omitempty,max=150"`
	Description   string  `db:"description"    json:"description"    validate:"omitempty,max=500"`
	Level         string  `db:"level"          json:"level"          validate:"omitempty,max=50"`
	DurationHours int     `db:"duration_hours" json:"duration_hours" validate:"omitempty,gte=0"`
	ResponsibleID string  `db:"responsible_id" json:"responsible_id" validate:"omitempty,uuid"`
}

type ProgramResponse struct {
	ID            string  `json:"id"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Level         string  `json:"level"`
	DurationHours int     `json:"duration_hours"`
	ResponsibleID string  `json:"responsible_id"`
	gDto.Metadata
}

func (r *ProgramResponse) FromModel(model model.Program) {
	r.ID = model.ID
	r.Code = model.Code
	r.Name = model.Name
	r.Description = model.Description
	r.Level = model.Level
	r.DurationHours = model.DurationHours
	r.ResponsibleID = model.ResponsibleID
	r.Metadata.FromModel(model.Metadata)
}

type GetProgramsResponse struct {
	Programs  []ProgramResponse `json:"programs"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetProgramsResponse) FromModels(models []model.Program, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Programs = make([]ProgramResponse, len(models))
	for i, mod := range models {
		r.Programs[i].FromModel(mod)
	}
}
