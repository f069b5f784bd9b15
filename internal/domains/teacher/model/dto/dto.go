package dto

import (
	"github.com/google/uuid"

	"campus/internal/domains/teacher/model"
	"campus/shared"
	gDto "campus/shared/dto"
	gModel "campus/shared/model"
	"campus/shared/timezone"
)

type CreateTeacherRequest struct {
	LastName  string `json:"last_name"  validate:"required,max=100"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	Email     string `json:"email"      validate:"omitempty,email,max=100"`
	Phone     string `json:"phone"      validate:"omitempty,max=20"`
	Specialty string `json:"specialty"  validate:"omitempty,max=100"`
}

func (c *CreateTeacherRequest) ToModel(actor string) model.Teacher {
	return model.Teacher{
		ID:        uuid.NewString(),
		LastName:  c.LastName,
		FirstName: c.FirstName,
		Email:     c.Email,
		Phone:     c.Phone,
		Specialty: c.Specialty,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type UpdateTeacherRequest struct {
	LastName  string `db:"last_name"  json:"last_name"  validate:"omitempty,max=100"`
	FirstName string `db:"first_name" json:"first_name" validate:"omitempty,max=100"`
	Email     string `db:"email"      json:"email"      validate:"omitempty,email,max=100"`
	Phone     string `db:"phone"      json:"phone"      validate:"omitempty,max=20"`
	Specialty string `db:"specialty"  json:"specialty"  validate:"omitempty,max=100"`
}

type TeacherResponse struct {
	ID        string `json:"id"`
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
	gDto.Metadata
}

func (r *TeacherResponse) FromModel(model model.Teacher) {
	r.ID = model.ID
	r.LastName = model.LastName
	r.FirstName = model.FirstName
	r.Email = model.Email
	r.Phone = model.Phone
	r.Specialty = model.Specialty
	r.Metadata.FromModel(model.Metadata)
}

type GetTeachersResponse struct {
	Teachers  []TeacherResponse `json:"teachers"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetTeachersResponse) FromModels(models []model.Teacher, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Teachers = make([]TeacherResponse, len(models))
	for i, mod := range models {
		r.Teachers[i].FromModel(mod)
	}
}
