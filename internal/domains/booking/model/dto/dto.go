package dto

import (
	"fmt"

	"github.com/google/uuid"

	"campus/internal/domains/booking/model"
	"campus/shared"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	gModel "campus/shared/model"
	"campus/shared/timezone"
)

type CreateBookingRequest struct {
	Day          string  `json:"day"           validate:"required,datetime=2006-01-02"`
	StartTime    string  `json:"start_time"    validate:"required,datetime=15:04"`
	EndTime      string  `json:"end_time"      validate:"required,datetime=15:04"`
	TeacherID    string  `json:"teacher_id"    validate:"required,uuid"`
	RoomID       string  `json:"room_id"       validate:"required,uuid"`
	EquipmentID  *string `json:"equipment_id"  validate:"omitempty,uuid"`
	ProgramID    *string `json:"program_id"    validate:"omitempty,uuid"`
	Participants *int    `json:"participants"  validate:"omitempty,gt=0"`
	Purpose      string  `json:"purpose"       validate:"omitempty,max=500"`
}

func (c *CreateBookingRequest) ToModel(actor string) (model.Booking, error) {
	day, err := timezone.Parse(constant.DayFormat, c.Day)
	if err != nil {
		return model.Booking{}, fmt.Errorf("invalid day format: %w", err)
	}

	return model.Booking{
		ID:           uuid.NewString(),
		Day:          day,
		StartTime:    c.StartTime,
		EndTime:      c.EndTime,
		TeacherID:    c.TeacherID,
		RoomID:       c.RoomID,
		EquipmentID:  c.EquipmentID,
		ProgramID:    c.ProgramID,
		Participants: c.Participants,
		Purpose:      c.Purpose,
		Status:       model.StatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}, nil
}

// UpdateBookingRequest replaces the mutable fields of a booking wholesale.
type UpdateBookingRequest struct {
	Day          string  `json:"day"          validate:"required,datetime=2006-01-02"`
	StartTime    string  `json:"start_time"   validate:"required,datetime=15:04"`
	EndTime      string  `json:"end_time"     validate:"required,datetime=15:04"`
	TeacherID    string  `json:"teacher_id"   validate:"required,uuid"`
	RoomID       string  `json:"room_id"      validate:"required,uuid"`
	EquipmentID  *string `json:"equipment_id" validate:"omitempty,uuid"`
	ProgramID    *string `json:"program_id"   validate:"omitempty,uuid"`
	Participants *int    `json:"participants" validate:"omitempty,gt=0"`
	Purpose      string  `json:"purpose"      validate:"omitempty,max=500"`
	Status       string  `json:"status"       validate:"omitempty,oneof=confirmed cancelled pending"`
}

func (u *UpdateBookingRequest) ToModel(current model.Booking, actor string) (model.Booking, error) {
	day, err := timezone.Parse(constant.DayFormat, u.Day)
	if err != nil {
		return model.Booking{}, fmt.Errorf("invalid day format: %w", err)
	}

	status := u.Status
	if status == constant.Empty {
		status = current.Status
	}

	updated := current
	updated.Day = day
	updated.StartTime = u.StartTime
	updated.EndTime = u.EndTime
	updated.TeacherID = u.TeacherID
	updated.RoomID = u.RoomID
	updated.EquipmentID = u.EquipmentID
	updated.ProgramID = u.ProgramID
	updated.Participants = u.Participants
	updated.Purpose = u.Purpose
	updated.Status = status
	updated.ModifiedAt = timezone.Now()
	updated.ModifiedBy = actor

	return updated, nil
}

type BookingResponse struct {
	ID           string  `json:"id"`
	Day          string  `json:"day"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	TeacherID    string  `json:"teacher_id"`
	RoomID       string  `json:"room_id"`
	EquipmentID  *string `json:"equipment_id,omitempty"`
	ProgramID    *string `json:"program_id,omitempty"`
	Participants *int    `json:"participants,omitempty"`
	Purpose      string  `json:"purpose"`
	Status       string  `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.Day = mod.Day.Format(constant.DayFormat)
	r.StartTime = mod.StartTime
	r.EndTime = mod.EndTime
	r.TeacherID = mod.TeacherID
	r.RoomID = mod.RoomID
	r.EquipmentID = mod.EquipmentID
	r.ProgramID = mod.ProgramID
	r.Participants = mod.Participants
	r.Purpose = mod.Purpose
	r.Status = mod.Status
	r.Metadata.FromModel(mod.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
