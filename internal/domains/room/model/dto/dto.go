package dto

import (
	"github.com/google/uuid"

	"campus/internal/domains/room/model"
	"campus/shared"
	gDto "campus/shared/dto"
	gModel "campus/shared/model"
	"campus/shared/timezone"
)

type CreateRoomRequest struct {
	Code      string `json:"code"      validate:"required,max=50"`
	Name      string `json:"name"      validate:"required,max=100"`
	Capacity  int    `json:"capacity"  validate:"required,gt=0"`
	Available *bool  `json:"available" validate:"omitempty"`
	RoomType  string `json:"room_type" validate:"omitempty,oneof=classroom laboratory amphitheater meeting"`
	Building  string `json:"building"  validate:"omitempty,max=100"`
	Floor     int    `json:"floor"     validate:"omitempty,gte=-2"`
	Fixtures  string `json:"fixtures"  validate:"omitempty,max=500"`
}

func (c *CreateRoomRequest) ToModel(actor string) model.Room {
	available := true
	if c.Available != nil {
		available = *c.Available
	}

	return model.Room{
		ID:        uuid.NewString(),
		Code:      c.Code,
		Name:      c.Name,
		Capacity:  c.Capacity,
		Available: available,
		RoomType:  c.RoomType,
		Building:  c.Building,
		Floor:     c.Floor,
		Fixtures:  c.Fixtures,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}
}

type UpdateRoomRequest struct {
	Code      string `db:"code"      json:"code"      validate:"omitempty,max=50"`
	Name      string `db:"name"      json:"name"      validate:"omitempty,max=100"`
	Capacity  *int   `db:"capacity"  json:"capacity"  validate:"omitempty,gt=0"`
	Available *bool  `db:"available" json:"available" validate:"omitempty"`
	RoomType  string `db:"room_type" json:"room_type" validate:"omitempty,oneof=classroom laboratory amphitheater meeting"`
	Building  string `db:"building"  json:"building"  validate:"omitempty,max=100"`
	Floor     *int   `db:"floor"     json:"floor"     validate:"omitempty,gte=-2"`
	Fixtures  string `db:"fixtures"  json:"fixtures"  validate:"omitempty,max=500"`
}

type RoomResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	Available bool   `json:"available"`
	RoomType  string `json:"room_type"`
	Building  string `json:"building"`
	Floor     int    `json:"floor"`
	Fixtures  string `json:"fixtures"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Code = model.Code
	r.Name = model.Name
	r.Capacity = model.Capacity
	r.Available = model.Available
	r.RoomType = model.RoomType
	r.Building = model.Building
	r.Floor = model.Floor
	r.Fixtures = model.Fixtures
	r.Metadata.FromModel(model.Metadata)
}

type FreeRoomsRequest struct {
	Day       string `json:"day"        validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time"   validate:"required,datetime=15:04"`
}

type FreeRoomsResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

func (r *FreeRoomsResponse) FromModels(models []model.Room) {
	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
