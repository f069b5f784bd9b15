package model

import "campus/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID        = "id"
	FieldCode      = "code"
	FieldName      = "name"
	FieldCapacity  = "capacity"
	FieldAvailable = "available"
	FieldRoomType  = "room_type"
	FieldBuilding  = "building"
	FieldFloor     = "floor"
	FieldFixtures  = "fixtures"
)

const (
	RoomTypeClassroom    = "classroom"
	RoomTypeLaboratory   = "laboratory"
	RoomTypeAmphitheater = "amphitheater"
	RoomTypeMeeting      = "meeting"
)

type Room struct {
	ID        string `db:"id"`
	Code      string `db:"code"`
	Name      string `db:"name"`
	Capacity  int    `db:"capacity"`
	Available bool   `db:"available"`
	RoomType  string `db:"room_type"`
	Building  string `db:"building"`
	Floor     int    `db:"floor"`
	Fixtures  string `db:"fixtures"`
	model.Metadata
}
