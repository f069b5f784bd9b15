package model

import (
	"time"

	"campus/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldDay          = "day"
	FieldStartTime    = "start_time"
	FieldEndTime      = "end_time"
	FieldTeacherID    = "teacher_id"
	FieldRoomID       = "room_id"
	FieldEquipmentID  = "equipment_id"
	FieldProgramID    = "program_id"
	FieldParticipants = "participants"
	FieldPurpose      = "purpose"
	FieldStatus       = "status"
)

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	// StatusPending has no producing transition on create; an update may
	// set it for approval workflows.
	StatusPending = "pending"
)

type Booking struct {
	ID           string    `db:"id"`
	Day          time.Time `db:"day"`
	StartTime    string    `db:"start_time"`
	EndTime      string    `db:"end_time"`
	TeacherID    string    `db:"teacher_id"`
	RoomID       string    `db:"room_id"`
	EquipmentID  *string   `db:"equipment_id"`
	ProgramID    *string   `db:"program_id"`
	Participants *int      `db:"participants"`
	Purpose      string    `db:"purpose"`
	Status       string    `db:"status"`
	model.Metadata
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// Overlaps reports whether the half-open intervals [a0,a1) and [b0,b1)
// intersect. Times are zero-padded HH:MM strings, so lexical order is
// temporal order. Touching endpoints do not overlap.
func Overlaps(a0, a1, b0, b1 string) bool {
	return a0 < b1 && b0 < a1
}
