package failure

import (
	"errors"
	"net/http"
)

// Kind tags a Failure with the rejection taxonomy used by the booking
// pipeline and the CRUD services. Callers branch on Kind, not on message text.
type Kind string

const (
	KindInvalidTimeRange     Kind = "invalid_time_range"
	KindPastDate             Kind = "past_date"
	KindReferenceNotFound    Kind = "reference_not_found"
	KindRoomUnavailable      Kind = "room_unavailable"
	KindEquipmentUnavailable Kind = "equipment_unavailable"
	KindCapacityExceeded     Kind = "capacity_exceeded"
	KindRoomConflict         Kind = "room_conflict"
	KindEquipmentConflict    Kind = "equipment_conflict"
	KindNotFound             Kind = "not_found"
	KindDuplicate            Kind = "duplicate"
	KindForbidden            Kind = "forbidden"
	KindBadRequest           Kind = "bad_request"
	KindInfrastructure       Kind = "infrastructure"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var InvalidPageParam = &Failure{Kind: KindBadRequest, Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Kind: KindBadRequest, Code: http.StatusBadRequest, Message: "invalid limit parameter"}

// Error returns the failure message.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Kind:    KindBadRequest,
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Kind:    KindBadRequest,
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Kind:    KindInfrastructure,
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Kind:    KindNotFound,
		Code:    http.StatusNotFound,
		Message: entityName + " not found",
	}
}

// Duplicate returns a new Failure for unique-key violations on create.
func Duplicate(message string) error {
	return &Failure{
		Kind:    KindDuplicate,
		Code:    http.StatusConflict,
		Message: message,
	}
}

// InvalidTimeRange rejects a booking whose end time is not strictly after its start time.
func InvalidTimeRange() error {
	return &Failure{
		Kind:    KindInvalidTimeRange,
		Code:    http.StatusBadRequest,
		Message: "end time must be after start time",
	}
}

// PastDate rejects a booking dated before the current day.
func PastDate() error {
	return &Failure{
		Kind:    KindPastDate,
		Code:    http.StatusBadRequest,
		Message: "cannot book a date in the past",
	}
}

// ReferenceNotFound rejects a booking whose referenced entity does not resolve.
// The entity name identifies which reference failed.
func ReferenceNotFound(entityName string) error {
	return &Failure{
		Kind:    KindReferenceNotFound,
		Code:    http.StatusBadRequest,
		Message: entityName + " not found",
	}
}

// RoomUnavailable rejects a booking on a room whose availability flag is off.
func RoomUnavailable() error {
	return &Failure{
		Kind:    KindRoomUnavailable,
		Code:    http.StatusConflict,
		Message: "room is not available",
	}
}

// EquipmentUnavailable rejects a booking on equipment whose availability flag is off.
func EquipmentUnavailable() error {
	return &Failure{
		Kind:    KindEquipmentUnavailable,
		Code:    http.StatusConflict,
		Message: "equipment is not available",
	}
}

// CapacityExceeded rejects a booking whose participant count exceeds the room capacity.
func CapacityExceeded() error {
	return &Failure{
		Kind:    KindCapacityExceeded,
		Code:    http.StatusBadRequest,
		Message: "participant count exceeds room capacity",
	}
}

// RoomConflict rejects a booking overlapping an existing one on the same room and day.
func RoomConflict() error {
	return &Failure{
		Kind:    KindRoomConflict,
		Code:    http.StatusConflict,
		Message: "room booking conflict",
	}
}

// EquipmentConflict rejects a booking overlapping an existing one on the same equipment and day.
func EquipmentConflict() error {
	return &Failure{
		Kind:    KindEquipmentConflict,
		Code:    http.StatusConflict,
		Message: "equipment booking conflict",
	}
}

// Forbidden returns a new Failure with code for forbidden operations.
func Forbidden(msg string) error {
	return &Failure{
		Kind:    KindForbidden,
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the taxonomy kind of an error interface.
func GetKind(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return KindInfrastructure
}

// IsKind reports whether err is a Failure of the given kind.
func IsKind(err error, kind Kind) bool {
	return GetKind(err) == kind
}
