package model

import "campus/shared/model"

const (
	TableName  = "teachers"
	EntityName = "teacher"

	FieldID        = "id"
	FieldLastName  = "last_name"
	FieldFirstName = "first_name"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldSpecialty = "specialty"
)

type Teacher struct {
	ID        string `db:"id"`
	LastName  string `db:"last_name"`
	FirstName string `db:"first_name"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	Specialty string `db:"specialty"`
	model.Metadata
}
