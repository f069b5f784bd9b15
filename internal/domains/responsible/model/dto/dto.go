package dto

// ResponsibleStatusResponse reports the derived ownership status of a
// teacher. Responsibility is never stored; it holds iff at least one
// program references the teacher as responsible.
type ResponsibleStatusResponse struct {
	TeacherID     string `json:"teacher_id"`
	Responsible   bool   `json:"responsible"`
	ProgramsOwned int    `json:"programs_owned"`
}
