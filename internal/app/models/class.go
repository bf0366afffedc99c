package models

// Class represents a taught class: a unique class number bound to one
// course in one semester, optionally with an assigned lecturer. The
// lecturer reference is cleared (not cascaded) when the lecturer is
// deleted.
type Class struct {
	ID         int64  `json:"id" db:"id"`
	Number     int64  `json:"number" db:"number"`
	CourseID   int64  `json:"courseId" db:"course_id"`
	SemesterID int64  `json:"semesterId" db:"semester_id"`
	LecturerID *int64 `json:"lecturerId,omitempty" db:"lecturer_id"`

	// Relations (populated when needed)
	Course   *Course   `json:"course,omitempty"`
	Semester *Semester `json:"semester,omitempty"`
	Lecturer *Lecturer `json:"lecturer,omitempty"`
}
