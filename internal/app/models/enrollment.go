package models

import "time"

// Enrollment associates one student with one class and carries the grade.
// Grade 0 means ungraded; any other value means graded. EnrolledAt is set
// once at creation, GradeUpdatedAt refreshes on every save.
type Enrollment struct {
	ID             int64     `json:"id" db:"id"`
	StudentID      int64     `json:"studentId" db:"student_id"`
	ClassID        int64     `json:"classId" db:"class_id"`
	Grade          int       `json:"grade" db:"grade"`
	EnrolledAt     time.Time `json:"enrolTime" db:"enrolled_at"`
	GradeUpdatedAt time.Time `json:"gradeTime" db:"grade_updated_at"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
	Class   *Class   `json:"class,omitempty"`
}

// Graded reports whether a grade has been assigned.
func (e *Enrollment) Graded() bool {
	return e.Grade != 0
}
