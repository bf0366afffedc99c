package models

// Semester represents an academic semester. The (Year, Term) pair is
// unique; Courses holds the many-to-many association with courses offered
// in this semester.
type Semester struct {
	ID      int64     `json:"id" db:"id"`
	Year    int       `json:"year" db:"year"`
	Term    Term      `json:"semester" db:"term"`
	Courses []*Course `json:"course,omitempty"`
}
