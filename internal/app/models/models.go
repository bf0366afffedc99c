package models

import "time"

// Role defines the closed set of user roles. Authorization decisions are
// made against these values, never against free-form group names.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleLecturer Role = "LECTURER"
	RoleStudent  Role = "STUDENT"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLecturer, RoleStudent:
		return true
	}
	return false
}

// Term represents a semester term label.
type Term string

const (
	TermS1 Term = "S1"
	TermS2 Term = "S2"
	TermS3 Term = "S3"
)

// Valid reports whether t is one of the known terms.
func (t Term) Valid() bool {
	switch t {
	case TermS1, TermS2, TermS3:
		return true
	}
	return false
}

// SemesterYearWindow is the number of years, starting from the current one,
// a semester may be created in.
const SemesterYearWindow = 6

// ValidSemesterYear reports whether year falls inside the rolling window
// anchored at now.
func ValidSemesterYear(year int, now time.Time) bool {
	current := now.Year()
	return year >= current && year < current+SemesterYearWindow
}
