package models

import "time"

// Lecturer defines the lecturer model based on the 'lecturers' table.
type Lecturer struct {
	ID          int64     `json:"id" db:"id"`
	StaffID     int64     `json:"staffId" db:"staff_id"`
	FirstName   string    `json:"firstname" db:"first_name"`
	LastName    string    `json:"lastname" db:"last_name"`
	Email       string    `json:"email" db:"email"`
	DateOfBirth time.Time `json:"dob" db:"date_of_birth"`
}

// Normalize applies the storage form of the name fields.
func (l *Lecturer) Normalize() {
	l.FirstName = Capitalize(l.FirstName)
	l.LastName = Capitalize(l.LastName)
}
