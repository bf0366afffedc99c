package models

import "time"

// Student defines the student model based on the 'students' table.
type Student struct {
	ID          int64     `json:"id" db:"id"`
	StudentID   int64     `json:"studentId" db:"student_id"`
	FirstName   string    `json:"firstname" db:"first_name"`
	LastName    string    `json:"lastname" db:"last_name"`
	Email       string    `json:"email" db:"email"`
	DateOfBirth time.Time `json:"dob" db:"date_of_birth"`
}

// Normalize applies the storage form of the name fields.
func (s *Student) Normalize() {
	s.FirstName = Capitalize(s.FirstName)
	s.LastName = Capitalize(s.LastName)
}
