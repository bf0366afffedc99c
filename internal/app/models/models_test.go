package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleLecturer.Valid())
	assert.True(t, RoleStudent.Valid())
	assert.False(t, Role("MODERATOR").Valid())
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}

func TestTermValid(t *testing.T) {
	assert.True(t, TermS1.Valid())
	assert.True(t, TermS2.Valid())
	assert.True(t, TermS3.Valid())
	assert.False(t, Term("S4").Valid())
	assert.False(t, Term("s1").Valid())
	assert.False(t, Term("").Valid())
}

func TestValidSemesterYear(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	assert.False(t, ValidSemesterYear(2025, now), "past years are rejected")
	assert.True(t, ValidSemesterYear(2026, now), "current year is the window start")
	assert.True(t, ValidSemesterYear(2031, now), "last year inside the window")
	assert.False(t, ValidSemesterYear(2032, now), "first year past the window")
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"maria", "Maria"},
		{"SANTOS", "Santos"},
		{"  ana  ", "Ana"},
		{"d", "D"},
		{"", ""},
		{"öz", "Öz"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Capitalize(tt.in), "Capitalize(%q)", tt.in)
	}
}

func TestCourseNormalizeUppercasesName(t *testing.T) {
	course := &Course{Code: "comp101", Name: "intro to programming"}
	course.Normalize()
	assert.Equal(t, "INTRO TO PROGRAMMING", course.Name)
	assert.Equal(t, "comp101", course.Code, "code is stored as given")
}

func TestStudentNormalizeCapitalizesNames(t *testing.T) {
	student := &Student{FirstName: "maria", LastName: "SANTOS"}
	student.Normalize()
	assert.Equal(t, "Maria", student.FirstName)
	assert.Equal(t, "Santos", student.LastName)
}

func TestEnrollmentGraded(t *testing.T) {
	assert.False(t, (&Enrollment{Grade: 0}).Graded(), "zero grade means not yet graded")
	assert.True(t, (&Enrollment{Grade: 85}).Graded())
}
