package auth

import (
	"testing"

	"github.com/ekurt/gradebook/internal/app/models"
)

func strPtr(s string) *string { return &s }

func TestCanWriteEnrollment(t *testing.T) {
	owner := "jane.doe@uni.edu"

	tests := []struct {
		name          string
		role          models.Role
		callerEmail   string
		lecturerEmail *string
		want          bool
	}{
		{name: "admin always allowed", role: models.RoleAdmin, callerEmail: "admin@uni.edu", lecturerEmail: nil, want: true},
		{name: "assigned lecturer allowed", role: models.RoleLecturer, callerEmail: owner, lecturerEmail: strPtr(owner), want: true},
		{name: "other lecturer denied", role: models.RoleLecturer, callerEmail: "someone.else@uni.edu", lecturerEmail: strPtr(owner), want: false},
		{name: "lecturer denied when class unassigned", role: models.RoleLecturer, callerEmail: owner, lecturerEmail: nil, want: false},
		{name: "student denied", role: models.RoleStudent, callerEmail: owner, lecturerEmail: strPtr(owner), want: false},
		{name: "unknown role denied", role: models.Role("GUEST"), callerEmail: owner, lecturerEmail: strPtr(owner), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanWriteEnrollment(tt.role, tt.callerEmail, tt.lecturerEmail); got != tt.want {
				t.Errorf("CanWriteEnrollment() = %v, want %v", got, tt.want)
			}
		})
	}
}
