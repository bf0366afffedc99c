// Package auth implements the object-level authorization policy. Role
// checks for plain CRUD routes happen in the router middleware; the
// decisions here are the per-record ones that the route alone cannot make.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/ekurt/gradebook/internal/app/models"
	"github.com/ekurt/gradebook/internal/app/repositories"
	"github.com/ekurt/gradebook/internal/pkg/apperrors"
	"github.com/ekurt/gradebook/internal/pkg/logger"
)

// CanWriteEnrollment decides whether a caller may mutate an enrollment
// (the grade in particular). Admins always may. A lecturer may only when
// their email matches the email of the lecturer assigned to the
// enrollment's class; a class without an assigned lecturer is writable by
// admins alone. Students never may.
func CanWriteEnrollment(role models.Role, callerEmail string, classLecturerEmail *string) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleLecturer:
		return classLecturerEmail != nil && *classLecturerEmail == callerEmail
	default:
		return false
	}
}

// AuthorizationService resolves object-level permissions against stored
// records.
type AuthorizationService struct {
	enrollmentRepo *repositories.EnrollmentRepository
	classRepo      *repositories.ClassRepository
	lecturerRepo   *repositories.LecturerRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(
	enrollmentRepo *repositories.EnrollmentRepository,
	classRepo *repositories.ClassRepository,
	lecturerRepo *repositories.LecturerRepository,
) *AuthorizationService {
	return &AuthorizationService{
		enrollmentRepo: enrollmentRepo,
		classRepo:      classRepo,
		lecturerRepo:   lecturerRepo,
	}
}

// CanGradeEnrollment checks whether the caller may write the enrollment's
// grade, resolving the owning class and its assigned lecturer.
func (s *AuthorizationService) CanGradeEnrollment(ctx context.Context, role models.Role, callerEmail string, enrollmentID int64) (bool, error) {
	if role == models.RoleAdmin {
		return true, nil
	}
	if role != models.RoleLecturer {
		return false, nil
	}

	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return false, err
	}

	class, err := s.classRepo.GetByID(ctx, enrollment.ClassID)
	if err != nil {
		if errors.Is(err, apperrors.ErrClassNotFound) {
			logger.Warn().Int64("enrollmentID", enrollmentID).Msg("Enrollment references missing class")
		}
		return false, err
	}

	if class.LecturerID == nil {
		return false, nil
	}

	lecturer, err := s.lecturerRepo.GetByID(ctx, *class.LecturerID)
	if err != nil {
		return false, fmt.Errorf("error resolving class lecturer: %w", err)
	}

	return CanWriteEnrollment(role, callerEmail, &lecturer.Email), nil
}

// ValidateGradeWrite validates the grade write or returns a permission error.
func (s *AuthorizationService) ValidateGradeWrite(ctx context.Context, role models.Role, callerEmail string, enrollmentID int64) error {
	allowed, err := s.CanGradeEnrollment(ctx, role, callerEmail, enrollmentID)
	if err != nil {
		return err
	}
	if !allowed {
		return apperrors.ErrPermissionDenied
	}
	return nil
}
