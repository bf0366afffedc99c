package services

import (
	"context"

	"github.com/ekurt/gradebook/internal/app/models"
	"github.com/ekurt/gradebook/internal/app/repositories"
	"github.com/ekurt/gradebook/internal/pkg/apperrors"
	"github.com/ekurt/gradebook/internal/pkg/email"
	"github.com/ekurt/gradebook/internal/pkg/logger"
)

// enrollmentStore is the slice of EnrollmentRepository used here.
type enrollmentStore interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	GetAll(ctx context.Context) ([]*models.Enrollment, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
	GetByStudentEmail(ctx context.Context, email string) ([]*models.Enrollment, error)
	UpdateGrade(ctx context.Context, id int64, grade int) error
	Delete(ctx context.Context, id int64) error
}

// classStore is the slice of ClassRepository used here.
type classStore interface {
	GetByID(ctx context.Context, id int64) (*models.Class, error)
}

// studentStore is the slice of StudentRepository used here.
type studentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
}

// gradeAuthorizer decides object-level grade-write permission.
type gradeAuthorizer interface {
	ValidateGradeWrite(ctx context.Context, role models.Role, callerEmail string, enrollmentID int64) error
}

var _ enrollmentStore = (*repositories.EnrollmentRepository)(nil)
var _ classStore = (*repositories.ClassRepository)(nil)
var _ studentStore = (*repositories.StudentRepository)(nil)

// EnrollmentService handles enrollments and grade writes
type EnrollmentService struct {
	enrollmentRepo enrollmentStore
	classRepo      classStore
	studentRepo    studentStore
	authorizer     gradeAuthorizer
	emailService   email.Service
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	enrollmentRepo enrollmentStore,
	classRepo classStore,
	studentRepo studentStore,
	authorizer gradeAuthorizer,
	emailService email.Service,
) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		classRepo:      classRepo,
		studentRepo:    studentRepo,
		authorizer:     authorizer,
		emailService:   emailService,
	}
}

// CreateEnrollment enrolls a student in a class with the unset grade.
func (s *EnrollmentService) CreateEnrollment(ctx context.Context, studentID, classID int64) (*models.Enrollment, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	class, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{StudentID: studentID, ClassID: classID}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}
	enrollment.Student = student
	enrollment.Class = class
	return enrollment, nil
}

// GetEnrollment returns an enrollment by ID. A student only sees their own
// enrollments; any other record answers as not found.
func (s *EnrollmentService) GetEnrollment(ctx context.Context, role models.Role, callerEmail string, id int64) (*models.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if role == models.RoleStudent {
		student, err := s.studentRepo.GetByID(ctx, enrollment.StudentID)
		if err != nil {
			return nil, err
		}
		if student.Email != callerEmail {
			return nil, apperrors.ErrEnrollmentNotFound
		}
	}

	if err := expandEnrollments(ctx, []*models.Enrollment{enrollment}, s.studentRepo, s.classRepo); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// ListEnrollments returns the enrollments visible to the caller: all of
// them for admins and lecturers, a student's own for students.
func (s *EnrollmentService) ListEnrollments(ctx context.Context, role models.Role, callerEmail string) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	var err error
	if role == models.RoleStudent {
		enrollments, err = s.enrollmentRepo.GetByStudentEmail(ctx, callerEmail)
	} else {
		enrollments, err = s.enrollmentRepo.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return enrollments, expandEnrollments(ctx, enrollments, s.studentRepo, s.classRepo)
}

// FilterEnrollments returns the enrollments of one student.
func (s *EnrollmentService) FilterEnrollments(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	enrollments, err := s.enrollmentRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return enrollments, expandEnrollments(ctx, enrollments, s.studentRepo, s.classRepo)
}

// UpdateGrade writes an enrollment's grade after an object-level permission
// check, and notifies the student by email when the grade actually changed.
// Notification failures are logged and never fail the write.
func (s *EnrollmentService) UpdateGrade(ctx context.Context, role models.Role, callerEmail string, enrollmentID int64, grade int) (*models.Enrollment, error) {
	if err := s.authorizer.ValidateGradeWrite(ctx, role, callerEmail, enrollmentID); err != nil {
		return nil, err
	}

	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	changed := enrollment.Grade != grade
	if err := s.enrollmentRepo.UpdateGrade(ctx, enrollmentID, grade); err != nil {
		return nil, err
	}
	enrollment.Grade = grade

	if changed {
		s.notifyGradeUpdated(ctx, enrollment)
	}
	return enrollment, expandEnrollments(ctx, []*models.Enrollment{enrollment}, s.studentRepo, s.classRepo)
}

// DeleteEnrollment removes an enrollment.
func (s *EnrollmentService) DeleteEnrollment(ctx context.Context, id int64) error {
	if _, err := s.enrollmentRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.enrollmentRepo.Delete(ctx, id)
}

func (s *EnrollmentService) notifyGradeUpdated(ctx context.Context, enrollment *models.Enrollment) {
	student, err := s.studentRepo.GetByID(ctx, enrollment.StudentID)
	if err != nil {
		logger.Warn().Err(err).Int64("enrollmentID", enrollment.ID).Msg("Grade notification skipped: student lookup failed")
		return
	}
	class, err := s.classRepo.GetByID(ctx, enrollment.ClassID)
	if err != nil {
		logger.Warn().Err(err).Int64("enrollmentID", enrollment.ID).Msg("Grade notification skipped: class lookup failed")
		return
	}

	if err := s.emailService.SendGradeUpdated(student.Email, student.FirstName, student.LastName, class.Number); err != nil {
		logger.Warn().Err(err).
			Str("email", student.Email).
			Int64("classNumber", class.Number).
			Msg("Grade notification failed")
	}
}
