package services

import (
	"context"

	"github.com/ekurt/gradebook/internal/app/models"
	"github.com/ekurt/gradebook/internal/app/models/dto"
	"github.com/ekurt/gradebook/internal/app/repositories"
	"github.com/ekurt/gradebook/internal/pkg/apperrors"
)

// GradebookService assembles the role-scoped gradebook views
type GradebookService struct {
	semesterRepo   *repositories.SemesterRepository
	courseRepo     *repositories.CourseRepository
	classRepo      *repositories.ClassRepository
	lecturerRepo   *repositories.LecturerRepository
	studentRepo    *repositories.StudentRepository
	enrollmentRepo *repositories.EnrollmentRepository
}

// NewGradebookService creates a new GradebookService
func NewGradebookService(
	semesterRepo *repositories.SemesterRepository,
	courseRepo *repositories.CourseRepository,
	classRepo *repositories.ClassRepository,
	lecturerRepo *repositories.LecturerRepository,
	studentRepo *repositories.StudentRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
) *GradebookService {
	return &GradebookService{
		semesterRepo:   semesterRepo,
		courseRepo:     courseRepo,
		classRepo:      classRepo,
		lecturerRepo:   lecturerRepo,
		studentRepo:    studentRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// GetOverview returns the gradebook entry view scoped to the caller's role:
// admins see every class, lecturers the classes assigned to them, students
// the classes they are enrolled in. The semester list is the distinct
// semesters of those classes, not of the whole system.
func (s *GradebookService) GetOverview(ctx context.Context, role models.Role, callerEmail string) (*dto.GradebookResponse, error) {
	var classes []*models.Class
	var err error
	switch role {
	case models.RoleAdmin:
		classes, err = s.classRepo.GetAll(ctx)
	case models.RoleLecturer:
		var lecturer *models.Lecturer
		lecturer, err = s.lecturerRepo.GetByEmail(ctx, callerEmail)
		if err == nil {
			classes, err = s.classRepo.GetByLecturerID(ctx, lecturer.ID)
		}
	case models.RoleStudent:
		var student *models.Student
		student, err = s.studentRepo.GetByEmail(ctx, callerEmail)
		if err == nil {
			classes, err = s.classRepo.GetByStudentEnrollment(ctx, student.ID)
		}
	default:
		return nil, apperrors.ErrPermissionDenied
	}
	if err != nil {
		return nil, err
	}

	if err := expandClasses(ctx, classes, s.courseRepo, s.semesterRepo, s.lecturerRepo); err != nil {
		return nil, err
	}

	return &dto.GradebookResponse{Semesters: distinctSemesters(classes), Classes: classes}, nil
}

// distinctSemesters returns each semester referenced by the classes once,
// in first-seen order. Expanded classes share semester pointers per ID.
func distinctSemesters(classes []*models.Class) []*models.Semester {
	seen := make(map[int64]struct{}, len(classes))
	semesters := []*models.Semester{}
	for _, class := range classes {
		if class.Semester == nil {
			continue
		}
		if _, ok := seen[class.SemesterID]; ok {
			continue
		}
		seen[class.SemesterID] = struct{}{}
		semesters = append(semesters, class.Semester)
	}
	return semesters
}

// GetClassGradebook returns one class with its enrollments, scoped to the
// caller: admins see every enrollment, lecturers only for classes assigned
// to them, and students only their own enrollment in the class.
func (s *GradebookService) GetClassGradebook(ctx context.Context, role models.Role, callerEmail string, classID int64) (*dto.ClassGradebookResponse, error) {
	class, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	var enrollments []*models.Enrollment
	switch role {
	case models.RoleAdmin:
		enrollments, err = s.enrollmentRepo.GetByClassID(ctx, classID)
	case models.RoleLecturer:
		if class.LecturerID == nil {
			return nil, apperrors.ErrPermissionDenied
		}
		lecturer, lerr := s.lecturerRepo.GetByID(ctx, *class.LecturerID)
		if lerr != nil {
			return nil, lerr
		}
		if lecturer.Email != callerEmail {
			return nil, apperrors.ErrPermissionDenied
		}
		enrollments, err = s.enrollmentRepo.GetByClassID(ctx, classID)
	case models.RoleStudent:
		enrollments, err = s.enrollmentRepo.GetByClassAndStudentEmail(ctx, classID, callerEmail)
	default:
		return nil, apperrors.ErrPermissionDenied
	}
	if err != nil {
		return nil, err
	}

	if err := expandClasses(ctx, []*models.Class{class}, s.courseRepo, s.semesterRepo, s.lecturerRepo); err != nil {
		return nil, err
	}
	if err := expandEnrollments(ctx, enrollments, s.studentRepo, s.classRepo); err != nil {
		return nil, err
	}

	return &dto.ClassGradebookResponse{Class: class, Enrollments: enrollments}, nil
}
