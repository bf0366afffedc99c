package services

import (
	"context"

	"github.com/ekurt/gradebook/internal/app/models"
	"github.com/ekurt/gradebook/internal/app/repositories"
	"github.com/ekurt/gradebook/internal/pkg/apperrors"
)

// ClassService handles scheduled class operations
type ClassService struct {
	classRepo    *repositories.ClassRepository
	courseRepo   *repositories.CourseRepository
	semesterRepo *repositories.SemesterRepository
	lecturerRepo *repositories.LecturerRepository
	studentRepo  *repositories.StudentRepository
}

// NewClassService creates a new ClassService
func NewClassService(
	classRepo *repositories.ClassRepository,
	courseRepo *repositories.CourseRepository,
	semesterRepo *repositories.SemesterRepository,
	lecturerRepo *repositories.LecturerRepository,
	studentRepo *repositories.StudentRepository,
) *ClassService {
	return &ClassService{
		classRepo:    classRepo,
		courseRepo:   courseRepo,
		semesterRepo: semesterRepo,
		lecturerRepo: lecturerRepo,
		studentRepo:  studentRepo,
	}
}

func (s *ClassService) expand(ctx context.Context, classes ...*models.Class) error {
	return expandClasses(ctx, classes, s.courseRepo, s.semesterRepo, s.lecturerRepo)
}

// CreateClass schedules a class. The course must be part of the semester's
// offering, and the assigned lecturer, if any, must exist.
func (s *ClassService) CreateClass(ctx context.Context, class *models.Class) (*models.Class, error) {
	if err := s.validateClass(ctx, class); err != nil {
		return nil, err
	}
	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}
	return s.GetClass(ctx, class.ID)
}

// GetClass returns a class by ID with its course, semester and lecturer.
func (s *ClassService) GetClass(ctx context.Context, id int64) (*models.Class, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.expand(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// GetAllClasses returns all scheduled classes.
func (s *ClassService) GetAllClasses(ctx context.Context) ([]*models.Class, error) {
	classes, err := s.classRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return classes, s.expand(ctx, classes...)
}

// FilterClasses returns the classes scheduled for a course in a semester.
func (s *ClassService) FilterClasses(ctx context.Context, courseID, semesterID int64) ([]*models.Class, error) {
	classes, err := s.classRepo.GetByCourseAndSemester(ctx, courseID, semesterID)
	if err != nil {
		return nil, err
	}
	return classes, s.expand(ctx, classes...)
}

// GetClassesForLecturer returns the classes assigned to the lecturer with
// the given account email.
func (s *ClassService) GetClassesForLecturer(ctx context.Context, email string) ([]*models.Class, error) {
	lecturer, err := s.lecturerRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	classes, err := s.classRepo.GetByLecturerID(ctx, lecturer.ID)
	if err != nil {
		return nil, err
	}
	return classes, s.expand(ctx, classes...)
}

// GetClassesForStudent returns the classes the student with the given
// account email is enrolled in.
func (s *ClassService) GetClassesForStudent(ctx context.Context, email string) ([]*models.Class, error) {
	student, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	classes, err := s.classRepo.GetByStudentEnrollment(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	return classes, s.expand(ctx, classes...)
}

// GetAvailableClasses returns the classes the student with the given
// account email is not yet enrolled in.
func (s *ClassService) GetAvailableClasses(ctx context.Context, email string) ([]*models.Class, error) {
	student, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	classes, err := s.classRepo.GetAvailableForStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	return classes, s.expand(ctx, classes...)
}

// UpdateClass updates a class's number, course, semester and lecturer,
// revalidating the course-semester pairing.
func (s *ClassService) UpdateClass(ctx context.Context, class *models.Class) (*models.Class, error) {
	if _, err := s.classRepo.GetByID(ctx, class.ID); err != nil {
		return nil, err
	}
	if err := s.validateClass(ctx, class); err != nil {
		return nil, err
	}
	if err := s.classRepo.Update(ctx, class); err != nil {
		return nil, err
	}
	return s.GetClass(ctx, class.ID)
}

// DeleteClass removes a class and its enrollments via the database cascade.
func (s *ClassService) DeleteClass(ctx context.Context, id int64) error {
	return s.classRepo.Delete(ctx, id)
}

func (s *ClassService) validateClass(ctx context.Context, class *models.Class) error {
	offered, err := s.semesterRepo.HasCourse(ctx, class.SemesterID, class.CourseID)
	if err != nil {
		return err
	}
	if !offered {
		return apperrors.ErrCourseNotInSemester
	}
	if class.LecturerID != nil {
		if _, err := s.lecturerRepo.GetByID(ctx, *class.LecturerID); err != nil {
			return err
		}
	}
	return nil
}
