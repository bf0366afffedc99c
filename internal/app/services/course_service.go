package services

import (
	"context"

	"github.com/ekurt/gradebook/internal/app/models"
	"github.com/ekurt/gradebook/internal/app/repositories"
)

// CourseService handles course catalog operations
type CourseService struct {
	courseRepo *repositories.CourseRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo *repositories.CourseRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo}
}

// CreateCourse creates a course. The name is stored upper-cased.
func (s *CourseService) CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	course.Normalize()
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// GetCourse returns a course by ID.
func (s *CourseService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// GetAllCourses returns the full course catalog.
func (s *CourseService) GetAllCourses(ctx context.Context) ([]*models.Course, error) {
	return s.courseRepo.GetAll(ctx)
}

// UpdateCourse updates a course's code and name.
func (s *CourseService) UpdateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	if _, err := s.courseRepo.GetByID(ctx, course.ID); err != nil {
		return nil, err
	}
	course.Normalize()
	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse removes a course. Classes scheduled for it are removed by
// the database cascade, along with their enrollments.
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	return s.courseRepo.Delete(ctx, id)
}
