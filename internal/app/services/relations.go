package services

import (
	"context"

	"github.com/ekurt/gradebook/internal/app/models"
	"github.com/ekurt/gradebook/internal/app/repositories"
)

// Getter slices of the repositories used to fill relation fields on reads.
type courseGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

type semesterGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Semester, error)
}

type lecturerGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Lecturer, error)
}

var _ courseGetter = (*repositories.CourseRepository)(nil)
var _ semesterGetter = (*repositories.SemesterRepository)(nil)
var _ lecturerGetter = (*repositories.LecturerRepository)(nil)

// expandClasses fills each class's course, semester and, when assigned,
// lecturer reference. Lookups are memoized so a listing costs one fetch
// per distinct referenced record.
func expandClasses(ctx context.Context, classes []*models.Class, courses courseGetter, semesters semesterGetter, lecturers lecturerGetter) error {
	courseCache := make(map[int64]*models.Course)
	semesterCache := make(map[int64]*models.Semester)
	lecturerCache := make(map[int64]*models.Lecturer)

	for _, class := range classes {
		course, ok := courseCache[class.CourseID]
		if !ok {
			var err error
			course, err = courses.GetByID(ctx, class.CourseID)
			if err != nil {
				return err
			}
			courseCache[class.CourseID] = course
		}
		class.Course = course

		semester, ok := semesterCache[class.SemesterID]
		if !ok {
			var err error
			semester, err = semesters.GetByID(ctx, class.SemesterID)
			if err != nil {
				return err
			}
			semesterCache[class.SemesterID] = semester
		}
		class.Semester = semester

		if class.LecturerID == nil {
			continue
		}
		lecturer, ok := lecturerCache[*class.LecturerID]
		if !ok {
			var err error
			lecturer, err = lecturers.GetByID(ctx, *class.LecturerID)
			if err != nil {
				return err
			}
			lecturerCache[*class.LecturerID] = lecturer
		}
		class.Lecturer = lecturer
	}
	return nil
}

// expandEnrollments fills each enrollment's student and class reference.
func expandEnrollments(ctx context.Context, enrollments []*models.Enrollment, students studentStore, classes classStore) error {
	studentCache := make(map[int64]*models.Student)
	classCache := make(map[int64]*models.Class)

	for _, enrollment := range enrollments {
		student, ok := studentCache[enrollment.StudentID]
		if !ok {
			var err error
			student, err = students.GetByID(ctx, enrollment.StudentID)
			if err != nil {
				return err
			}
			studentCache[enrollment.StudentID] = student
		}
		enrollment.Student = student

		class, ok := classCache[enrollment.ClassID]
		if !ok {
			var err error
			class, err = classes.GetByID(ctx, enrollment.ClassID)
			if err != nil {
				return err
			}
			classCache[enrollment.ClassID] = class
		}
		enrollment.Class = class
	}
	return nil
}
