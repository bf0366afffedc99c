package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekurt/gradebook/internal/app/models"
	"github.com/ekurt/gradebook/internal/app/models/dto"
	"github.com/ekurt/gradebook/internal/app/repositories"
	"github.com/ekurt/gradebook/internal/db"
	"github.com/ekurt/gradebook/internal/pkg/apperrors"
	"github.com/ekurt/gradebook/internal/pkg/logger"
)

// semesterCourseStore is the slice of SemesterRepository the course
// replacement needs.
type semesterCourseStore interface {
	GetCourseIDs(ctx context.Context, semesterID int64) ([]int64, error)
	ReplaceCourses(ctx context.Context, semesterID int64, courseIDs []int64) error
}

// classCascadeStore deletes the classes of a removed (course, semester)
// pair and reports what went with them.
type classCascadeStore interface {
	DeleteByCourseAndSemester(ctx context.Context, courseID, semesterID int64) ([]*models.Class, int64, error)
}

var _ semesterCourseStore = (*repositories.SemesterRepository)(nil)
var _ classCascadeStore = (*repositories.ClassRepository)(nil)

// SemesterService handles semester lifecycle and course assignment
type SemesterService struct {
	pool         *pgxpool.Pool
	semesterRepo *repositories.SemesterRepository
	courseRepo   *repositories.CourseRepository
	classRepo    *repositories.ClassRepository
}

// NewSemesterService creates a new SemesterService
func NewSemesterService(
	pool *pgxpool.Pool,
	semesterRepo *repositories.SemesterRepository,
	courseRepo *repositories.CourseRepository,
	classRepo *repositories.ClassRepository,
) *SemesterService {
	return &SemesterService{
		pool:         pool,
		semesterRepo: semesterRepo,
		courseRepo:   courseRepo,
		classRepo:    classRepo,
	}
}

// CreateSemester creates a semester for a (year, term) pair and assigns its
// initial course offering.
func (s *SemesterService) CreateSemester(ctx context.Context, year int, term models.Term, courseIDs []int64) (*models.Semester, error) {
	if err := validateSemester(year, term); err != nil {
		return nil, err
	}
	if err := s.validateCourseIDs(ctx, courseIDs); err != nil {
		return nil, err
	}

	semester := &models.Semester{Year: year, Term: term}
	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		semesterRepo := s.semesterRepo.WithTx(tx)
		if err := semesterRepo.Create(ctx, semester); err != nil {
			return err
		}
		return semesterRepo.ReplaceCourses(ctx, semester.ID, courseIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.semesterRepo.GetByID(ctx, semester.ID)
}

// GetSemester returns a semester with its assigned courses.
func (s *SemesterService) GetSemester(ctx context.Context, id int64) (*models.Semester, error) {
	return s.semesterRepo.GetByID(ctx, id)
}

// GetAllSemesters returns all semesters with their assigned courses.
func (s *SemesterService) GetAllSemesters(ctx context.Context) ([]*models.Semester, error) {
	return s.semesterRepo.GetAll(ctx)
}

// UpdateCourses replaces a semester's course offering. Any course removed
// from the offering takes its scheduled classes with it, and those classes
// take their enrollments. The returned report itemizes what was removed.
func (s *SemesterService) UpdateCourses(ctx context.Context, semesterID int64, courseIDs []int64) (*dto.CascadeReport, error) {
	if _, err := s.semesterRepo.GetByID(ctx, semesterID); err != nil {
		return nil, err
	}
	if err := s.validateCourseIDs(ctx, courseIDs); err != nil {
		return nil, err
	}

	var report *dto.CascadeReport
	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		report, err = replaceSemesterCourses(ctx, s.semesterRepo.WithTx(tx), s.classRepo.WithTx(tx), semesterID, courseIDs)
		return err
	})
	if err != nil {
		return nil, err
	}

	if len(report.RemovedCourseIDs) > 0 {
		logger.Info().
			Int64("semester_id", semesterID).
			Ints64("removed_course_ids", report.RemovedCourseIDs).
			Int("deleted_classes", len(report.DeletedClasses)).
			Int64("deleted_enrollments", report.DeletedEnrollments).
			Msg("Semester course removal cascaded to classes and enrollments")
	}
	return report, nil
}

// replaceSemesterCourses rewrites a semester's course set: it reads the
// current association set, cascades the removed courses' classes and
// enrollments, then writes the new set. Callers pass transaction-bound
// stores so the read, the diff and the deletes commit or roll back as one
// unit; a diff computed outside the transaction could cascade against a
// set another writer already changed.
func replaceSemesterCourses(ctx context.Context, semesters semesterCourseStore, classes classCascadeStore, semesterID int64, courseIDs []int64) (*dto.CascadeReport, error) {
	current, err := semesters.GetCourseIDs(ctx, semesterID)
	if err != nil {
		return nil, err
	}
	removed := removedCourseIDs(current, courseIDs)

	report := &dto.CascadeReport{RemovedCourseIDs: removed}
	for _, courseID := range removed {
		deleted, enrollments, err := classes.DeleteByCourseAndSemester(ctx, courseID, semesterID)
		if err != nil {
			return nil, err
		}
		report.DeletedClasses = append(report.DeletedClasses, deleted...)
		report.DeletedEnrollments += enrollments
	}

	if err := semesters.ReplaceCourses(ctx, semesterID, courseIDs); err != nil {
		return nil, err
	}
	return report, nil
}

// DeleteSemester removes a semester and, via the database cascade, its
// classes and their enrollments.
func (s *SemesterService) DeleteSemester(ctx context.Context, id int64) error {
	return s.semesterRepo.Delete(ctx, id)
}

func (s *SemesterService) validateCourseIDs(ctx context.Context, courseIDs []int64) error {
	for _, id := range courseIDs {
		if _, err := s.courseRepo.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// validateSemester enforces the term enum and the rolling year window:
// the current year through the next SemesterYearWindow-1 years.
func validateSemester(year int, term models.Term) error {
	if !term.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("invalid term %q", term))
	}
	if !models.ValidSemesterYear(year, time.Now()) {
		return apperrors.NewValidationError(fmt.Sprintf("year %d is outside the scheduling window", year))
	}
	return nil
}

// removedCourseIDs returns the IDs present in current but absent from next.
func removedCourseIDs(current, next []int64) []int64 {
	keep := make(map[int64]struct{}, len(next))
	for _, id := range next {
		keep[id] = struct{}{}
	}
	var removed []int64
	for _, id := range current {
		if _, ok := keep[id]; !ok {
			removed = append(removed, id)
		}
	}
	return removed
}
