package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ekurt/gradebook/internal/app/models"
	"github.com/ekurt/gradebook/internal/pkg/apperrors"
	"github.com/ekurt/gradebook/internal/pkg/dberrors"
)

// SemesterRepository handles database operations for semesters and their
// course associations
type SemesterRepository struct {
	db DBTX
}

// NewSemesterRepository creates a new semester repository
func NewSemesterRepository(db DBTX) *SemesterRepository {
	return &SemesterRepository{db: db}
}

// WithTx returns a copy of the repository bound to the transaction
func (r *SemesterRepository) WithTx(tx pgx.Tx) *SemesterRepository {
	return &SemesterRepository{db: tx}
}

// Create creates a new semester
func (r *SemesterRepository) Create(ctx context.Context, semester *models.Semester) error {
	query := `
		INSERT INTO semesters (year, term)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, semester.Year, semester.Term).Scan(&semester.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "semesters_year_term_key") {
			return apperrors.ErrSemesterAlreadyExists
		}
		return fmt.Errorf("error creating semester: %w", err)
	}

	return nil
}

// GetByID retrieves a semester by ID, with its associated courses
func (r *SemesterRepository) GetByID(ctx context.Context, id int64) (*models.Semester, error) {
	query := `SELECT id, year, term FROM semesters WHERE id = $1`

	var semester models.Semester
	err := r.db.QueryRow(ctx, query, id).Scan(&semester.ID, &semester.Year, &semester.Term)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSemesterNotFound
		}
		return nil, fmt.Errorf("error retrieving semester: %w", err)
	}

	courses, err := r.GetCourses(ctx, id)
	if err != nil {
		return nil, err
	}
	semester.Courses = courses

	return &semester, nil
}

// GetAll retrieves all semesters with their associated courses
func (r *SemesterRepository) GetAll(ctx context.Context) ([]*models.Semester, error) {
	rows, err := r.db.Query(ctx, `SELECT id, year, term FROM semesters ORDER BY year, term`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var semesters []*models.Semester
	for rows.Next() {
		var semester models.Semester
		if err := rows.Scan(&semester.ID, &semester.Year, &semester.Term); err != nil {
			return nil, err
		}
		semesters = append(semesters, &semester)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, semester := range semesters {
		courses, err := r.GetCourses(ctx, semester.ID)
		if err != nil {
			return nil, err
		}
		semester.Courses = courses
	}

	return semesters, nil
}

// GetCourses retrieves the courses associated with a semester
func (r *SemesterRepository) GetCourses(ctx context.Context, semesterID int64) ([]*models.Course, error) {
	query := `
		SELECT c.id, c.code, c.name
		FROM courses c
		JOIN semester_courses sc ON sc.course_id = c.id
		WHERE sc.semester_id = $1
		ORDER BY c.id
	`

	rows, err := r.db.Query(ctx, query, semesterID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving semester courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Code, &course.Name); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	return courses, rows.Err()
}

// GetCourseIDs retrieves the IDs of the courses associated with a semester
func (r *SemesterRepository) GetCourseIDs(ctx context.Context, semesterID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT course_id FROM semester_courses WHERE semester_id = $1`, semesterID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving semester course ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// HasCourse checks whether the course is associated with the semester
func (r *SemesterRepository) HasCourse(ctx context.Context, semesterID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM semester_courses WHERE semester_id = $1 AND course_id = $2)`,
		semesterID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking semester course: %w", err)
	}
	return exists, nil
}

// ReplaceCourses rewrites the course association set of a semester
func (r *SemesterRepository) ReplaceCourses(ctx context.Context, semesterID int64, courseIDs []int64) error {
	if _, err := r.db.Exec(ctx,
		`DELETE FROM semester_courses WHERE semester_id = $1`, semesterID); err != nil {
		return fmt.Errorf("error clearing semester courses: %w", err)
	}

	for _, courseID := range courseIDs {
		if _, err := r.db.Exec(ctx,
			`INSERT INTO semester_courses (semester_id, course_id) VALUES ($1, $2)`,
			semesterID, courseID); err != nil {
			return fmt.Errorf("error associating course %d: %w", courseID, err)
		}
	}

	return nil
}

// Update updates an existing semester
func (r *SemesterRepository) Update(ctx context.Context, semester *models.Semester) error {
	query := `UPDATE semesters SET year = $1, term = $2 WHERE id = $3`

	cmdTag, err := r.db.Exec(ctx, query, semester.Year, semester.Term, semester.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "semesters_year_term_key") {
			return apperrors.ErrSemesterAlreadyExists
		}
		return fmt.Errorf("error updating semester: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSemesterNotFound
	}

	return nil
}

// Delete deletes a semester by ID
func (r *SemesterRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM semesters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting semester: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSemesterNotFound
	}

	return nil
}
