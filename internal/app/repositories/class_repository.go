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

// ClassRepository handles database operations for classes
type ClassRepository struct {
	db DBTX
}

// NewClassRepository creates a new class repository
func NewClassRepository(db DBTX) *ClassRepository {
	return &ClassRepository{db: db}
}

// WithTx returns a copy of the repository bound to the transaction
func (r *ClassRepository) WithTx(tx pgx.Tx) *ClassRepository {
	return &ClassRepository{db: tx}
}

func scanClass(row pgx.Row) (*models.Class, error) {
	var class models.Class
	err := row.Scan(
		&class.ID,
		&class.Number,
		&class.CourseID,
		&class.SemesterID,
		&class.LecturerID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("error scanning class: %w", err)
	}
	return &class, nil
}

// Create creates a new class
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	query := `
		INSERT INTO classes (number, course_id, semester_id, lecturer_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		class.Number, class.CourseID, class.SemesterID, class.LecturerID,
	).Scan(&class.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "classes_number_key") {
			return apperrors.ErrClassNumberAlreadyExists
		}
		return fmt.Errorf("error creating class: %w", err)
	}

	return nil
}

// GetByID retrieves a class by ID
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	query := `SELECT id, number, course_id, semester_id, lecturer_id FROM classes WHERE id = $1`
	return scanClass(r.db.QueryRow(ctx, query, id))
}

// GetByNumber retrieves a class by its unique class number
func (r *ClassRepository) GetByNumber(ctx context.Context, number int64) (*models.Class, error) {
	query := `SELECT id, number, course_id, semester_id, lecturer_id FROM classes WHERE number = $1`
	return scanClass(r.db.QueryRow(ctx, query, number))
}

// GetAll retrieves all classes
func (r *ClassRepository) GetAll(ctx context.Context) ([]*models.Class, error) {
	return r.queryClasses(ctx,
		`SELECT id, number, course_id, semester_id, lecturer_id FROM classes ORDER BY id`)
}

// GetByCourseAndSemester retrieves the classes for a (course, semester) pair
func (r *ClassRepository) GetByCourseAndSemester(ctx context.Context, courseID, semesterID int64) ([]*models.Class, error) {
	return r.queryClasses(ctx,
		`SELECT id, number, course_id, semester_id, lecturer_id
		 FROM classes WHERE course_id = $1 AND semester_id = $2 ORDER BY id`,
		courseID, semesterID)
}

// GetByLecturerID retrieves the classes assigned to a lecturer
func (r *ClassRepository) GetByLecturerID(ctx context.Context, lecturerID int64) ([]*models.Class, error) {
	return r.queryClasses(ctx,
		`SELECT id, number, course_id, semester_id, lecturer_id
		 FROM classes WHERE lecturer_id = $1 ORDER BY id`,
		lecturerID)
}

// GetAvailableForStudent retrieves the classes the student is not enrolled in
func (r *ClassRepository) GetAvailableForStudent(ctx context.Context, studentID int64) ([]*models.Class, error) {
	return r.queryClasses(ctx,
		`SELECT id, number, course_id, semester_id, lecturer_id
		 FROM classes
		 WHERE id NOT IN (SELECT class_id FROM enrollments WHERE student_id = $1)
		 ORDER BY id`,
		studentID)
}

// GetByStudentEnrollment retrieves the distinct classes a student is enrolled in
func (r *ClassRepository) GetByStudentEnrollment(ctx context.Context, studentID int64) ([]*models.Class, error) {
	return r.queryClasses(ctx,
		`SELECT DISTINCT c.id, c.number, c.course_id, c.semester_id, c.lecturer_id
		 FROM classes c
		 JOIN enrollments e ON e.class_id = c.id
		 WHERE e.student_id = $1
		 ORDER BY c.id`,
		studentID)
}

func (r *ClassRepository) queryClasses(ctx context.Context, query string, args ...any) ([]*models.Class, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		class, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}

	return classes, rows.Err()
}

// Update updates an existing class
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	query := `
		UPDATE classes
		SET number = $1, course_id = $2, semester_id = $3, lecturer_id = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		class.Number, class.CourseID, class.SemesterID, class.LecturerID, class.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "classes_number_key") {
			return apperrors.ErrClassNumberAlreadyExists
		}
		return fmt.Errorf("error updating class: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}

// Delete deletes a class by ID. Enrollments cascade by schema.
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting class: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}

// DeleteByCourseAndSemester deletes every class for a (course, semester)
// pair and returns the removed classes along with the number of enrollments
// that went with them. Run inside a transaction when part of a cascade.
func (r *ClassRepository) DeleteByCourseAndSemester(ctx context.Context, courseID, semesterID int64) ([]*models.Class, int64, error) {
	classes, err := r.GetByCourseAndSemester(ctx, courseID, semesterID)
	if err != nil {
		return nil, 0, err
	}
	if len(classes) == 0 {
		return nil, 0, nil
	}

	ids := make([]int64, len(classes))
	for i, class := range classes {
		ids[i] = class.ID
	}

	var enrollmentCount int64
	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE class_id = ANY($1)`, ids).Scan(&enrollmentCount)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting dependent enrollments: %w", err)
	}

	// Enrollment rows go with their classes via ON DELETE CASCADE
	if _, err := r.db.Exec(ctx,
		`DELETE FROM classes WHERE id = ANY($1)`, ids); err != nil {
		return nil, 0, fmt.Errorf("error deleting classes: %w", err)
	}

	return classes, enrollmentCount, nil
}
