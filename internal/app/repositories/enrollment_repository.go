package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ekurt/gradebook/internal/app/models"
	"github.com/ekurt/gradebook/internal/pkg/apperrors"
)

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db DBTX
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db DBTX) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// WithTx returns a copy of the repository bound to the transaction
func (r *EnrollmentRepository) WithTx(tx pgx.Tx) *EnrollmentRepository {
	return &EnrollmentRepository{db: tx}
}

func scanEnrollment(row pgx.Row) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := row.Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.ClassID,
		&enrollment.Grade,
		&enrollment.EnrolledAt,
		&enrollment.GradeUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error scanning enrollment: %w", err)
	}
	return &enrollment, nil
}

const enrollmentColumns = `id, student_id, class_id, grade, enrolled_at, grade_updated_at`

// Create creates a new enrollment
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (student_id, class_id, grade)
		VALUES ($1, $2, $3)
		RETURNING id, enrolled_at, grade_updated_at
	`

	err := r.db.QueryRow(ctx, query,
		enrollment.StudentID, enrollment.ClassID, enrollment.Grade,
	).Scan(&enrollment.ID, &enrollment.EnrolledAt, &enrollment.GradeUpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

// GetByID retrieves an enrollment by ID
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE id = $1`
	return scanEnrollment(r.db.QueryRow(ctx, query, id))
}

// GetAll retrieves all enrollments
func (r *EnrollmentRepository) GetAll(ctx context.Context) ([]*models.Enrollment, error) {
	return r.queryEnrollments(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments ORDER BY id`)
}

// GetByStudentID retrieves the enrollments of a student
func (r *EnrollmentRepository) GetByStudentID(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	return r.queryEnrollments(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE student_id = $1 ORDER BY id`,
		studentID)
}

// GetByClassID retrieves the enrollments of a class
func (r *EnrollmentRepository) GetByClassID(ctx context.Context, classID int64) ([]*models.Enrollment, error) {
	return r.queryEnrollments(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE class_id = $1 ORDER BY id`,
		classID)
}

// GetByStudentEmail retrieves the enrollments of the student with the email
func (r *EnrollmentRepository) GetByStudentEmail(ctx context.Context, email string) ([]*models.Enrollment, error) {
	return r.queryEnrollments(ctx,
		`SELECT e.id, e.student_id, e.class_id, e.grade, e.enrolled_at, e.grade_updated_at
		 FROM enrollments e
		 JOIN students s ON s.id = e.student_id
		 WHERE s.email = $1
		 ORDER BY e.id`,
		email)
}

// GetByClassAndStudentEmail retrieves the enrollments of a class restricted
// to the student with the email
func (r *EnrollmentRepository) GetByClassAndStudentEmail(ctx context.Context, classID int64, email string) ([]*models.Enrollment, error) {
	return r.queryEnrollments(ctx,
		`SELECT e.id, e.student_id, e.class_id, e.grade, e.enrolled_at, e.grade_updated_at
		 FROM enrollments e
		 JOIN students s ON s.id = e.student_id
		 WHERE e.class_id = $1 AND s.email = $2
		 ORDER BY e.id`,
		classID, email)
}

func (r *EnrollmentRepository) queryEnrollments(ctx context.Context, query string, args ...any) ([]*models.Enrollment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, enrollment)
	}

	return enrollments, rows.Err()
}

// UpdateGrade sets the grade and refreshes grade_updated_at
func (r *EnrollmentRepository) UpdateGrade(ctx context.Context, id int64, grade int) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE enrollments SET grade = $1, grade_updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		grade, id)
	if err != nil {
		return fmt.Errorf("error updating grade: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// Delete deletes an enrollment by ID
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}
