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

// StudentRepository handles database operations for students
type StudentRepository struct {
	db DBTX
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db DBTX) *StudentRepository {
	return &StudentRepository{db: db}
}

// WithTx returns a copy of the repository bound to the transaction
func (r *StudentRepository) WithTx(tx pgx.Tx) *StudentRepository {
	return &StudentRepository{db: tx}
}

const studentColumns = `id, student_id, first_name, last_name, email, date_of_birth`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	err := row.Scan(
		&student.ID,
		&student.StudentID,
		&student.FirstName,
		&student.LastName,
		&student.Email,
		&student.DateOfBirth,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error scanning student: %w", err)
	}
	return &student, nil
}

// Create creates a new student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (student_id, first_name, last_name, email, date_of_birth)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		student.StudentID, student.FirstName, student.LastName, student.Email, student.DateOfBirth,
	).Scan(&student.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	return scanStudent(r.db.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a student by email
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE email = $1`
	return scanStudent(r.db.QueryRow(ctx, query, email))
}

// GetAll retrieves all students
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	return students, rows.Err()
}

// Update updates an existing student
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET student_id = $1, first_name = $2, last_name = $3, email = $4, date_of_birth = $5
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.StudentID, student.FirstName, student.LastName, student.Email, student.DateOfBirth, student.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete deletes a student by ID. Enrollments cascade by schema.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
