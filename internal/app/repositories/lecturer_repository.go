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

// LecturerRepository handles database operations for lecturers
type LecturerRepository struct {
	db DBTX
}

// NewLecturerRepository creates a new lecturer repository
func NewLecturerRepository(db DBTX) *LecturerRepository {
	return &LecturerRepository{db: db}
}

// WithTx returns a copy of the repository bound to the transaction
func (r *LecturerRepository) WithTx(tx pgx.Tx) *LecturerRepository {
	return &LecturerRepository{db: tx}
}

const lecturerColumns = `id, staff_id, first_name, last_name, email, date_of_birth`

func scanLecturer(row pgx.Row) (*models.Lecturer, error) {
	var lecturer models.Lecturer
	err := row.Scan(
		&lecturer.ID,
		&lecturer.StaffID,
		&lecturer.FirstName,
		&lecturer.LastName,
		&lecturer.Email,
		&lecturer.DateOfBirth,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLecturerNotFound
		}
		return nil, fmt.Errorf("error scanning lecturer: %w", err)
	}
	return &lecturer, nil
}

// Create creates a new lecturer
func (r *LecturerRepository) Create(ctx context.Context, lecturer *models.Lecturer) error {
	query := `
		INSERT INTO lecturers (staff_id, first_name, last_name, email, date_of_birth)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		lecturer.StaffID, lecturer.FirstName, lecturer.LastName, lecturer.Email, lecturer.DateOfBirth,
	).Scan(&lecturer.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "lecturers_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating lecturer: %w", err)
	}

	return nil
}

// GetByID retrieves a lecturer by ID
func (r *LecturerRepository) GetByID(ctx context.Context, id int64) (*models.Lecturer, error) {
	query := `SELECT ` + lecturerColumns + ` FROM lecturers WHERE id = $1`
	return scanLecturer(r.db.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a lecturer by email
func (r *LecturerRepository) GetByEmail(ctx context.Context, email string) (*models.Lecturer, error) {
	query := `SELECT ` + lecturerColumns + ` FROM lecturers WHERE email = $1`
	return scanLecturer(r.db.QueryRow(ctx, query, email))
}

// GetAll retrieves all lecturers
func (r *LecturerRepository) GetAll(ctx context.Context) ([]*models.Lecturer, error) {
	query := `SELECT ` + lecturerColumns + ` FROM lecturers ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lecturers []*models.Lecturer
	for rows.Next() {
		lecturer, err := scanLecturer(rows)
		if err != nil {
			return nil, err
		}
		lecturers = append(lecturers, lecturer)
	}

	return lecturers, rows.Err()
}

// Update updates an existing lecturer
func (r *LecturerRepository) Update(ctx context.Context, lecturer *models.Lecturer) error {
	query := `
		UPDATE lecturers
		SET staff_id = $1, first_name = $2, last_name = $3, email = $4, date_of_birth = $5
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		lecturer.StaffID, lecturer.FirstName, lecturer.LastName, lecturer.Email, lecturer.DateOfBirth, lecturer.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "lecturers_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating lecturer: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLecturerNotFound
	}

	return nil
}

// Delete deletes a lecturer by ID. Classes referencing the lecturer keep
// existing with lecturer_id set to NULL by the schema.
func (r *LecturerRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM lecturers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting lecturer: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLecturerNotFound
	}

	return nil
}
