package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekurt/gradebook/internal/app/models"
	"github.com/ekurt/gradebook/internal/app/repositories"
	"github.com/ekurt/gradebook/internal/db"
)

// LecturerService handles lecturer records and their paired user accounts
type LecturerService struct {
	pool         *pgxpool.Pool
	lecturerRepo *repositories.LecturerRepository
	userRepo     *repositories.UserRepository
	provisioner  *AccountProvisioner
}

// NewLecturerService creates a new LecturerService
func NewLecturerService(
	pool *pgxpool.Pool,
	lecturerRepo *repositories.LecturerRepository,
	userRepo *repositories.UserRepository,
	provisioner *AccountProvisioner,
) *LecturerService {
	return &LecturerService{
		pool:         pool,
		lecturerRepo: lecturerRepo,
		userRepo:     userRepo,
		provisioner:  provisioner,
	}
}

// CreateLecturer creates a lecturer record and provisions a LECTURER user
// account in the same transaction. Username and password are derived from
// the lecturer's name and date of birth.
func (s *LecturerService) CreateLecturer(ctx context.Context, lecturer *models.Lecturer) (*models.Lecturer, error) {
	lecturer.Normalize()
	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.lecturerRepo.WithTx(tx).Create(ctx, lecturer); err != nil {
			return err
		}
		provisioner := s.provisioner.WithRepo(s.userRepo.WithTx(tx))
		_, err := provisioner.Provision(ctx, lecturer.FirstName, lecturer.LastName, lecturer.Email, lecturer.DateOfBirth, models.RoleLecturer)
		return err
	})
	if err != nil {
		return nil, err
	}
	return lecturer, nil
}

// GetLecturer returns a lecturer by ID.
func (s *LecturerService) GetLecturer(ctx context.Context, id int64) (*models.Lecturer, error) {
	return s.lecturerRepo.GetByID(ctx, id)
}

// GetAllLecturers returns all lecturer records.
func (s *LecturerService) GetAllLecturers(ctx context.Context) ([]*models.Lecturer, error) {
	return s.lecturerRepo.GetAll(ctx)
}

// UpdateLecturer updates a lecturer record.
func (s *LecturerService) UpdateLecturer(ctx context.Context, lecturer *models.Lecturer) (*models.Lecturer, error) {
	if _, err := s.lecturerRepo.GetByID(ctx, lecturer.ID); err != nil {
		return nil, err
	}
	lecturer.Normalize()
	if err := s.lecturerRepo.Update(ctx, lecturer); err != nil {
		return nil, err
	}
	return lecturer, nil
}

// DeleteLecturer removes a lecturer and the user account paired by email.
// Classes the lecturer taught keep running with no assigned lecturer.
func (s *LecturerService) DeleteLecturer(ctx context.Context, id int64) error {
	lecturer, err := s.lecturerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.lecturerRepo.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		return removePairedAccount(ctx, s.userRepo.WithTx(tx), lecturer.Email, "lecturer")
	})
}
