package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekurt/gradebook/internal/app/models"
	"github.com/ekurt/gradebook/internal/app/repositories"
	"github.com/ekurt/gradebook/internal/db"
)

// StudentService handles student records and their paired user accounts
type StudentService struct {
	pool        *pgxpool.Pool
	studentRepo *repositories.StudentRepository
	userRepo    *repositories.UserRepository
	provisioner *AccountProvisioner
}

// NewStudentService creates a new StudentService
func NewStudentService(
	pool *pgxpool.Pool,
	studentRepo *repositories.StudentRepository,
	userRepo *repositories.UserRepository,
	provisioner *AccountProvisioner,
) *StudentService {
	return &StudentService{
		pool:        pool,
		studentRepo: studentRepo,
		userRepo:    userRepo,
		provisioner: provisioner,
	}
}

// CreateStudent creates a student record and provisions a STUDENT user
// account in the same transaction. Username and password are derived from
// the student's name and date of birth.
func (s *StudentService) CreateStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	student.Normalize()
	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.studentRepo.WithTx(tx).Create(ctx, student); err != nil {
			return err
		}
		provisioner := s.provisioner.WithRepo(s.userRepo.WithTx(tx))
		_, err := provisioner.Provision(ctx, student.FirstName, student.LastName, student.Email, student.DateOfBirth, models.RoleStudent)
		return err
	})
	if err != nil {
		return nil, err
	}
	return student, nil
}

// GetStudent returns a student by ID.
func (s *StudentService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// GetAllStudents returns all student records.
func (s *StudentService) GetAllStudents(ctx context.Context) ([]*models.Student, error) {
	return s.studentRepo.GetAll(ctx)
}

// UpdateStudent updates a student record.
func (s *StudentService) UpdateStudent(ctx context.Context, student *models.Student) (*models.Student, error) {
	if _, err := s.studentRepo.GetByID(ctx, student.ID); err != nil {
		return nil, err
	}
	student.Normalize()
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// DeleteStudent removes a student, their enrollments via the database
// cascade, and the user account paired by email.
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.studentRepo.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		return removePairedAccount(ctx, s.userRepo.WithTx(tx), student.Email, "student")
	})
}
