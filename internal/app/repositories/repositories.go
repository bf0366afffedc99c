package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx. Repositories
// are bound to the pool by default and rebound to a transaction with WithTx
// for multi-step operations (cascades, account provisioning).
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all repository instances
type Repositories struct {
	UserRepository       *UserRepository
	TokenRepository      *TokenRepository
	CourseRepository     *CourseRepository
	SemesterRepository   *SemesterRepository
	LecturerRepository   *LecturerRepository
	ClassRepository      *ClassRepository
	StudentRepository    *StudentRepository
	EnrollmentRepository *EnrollmentRepository
}

// NewRepositories creates all repositories bound to the pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		TokenRepository:      NewTokenRepository(db),
		CourseRepository:     NewCourseRepository(db),
		SemesterRepository:   NewSemesterRepository(db),
		LecturerRepository:   NewLecturerRepository(db),
		ClassRepository:      NewClassRepository(db),
		StudentRepository:    NewStudentRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
	}
}
