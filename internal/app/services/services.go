// Package services implements the application's business rules on top of
// the repository layer: semester scheduling and its cascades, account
// provisioning, grade writes with notification, gradebook assembly and
// bulk import.
package services

import (
	"github.com/jackc/pgx/v5/pgxpool"

	appauth "github.com/ekurt/gradebook/internal/app/auth"
	"github.com/ekurt/gradebook/internal/app/repositories"
	"github.com/ekurt/gradebook/internal/pkg/auth"
	"github.com/ekurt/gradebook/internal/pkg/email"
	"github.com/ekurt/gradebook/internal/pkg/filestorage"
)

// Services holds all service instances
type Services struct {
	AuthService       *AuthService
	UserService       *UserService
	CourseService     *CourseService
	SemesterService   *SemesterService
	LecturerService   *LecturerService
	StudentService    *StudentService
	ClassService      *ClassService
	EnrollmentService *EnrollmentService
	GradebookService  *GradebookService
	ImportService     *ImportService
}

// NewServices wires every service against the shared pool, repositories
// and infrastructure clients.
func NewServices(
	pool *pgxpool.Pool,
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	emailService email.Service,
	fileStorage filestorage.FileStorage,
	bucketStorage filestorage.BucketStorage,
) *Services {
	provisioner := NewAccountProvisioner(repos.UserRepository)
	authorizer := appauth.NewAuthorizationService(repos.EnrollmentRepository, repos.ClassRepository, repos.LecturerRepository)

	return &Services{
		AuthService:   NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService),
		UserService:   NewUserService(repos.UserRepository, emailService),
		CourseService: NewCourseService(repos.CourseRepository),
		SemesterService: NewSemesterService(
			pool, repos.SemesterRepository, repos.CourseRepository, repos.ClassRepository,
		),
		LecturerService: NewLecturerService(pool, repos.LecturerRepository, repos.UserRepository, provisioner),
		StudentService:  NewStudentService(pool, repos.StudentRepository, repos.UserRepository, provisioner),
		ClassService: NewClassService(
			repos.ClassRepository, repos.CourseRepository, repos.SemesterRepository,
			repos.LecturerRepository, repos.StudentRepository,
		),
		EnrollmentService: NewEnrollmentService(
			repos.EnrollmentRepository, repos.ClassRepository, repos.StudentRepository, authorizer, emailService,
		),
		GradebookService: NewGradebookService(
			repos.SemesterRepository, repos.CourseRepository, repos.ClassRepository,
			repos.LecturerRepository, repos.StudentRepository, repos.EnrollmentRepository,
		),
		ImportService: NewImportService(
			pool, repos.StudentRepository, repos.UserRepository, repos.ClassRepository,
			repos.EnrollmentRepository, provisioner, fileStorage, bucketStorage,
		),
	}
}
