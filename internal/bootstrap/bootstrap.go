// Package bootstrap assembles the application: configuration, logging,
// database, infrastructure clients and the HTTP surface.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/ekurt/gradebook/internal/app/controllers"
	appMigrations "github.com/ekurt/gradebook/internal/app/migrations"
	appRepos "github.com/ekurt/gradebook/internal/app/repositories"
	appRoutes "github.com/ekurt/gradebook/internal/app/routes"
	appServices "github.com/ekurt/gradebook/internal/app/services"
	"github.com/ekurt/gradebook/internal/config"
	"github.com/ekurt/gradebook/internal/db"
	appMiddleware "github.com/ekurt/gradebook/internal/middleware"
	pkgAuth "github.com/ekurt/gradebook/internal/pkg/auth"
	"github.com/ekurt/gradebook/internal/pkg/email"
	"github.com/ekurt/gradebook/internal/pkg/filestorage"
	"github.com/ekurt/gradebook/internal/pkg/logger"
	"github.com/ekurt/gradebook/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	EmailService   email.Service
	FileStorage    *filestorage.LocalStorage
	BucketClient   *filestorage.BucketClient
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default admin account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg.Seed.AdminPassword); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, infrastructure clients,
// services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	// The bucket mirror is optional: without credentials uploads stay
	// local only.
	var bucketStorage filestorage.BucketStorage
	if cfg.Bucket.AccessKey != "" && cfg.Bucket.Name != "" {
		deps.BucketClient, err = filestorage.NewBucketClient(filestorage.BucketConfig{
			AccessKey: cfg.Bucket.AccessKey,
			SecretKey: cfg.Bucket.SecretKey,
			Bucket:    cfg.Bucket.Name,
			Region:    cfg.Bucket.Region,
			Endpoint:  cfg.Bucket.Endpoint,
		})
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to initialize bucket client")
			return nil, fmt.Errorf("failed to initialize bucket client: %w", err)
		}
		bucketStorage = deps.BucketClient
	} else {
		lgr.Info().Msg("No bucket credentials configured, uploads stay local")
	}

	if cfg.Email.SendgridAPIKey != "" {
		deps.EmailService = email.NewSendgridService(email.SendgridConfig{
			APIKey:    cfg.Email.SendgridAPIKey,
			FromName:  cfg.Email.FromName,
			FromEmail: cfg.Email.FromEmail,
		}, lgr)
	} else {
		lgr.Info().Msg("No SendGrid API key configured, emails go to the log")
		deps.EmailService = email.NewConsoleService(lgr)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  parseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: parseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(
		dbPool,
		deps.Repos,
		deps.JWTService,
		deps.EmailService,
		deps.FileStorage,
		bucketStorage,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(deps.Services.AuthService),
		User:       appControllers.NewUserController(deps.Services.UserService),
		Course:     appControllers.NewCourseController(deps.Services.CourseService),
		Semester:   appControllers.NewSemesterController(deps.Services.SemesterService),
		Lecturer:   appControllers.NewLecturerController(deps.Services.LecturerService),
		Class:      appControllers.NewClassController(deps.Services.ClassService),
		Student:    appControllers.NewStudentController(deps.Services.StudentService),
		Enrollment: appControllers.NewEnrollmentController(deps.Services.EnrollmentService),
		Gradebook:  appControllers.NewGradebookController(deps.Services.GradebookService),
		Import:     appControllers.NewImportController(deps.Services.ImportService),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
