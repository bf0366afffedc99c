// Package seed creates the default records a fresh deployment needs.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekurt/gradebook/internal/app/models"
	"github.com/ekurt/gradebook/internal/app/repositories"
	"github.com/ekurt/gradebook/internal/pkg/apperrors"
	"github.com/ekurt/gradebook/internal/pkg/auth"
	"github.com/ekurt/gradebook/internal/pkg/logger"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminEmail    = "admin@gradebook.local"
)

// CreateDefaultData ensures the default admin account exists so a fresh
// deployment can be administered. The initial password must be changed
// after first login.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, adminPassword string) error {
	userRepo := repositories.NewUserRepository(dbPool)

	if _, err := userRepo.GetByUsername(ctx, defaultAdminUsername); err == nil {
		logger.Debug().Msg("Default admin account already exists")
		return nil
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	if adminPassword == "" {
		adminPassword = defaultAdminUsername
	}
	hashed, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:  defaultAdminUsername,
		Password:  hashed,
		FirstName: "Admin",
		LastName:  "Admin",
		Email:     defaultAdminEmail,
		Role:      models.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrUsernameTaken) || errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return err
	}

	logger.Info().Str("username", defaultAdminUsername).Msg("Default admin account created")
	return nil
}
