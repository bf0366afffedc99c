package services

import (
	"context"
	"strings"

	"github.com/ekurt/gradebook/internal/app/models"
	"github.com/ekurt/gradebook/internal/app/repositories"
	"github.com/ekurt/gradebook/internal/pkg/apperrors"
	"github.com/ekurt/gradebook/internal/pkg/auth"
	"github.com/ekurt/gradebook/internal/pkg/email"
	"github.com/ekurt/gradebook/internal/pkg/logger"
)

// UserService handles direct user account administration
type UserService struct {
	userRepo     *repositories.UserRepository
	emailService email.Service
}

// NewUserService creates a new UserService
func NewUserService(userRepo *repositories.UserRepository, emailService email.Service) *UserService {
	return &UserService{userRepo: userRepo, emailService: emailService}
}

// CreateUser creates a user account with an explicit password and notifies
// the account holder. Notification failures are logged only.
func (s *UserService) CreateUser(ctx context.Context, user *models.User, password string) (*models.User, error) {
	if !user.Role.Valid() {
		return nil, apperrors.NewValidationError("invalid role")
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed
	user.FirstName = models.Capitalize(user.FirstName)
	user.LastName = models.Capitalize(user.LastName)
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.emailService.SendAccountCreated(user.Email, user.FirstName, user.Username); err != nil {
		logger.Warn().Err(err).Str("email", user.Email).Msg("Account creation notification failed")
	}
	return user, nil
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetAllUsers returns all user accounts.
func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.GetAll(ctx)
}

// UpdateUser updates a user's profile fields. The password is untouched.
func (s *UserService) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	current, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if !user.Role.Valid() {
		user.Role = current.Role
	}
	user.FirstName = models.Capitalize(user.FirstName)
	user.LastName = models.Capitalize(user.LastName)
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword sets a new password for the user.
func (s *UserService) ChangePassword(ctx context.Context, id int64, password string) error {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, id, hashed)
}

// DeleteUser removes a user account.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}
