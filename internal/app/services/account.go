package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ekurt/gradebook/internal/app/models"
	"github.com/ekurt/gradebook/internal/app/repositories"
	"github.com/ekurt/gradebook/internal/pkg/auth"
	"github.com/ekurt/gradebook/internal/pkg/logger"
)

const passwordDateLayout = "20060102"

// DeriveUsername builds the initial username for a provisioned account:
// the first letter of the first given name followed by the final surname,
// both capitalized. "maria"/"santos" becomes "MSantos"; compound names
// keep only the first and last tokens ("ana maria"/"dos santos" → "ASantos").
func DeriveUsername(firstName, lastName string) string {
	first := models.Capitalize(firstToken(firstName))
	last := models.Capitalize(lastToken(lastName))
	if first == "" {
		return last
	}
	initial, _ := utf8.DecodeRuneInString(first)
	return string(initial) + last
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func lastToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// DerivePassword builds the initial plaintext password for a provisioned
// account from the person's date of birth, formatted as YYYYMMDD.
func DerivePassword(dateOfBirth time.Time) string {
	return dateOfBirth.Format(passwordDateLayout)
}

// accountRemover is the slice of UserRepository the paired-account delete
// needs.
type accountRemover interface {
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}

var _ accountRemover = (*repositories.UserRepository)(nil)

// removePairedAccount deletes the user account provisioned for a person
// record, matched by email. The email uniqueness constraint guarantees at
// most one account goes; a person without one is logged, not an error.
func removePairedAccount(ctx context.Context, accounts accountRemover, email, recordKind string) error {
	deleted, err := accounts.DeleteByEmail(ctx, email)
	if err != nil {
		return err
	}
	if deleted == 0 {
		logger.Warn().Str("email", email).Str("record", recordKind).Msg("Deleted record had no paired user account")
	}
	return nil
}

// AccountProvisioner creates user accounts for lecturers and students
// with derived credentials.
type AccountProvisioner struct {
	userRepo *repositories.UserRepository
}

// NewAccountProvisioner creates a new AccountProvisioner.
func NewAccountProvisioner(userRepo *repositories.UserRepository) *AccountProvisioner {
	return &AccountProvisioner{userRepo: userRepo}
}

// WithRepo returns a provisioner bound to the given user repository,
// typically one rebound to a transaction.
func (p *AccountProvisioner) WithRepo(userRepo *repositories.UserRepository) *AccountProvisioner {
	return &AccountProvisioner{userRepo: userRepo}
}

// Provision creates a user account for the given person with username and
// password derived from their name and date of birth. The returned user
// carries the hashed password.
func (p *AccountProvisioner) Provision(ctx context.Context, firstName, lastName, email string, dateOfBirth time.Time, role models.Role) (*models.User, error) {
	username := DeriveUsername(firstName, lastName)
	hashed, err := auth.HashPassword(DerivePassword(dateOfBirth))
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  username,
		Password:  hashed,
		FirstName: models.Capitalize(firstName),
		LastName:  models.Capitalize(lastName),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Role:      role,
	}
	if err := p.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
