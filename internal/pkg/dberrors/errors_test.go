package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "semesters_year_term_key"}

	assert.True(t, IsUniqueViolation(dup))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert failed: %w", dup)))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsDuplicateConstraintError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "semesters_year_term_key"}

	assert.True(t, IsDuplicateConstraintError(dup, "semesters_year_term_key"))
	assert.False(t, IsDuplicateConstraintError(dup, "users_email_key"), "different constraint")
	assert.False(t, IsDuplicateConstraintError(&pgconn.PgError{Code: "23503", ConstraintName: "semesters_year_term_key"}, "semesters_year_term_key"))
	assert.False(t, IsDuplicateConstraintError(errors.New("boom"), "semesters_year_term_key"))
}
