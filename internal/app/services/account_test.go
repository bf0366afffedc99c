package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveUsername(t *testing.T) {
	tests := []struct {
		firstName string
		lastName  string
		want      string
	}{
		{"maria", "santos", "MSantos"},
		{"MARIA", "SANTOS", "MSantos"},
		{"john", "smith", "JSmith"},
		{"  ana ", " lee ", "ALee"},
		{"ana maria", "dos santos", "ASantos"},
		{"", "santos", "Santos"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveUsername(tt.firstName, tt.lastName),
			"DeriveUsername(%q, %q)", tt.firstName, tt.lastName)
	}
}

func TestDerivePassword(t *testing.T) {
	dob := time.Date(1999, time.March, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "19990302", DerivePassword(dob))

	dob = time.Date(2001, time.December, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "20011231", DerivePassword(dob))
}

type fakeAccountRemover struct {
	deleted   int64
	deleteErr error
	emails    []string
}

func (f *fakeAccountRemover) DeleteByEmail(_ context.Context, email string) (int64, error) {
	f.emails = append(f.emails, email)
	return f.deleted, f.deleteErr
}

func TestRemovePairedAccount(t *testing.T) {
	accounts := &fakeAccountRemover{deleted: 1}
	require.NoError(t, removePairedAccount(context.Background(), accounts, "msantos@example.com", "student"))
	assert.Equal(t, []string{"msantos@example.com"}, accounts.emails,
		"exactly one delete, addressed by the record's email")
}

func TestRemovePairedAccountToleratesMissingAccount(t *testing.T) {
	accounts := &fakeAccountRemover{deleted: 0}
	assert.NoError(t, removePairedAccount(context.Background(), accounts, "jlee@example.com", "lecturer"),
		"a record without a paired account still deletes cleanly")
}

func TestRemovePairedAccountPropagatesStoreErrors(t *testing.T) {
	deleteFailed := errors.New("delete failed")
	accounts := &fakeAccountRemover{deleteErr: deleteFailed}
	assert.ErrorIs(t, removePairedAccount(context.Background(), accounts, "a@example.com", "student"), deleteFailed)
}
