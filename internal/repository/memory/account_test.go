package memory_test

import (
	"context"
	"testing"
	"time"

	"agrobase/internal/models"
	"agrobase/internal/repository"
	"agrobase/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

func newAccount(email string) *models.Account {
	return &models.Account{
		Name:         "Test Account",
		Email:        email,
		PasswordHash: "hash",
		IsActive:     true,
	}
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	repo := memory.NewAccountRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newAccount("a@x.com")))

	err := repo.Create(ctx, newAccount("a@x.com"))
	require.ErrorIs(t, err, repository.ErrEmailExists)

	// Case-insensitive
	err = repo.Create(ctx, newAccount("A@X.COM"))
	require.ErrorIs(t, err, repository.ErrEmailExists)
}

func TestLookups(t *testing.T) {
	repo := memory.NewAccountRepository()
	ctx := context.Background()

	verify := "verify_token"
	reset := "reset_token"
	expires := time.Now().Add(time.Hour)

	acct := newAccount("a@x.com")
	acct.EmailVerificationToken = &verify
	acct.PasswordResetToken = &reset
	acct.PasswordResetExpires = &expires
	require.NoError(t, repo.Create(ctx, acct))

	got, err := repo.GetByEmail(ctx, "A@X.com")
	require.NoError(t, err)
	require.Equal(t, acct.ID, got.ID)

	got, err = repo.GetByVerificationToken(ctx, verify)
	require.NoError(t, err)
	require.Equal(t, acct.ID, got.ID)

	got, err = repo.GetByResetToken(ctx, reset)
	require.NoError(t, err)
	require.Equal(t, acct.ID, got.ID)

	_, err = repo.GetByEmail(ctx, "nobody@x.com")
	require.ErrorIs(t, err, repository.ErrAccountNotFound)
	_, err = repo.GetByVerificationToken(ctx, "wrong")
	require.ErrorIs(t, err, repository.ErrAccountNotFound)
	_, err = repo.GetByResetToken(ctx, "wrong")
	require.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestGetReturnsCopy(t *testing.T) {
	repo := memory.NewAccountRepository()
	ctx := context.Background()

	acct := newAccount("a@x.com")
	require.NoError(t, repo.Create(ctx, acct))

	got, err := repo.GetByID(ctx, acct.ID)
	require.NoError(t, err)
	got.Email = "mutated@x.com"

	again, err := repo.GetByID(ctx, acct.ID)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", again.Email, "mutating a returned account must not affect the store")
}

func TestUpdateUnknownAccount(t *testing.T) {
	repo := memory.NewAccountRepository()

	acct := newAccount("a@x.com")
	err := repo.Update(context.Background(), acct)
	require.ErrorIs(t, err, repository.ErrAccountNotFound)
}
