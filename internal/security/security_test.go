package security

import (
	"testing"
	"time"

	"agrobase/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("Secret123")
	require.NoError(t, err)
	require.NotEqual(t, "Secret123", hash)

	require.NoError(t, h.Compare(hash, "Secret123"))
	require.Error(t, h.Compare(hash, "wrong_password"))
}

func TestHasherClampsInvalidCost(t *testing.T) {
	h := NewHasher(99)

	hash, err := h.Hash("Secret123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, bcrypt.DefaultCost, cost)
}

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test_secret_key")
	account := &models.Account{ID: uuid.New(), Email: "a@x.com"}

	token, err := issuer.Sign(account, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := issuer.Validate(token)
	require.NoError(t, err)
	require.Equal(t, account.ID, id)
}

func TestTokenIssuerRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("test_secret_key")
	account := &models.Account{ID: uuid.New(), Email: "a@x.com"}

	token, err := issuer.Sign(account, -time.Minute)
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenIssuerRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("test_secret_key")
	account := &models.Account{ID: uuid.New(), Email: "a@x.com"}

	token, err := issuer.Sign(account, time.Hour)
	require.NoError(t, err)

	other := NewTokenIssuer("another_secret")
	_, err = other.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuerRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test_secret_key")

	_, err := issuer.Validate("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken(32)
	require.NoError(t, err)
	require.Len(t, a, 64) // hex doubles the length

	b, err := GenerateToken(32)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestLockedOut(t *testing.T) {
	tests := []struct {
		name     string
		attempts int
		max      int
		want     bool
	}{
		{"below threshold", 4, 5, false},
		{"at threshold", 5, 5, true},
		{"above threshold", 6, 5, true},
		{"zero attempts", 0, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, LockedOut(tt.attempts, tt.max))
		})
	}
}

func TestResetTokenValid(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	require.True(t, ResetTokenValid(&future, now))
	require.False(t, ResetTokenValid(&past, now))
	require.False(t, ResetTokenValid(nil, now))
}
