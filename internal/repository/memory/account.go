// Package memory provides an in-memory account repository used in tests
package memory

import (
	"context"
	"crypto/subtle"
	"strings"
	"sync"
	"time"

	"agrobase/internal/models"
	"agrobase/internal/repository"

	"github.com/google/uuid"
)

// AccountRepository is a mutex-guarded in-memory implementation of
// repository.AccountRepository.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*models.Account
}

// NewAccountRepository creates an empty in-memory account repository
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[uuid.UUID]*models.Account),
	}
}

func (r *AccountRepository) Create(_ context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if strings.EqualFold(a.Email, account.Email) {
			return repository.ErrEmailExists
		}
	}

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	stored := *account
	r.accounts[account.ID] = &stored
	return nil
}

func (r *AccountRepository) Update(_ context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; !ok {
		return repository.ErrAccountNotFound
	}
	account.UpdatedAt = time.Now()

	stored := *account
	r.accounts[account.ID] = &stored
	return nil
}

func (r *AccountRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if a, ok := r.accounts[id]; ok {
		c := *a
		return &c, nil
	}
	return nil, repository.ErrAccountNotFound
}

func (r *AccountRepository) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if strings.EqualFold(a.Email, email) {
			c := *a
			return &c, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (r *AccountRepository) GetByVerificationToken(_ context.Context, token string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.EmailVerificationToken != nil && tokenEqual(*a.EmailVerificationToken, token) {
			c := *a
			return &c, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (r *AccountRepository) GetByResetToken(_ context.Context, token string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.PasswordResetToken != nil && tokenEqual(*a.PasswordResetToken, token) {
			c := *a
			return &c, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (r *AccountRepository) PurgeExpiredResetTokens(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var purged int64
	for _, a := range r.accounts {
		if a.PasswordResetToken != nil && a.PasswordResetExpires != nil && a.PasswordResetExpires.Before(cutoff) {
			a.PasswordResetToken = nil
			a.PasswordResetExpires = nil
			a.UpdatedAt = time.Now()
			purged++
		}
	}
	return purged, nil
}

// tokenEqual compares opaque tokens in constant time
func tokenEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
