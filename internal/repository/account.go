// Package repository defines the persistence interfaces consumed by the
// account security service
package repository

import (
	"context"
	"time"

	"agrobase/internal/models"

	"github.com/google/uuid"
)

// AccountRepository defines the interface for account persistence
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	Update(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByVerificationToken(ctx context.Context, token string) (*models.Account, error)
	GetByResetToken(ctx context.Context, token string) (*models.Account, error)
	// PurgeExpiredResetTokens clears reset tokens whose expiry is before cutoff
	// and returns the number of accounts touched.
	PurgeExpiredResetTokens(ctx context.Context, cutoff time.Time) (int64, error)
}
