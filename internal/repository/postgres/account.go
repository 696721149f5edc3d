// Package postgres provides the Postgres-backed repository implementations
package postgres

import (
	"context"
	"database/sql"
	"time"

	"agrobase/internal/models"
	"agrobase/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const accountColumns = `id, name, email, password_hash, phone, document,
	is_active, email_verified, email_verification_token,
	password_reset_token, password_reset_expires,
	failed_login_attempts, last_failed_login, created_at, updated_at`

type accountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a Postgres-backed account repository
func NewAccountRepository(db *sql.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}

	query := `
		INSERT INTO accounts (id, name, email, password_hash, phone, document,
			is_active, email_verified, email_verification_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		account.ID,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.Phone,
		account.Document,
		account.IsActive,
		account.EmailVerified,
		account.EmailVerificationToken,
	).Scan(&account.CreatedAt, &account.UpdatedAt)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
		return repository.ErrEmailExists
	}
	return err
}

func (r *accountRepository) Update(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, email = $2, password_hash = $3, phone = $4, document = $5,
		    is_active = $6, email_verified = $7, email_verification_token = $8,
		    password_reset_token = $9, password_reset_expires = $10,
		    failed_login_attempts = $11, last_failed_login = $12,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $13
		RETURNING updated_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		account.Name,
		account.Email,
		account.PasswordHash,
		account.Phone,
		account.Document,
		account.IsActive,
		account.EmailVerified,
		account.EmailVerificationToken,
		account.PasswordResetToken,
		account.PasswordResetExpires,
		account.FailedLoginAttempts,
		account.LastFailedLogin,
		account.ID,
	).Scan(&account.UpdatedAt)

	if err == sql.ErrNoRows {
		return repository.ErrAccountNotFound
	}
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
		return repository.ErrEmailExists
	}
	return err
}

func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE lower(email) = lower($1)`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *accountRepository) GetByVerificationToken(ctx context.Context, token string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email_verification_token = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, token))
}

func (r *accountRepository) GetByResetToken(ctx context.Context, token string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE password_reset_token = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, token))
}

func (r *accountRepository) PurgeExpiredResetTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE accounts
		SET password_reset_token = NULL,
		    password_reset_expires = NULL,
		    updated_at = CURRENT_TIMESTAMP
		WHERE password_reset_token IS NOT NULL
		  AND password_reset_expires < $1`

	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *accountRepository) scanOne(row *sql.Row) (*models.Account, error) {
	account := &models.Account{}
	err := row.Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.Phone,
		&account.Document,
		&account.IsActive,
		&account.EmailVerified,
		&account.EmailVerificationToken,
		&account.PasswordResetToken,
		&account.PasswordResetExpires,
		&account.FailedLoginAttempts,
		&account.LastFailedLogin,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}
