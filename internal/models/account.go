package models

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a registered account in the system
type Account struct {
	ID                     uuid.UUID  `json:"id"`
	Name                   string     `json:"name"`
	Email                  string     `json:"email"`
	PasswordHash           string     `json:"-"`
	Phone                  *string    `json:"phone,omitempty"`
	Document               *string    `json:"document,omitempty"`
	IsActive               bool       `json:"is_active"`
	EmailVerified          bool       `json:"email_verified"`
	EmailVerificationToken *string    `json:"-"`
	PasswordResetToken     *string    `json:"-"`
	PasswordResetExpires   *time.Time `json:"-"`
	FailedLoginAttempts    int        `json:"-"`
	LastFailedLogin        *time.Time `json:"-"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// Sanitized returns a copy of the account safe to hand back to callers.
// Hash and token fields are excluded from JSON already, but responses are
// built from a copy so the stored record is never exposed.
func (a *Account) Sanitized() *Account {
	c := *a
	c.PasswordHash = ""
	c.EmailVerificationToken = nil
	c.PasswordResetToken = nil
	c.PasswordResetExpires = nil
	return &c
}
