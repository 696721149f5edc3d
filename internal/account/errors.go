package account

import "errors"

var (
	// ErrEmailTaken indicates the email is already registered
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials indicates the email or password is wrong. The same
	// error covers unknown accounts so callers cannot enumerate registered emails.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountInactive indicates the account has been deactivated
	ErrAccountInactive = errors.New("account is inactive")
	// ErrTooManyAttempts indicates the account is locked out after repeated
	// failed logins; distinct from ErrInvalidCredentials so callers can render
	// a cooldown message.
	ErrTooManyAttempts = errors.New("too many failed login attempts")
	// ErrInvalidVerificationToken indicates the verification token matched no account
	ErrInvalidVerificationToken = errors.New("invalid verification token")
	// ErrAlreadyVerified indicates the email is already verified
	ErrAlreadyVerified = errors.New("email already verified")
	// ErrInvalidResetToken indicates the reset token matched no account
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	// ErrResetTokenExpired indicates the reset token matched but its expiry has passed
	ErrResetTokenExpired = errors.New("reset token has expired")
)
