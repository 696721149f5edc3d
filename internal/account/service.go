// Package account implements the account security service: registration,
// login with lockout, email verification and the password reset lifecycle.
package account

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"agrobase/internal/config"
	"agrobase/internal/email"
	"agrobase/internal/models"
	"agrobase/internal/repository"
	"agrobase/internal/security"

	"github.com/google/uuid"
)

// Generic success messages returned regardless of whether the email is
// registered, to prevent account enumeration.
const (
	MsgResetEmailSent        = "if the email exists, a reset link will be sent"
	MsgVerificationEmailSent = "if the email exists, a verification email will be sent"
)

// Service orchestrates the account security flows
type Service struct {
	cfg      config.AuthConfig
	repo     repository.AccountRepository
	notifier email.Notifier
	issuer   *security.TokenIssuer
	hasher   *security.Hasher
}

// NewService creates the account security service
func NewService(cfg config.AuthConfig, repo repository.AccountRepository, notifier email.Notifier) *Service {
	return &Service{
		cfg:      cfg,
		repo:     repo,
		notifier: notifier,
		issuer:   security.NewTokenIssuer(cfg.JWTSecret),
		hasher:   security.NewHasher(cfg.BcryptCost),
	}
}

// TokenIssuer exposes the session token issuer for transport middleware
func (s *Service) TokenIssuer() *security.TokenIssuer {
	return s.issuer
}

// AuthResult is the outcome of a successful registration or login
type AuthResult struct {
	Token   string
	Account *models.Account
}

// Register creates a new account, issues a session token for immediate
// login and dispatches the verification email in the background.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*AuthResult, error) {
	emailAddr := normalizeEmail(req.Email)

	// Checked before any mutation; the unique index on email closes the
	// remaining check-then-create race.
	_, err := s.repo.GetByEmail(ctx, emailAddr)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	verificationToken, err := security.GenerateToken(s.cfg.VerificationTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("generate verification token: %w", err)
	}

	acct := &models.Account{
		ID:                     uuid.New(),
		Name:                   req.Name,
		Email:                  emailAddr,
		PasswordHash:           hash,
		Phone:                  req.Phone,
		Document:               req.Document,
		IsActive:               true,
		EmailVerified:          false,
		EmailVerificationToken: &verificationToken,
	}

	if err := s.repo.Create(ctx, acct); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	token, err := s.issuer.Sign(acct, s.cfg.SessionDuration)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	s.dispatch("verification", func() error {
		return s.notifier.SendVerificationEmail(acct.Email, acct.Name, verificationToken)
	})

	return &AuthResult{Token: token, Account: acct.Sanitized()}, nil
}

// Login verifies credentials and issues a session token. The lockout
// check precedes password comparison, so a locked account fails with
// ErrTooManyAttempts even when the password is correct.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*AuthResult, error) {
	acct, err := s.repo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	if !acct.IsActive {
		return nil, ErrAccountInactive
	}

	if security.LockedOut(acct.FailedLoginAttempts, s.cfg.MaxLoginAttempts) {
		return nil, ErrTooManyAttempts
	}

	if err := s.hasher.Compare(acct.PasswordHash, req.Password); err != nil {
		acct.FailedLoginAttempts++
		now := time.Now()
		acct.LastFailedLogin = &now
		// The counter is a best-effort rate-limit heuristic; a failed
		// persist must not turn a credential error into a server error.
		if err := s.repo.Update(ctx, acct); err != nil {
			log.Printf("Failed to record failed login for %s: %v", acct.ID, err)
		}
		return nil, ErrInvalidCredentials
	}

	if acct.FailedLoginAttempts != 0 || acct.LastFailedLogin != nil {
		acct.FailedLoginAttempts = 0
		acct.LastFailedLogin = nil
		if err := s.repo.Update(ctx, acct); err != nil {
			return nil, fmt.Errorf("reset failed attempts: %w", err)
		}
	}

	expiry := s.cfg.SessionDuration
	if req.RememberMe {
		expiry = s.cfg.RememberDuration
	}

	token, err := s.issuer.Sign(acct, expiry)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	return &AuthResult{Token: token, Account: acct.Sanitized()}, nil
}

// VerifyEmail marks the account matching the token as verified and clears
// the token, so a second call with the same token fails.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidVerificationToken
	}

	acct, err := s.repo.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return ErrInvalidVerificationToken
		}
		return fmt.Errorf("lookup account: %w", err)
	}

	acct.EmailVerified = true
	acct.EmailVerificationToken = nil
	if err := s.repo.Update(ctx, acct); err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// ResendVerification issues a fresh verification token, invalidating the
// previous one, and dispatches the email in the background. An unknown
// email returns nil so the caller renders the same generic message as the
// registered case. An already verified account does get a distinct error:
// that path only fires for an email the caller already controls.
func (s *Service) ResendVerification(ctx context.Context, emailAddr string) error {
	acct, err := s.repo.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil
		}
		return fmt.Errorf("lookup account: %w", err)
	}

	if acct.EmailVerified {
		return ErrAlreadyVerified
	}

	token, err := security.GenerateToken(s.cfg.VerificationTokenBytes)
	if err != nil {
		return fmt.Errorf("generate verification token: %w", err)
	}

	acct.EmailVerificationToken = &token
	if err := s.repo.Update(ctx, acct); err != nil {
		return fmt.Errorf("update account: %w", err)
	}

	s.dispatch("verification", func() error {
		return s.notifier.SendVerificationEmail(acct.Email, acct.Name, token)
	})
	return nil
}

// ForgotPassword issues a password reset token and dispatches the reset
// email in the background. An unknown email returns nil with no side
// effects; callers render the same message either way.
func (s *Service) ForgotPassword(ctx context.Context, emailAddr string) error {
	acct, err := s.repo.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil
		}
		return fmt.Errorf("lookup account: %w", err)
	}

	token, err := security.GenerateToken(s.cfg.VerificationTokenBytes)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	expires := time.Now().Add(s.cfg.ResetTokenTTL)
	acct.PasswordResetToken = &token
	acct.PasswordResetExpires = &expires
	if err := s.repo.Update(ctx, acct); err != nil {
		return fmt.Errorf("update account: %w", err)
	}

	s.dispatch("password reset", func() error {
		return s.notifier.SendPasswordResetEmail(acct.Email, acct.Name, token)
	})
	return nil
}

// ResetPassword replaces the password for the account matching a live
// reset token, consumes the token and clears the lockout counter.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrInvalidResetToken
	}

	acct, err := s.repo.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("lookup account: %w", err)
	}

	if !security.ResetTokenValid(acct.PasswordResetExpires, time.Now()) {
		return ErrResetTokenExpired
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	acct.PasswordHash = hash
	acct.PasswordResetToken = nil
	acct.PasswordResetExpires = nil
	acct.FailedLoginAttempts = 0
	acct.LastFailedLogin = nil
	if err := s.repo.Update(ctx, acct); err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// GetByID loads an account for transport-layer use (auth middleware, profile)
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	acct, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return acct.Sanitized(), nil
}

// dispatch sends an email in the background. Delivery failures are
// intentionally non-propagating: the originating request must not fail
// because mail could not be sent, so errors are only logged.
func (s *Service) dispatch(kind string, send func() error) {
	go func() {
		if err := send(); err != nil {
			log.Printf("Failed to send %s email: %v", kind, err)
		}
	}()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
