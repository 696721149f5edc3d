// Package testutil provides utilities for testing
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"agrobase/internal/account"
	"agrobase/internal/api/handlers"
	"agrobase/internal/api/middleware"
	"agrobase/internal/config"
	"agrobase/internal/models"
	"agrobase/internal/repository/memory"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockNotifier records sent emails instead of talking to an SMTP server
type MockNotifier struct {
	mu            sync.Mutex
	Fail          bool
	Verifications []string
	Resets        []string
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (n *MockNotifier) SendVerificationEmail(to, _, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Fail {
		return fmt.Errorf("smtp unavailable")
	}
	n.Verifications = append(n.Verifications, to)
	return nil
}

func (n *MockNotifier) SendPasswordResetEmail(to, _, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Fail {
		return fmt.Errorf("smtp unavailable")
	}
	n.Resets = append(n.Resets, to)
	return nil
}

// VerificationCount returns the number of verification emails recorded
func (n *MockNotifier) VerificationCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Verifications)
}

// ResetCount returns the number of password reset emails recorded
func (n *MockNotifier) ResetCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Resets)
}

// TestContext holds common test dependencies wired against the in-memory
// repository, mirroring the production composition root.
type TestContext struct {
	T              *testing.T
	Repo           *memory.AccountRepository
	Notifier       *MockNotifier
	AccountService *account.Service
	Router         *gin.Engine
}

// TestAuthConfig returns the auth configuration used in tests
func TestAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:              "test_secret_key",
		SessionDuration:        time.Hour,
		RememberDuration:       30 * 24 * time.Hour,
		MaxLoginAttempts:       5,
		BcryptCost:             bcrypt.MinCost,
		ResetTokenTTL:          time.Hour,
		VerificationTokenBytes: 16,
	}
}

// NewTestContext creates a new test context with all dependencies
func NewTestContext(t *testing.T) *TestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	// Register custom validators on the binding engine
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("nospaces", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	}

	repo := memory.NewAccountRepository()
	notifier := NewMockNotifier()
	accountService := account.NewService(TestAuthConfig(), repo, notifier)

	authMiddleware := middleware.NewAuthMiddleware(accountService)
	authHandler := handlers.NewAuthHandler(accountService)

	router := gin.New()
	v1 := router.Group("/api/v1")
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/verify-email", authHandler.VerifyEmail)
		auth.POST("/resend-verification", authHandler.ResendVerification)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
		auth.GET("/me", authMiddleware.AuthRequired(), authHandler.Me)
	}

	return &TestContext{
		T:              t,
		Repo:           repo,
		Notifier:       notifier,
		AccountService: accountService,
		Router:         router,
	}
}

// CreateTestAccount registers an account directly through the repository
func (tc *TestContext) CreateTestAccount(name, email, password string, verified bool) *models.Account {
	tc.T.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(tc.T, err)

	acct := &models.Account{
		Name:          name,
		Email:         strings.ToLower(email),
		PasswordHash:  string(hash),
		IsActive:      true,
		EmailVerified: verified,
	}
	if !verified {
		token := fmt.Sprintf("verify_%s", acct.Email)
		acct.EmailVerificationToken = &token
	}
	require.NoError(tc.T, tc.Repo.Create(context.Background(), acct))
	return acct
}

// String returns a pointer to the given string
func String(s string) *string {
	return &s
}
