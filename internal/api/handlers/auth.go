package handlers

import (
	"errors"
	"net/http"

	"agrobase/internal/account"
	"agrobase/internal/api/middleware"
	"agrobase/internal/models"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes the account security operations over HTTP
type AuthHandler struct {
	accounts *account.Service
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(accounts *account.Service) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Register godoc
// @Summary Register a new account
// @Description Create an account, send a verification email and log the account in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration details"
// @Success 201 {object} models.AuthResponse "Account created"
// @Failure 400 {object} models.ErrorResponse "Invalid request format"
// @Failure 409 {object} models.ErrorResponse "Email already registered"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.accounts.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, account.ErrEmailTaken) {
			c.JSON(http.StatusConflict, models.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to process registration"})
		return
	}

	c.JSON(http.StatusCreated, models.AuthResponse{
		Token:   result.Token,
		Account: result.Account,
	})
}

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password and return a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.AuthResponse "Login successful"
// @Failure 400 {object} models.ErrorResponse "Invalid request format"
// @Failure 401 {object} models.ErrorResponse "Invalid credentials"
// @Failure 403 {object} models.ErrorResponse "Account inactive"
// @Failure 429 {object} models.ErrorResponse "Account locked out or rate limit exceeded"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.accounts.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: err.Error()})
		case errors.Is(err, account.ErrAccountInactive):
			c.JSON(http.StatusForbidden, models.ErrorResponse{Error: err.Error()})
		case errors.Is(err, account.ErrTooManyAttempts):
			c.JSON(http.StatusTooManyRequests, models.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to process login"})
		}
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		Token:   result.Token,
		Account: result.Account,
	})
}

// VerifyEmail godoc
// @Summary Verify email address
// @Description Verify an account's email address using the verification token
// @Tags auth
// @Accept json
// @Produce json
// @Param token query string true "Email verification token"
// @Success 200 {object} models.SuccessResponse "Email verified successfully"
// @Failure 400 {object} models.ErrorResponse "Invalid or missing token"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/verify-email [get]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "verification token is required"})
		return
	}

	if err := h.accounts.VerifyEmail(c.Request.Context(), token); err != nil {
		if errors.Is(err, account.ErrInvalidVerificationToken) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to verify email"})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Message: "email verified successfully"})
}

// ResendVerification godoc
// @Summary Resend verification email
// @Description Send a fresh verification email. Unknown emails return the same success message as registered ones.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.ResendVerificationRequest true "Resend verification request"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse "Email already verified or invalid request"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req models.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.accounts.ResendVerification(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, account.ErrAlreadyVerified) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to process request"})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Message: account.MsgVerificationEmailSent})
}

// ForgotPassword godoc
// @Summary Request password reset
// @Description Request a password reset email. Always returns the same message whether or not the email exists.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.ForgotPasswordRequest true "Account email"
// @Success 200 {object} models.SuccessResponse "Reset link will be sent if email exists"
// @Failure 400 {object} models.ErrorResponse "Invalid email format"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.accounts.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to process request"})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Message: account.MsgResetEmailSent})
}

// ResetPassword godoc
// @Summary Complete password reset
// @Description Replace the account password using a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.ResetPasswordRequest true "Reset completion details"
// @Success 200 {object} models.SuccessResponse "Password reset successfully"
// @Failure 400 {object} models.ErrorResponse "Invalid, expired or used token"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	err := h.accounts.ResetPassword(c.Request.Context(), req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrInvalidResetToken), errors.Is(err, account.ErrResetTokenExpired):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to reset password"})
		}
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Message: "password reset successfully"})
}

// Me godoc
// @Summary Current account
// @Description Return the authenticated account
// @Tags auth
// @Produce json
// @Success 200 {object} models.Account
// @Failure 401 {object} models.ErrorResponse "Missing or invalid session token"
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	acct := middleware.AccountFromContext(c)
	if acct == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, acct)
}
