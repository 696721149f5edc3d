package models

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=100,nospaces"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8,max=72"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Document *string `json:"document,omitempty" binding:"omitempty,max=20"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// ResendVerificationRequest represents a request to resend the verification email
type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPasswordRequest represents a request to start a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents a request to complete a password reset
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}
