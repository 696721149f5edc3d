package models

// AuthResponse represents the response to a successful registration or login
type AuthResponse struct {
	Token   string   `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	Account *Account `json:"account"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}
