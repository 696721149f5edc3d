package repository

import "errors"

var (
	// ErrAccountNotFound indicates no account matched the lookup
	ErrAccountNotFound = errors.New("account not found")
	// ErrEmailExists indicates the email is already registered
	ErrEmailExists = errors.New("email already exists")
)
