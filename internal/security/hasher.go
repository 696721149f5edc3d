// Package security provides the cryptographic building blocks of the
// account security service: password hashing, session token issuance,
// opaque token generation and the lockout/expiry policies.
package security

import "golang.org/x/crypto/bcrypt"

// Hasher performs one-way password hashing and verification
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the given bcrypt cost factor
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash hashes a password using bcrypt
func (h *Hasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(bytes), err
}

// Compare compares a hashed password with a plain text password.
// bcrypt's comparison is constant-time with respect to the password.
func (h *Hasher) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
