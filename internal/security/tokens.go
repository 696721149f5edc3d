package security

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"agrobase/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken indicates the session token is invalid
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired indicates the session token has expired
	ErrTokenExpired = errors.New("token expired")
)

// TokenIssuer signs and validates session tokens
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer creates a TokenIssuer signing with the given secret
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// Sign issues a session token for the account with the given lifetime
func (i *TokenIssuer) Sign(account *models.Account, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"account_id": account.ID.String(),
		"email":      account.Email,
		"exp":        time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Validate validates a session token and returns the account ID it carries
func (i *TokenIssuer) Validate(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	idStr, ok := claims["account_id"].(string)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}

// GenerateToken produces an unguessable hex-encoded random token with
// n bytes of entropy, used for email verification and password resets.
func GenerateToken(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
