package middleware

import (
	"net/http"
	"strings"

	"agrobase/internal/account"
	"agrobase/internal/models"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates bearer session tokens and loads the account
type AuthMiddleware struct {
	accounts *account.Service
}

// NewAuthMiddleware creates the bearer-token middleware
func NewAuthMiddleware(accounts *account.Service) *AuthMiddleware {
	return &AuthMiddleware{accounts: accounts}
}

// AuthRequired aborts the request unless a valid session token is presented
func (m *AuthMiddleware) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			c.Abort()
			return
		}

		accountID, err := m.accounts.TokenIssuer().Validate(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		acct, err := m.accounts.GetByID(c.Request.Context(), accountID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "account not found"})
			c.Abort()
			return
		}

		c.Set("account", acct)
		c.Next()
	}
}

// AccountFromContext retrieves the authenticated account from the gin context
func AccountFromContext(c *gin.Context) *models.Account {
	v, exists := c.Get("account")
	if !exists {
		return nil
	}
	if a, ok := v.(*models.Account); ok {
		return a
	}
	return nil
}
