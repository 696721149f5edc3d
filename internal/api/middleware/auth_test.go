package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agrobase/internal/api/middleware"
	"agrobase/internal/models"
	"agrobase/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAuthRequired(t *testing.T) {
	tc := testutil.NewTestContext(t)
	acct := tc.CreateTestAccount("Ana Souza", "ana@example.com", "Secret123", true)

	svc := tc.AccountService
	m := middleware.NewAuthMiddleware(svc)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", m.AuthRequired(), func(c *gin.Context) {
		got := middleware.AccountFromContext(c)
		require.NotNil(t, got)
		c.JSON(http.StatusOK, got)
	})

	token, err := svc.TokenIssuer().Sign(&models.Account{ID: acct.ID, Email: acct.Email}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"Valid Token", "Bearer " + token, http.StatusOK},
		{"No Header", "", http.StatusUnauthorized},
		{"Malformed Header", "Token " + token, http.StatusUnauthorized},
		{"Garbage Token", "Bearer not.a.token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestAuthRequiredExpiredToken(t *testing.T) {
	tc := testutil.NewTestContext(t)
	acct := tc.CreateTestAccount("Ana Souza", "ana@example.com", "Secret123", true)

	m := middleware.NewAuthMiddleware(tc.AccountService)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", m.AuthRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token, err := tc.AccountService.TokenIssuer().Sign(&models.Account{ID: acct.ID, Email: acct.Email}, -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredUnknownAccount(t *testing.T) {
	tc := testutil.NewTestContext(t)

	m := middleware.NewAuthMiddleware(tc.AccountService)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", m.AuthRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Token signed for an account that was never created
	ghost := &models.Account{ID: uuid.New(), Email: "ghost@example.com"}
	token, err := tc.AccountService.TokenIssuer().Sign(ghost, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
