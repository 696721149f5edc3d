package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"agrobase/internal/api/middleware"
	"agrobase/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func rateLimitedRouter(requests, window, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.RateLimit.Requests = requests
	cfg.RateLimit.Window = window
	cfg.RateLimit.Burst = burst

	r := gin.New()
	r.Use(middleware.NewRateLimiter(cfg).Middleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return r
}

func TestRateLimiterAllowsWithinBudget(t *testing.T) {
	r := rateLimitedRouter(10, 60, 10)

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "10", w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimiterBlocksOverBudget(t *testing.T) {
	r := rateLimitedRouter(3, 60, 3)

	var last *httptest.ResponseRecorder
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		last = httptest.NewRecorder()
		r.ServeHTTP(last, req)
	}

	require.Equal(t, http.StatusTooManyRequests, last.Code)
	require.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
	require.NotEmpty(t, last.Header().Get("Retry-After"))
}
