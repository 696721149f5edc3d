package config

import (
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
)

// LoadTestConfig loads configuration for testing
func LoadTestConfig(t *testing.T) *Config {
	t.Helper()

	err := godotenv.Load("../../.env.test")
	require.NoError(t, err, "Failed to load .env.test file")

	cfg := &Config{}
	err = cfg.LoadFromEnv()
	require.NoError(t, err, "Failed to load config")
	return cfg
}

// TestLoadFromEnv tests loading configuration from environment variables
func TestLoadFromEnv(t *testing.T) {
	err := godotenv.Load("../../.env.test")
	require.NoError(t, err, "Failed to load .env.test file")

	cfg := &Config{}
	err = cfg.LoadFromEnv()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.API.Port)
	require.Equal(t, "localhost", cfg.Database.Host)
	require.Equal(t, 5432, cfg.Database.Port)
	require.Equal(t, "postgres", cfg.Database.User)
	require.Equal(t, "agrobase_test", cfg.Database.DBName)
	require.Equal(t, "disable", cfg.Database.SSLMode)
	require.Equal(t, "test_secret_key", cfg.Auth.JWTSecret)
	require.Equal(t, 24*time.Hour, cfg.Auth.SessionDuration)
	require.Equal(t, 30*24*time.Hour, cfg.Auth.RememberDuration)
	require.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
	require.Equal(t, time.Hour, cfg.Auth.ResetTokenTTL)
	require.Equal(t, 32, cfg.Auth.VerificationTokenBytes)
}

func TestLoadFromEnvRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg := &Config{}
	err := cfg.LoadFromEnv()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadFromEnvRejectsBadBcryptCost(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret_key")
	t.Setenv("BCRYPT_COST", "99")

	cfg := &Config{}
	err := cfg.LoadFromEnv()
	require.Error(t, err)
	require.Contains(t, err.Error(), "BCRYPT_COST")
}

func TestLoadFromEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret_key")
	t.Setenv("MAX_LOGIN_ATTEMPTS", "")
	t.Setenv("SESSION_DURATION", "")
	t.Setenv("RESET_TOKEN_TTL", "")

	cfg := &Config{}
	err := cfg.LoadFromEnv()
	require.NoError(t, err)

	require.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
	require.Equal(t, 24*time.Hour, cfg.Auth.SessionDuration)
	require.Equal(t, time.Hour, cfg.Auth.ResetTokenTTL)
	require.Equal(t, "30 * * * *", cfg.Maintenance.TokenSweepSchedule)
	require.True(t, cfg.Maintenance.Enabled)
}
