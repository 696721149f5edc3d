package maintenance_test

import (
	"context"
	"testing"
	"time"

	"agrobase/internal/config"
	"agrobase/internal/maintenance"
	"agrobase/internal/models"
	"agrobase/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

func TestSweepClearsOnlyExpiredTokens(t *testing.T) {
	repo := memory.NewAccountRepository()
	ctx := context.Background()

	expired := "expired_token"
	expiredAt := time.Now().Add(-2 * time.Hour)
	live := "live_token"
	liveUntil := time.Now().Add(time.Hour)

	stale := &models.Account{
		Name:                 "Stale",
		Email:                "stale@x.com",
		PasswordHash:         "hash",
		IsActive:             true,
		PasswordResetToken:   &expired,
		PasswordResetExpires: &expiredAt,
	}
	require.NoError(t, repo.Create(ctx, stale))

	fresh := &models.Account{
		Name:                 "Fresh",
		Email:                "fresh@x.com",
		PasswordHash:         "hash",
		IsActive:             true,
		PasswordResetToken:   &live,
		PasswordResetExpires: &liveUntil,
	}
	require.NoError(t, repo.Create(ctx, fresh))

	cleaner := maintenance.NewTokenCleaner(config.MaintenanceConfig{Enabled: true}, repo)

	purged, err := cleaner.Sweep(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, purged)

	got, err := repo.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	require.Nil(t, got.PasswordResetToken)
	require.Nil(t, got.PasswordResetExpires)

	got, err = repo.GetByID(ctx, fresh.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PasswordResetToken)
}

func TestStartDisabledReturnsImmediately(t *testing.T) {
	repo := memory.NewAccountRepository()
	cleaner := maintenance.NewTokenCleaner(config.MaintenanceConfig{Enabled: false}, repo)

	done := make(chan error, 1)
	go func() {
		done <- cleaner.Start(context.Background())
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Start should return immediately when disabled")
	}
}
