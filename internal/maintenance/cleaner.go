// Package maintenance runs scheduled background housekeeping
package maintenance

import (
	"context"
	"log"
	"time"

	"agrobase/internal/config"
	"agrobase/internal/repository"

	"github.com/robfig/cron/v3"
)

// TokenCleaner periodically clears password reset tokens whose expiry has
// long passed. The reset flow already rejects expired tokens; the sweep
// keeps stale secrets out of the accounts table.
type TokenCleaner struct {
	cfg  config.MaintenanceConfig
	repo repository.AccountRepository
	cron *cron.Cron
}

// NewTokenCleaner creates a token cleaner with the given schedule
func NewTokenCleaner(cfg config.MaintenanceConfig, repo repository.AccountRepository) *TokenCleaner {
	// Standard five-field cron, seconds disabled
	c := cron.New(cron.WithParser(cron.NewParser(
		cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
	)))

	return &TokenCleaner{
		cfg:  cfg,
		repo: repo,
		cron: c,
	}
}

// Sweep clears expired reset tokens once and returns the number purged
func (t *TokenCleaner) Sweep(ctx context.Context) (int64, error) {
	return t.repo.PurgeExpiredResetTokens(ctx, time.Now())
}

// Start schedules the sweep and blocks until the context is cancelled
func (t *TokenCleaner) Start(ctx context.Context) error {
	if !t.cfg.Enabled {
		log.Println("Token maintenance is disabled, skipping scheduler")
		return nil
	}

	_, err := t.cron.AddFunc(t.cfg.TokenSweepSchedule, func() {
		purged, err := t.Sweep(ctx)
		if err != nil {
			// Best-effort housekeeping, failures are only logged
			log.Printf("Error sweeping expired reset tokens: %v", err)
			return
		}
		if purged > 0 {
			log.Printf("Cleared %d expired password reset tokens", purged)
		}
	})
	if err != nil {
		return err
	}

	t.cron.Start()
	log.Printf("Token maintenance scheduled with %q", t.cfg.TokenSweepSchedule)

	<-ctx.Done()
	log.Println("Stopping token maintenance...")
	t.cron.Stop()

	return nil
}
