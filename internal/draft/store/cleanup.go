package store

import (
	"context"
	"log/slog"
	"time"
)

// Cleaner removes drafts that expired as of now.
type Cleaner interface {
	RemoveExpiredAt(ctx context.Context, now time.Time) error
}

// RunCleanup calls c every interval until ctx is done. A failed pass is
// logged and retried on the next tick; only cancellation ends the loop, so it
// is safe to run in an errgroup next to the servers.
func RunCleanup(ctx context.Context, c Cleaner, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			if err := c.RemoveExpiredAt(ctx, now); err != nil && ctx.Err() == nil {
				logger.WarnContext(ctx, "draft cleanup failed", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
