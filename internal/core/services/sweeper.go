package services

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/pinkeep/pinkeep_app/internal/core/ports/services"
)

// RunExpirySweeper periodically removes expired session records and reset
// tokens until ctx is cancelled. It runs independently of request handling;
// sweeping only touches rows every in-flight validity check already rejects,
// so it is safe alongside any other operation.
func RunExpirySweeper(
	ctx context.Context,
	logger *slog.Logger,
	interval time.Duration,
	sessions portssvc.SessionSvcFacade,
	resets portssvc.PasswordResetSvcFacade,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Expiry sweeper stopping")
			return
		case <-ticker.C:
			if n, err := sessions.SweepExpired(ctx); err != nil {
				logger.Error("Failed to sweep expired sessions", slog.String("error", err.Error()))
			} else if n > 0 {
				logger.Info("Swept expired sessions", slog.Int64("count", n))
			}
			if n, err := resets.SweepExpired(ctx); err != nil {
				logger.Error("Failed to sweep expired reset tokens", slog.String("error", err.Error()))
			} else if n > 0 {
				logger.Info("Swept expired reset tokens", slog.Int64("count", n))
			}
		}
	}
}
