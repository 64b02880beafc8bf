package tasks

import (
	"context"
	"fmt"
	"time"
)

// newPendingCleanupTask creates the scheduled task that expires stale pending
// regeneration prompts. Tokens older than the configured TTL are removed;
// their regenerate buttons then resolve to the expired-prompt reply.
func newPendingCleanupTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "pending_cleanup")

	return func(ctx context.Context) error {
		cutoff := time.Now().UTC().Add(-deps.Config.Database.PendingTTL)
		log.InfoContext(ctx, "Starting pending action cleanup...", "cutoff", cutoff)

		removed, err := deps.Store.DeletePendingActionsBefore(ctx, cutoff)
		if err != nil {
			log.ErrorContext(ctx, "Pending action cleanup failed", "error", err)
			return fmt.Errorf("pending cleanup failed: %w", err)
		}

		log.InfoContext(ctx, "Pending action cleanup completed", "removed", removed)
		return nil
	}
}
