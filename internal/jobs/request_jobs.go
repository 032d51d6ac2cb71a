package jobs

import (
	"context"
	"time"

	"matchday-backend/internal/domain"
	"matchday-backend/internal/logger"
	"matchday-backend/internal/repository"
)

// staleRequestAge is how long a request may stay pending before the purger
// regrets it on the owner's behalf.
const staleRequestAge = time.Hour

// PurgeStaleRequests bulk-regrets pending join requests older than one
// hour, in chunked batches.
func (jr *JobRunner) PurgeStaleRequests() {
	jr.runWithRecovery("PurgeStaleRequests", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().Add(-staleRequestAge)

		stale, err := jr.store.JoinRequests().PendingOlderThan(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to query stale pending requests", "error", err)
			return
		}
		if len(stale) == 0 {
			logger.Debug("No pending requests past the stale cutoff")
			return
		}

		batch := jr.store.NewBatch()
		purged := 0
		for _, req := range stale {
			logger.Debug("Auto-regretting stale request", "doc_id", req.ID)
			batch.UpdateRequestStatus(req.ID, domain.JoinRequestStatusRegretted)

			if batch.Len() >= repository.BatchFlushThreshold {
				if err := batch.Commit(ctx); err != nil {
					logger.Error("Failed to commit purge chunk", "ops", batch.Len(), "error", err)
				} else {
					purged += repository.BatchFlushThreshold
				}
				batch = jr.store.NewBatch()
			}
		}
		remaining := batch.Len()
		if err := batch.Commit(ctx); err != nil {
			logger.Error("Failed to commit purge chunk", "ops", remaining, "error", err)
		} else {
			purged += remaining
		}

		logger.Info("Auto-regretted stale requests", "matched", len(stale), "purged", purged)
	})
}
