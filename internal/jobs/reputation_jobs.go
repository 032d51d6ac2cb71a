package jobs

import (
	"context"
	"time"

	"matchday-backend/internal/domain"
	"matchday-backend/internal/logger"
	"matchday-backend/internal/repository"
)

// RecoverReputation advances decayed reputation scores toward the ceiling,
// granting points per completed 24h cycle since each entity's checkpoint.
// Updates are committed in chunks below the store's batch ceiling; a failed
// chunk does not roll back earlier chunks, and re-running the job is a
// no-op for entities already holding a fresh checkpoint.
func (jr *JobRunner) RecoverReputation() {
	jr.runWithRecovery("RecoverReputation", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		for _, col := range []domain.EntityCollection{domain.CollectionUsers, domain.CollectionTeams} {
			jr.recoverCollection(ctx, col, now)
		}
	})
}

func (jr *JobRunner) recoverCollection(ctx context.Context, col domain.EntityCollection, now time.Time) {
	records, err := jr.store.Reputation().BelowThreshold(ctx, col, recoveryScanThreshold)
	if err != nil {
		logger.Error("Failed to scan for recoverable entities", "collection", string(col), "error", err)
		return
	}

	batch := jr.store.NewBatch()
	flush := func() {
		if batch.Len() == 0 {
			return
		}
		if err := batch.Commit(ctx); err != nil {
			// Entities in earlier chunks keep their new checkpoint; the
			// next run picks up whatever this chunk missed.
			logger.Error("Failed to commit recovery chunk", "collection", string(col), "ops", batch.Len(), "error", err)
		}
		batch = jr.store.NewBatch()
	}

	granted := 0
	checkpointed := 0
	for _, rec := range records {
		if rec.LastRecoveryTime == nil {
			// First observation below the threshold: establish the
			// checkpoint without granting anything. The entity must wait
			// a full cycle from here.
			batch.SetRecoveryCheckpoint(rec.Ref, now)
			checkpointed++
		} else if newScore, ok := ComputeRecovery(rec.Score, *rec.LastRecoveryTime, now); ok {
			batch.GrantReputation(rec.Ref, newScore, now)
			granted++
		}

		if batch.Len() >= repository.BatchFlushThreshold {
			flush()
		}
	}
	flush()

	logger.Info("Reputation recovery scan finished",
		"collection", string(col),
		"scanned", len(records),
		"granted", granted,
		"checkpointed", checkpointed)
}
