package jobs

import (
	"time"

	"matchday-backend/internal/domain"
)

const (
	// recoveryScanThreshold bounds the scan: only entities strictly below
	// it are considered for recovery. It is deliberately lower than the
	// score ceiling — entities in [50,99] are never scanned.
	recoveryScanThreshold = 50

	// recoveryCycleHours is the length of one complete recovery cycle.
	recoveryCycleHours = 24

	// pointsPerCycle is granted for each completed cycle.
	pointsPerCycle = 10
)

// ComputeRecovery returns the score an entity should recover to given its
// checkpoint, and whether an update is warranted. Points accrue per
// completed whole cycle since the checkpoint and the result clamps to the
// ceiling. Granting resets the accumulation window: the caller stores
// "now" as the new checkpoint rather than advancing it by exact cycles
// (catch-up forgiveness, not an hour-accounting ledger).
func ComputeRecovery(score int, checkpoint, now time.Time) (int, bool) {
	elapsedHours := int(now.Sub(checkpoint).Hours())
	if elapsedHours < recoveryCycleHours {
		return score, false
	}

	cycles := elapsedHours / recoveryCycleHours
	newScore := score + cycles*pointsPerCycle
	if newScore > domain.ReputationCeiling {
		newScore = domain.ReputationCeiling
	}
	if newScore <= score {
		return score, false
	}
	return newScore, true
}
