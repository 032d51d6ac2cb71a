package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeRecoveryTwoCompletedCycles(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	checkpoint := now.Add(-50 * time.Hour)

	newScore, ok := ComputeRecovery(40, checkpoint, now)
	assert.True(t, ok)
	assert.Equal(t, 60, newScore)
}

func TestComputeRecoveryClampsAtCeiling(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	checkpoint := now.Add(-30 * time.Hour)

	newScore, ok := ComputeRecovery(95, checkpoint, now)
	assert.True(t, ok)
	assert.Equal(t, 100, newScore)
}

func TestComputeRecoveryIncompleteCycle(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	checkpoint := now.Add(-23*time.Hour - 59*time.Minute)

	newScore, ok := ComputeRecovery(40, checkpoint, now)
	assert.False(t, ok)
	assert.Equal(t, 40, newScore)
}

func TestComputeRecoveryHugeElapsedStaysInRange(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	checkpoint := now.Add(-10 * 365 * 24 * time.Hour)

	newScore, ok := ComputeRecovery(1, checkpoint, now)
	assert.True(t, ok)
	assert.Equal(t, 100, newScore)
}

func TestComputeRecoveryAtCeilingGrantsNothing(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	checkpoint := now.Add(-48 * time.Hour)

	_, ok := ComputeRecovery(100, checkpoint, now)
	assert.False(t, ok)
}

func TestComputeRecoveryFutureCheckpointGrantsNothing(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	checkpoint := now.Add(2 * time.Hour)

	_, ok := ComputeRecovery(40, checkpoint, now)
	assert.False(t, ok)
}
