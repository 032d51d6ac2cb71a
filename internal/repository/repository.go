package repository

import (
	"context"
	"time"

	"matchday-backend/internal/domain"
)

// MaxBatchOps is the store's hard per-commit operation ceiling. A batch
// holding more operations fails at commit time.
const MaxBatchOps = 500

// BatchFlushThreshold is the safety point at which chunk-committing jobs
// flush and start a new batch, kept below MaxBatchOps.
const BatchFlushThreshold = 400

type JoinRequestRepository interface {
	// PendingByEvent returns every pending request for the given event.
	PendingByEvent(ctx context.Context, eventID string) ([]domain.JoinRequest, error)
	// PendingByRequesterAndTime returns every pending request held by the
	// given requester identity for the given time slot.
	PendingByRequesterAndTime(ctx context.Context, requesterID, eventTime string) ([]domain.JoinRequest, error)
	// PendingOlderThan returns pending requests created at or before cutoff.
	PendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.JoinRequest, error)
}

type TeamRepository interface {
	// Members returns the member list of the given team. The team document
	// is never written through this interface.
	Members(ctx context.Context, teamID string) ([]domain.TeamMember, error)
}

type ReputationRepository interface {
	// BelowThreshold returns entities in the given collection whose
	// reputationScore is strictly below threshold. Documents without a
	// score field do not match.
	BelowThreshold(ctx context.Context, col domain.EntityCollection, threshold int) ([]domain.ReputationRecord, error)
}

// WriteBatch stages writes and commits them atomically. Commit fails with
// the store's error when the staged count exceeds MaxBatchOps or on
// transient unavailability; on failure none of the staged writes apply.
type WriteBatch interface {
	UpdateRequestStatus(id string, status domain.JoinRequestStatus)
	MarkEventFull(eventID string)
	GrantReputation(ref domain.EntityRef, newScore int, checkpoint time.Time)
	SetRecoveryCheckpoint(ref domain.EntityRef, checkpoint time.Time)
	Len() int
	Commit(ctx context.Context) error
}

// Store aggregates the repositories and hands out write batches.
type Store interface {
	JoinRequests() JoinRequestRepository
	Teams() TeamRepository
	Reputation() ReputationRepository
	NewBatch() WriteBatch
}
