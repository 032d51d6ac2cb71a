package firestoredb

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"matchday-backend/internal/domain"
	"matchday-backend/internal/logger"
)

// writeBatch stages updates on a Firestore write batch. Commit is
// all-or-nothing; the store rejects batches above its operation ceiling.
type writeBatch struct {
	client *firestore.Client
	batch  *firestore.WriteBatch
	count  int
}

func (b *writeBatch) UpdateRequestStatus(id string, status domain.JoinRequestStatus) {
	ref := b.client.Collection(CollJoinRequests).Doc(id)
	b.batch.Update(ref, []firestore.Update{
		{Path: "status", Value: string(status)},
	})
	b.count++
}

func (b *writeBatch) MarkEventFull(eventID string) {
	ref := b.client.Collection(CollEvents).Doc(eventID)
	b.batch.Update(ref, []firestore.Update{
		{Path: "isFull", Value: true},
	})
	b.count++
}

func (b *writeBatch) GrantReputation(entity domain.EntityRef, newScore int, checkpoint time.Time) {
	ref := b.client.Collection(string(entity.Collection)).Doc(entity.ID)
	b.batch.Update(ref, []firestore.Update{
		{Path: "reputationScore", Value: newScore},
		{Path: "lastRecoveryTime", Value: checkpoint},
	})
	b.count++
}

func (b *writeBatch) SetRecoveryCheckpoint(entity domain.EntityRef, checkpoint time.Time) {
	ref := b.client.Collection(string(entity.Collection)).Doc(entity.ID)
	b.batch.Update(ref, []firestore.Update{
		{Path: "lastRecoveryTime", Value: checkpoint},
	})
	b.count++
}

func (b *writeBatch) Len() int {
	return b.count
}

func (b *writeBatch) Commit(ctx context.Context) error {
	if b.count == 0 {
		return nil
	}
	logger.DatabaseCall("commit", "write batch", "ops", b.count)
	if _, err := b.batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit batch of %d ops: %w", b.count, err)
	}
	return nil
}
