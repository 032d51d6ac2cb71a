package trigger

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"matchday-backend/internal/domain"
	"matchday-backend/internal/logger"
	"matchday-backend/internal/repository/firestoredb"
)

// Handler consumes the before/after snapshots of one updated join request
// document. Implementations must tolerate at-least-once delivery; no
// ordering is guaranteed across documents.
type Handler interface {
	HandleUpdate(ctx context.Context, before, after domain.JoinRequest) error
}

// Listener watches the join request collection and dispatches every
// document modification to the handler as a before/after pair. Handler
// errors are logged and acknowledged, never re-raised: the store's own
// redelivery (a later snapshot) is the only retry mechanism.
type Listener struct {
	client  *firestore.Client
	handler Handler
}

func NewListener(client *firestore.Client, handler Handler) *Listener {
	return &Listener{client: client, handler: handler}
}

// Run blocks consuming snapshots until the context is cancelled.
func (l *Listener) Run(ctx context.Context) error {
	logger.Info("Watching join requests", "collection", firestoredb.CollJoinRequests)

	iter := l.client.Collection(firestoredb.CollJoinRequests).Snapshots(ctx)
	defer iter.Stop()

	seen := newSnapshotTracker()
	for {
		snap, err := iter.Next()
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("Join request watch stopped")
				return nil
			}
			return fmt.Errorf("join request snapshot stream failed: %w", err)
		}

		for _, change := range snap.Changes {
			l.dispatch(ctx, seen, change)
		}
	}
}

func (l *Listener) dispatch(ctx context.Context, seen *snapshotTracker, change firestore.DocumentChange) {
	switch change.Kind {
	case firestore.DocumentAdded:
		req, err := firestoredb.DecodeJoinRequest(change.Doc)
		if err != nil {
			logger.Warn("Ignoring undecodable added document", "doc_id", change.Doc.Ref.ID, "error", err)
			return
		}
		seen.observe(req)

	case firestore.DocumentModified:
		after, err := firestoredb.DecodeJoinRequest(change.Doc)
		if err != nil {
			logger.Warn("Ignoring undecodable modified document", "doc_id", change.Doc.Ref.ID, "error", err)
			return
		}
		before, known := seen.observe(after)
		if !known {
			// The initial snapshot delivers every document as Added, so a
			// modification without a prior state means the stream restarted
			// underneath us; there is no before to compare against.
			logger.Warn("Modified document with no prior state, skipping", "doc_id", after.ID)
			return
		}
		if err := l.handler.HandleUpdate(ctx, before, after); err != nil {
			logger.Error("Update handler failed", "doc_id", after.ID, "error", err)
		}

	case firestore.DocumentRemoved:
		seen.forget(change.Doc.Ref.ID)
	}
}
