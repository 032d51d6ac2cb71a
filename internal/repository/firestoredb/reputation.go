package firestoredb

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"matchday-backend/internal/domain"
	"matchday-backend/internal/logger"
)

// ReputationRepo scans the reputation subset of user and team documents.
type ReputationRepo struct {
	client *firestore.Client
}

type reputationDoc struct {
	Score        int        `firestore:"reputationScore"`
	LastRecovery *time.Time `firestore:"lastRecoveryTime"`
}

func (r *ReputationRepo) BelowThreshold(ctx context.Context, col domain.EntityCollection, threshold int) ([]domain.ReputationRecord, error) {
	logger.DatabaseCall("query", "reputationScore below threshold", "collection", string(col), "threshold", threshold)
	iter := r.client.Collection(string(col)).
		Where("reputationScore", "<", threshold).
		Documents(ctx)
	defer iter.Stop()

	var out []domain.ReputationRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s reputation: %w", col, err)
		}

		var rd reputationDoc
		if err := doc.DataTo(&rd); err != nil {
			logger.Warn("Skipping undecodable reputation document", "collection", string(col), "doc_id", doc.Ref.ID, "error", err)
			continue
		}
		out = append(out, domain.ReputationRecord{
			Ref:              domain.EntityRef{Collection: col, ID: doc.Ref.ID},
			Score:            rd.Score,
			LastRecoveryTime: rd.LastRecovery,
		})
	}
	return out, nil
}
