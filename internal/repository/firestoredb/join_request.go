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

// JoinRequestRepo reads join request documents. All writes go through a
// WriteBatch so they stay atomic with the rest of a cascade.
type JoinRequestRepo struct {
	client *firestore.Client
}

// DecodeJoinRequest maps a document snapshot onto a domain value, filling
// in the document ID.
func DecodeJoinRequest(doc *firestore.DocumentSnapshot) (domain.JoinRequest, error) {
	var req domain.JoinRequest
	if err := doc.DataTo(&req); err != nil {
		return domain.JoinRequest{}, fmt.Errorf("failed to decode join request %s: %w", doc.Ref.ID, err)
	}
	req.ID = doc.Ref.ID
	return req, nil
}

func (r *JoinRequestRepo) PendingByEvent(ctx context.Context, eventID string) ([]domain.JoinRequest, error) {
	logger.DatabaseCall("query", "joinRequests by eventId+status", "event_id", eventID)
	iter := r.client.Collection(CollJoinRequests).
		Where("eventId", "==", eventID).
		Where("status", "==", string(domain.JoinRequestStatusPending)).
		Documents(ctx)
	return r.collect(iter, "pending by event")
}

func (r *JoinRequestRepo) PendingByRequesterAndTime(ctx context.Context, requesterID, eventTime string) ([]domain.JoinRequest, error) {
	logger.DatabaseCall("query", "joinRequests by requesterId+status+eventTime", "requester_id", requesterID)
	iter := r.client.Collection(CollJoinRequests).
		Where("requesterId", "==", requesterID).
		Where("status", "==", string(domain.JoinRequestStatusPending)).
		Where("eventTime", "==", eventTime).
		Documents(ctx)
	return r.collect(iter, "pending by requester and time")
}

func (r *JoinRequestRepo) PendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.JoinRequest, error) {
	logger.DatabaseCall("query", "joinRequests by status+requestedAt", "cutoff", cutoff)
	iter := r.client.Collection(CollJoinRequests).
		Where("status", "==", string(domain.JoinRequestStatusPending)).
		Where("requestedAt", "<=", cutoff).
		Documents(ctx)
	return r.collect(iter, "pending older than")
}

func (r *JoinRequestRepo) collect(iter *firestore.DocumentIterator, op string) ([]domain.JoinRequest, error) {
	defer iter.Stop()

	var out []domain.JoinRequest
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query %s: %w", op, err)
		}
		req, err := DecodeJoinRequest(doc)
		if err != nil {
			// A malformed document must not sink the whole query.
			logger.Warn("Skipping undecodable join request", "doc_id", doc.Ref.ID, "error", err)
			continue
		}
		out = append(out, req)
	}
	return out, nil
}
