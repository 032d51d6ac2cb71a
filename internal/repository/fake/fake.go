package fake

import (
	"context"
	"sync"
	"time"

	"matchday-backend/internal/domain"
	"matchday-backend/internal/repository"
)

// Store is an in-memory repository.Store for tests. Writes staged on its
// batches apply to the in-memory state only when Commit succeeds, matching
// the store's all-or-nothing contract.
type Store struct {
	mu sync.Mutex

	Requests    map[string]domain.JoinRequest
	Events      map[string]domain.Event
	TeamRosters map[string][]domain.TeamMember
	Scores      map[domain.EntityRef]domain.ReputationRecord

	// TeamErrs injects per-team read failures.
	TeamErrs map[string]error
	// RequesterErrs injects per-identity conflict-query failures.
	RequesterErrs map[string]error
	// CommitErrs is popped once per Commit; nil entries mean success.
	CommitErrs []error

	// Commits records every successful commit in order.
	Commits []CommittedBatch
}

// CommittedBatch is the recorded content of one committed batch.
type CommittedBatch struct {
	StatusUpdates map[string]domain.JoinRequestStatus
	EventsFull    []string
	Grants        map[domain.EntityRef]int
	Checkpoints   []domain.EntityRef
	Ops           int
}

func NewStore() *Store {
	return &Store{
		Requests:      make(map[string]domain.JoinRequest),
		Events:        make(map[string]domain.Event),
		TeamRosters:   make(map[string][]domain.TeamMember),
		Scores:        make(map[domain.EntityRef]domain.ReputationRecord),
		TeamErrs:      make(map[string]error),
		RequesterErrs: make(map[string]error),
	}
}

func (s *Store) JoinRequests() repository.JoinRequestRepository { return s }
func (s *Store) Teams() repository.TeamRepository               { return s }
func (s *Store) Reputation() repository.ReputationRepository    { return s }

func (s *Store) NewBatch() repository.WriteBatch {
	return &Batch{
		store: s,
		rec: CommittedBatch{
			StatusUpdates: make(map[string]domain.JoinRequestStatus),
			Grants:        make(map[domain.EntityRef]int),
		},
	}
}

func (s *Store) PendingByEvent(_ context.Context, eventID string) ([]domain.JoinRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.JoinRequest
	for _, r := range s.Requests {
		if r.EventID == eventID && r.Status == domain.JoinRequestStatusPending {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) PendingByRequesterAndTime(_ context.Context, requesterID, eventTime string) ([]domain.JoinRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.RequesterErrs[requesterID]; err != nil {
		return nil, err
	}
	var out []domain.JoinRequest
	for _, r := range s.Requests {
		if r.RequesterID == requesterID && r.EventTime == eventTime && r.Status == domain.JoinRequestStatusPending {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) PendingOlderThan(_ context.Context, cutoff time.Time) ([]domain.JoinRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.JoinRequest
	for _, r := range s.Requests {
		if r.Status == domain.JoinRequestStatusPending && !r.RequestedAt.After(cutoff) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) Members(_ context.Context, teamID string) ([]domain.TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.TeamErrs[teamID]; err != nil {
		return nil, err
	}
	return s.TeamRosters[teamID], nil
}

func (s *Store) BelowThreshold(_ context.Context, col domain.EntityCollection, threshold int) ([]domain.ReputationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.ReputationRecord
	for ref, rec := range s.Scores {
		if ref.Collection == col && rec.Score < threshold {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Request returns the current state of one request.
func (s *Store) Request(id string) domain.JoinRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Requests[id]
}

// Score returns the current reputation record for one entity.
func (s *Store) Score(ref domain.EntityRef) domain.ReputationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Scores[ref]
}

// Batch stages writes against the fake store.
type Batch struct {
	store     *Store
	rec       CommittedBatch
	grantTime time.Time
}

func (b *Batch) UpdateRequestStatus(id string, status domain.JoinRequestStatus) {
	b.rec.StatusUpdates[id] = status
	b.rec.Ops++
}

func (b *Batch) MarkEventFull(eventID string) {
	b.rec.EventsFull = append(b.rec.EventsFull, eventID)
	b.rec.Ops++
}

func (b *Batch) GrantReputation(ref domain.EntityRef, newScore int, checkpoint time.Time) {
	b.rec.Grants[ref] = newScore
	b.grantTime = checkpoint
	b.rec.Ops++
}

func (b *Batch) SetRecoveryCheckpoint(ref domain.EntityRef, checkpoint time.Time) {
	b.rec.Checkpoints = append(b.rec.Checkpoints, ref)
	b.grantTime = checkpoint
	b.rec.Ops++
}

func (b *Batch) Len() int { return b.rec.Ops }

func (b *Batch) Commit(_ context.Context) error {
	if b.rec.Ops == 0 {
		return nil
	}

	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	if len(b.store.CommitErrs) > 0 {
		err := b.store.CommitErrs[0]
		b.store.CommitErrs = b.store.CommitErrs[1:]
		if err != nil {
			return err
		}
	}

	for id, status := range b.rec.StatusUpdates {
		req := b.store.Requests[id]
		req.Status = status
		b.store.Requests[id] = req
	}
	for _, id := range b.rec.EventsFull {
		ev := b.store.Events[id]
		ev.ID = id
		ev.IsFull = true
		b.store.Events[id] = ev
	}
	for ref, score := range b.rec.Grants {
		rec := b.store.Scores[ref]
		rec.Ref = ref
		rec.Score = score
		t := b.grantTime
		rec.LastRecoveryTime = &t
		b.store.Scores[ref] = rec
	}
	for _, ref := range b.rec.Checkpoints {
		rec := b.store.Scores[ref]
		rec.Ref = ref
		t := b.grantTime
		rec.LastRecoveryTime = &t
		b.store.Scores[ref] = rec
	}

	b.store.Commits = append(b.store.Commits, b.rec)
	return nil
}
