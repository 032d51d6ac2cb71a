package reconciler

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"matchday-backend/internal/domain"
	"matchday-backend/internal/logger"
	"matchday-backend/internal/repository"
)

// memberFanOutLimit caps concurrent per-member conflict queries so a large
// team roster cannot open an unbounded number of reads at once.
const memberFanOutLimit = 8

// Reconciler reacts to a join request transitioning from pending to
// accepted. It closes the event's capacity, regrets the remaining pending
// requests for the same event, and cancels time-slot-conflicting pending
// requests held by the requester side and (when the event is team-owned)
// the owner side, expanded through team membership. All writes land in one
// atomic batch, so a partial cascade can never persist.
//
// There is no locking: every write sets a terminal state or a monotonic
// flag, so redelivery of the same transition is harmless. Two accepts
// processed concurrently for the same event remain a known open window.
type Reconciler struct {
	store repository.Store
}

func New(store repository.Store) *Reconciler {
	return &Reconciler{store: store}
}

// HandleUpdate consumes the before/after snapshots of an updated join
// request document. Transitions other than pending->accepted are ignored.
func (r *Reconciler) HandleUpdate(ctx context.Context, before, after domain.JoinRequest) error {
	if before.Status != domain.JoinRequestStatusPending || after.Status != domain.JoinRequestStatusAccepted {
		logger.Debug("Not a pending->accepted transition, skipping",
			"doc_id", after.ID, "before", string(before.Status), "after", string(after.Status))
		return nil
	}

	// Data-integrity anomaly: acknowledged, never retried.
	if after.EventID == "" || after.RequesterID == "" || after.EventTime == "" {
		logger.Error("Accepted join request is missing required fields",
			"doc_id", after.ID,
			"event_id", after.EventID,
			"requester_id", after.RequesterID,
			"event_time", after.EventTime)
		return nil
	}

	logger.Info("Processing accept cascade", "doc_id", after.ID, "event_id", after.EventID, "requester_id", after.RequesterID)

	plan, err := r.buildPlan(ctx, after)
	if err != nil {
		return err
	}
	return r.commit(ctx, after, plan)
}

// plan is the set of intended writes for one cascade.
type plan struct {
	eventID string
	regret  []string
	cancel  []string
}

func (p *plan) ops() int {
	return 1 + len(p.regret) + len(p.cancel)
}

func (r *Reconciler) buildPlan(ctx context.Context, accepted domain.JoinRequest) (*plan, error) {
	p := &plan{eventID: accepted.EventID}

	// Every other pending request for the filled event is regretted. The
	// accepted document cannot match: its status is already accepted at
	// read time.
	siblings, err := r.store.JoinRequests().PendingByEvent(ctx, accepted.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sibling requests for event %s: %w", accepted.EventID, err)
	}

	staged := make(map[string]bool, len(siblings))
	for _, s := range siblings {
		staged[s.ID] = true
		p.regret = append(p.regret, s.ID)
	}

	// Time-slot exclusivity on both sides of the request.
	identities := r.requesterIdentities(ctx, accepted)
	identities = append(identities, r.ownerIdentities(ctx, accepted)...)

	conflicts := r.pendingConflicts(ctx, dedupe(identities), accepted.EventTime)
	for _, c := range conflicts {
		// Regret takes precedence when a document matches both sets, and
		// the accepted request never cancels itself.
		if c.ID == accepted.ID || staged[c.ID] {
			continue
		}
		staged[c.ID] = true
		p.cancel = append(p.cancel, c.ID)
	}

	return p, nil
}

// requesterIdentities resolves the identities whose pending requests must
// be checked against the accepted slot on the requester side.
func (r *Reconciler) requesterIdentities(ctx context.Context, accepted domain.JoinRequest) []string {
	if accepted.RequesterType != domain.ActorTypeTeam {
		return []string{accepted.RequesterID}
	}

	members, err := r.store.Teams().Members(ctx, accepted.RequesterID)
	if err != nil {
		// The rest of the cascade still applies.
		logger.Warn("Failed to resolve requester team, skipping member expansion",
			"team_id", accepted.RequesterID, "error", err)
		return nil
	}
	return memberIDs(members)
}

// ownerIdentities expands the event owner's roster when the event was
// created by a team; each member's own pending requests for the same slot
// become invalid once this event fills.
func (r *Reconciler) ownerIdentities(ctx context.Context, accepted domain.JoinRequest) []string {
	if accepted.CreatorType != domain.ActorTypeTeam || accepted.EventOwnerID == "" {
		return nil
	}

	members, err := r.store.Teams().Members(ctx, accepted.EventOwnerID)
	if err != nil {
		logger.Warn("Failed to resolve owner team, skipping member expansion",
			"team_id", accepted.EventOwnerID, "error", err)
		return nil
	}
	return memberIDs(members)
}

// pendingConflicts queries each identity's pending requests for the slot in
// bounded parallel. A failed read for one identity is logged and skipped;
// the remaining branches still contribute.
func (r *Reconciler) pendingConflicts(ctx context.Context, identities []string, eventTime string) []domain.JoinRequest {
	if len(identities) == 0 {
		return nil
	}

	var (
		mu  sync.Mutex
		out []domain.JoinRequest
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(memberFanOutLimit)
	for _, id := range identities {
		id := id
		g.Go(func() error {
			reqs, err := r.store.JoinRequests().PendingByRequesterAndTime(gctx, id, eventTime)
			if err != nil {
				logger.Warn("Failed to query conflicting requests for identity",
					"requester_id", id, "error", err)
				return nil
			}
			mu.Lock()
			out = append(out, reqs...)
			mu.Unlock()
			return nil
		})
	}
	// Branch errors are swallowed above; Wait only synchronizes.
	_ = g.Wait()
	return out
}

func (r *Reconciler) commit(ctx context.Context, accepted domain.JoinRequest, p *plan) error {
	if p.ops() > repository.MaxBatchOps {
		// Commit will fail atomically; surfacing the size makes the
		// fan-out overflow diagnosable.
		logger.Warn("Cascade exceeds store batch ceiling",
			"doc_id", accepted.ID, "ops", p.ops(), "ceiling", repository.MaxBatchOps)
	}

	batch := r.store.NewBatch()
	batch.MarkEventFull(p.eventID)
	for _, id := range p.regret {
		batch.UpdateRequestStatus(id, domain.JoinRequestStatusRegretted)
	}
	for _, id := range p.cancel {
		batch.UpdateRequestStatus(id, domain.JoinRequestStatusCancelled)
	}

	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit accept cascade for %s: %w", accepted.ID, err)
	}

	logger.Info("Accept cascade committed",
		"doc_id", accepted.ID,
		"event_id", p.eventID,
		"regretted", len(p.regret),
		"cancelled", len(p.cancel))
	return nil
}

func memberIDs(members []domain.TeamMember) []string {
	ids := make([]string, 0, len(members))
	for _, m := range members {
		if m.UID != "" {
			ids = append(ids, m.UID)
		}
	}
	return ids
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
