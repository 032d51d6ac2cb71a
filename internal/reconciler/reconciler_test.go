package reconciler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchday-backend/internal/domain"
	"matchday-backend/internal/repository/fake"
)

func pendingRequest(id, requesterID, eventID, eventTime string) domain.JoinRequest {
	return domain.JoinRequest{
		ID:            id,
		RequesterID:   requesterID,
		RequesterType: domain.ActorTypeIndividual,
		EventID:       eventID,
		EventTime:     eventTime,
		CreatorType:   domain.ActorTypeIndividual,
		Status:        domain.JoinRequestStatusPending,
		RequestedAt:   time.Now(),
	}
}

// accept returns the before/after pair for req transitioning to accepted,
// with the store updated to the after state (the trigger fires post-write).
func accept(store *fake.Store, req domain.JoinRequest) (domain.JoinRequest, domain.JoinRequest) {
	before := req
	after := req
	after.Status = domain.JoinRequestStatusAccepted
	store.Requests[req.ID] = after
	return before, after
}

func TestAcceptMarksEventFullOnly(t *testing.T) {
	store := fake.NewStore()
	r1 := pendingRequest("r1", "u1", "e1", "sat-09:00")
	before, after := accept(store, r1)

	err := New(store).HandleUpdate(context.Background(), before, after)
	require.NoError(t, err)

	require.Len(t, store.Commits, 1)
	assert.Equal(t, []string{"e1"}, store.Commits[0].EventsFull)
	assert.Empty(t, store.Commits[0].StatusUpdates)
	assert.True(t, store.Events["e1"].IsFull)
}

func TestAcceptRegretsSiblingRequests(t *testing.T) {
	store := fake.NewStore()
	r1 := pendingRequest("r1", "u1", "e1", "sat-09:00")
	r2 := pendingRequest("r2", "u2", "e1", "sat-09:00")
	store.Requests["r2"] = r2
	before, after := accept(store, r1)

	err := New(store).HandleUpdate(context.Background(), before, after)
	require.NoError(t, err)

	assert.Equal(t, domain.JoinRequestStatusRegretted, store.Request("r2").Status)
	assert.True(t, store.Events["e1"].IsFull)
}

func TestAcceptCancelsTimeSlotConflicts(t *testing.T) {
	store := fake.NewStore()
	r1 := pendingRequest("r1", "u1", "e1", "sat-09:00")
	r2 := pendingRequest("r2", "u1", "e2", "sat-09:00") // same slot, other event
	r3 := pendingRequest("r3", "u1", "e3", "sun-10:00") // other slot, untouched
	store.Requests["r2"] = r2
	store.Requests["r3"] = r3
	before, after := accept(store, r1)

	err := New(store).HandleUpdate(context.Background(), before, after)
	require.NoError(t, err)

	assert.Equal(t, domain.JoinRequestStatusCancelled, store.Request("r2").Status)
	assert.Equal(t, domain.JoinRequestStatusPending, store.Request("r3").Status)
	assert.Equal(t, domain.JoinRequestStatusAccepted, store.Request("r1").Status)
}

func TestAcceptExpandsRequesterTeamMembers(t *testing.T) {
	store := fake.NewStore()
	store.TeamRosters["t1"] = []domain.TeamMember{{UID: "u1"}, {UID: "u2"}}

	r1 := pendingRequest("r1", "t1", "e1", "sat-09:00")
	r1.RequesterType = domain.ActorTypeTeam
	r3 := pendingRequest("r3", "u2", "e2", "sat-09:00")
	store.Requests["r3"] = r3
	before, after := accept(store, r1)

	err := New(store).HandleUpdate(context.Background(), before, after)
	require.NoError(t, err)

	assert.Equal(t, domain.JoinRequestStatusCancelled, store.Request("r3").Status)
}

func TestAcceptExpandsOwnerTeamMembers(t *testing.T) {
	store := fake.NewStore()
	store.TeamRosters["owners"] = []domain.TeamMember{{UID: "o1"}, {UID: "o2"}}

	r1 := pendingRequest("r1", "u1", "e1", "sat-09:00")
	r1.EventOwnerID = "owners"
	r1.CreatorType = domain.ActorTypeTeam
	r2 := pendingRequest("r2", "o2", "e9", "sat-09:00")
	store.Requests["r2"] = r2
	before, after := accept(store, r1)

	err := New(store).HandleUpdate(context.Background(), before, after)
	require.NoError(t, err)

	assert.Equal(t, domain.JoinRequestStatusCancelled, store.Request("r2").Status)
}

func TestSiblingRegretTakesPrecedenceOverCancellation(t *testing.T) {
	store := fake.NewStore()
	r1 := pendingRequest("r1", "u1", "e1", "sat-09:00")
	// Duplicate request by the same requester for the same event and slot:
	// matches both the sibling set and the exclusivity set.
	dup := pendingRequest("dup", "u1", "e1", "sat-09:00")
	store.Requests["dup"] = dup
	before, after := accept(store, r1)

	err := New(store).HandleUpdate(context.Background(), before, after)
	require.NoError(t, err)

	assert.Equal(t, domain.JoinRequestStatusRegretted, store.Request("dup").Status)
}

func TestNonAcceptTransitionIsNoOp(t *testing.T) {
	store := fake.NewStore()
	r1 := pendingRequest("r1", "u1", "e1", "sat-09:00")
	before := r1
	after := r1
	after.Status = domain.JoinRequestStatusCancelled
	store.Requests["r1"] = after

	err := New(store).HandleUpdate(context.Background(), before, after)
	require.NoError(t, err)
	assert.Empty(t, store.Commits)
}

func TestRedeliveryOfAcceptedTransitionIsNoOp(t *testing.T) {
	store := fake.NewStore()
	r1 := pendingRequest("r1", "u1", "e1", "sat-09:00")
	before := r1
	after := r1
	after.Status = domain.JoinRequestStatusAccepted
	store.Requests["r1"] = after
	// before snapshot already accepted: redelivered change, nothing to do
	before.Status = domain.JoinRequestStatusAccepted

	err := New(store).HandleUpdate(context.Background(), before, after)
	require.NoError(t, err)
	assert.Empty(t, store.Commits)
}

func TestMissingRequiredFieldsAbortsWithoutWrites(t *testing.T) {
	store := fake.NewStore()
	r1 := pendingRequest("r1", "u1", "", "sat-09:00") // no eventId
	before, after := accept(store, r1)

	err := New(store).HandleUpdate(context.Background(), before, after)
	require.NoError(t, err)
	assert.Empty(t, store.Commits)
}

func TestTeamLookupFailureDoesNotAbortCascade(t *testing.T) {
	store := fake.NewStore()
	store.TeamErrs["t1"] = errors.New("team not found")

	r1 := pendingRequest("r1", "t1", "e1", "sat-09:00")
	r1.RequesterType = domain.ActorTypeTeam
	r2 := pendingRequest("r2", "u9", "e1", "sat-09:00") // sibling, still regretted
	store.Requests["r2"] = r2
	before, after := accept(store, r1)

	err := New(store).HandleUpdate(context.Background(), before, after)
	require.NoError(t, err)

	assert.Equal(t, domain.JoinRequestStatusRegretted, store.Request("r2").Status)
	assert.True(t, store.Events["e1"].IsFull)
}

func TestMemberQueryFailureSkipsOnlyThatBranch(t *testing.T) {
	store := fake.NewStore()
	store.TeamRosters["t1"] = []domain.TeamMember{{UID: "u1"}, {UID: "u2"}}
	store.RequesterErrs["u1"] = errors.New("unavailable")

	r1 := pendingRequest("r1", "t1", "e1", "sat-09:00")
	r1.RequesterType = domain.ActorTypeTeam
	r2 := pendingRequest("r2", "u2", "e2", "sat-09:00")
	store.Requests["r2"] = r2
	before, after := accept(store, r1)

	err := New(store).HandleUpdate(context.Background(), before, after)
	require.NoError(t, err)

	assert.Equal(t, domain.JoinRequestStatusCancelled, store.Request("r2").Status)
}

func TestCascadeIsIdempotentUnderRedelivery(t *testing.T) {
	store := fake.NewStore()
	r1 := pendingRequest("r1", "u1", "e1", "sat-09:00")
	r2 := pendingRequest("r2", "u2", "e1", "sat-09:00")
	r3 := pendingRequest("r3", "u1", "e2", "sat-09:00")
	store.Requests["r2"] = r2
	store.Requests["r3"] = r3
	before, after := accept(store, r1)

	rec := New(store)
	require.NoError(t, rec.HandleUpdate(context.Background(), before, after))
	require.NoError(t, rec.HandleUpdate(context.Background(), before, after))

	require.Len(t, store.Commits, 2)
	// The second application finds nothing pending and only re-closes
	// capacity.
	assert.Empty(t, store.Commits[1].StatusUpdates)
	assert.Equal(t, []string{"e1"}, store.Commits[1].EventsFull)
	assert.Equal(t, domain.JoinRequestStatusRegretted, store.Request("r2").Status)
	assert.Equal(t, domain.JoinRequestStatusCancelled, store.Request("r3").Status)
}

func TestCommitFailureLeavesNoPartialEffects(t *testing.T) {
	store := fake.NewStore()
	store.CommitErrs = []error{errors.New("unavailable")}

	r1 := pendingRequest("r1", "u1", "e1", "sat-09:00")
	r2 := pendingRequest("r2", "u2", "e1", "sat-09:00")
	store.Requests["r2"] = r2
	before, after := accept(store, r1)

	err := New(store).HandleUpdate(context.Background(), before, after)
	require.Error(t, err)

	assert.Equal(t, domain.JoinRequestStatusPending, store.Request("r2").Status)
	assert.False(t, store.Events["e1"].IsFull)
	assert.Empty(t, store.Commits)
}

func TestAtMostOneAcceptedPerEvent(t *testing.T) {
	store := fake.NewStore()
	r1 := pendingRequest("r1", "u1", "e1", "sat-09:00")
	others := []string{"r2", "r3", "r4"}
	for i, id := range others {
		req := pendingRequest(id, "u"+string(rune('2'+i)), "e1", "sat-09:00")
		store.Requests[id] = req
	}
	before, after := accept(store, r1)

	err := New(store).HandleUpdate(context.Background(), before, after)
	require.NoError(t, err)

	acceptedCount := 0
	for id := range store.Requests {
		if store.Request(id).Status == domain.JoinRequestStatusAccepted {
			acceptedCount++
		}
	}
	assert.Equal(t, 1, acceptedCount)
	for _, id := range others {
		assert.Equal(t, domain.JoinRequestStatusRegretted, store.Request(id).Status)
	}
}
