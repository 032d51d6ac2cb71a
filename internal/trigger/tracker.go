package trigger

import "matchday-backend/internal/domain"

// snapshotTracker remembers the last observed state of each join request so
// a modification can be delivered to handlers as a before/after pair.
type snapshotTracker struct {
	last map[string]domain.JoinRequest
}

func newSnapshotTracker() *snapshotTracker {
	return &snapshotTracker{last: make(map[string]domain.JoinRequest)}
}

// observe records req as the latest state and returns the previously known
// state, if any.
func (t *snapshotTracker) observe(req domain.JoinRequest) (domain.JoinRequest, bool) {
	before, known := t.last[req.ID]
	t.last[req.ID] = req
	return before, known
}

func (t *snapshotTracker) forget(id string) {
	delete(t.last, id)
}
