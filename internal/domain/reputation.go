package domain

import "time"

// EntityCollection names a collection whose documents carry reputation
// fields. Both users and teams hold their own scores.
type EntityCollection string

const (
	CollectionUsers EntityCollection = "users"
	CollectionTeams EntityCollection = "teams"
)

// ReputationCeiling is the maximum reputation score. Documents without a
// reputationScore field are treated as sitting at the ceiling.
const ReputationCeiling = 100

// EntityRef identifies one scored document.
type EntityRef struct {
	Collection EntityCollection
	ID         string
}

// ReputationRecord is the reputation subset of a user or team document.
// LastRecoveryTime is nil until the entity is first observed below the
// recovery scan threshold; it only ever moves forward.
type ReputationRecord struct {
	Ref              EntityRef
	Score            int
	LastRecoveryTime *time.Time
}
