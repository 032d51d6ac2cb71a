package domain

import "time"

type JoinRequestStatus string

const (
	JoinRequestStatusPending   JoinRequestStatus = "pending"
	JoinRequestStatusAccepted  JoinRequestStatus = "accepted"
	JoinRequestStatusRegretted JoinRequestStatus = "regretted"
	JoinRequestStatusCancelled JoinRequestStatus = "cancelled"
)

// ActorType distinguishes individual users from teams on both sides of a
// join request (the requester and the event creator).
type ActorType string

const (
	ActorTypeIndividual ActorType = "individual"
	ActorTypeTeam       ActorType = "team"
)

// JoinRequest is a request by a player or team to join one slot of an event.
// EventTime is an opaque equality key identifying the slot; it is never
// parsed as a calendar time.
type JoinRequest struct {
	ID            string            `firestore:"-" json:"id"`
	RequesterID   string            `firestore:"requesterId" json:"requester_id"`
	RequesterType ActorType         `firestore:"requesterType" json:"requester_type"`
	EventID       string            `firestore:"eventId" json:"event_id"`
	EventTime     string            `firestore:"eventTime" json:"event_time"`
	EventOwnerID  string            `firestore:"eventOwnerId" json:"event_owner_id"`
	CreatorType   ActorType         `firestore:"creatorType" json:"creator_type"`
	Status        JoinRequestStatus `firestore:"status" json:"status"`
	RequestedAt   time.Time         `firestore:"requestedAt" json:"requested_at"`
}
