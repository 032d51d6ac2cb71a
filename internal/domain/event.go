package domain

// Event is a schedulable match slot owned by an individual or a team.
// IsFull is monotonic: it flips false->true when any request for the event
// is accepted and is never reset by the backend.
type Event struct {
	ID     string `firestore:"-" json:"id"`
	IsFull bool   `firestore:"isFull" json:"is_full"`
}
