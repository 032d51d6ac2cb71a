package domain

// TeamMember is one entry in a team's member list.
type TeamMember struct {
	UID  string `firestore:"uid" json:"uid"`
	Name string `firestore:"name" json:"name"`
}

// Team is a named group of players. The backend only ever reads the member
// list (for cascade fan-out); it never mutates a team roster.
type Team struct {
	ID      string       `firestore:"-" json:"id"`
	Name    string       `firestore:"name" json:"name"`
	Members []TeamMember `firestore:"members" json:"members"`
}
