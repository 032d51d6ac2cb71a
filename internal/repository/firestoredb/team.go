package firestoredb

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"matchday-backend/internal/domain"
	"matchday-backend/internal/logger"
)

// TeamRepo reads team rosters for cascade fan-out. Teams are never written
// by the backend.
type TeamRepo struct {
	client *firestore.Client
}

func (r *TeamRepo) Members(ctx context.Context, teamID string) ([]domain.TeamMember, error) {
	logger.DatabaseCall("get", "teams/{id}", "team_id", teamID)
	doc, err := r.client.Collection(CollTeams).Doc(teamID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read team %s: %w", teamID, err)
	}
	if !doc.Exists() {
		return nil, fmt.Errorf("team %s not found", teamID)
	}

	var team domain.Team
	if err := doc.DataTo(&team); err != nil {
		return nil, fmt.Errorf("failed to decode team %s: %w", teamID, err)
	}
	return team.Members, nil
}
