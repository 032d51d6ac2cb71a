package firestoredb

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"matchday-backend/internal/repository"
)

// Collection paths touched by the backend.
const (
	CollJoinRequests = "joinRequests"
	CollEvents       = "events"
	CollTeams        = "teams"
	CollUsers        = "users"
)

// Connect initializes the Firebase app and returns its Firestore client.
// credentialsFile may be empty, in which case application-default
// credentials are used.
func Connect(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	conf := &firebase.Config{ProjectID: projectID}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return client, nil
}

// Store aggregates the Firestore-backed repositories.
type Store struct {
	client *firestore.Client

	joinRequests *JoinRequestRepo
	teams        *TeamRepo
	reputation   *ReputationRepo
}

// NewStore creates a store over an existing Firestore client.
func NewStore(client *firestore.Client) *Store {
	return &Store{
		client:       client,
		joinRequests: &JoinRequestRepo{client: client},
		teams:        &TeamRepo{client: client},
		reputation:   &ReputationRepo{client: client},
	}
}

func (s *Store) JoinRequests() repository.JoinRequestRepository {
	return s.joinRequests
}

func (s *Store) Teams() repository.TeamRepository {
	return s.teams
}

func (s *Store) Reputation() repository.ReputationRepository {
	return s.reputation
}

func (s *Store) NewBatch() repository.WriteBatch {
	return &writeBatch{client: s.client, batch: s.client.Batch()}
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
