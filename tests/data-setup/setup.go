// Command data-setup seeds a development Firestore project with users,
// teams, events, and pending join requests so the cascade and the cron
// jobs can be exercised by hand.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"matchday-backend/internal/config"
	"matchday-backend/internal/domain"
	"matchday-backend/internal/repository/firestoredb"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	client, err := firestoredb.Connect(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
	if err != nil {
		log.Fatalf("Failed to connect to Firestore: %v", err)
	}
	defer client.Close()

	now := time.Now().UTC()
	staleCheckpoint := now.Add(-50 * time.Hour)

	seedDoc(ctx, client, firestoredb.CollUsers, "u1", map[string]any{
		"displayName":      "Minh",
		"reputationScore":  40,
		"lastRecoveryTime": staleCheckpoint,
	})
	seedDoc(ctx, client, firestoredb.CollUsers, "u2", map[string]any{
		"displayName":     "Lan",
		"reputationScore": 30, // no checkpoint yet: first scan only stamps one
	})
	seedDoc(ctx, client, firestoredb.CollUsers, "u3", map[string]any{
		"displayName": "Huy", // no score field: treated as at the ceiling
	})

	seedDoc(ctx, client, firestoredb.CollTeams, "t1", map[string]any{
		"name": "FC Sáng Thứ Bảy",
		"members": []map[string]any{
			{"uid": "u1", "name": "Minh"},
			{"uid": "u2", "name": "Lan"},
		},
		"reputationScore":  45,
		"lastRecoveryTime": staleCheckpoint,
	})

	seedDoc(ctx, client, firestoredb.CollEvents, "e1", map[string]any{"isFull": false})
	seedDoc(ctx, client, firestoredb.CollEvents, "e2", map[string]any{"isFull": false})

	slot := "2025-03-15T09:00"
	seedRequest(ctx, client, "u3", "e1", slot, now)
	seedRequest(ctx, client, "u3", "e2", slot, now)                // cancelled once the e1 request is accepted
	seedRequest(ctx, client, "u1", "e1", slot, now)                // regretted as a sibling
	seedRequest(ctx, client, "u2", "e2", slot, now.Add(-2*time.Hour)) // picked up by the purger

	log.Println("Seed data written")
}

func seedDoc(ctx context.Context, client *firestore.Client, coll, id string, data map[string]any) {
	if _, err := client.Collection(coll).Doc(id).Set(ctx, data); err != nil {
		log.Fatalf("Failed to seed %s/%s: %v", coll, id, err)
	}
}

func seedRequest(ctx context.Context, client *firestore.Client, requesterID, eventID, eventTime string, requestedAt time.Time) {
	id := uuid.New().String()
	data := map[string]any{
		"requesterId":   requesterID,
		"requesterType": string(domain.ActorTypeIndividual),
		"eventId":       eventID,
		"eventTime":     eventTime,
		"eventOwnerId":  "t1",
		"creatorType":   string(domain.ActorTypeTeam),
		"status":        string(domain.JoinRequestStatusPending),
		"requestedAt":   requestedAt,
	}
	if _, err := client.Collection(firestoredb.CollJoinRequests).Doc(id).Set(ctx, data); err != nil {
		log.Fatalf("Failed to seed join request %s: %v", id, err)
	}
}
