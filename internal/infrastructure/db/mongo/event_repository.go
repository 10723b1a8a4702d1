package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talentbridge/marketplace/internal/core/domain"
	"github.com/talentbridge/marketplace/internal/core/ports"
)

const eventsCollection = "application_events"

// EventRepository implements ports.ApplicationEventRepository using MongoDB.
type EventRepository struct {
	col *mongo.Collection
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(eventsCollection)}
}

var _ ports.ApplicationEventRepository = (*EventRepository)(nil)

// Insert persists one status transition to the audit collection.
func (r *EventRepository) Insert(ctx context.Context, event *domain.ApplicationEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"application_id": event.ApplicationID,
		"job_id":         event.JobID,
		"actor_id":       event.ActorID,
		"actor_role":     string(event.ActorRole),
		"from":           string(event.From),
		"to":             string(event.To),
		"occurred_at":    event.OccurredAt.UTC(),
		"recorded_at":    time.Now().UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		// A redelivered transition is already on the trail.
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("insert application event: %w", err)
	}
	return nil
}

// ListByApplication returns the trail of one application, oldest first.
func (r *EventRepository) ListByApplication(ctx context.Context, applicationID string) ([]*domain.ApplicationEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"application_id": applicationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find application events: %w", err)
	}
	defer cur.Close(ctx)

	events := []*domain.ApplicationEvent{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode application events: %w", err)
	}
	return events, nil
}

// EnsureIndexes creates the indexes the history queries rely on.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "application_id", Value: 1}, {Key: "occurred_at", Value: 1}}},
		{
			Keys:    bson.D{{Key: "application_id", Value: 1}, {Key: "from", Value: 1}, {Key: "to", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "job_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
