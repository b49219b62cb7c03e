package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

// SnapshotStore persists dashboard snapshots.
type SnapshotStore struct {
	coll *mongo.Collection
}

// NewSnapshotStore wraps coll as the snapshot store.
func NewSnapshotStore(coll *mongo.Collection) *SnapshotStore {
	return &SnapshotStore{coll: coll}
}

// SaveSnapshot saves a dashboard snapshot to the database.
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, snapshot models.DashboardSnapshot) error {
	_, err := s.coll.InsertOne(ctx, snapshot)
	if err != nil {
		return fmt.Errorf("failed to insert dashboard snapshot: %w", err)
	}
	return nil
}

// LatestSnapshots returns up to limit snapshots, newest first.
func (s *SnapshotStore) LatestSnapshots(ctx context.Context, limit int64) ([]models.DashboardSnapshot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "takenAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list dashboard snapshots: %w", err)
	}

	snapshots := make([]models.DashboardSnapshot, 0)
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, fmt.Errorf("decode dashboard snapshots: %w", err)
	}
	return snapshots, nil
}
