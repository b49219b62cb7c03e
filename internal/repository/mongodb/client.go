package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/repository"
)

const (
	accountsCollection  = "farmers"
	milkCollection      = "milkproductions"
	feedsCollection     = "feeds"
	breedsCollection    = "breeds"
	healthCollection    = "healths"
	snapshotsCollection = "dashboard_snapshots"
)

// Client owns the MongoDB connection and hands out the typed stores.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// Connect dials MongoDB and verifies the connection.
func Connect(ctx context.Context, uri, dbName string, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info("connected to mongodb", zap.String("database", dbName))

	return &Client{
		client: client,
		db:     client.Database(dbName),
		logger: logger,
	}, nil
}

// Stores returns the typed stores backed by this database.
func (c *Client) Stores() repository.Stores {
	return NewStores(c.db)
}

// NewStores builds the typed stores on top of db.
func NewStores(db *mongo.Database) repository.Stores {
	return repository.Stores{
		Accounts:  NewAccountStore(db.Collection(accountsCollection)),
		Milk:      NewMilkStore(db.Collection(milkCollection)),
		Feeds:     NewCollection[models.FeedRecord](db.Collection(feedsCollection)),
		Breeds:    NewBreedStore(db.Collection(breedsCollection)),
		Health:    NewCollection[models.HealthRecord](db.Collection(healthCollection)),
		Snapshots: NewSnapshotStore(db.Collection(snapshotsCollection)),
	}
}

// EnsureIndexes creates the unique and lookup indexes the stores rely on.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		accountsCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		breedsCollection: {
			{Keys: bson.D{{Key: "farmerId", Value: 1}, {Key: "breedName", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		milkCollection:      {{Keys: bson.D{{Key: "farmerId", Value: 1}}}},
		feedsCollection:     {{Keys: bson.D{{Key: "farmerId", Value: 1}}}},
		healthCollection:    {{Keys: bson.D{{Key: "farmerId", Value: 1}}}},
		snapshotsCollection: {{Keys: bson.D{{Key: "takenAt", Value: -1}}}},
	}

	for name, specs := range indexes {
		if _, err := c.db.Collection(name).Indexes().CreateMany(ctx, specs); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}

	c.logger.Debug("mongodb indexes ensured", zap.Int("collections", len(indexes)))
	return nil
}

// Close closes the MongoDB connection.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

func wrapWriteError(op, collection string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s %s: %w", op, collection, repository.ErrDuplicate)
	}
	return fmt.Errorf("%s %s: %w", op, collection, err)
}
