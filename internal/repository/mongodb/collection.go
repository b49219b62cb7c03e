// Package mongodb implements the repository contracts on MongoDB.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/repository"
)

// Collection stores one kind of farmer-owned record.
type Collection[T models.Record] struct {
	coll *mongo.Collection
}

// NewCollection wraps coll as a typed record store.
func NewCollection[T models.Record](coll *mongo.Collection) *Collection[T] {
	return &Collection[T]{coll: coll}
}

func (c *Collection[T]) Insert(ctx context.Context, record T) error {
	if _, err := c.coll.InsertOne(ctx, record); err != nil {
		return wrapWriteError("insert into", c.coll.Name(), err)
	}
	return nil
}

func (c *Collection[T]) FindByID(ctx context.Context, id primitive.ObjectID) (T, error) {
	var record T
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return record, fmt.Errorf("find %s %s: %w", c.coll.Name(), id.Hex(), repository.ErrNotFound)
	}
	if err != nil {
		return record, fmt.Errorf("find %s %s: %w", c.coll.Name(), id.Hex(), err)
	}
	return record, nil
}

func (c *Collection[T]) ListAll(ctx context.Context) ([]T, error) {
	return c.find(ctx, bson.M{})
}

func (c *Collection[T]) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]T, error) {
	return c.find(ctx, bson.M{"farmerId": owner})
}

func (c *Collection[T]) Replace(ctx context.Context, record T) error {
	res, err := c.coll.ReplaceOne(ctx, bson.M{"_id": record.RecordID()}, record)
	if err != nil {
		return wrapWriteError("replace in", c.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("replace %s %s: %w", c.coll.Name(), record.RecordID().Hex(), repository.ErrNotFound)
	}
	return nil
}

func (c *Collection[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", c.coll.Name(), id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete %s %s: %w", c.coll.Name(), id.Hex(), repository.ErrNotFound)
	}
	return nil
}

func (c *Collection[T]) DeleteByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	res, err := c.coll.DeleteMany(ctx, bson.M{"farmerId": owner})
	if err != nil {
		return 0, fmt.Errorf("delete %s of %s: %w", c.coll.Name(), owner.Hex(), err)
	}
	return res.DeletedCount, nil
}

func (c *Collection[T]) Count(ctx context.Context) (int64, error) {
	count, err := c.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.coll.Name(), err)
	}
	return count, nil
}

func (c *Collection[T]) find(ctx context.Context, filter bson.M) ([]T, error) {
	cursor, err := c.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.coll.Name(), err)
	}

	records := make([]T, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}
	return records, nil
}

// MilkStore is the milk collection plus the production total.
type MilkStore struct {
	*Collection[models.MilkRecord]
}

// NewMilkStore wraps coll as the milk store.
func NewMilkStore(coll *mongo.Collection) *MilkStore {
	return &MilkStore{Collection: NewCollection[models.MilkRecord](coll)}
}

// SumQuantity totals every milk record. An empty collection yields 0.
func (s *MilkStore) SumQuantity(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$quantity"}}},
		}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("sum milk quantity: %w", err)
	}

	var totals []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &totals); err != nil {
		return 0, fmt.Errorf("decode milk total: %w", err)
	}
	if len(totals) == 0 {
		return 0, nil
	}
	return totals[0].Total, nil
}

// BreedStore is the breed collection plus the per-farmer name lookup.
type BreedStore struct {
	*Collection[models.BreedRecord]
}

// NewBreedStore wraps coll as the breed store.
func NewBreedStore(coll *mongo.Collection) *BreedStore {
	return &BreedStore{Collection: NewCollection[models.BreedRecord](coll)}
}

func (s *BreedStore) FindByOwnerAndName(ctx context.Context, owner primitive.ObjectID, name string) (models.BreedRecord, error) {
	var record models.BreedRecord
	err := s.coll.FindOne(ctx, bson.M{"farmerId": owner, "breedName": name}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return record, fmt.Errorf("find breed %q: %w", name, repository.ErrNotFound)
	}
	if err != nil {
		return record, fmt.Errorf("find breed %q: %w", name, err)
	}
	return record, nil
}
