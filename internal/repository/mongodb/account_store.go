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

// AccountStore persists accounts in the farmers collection.
type AccountStore struct {
	coll *mongo.Collection
}

// NewAccountStore wraps coll as the account store.
func NewAccountStore(coll *mongo.Collection) *AccountStore {
	return &AccountStore{coll: coll}
}

func (s *AccountStore) Create(ctx context.Context, account models.Account) error {
	if _, err := s.coll.InsertOne(ctx, account); err != nil {
		return wrapWriteError("insert into", s.coll.Name(), err)
	}
	return nil
}

func (s *AccountStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Account, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *AccountStore) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *AccountStore) ListByRole(ctx context.Context, role models.Role) ([]models.Account, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"role": role}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	accounts := make([]models.Account, 0)
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}
	return accounts, nil
}

func (s *AccountStore) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return count, nil
}

func (s *AccountStore) SetBlocked(ctx context.Context, id primitive.ObjectID, blocked bool) error {
	res, err := s.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{"isBlocked": blocked}})
	if err != nil {
		return fmt.Errorf("block account %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("block account %s: %w", id.Hex(), repository.ErrNotFound)
	}
	return nil
}

func (s *AccountStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete account %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete account %s: %w", id.Hex(), repository.ErrNotFound)
	}
	return nil
}

func (s *AccountStore) findOne(ctx context.Context, filter bson.M) (models.Account, error) {
	var account models.Account
	err := s.coll.FindOne(ctx, filter).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return account, fmt.Errorf("find account: %w", repository.ErrNotFound)
	}
	if err != nil {
		return account, fmt.Errorf("find account: %w", err)
	}
	return account, nil
}
