package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/repository"
)

func TestMilkStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert", func(mt *mtest.T) {
		store := NewMilkStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := store.Insert(context.Background(), models.MilkRecord{ID: primitive.NewObjectID(), Quantity: 10})
		assert.NoError(mt, err)
	})

	mt.Run("find by id", func(mt *mtest.T) {
		store := NewMilkStore(mt.Coll)
		id, owner := primitive.NewObjectID(), primitive.NewObjectID()
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "farmerId", Value: owner},
			{Key: "quantity", Value: 12.5},
		}))

		record, err := store.FindByID(context.Background(), id)
		require.NoError(mt, err)
		assert.Equal(mt, owner, record.FarmerID)
		assert.Equal(mt, 12.5, record.Quantity)
	})

	mt.Run("find by id missing", func(mt *mtest.T) {
		store := NewMilkStore(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := store.FindByID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("sum quantity", func(mt *mtest.T) {
		store := NewMilkStore(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: 5.5},
		}))

		total, err := store.SumQuantity(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, 5.5, total)
	})

	mt.Run("sum quantity of empty collection", func(mt *mtest.T) {
		store := NewMilkStore(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		total, err := store.SumQuantity(context.Background())
		require.NoError(mt, err)
		assert.Zero(mt, total)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		store := NewMilkStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := store.Delete(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})
}

func TestBreedStoreDuplicate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate key maps to ErrDuplicate", func(mt *mtest.T) {
		store := NewBreedStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		err := store.Insert(context.Background(), models.BreedRecord{ID: primitive.NewObjectID(), BreedName: "Jersey"})
		assert.ErrorIs(mt, err, repository.ErrDuplicate)
	})
}

func TestAccountStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find by email", func(mt *mtest.T) {
		store := NewAccountStore(mt.Coll)
		id := primitive.NewObjectID()
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "a@x.com"},
			{Key: "password", Value: "$2a$10$hash"},
			{Key: "role", Value: "farmer"},
			{Key: "isBlocked", Value: true},
		}))

		account, err := store.FindByEmail(context.Background(), "a@x.com")
		require.NoError(mt, err)
		assert.Equal(mt, id, account.ID)
		assert.Equal(mt, models.RoleFarmer, account.Role)
		assert.Equal(mt, "$2a$10$hash", account.PasswordHash)
		assert.True(mt, account.Blocked)
	})

	mt.Run("set blocked on missing account", func(mt *mtest.T) {
		store := NewAccountStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := store.SetBlocked(context.Background(), primitive.NewObjectID(), true)
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		store := NewAccountStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		err := store.Create(context.Background(), models.Account{ID: primitive.NewObjectID(), Email: "a@x.com"})
		assert.ErrorIs(mt, err, repository.ErrDuplicate)
	})
}
