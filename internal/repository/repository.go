// Package repository declares the persistence contracts shared by the MongoDB
// and in-memory backends.
package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

var (
	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a unique index violation.
	ErrDuplicate = errors.New("duplicate key")
)

// AccountStore persists farmer and administrator accounts.
type AccountStore interface {
	Create(ctx context.Context, account models.Account) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Account, error)
	FindByEmail(ctx context.Context, email string) (models.Account, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.Account, error)
	CountByRole(ctx context.Context, role models.Role) (int64, error)
	SetBlocked(ctx context.Context, id primitive.ObjectID, blocked bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// RecordStore persists one kind of farmer-owned record.
type RecordStore[T models.Record] interface {
	Insert(ctx context.Context, record T) error
	FindByID(ctx context.Context, id primitive.ObjectID) (T, error)
	ListAll(ctx context.Context) ([]T, error)
	ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]T, error)
	Replace(ctx context.Context, record T) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// MilkStore adds the production total used by the admin dashboard.
type MilkStore interface {
	RecordStore[models.MilkRecord]
	SumQuantity(ctx context.Context) (float64, error)
}

// BreedStore adds the per-farmer breed name lookup.
type BreedStore interface {
	RecordStore[models.BreedRecord]
	FindByOwnerAndName(ctx context.Context, owner primitive.ObjectID, name string) (models.BreedRecord, error)
}

// SnapshotStore persists dashboard snapshots.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snapshot models.DashboardSnapshot) error
	LatestSnapshots(ctx context.Context, limit int64) ([]models.DashboardSnapshot, error)
}

// Stores bundles every store the services need.
type Stores struct {
	Accounts  AccountStore
	Milk      MilkStore
	Feeds     RecordStore[models.FeedRecord]
	Breeds    BreedStore
	Health    RecordStore[models.HealthRecord]
	Snapshots SnapshotStore
}
