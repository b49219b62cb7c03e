package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/repository"
)

var (
	_ repository.AccountStore                   = (*AccountStore)(nil)
	_ repository.MilkStore                      = (*MilkStore)(nil)
	_ repository.BreedStore                     = (*BreedStore)(nil)
	_ repository.RecordStore[models.FeedRecord] = (*Collection[models.FeedRecord])(nil)
	_ repository.SnapshotStore                  = (*SnapshotStore)(nil)
)

// NewStores returns a fresh, empty set of in-memory stores.
func NewStores() repository.Stores {
	return repository.Stores{
		Accounts:  NewAccountStore(),
		Milk:      NewMilkStore(),
		Feeds:     NewCollection[models.FeedRecord]("feeds", nil),
		Breeds:    NewBreedStore(),
		Health:    NewCollection[models.HealthRecord]("health", nil),
		Snapshots: NewSnapshotStore(),
	}
}

// MilkStore is the in-memory milk collection.
type MilkStore struct {
	*Collection[models.MilkRecord]
}

// NewMilkStore creates an empty milk store.
func NewMilkStore() *MilkStore {
	return &MilkStore{Collection: NewCollection[models.MilkRecord]("milk", nil)}
}

// SumQuantity totals every milk record. It returns 0 when there are none.
func (s *MilkStore) SumQuantity(ctx context.Context) (float64, error) {
	records, err := s.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, record := range records {
		total += record.Quantity
	}
	return total, nil
}

// BreedStore is the in-memory breed collection with the (farmer, breedName) unique constraint.
type BreedStore struct {
	*Collection[models.BreedRecord]
}

// NewBreedStore creates an empty breed store.
func NewBreedStore() *BreedStore {
	return &BreedStore{Collection: NewCollection[models.BreedRecord]("breeds", func(a, b models.BreedRecord) bool {
		return a.FarmerID == b.FarmerID && a.BreedName == b.BreedName
	})}
}

func (s *BreedStore) FindByOwnerAndName(ctx context.Context, owner primitive.ObjectID, name string) (models.BreedRecord, error) {
	records, err := s.ListByOwner(ctx, owner)
	if err != nil {
		return models.BreedRecord{}, err
	}
	for _, record := range records {
		if record.BreedName == name {
			return record, nil
		}
	}
	return models.BreedRecord{}, fmt.Errorf("find breed %q: %w", name, repository.ErrNotFound)
}

// AccountStore keeps accounts keyed by id with a unique email index.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[primitive.ObjectID]models.Account
	order    []primitive.ObjectID
}

// NewAccountStore creates an empty account store.
func NewAccountStore() *AccountStore {
	return &AccountStore{accounts: make(map[primitive.ObjectID]models.Account)}
}

func (s *AccountStore) Create(_ context.Context, account models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.ID]; exists {
		return fmt.Errorf("insert account: %w", repository.ErrDuplicate)
	}
	for _, existing := range s.accounts {
		if existing.Email == account.Email {
			return fmt.Errorf("insert account %s: %w", account.Email, repository.ErrDuplicate)
		}
	}

	s.accounts[account.ID] = account
	s.order = append(s.order, account.ID)
	return nil
}

func (s *AccountStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return models.Account{}, fmt.Errorf("find account %s: %w", id.Hex(), repository.ErrNotFound)
	}
	return account, nil
}

func (s *AccountStore) FindByEmail(_ context.Context, email string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, account := range s.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return models.Account{}, fmt.Errorf("find account %s: %w", email, repository.ErrNotFound)
}

func (s *AccountStore) ListByRole(_ context.Context, role models.Role) ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Account, 0, len(s.order))
	for _, id := range s.order {
		if account := s.accounts[id]; account.Role == role {
			out = append(out, account)
		}
	}
	return out, nil
}

func (s *AccountStore) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	accounts, err := s.ListByRole(ctx, role)
	return int64(len(accounts)), err
}

func (s *AccountStore) SetBlocked(_ context.Context, id primitive.ObjectID, blocked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return fmt.Errorf("block account %s: %w", id.Hex(), repository.ErrNotFound)
	}
	account.Blocked = blocked
	s.accounts[id] = account
	return nil
}

func (s *AccountStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[id]; !ok {
		return fmt.Errorf("delete account %s: %w", id.Hex(), repository.ErrNotFound)
	}
	delete(s.accounts, id)
	for i, candidate := range s.order {
		if candidate == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// SnapshotStore keeps dashboard snapshots in memory.
type SnapshotStore struct {
	mu        sync.RWMutex
	snapshots []models.DashboardSnapshot
}

// NewSnapshotStore creates an empty snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

func (s *SnapshotStore) SaveSnapshot(_ context.Context, snapshot models.DashboardSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = append(s.snapshots, snapshot)
	return nil
}

// LatestSnapshots returns up to limit snapshots, newest first.
func (s *SnapshotStore) LatestSnapshots(_ context.Context, limit int64) ([]models.DashboardSnapshot, error) {
	s.mu.RLock()
	out := append([]models.DashboardSnapshot(nil), s.snapshots...)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].TakenAt.After(out[j].TakenAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []models.DashboardSnapshot{}
	}
	return out, nil
}
