// Package memory implements the repository contracts in process memory. It backs
// STORE_DRIVER=memory for local runs and the service tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/repository"
)

// Collection is a goroutine-safe record store keeping insertion order.
type Collection[T models.Record] struct {
	mu       sync.RWMutex
	name     string
	order    []primitive.ObjectID
	docs     map[primitive.ObjectID]T
	conflict func(a, b T) bool
}

// NewCollection creates an empty collection. conflict, when set, plays the role of a unique index.
func NewCollection[T models.Record](name string, conflict func(a, b T) bool) *Collection[T] {
	return &Collection[T]{
		name:     name,
		docs:     make(map[primitive.ObjectID]T),
		conflict: conflict,
	}
}

func (c *Collection[T]) Insert(_ context.Context, record T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.docs[record.RecordID()]; exists {
		return fmt.Errorf("insert into %s: %w", c.name, repository.ErrDuplicate)
	}
	if c.violates(record) {
		return fmt.Errorf("insert into %s: %w", c.name, repository.ErrDuplicate)
	}

	c.docs[record.RecordID()] = record
	c.order = append(c.order, record.RecordID())
	return nil
}

func (c *Collection[T]) FindByID(_ context.Context, id primitive.ObjectID) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	record, ok := c.docs[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("find %s %s: %w", c.name, id.Hex(), repository.ErrNotFound)
	}
	return record, nil
}

func (c *Collection[T]) ListAll(_ context.Context) ([]T, error) {
	return c.filter(func(T) bool { return true }), nil
}

func (c *Collection[T]) ListByOwner(_ context.Context, owner primitive.ObjectID) ([]T, error) {
	return c.filter(func(record T) bool { return record.Owner() == owner }), nil
}

func (c *Collection[T]) Replace(_ context.Context, record T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.docs[record.RecordID()]; !ok {
		return fmt.Errorf("replace %s %s: %w", c.name, record.RecordID().Hex(), repository.ErrNotFound)
	}
	if c.violates(record) {
		return fmt.Errorf("replace %s %s: %w", c.name, record.RecordID().Hex(), repository.ErrDuplicate)
	}

	c.docs[record.RecordID()] = record
	return nil
}

func (c *Collection[T]) Delete(_ context.Context, id primitive.ObjectID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.docs[id]; !ok {
		return fmt.Errorf("delete %s %s: %w", c.name, id.Hex(), repository.ErrNotFound)
	}
	c.remove(id)
	return nil
}

func (c *Collection[T]) DeleteByOwner(_ context.Context, owner primitive.ObjectID) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var deleted int64
	for _, id := range append([]primitive.ObjectID(nil), c.order...) {
		if c.docs[id].Owner() == owner {
			c.remove(id)
			deleted++
		}
	}
	return deleted, nil
}

func (c *Collection[T]) Count(_ context.Context) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int64(len(c.docs)), nil
}

func (c *Collection[T]) filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		if record := c.docs[id]; keep(record) {
			out = append(out, record)
		}
	}
	return out
}

// violates must be called with the lock held.
func (c *Collection[T]) violates(record T) bool {
	if c.conflict == nil {
		return false
	}
	for id, existing := range c.docs {
		if id != record.RecordID() && c.conflict(existing, record) {
			return true
		}
	}
	return false
}

// remove must be called with the write lock held.
func (c *Collection[T]) remove(id primitive.ObjectID) {
	delete(c.docs, id)
	for i, candidate := range c.order {
		if candidate == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
