// Package records implements the owner-scoped CRUD workflow shared by milk,
// feed, breed and health records.
package records

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/apperr"
	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/repository"
	"github.com/mamadbah2/dairy/internal/validation"
)

// Creator is a validated create payload that builds a record for its owner.
type Creator[T models.Record] interface {
	Build(owner primitive.ObjectID, now time.Time) T
}

// Patcher is a partial update payload.
type Patcher[T models.Record] interface {
	Validate() error
	Apply(record *T)
}

// Guard runs before a record is inserted or replaced.
type Guard[T models.Record] func(ctx context.Context, record T) error

// Service exposes create/list/update/delete for one record kind.
// Farmers only see their own records; admins see everything.
type Service[T models.Record, C Creator[T], P Patcher[T]] struct {
	store    repository.RecordStore[T]
	kind     string
	conflict string
	guard    Guard[T]
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a records service. kind is the human-readable name used in messages.
func NewService[T models.Record, C Creator[T], P Patcher[T]](store repository.RecordStore[T], kind string, guard Guard[T], logger *zap.Logger) *Service[T, C, P] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service[T, C, P]{
		store:    store,
		kind:     kind,
		conflict: kind + " already exists",
		guard:    guard,
		logger:   logger,
		now:      time.Now,
	}
}

// Kind returns the human-readable record name, e.g. "Milk record".
func (s *Service[T, C, P]) Kind() string { return s.kind }

// Create validates in and stores a record owned by the caller.
func (s *Service[T, C, P]) Create(ctx context.Context, who models.Identity, in C) (T, error) {
	var zero T
	if err := validation.Struct(in); err != nil {
		return zero, err
	}
	if v, ok := any(in).(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return zero, apperr.Validation(err.Error())
		}
	}

	record := in.Build(who.ID, s.now().UTC())
	if err := s.check(ctx, record); err != nil {
		return zero, err
	}

	if err := s.store.Insert(ctx, record); err != nil {
		return zero, s.storeError("create", err)
	}

	s.logger.Debug("record created", zap.String("kind", s.kind), zap.String("id", record.RecordID().Hex()))
	return record, nil
}

// List returns every record visible to the caller.
func (s *Service[T, C, P]) List(ctx context.Context, who models.Identity) ([]T, error) {
	var (
		out []T
		err error
	)
	if who.IsAdmin() {
		out, err = s.store.ListAll(ctx)
	} else {
		out, err = s.store.ListByOwner(ctx, who.ID)
	}
	if err != nil {
		return nil, apperr.Internal("list "+s.kind, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Update applies patch to the record identified by id.
func (s *Service[T, C, P]) Update(ctx context.Context, who models.Identity, id string, patch P) (T, error) {
	var zero T
	if err := patch.Validate(); err != nil {
		return zero, apperr.Validation(err.Error())
	}

	record, err := s.load(ctx, who, id)
	if err != nil {
		return zero, err
	}

	patch.Apply(&record)
	if err := s.check(ctx, record); err != nil {
		return zero, err
	}

	if err := s.store.Replace(ctx, record); err != nil {
		return zero, s.storeError("update", err)
	}
	return record, nil
}

// Delete removes the record identified by id.
func (s *Service[T, C, P]) Delete(ctx context.Context, who models.Identity, id string) error {
	record, err := s.load(ctx, who, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, record.RecordID()); err != nil {
		return s.storeError("delete", err)
	}

	s.logger.Debug("record deleted", zap.String("kind", s.kind), zap.String("id", id))
	return nil
}

// load fetches the record and enforces ownership. Malformed ids read as unknown.
func (s *Service[T, C, P]) load(ctx context.Context, who models.Identity, id string) (T, error) {
	var zero T
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return zero, s.notFound()
	}

	record, err := s.store.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return zero, s.notFound()
		}
		return zero, apperr.Internal("load "+s.kind, err)
	}

	if !who.IsAdmin() && record.Owner() != who.ID {
		return zero, apperr.Forbidden("Forbidden")
	}
	return record, nil
}

func (s *Service[T, C, P]) check(ctx context.Context, record T) error {
	if s.guard == nil {
		return nil
	}
	return s.guard(ctx, record)
}

func (s *Service[T, C, P]) notFound() error {
	return apperr.NotFound(s.kind + " not found")
}

func (s *Service[T, C, P]) storeError(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return s.notFound()
	case errors.Is(err, repository.ErrDuplicate):
		return apperr.Conflict(s.conflict)
	default:
		return apperr.Internal(op+" "+s.kind, err)
	}
}
