package records

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/apperr"
	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/repository"
)

const msgDuplicateBreed = "This breed already exists for your farm"

type (
	MilkService   = Service[models.MilkRecord, models.MilkInput, models.MilkPatch]
	FeedService   = Service[models.FeedRecord, models.FeedInput, models.FeedPatch]
	BreedService  = Service[models.BreedRecord, models.BreedInput, models.BreedPatch]
	HealthService = Service[models.HealthRecord, models.HealthInput, models.HealthPatch]
)

func NewMilkService(store repository.MilkStore, logger *zap.Logger) *MilkService {
	return NewService[models.MilkRecord, models.MilkInput, models.MilkPatch](store, "Milk record", nil, logger)
}

func NewFeedService(store repository.RecordStore[models.FeedRecord], logger *zap.Logger) *FeedService {
	return NewService[models.FeedRecord, models.FeedInput, models.FeedPatch](store, "Feed", nil, logger)
}

// NewBreedService rejects a second breed with the same name on one farm.
func NewBreedService(store repository.BreedStore, logger *zap.Logger) *BreedService {
	svc := NewService[models.BreedRecord, models.BreedInput, models.BreedPatch](store, "Breed", uniqueBreed(store), logger)
	svc.conflict = msgDuplicateBreed
	return svc
}

func NewHealthService(store repository.RecordStore[models.HealthRecord], logger *zap.Logger) *HealthService {
	return NewService[models.HealthRecord, models.HealthInput, models.HealthPatch](store, "Health record", nil, logger)
}

func uniqueBreed(store repository.BreedStore) Guard[models.BreedRecord] {
	return func(ctx context.Context, record models.BreedRecord) error {
		existing, err := store.FindByOwnerAndName(ctx, record.FarmerID, record.BreedName)
		switch {
		case err == nil && existing.ID != record.ID:
			return apperr.Conflict(msgDuplicateBreed)
		case err == nil, errors.Is(err, repository.ErrNotFound):
			return nil
		default:
			return apperr.Internal("lookup breed", err)
		}
	}
}
