package records

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/dairy/internal/apperr"
	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/repository/memory"
)

var (
	alice = models.Identity{ID: primitive.NewObjectID(), Role: models.RoleFarmer}
	bob   = models.Identity{ID: primitive.NewObjectID(), Role: models.RoleFarmer}
	admin = models.Identity{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
)

func number(v float64) *models.Number {
	n := models.Number(v)
	return &n
}

func milk(qty float64) models.MilkInput {
	return models.MilkInput{Quantity: number(qty)}
}

func TestCreateStampsOwner(t *testing.T) {
	svc := NewMilkService(memory.NewMilkStore(), nil)

	record, err := svc.Create(context.Background(), alice, milk(12.5))
	require.NoError(t, err)

	assert.Equal(t, alice.ID, record.FarmerID)
	assert.Equal(t, 12.5, record.Quantity)
	assert.False(t, record.Date.IsZero())
	assert.False(t, record.ID.IsZero())
}

func TestCreateValidates(t *testing.T) {
	svc := NewMilkService(memory.NewMilkStore(), nil)

	_, err := svc.Create(context.Background(), alice, models.MilkInput{})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "quantity is required", apperr.Message(err))

	_, err = svc.Create(context.Background(), alice, milk(-1))
	require.Error(t, err)
	assert.Equal(t, "quantity must be greater than or equal to 0", apperr.Message(err))
}

func TestListScopesByOwner(t *testing.T) {
	ctx := context.Background()
	svc := NewMilkService(memory.NewMilkStore(), nil)

	empty, err := svc.List(ctx, alice)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = svc.Create(ctx, alice, milk(3.5))
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob, milk(2))
	require.NoError(t, err)

	mine, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 3.5, mine[0].Quantity)

	all, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewMilkService(memory.NewMilkStore(), nil)

	record, err := svc.Create(ctx, alice, models.MilkInput{Quantity: number(10), Notes: "morning"})
	require.NoError(t, err)
	id := record.ID.Hex()

	t.Run("owner can set quantity to zero", func(t *testing.T) {
		updated, err := svc.Update(ctx, alice, id, models.MilkPatch{Quantity: models.Some(models.Number(0))})
		require.NoError(t, err)
		assert.Zero(t, updated.Quantity)
		assert.Equal(t, "morning", updated.Notes)
	})

	t.Run("other farmer is forbidden", func(t *testing.T) {
		_, err := svc.Update(ctx, bob, id, models.MilkPatch{Quantity: models.Some(models.Number(1))})
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})

	t.Run("admin may update any record", func(t *testing.T) {
		updated, err := svc.Update(ctx, admin, id, models.MilkPatch{Notes: models.Some("checked")})
		require.NoError(t, err)
		assert.Equal(t, "checked", updated.Notes)
		assert.Equal(t, alice.ID, updated.FarmerID)
	})

	t.Run("unknown and malformed ids", func(t *testing.T) {
		for _, bad := range []string{primitive.NewObjectID().Hex(), "not-an-id"} {
			_, err := svc.Update(ctx, alice, bad, models.MilkPatch{})
			assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
			assert.Equal(t, "Milk record not found", apperr.Message(err))
		}
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		_, err := svc.Update(ctx, alice, id, models.MilkPatch{Quantity: models.Some(models.Number(-4))})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewHealthService(memory.NewCollection[models.HealthRecord]("health", nil), nil)

	date := models.Date{}
	record, err := svc.Create(ctx, alice, models.HealthInput{AnimalID: "C-12", Issue: "Mastitis", Date: &date})
	require.NoError(t, err)
	assert.Equal(t, models.HealthPending, record.Status)

	err = svc.Delete(ctx, bob, record.ID.Hex())
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	require.NoError(t, svc.Delete(ctx, alice, record.ID.Hex()))

	err = svc.Delete(ctx, alice, record.ID.Hex())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "Health record not found", apperr.Message(err))
}

func TestBreedUniquePerFarmer(t *testing.T) {
	ctx := context.Background()
	svc := NewBreedService(memory.NewBreedStore(), nil)

	first, err := svc.Create(ctx, alice, models.BreedInput{Name: " Friesian "})
	require.NoError(t, err)
	assert.Equal(t, "Friesian", first.BreedName)

	_, err = svc.Create(ctx, alice, models.BreedInput{BreedName: "Friesian"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, "This breed already exists for your farm", apperr.Message(err))

	_, err = svc.Create(ctx, bob, models.BreedInput{Name: "Friesian"})
	require.NoError(t, err)

	second, err := svc.Create(ctx, alice, models.BreedInput{Name: "Jersey"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, alice, second.ID.Hex(), models.BreedPatch{BreedName: models.Some("Friesian")})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	renamed, err := svc.Update(ctx, alice, first.ID.Hex(), models.BreedPatch{BreedName: models.Some("Friesian"), Origin: models.Some("Netherlands")})
	require.NoError(t, err)
	assert.Equal(t, "Netherlands", renamed.Origin)
}

func TestBreedRejectsBlankName(t *testing.T) {
	ctx := context.Background()
	svc := NewBreedService(memory.NewBreedStore(), nil)

	_, err := svc.Create(ctx, alice, models.BreedInput{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "name is required", apperr.Message(err))

	_, err = svc.Create(ctx, alice, models.BreedInput{BreedName: "\t"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	record, err := svc.Create(ctx, alice, models.BreedInput{Name: "Ayrshire"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, alice, record.ID.Hex(), models.BreedPatch{BreedName: models.Some("  ")})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "breedName is required", apperr.Message(err))
}

func TestFeedDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewFeedService(memory.NewCollection[models.FeedRecord]("feeds", nil), nil)

	purchased := models.Date{}
	record, err := svc.Create(ctx, alice, models.FeedInput{
		Name:         "Hay",
		Type:         models.FeedType("roughage"),
		Quantity:     number(100),
		PurchaseDate: &purchased,
		Cost:         number(0),
	})
	require.NoError(t, err)
	assert.Equal(t, "kg", record.Unit)
	assert.Zero(t, record.Cost)

	_, err = svc.Create(ctx, alice, models.FeedInput{
		Name:         "Hay",
		Type:         models.FeedType("pellets"),
		Quantity:     number(1),
		PurchaseDate: &purchased,
		Cost:         number(1),
	})
	assert.Equal(t, "type must be one of [roughage concentrate supplement mineral]", apperr.Message(err))
}
