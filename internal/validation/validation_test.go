package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dairy/internal/apperr"
	"github.com/mamadbah2/dairy/internal/domain/models"
)

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(models.RegisterInput{Name: "Ama", Email: "a@x.com", Password: "pw", FarmName: "Green"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "location is required", apperr.Message(err))
}

func TestStructAcceptsZeroQuantity(t *testing.T) {
	zero := models.Number(0)
	assert.NoError(t, Struct(models.MilkInput{Quantity: &zero}))
}

func TestStructRejectsMissingAndNegative(t *testing.T) {
	err := Struct(models.MilkInput{})
	assert.Equal(t, "quantity is required", apperr.Message(err))

	negative := models.Number(-2)
	err = Struct(models.MilkInput{Quantity: &negative})
	assert.Equal(t, "quantity must be greater than or equal to 0", apperr.Message(err))
}

func TestStructEnumsAndAlternatives(t *testing.T) {
	qty := models.Number(5)
	date := &models.Date{}

	err := Struct(models.FeedInput{Name: "Hay", Type: "straw", Quantity: &qty, Cost: &qty, PurchaseDate: date})
	assert.Equal(t, "type must be one of [roughage concentrate supplement mineral]", apperr.Message(err))

	assert.NoError(t, Struct(models.BreedInput{BreedName: "Jersey"}))
	assert.Equal(t, "name is required", apperr.Message(Struct(models.BreedInput{})))

	err = Struct(models.HealthInput{AnimalID: "C-1", Issue: "fever", Date: date, Status: "healed"})
	assert.Error(t, err)
	assert.NoError(t, Struct(models.HealthInput{AnimalID: "C-1", Issue: "fever", Date: date, Status: models.HealthInProgress}))
}

func TestGinValidatorSkipsNonStructs(t *testing.T) {
	v := GinValidator()
	assert.NoError(t, v.ValidateStruct(nil))
	assert.NoError(t, v.ValidateStruct([]int{1}))
	assert.Error(t, v.ValidateStruct(&models.LoginInput{}))
	assert.NotNil(t, v.Engine())
}
