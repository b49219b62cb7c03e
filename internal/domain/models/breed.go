package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BreedRecord is a cattle breed kept on a farm. A farmer registers each breed name once.
type BreedRecord struct {
	ID                primitive.ObjectID `bson:"_id" json:"_id"`
	FarmerID          primitive.ObjectID `bson:"farmerId" json:"farmerId"`
	BreedName         string             `bson:"breedName" json:"breedName"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	Origin            string             `bson:"origin,omitempty" json:"origin,omitempty"`
	Characteristics   string             `bson:"characteristics,omitempty" json:"characteristics,omitempty"`
	AvgMilkProduction float64            `bson:"avgMilkProduction" json:"avgMilkProduction"`
	AvgWeight         float64            `bson:"avgWeight" json:"avgWeight"`
	DateAdded         time.Time          `bson:"dateAdded" json:"dateAdded"`
}

func (r BreedRecord) RecordID() primitive.ObjectID { return r.ID }
func (r BreedRecord) Owner() primitive.ObjectID    { return r.FarmerID }

// BreedInput is the create payload for breeds. The web form sends the breed name as "name".
type BreedInput struct {
	Name              string  `json:"name" binding:"required_without=BreedName"`
	BreedName         string  `json:"breedName"`
	Description       string  `json:"description"`
	Origin            string  `json:"origin"`
	Characteristics   string  `json:"characteristics"`
	AvgMilkProduction *Number `json:"avgMilkProduction" binding:"omitempty,gte=0"`
	AvgWeight         *Number `json:"avgWeight" binding:"omitempty,gte=0"`
}

func (in BreedInput) name() string {
	if in.Name != "" {
		return in.Name
	}
	return in.BreedName
}

// Validate rejects a breed name made only of whitespace.
func (in BreedInput) Validate() error {
	if strings.TrimSpace(in.name()) == "" {
		return required("name")
	}
	return nil
}

// Build creates the record for owner.
func (in BreedInput) Build(owner primitive.ObjectID, now time.Time) BreedRecord {
	record := BreedRecord{
		ID:              primitive.NewObjectID(),
		FarmerID:        owner,
		BreedName:       strings.TrimSpace(in.name()),
		Description:     in.Description,
		Origin:          in.Origin,
		Characteristics: in.Characteristics,
		DateAdded:       now,
	}
	if in.AvgMilkProduction != nil {
		record.AvgMilkProduction = in.AvgMilkProduction.Float64()
	}
	if in.AvgWeight != nil {
		record.AvgWeight = in.AvgWeight.Float64()
	}
	return record
}

// BreedPatch is the partial update payload for breeds.
type BreedPatch struct {
	BreedName         Optional[string] `json:"breedName"`
	Description       Optional[string] `json:"description"`
	Origin            Optional[string] `json:"origin"`
	Characteristics   Optional[string] `json:"characteristics"`
	AvgMilkProduction Optional[Number] `json:"avgMilkProduction"`
	AvgWeight         Optional[Number] `json:"avgWeight"`
}

func (p BreedPatch) Validate() error {
	if err := requireText("breedName", p.BreedName); err != nil {
		return err
	}
	if err := requireNumber("avgMilkProduction", p.AvgMilkProduction); err != nil {
		return err
	}
	return requireNumber("avgWeight", p.AvgWeight)
}

func (p BreedPatch) Apply(r *BreedRecord) {
	if p.BreedName.Present() {
		r.BreedName = strings.TrimSpace(p.BreedName.Value)
	}
	applyText(p.Description, &r.Description)
	applyText(p.Origin, &r.Origin)
	applyText(p.Characteristics, &r.Characteristics)
	if p.AvgMilkProduction.Present() {
		r.AvgMilkProduction = p.AvgMilkProduction.Value.Float64()
	}
	if p.AvgWeight.Present() {
		r.AvgWeight = p.AvgWeight.Value.Float64()
	}
}
