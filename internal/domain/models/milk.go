package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MilkRecord is one milk production entry, in liters.
type MilkRecord struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	FarmerID primitive.ObjectID `bson:"farmerId" json:"farmerId"`
	Quantity float64            `bson:"quantity" json:"quantity"`
	Date     time.Time          `bson:"date" json:"date"`
	Notes    string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

func (r MilkRecord) RecordID() primitive.ObjectID { return r.ID }
func (r MilkRecord) Owner() primitive.ObjectID    { return r.FarmerID }

// MilkInput is the create payload for milk records.
type MilkInput struct {
	Quantity *Number `json:"quantity" binding:"required,gte=0"`
	Date     *Date   `json:"date"`
	Notes    string  `json:"notes"`
}

// Build creates the record for owner. The date defaults to now.
func (in MilkInput) Build(owner primitive.ObjectID, now time.Time) MilkRecord {
	record := MilkRecord{
		ID:       primitive.NewObjectID(),
		FarmerID: owner,
		Date:     now,
		Notes:    in.Notes,
	}
	if in.Quantity != nil {
		record.Quantity = in.Quantity.Float64()
	}
	if in.Date != nil && !in.Date.IsZero() {
		record.Date = in.Date.Time
	}
	return record
}

// MilkPatch is the partial update payload for milk records.
type MilkPatch struct {
	Quantity Optional[Number] `json:"quantity"`
	Date     Optional[Date]   `json:"date"`
	Notes    Optional[string] `json:"notes"`
}

func (p MilkPatch) Validate() error {
	if err := requireNumber("quantity", p.Quantity); err != nil {
		return err
	}
	return requireValue("date", p.Date)
}

func (p MilkPatch) Apply(r *MilkRecord) {
	if p.Quantity.Present() {
		r.Quantity = p.Quantity.Value.Float64()
	}
	if p.Date.Present() {
		r.Date = p.Date.Value.Time
	}
	applyText(p.Notes, &r.Notes)
}
