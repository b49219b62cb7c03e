package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedType classifies feed stock.
type FeedType string

const (
	FeedRoughage    FeedType = "roughage"
	FeedConcentrate FeedType = "concentrate"
	FeedSupplement  FeedType = "supplement"
	FeedMineral     FeedType = "mineral"
)

const defaultFeedUnit = "kg"

// Valid reports whether t is a known feed type.
func (t FeedType) Valid() bool {
	switch t {
	case FeedRoughage, FeedConcentrate, FeedSupplement, FeedMineral:
		return true
	}
	return false
}

// FeedRecord is one feed stock purchase.
type FeedRecord struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	FarmerID     primitive.ObjectID `bson:"farmerId" json:"farmerId"`
	Name         string             `bson:"name" json:"name"`
	Type         FeedType           `bson:"type" json:"type"`
	Quantity     float64            `bson:"quantity" json:"quantity"`
	Unit         string             `bson:"unit" json:"unit"`
	PurchaseDate time.Time          `bson:"purchaseDate" json:"purchaseDate"`
	Cost         float64            `bson:"cost" json:"cost"`
	Supplier     string             `bson:"supplier,omitempty" json:"supplier,omitempty"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	DateAdded    time.Time          `bson:"dateAdded" json:"dateAdded"`
}

func (r FeedRecord) RecordID() primitive.ObjectID { return r.ID }
func (r FeedRecord) Owner() primitive.ObjectID    { return r.FarmerID }

// FeedInput is the create payload for feed records.
type FeedInput struct {
	Name         string   `json:"name" binding:"required"`
	Type         FeedType `json:"type" binding:"required,oneof=roughage concentrate supplement mineral"`
	Quantity     *Number  `json:"quantity" binding:"required,gte=0"`
	Unit         string   `json:"unit"`
	PurchaseDate *Date    `json:"purchaseDate" binding:"required"`
	Cost         *Number  `json:"cost" binding:"required,gte=0"`
	Supplier     string   `json:"supplier"`
	Notes        string   `json:"notes"`
}

// Build creates the record for owner. The unit defaults to kg.
func (in FeedInput) Build(owner primitive.ObjectID, now time.Time) FeedRecord {
	record := FeedRecord{
		ID:        primitive.NewObjectID(),
		FarmerID:  owner,
		Name:      in.Name,
		Type:      in.Type,
		Unit:      in.Unit,
		Supplier:  in.Supplier,
		Notes:     in.Notes,
		DateAdded: now,
	}
	if record.Unit == "" {
		record.Unit = defaultFeedUnit
	}
	if in.Quantity != nil {
		record.Quantity = in.Quantity.Float64()
	}
	if in.Cost != nil {
		record.Cost = in.Cost.Float64()
	}
	if in.PurchaseDate != nil {
		record.PurchaseDate = in.PurchaseDate.Time
	}
	return record
}

// FeedPatch is the partial update payload for feed records.
type FeedPatch struct {
	Name         Optional[string]   `json:"name"`
	Type         Optional[FeedType] `json:"type"`
	Quantity     Optional[Number]   `json:"quantity"`
	Unit         Optional[string]   `json:"unit"`
	PurchaseDate Optional[Date]     `json:"purchaseDate"`
	Cost         Optional[Number]   `json:"cost"`
	Supplier     Optional[string]   `json:"supplier"`
	Notes        Optional[string]   `json:"notes"`
}

func (p FeedPatch) Validate() error {
	if err := requireText("name", p.Name); err != nil {
		return err
	}
	if err := requireValue("type", p.Type); err != nil {
		return err
	}
	if p.Type.Present() && !p.Type.Value.Valid() {
		return fieldError{field: "type", reason: fmt.Sprintf("must be one of [%s %s %s %s]", FeedRoughage, FeedConcentrate, FeedSupplement, FeedMineral)}
	}
	if err := requireNumber("quantity", p.Quantity); err != nil {
		return err
	}
	if err := requireText("unit", p.Unit); err != nil {
		return err
	}
	if err := requireValue("purchaseDate", p.PurchaseDate); err != nil {
		return err
	}
	return requireNumber("cost", p.Cost)
}

func (p FeedPatch) Apply(r *FeedRecord) {
	p.Name.ApplyTo(&r.Name)
	p.Type.ApplyTo(&r.Type)
	if p.Quantity.Present() {
		r.Quantity = p.Quantity.Value.Float64()
	}
	p.Unit.ApplyTo(&r.Unit)
	if p.PurchaseDate.Present() {
		r.PurchaseDate = p.PurchaseDate.Value.Time
	}
	if p.Cost.Present() {
		r.Cost = p.Cost.Value.Float64()
	}
	applyText(p.Supplier, &r.Supplier)
	applyText(p.Notes, &r.Notes)
}
