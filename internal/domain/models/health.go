package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HealthStatus tracks the treatment state of a health event.
type HealthStatus string

const (
	HealthPending    HealthStatus = "pending"
	HealthInProgress HealthStatus = "in-progress"
	HealthResolved   HealthStatus = "resolved"
)

// Valid reports whether s is a known status.
func (s HealthStatus) Valid() bool {
	switch s {
	case HealthPending, HealthInProgress, HealthResolved:
		return true
	}
	return false
}

// HealthRecord is an animal health event.
type HealthRecord struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	FarmerID  primitive.ObjectID `bson:"farmerId" json:"farmerId"`
	AnimalID  string             `bson:"animalId" json:"animalId"`
	Issue     string             `bson:"issue" json:"issue"`
	Treatment string             `bson:"treatment,omitempty" json:"treatment,omitempty"`
	Date      time.Time          `bson:"date" json:"date"`
	Status    HealthStatus       `bson:"status" json:"status"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

func (r HealthRecord) RecordID() primitive.ObjectID { return r.ID }
func (r HealthRecord) Owner() primitive.ObjectID    { return r.FarmerID }

// HealthInput is the create payload for health records.
type HealthInput struct {
	AnimalID  string       `json:"animalId" binding:"required"`
	Issue     string       `json:"issue" binding:"required"`
	Treatment string       `json:"treatment"`
	Date      *Date        `json:"date" binding:"required"`
	Status    HealthStatus `json:"status" binding:"omitempty,oneof=pending in-progress resolved"`
	Notes     string       `json:"notes"`
}

// Build creates the record for owner. The status defaults to pending.
func (in HealthInput) Build(owner primitive.ObjectID, _ time.Time) HealthRecord {
	record := HealthRecord{
		ID:        primitive.NewObjectID(),
		FarmerID:  owner,
		AnimalID:  in.AnimalID,
		Issue:     in.Issue,
		Treatment: in.Treatment,
		Status:    in.Status,
		Notes:     in.Notes,
	}
	if record.Status == "" {
		record.Status = HealthPending
	}
	if in.Date != nil {
		record.Date = in.Date.Time
	}
	return record
}

// HealthPatch is the partial update payload for health records.
type HealthPatch struct {
	AnimalID  Optional[string]       `json:"animalId"`
	Issue     Optional[string]       `json:"issue"`
	Treatment Optional[string]       `json:"treatment"`
	Date      Optional[Date]         `json:"date"`
	Status    Optional[HealthStatus] `json:"status"`
	Notes     Optional[string]       `json:"notes"`
}

func (p HealthPatch) Validate() error {
	if err := requireText("animalId", p.AnimalID); err != nil {
		return err
	}
	if err := requireText("issue", p.Issue); err != nil {
		return err
	}
	if err := requireValue("date", p.Date); err != nil {
		return err
	}
	if err := requireValue("status", p.Status); err != nil {
		return err
	}
	if p.Status.Present() && !p.Status.Value.Valid() {
		return fieldError{field: "status", reason: fmt.Sprintf("must be one of [%s %s %s]", HealthPending, HealthInProgress, HealthResolved)}
	}
	return nil
}

func (p HealthPatch) Apply(r *HealthRecord) {
	p.AnimalID.ApplyTo(&r.AnimalID)
	p.Issue.ApplyTo(&r.Issue)
	applyText(p.Treatment, &r.Treatment)
	if p.Date.Present() {
		r.Date = p.Date.Value.Time
	}
	p.Status.ApplyTo(&r.Status)
	applyText(p.Notes, &r.Notes)
}
