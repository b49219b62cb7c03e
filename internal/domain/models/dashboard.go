package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dashboard aggregates counts across every farm.
type Dashboard struct {
	TotalFarmers int64   `bson:"totalFarmers" json:"totalFarmers"`
	TotalMilk    float64 `bson:"totalMilk" json:"totalMilk"`
	TotalBreeds  int64   `bson:"totalBreeds" json:"totalBreeds"`
	TotalFeeds   int64   `bson:"totalFeeds" json:"totalFeeds"`
	TotalHealth  int64   `bson:"totalHealth" json:"totalHealth"`
}

// DashboardSnapshot is a dashboard persisted at a point in time.
type DashboardSnapshot struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	TakenAt   time.Time          `bson:"takenAt" json:"takenAt"`
	Dashboard `bson:",inline"`
}

// Row renders the snapshot as a spreadsheet row.
func (s DashboardSnapshot) Row() []interface{} {
	return []interface{}{
		s.TakenAt.Format(time.RFC3339),
		s.TotalFarmers,
		s.TotalMilk,
		s.TotalBreeds,
		s.TotalFeeds,
		s.TotalHealth,
	}
}
