package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduleStatus is the lifecycle state of a production run.
type ScheduleStatus string

const (
	SchedulePlanned    ScheduleStatus = "planned"
	ScheduleInProgress ScheduleStatus = "in-progress"
	ScheduleCompleted  ScheduleStatus = "completed"
	ScheduleCancelled  ScheduleStatus = "cancelled"
)

// Valid reports whether s is a known schedule status.
func (s ScheduleStatus) Valid() bool {
	switch s {
	case SchedulePlanned, ScheduleInProgress, ScheduleCompleted, ScheduleCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status change is allowed.
func (s ScheduleStatus) Terminal() bool {
	return s == ScheduleCompleted || s == ScheduleCancelled
}

// ProductionSchedule reserves a tank for one batch of a brew style.
// EndDate, ExpectedVolume and BatchNumber are derived from the brew style.
type ProductionSchedule struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TankID         primitive.ObjectID `bson:"tankId" json:"tankId"`
	BrewStyle      string             `bson:"brewStyle" json:"brewStyle"`
	BatchNumber    string             `bson:"batchNumber" json:"batchNumber"`
	Status         ScheduleStatus     `bson:"status" json:"status"`
	StartDate      time.Time          `bson:"startDate" json:"startDate"`
	EndDate        time.Time          `bson:"endDate" json:"endDate"`
	ExpectedVolume float64            `bson:"expectedVolume" json:"expectedVolume"`
	ActualVolume   *float64           `bson:"actualVolume,omitempty" json:"actualVolume,omitempty"`
	Notes          string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ScheduleFilter narrows production schedule listings. Zero values match everything.
type ScheduleFilter struct {
	TankID primitive.ObjectID
	Status ScheduleStatus
	From   time.Time
	To     time.Time
}
