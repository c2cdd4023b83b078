package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AlarmType enumerates the supported alarm conditions.
type AlarmType string

const (
	AlarmHighTemperature AlarmType = "High Temperature"
	AlarmLowTemperature  AlarmType = "Low Temperature"
	AlarmSystemError     AlarmType = "System Error"
)

// Valid reports whether t is a known alarm type.
func (t AlarmType) Valid() bool {
	switch t {
	case AlarmHighTemperature, AlarmLowTemperature, AlarmSystemError:
		return true
	}
	return false
}

// NeedsThreshold reports whether alarms of this type compare against a threshold.
func (t AlarmType) NeedsThreshold() bool {
	return t == AlarmHighTemperature || t == AlarmLowTemperature
}

// Alarm is a configured condition watched by the alarm evaluator.
// Active is owned by the evaluator.
type Alarm struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Type      AlarmType          `bson:"type" json:"type"`
	Threshold *float64           `bson:"threshold,omitempty" json:"threshold,omitempty"`
	TankID    primitive.ObjectID `bson:"tankId" json:"tankId"`
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
