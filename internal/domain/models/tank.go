package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TankStatus describes whether a tank is in service.
type TankStatus string

const (
	TankActive      TankStatus = "Active"
	TankInactive    TankStatus = "Inactive"
	TankMaintenance TankStatus = "Maintenance"
)

// Valid reports whether s is a known tank status.
func (s TankStatus) Valid() bool {
	switch s {
	case TankActive, TankInactive, TankMaintenance:
		return true
	}
	return false
}

// Mode is the thermal mode of a tank or of the whole system.
type Mode string

const (
	ModeCooling Mode = "Cooling"
	ModeHeating Mode = "Heating"
	ModeIdle    Mode = "Idle"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeCooling, ModeHeating, ModeIdle:
		return true
	}
	return false
}

// ValveStatus is the glycol valve position of a tank.
type ValveStatus string

const (
	ValveOpen   ValveStatus = "Open"
	ValveClosed ValveStatus = "Closed"
)

// Valid reports whether v is a known valve status.
func (v ValveStatus) Valid() bool {
	return v == ValveOpen || v == ValveClosed
}

// Tank is a fermentation or conditioning vessel.
type Tank struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Temperature float64            `bson:"temperature" json:"temperature"` // °F
	Status      TankStatus         `bson:"status" json:"status"`
	Mode        Mode               `bson:"mode" json:"mode"`
	ValveStatus ValveStatus        `bson:"valveStatus" json:"valveStatus"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
