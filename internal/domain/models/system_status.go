package models

import "time"

// EquipmentStatus is the power state of the chiller or heater.
type EquipmentStatus string

const (
	EquipmentOn  EquipmentStatus = "On"
	EquipmentOff EquipmentStatus = "Off"
)

// Valid reports whether s is a known equipment status.
func (s EquipmentStatus) Valid() bool {
	return s == EquipmentOn || s == EquipmentOff
}

// SystemStatus is the singleton plant state.
type SystemStatus struct {
	ChillerStatus EquipmentStatus `bson:"chillerStatus" json:"chillerStatus"`
	HeaterStatus  EquipmentStatus `bson:"heaterStatus" json:"heaterStatus"`
	SystemMode    Mode            `bson:"systemMode" json:"systemMode"`
	UpdatedAt     time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// DefaultSystemStatus is reported before an operator has written any status.
func DefaultSystemStatus() SystemStatus {
	return SystemStatus{
		ChillerStatus: EquipmentOff,
		HeaterStatus:  EquipmentOff,
		SystemMode:    ModeIdle,
	}
}
