package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransitionType is the direction of an alarm state change.
type TransitionType string

const (
	TransitionTriggered TransitionType = "triggered"
	TransitionCleared   TransitionType = "cleared"
)

// Event names on the live stream. Status snapshots are sent without a name.
const (
	EventConnected   = "connected"
	EventHeartbeat   = "heartbeat"
	EventAlarmUpdate = "alarm-update"
	EventSnapshot    = ""
)

// AlarmEvent is published when an alarm flips between active and inactive.
type AlarmEvent struct {
	EventID        string             `json:"eventId"`
	AlarmID        primitive.ObjectID `json:"alarmId"`
	Name           string             `json:"name"`
	Type           AlarmType          `json:"type"`
	TankID         primitive.ObjectID `json:"tankId"`
	TankName       string             `json:"tankName"`
	Temperature    float64            `json:"temperature"`
	Threshold      *float64           `json:"threshold,omitempty"`
	Timestamp      time.Time          `json:"timestamp"`
	TransitionType TransitionType     `json:"transitionType"`
}

// TankReading is the per-tank part of a status snapshot.
type TankReading struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Temperature float64            `json:"temperature"`
	Status      TankStatus         `json:"status"`
	Mode        Mode               `json:"mode"`
	ValveStatus ValveStatus        `json:"valveStatus"`
}

// StatusSnapshot is pushed to stream clients after every evaluation tick.
type StatusSnapshot struct {
	System       SystemStatus  `json:"system"`
	Tanks        []TankReading `json:"tanks"`
	ActiveAlarms int           `json:"activeAlarms"`
	Timestamp    time.Time     `json:"timestamp"`
}
