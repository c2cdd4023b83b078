package alarms

import (
	"errors"
	"fmt"

	"github.com/mamadbah2/brewhouse/internal/domain/models"
)

var (
	// ErrMissingThreshold is returned for temperature alarms without a threshold.
	ErrMissingThreshold = errors.New("alarm has no threshold")
	// ErrStatusUnavailable is returned for system error alarms when the system status
	// could not be loaded.
	ErrStatusUnavailable = errors.New("system status unavailable")
)

// Condition evaluates whether alarm should be active for the given tank and system state.
func Condition(alarm models.Alarm, tank models.Tank, status *models.SystemStatus) (bool, error) {
	switch alarm.Type {
	case models.AlarmHighTemperature:
		if alarm.Threshold == nil {
			return false, ErrMissingThreshold
		}
		return tank.Temperature > *alarm.Threshold, nil
	case models.AlarmLowTemperature:
		if alarm.Threshold == nil {
			return false, ErrMissingThreshold
		}
		return tank.Temperature < *alarm.Threshold, nil
	case models.AlarmSystemError:
		if status == nil {
			return false, ErrStatusUnavailable
		}
		return systemError(tank, *status), nil
	default:
		return false, fmt.Errorf("unknown alarm type %q", alarm.Type)
	}
}

// systemError flags a tank asking for cooling or heating the plant cannot provide.
func systemError(tank models.Tank, status models.SystemStatus) bool {
	switch {
	case status.ChillerStatus == models.EquipmentOff && tank.Mode == models.ModeCooling:
		return true
	case status.HeaterStatus == models.EquipmentOff && tank.Mode == models.ModeHeating:
		return true
	case tank.Mode != models.ModeIdle && status.SystemMode == models.ModeIdle:
		return true
	}
	return false
}
