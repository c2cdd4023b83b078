package scheduling

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/brewhouse/internal/domain/models"
)

// Overlaps reports whether [s1, e1] and [s2, e2] intersect. Boundaries are inclusive:
// a run ending on the day another starts overlaps it.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !e1.Before(s2)
}

// FindConflict returns the first schedule in existing that blocks a reservation of
// tankID over [start, end]. Cancelled schedules and the schedule with id excludeID
// never block.
func FindConflict(tankID primitive.ObjectID, start, end time.Time, excludeID primitive.ObjectID, existing []models.ProductionSchedule) (models.ProductionSchedule, bool) {
	for _, other := range existing {
		if other.TankID != tankID || other.Status == models.ScheduleCancelled {
			continue
		}
		if !excludeID.IsZero() && other.ID == excludeID {
			continue
		}
		if Overlaps(start, end, other.StartDate, other.EndDate) {
			return other, true
		}
	}
	return models.ProductionSchedule{}, false
}

// HasConflict is FindConflict without the offending schedule.
func HasConflict(tankID primitive.ObjectID, start, end time.Time, excludeID primitive.ObjectID, existing []models.ProductionSchedule) bool {
	_, found := FindConflict(tankID, start, end, excludeID, existing)
	return found
}
