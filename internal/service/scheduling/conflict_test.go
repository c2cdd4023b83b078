package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/brewhouse/internal/domain/models"
)

func TestOverlaps_InclusiveAndSymmetric(t *testing.T) {
	a1, a2 := date(2024, 1, 1), date(2024, 1, 10)
	b1, b2 := date(2024, 1, 10), date(2024, 1, 20)

	assert.True(t, Overlaps(a1, a2, b1, b2))
	assert.True(t, Overlaps(b1, b2, a1, a2))

	c1, c2 := date(2024, 1, 11), date(2024, 1, 20)
	assert.False(t, Overlaps(a1, a2, c1, c2))
	assert.False(t, Overlaps(c1, c2, a1, a2))

	// containment
	assert.True(t, Overlaps(date(2024, 1, 3), date(2024, 1, 4), a1, a2))
}

func TestFindConflict(t *testing.T) {
	tank := primitive.NewObjectID()
	existing := []models.ProductionSchedule{
		{ID: primitive.NewObjectID(), TankID: tank, BatchNumber: "A", Status: models.SchedulePlanned, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 10)},
	}

	t.Run("boundary day conflicts", func(t *testing.T) {
		other, found := FindConflict(tank, date(2024, 1, 10), date(2024, 1, 20), primitive.NilObjectID, existing)
		assert.True(t, found)
		assert.Equal(t, "A", other.BatchNumber)
	})

	t.Run("cancelled schedule does not block", func(t *testing.T) {
		cancelled := []models.ProductionSchedule{existing[0]}
		cancelled[0].Status = models.ScheduleCancelled
		assert.False(t, HasConflict(tank, date(2024, 1, 10), date(2024, 1, 20), primitive.NilObjectID, cancelled))
	})

	t.Run("own record is excluded", func(t *testing.T) {
		assert.False(t, HasConflict(tank, date(2024, 1, 2), date(2024, 1, 12), existing[0].ID, existing))
	})

	t.Run("other tank does not block", func(t *testing.T) {
		assert.False(t, HasConflict(primitive.NewObjectID(), date(2024, 1, 1), date(2024, 1, 10), primitive.NilObjectID, existing))
	})
}
