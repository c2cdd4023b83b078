package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/brewhouse/internal/domain/models"
	"github.com/mamadbah2/brewhouse/internal/repository"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStore_CreateScheduleRejectsDuplicateBatch(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	first := &models.ProductionSchedule{TankID: primitive.NewObjectID(), BatchNumber: "Stout 240101"}
	require.NoError(t, s.CreateSchedule(ctx, first))
	assert.False(t, first.ID.IsZero())

	second := &models.ProductionSchedule{TankID: primitive.NewObjectID(), BatchNumber: "Stout 240101"}
	err := s.CreateSchedule(ctx, second)
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	stored, err := s.GetSchedule(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.TankID, stored.TankID)
}

func TestStore_FindOverlapping(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	tank := primitive.NewObjectID()

	require.NoError(t, s.CreateSchedule(ctx, &models.ProductionSchedule{
		TankID: tank, BatchNumber: "A", Status: models.SchedulePlanned,
		StartDate: day(2024, 1, 1), EndDate: day(2024, 1, 10),
	}))
	require.NoError(t, s.CreateSchedule(ctx, &models.ProductionSchedule{
		TankID: tank, BatchNumber: "B", Status: models.ScheduleCancelled,
		StartDate: day(2024, 1, 5), EndDate: day(2024, 1, 8),
	}))
	require.NoError(t, s.CreateSchedule(ctx, &models.ProductionSchedule{
		TankID: primitive.NewObjectID(), BatchNumber: "C", Status: models.SchedulePlanned,
		StartDate: day(2024, 1, 1), EndDate: day(2024, 1, 30),
	}))

	found, err := s.FindOverlapping(ctx, tank, day(2024, 1, 10), day(2024, 1, 20))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "A", found[0].BatchNumber)

	found, err = s.FindOverlapping(ctx, tank, day(2024, 1, 11), day(2024, 1, 20))
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestStore_RecipeNameUnique(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.CreateRecipe(ctx, &models.RecipeStyle{Name: "Cyser"}))
	assert.ErrorIs(t, s.CreateRecipe(ctx, &models.RecipeStyle{Name: "Cyser"}), repository.ErrDuplicateKey)

	got, err := s.GetRecipeByName(ctx, "Cyser")
	require.NoError(t, err)
	assert.Equal(t, "Cyser", got.Name)

	_, err = s.GetRecipeByName(ctx, "Perry")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_SystemStatus(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, err := s.GetSystemStatus(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	want := models.SystemStatus{ChillerStatus: models.EquipmentOn, HeaterStatus: models.EquipmentOff, SystemMode: models.ModeCooling}
	require.NoError(t, s.SaveSystemStatus(ctx, want))

	got, err := s.GetSystemStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_SetAlarmActive(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	alarm := &models.Alarm{Name: "FV1 high", Type: models.AlarmHighTemperature}
	require.NoError(t, s.CreateAlarm(ctx, alarm))

	at := time.Now().UTC()
	require.NoError(t, s.SetAlarmActive(ctx, alarm.ID, true, at))

	got, err := s.GetAlarm(ctx, alarm.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)
	assert.Equal(t, at, got.UpdatedAt)

	assert.ErrorIs(t, s.SetAlarmActive(ctx, primitive.NewObjectID(), true, at), repository.ErrNotFound)
}

func TestStore_UpdateAlarmKeepsActive(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	alarm := &models.Alarm{Name: "FV1 high", Type: models.AlarmHighTemperature}
	require.NoError(t, s.CreateAlarm(ctx, alarm))
	require.NoError(t, s.SetAlarmActive(ctx, alarm.ID, true, time.Now().UTC()))

	edit := *alarm
	edit.Name = "FV1 very high"
	edit.Active = false
	require.NoError(t, s.UpdateAlarm(ctx, edit))

	got, err := s.GetAlarm(ctx, alarm.ID)
	require.NoError(t, err)
	assert.Equal(t, "FV1 very high", got.Name)
	assert.True(t, got.Active)
}
