package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/brewhouse/internal/domain/apperr"
	"github.com/mamadbah2/brewhouse/internal/domain/models"
	"github.com/mamadbah2/brewhouse/internal/repository/memory"
)

func newTestService() *Service {
	store := memory.NewStore()
	svc := NewService(store, store, store, nil)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int { return &i }

func mead(name string) models.RecipeStyle {
	return models.RecipeStyle{
		Name:                    name,
		BeverageType:            models.BeverageMead,
		PrimaryFermentationDays: 14,
		ClarificationDays:       7,
		ConditioningDays:        30,
		TargetWaterVolume:       floatPtr(40),
	}
}

func TestCreateTank_Defaults(t *testing.T) {
	svc := newTestService()

	tank, err := svc.CreateTank(context.Background(), TankInput{Name: "  FV3 ", Temperature: 64})
	require.NoError(t, err)
	assert.False(t, tank.ID.IsZero())
	assert.Equal(t, "FV3", tank.Name)
	assert.Equal(t, models.TankActive, tank.Status)
	assert.Equal(t, models.ModeIdle, tank.Mode)
	assert.Equal(t, models.ValveClosed, tank.ValveStatus)

	_, err = svc.CreateTank(context.Background(), TankInput{Name: "FV4", Mode: "Boiling"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestRecordReading(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	tank, err := svc.CreateTank(ctx, TankInput{Name: "FV1", Temperature: 64})
	require.NoError(t, err)

	cooling := models.ModeCooling
	updated, err := svc.RecordReading(ctx, tank.ID, ReadingInput{Temperature: floatPtr(71.5), Mode: &cooling})
	require.NoError(t, err)
	assert.Equal(t, 71.5, updated.Temperature)
	assert.Equal(t, models.ModeCooling, updated.Mode)
	assert.Equal(t, models.ValveClosed, updated.ValveStatus)

	stored, err := svc.GetTank(ctx, tank.ID)
	require.NoError(t, err)
	assert.Equal(t, 71.5, stored.Temperature)

	bad := models.ValveStatus("Ajar")
	_, err = svc.RecordReading(ctx, tank.ID, ReadingInput{ValveStatus: &bad})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.RecordReading(ctx, primitive.NewObjectID(), ReadingInput{Temperature: floatPtr(1)})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestDeleteTank(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	tank, err := svc.CreateTank(ctx, TankInput{Name: "BT1"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTank(ctx, tank.ID))
	err = svc.DeleteTank(ctx, tank.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestBrewStyle_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	tests := []struct {
		name  string
		edit  func(*models.RecipeStyle)
		field string
	}{
		{name: "missing name", edit: func(r *models.RecipeStyle) { r.Name = "" }, field: "name"},
		{name: "unknown beverage", edit: func(r *models.RecipeStyle) { r.BeverageType = "sake" }, field: "beverageType"},
		{name: "negative days", edit: func(r *models.RecipeStyle) { r.SecondaryFermentationDays = intPtr(-1) }, field: "secondaryFermentationDays"},
		{name: "mead without water", edit: func(r *models.RecipeStyle) { r.TargetWaterVolume = nil }, field: "targetWaterVolume"},
		{name: "beer without sparge", edit: func(r *models.RecipeStyle) {
			r.BeverageType = models.BeverageBeer
			r.MashVolume = floatPtr(30)
		}, field: "spargeVolume"},
		{name: "zero volume", edit: func(r *models.RecipeStyle) { r.TargetWaterVolume = floatPtr(0) }, field: "expectedVolume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := mead("Orange Blossom")
			tt.edit(&style)

			_, err := svc.CreateBrewStyle(ctx, style)
			require.Error(t, err)

			var appErr *apperr.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperr.KindValidation, appErr.Kind)
			assert.Equal(t, tt.field, appErr.Field)
		})
	}
}

func TestBrewStyle_UniqueName(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	first, err := svc.CreateBrewStyle(ctx, mead("Traditional Mead"))
	require.NoError(t, err)
	second, err := svc.CreateBrewStyle(ctx, mead("Melomel"))
	require.NoError(t, err)

	_, err = svc.CreateBrewStyle(ctx, mead("Traditional Mead"))
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	_, err = svc.UpdateBrewStyle(ctx, second.ID, mead("Traditional Mead"))
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	renamed := mead("Traditional Mead")
	renamed.ConditioningDays = 60
	updated, err := svc.UpdateBrewStyle(ctx, first.ID, renamed)
	require.NoError(t, err)
	assert.Equal(t, first.CreatedAt, updated.CreatedAt)
	assert.Equal(t, 60, updated.ConditioningDays)

	list, err := svc.ListBrewStyles(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestSystemStatus(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	status, err := svc.SystemStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSystemStatus(), status)

	_, err = svc.UpdateSystemStatus(ctx, models.SystemStatus{ChillerStatus: "Broken", HeaterStatus: models.EquipmentOn, SystemMode: models.ModeIdle})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	saved, err := svc.UpdateSystemStatus(ctx, models.SystemStatus{
		ChillerStatus: models.EquipmentOn,
		HeaterStatus:  models.EquipmentOff,
		SystemMode:    models.ModeCooling,
	})
	require.NoError(t, err)
	assert.False(t, saved.UpdatedAt.IsZero())

	status, err = svc.SystemStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ModeCooling, status.SystemMode)
	assert.Equal(t, models.EquipmentOn, status.ChillerStatus)
}
