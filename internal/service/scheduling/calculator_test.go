package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/brewhouse/internal/domain/apperr"
	"github.com/mamadbah2/brewhouse/internal/domain/models"
)

func intPtr(i int) *int { return &i }

func floatPtr(f float64) *float64 { return &f }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func meadRecipe() models.RecipeStyle {
	return models.RecipeStyle{
		Name:                    "Traditional Mead",
		BeverageType:            models.BeverageMead,
		PrimaryFermentationDays: 10,
		ClarificationDays:       5,
		ConditioningDays:        3,
		TargetWaterVolume:       floatPtr(40),
	}
}

func TestCalculate_EndDateWithoutSecondary(t *testing.T) {
	derived, err := Calculate(meadRecipe(), date(2024, 1, 1))
	require.NoError(t, err)

	assert.Equal(t, date(2024, 1, 19), derived.EndDate)
	assert.Equal(t, 40.0, derived.ExpectedVolume)
	assert.Equal(t, "Traditional Mead 240101", derived.BatchNumber)
}

func TestCalculate_SecondaryFermentationAddsDays(t *testing.T) {
	recipe := meadRecipe()
	recipe.SecondaryFermentationDays = intPtr(7)

	derived, err := Calculate(recipe, date(2024, 2, 25))
	require.NoError(t, err)

	// 25 days across the leap day.
	assert.Equal(t, date(2024, 3, 21), derived.EndDate)
}

func TestCalculate_IgnoresClockAndZone(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*3600)
	start := time.Date(2024, 1, 1, 23, 30, 0, 0, loc)

	derived, err := Calculate(meadRecipe(), start)
	require.NoError(t, err)

	assert.Equal(t, date(2024, 1, 1), derived.StartDate)
	assert.Equal(t, date(2024, 1, 19), derived.EndDate)
	assert.Equal(t, "Traditional Mead 240101", derived.BatchNumber)
}

func TestCalculate_RequiresStartDate(t *testing.T) {
	_, err := Calculate(meadRecipe(), time.Time{})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestExpectedVolume(t *testing.T) {
	tests := []struct {
		name    string
		recipe  models.RecipeStyle
		want    float64
		wantErr string
	}{
		{
			name:   "mead uses target water volume",
			recipe: models.RecipeStyle{BeverageType: models.BeverageMead, TargetWaterVolume: floatPtr(12.5)},
			want:   12.5,
		},
		{
			name:   "cider uses total juice volume",
			recipe: models.RecipeStyle{BeverageType: models.BeverageCider, TotalJuiceVolume: floatPtr(55)},
			want:   55,
		},
		{
			name:   "beer adds mash and sparge",
			recipe: models.RecipeStyle{BeverageType: models.BeverageBeer, MashVolume: floatPtr(8), SpargeVolume: floatPtr(6.5)},
			want:   14.5,
		},
		{
			name:    "beer without sparge",
			recipe:  models.RecipeStyle{BeverageType: models.BeverageBeer, MashVolume: floatPtr(8)},
			wantErr: "spargeVolume",
		},
		{
			name:    "cider without juice",
			recipe:  models.RecipeStyle{BeverageType: models.BeverageCider, TargetWaterVolume: floatPtr(8)},
			wantErr: "totalJuiceVolume",
		},
		{
			name:    "unknown beverage",
			recipe:  models.RecipeStyle{BeverageType: "kombucha", TotalJuiceVolume: floatPtr(8)},
			wantErr: "beverageType",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpectedVolume(tt.recipe)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, apperr.Is(err, apperr.KindValidation))
				var appErr *apperr.Error
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantErr, appErr.Field)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestBatchNumber(t *testing.T) {
	assert.Equal(t, "Dry Cider 241231", BatchNumber("Dry Cider", date(2024, 12, 31)))
	assert.Equal(t, "IPA 050607", BatchNumber("IPA", date(2005, 6, 7)))
}
