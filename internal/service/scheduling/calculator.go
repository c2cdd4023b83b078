package scheduling

import (
	"fmt"
	"time"

	"github.com/mamadbah2/brewhouse/internal/domain/apperr"
	"github.com/mamadbah2/brewhouse/internal/domain/models"
)

const batchDateLayout = "060102" // yyMMdd

// Derived holds the fields computed from a brew style and a start date.
type Derived struct {
	StartDate      time.Time
	EndDate        time.Time
	ExpectedVolume float64
	BatchNumber    string
}

// Calculate derives the end date, expected volume and batch number of a run of recipe
// starting on start.
func Calculate(recipe models.RecipeStyle, start time.Time) (Derived, error) {
	if start.IsZero() {
		return Derived{}, apperr.Validation("startDate", "start date is required")
	}

	days := TotalDays(recipe)
	if days < 0 {
		return Derived{}, apperr.Validation("brewStyle", "brew style %q has a negative duration", recipe.Name)
	}

	volume, err := ExpectedVolume(recipe)
	if err != nil {
		return Derived{}, err
	}

	startDay := NormalizeDay(start)
	return Derived{
		StartDate:      startDay,
		EndDate:        startDay.AddDate(0, 0, days),
		ExpectedVolume: volume,
		BatchNumber:    BatchNumber(recipe.Name, startDay),
	}, nil
}

// TotalDays is primary + secondary (when set) + clarification + conditioning days.
func TotalDays(recipe models.RecipeStyle) int {
	total := recipe.PrimaryFermentationDays + recipe.ClarificationDays + recipe.ConditioningDays
	if recipe.SecondaryFermentationDays != nil {
		total += *recipe.SecondaryFermentationDays
	}
	return total
}

// ExpectedVolume picks the output volume for the recipe's beverage type.
func ExpectedVolume(recipe models.RecipeStyle) (float64, error) {
	switch recipe.BeverageType {
	case models.BeverageMead:
		if recipe.TargetWaterVolume == nil {
			return 0, missingVolume(recipe, "targetWaterVolume")
		}
		return *recipe.TargetWaterVolume, nil
	case models.BeverageCider:
		if recipe.TotalJuiceVolume == nil {
			return 0, missingVolume(recipe, "totalJuiceVolume")
		}
		return *recipe.TotalJuiceVolume, nil
	case models.BeverageBeer:
		if recipe.MashVolume == nil {
			return 0, missingVolume(recipe, "mashVolume")
		}
		if recipe.SpargeVolume == nil {
			return 0, missingVolume(recipe, "spargeVolume")
		}
		return *recipe.MashVolume + *recipe.SpargeVolume, nil
	default:
		return 0, apperr.Validation("beverageType", "brew style %q has unrecognized beverage type %q", recipe.Name, recipe.BeverageType)
	}
}

// BatchNumber formats "<recipe name> <yyMMdd>".
func BatchNumber(recipeName string, start time.Time) string {
	return fmt.Sprintf("%s %s", recipeName, NormalizeDay(start).Format(batchDateLayout))
}

// NormalizeDay keeps the calendar date of t as written and drops the clock and zone.
func NormalizeDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func missingVolume(recipe models.RecipeStyle, field string) error {
	return apperr.Validation(field, "brew style %q (%s) is missing %s", recipe.Name, recipe.BeverageType, field)
}
