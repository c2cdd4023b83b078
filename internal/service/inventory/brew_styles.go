package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/brewhouse/internal/domain/apperr"
	"github.com/mamadbah2/brewhouse/internal/domain/models"
	"github.com/mamadbah2/brewhouse/internal/repository"
	"github.com/mamadbah2/brewhouse/internal/service/scheduling"
)

// CreateBrewStyle validates and stores a brew style. Names are unique.
func (s *Service) CreateBrewStyle(ctx context.Context, style models.RecipeStyle) (models.RecipeStyle, error) {
	if err := validateBrewStyle(&style); err != nil {
		return models.RecipeStyle{}, err
	}

	now := s.now().UTC()
	style.ID = primitive.NilObjectID
	style.CreatedAt = now
	style.UpdatedAt = now

	if err := s.recipes.CreateRecipe(ctx, &style); err != nil {
		return models.RecipeStyle{}, translateRecipeWrite(err, style)
	}

	s.logger.Info("brew style created",
		zap.String("brew_style_id", style.ID.Hex()),
		zap.String("brew_style", style.Name),
		zap.Int("total_days", scheduling.TotalDays(style)))
	return style, nil
}

// UpdateBrewStyle replaces the brew style id. Existing schedules keep the dates and
// volume computed when they were planned.
func (s *Service) UpdateBrewStyle(ctx context.Context, id primitive.ObjectID, style models.RecipeStyle) (models.RecipeStyle, error) {
	existing, err := s.GetBrewStyle(ctx, id)
	if err != nil {
		return models.RecipeStyle{}, err
	}
	if err := validateBrewStyle(&style); err != nil {
		return models.RecipeStyle{}, err
	}

	style.ID = existing.ID
	style.CreatedAt = existing.CreatedAt
	style.UpdatedAt = s.now().UTC()

	if err := s.recipes.UpdateRecipe(ctx, style); err != nil {
		return models.RecipeStyle{}, translateRecipeWrite(err, style)
	}
	return style, nil
}

// GetBrewStyle loads one brew style.
func (s *Service) GetBrewStyle(ctx context.Context, id primitive.ObjectID) (models.RecipeStyle, error) {
	style, err := s.recipes.GetRecipe(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.RecipeStyle{}, apperr.NotFound("id", "brew style %s not found", id.Hex())
	}
	if err != nil {
		return models.RecipeStyle{}, fmt.Errorf("load brew style: %w", err)
	}
	return style, nil
}

// ListBrewStyles returns every brew style.
func (s *Service) ListBrewStyles(ctx context.Context) ([]models.RecipeStyle, error) {
	list, err := s.recipes.ListRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list brew styles: %w", err)
	}
	return list, nil
}

// DeleteBrewStyle removes a brew style. Schedules that used it are left alone.
func (s *Service) DeleteBrewStyle(ctx context.Context, id primitive.ObjectID) error {
	err := s.recipes.DeleteRecipe(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("id", "brew style %s not found", id.Hex())
	}
	if err != nil {
		return fmt.Errorf("delete brew style: %w", err)
	}
	return nil
}

func validateBrewStyle(style *models.RecipeStyle) error {
	style.Name = strings.TrimSpace(style.Name)
	if style.Name == "" {
		return apperr.Validation("name", "name is required")
	}
	if !style.BeverageType.Valid() {
		return apperr.Validation("beverageType", "unknown beverage type %q", style.BeverageType)
	}

	secondary := 0
	if style.SecondaryFermentationDays != nil {
		secondary = *style.SecondaryFermentationDays
	}
	days := []struct {
		field string
		n     int
	}{
		{"primaryFermentationDays", style.PrimaryFermentationDays},
		{"secondaryFermentationDays", secondary},
		{"clarificationDays", style.ClarificationDays},
		{"conditioningDays", style.ConditioningDays},
	}
	for _, d := range days {
		if d.n < 0 {
			return apperr.Validation(d.field, "%s must not be negative", d.field)
		}
	}

	volume, err := scheduling.ExpectedVolume(*style)
	if err != nil {
		return err
	}
	if volume <= 0 {
		return apperr.Validation("expectedVolume", "brew style must produce a positive volume")
	}
	return nil
}

func translateRecipeWrite(err error, style models.RecipeStyle) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateKey):
		return apperr.Conflict("brew style %q already exists", style.Name).Wrap(err)
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("id", "brew style %s not found", style.ID.Hex())
	default:
		return fmt.Errorf("save brew style: %w", err)
	}
}
