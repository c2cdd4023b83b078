package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/brewhouse/internal/domain/apperr"
	"github.com/mamadbah2/brewhouse/internal/domain/models"
	"github.com/mamadbah2/brewhouse/internal/repository"
)

// MaxActualVolumeRatio bounds the recorded actual volume relative to the expected one.
const MaxActualVolumeRatio = 1.10

// ProductionLog receives completed batches. Implementations must be safe to call from
// request goroutines.
type ProductionLog interface {
	RecordCompletedBatch(ctx context.Context, schedule models.ProductionSchedule, tank models.Tank) error
}

// CreateInput is a new production run request.
type CreateInput struct {
	TankID       primitive.ObjectID
	BrewStyle    string
	StartDate    time.Time
	Status       models.ScheduleStatus
	ActualVolume *float64
	Notes        string
}

// UpdateInput carries the fields to change. Nil fields are left untouched.
type UpdateInput struct {
	TankID       *primitive.ObjectID
	BrewStyle    *string
	StartDate    *time.Time
	Status       *models.ScheduleStatus
	ActualVolume *float64
	Notes        *string
}

// ConflictQuery describes a tank reservation to probe. When EndDate is nil it is
// derived from BrewStyle.
type ConflictQuery struct {
	TankID    primitive.ObjectID
	BrewStyle string
	StartDate time.Time
	EndDate   *time.Time
	ExcludeID primitive.ObjectID
}

// Service owns production schedules.
type Service struct {
	schedules repository.ScheduleStore
	recipes   repository.RecipeStore
	tanks     repository.TankStore
	log       ProductionLog
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a scheduling service. productionLog may be nil.
func NewService(schedules repository.ScheduleStore, recipes repository.RecipeStore, tanks repository.TankStore, productionLog ProductionLog, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		schedules: schedules,
		recipes:   recipes,
		tanks:     tanks,
		log:       productionLog,
		logger:    logger,
		now:       time.Now,
	}
}

// Create derives the computed fields, guards against tank conflicts and persists the run.
func (s *Service) Create(ctx context.Context, in CreateInput) (models.ProductionSchedule, error) {
	if in.TankID.IsZero() {
		return models.ProductionSchedule{}, apperr.Validation("tankId", "tank is required")
	}
	brewStyle := strings.TrimSpace(in.BrewStyle)
	if brewStyle == "" {
		return models.ProductionSchedule{}, apperr.Validation("brewStyle", "brew style is required")
	}

	status := in.Status
	if status == "" {
		status = models.SchedulePlanned
	}
	if !status.Valid() {
		return models.ProductionSchedule{}, apperr.Validation("status", "unknown status %q", status)
	}

	tank, err := s.loadTank(ctx, in.TankID)
	if err != nil {
		return models.ProductionSchedule{}, err
	}

	recipe, err := s.loadRecipe(ctx, brewStyle)
	if err != nil {
		return models.ProductionSchedule{}, err
	}

	derived, err := Calculate(recipe, in.StartDate)
	if err != nil {
		return models.ProductionSchedule{}, err
	}

	now := s.now().UTC()
	schedule := models.ProductionSchedule{
		TankID:       in.TankID,
		BrewStyle:    recipe.Name,
		Status:       status,
		ActualVolume: in.ActualVolume,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	applyDerived(&schedule, derived)

	if err := validateActualVolume(schedule); err != nil {
		return models.ProductionSchedule{}, err
	}

	if err := s.guardConflict(ctx, schedule); err != nil {
		return models.ProductionSchedule{}, err
	}

	if err := s.schedules.CreateSchedule(ctx, &schedule); err != nil {
		return models.ProductionSchedule{}, s.translateWrite(err, schedule)
	}

	s.logger.Info("production schedule created",
		zap.String("schedule_id", schedule.ID.Hex()),
		zap.String("batch", schedule.BatchNumber),
		zap.String("tank", tank.Name),
		zap.Time("start", schedule.StartDate),
		zap.Time("end", schedule.EndDate))

	if schedule.Status == models.ScheduleCompleted {
		s.recordCompletion(ctx, schedule, tank)
	}

	return schedule, nil
}

// Update applies in to the schedule id. Derived fields are recomputed only when the
// start date or the brew style changes.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, in UpdateInput) (models.ProductionSchedule, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return models.ProductionSchedule{}, err
	}

	updated := existing

	if in.Status != nil && *in.Status != existing.Status {
		if !in.Status.Valid() {
			return models.ProductionSchedule{}, apperr.Validation("status", "unknown status %q", *in.Status)
		}
		if existing.Status.Terminal() {
			return models.ProductionSchedule{}, apperr.Validation("status", "schedule is %s and can no longer change status", existing.Status)
		}
		updated.Status = *in.Status
	}

	if in.TankID != nil && *in.TankID != existing.TankID {
		if in.TankID.IsZero() {
			return models.ProductionSchedule{}, apperr.Validation("tankId", "tank is required")
		}
		updated.TankID = *in.TankID
	}

	tank, err := s.loadTank(ctx, updated.TankID)
	if err != nil {
		return models.ProductionSchedule{}, err
	}

	recompute := false
	if in.BrewStyle != nil {
		brewStyle := strings.TrimSpace(*in.BrewStyle)
		if brewStyle == "" {
			return models.ProductionSchedule{}, apperr.Validation("brewStyle", "brew style is required")
		}
		if brewStyle != existing.BrewStyle {
			updated.BrewStyle = brewStyle
			recompute = true
		}
	}
	start := existing.StartDate
	if in.StartDate != nil && !NormalizeDay(*in.StartDate).Equal(NormalizeDay(existing.StartDate)) {
		start = *in.StartDate
		recompute = true
	}

	if recompute {
		recipe, err := s.loadRecipe(ctx, updated.BrewStyle)
		if err != nil {
			return models.ProductionSchedule{}, err
		}
		derived, err := Calculate(recipe, start)
		if err != nil {
			return models.ProductionSchedule{}, err
		}
		applyDerived(&updated, derived)
	}

	if in.ActualVolume != nil {
		updated.ActualVolume = in.ActualVolume
	}
	if in.Notes != nil {
		updated.Notes = *in.Notes
	}

	if err := validateActualVolume(updated); err != nil {
		return models.ProductionSchedule{}, err
	}

	if err := s.guardConflict(ctx, updated); err != nil {
		return models.ProductionSchedule{}, err
	}

	updated.UpdatedAt = s.now().UTC()
	if err := s.schedules.UpdateSchedule(ctx, updated); err != nil {
		return models.ProductionSchedule{}, s.translateWrite(err, updated)
	}

	s.logger.Info("production schedule updated",
		zap.String("schedule_id", updated.ID.Hex()),
		zap.String("batch", updated.BatchNumber),
		zap.String("status", string(updated.Status)),
		zap.Bool("recomputed", recompute))

	if updated.Status == models.ScheduleCompleted && existing.Status != models.ScheduleCompleted {
		s.recordCompletion(ctx, updated, tank)
	}

	return updated, nil
}

// Get loads a production schedule.
func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (models.ProductionSchedule, error) {
	schedule, err := s.schedules.GetSchedule(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.ProductionSchedule{}, apperr.NotFound("id", "production schedule %s not found", id.Hex())
	}
	if err != nil {
		return models.ProductionSchedule{}, fmt.Errorf("load production schedule: %w", err)
	}
	return schedule, nil
}

// List returns the schedules matching filter ordered by start date.
func (s *Service) List(ctx context.Context, filter models.ScheduleFilter) ([]models.ProductionSchedule, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperr.Validation("status", "unknown status %q", filter.Status)
	}
	list, err := s.schedules.ListSchedules(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list production schedules: %w", err)
	}
	return list, nil
}

// Delete removes a production schedule.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.schedules.DeleteSchedule(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("id", "production schedule %s not found", id.Hex())
	}
	if err != nil {
		return fmt.Errorf("delete production schedule: %w", err)
	}
	s.logger.Info("production schedule deleted", zap.String("schedule_id", id.Hex()))
	return nil
}

// CheckConflict reports whether the reservation in q would collide with a stored,
// non-cancelled schedule of the same tank. It never writes.
func (s *Service) CheckConflict(ctx context.Context, q ConflictQuery) (bool, error) {
	if q.TankID.IsZero() {
		return false, apperr.Validation("tankId", "tank is required")
	}
	if q.StartDate.IsZero() {
		return false, apperr.Validation("startDate", "start date is required")
	}

	start := NormalizeDay(q.StartDate)
	var end time.Time
	switch {
	case q.EndDate != nil:
		end = NormalizeDay(*q.EndDate)
	case strings.TrimSpace(q.BrewStyle) != "":
		recipe, err := s.loadRecipe(ctx, strings.TrimSpace(q.BrewStyle))
		if err != nil {
			return false, err
		}
		end = start.AddDate(0, 0, TotalDays(recipe))
	default:
		return false, apperr.Validation("endDate", "end date or brew style is required")
	}

	if end.Before(start) {
		return false, apperr.Validation("endDate", "end date precedes start date")
	}

	existing, err := s.schedules.FindOverlapping(ctx, q.TankID, start, end)
	if err != nil {
		return false, fmt.Errorf("load tank schedules: %w", err)
	}

	return HasConflict(q.TankID, start, end, q.ExcludeID, existing), nil
}

func (s *Service) guardConflict(ctx context.Context, schedule models.ProductionSchedule) error {
	if schedule.Status == models.ScheduleCancelled {
		return nil
	}

	existing, err := s.schedules.FindOverlapping(ctx, schedule.TankID, schedule.StartDate, schedule.EndDate)
	if err != nil {
		return fmt.Errorf("load tank schedules: %w", err)
	}

	other, found := FindConflict(schedule.TankID, schedule.StartDate, schedule.EndDate, schedule.ID, existing)
	if !found {
		return nil
	}

	s.logger.Debug("schedule conflict",
		zap.String("batch", schedule.BatchNumber),
		zap.String("conflicts_with", other.BatchNumber))

	return apperr.Conflict("tank is already booked by batch %q from %s to %s",
		other.BatchNumber, other.StartDate.Format(time.DateOnly), other.EndDate.Format(time.DateOnly))
}

func (s *Service) loadTank(ctx context.Context, id primitive.ObjectID) (models.Tank, error) {
	tank, err := s.tanks.GetTank(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Tank{}, apperr.NotFound("tankId", "tank %s not found", id.Hex())
	}
	if err != nil {
		return models.Tank{}, fmt.Errorf("load tank: %w", err)
	}
	return tank, nil
}

func (s *Service) loadRecipe(ctx context.Context, name string) (models.RecipeStyle, error) {
	recipe, err := s.recipes.GetRecipeByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return models.RecipeStyle{}, apperr.NotFound("brewStyle", "brew style %q not found", name)
	}
	if err != nil {
		return models.RecipeStyle{}, fmt.Errorf("load brew style: %w", err)
	}
	return recipe, nil
}

func (s *Service) translateWrite(err error, schedule models.ProductionSchedule) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateKey):
		return apperr.DuplicateBatch("batchNumber", "batch %q already exists", schedule.BatchNumber).Wrap(err)
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("id", "production schedule %s not found", schedule.ID.Hex())
	default:
		return fmt.Errorf("save production schedule: %w", err)
	}
}

func (s *Service) recordCompletion(ctx context.Context, schedule models.ProductionSchedule, tank models.Tank) {
	if s.log == nil {
		return
	}
	if err := s.log.RecordCompletedBatch(ctx, schedule, tank); err != nil {
		s.logger.Warn("failed to record completed batch", zap.String("batch", schedule.BatchNumber), zap.Error(err))
	}
}

func applyDerived(schedule *models.ProductionSchedule, d Derived) {
	schedule.StartDate = d.StartDate
	schedule.EndDate = d.EndDate
	schedule.ExpectedVolume = d.ExpectedVolume
	schedule.BatchNumber = d.BatchNumber
}

func validateActualVolume(schedule models.ProductionSchedule) error {
	if schedule.ActualVolume == nil {
		return nil
	}
	actual := *schedule.ActualVolume
	if actual < 0 {
		return apperr.Validation("actualVolume", "actual volume must not be negative")
	}
	if limit := schedule.ExpectedVolume * MaxActualVolumeRatio; actual > limit {
		return apperr.Validation("actualVolume", "actual volume %.2f exceeds 110%% of expected volume %.2f", actual, schedule.ExpectedVolume)
	}
	return nil
}
