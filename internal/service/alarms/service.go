package alarms

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

// AlarmInput is the writable part of an alarm definition.
type AlarmInput struct {
	Name      string
	Type      models.AlarmType
	Threshold *float64
	TankID    primitive.ObjectID
}

// Service manages alarm definitions. The active flag is never written here.
type Service struct {
	alarms repository.AlarmStore
	tanks  repository.TankStore
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires the alarm CRUD service.
func NewService(alarms repository.AlarmStore, tanks repository.TankStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{alarms: alarms, tanks: tanks, logger: logger, now: time.Now}
}

// Create validates and stores a new, inactive alarm.
func (s *Service) Create(ctx context.Context, in AlarmInput) (models.Alarm, error) {
	if err := s.validate(ctx, &in); err != nil {
		return models.Alarm{}, err
	}

	now := s.now().UTC()
	alarm := models.Alarm{
		Name:      in.Name,
		Type:      in.Type,
		Threshold: in.Threshold,
		TankID:    in.TankID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.alarms.CreateAlarm(ctx, &alarm); err != nil {
		return models.Alarm{}, fmt.Errorf("create alarm: %w", err)
	}

	s.logger.Info("alarm created", zap.String("alarm_id", alarm.ID.Hex()), zap.String("type", string(alarm.Type)))
	return alarm, nil
}

// Update replaces the alarm definition. The active flag is left to the evaluator.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, in AlarmInput) (models.Alarm, error) {
	alarm, err := s.Get(ctx, id)
	if err != nil {
		return models.Alarm{}, err
	}
	if err := s.validate(ctx, &in); err != nil {
		return models.Alarm{}, err
	}

	alarm.Name = in.Name
	alarm.Type = in.Type
	alarm.Threshold = in.Threshold
	alarm.TankID = in.TankID
	alarm.UpdatedAt = s.now().UTC()

	if err := s.alarms.UpdateAlarm(ctx, alarm); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Alarm{}, apperr.NotFound("id", "alarm %s not found", id.Hex())
		}
		return models.Alarm{}, fmt.Errorf("update alarm: %w", err)
	}
	// reload so the response carries the evaluator's current flag
	return s.Get(ctx, id)
}

// Get loads one alarm.
func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (models.Alarm, error) {
	alarm, err := s.alarms.GetAlarm(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Alarm{}, apperr.NotFound("id", "alarm %s not found", id.Hex())
	}
	if err != nil {
		return models.Alarm{}, fmt.Errorf("load alarm: %w", err)
	}
	return alarm, nil
}

// List returns every alarm.
func (s *Service) List(ctx context.Context) ([]models.Alarm, error) {
	list, err := s.alarms.ListAlarms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list alarms: %w", err)
	}
	return list, nil
}

// Delete removes an alarm.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.alarms.DeleteAlarm(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("id", "alarm %s not found", id.Hex())
	}
	if err != nil {
		return fmt.Errorf("delete alarm: %w", err)
	}
	return nil
}

func (s *Service) validate(ctx context.Context, in *AlarmInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apperr.Validation("name", "name is required")
	}
	if !in.Type.Valid() {
		return apperr.Validation("type", "unknown alarm type %q", in.Type)
	}
	if in.Type.NeedsThreshold() && in.Threshold == nil {
		return apperr.Validation("threshold", "threshold is required for %s alarms", in.Type)
	}
	if in.TankID.IsZero() {
		return apperr.Validation("tankId", "tank is required")
	}

	_, err := s.tanks.GetTank(ctx, in.TankID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("tankId", "tank %s not found", in.TankID.Hex())
	}
	if err != nil {
		return fmt.Errorf("load tank: %w", err)
	}
	return nil
}
