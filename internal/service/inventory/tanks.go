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
)

// TankInput is the writable part of a tank.
type TankInput struct {
	Name        string
	Temperature float64
	Status      models.TankStatus
	Mode        models.Mode
	ValveStatus models.ValveStatus
}

// ReadingInput is a partial update pushed by the tank controllers. Nil fields are kept.
type ReadingInput struct {
	Temperature *float64
	Mode        *models.Mode
	ValveStatus *models.ValveStatus
}

// CreateTank validates and stores a tank. Names are unique.
func (s *Service) CreateTank(ctx context.Context, in TankInput) (models.Tank, error) {
	if err := normalizeTank(&in); err != nil {
		return models.Tank{}, err
	}

	now := s.now().UTC()
	tank := models.Tank{
		Name:        in.Name,
		Temperature: in.Temperature,
		Status:      in.Status,
		Mode:        in.Mode,
		ValveStatus: in.ValveStatus,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tanks.CreateTank(ctx, &tank); err != nil {
		return models.Tank{}, fmt.Errorf("create tank: %w", err)
	}

	s.logger.Info("tank created", zap.String("tank_id", tank.ID.Hex()), zap.String("tank", tank.Name))
	return tank, nil
}

// UpdateTank replaces the definition of tank id.
func (s *Service) UpdateTank(ctx context.Context, id primitive.ObjectID, in TankInput) (models.Tank, error) {
	tank, err := s.GetTank(ctx, id)
	if err != nil {
		return models.Tank{}, err
	}
	if err := normalizeTank(&in); err != nil {
		return models.Tank{}, err
	}

	tank.Name = in.Name
	tank.Temperature = in.Temperature
	tank.Status = in.Status
	tank.Mode = in.Mode
	tank.ValveStatus = in.ValveStatus
	return s.saveTank(ctx, tank)
}

// RecordReading applies a controller reading to the tank.
func (s *Service) RecordReading(ctx context.Context, id primitive.ObjectID, in ReadingInput) (models.Tank, error) {
	tank, err := s.GetTank(ctx, id)
	if err != nil {
		return models.Tank{}, err
	}

	if in.Temperature != nil {
		tank.Temperature = *in.Temperature
	}
	if in.Mode != nil {
		if !in.Mode.Valid() {
			return models.Tank{}, apperr.Validation("mode", "unknown mode %q", *in.Mode)
		}
		tank.Mode = *in.Mode
	}
	if in.ValveStatus != nil {
		if !in.ValveStatus.Valid() {
			return models.Tank{}, apperr.Validation("valveStatus", "unknown valve status %q", *in.ValveStatus)
		}
		tank.ValveStatus = *in.ValveStatus
	}

	tank, err = s.saveTank(ctx, tank)
	if err != nil {
		return models.Tank{}, err
	}
	s.logger.Debug("tank reading recorded",
		zap.String("tank", tank.Name),
		zap.Float64("temperature", tank.Temperature),
		zap.String("mode", string(tank.Mode)))
	return tank, nil
}

// GetTank loads one tank.
func (s *Service) GetTank(ctx context.Context, id primitive.ObjectID) (models.Tank, error) {
	tank, err := s.tanks.GetTank(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Tank{}, apperr.NotFound("id", "tank %s not found", id.Hex())
	}
	if err != nil {
		return models.Tank{}, fmt.Errorf("load tank: %w", err)
	}
	return tank, nil
}

// ListTanks returns every tank.
func (s *Service) ListTanks(ctx context.Context) ([]models.Tank, error) {
	list, err := s.tanks.ListTanks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tanks: %w", err)
	}
	return list, nil
}

// DeleteTank removes the tank. Alarms and schedules that still point at it are left
// alone; the evaluator reports such alarms on every pass.
func (s *Service) DeleteTank(ctx context.Context, id primitive.ObjectID) error {
	err := s.tanks.DeleteTank(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("id", "tank %s not found", id.Hex())
	}
	if err != nil {
		return fmt.Errorf("delete tank: %w", err)
	}
	s.logger.Info("tank deleted", zap.String("tank_id", id.Hex()))
	return nil
}

func (s *Service) saveTank(ctx context.Context, tank models.Tank) (models.Tank, error) {
	tank.UpdatedAt = s.now().UTC()
	err := s.tanks.UpdateTank(ctx, tank)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Tank{}, apperr.NotFound("id", "tank %s not found", tank.ID.Hex())
	}
	if err != nil {
		return models.Tank{}, fmt.Errorf("update tank: %w", err)
	}
	return tank, nil
}

func normalizeTank(in *TankInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apperr.Validation("name", "name is required")
	}
	if in.Status == "" {
		in.Status = models.TankActive
	}
	if in.Mode == "" {
		in.Mode = models.ModeIdle
	}
	if in.ValveStatus == "" {
		in.ValveStatus = models.ValveClosed
	}
	if !in.Status.Valid() {
		return apperr.Validation("status", "unknown tank status %q", in.Status)
	}
	if !in.Mode.Valid() {
		return apperr.Validation("mode", "unknown mode %q", in.Mode)
	}
	if !in.ValveStatus.Valid() {
		return apperr.Validation("valveStatus", "unknown valve status %q", in.ValveStatus)
	}
	return nil
}
