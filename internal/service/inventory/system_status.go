package inventory

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/brewhouse/internal/domain/apperr"
	"github.com/mamadbah2/brewhouse/internal/domain/models"
	"github.com/mamadbah2/brewhouse/internal/repository"
)

// SystemStatus returns the stored status, or the defaults when none was written yet.
func (s *Service) SystemStatus(ctx context.Context) (models.SystemStatus, error) {
	status, err := s.status.GetSystemStatus(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return models.DefaultSystemStatus(), nil
	}
	if err != nil {
		return models.SystemStatus{}, fmt.Errorf("load system status: %w", err)
	}
	return status, nil
}

// UpdateSystemStatus validates and stores the equipment status.
func (s *Service) UpdateSystemStatus(ctx context.Context, status models.SystemStatus) (models.SystemStatus, error) {
	if !status.ChillerStatus.Valid() {
		return models.SystemStatus{}, apperr.Validation("chillerStatus", "unknown chiller status %q", status.ChillerStatus)
	}
	if !status.HeaterStatus.Valid() {
		return models.SystemStatus{}, apperr.Validation("heaterStatus", "unknown heater status %q", status.HeaterStatus)
	}
	if !status.SystemMode.Valid() {
		return models.SystemStatus{}, apperr.Validation("systemMode", "unknown system mode %q", status.SystemMode)
	}

	status.UpdatedAt = s.now().UTC()
	if err := s.status.SaveSystemStatus(ctx, status); err != nil {
		return models.SystemStatus{}, fmt.Errorf("save system status: %w", err)
	}

	s.logger.Info("system status updated",
		zap.String("chiller", string(status.ChillerStatus)),
		zap.String("heater", string(status.HeaterStatus)),
		zap.String("mode", string(status.SystemMode)))
	return status, nil
}
