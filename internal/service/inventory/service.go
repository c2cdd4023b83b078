package inventory

import (
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/brewhouse/internal/repository"
)

// Service manages tanks, brew styles and the plant-wide system status.
type Service struct {
	tanks   repository.TankStore
	recipes repository.RecipeStore
	status  repository.SystemStatusStore
	logger  *zap.Logger
	now     func() time.Time
}

// NewService builds the inventory service over the tank, recipe and status stores.
func NewService(tanks repository.TankStore, recipes repository.RecipeStore, status repository.SystemStatusStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		tanks:   tanks,
		recipes: recipes,
		status:  status,
		logger:  logger,
		now:     time.Now,
	}
}
