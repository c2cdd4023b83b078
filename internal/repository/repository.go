package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/brewhouse/internal/domain/models"
)

var (
	// ErrNotFound is returned when no document matches the lookup.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateKey is returned when a write violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
)

// TankStore persists tanks.
type TankStore interface {
	CreateTank(ctx context.Context, tank *models.Tank) error
	GetTank(ctx context.Context, id primitive.ObjectID) (models.Tank, error)
	ListTanks(ctx context.Context) ([]models.Tank, error)
	UpdateTank(ctx context.Context, tank models.Tank) error
	DeleteTank(ctx context.Context, id primitive.ObjectID) error
}

// RecipeStore persists brew styles. Names are unique.
type RecipeStore interface {
	CreateRecipe(ctx context.Context, recipe *models.RecipeStyle) error
	GetRecipe(ctx context.Context, id primitive.ObjectID) (models.RecipeStyle, error)
	GetRecipeByName(ctx context.Context, name string) (models.RecipeStyle, error)
	ListRecipes(ctx context.Context) ([]models.RecipeStyle, error)
	UpdateRecipe(ctx context.Context, recipe models.RecipeStyle) error
	DeleteRecipe(ctx context.Context, id primitive.ObjectID) error
}

// ScheduleStore persists production schedules. Batch numbers are unique.
type ScheduleStore interface {
	CreateSchedule(ctx context.Context, schedule *models.ProductionSchedule) error
	GetSchedule(ctx context.Context, id primitive.ObjectID) (models.ProductionSchedule, error)
	ListSchedules(ctx context.Context, filter models.ScheduleFilter) ([]models.ProductionSchedule, error)
	// FindOverlapping returns the non-cancelled schedules of tankID whose interval
	// intersects [start, end], boundaries included.
	FindOverlapping(ctx context.Context, tankID primitive.ObjectID, start, end time.Time) ([]models.ProductionSchedule, error)
	UpdateSchedule(ctx context.Context, schedule models.ProductionSchedule) error
	DeleteSchedule(ctx context.Context, id primitive.ObjectID) error
}

// AlarmStore persists alarm definitions and their evaluated state.
type AlarmStore interface {
	CreateAlarm(ctx context.Context, alarm *models.Alarm) error
	GetAlarm(ctx context.Context, id primitive.ObjectID) (models.Alarm, error)
	ListAlarms(ctx context.Context) ([]models.Alarm, error)
	// UpdateAlarm replaces the definition fields and keeps the stored active flag.
	UpdateAlarm(ctx context.Context, alarm models.Alarm) error
	SetAlarmActive(ctx context.Context, id primitive.ObjectID, active bool, at time.Time) error
	DeleteAlarm(ctx context.Context, id primitive.ObjectID) error
}

// SystemStatusStore persists the singleton system status.
type SystemStatusStore interface {
	// GetSystemStatus returns ErrNotFound until a status has been saved.
	GetSystemStatus(ctx context.Context) (models.SystemStatus, error)
	SaveSystemStatus(ctx context.Context, status models.SystemStatus) error
}

// Store is the full persistence surface used by the server.
type Store interface {
	TankStore
	RecipeStore
	ScheduleStore
	AlarmStore
	SystemStatusStore
	Close(ctx context.Context) error
}
