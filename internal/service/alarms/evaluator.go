package alarms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/brewhouse/internal/domain/models"
	"github.com/mamadbah2/brewhouse/internal/events"
	"github.com/mamadbah2/brewhouse/internal/repository"
)

// Publisher delivers events to stream listeners.
type Publisher interface {
	Publish(evt events.Event) int
}

// TickResult summarises one evaluation pass.
type TickResult struct {
	Evaluated   int
	Triggered   int
	Cleared     int
	Failed      int
	ActiveCount int
}

// Evaluator re-checks every alarm against current tank and system state and publishes
// alarm transitions.
type Evaluator struct {
	alarms    repository.AlarmStore
	tanks     repository.TankStore
	status    repository.SystemStatusStore
	publisher Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewEvaluator wires an evaluator.
func NewEvaluator(alarms repository.AlarmStore, tanks repository.TankStore, status repository.SystemStatusStore, publisher Publisher, logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{
		alarms:    alarms,
		tanks:     tanks,
		status:    status,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Tick runs one evaluation pass. Failures on a single alarm are logged and counted;
// only a failure to load tanks or alarms aborts the pass.
func (e *Evaluator) Tick(ctx context.Context) (TickResult, error) {
	var result TickResult

	status := e.loadStatus(ctx)

	tanks, err := e.tanks.ListTanks(ctx)
	if err != nil {
		return result, fmt.Errorf("load tanks: %w", err)
	}
	alarms, err := e.alarms.ListAlarms(ctx)
	if err != nil {
		return result, fmt.Errorf("load alarms: %w", err)
	}

	tankByID := make(map[primitive.ObjectID]models.Tank, len(tanks))
	for _, t := range tanks {
		tankByID[t.ID] = t
	}

	for _, alarm := range alarms {
		result.Evaluated++

		active, transition, err := e.evaluate(ctx, alarm, tankByID, status)
		if err != nil {
			result.Failed++
			e.logger.Error("failed to evaluate alarm",
				zap.String("alarm_id", alarm.ID.Hex()),
				zap.String("alarm", alarm.Name),
				zap.Error(err))
			// keep the stored state in the active count
			active = alarm.Active
		}

		switch transition {
		case models.TransitionTriggered:
			result.Triggered++
		case models.TransitionCleared:
			result.Cleared++
		}
		if active {
			result.ActiveCount++
		}
	}

	e.publishSnapshot(tanks, status, result.ActiveCount)

	if result.Triggered+result.Cleared+result.Failed > 0 {
		e.logger.Info("alarm evaluation completed",
			zap.Int("evaluated", result.Evaluated),
			zap.Int("triggered", result.Triggered),
			zap.Int("cleared", result.Cleared),
			zap.Int("failed", result.Failed))
	}

	return result, nil
}

func (e *Evaluator) evaluate(ctx context.Context, alarm models.Alarm, tanks map[primitive.ObjectID]models.Tank, status *models.SystemStatus) (bool, models.TransitionType, error) {
	tank, ok := tanks[alarm.TankID]
	if !ok {
		return false, "", fmt.Errorf("tank %s not found", alarm.TankID.Hex())
	}

	active, err := Condition(alarm, tank, status)
	if err != nil {
		return false, "", err
	}
	if active == alarm.Active {
		return active, "", nil
	}

	at := e.now().UTC()
	if err := e.alarms.SetAlarmActive(ctx, alarm.ID, active, at); err != nil {
		return false, "", fmt.Errorf("persist alarm state: %w", err)
	}

	transition := models.TransitionCleared
	if active {
		transition = models.TransitionTriggered
	}

	evt := models.AlarmEvent{
		EventID:        uuid.NewString(),
		AlarmID:        alarm.ID,
		Name:           alarm.Name,
		Type:           alarm.Type,
		TankID:         tank.ID,
		TankName:       tank.Name,
		Temperature:    tank.Temperature,
		Threshold:      alarm.Threshold,
		Timestamp:      at,
		TransitionType: transition,
	}
	delivered := e.publisher.Publish(events.Event{Name: models.EventAlarmUpdate, Data: evt})

	e.logger.Info("alarm transition",
		zap.String("alarm_id", alarm.ID.Hex()),
		zap.String("alarm", alarm.Name),
		zap.String("tank", tank.Name),
		zap.Float64("temperature", tank.Temperature),
		zap.String("transition", string(transition)),
		zap.Int("delivered", delivered))

	return active, transition, nil
}

func (e *Evaluator) loadStatus(ctx context.Context) *models.SystemStatus {
	status, err := e.status.GetSystemStatus(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		status = models.DefaultSystemStatus()
		return &status
	}
	if err != nil {
		e.logger.Warn("system status unavailable, skipping system error alarms", zap.Error(err))
		return nil
	}
	return &status
}

func (e *Evaluator) publishSnapshot(tanks []models.Tank, status *models.SystemStatus, active int) {
	snapshot := models.StatusSnapshot{
		Tanks:        make([]models.TankReading, 0, len(tanks)),
		ActiveAlarms: active,
		Timestamp:    e.now().UTC(),
	}
	if status != nil {
		snapshot.System = *status
	}
	for _, t := range tanks {
		snapshot.Tanks = append(snapshot.Tanks, models.TankReading{
			ID:          t.ID,
			Name:        t.Name,
			Temperature: t.Temperature,
			Status:      t.Status,
			Mode:        t.Mode,
			ValveStatus: t.ValveStatus,
		})
	}
	e.publisher.Publish(events.Event{Name: models.EventSnapshot, Data: snapshot})
}
