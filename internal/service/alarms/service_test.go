package alarms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/brewhouse/internal/domain/apperr"
	"github.com/mamadbah2/brewhouse/internal/domain/models"
	"github.com/mamadbah2/brewhouse/internal/events"
	"github.com/mamadbah2/brewhouse/internal/repository/memory"
)

func TestService_CreateValidates(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tank := models.Tank{Name: "BT1"}
	require.NoError(t, store.CreateTank(ctx, &tank))
	svc := NewService(store, store, nil)

	_, err := svc.Create(ctx, AlarmInput{Name: " ", Type: models.AlarmHighTemperature, Threshold: floatPtr(70), TankID: tank.ID})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.Create(ctx, AlarmInput{Name: "hot", Type: models.AlarmHighTemperature, TankID: tank.ID})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.Create(ctx, AlarmInput{Name: "hot", Type: "Humidity", TankID: tank.ID})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.Create(ctx, AlarmInput{Name: "hot", Type: models.AlarmHighTemperature, Threshold: floatPtr(70), TankID: primitive.NewObjectID()})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	alarm, err := svc.Create(ctx, AlarmInput{Name: "system", Type: models.AlarmSystemError, TankID: tank.ID})
	require.NoError(t, err)
	assert.False(t, alarm.Active)
}

func TestService_UpdateKeepsActiveFlag(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tank := models.Tank{Name: "BT1"}
	require.NoError(t, store.CreateTank(ctx, &tank))
	svc := NewService(store, store, nil)

	alarm, err := svc.Create(ctx, AlarmInput{Name: "hot", Type: models.AlarmHighTemperature, Threshold: floatPtr(70), TankID: tank.ID})
	require.NoError(t, err)
	require.NoError(t, store.SetAlarmActive(ctx, alarm.ID, true, alarm.CreatedAt))

	updated, err := svc.Update(ctx, alarm.ID, AlarmInput{Name: "hotter", Type: models.AlarmHighTemperature, Threshold: floatPtr(72), TankID: tank.ID})
	require.NoError(t, err)
	assert.True(t, updated.Active)
	assert.Equal(t, 72.0, *updated.Threshold)

	require.NoError(t, svc.Delete(ctx, alarm.ID))
	_, err = svc.Get(ctx, alarm.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

// tickAfterReadStore runs hook once, right after the first GetAlarm read.
type tickAfterReadStore struct {
	*memory.Store
	hook func()
}

func (s *tickAfterReadStore) GetAlarm(ctx context.Context, id primitive.ObjectID) (models.Alarm, error) {
	alarm, err := s.Store.GetAlarm(ctx, id)
	if s.hook != nil {
		hook := s.hook
		s.hook = nil
		hook()
	}
	return alarm, err
}

func TestService_UpdateDoesNotUndoConcurrentTrigger(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tank := models.Tank{Name: "FV1", Temperature: 80, Mode: models.ModeIdle}
	require.NoError(t, store.CreateTank(ctx, &tank))

	broker := events.NewBroker(16, nil)
	sub := broker.Subscribe()
	defer broker.Unsubscribe(sub)
	ev := NewEvaluator(store, store, store, broker, nil)

	alarm := models.Alarm{Name: "FV1 too warm", Type: models.AlarmHighTemperature, Threshold: floatPtr(75), TankID: tank.ID}
	require.NoError(t, store.CreateAlarm(ctx, &alarm))

	racing := &tickAfterReadStore{Store: store}
	racing.hook = func() {
		_, err := ev.Tick(ctx)
		require.NoError(t, err)
	}
	svc := NewService(racing, store, nil)

	updated, err := svc.Update(ctx, alarm.ID, AlarmInput{Name: "FV1 warm", Type: models.AlarmHighTemperature, Threshold: floatPtr(76), TankID: tank.ID})
	require.NoError(t, err)
	assert.True(t, updated.Active)
	assert.Equal(t, "FV1 warm", updated.Name)

	stored, err := store.GetAlarm(ctx, alarm.ID)
	require.NoError(t, err)
	assert.True(t, stored.Active)

	_, err = ev.Tick(ctx)
	require.NoError(t, err)

	triggered := 0
	for _, evt := range drain(sub) {
		if evt.TransitionType == models.TransitionTriggered {
			triggered++
		}
	}
	assert.Equal(t, 1, triggered, "one excursion yields one triggered event")
}
