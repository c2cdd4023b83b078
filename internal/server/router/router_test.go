package router

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/brewhouse/internal/domain/models"
	"github.com/mamadbah2/brewhouse/internal/events"
	"github.com/mamadbah2/brewhouse/internal/repository/memory"
	"github.com/mamadbah2/brewhouse/internal/server/handlers"
	"github.com/mamadbah2/brewhouse/internal/service/alarms"
	"github.com/mamadbah2/brewhouse/internal/service/inventory"
	"github.com/mamadbah2/brewhouse/internal/service/scheduling"
)

func newTestServer(t *testing.T, heartbeat time.Duration) (*httptest.Server, *events.Broker, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	broker := events.NewBroker(8, nil)

	engine := New(Handlers{
		Schedules: handlers.NewScheduleHandler(scheduling.NewService(store, store, store, nil, nil), nil),
		Inventory: handlers.NewInventoryHandler(inventory.NewService(store, store, store, nil), nil),
		Alarms:    handlers.NewAlarmHandler(alarms.NewService(store, store, nil), nil),
		Stream:    handlers.NewStreamHandler(broker, heartbeat, nil),
	}, nil)

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv, broker, store
}

type sseMessage struct {
	event string
	data  string
}

// readEvents parses the stream into messages until the body is closed.
func readEvents(body *bufio.Scanner, out chan<- sseMessage) {
	defer close(out)
	var msg sseMessage
	for body.Scan() {
		line := body.Text()
		switch {
		case line == "":
			if msg.data != "" || msg.event != "" {
				out <- msg
			}
			msg = sseMessage{}
		case strings.HasPrefix(line, "event:"):
			msg.event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			msg.data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		}
	}
}

func next(t *testing.T, ch <-chan sseMessage) sseMessage {
	t.Helper()
	select {
	case msg, ok := <-ch:
		require.True(t, ok, "stream closed")
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return sseMessage{}
	}
}

func TestHealthz(t *testing.T) {
	srv, _, _ := newTestServer(t, time.Minute)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEventStream(t *testing.T) {
	srv, broker, _ := newTestServer(t, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	msgs := make(chan sseMessage, 16)
	go readEvents(bufio.NewScanner(resp.Body), msgs)

	assert.Equal(t, models.EventConnected, next(t, msgs).event)
	assert.Equal(t, 1, broker.Subscribers())

	broker.Publish(events.Event{Name: models.EventAlarmUpdate, Data: models.AlarmEvent{
		EventID:        "evt-1",
		Name:           "FV1 hot",
		TankName:       "FV1",
		Temperature:    80,
		TransitionType: models.TransitionTriggered,
	}})

	var alarm sseMessage
	for alarm.event != models.EventAlarmUpdate {
		alarm = next(t, msgs)
		if alarm.event != models.EventAlarmUpdate {
			assert.Equal(t, models.EventHeartbeat, alarm.event)
		}
	}
	var payload models.AlarmEvent
	require.NoError(t, json.Unmarshal([]byte(alarm.data), &payload))
	assert.Equal(t, "evt-1", payload.EventID)
	assert.Equal(t, models.TransitionTriggered, payload.TransitionType)

	broker.Publish(events.Event{Name: models.EventSnapshot, Data: models.StatusSnapshot{ActiveAlarms: 1}})
	var snapshot sseMessage
	for {
		snapshot = next(t, msgs)
		if snapshot.event == "" {
			break
		}
	}
	assert.Contains(t, snapshot.data, `"activeAlarms":1`)

	cancel()
	require.Eventually(t, func() bool { return broker.Subscribers() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestEventStream_Heartbeat(t *testing.T) {
	srv, _, _ := newTestServer(t, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	msgs := make(chan sseMessage, 16)
	go readEvents(bufio.NewScanner(resp.Body), msgs)

	assert.Equal(t, models.EventConnected, next(t, msgs).event)
	assert.Equal(t, models.EventHeartbeat, next(t, msgs).event)
}
