package handlers

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/brewhouse/internal/domain/models"
	"github.com/mamadbah2/brewhouse/internal/events"
)

// Subscriber is the part of the broker the stream endpoint needs.
type Subscriber interface {
	Subscribe() *events.Subscription
	Unsubscribe(sub *events.Subscription)
}

// StreamHandler pushes broker events to clients as server-sent events.
type StreamHandler struct {
	broker    Subscriber
	heartbeat time.Duration
	logger    *zap.Logger
}

// NewStreamHandler serves broker events as SSE, with a heartbeat every heartbeat.
func NewStreamHandler(broker Subscriber, heartbeat time.Duration, logger *zap.Logger) *StreamHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	return &StreamHandler{broker: broker, heartbeat: heartbeat, logger: logger}
}

type streamNotice struct {
	Timestamp time.Time `json:"timestamp"`
}

// Stream holds the connection open until the client goes away. It sends "connected"
// first, "heartbeat" on every interval, and every broker event as it arrives.
func (h *StreamHandler) Stream(c *gin.Context) {
	sub := h.broker.Subscribe()
	defer h.broker.Unsubscribe(sub)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	h.logger.Info("stream client connected", zap.String("subscriber_id", sub.ID), zap.String("client_ip", c.ClientIP()))
	defer h.logger.Info("stream client disconnected", zap.String("subscriber_id", sub.ID))

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := c.Request.Context()
	connected := false

	c.Stream(func(w io.Writer) bool {
		if !connected {
			connected = true
			c.SSEvent(models.EventConnected, streamNotice{Timestamp: time.Now().UTC()})
			return true
		}

		select {
		case <-ctx.Done():
			return false
		case t := <-ticker.C:
			c.SSEvent(models.EventHeartbeat, streamNotice{Timestamp: t.UTC()})
			return true
		case evt, ok := <-sub.C:
			if !ok {
				return false
			}
			c.SSEvent(evt.Name, evt.Data)
			return true
		}
	})
}
