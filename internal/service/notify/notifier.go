package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/brewhouse/internal/domain/models"
	"github.com/mamadbah2/brewhouse/internal/events"
	"github.com/mamadbah2/brewhouse/pkg/clients/webhook"
)

// Subscriber is the part of the broker the notifier needs.
type Subscriber interface {
	Subscribe() *events.Subscription
	Unsubscribe(sub *events.Subscription)
}

// Notifier forwards alarm transitions from the broker to an outbound webhook.
type Notifier struct {
	broker  Subscriber
	client  webhook.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewNotifier forwards alarm transitions from broker to the webhook client.
func NewNotifier(broker Subscriber, client webhook.Client, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{
		broker:  broker,
		client:  client,
		timeout: 20 * time.Second,
		logger:  logger,
	}
}

// Run consumes events until ctx is cancelled. Delivery failures are logged and dropped.
func (n *Notifier) Run(ctx context.Context) {
	sub := n.broker.Subscribe()
	defer n.broker.Unsubscribe(sub)

	n.logger.Info("alarm notifier started")
	for {
		select {
		case <-ctx.Done():
			n.logger.Info("alarm notifier stopped")
			return
		case evt, ok := <-sub.C:
			if !ok {
				return
			}
			if evt.Name != models.EventAlarmUpdate {
				continue
			}
			alarmEvt, ok := evt.Data.(models.AlarmEvent)
			if !ok {
				continue
			}
			n.deliver(ctx, alarmEvt)
		}
	}
}

func (n *Notifier) deliver(ctx context.Context, evt models.AlarmEvent) {
	sendCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.client.SendAlarm(sendCtx, evt); err != nil {
		n.logger.Error("failed to deliver alarm notification",
			zap.String("event_id", evt.EventID),
			zap.String("alarm", evt.Name),
			zap.Error(err))
		return
	}
	n.logger.Debug("alarm notification delivered", zap.String("event_id", evt.EventID))
}
