package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/brewhouse/internal/config"
	"github.com/mamadbah2/brewhouse/internal/domain/models"
)

// Client delivers alarm notifications to an outside system.
type Client interface {
	SendAlarm(ctx context.Context, evt models.AlarmEvent) error
}

// APIClient is a resty-backed implementation of Client that POSTs JSON to a single URL.
type APIClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client from the configured URL and optional bearer token.
func NewClient(cfg config.WebhookConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "brewhouse-alarms").
		SetTimeout(15 * time.Second)
	if cfg.Token != "" {
		restyClient.SetAuthToken(cfg.Token)
	}

	return &APIClient{
		httpClient: restyClient,
		url:        cfg.URL,
	}
}

// Notification is the JSON body sent for every alarm transition.
type Notification struct {
	EventID     string    `json:"eventId"`
	AlarmID     string    `json:"alarmId"`
	Alarm       string    `json:"alarm"`
	Type        string    `json:"type"`
	Tank        string    `json:"tank"`
	Temperature float64   `json:"temperature"`
	Threshold   *float64  `json:"threshold,omitempty"`
	Transition  string    `json:"transition"`
	Timestamp   time.Time `json:"timestamp"`
}

type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// SendAlarm posts one alarm transition to the webhook.
func (c *APIClient) SendAlarm(ctx context.Context, evt models.AlarmEvent) error {
	payload := Notification{
		EventID:     evt.EventID,
		AlarmID:     evt.AlarmID.Hex(),
		Alarm:       evt.Name,
		Type:        string(evt.Type),
		Tank:        evt.TankName,
		Temperature: evt.Temperature,
		Threshold:   evt.Threshold,
		Transition:  string(evt.TransitionType),
		Timestamp:   evt.Timestamp,
	}

	apiErr := new(apiError)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Idempotency-Key", evt.EventID).
		SetBody(payload).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("send alarm webhook: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		return fmt.Errorf("alarm webhook error: code=%d, message=%s", resp.StatusCode(), message)
	}

	return nil
}
