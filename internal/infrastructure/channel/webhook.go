package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"carwash/internal/config"
	"carwash/internal/domain/entity"
	"carwash/internal/pkg/logger"
)

// WebhookNotifier posts operational events (new subscriptions, completed
// bookings) to a configured webhook URL. Delivery is best effort; failures
// are logged and never surfaced to callers.
type WebhookNotifier struct {
	cfg    config.WebhookConfig
	client *http.Client
	log    logger.Logger
}

// NewWebhookNotifier creates a new operations webhook notifier.
func NewWebhookNotifier(cfg config.WebhookConfig, log logger.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

type webhookEvent struct {
	Event     string    `json:"event"`
	Timestamp time.Time `json:"timestamp"`
	Details   any       `json:"details"`
}

// NotifySubscriptionCreated reports a new subscription.
func (w *WebhookNotifier) NotifySubscriptionCreated(ctx context.Context, sub *entity.Subscription) {
	w.post(ctx, webhookEvent{
		Event:     "subscription_created",
		Timestamp: time.Now().UTC(),
		Details: map[string]any{
			"subscription_id": sub.SubscriptionID,
			"customer_name":   sub.CustomerName,
			"plan_id":         sub.PlanID,
			"frequency":       sub.Frequency,
			"vehicle_type":    sub.VehicleType,
		},
	})
}

// NotifyBookingCompleted reports a completed service occurrence.
func (w *WebhookNotifier) NotifyBookingCompleted(ctx context.Context, occ *entity.ServiceOccurrence) {
	w.post(ctx, webhookEvent{
		Event:     "booking_completed",
		Timestamp: time.Now().UTC(),
		Details: map[string]any{
			"occurrence_id":   occ.OccurrenceID,
			"subscription_id": occ.SubscriptionID,
			"scheduled_date":  occ.ScheduledDate.Format("2006-01-02"),
		},
	})
}

func (w *WebhookNotifier) post(ctx context.Context, event webhookEvent) {
	if w.cfg.URL == "" {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		w.log.Error("Failed to marshal webhook event", err)
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		w.log.Error("Failed to build webhook request", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		w.log.Error(fmt.Sprintf("Webhook post for event %s failed", event.Event), err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		w.log.Warn(fmt.Sprintf("Webhook returned status %d for event %s", resp.StatusCode, event.Event))
	}
}
