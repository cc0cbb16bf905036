package service

import (
	"context"

	"carwash/internal/application/dto"
	"carwash/internal/domain/entity"
)

// OpsNotifier reports operational events to the business (e.g. a webhook
// into the ops chat). Delivery is best effort.
type OpsNotifier interface {
	NotifySubscriptionCreated(ctx context.Context, sub *entity.Subscription)
	NotifyBookingCompleted(ctx context.Context, occ *entity.ServiceOccurrence)
}

// SubscriptionService defines the interface for subscription lifecycle and
// recurring-service scheduling logic.
type SubscriptionService interface {
	// CreateSubscription creates a subscription after a successful payment
	// confirmation, materializes the first occurrence at the start date, and
	// schedules its reminder.
	CreateSubscription(ctx context.Context, req dto.CreateSubscriptionRequest) (*entity.Subscription, error)
	// GetSubscription retrieves a subscription by its identifier.
	GetSubscription(ctx context.Context, subscriptionID string) (*entity.Subscription, error)
	// PauseSubscription pauses an active subscription.
	PauseSubscription(ctx context.Context, subscriptionID string) error
	// ResumeSubscription reactivates a paused subscription.
	ResumeSubscription(ctx context.Context, subscriptionID string) error
	// CancelSubscription cancels a subscription. The record is kept; any
	// future scheduled occurrences are cancelled with it.
	CancelSubscription(ctx context.Context, subscriptionID string) error
	// CompleteOccurrence handles the booking-completed event: marks the
	// occurrence completed, advances the subscription's next service date,
	// and feeds the loyalty milestone engine.
	CompleteOccurrence(ctx context.Context, occurrenceID string, req dto.CompleteOccurrenceRequest) error
	// ScheduleRecurringServices materializes the next occurrence and reminder
	// for every active subscription whose next service date falls within the
	// lookahead window. Safe to re-run: existing records are never duplicated.
	// Returns the number of occurrences created.
	ScheduleRecurringServices(ctx context.Context) (int, error)
}
