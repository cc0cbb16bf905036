package repository

import (
	"context"
	"time"

	"carwash/internal/domain/constant"
	"carwash/internal/domain/entity"
)

// SubscriptionRepository defines the interface for subscription data operations.
type SubscriptionRepository interface {
	// FindBySubscriptionID retrieves a subscription by its public identifier.
	FindBySubscriptionID(ctx context.Context, subscriptionID string) (*entity.Subscription, error)
	// FindByCustomerID retrieves all subscriptions for a customer.
	FindByCustomerID(ctx context.Context, customerID string) ([]*entity.Subscription, error)
	// FindByStatus retrieves all subscriptions in the given status.
	FindByStatus(ctx context.Context, status constant.SubscriptionStatus) ([]*entity.Subscription, error)
	// Create creates a new subscription.
	Create(ctx context.Context, sub *entity.Subscription) error
	// Update updates an existing subscription.
	Update(ctx context.Context, sub *entity.Subscription) error
}

// OccurrenceRepository defines the interface for service occurrence data operations.
type OccurrenceRepository interface {
	// FindByOccurrenceID retrieves an occurrence by its public identifier.
	FindByOccurrenceID(ctx context.Context, occurrenceID string) (*entity.ServiceOccurrence, error)
	// FindBySubscriptionID retrieves all occurrences for a subscription.
	FindBySubscriptionID(ctx context.Context, subscriptionID string) ([]*entity.ServiceOccurrence, error)
	// ExistsForDate reports whether a non-cancelled occurrence already exists
	// for the subscription on the given date. The scheduler relies on this
	// check, backed by a unique index, for idempotence.
	ExistsForDate(ctx context.Context, subscriptionID string, date time.Time) (bool, error)
	// FindScheduledBySubscriptionID retrieves occurrences still in the
	// scheduled state for a subscription.
	FindScheduledBySubscriptionID(ctx context.Context, subscriptionID string) ([]*entity.ServiceOccurrence, error)
	// Create creates a new occurrence.
	Create(ctx context.Context, occ *entity.ServiceOccurrence) error
	// Update updates an existing occurrence.
	Update(ctx context.Context, occ *entity.ServiceOccurrence) error
}
