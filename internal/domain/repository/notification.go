package repository

import (
	"context"
	"time"

	"carwash/internal/domain/constant"
	"carwash/internal/domain/entity"
)

// ReminderRepository defines the interface for reminder notification data operations.
type ReminderRepository interface {
	// FindByNotificationID retrieves a reminder by its public identifier.
	FindByNotificationID(ctx context.Context, notificationID string) (*entity.ReminderNotification, error)
	// FindDue retrieves pending reminders whose scheduled send time has passed.
	FindDue(ctx context.Context, now time.Time) ([]*entity.ReminderNotification, error)
	// ExistsForService reports whether a reminder already exists for the
	// subscription's occurrence on the given service date.
	ExistsForService(ctx context.Context, subscriptionID string, serviceDate time.Time) (bool, error)
	// Create creates a new reminder.
	Create(ctx context.Context, n *entity.ReminderNotification) error
	// Update updates an existing reminder.
	Update(ctx context.Context, n *entity.ReminderNotification) error
	// DeleteOlderThan deletes reminders created before the threshold,
	// regardless of status. Returns the number of rows removed.
	DeleteOlderThan(ctx context.Context, threshold time.Time) (int64, error)
}

// LiveNotificationRepository defines the interface for live notification data operations.
type LiveNotificationRepository interface {
	// FindByNotificationID retrieves a live notification by its public identifier.
	FindByNotificationID(ctx context.Context, notificationID string) (*entity.LiveNotification, error)
	// FindActiveByTarget retrieves active notifications for a customer,
	// including broadcasts.
	FindActiveByTarget(ctx context.Context, customerID string) ([]*entity.LiveNotification, error)
	// Create creates a new live notification.
	Create(ctx context.Context, n *entity.LiveNotification) error
	// Update updates an existing live notification.
	Update(ctx context.Context, n *entity.LiveNotification) error
	// DeleteOlderThanWithStatus deletes live notifications created before the
	// threshold whose status is one of the given set. Returns the number of
	// rows removed.
	DeleteOlderThanWithStatus(ctx context.Context, threshold time.Time, statuses []constant.LiveStatus) (int64, error)
}
