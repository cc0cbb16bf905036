package service

import (
	"context"

	"carwash/internal/application/dto"
	"carwash/internal/domain/constant"
	"carwash/internal/domain/entity"
)

// ChannelSender is implemented by each notification delivery channel
// (email, SMS, website). The dispatcher is channel-agnostic: it iterates
// the enabled channels and calls Send on each.
type ChannelSender interface {
	// Channel identifies the delivery channel this sender serves.
	Channel() constant.Channel
	// Send delivers one notification to the recipient. A nil return means
	// the channel accepted the message.
	Send(ctx context.Context, to entity.Recipient, title, message string) error
}

// NotificationService defines the interface for reminder dispatch, live
// notification access, and retention sweeping.
type NotificationService interface {
	// DispatchDueReminders sends every pending reminder whose scheduled send
	// time has passed through its enabled channels, recording the per-channel
	// outcome. Returns the number of reminders processed.
	DispatchDueReminders(ctx context.Context) (int, error)
	// CleanupOldNotifications purges reminder rows older than the retention
	// window and live rows older than the window that are dismissed or
	// expired. Partial failures are logged and retried on the next sweep.
	CleanupOldNotifications(ctx context.Context) error
	// ListActiveForCustomer retrieves the customer's active live
	// notifications, including broadcasts.
	ListActiveForCustomer(ctx context.Context, customerID string) ([]dto.LiveNotificationResponse, error)
	// MarkRead marks a live notification as read.
	MarkRead(ctx context.Context, notificationID string) error
	// Dismiss dismisses a live notification.
	Dismiss(ctx context.Context, notificationID string) error
}
