package entity

import (
	"time"

	"carwash/internal/domain/constant"
)

// ChannelDelivery records the outcome of one send attempt on one channel.
type ChannelDelivery struct {
	Attempted bool      `json:"attempted"`
	Succeeded bool      `json:"succeeded"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

// ReminderNotification is a scheduled reminder tied to a service occurrence,
// sent ahead of the service date through the enabled channels.
type ReminderNotification struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	NotificationID string `gorm:"column:notification_id;uniqueIndex"`
	SubscriptionID string `gorm:"column:subscription_id;index"`

	Title   string `gorm:"column:title"`
	Message string `gorm:"column:message;type:text"`

	ScheduledSendTime time.Time  `gorm:"column:scheduled_send_time;index"`
	ActualSendTime    *time.Time `gorm:"column:actual_send_time"`

	// The occurrence the reminder is for.
	ServiceDate time.Time `gorm:"column:service_date"`
	ServiceTime string    `gorm:"column:service_time"`

	// Channel flags, copied from the subscription preferences at creation.
	// Website delivery is always on.
	SendEmail   bool `gorm:"column:send_email"`
	SendSMS     bool `gorm:"column:send_sms"`
	SendWebsite bool `gorm:"column:send_website;default:true"`

	Status constant.ReminderStatus `gorm:"column:status;index"`

	// Per-channel delivery outcomes, keyed by channel name.
	Delivery map[string]ChannelDelivery `gorm:"column:delivery_status;serializer:json"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for the ReminderNotification entity.
func (ReminderNotification) TableName() string {
	return "service_notifications"
}

// EnabledChannels returns the enabled delivery channels in dispatch order.
func (n *ReminderNotification) EnabledChannels() []constant.Channel {
	var channels []constant.Channel
	for _, ch := range constant.Channels {
		switch ch {
		case constant.ChannelEmail:
			if n.SendEmail {
				channels = append(channels, ch)
			}
		case constant.ChannelSMS:
			if n.SendSMS {
				channels = append(channels, ch)
			}
		case constant.ChannelWebsite:
			if n.SendWebsite {
				channels = append(channels, ch)
			}
		}
	}
	return channels
}

// RecordDelivery records the outcome of a send attempt on the given channel.
func (n *ReminderNotification) RecordDelivery(channel constant.Channel, succeeded bool, errMsg string) {
	if n.Delivery == nil {
		n.Delivery = make(map[string]ChannelDelivery)
	}
	n.Delivery[channel.String()] = ChannelDelivery{
		Attempted: true,
		Succeeded: succeeded,
		Timestamp: time.Now().UTC(),
		Error:     errMsg,
	}
}

// AnySucceeded reports whether at least one channel delivered successfully.
func (n *ReminderNotification) AnySucceeded() bool {
	for _, d := range n.Delivery {
		if d.Succeeded {
			return true
		}
	}
	return false
}

// LiveNotification is an in-app notification shown on the customer website.
type LiveNotification struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	NotificationID string `gorm:"column:notification_id;uniqueIndex"`

	// Target audience: a single customer or a broadcast.
	TargetType string `gorm:"column:target_type"` // "customer" or "all"
	TargetID   string `gorm:"column:target_id;index"`

	Title    string            `gorm:"column:title"`
	Message  string            `gorm:"column:message;type:text"`
	Type     string            `gorm:"column:notification_type"` // "info", "success", "warning"
	Priority constant.Priority `gorm:"column:priority"`

	Status      constant.LiveStatus `gorm:"column:status;index"`
	ReadAt      *time.Time          `gorm:"column:read_at"`
	DismissedAt *time.Time          `gorm:"column:dismissed_at"`
	ExpiresAt   *time.Time          `gorm:"column:expires_at"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for the LiveNotification entity.
func (LiveNotification) TableName() string {
	return "live_notifications"
}

// MarkRead marks the notification as read.
func (n *LiveNotification) MarkRead() {
	now := time.Now().UTC()
	n.ReadAt = &now
	n.Status = constant.LiveRead
}

// Dismiss dismisses the notification.
func (n *LiveNotification) Dismiss() {
	now := time.Now().UTC()
	n.DismissedAt = &now
	n.Status = constant.LiveDismissed
}
