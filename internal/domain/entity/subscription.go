package entity

import (
	"time"

	"carwash/internal/domain/constant"
)

// Subscription represents a customer's recurring service subscription.
type Subscription struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	SubscriptionID string `gorm:"column:subscription_id;uniqueIndex"`
	PlanID         string `gorm:"column:plan_id;index"`
	CustomerID     string `gorm:"column:customer_id;index"`

	CustomerName  string `gorm:"column:customer_name"`
	CustomerEmail string `gorm:"column:customer_email"`
	CustomerPhone string `gorm:"column:customer_phone"`
	Address       string `gorm:"column:address"`
	VehicleType   string `gorm:"column:vehicle_type"`

	Frequency     constant.Frequency          `gorm:"column:frequency"`
	PreferredTime string                      `gorm:"column:preferred_time"`
	StartDate     time.Time                   `gorm:"column:start_date"`
	Status        constant.SubscriptionStatus `gorm:"column:status;index"`

	// NextServiceDate is nil when no future occurrence is planned; it is
	// monotonically non-decreasing across the subscription's life.
	NextServiceDate *time.Time `gorm:"column:next_service_date"`
	LastServiceDate *time.Time `gorm:"column:last_service_date"`

	// Notification preferences.
	NotifyEmail bool `gorm:"column:notify_email;default:true"`
	NotifySMS   bool `gorm:"column:notify_sms;default:true"`
	LeadDays    int  `gorm:"column:lead_days;default:2"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for the Subscription entity.
func (Subscription) TableName() string {
	return "customer_subscriptions"
}

// IsActive reports whether the subscription is eligible for scheduling.
func (s *Subscription) IsActive() bool {
	return s.Status == constant.SubscriptionActive
}
