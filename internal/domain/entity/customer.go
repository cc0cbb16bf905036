package entity

import "time"

// Customer represents a customer and their loyalty program state.
type Customer struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	CustomerID string `gorm:"column:customer_id;uniqueIndex"`

	Name  string `gorm:"column:name"`
	Email string `gorm:"column:email;uniqueIndex"`
	Phone string `gorm:"column:phone"`

	// Loyalty program counters. The earned counters are recomputed from
	// CompletedBookings by the rewards engine, never incremented ad hoc.
	TotalBookings     int `gorm:"column:total_bookings;default:0"`
	CompletedBookings int `gorm:"column:completed_bookings;default:0"`
	LoyaltyPoints     int `gorm:"column:loyalty_points;default:0"`
	FreeWashesEarned  int `gorm:"column:free_washes_earned;default:0"`
	FreeWashesUsed    int `gorm:"column:free_washes_used;default:0"`
	DiscountEarned    int `gorm:"column:discount_earned;default:0"`
	DiscountUsed      int `gorm:"column:discount_used;default:0"`

	// Communication preferences.
	EmailNotifications bool `gorm:"column:email_notifications;default:true"`
	SMSNotifications   bool `gorm:"column:sms_notifications;default:true"`

	FirstBookingDate *time.Time `gorm:"column:first_booking_date"`
	LastBookingDate  *time.Time `gorm:"column:last_booking_date"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

// TableName specifies the table name for the Customer entity.
func (Customer) TableName() string {
	return "customers"
}

// AvailableFreeWashes returns the number of earned but unused free washes.
func (c *Customer) AvailableFreeWashes() int {
	return c.FreeWashesEarned - c.FreeWashesUsed
}

// AvailableDiscounts returns the number of earned but unused discounts.
func (c *Customer) AvailableDiscounts() int {
	return c.DiscountEarned - c.DiscountUsed
}
