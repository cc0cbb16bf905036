package entity

import (
	"time"

	"carwash/internal/domain/constant"
)

// Plan represents a subscription plan for car wash services.
type Plan struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	PlanID string `gorm:"column:plan_id;uniqueIndex"`

	Name        string  `gorm:"column:name"`
	Description string  `gorm:"column:description;type:text"`
	ServiceType string  `gorm:"column:service_type;uniqueIndex"`
	BasePrice   float64 `gorm:"column:base_price"`

	// Frequencies the plan can be subscribed at.
	Frequencies []constant.Frequency `gorm:"column:frequency_options;serializer:json"`
	Features    []string             `gorm:"column:features;serializer:json"`

	DurationMinutes int  `gorm:"column:duration_minutes"`
	IsPremium       bool `gorm:"column:is_premium;default:false"`
	IsActive        bool `gorm:"column:is_active;default:true"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for the Plan entity.
func (Plan) TableName() string {
	return "subscription_plans"
}

// SupportsFrequency reports whether the plan can be subscribed at the
// given frequency.
func (p *Plan) SupportsFrequency(f constant.Frequency) bool {
	for _, opt := range p.Frequencies {
		if opt == f {
			return true
		}
	}
	return false
}
