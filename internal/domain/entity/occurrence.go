package entity

import (
	"time"

	"carwash/internal/domain/constant"
)

// ServiceOccurrence represents one concrete, dated instance of a
// subscription's recurring service.
type ServiceOccurrence struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	OccurrenceID   string    `gorm:"column:occurrence_id;uniqueIndex"`
	SubscriptionID string    `gorm:"column:subscription_id;index"`
	ScheduledDate  time.Time `gorm:"column:scheduled_date"`
	ScheduledTime  string    `gorm:"column:scheduled_time"`

	Status constant.OccurrenceStatus `gorm:"column:status;index"`

	// Completion metadata, set when the occurrence transitions to completed.
	Rating      *int       `gorm:"column:rating"`
	Notes       string     `gorm:"column:notes;type:text"`
	CompletedAt *time.Time `gorm:"column:completed_at"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName specifies the table name for the ServiceOccurrence entity.
func (ServiceOccurrence) TableName() string {
	return "service_occurrences"
}
