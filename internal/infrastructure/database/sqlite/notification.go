package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carwash/internal/domain/constant"
	"carwash/internal/domain/entity"
	"carwash/internal/domain/repository"
	appErrors "carwash/internal/pkg/errors"

	"gorm.io/gorm"
)

type reminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new instance of ReminderRepository.
func NewReminderRepository(db *gorm.DB) repository.ReminderRepository {
	return &reminderRepository{db: db}
}

// FindByNotificationID retrieves a reminder by its public identifier.
func (r *reminderRepository) FindByNotificationID(ctx context.Context, notificationID string) (*entity.ReminderNotification, error) {
	var n entity.ReminderNotification
	if err := r.db.WithContext(ctx).Where("notification_id = ?", notificationID).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", appErrors.ErrNotificationNotFound, notificationID)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find reminder %s: %w", notificationID, err)
	}
	return &n, nil
}

// FindDue retrieves pending reminders whose scheduled send time has passed.
func (r *reminderRepository) FindDue(ctx context.Context, now time.Time) ([]*entity.ReminderNotification, error) {
	var due []*entity.ReminderNotification
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_send_time <= ?", constant.ReminderPending, now).
		Order("scheduled_send_time asc").
		Find(&due).Error
	if err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find due reminders: %w", err)
	}
	return due, nil
}

// ExistsForService reports whether a reminder already exists for the
// subscription's occurrence on the given service date.
func (r *reminderRepository) ExistsForService(ctx context.Context, subscriptionID string, serviceDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.ReminderNotification{}).
		Where("subscription_id = ? AND service_date = ?", subscriptionID, serviceDate).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("🔴 ERROR: failed to check reminder existence for subscription %s: %w", subscriptionID, err)
	}
	return count > 0, nil
}

// Create creates a new reminder.
func (r *reminderRepository) Create(ctx context.Context, n *entity.ReminderNotification) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to create reminder for subscription %s: %w", n.SubscriptionID, err)
	}
	return nil
}

// Update updates an existing reminder.
func (r *reminderRepository) Update(ctx context.Context, n *entity.ReminderNotification) error {
	if err := r.db.WithContext(ctx).Save(n).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to update reminder %s: %w", n.NotificationID, err)
	}
	return nil
}

// DeleteOlderThan deletes reminders created before the threshold, regardless
// of status.
func (r *reminderRepository) DeleteOlderThan(ctx context.Context, threshold time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ?", threshold).
		Delete(&entity.ReminderNotification{})
	if res.Error != nil {
		return 0, fmt.Errorf("🔴 ERROR: failed to delete old reminders older than %v: %w", threshold, res.Error)
	}
	return res.RowsAffected, nil
}

type liveNotificationRepository struct {
	db *gorm.DB
}

// NewLiveNotificationRepository creates a new instance of LiveNotificationRepository.
func NewLiveNotificationRepository(db *gorm.DB) repository.LiveNotificationRepository {
	return &liveNotificationRepository{db: db}
}

// FindByNotificationID retrieves a live notification by its public identifier.
func (r *liveNotificationRepository) FindByNotificationID(ctx context.Context, notificationID string) (*entity.LiveNotification, error) {
	var n entity.LiveNotification
	if err := r.db.WithContext(ctx).Where("notification_id = ?", notificationID).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", appErrors.ErrNotificationNotFound, notificationID)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find live notification %s: %w", notificationID, err)
	}
	return &n, nil
}

// FindActiveByTarget retrieves active notifications for a customer, including
// broadcasts.
func (r *liveNotificationRepository) FindActiveByTarget(ctx context.Context, customerID string) ([]*entity.LiveNotification, error) {
	var notifications []*entity.LiveNotification
	err := r.db.WithContext(ctx).
		Where("status = ? AND (target_type = ? OR (target_type = ? AND target_id = ?))",
			constant.LiveActive, "all", "customer", customerID).
		Order("created_at desc").
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find active live notifications for customer %s: %w", customerID, err)
	}
	return notifications, nil
}

// Create creates a new live notification.
func (r *liveNotificationRepository) Create(ctx context.Context, n *entity.LiveNotification) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to create live notification for target %s: %w", n.TargetID, err)
	}
	return nil
}

// Update updates an existing live notification.
func (r *liveNotificationRepository) Update(ctx context.Context, n *entity.LiveNotification) error {
	if err := r.db.WithContext(ctx).Save(n).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to update live notification %s: %w", n.NotificationID, err)
	}
	return nil
}

// DeleteOlderThanWithStatus deletes live notifications created before the
// threshold whose status is one of the given set.
func (r *liveNotificationRepository) DeleteOlderThanWithStatus(ctx context.Context, threshold time.Time, statuses []constant.LiveStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ? AND status IN ?", threshold, statuses).
		Delete(&entity.LiveNotification{})
	if res.Error != nil {
		return 0, fmt.Errorf("🔴 ERROR: failed to delete old live notifications older than %v: %w", threshold, res.Error)
	}
	return res.RowsAffected, nil
}
