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

type occurrenceRepository struct {
	db *gorm.DB
}

// NewOccurrenceRepository creates a new instance of OccurrenceRepository.
func NewOccurrenceRepository(db *gorm.DB) repository.OccurrenceRepository {
	return &occurrenceRepository{db: db}
}

// FindByOccurrenceID retrieves an occurrence by its public identifier.
func (r *occurrenceRepository) FindByOccurrenceID(ctx context.Context, occurrenceID string) (*entity.ServiceOccurrence, error) {
	var occ entity.ServiceOccurrence
	if err := r.db.WithContext(ctx).Where("occurrence_id = ?", occurrenceID).First(&occ).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", appErrors.ErrOccurrenceNotFound, occurrenceID)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find occurrence %s: %w", occurrenceID, err)
	}
	return &occ, nil
}

// FindBySubscriptionID retrieves all occurrences for a subscription.
func (r *occurrenceRepository) FindBySubscriptionID(ctx context.Context, subscriptionID string) ([]*entity.ServiceOccurrence, error) {
	var occs []*entity.ServiceOccurrence
	if err := r.db.WithContext(ctx).Where("subscription_id = ?", subscriptionID).Order("scheduled_date asc").Find(&occs).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find occurrences for subscription %s: %w", subscriptionID, err)
	}
	return occs, nil
}

// ExistsForDate reports whether a non-cancelled occurrence already exists for
// the subscription on the given date.
func (r *occurrenceRepository) ExistsForDate(ctx context.Context, subscriptionID string, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.ServiceOccurrence{}).
		Where("subscription_id = ? AND scheduled_date = ? AND status != ?",
			subscriptionID, date, constant.OccurrenceCancelled).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("🔴 ERROR: failed to check occurrence existence for subscription %s: %w", subscriptionID, err)
	}
	return count > 0, nil
}

// FindScheduledBySubscriptionID retrieves occurrences still in the scheduled
// state for a subscription.
func (r *occurrenceRepository) FindScheduledBySubscriptionID(ctx context.Context, subscriptionID string) ([]*entity.ServiceOccurrence, error) {
	var occs []*entity.ServiceOccurrence
	err := r.db.WithContext(ctx).
		Where("subscription_id = ? AND status = ?", subscriptionID, constant.OccurrenceScheduled).
		Find(&occs).Error
	if err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find scheduled occurrences for subscription %s: %w", subscriptionID, err)
	}
	return occs, nil
}

// Create creates a new occurrence.
func (r *occurrenceRepository) Create(ctx context.Context, occ *entity.ServiceOccurrence) error {
	if err := r.db.WithContext(ctx).Create(occ).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to create occurrence for subscription %s: %w", occ.SubscriptionID, err)
	}
	return nil
}

// Update updates an existing occurrence.
func (r *occurrenceRepository) Update(ctx context.Context, occ *entity.ServiceOccurrence) error {
	if err := r.db.WithContext(ctx).Save(occ).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to update occurrence %s: %w", occ.OccurrenceID, err)
	}
	return nil
}
