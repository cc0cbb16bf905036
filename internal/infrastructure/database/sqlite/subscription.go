package sqlite

import (
	"context"
	"errors"
	"fmt"

	"carwash/internal/domain/constant"
	"carwash/internal/domain/entity"
	"carwash/internal/domain/repository"
	appErrors "carwash/internal/pkg/errors"

	"gorm.io/gorm"
)

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new instance of SubscriptionRepository.
func NewSubscriptionRepository(db *gorm.DB) repository.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// FindBySubscriptionID retrieves a subscription by its public identifier.
func (r *subscriptionRepository) FindBySubscriptionID(ctx context.Context, subscriptionID string) (*entity.Subscription, error) {
	var sub entity.Subscription
	if err := r.db.WithContext(ctx).Where("subscription_id = ?", subscriptionID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", appErrors.ErrSubscriptionNotFound, subscriptionID)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find subscription %s: %w", subscriptionID, err)
	}
	return &sub, nil
}

// FindByCustomerID retrieves all subscriptions for a customer.
func (r *subscriptionRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*entity.Subscription, error) {
	var subs []*entity.Subscription
	if err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find subscriptions for customer %s: %w", customerID, err)
	}
	return subs, nil
}

// FindByStatus retrieves all subscriptions in the given status.
func (r *subscriptionRepository) FindByStatus(ctx context.Context, status constant.SubscriptionStatus) ([]*entity.Subscription, error) {
	var subs []*entity.Subscription
	if err := r.db.WithContext(ctx).Where("status = ?", status).Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find subscriptions with status %s: %w", status, err)
	}
	return subs, nil
}

// Create creates a new subscription.
func (r *subscriptionRepository) Create(ctx context.Context, sub *entity.Subscription) error {
	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to create subscription for customer %s: %w", sub.CustomerID, err)
	}
	return nil
}

// Update updates an existing subscription.
func (r *subscriptionRepository) Update(ctx context.Context, sub *entity.Subscription) error {
	if err := r.db.WithContext(ctx).Save(sub).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to update subscription %s: %w", sub.SubscriptionID, err)
	}
	return nil
}
