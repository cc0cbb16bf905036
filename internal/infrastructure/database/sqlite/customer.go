package sqlite

import (
	"context"
	"errors"
	"fmt"

	"carwash/internal/domain/entity"
	"carwash/internal/domain/repository"
	appErrors "carwash/internal/pkg/errors"

	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new instance of CustomerRepository.
func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

// FindByCustomerID retrieves a customer by their public identifier.
func (r *customerRepository) FindByCustomerID(ctx context.Context, customerID string) (*entity.Customer, error) {
	var c entity.Customer
	if err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", appErrors.ErrCustomerNotFound, customerID)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find customer %s: %w", customerID, err)
	}
	return &c, nil
}

// FindByEmail retrieves a customer by their email address.
func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	var c entity.Customer
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", appErrors.ErrCustomerNotFound, email)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find customer by email %s: %w", email, err)
	}
	return &c, nil
}

// Create creates a new customer.
func (r *customerRepository) Create(ctx context.Context, c *entity.Customer) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to create customer %s: %w", c.Email, err)
	}
	return nil
}

// Update updates an existing customer.
func (r *customerRepository) Update(ctx context.Context, c *entity.Customer) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to update customer %s: %w", c.CustomerID, err)
	}
	return nil
}

type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new instance of PlanRepository.
func NewPlanRepository(db *gorm.DB) repository.PlanRepository {
	return &planRepository{db: db}
}

// FindByPlanID retrieves a plan by its public identifier.
func (r *planRepository) FindByPlanID(ctx context.Context, planID string) (*entity.Plan, error) {
	var p entity.Plan
	if err := r.db.WithContext(ctx).Where("plan_id = ?", planID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", appErrors.ErrPlanNotFound, planID)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find plan %s: %w", planID, err)
	}
	return &p, nil
}

// FindByServiceType retrieves a plan by its service type.
func (r *planRepository) FindByServiceType(ctx context.Context, serviceType string) (*entity.Plan, error) {
	var p entity.Plan
	if err := r.db.WithContext(ctx).Where("service_type = ?", serviceType).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", appErrors.ErrPlanNotFound, serviceType)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find plan by service type %s: %w", serviceType, err)
	}
	return &p, nil
}

// FindActive retrieves all active plans.
func (r *planRepository) FindActive(ctx context.Context) ([]*entity.Plan, error) {
	var plans []*entity.Plan
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find active plans: %w", err)
	}
	return plans, nil
}

// Create creates a new plan.
func (r *planRepository) Create(ctx context.Context, p *entity.Plan) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to create plan %s: %w", p.ServiceType, err)
	}
	return nil
}
