package repository

import (
	"context"

	"carwash/internal/domain/entity"
)

// CustomerRepository defines the interface for customer data operations.
type CustomerRepository interface {
	// FindByCustomerID retrieves a customer by their public identifier.
	FindByCustomerID(ctx context.Context, customerID string) (*entity.Customer, error)
	// FindByEmail retrieves a customer by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.Customer, error)
	// Create creates a new customer.
	Create(ctx context.Context, c *entity.Customer) error
	// Update updates an existing customer.
	Update(ctx context.Context, c *entity.Customer) error
}

// PlanRepository defines the interface for subscription plan lookups.
type PlanRepository interface {
	// FindByPlanID retrieves a plan by its public identifier.
	FindByPlanID(ctx context.Context, planID string) (*entity.Plan, error)
	// FindByServiceType retrieves a plan by its service type.
	FindByServiceType(ctx context.Context, serviceType string) (*entity.Plan, error)
	// FindActive retrieves all active plans.
	FindActive(ctx context.Context) ([]*entity.Plan, error)
	// Create creates a new plan.
	Create(ctx context.Context, p *entity.Plan) error
}
