package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carwash/internal/domain/constant"
	"carwash/internal/domain/entity"
	"carwash/internal/domain/repository"
	appErrors "carwash/internal/pkg/errors"
	"carwash/internal/pkg/logger"
)

// defaultPlans is the service catalog seeded on first startup.
var defaultPlans = []entity.Plan{
	{
		Name:        "Mini Valet Subscription",
		Description: "Comprehensive exterior and interior cleaning service",
		ServiceType: "mini_valet",
		BasePrice:   35.0,
		Frequencies: []constant.Frequency{constant.FrequencyWeekly, constant.FrequencyBiWeekly, constant.FrequencyMonthly},
		Features: []string{
			"Full exterior wash",
			"Interior vacuuming",
			"Dashboard cleaning",
			"Window cleaning (interior & exterior)",
			"Wheel and tire cleaning",
		},
		DurationMinutes: 90,
	},
	{
		Name:        "Full Valet Subscription",
		Description: "Complete premium cleaning service inside and out",
		ServiceType: "full_valet",
		BasePrice:   80.0,
		Frequencies: []constant.Frequency{constant.FrequencyBiWeekly, constant.FrequencyMonthly},
		Features: []string{
			"Complete exterior wash and wax",
			"Full interior deep clean",
			"Leather/fabric treatment",
			"All windows cleaned",
			"Wheel and tire shine",
		},
		DurationMinutes: 120,
	},
	{
		Name:        "Interior Detailing Subscription",
		Description: "Professional interior deep cleaning and protection service",
		ServiceType: "interior_detailing",
		BasePrice:   140.0,
		Frequencies: []constant.Frequency{constant.FrequencyMonthly},
		Features: []string{
			"Deep interior cleaning",
			"Leather conditioning",
			"Steam cleaning",
			"Odor elimination",
		},
		DurationMinutes: 180,
		IsPremium:       true,
	},
	{
		Name:        "Exterior Detailing Subscription",
		Description: "Professional exterior paint correction and protection",
		ServiceType: "exterior_detailing",
		BasePrice:   200.0,
		Frequencies: []constant.Frequency{constant.FrequencyMonthly},
		Features: []string{
			"Paint correction",
			"Ceramic coating application",
			"Headlight restoration",
			"Tire and wheel detailing",
		},
		DurationMinutes: 300,
		IsPremium:       true,
	},
	{
		Name:        "Full Detailing Subscription",
		Description: "Complete professional detailing service - interior and exterior",
		ServiceType: "full_detailing",
		BasePrice:   300.0,
		Frequencies: []constant.Frequency{constant.FrequencyMonthly},
		Features: []string{
			"Complete paint correction",
			"Ceramic coating",
			"Full interior detailing",
			"Engine bay cleaning",
		},
		DurationMinutes: 480,
		IsPremium:       true,
	},
}

// SeedDefaultPlans creates the default plan catalog, skipping any plan whose
// service type already exists. Safe to run on every startup.
func SeedDefaultPlans(ctx context.Context, planRepo repository.PlanRepository, log logger.Logger) error {
	created := 0
	for _, tmpl := range defaultPlans {
		_, err := planRepo.FindByServiceType(ctx, tmpl.ServiceType)
		if err == nil {
			continue
		}
		if !errors.Is(err, appErrors.ErrPlanNotFound) {
			return err
		}

		plan := tmpl
		plan.PlanID = entity.NewPlanID()
		plan.IsActive = true
		plan.CreatedAt = time.Now().UTC()
		plan.UpdatedAt = plan.CreatedAt
		if err := planRepo.Create(ctx, &plan); err != nil {
			return err
		}
		created++
		log.Info(fmt.Sprintf("Created subscription plan: %s", plan.Name))
	}
	if created > 0 {
		log.Info(fmt.Sprintf("Seeded %d subscription plans", created))
	}
	return nil
}
