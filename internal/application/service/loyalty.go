package service

import (
	"context"
	"fmt"
	"time"

	appErrors "carwash/internal/pkg/errors"
)

// Loyalty milestone thresholds: a free wash every 5 completed bookings and
// a discount every 10.
const (
	freeWashMilestone = 5
	discountMilestone = 10
)

// Reward identifies a loyalty reward type.
type Reward string

const (
	RewardFreeWash Reward = "free_wash"
	RewardDiscount Reward = "15_percent_discount"
)

// EarnedRewards holds a customer's earned milestone counts.
type EarnedRewards struct {
	FreeWashes int
	Discounts  int
}

// EvaluateRewards recomputes the milestone counts a customer is entitled to
// from their completed-booking count and diffs against the previously earned
// counts, returning only the rewards newly earned by this call. Calling it
// again with the same inputs yields no new rewards, so the engine is safe to
// re-run.
func EvaluateRewards(completedBookings int, earned EarnedRewards) ([]Reward, EarnedRewards, error) {
	if completedBookings < 0 {
		return nil, earned, fmt.Errorf("%w: %d", appErrors.ErrInvalidBookingCount, completedBookings)
	}

	entitled := EarnedRewards{
		FreeWashes: completedBookings / freeWashMilestone,
		Discounts:  completedBookings / discountMilestone,
	}

	var newRewards []Reward
	for i := earned.FreeWashes; i < entitled.FreeWashes; i++ {
		newRewards = append(newRewards, RewardFreeWash)
	}
	for i := earned.Discounts; i < entitled.Discounts; i++ {
		newRewards = append(newRewards, RewardDiscount)
	}

	// Earned counts never go backwards, even if the entitled count is
	// somehow lower than what was previously recorded.
	if entitled.FreeWashes < earned.FreeWashes {
		entitled.FreeWashes = earned.FreeWashes
	}
	if entitled.Discounts < earned.Discounts {
		entitled.Discounts = earned.Discounts
	}
	return newRewards, entitled, nil
}

// LoyaltyService defines the interface for the loyalty milestone engine's
// booking-completion entry point.
type LoyaltyService interface {
	// RecordCompletedBooking bumps the customer's completed-booking count,
	// recomputes milestone rewards, persists the updated counts, and emits a
	// live notification and reward email for each newly earned reward.
	RecordCompletedBooking(ctx context.Context, customerID string, completedAt time.Time) ([]Reward, error)
}
