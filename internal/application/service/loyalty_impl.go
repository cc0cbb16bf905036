package service

import (
	"context"
	"fmt"
	"time"

	"carwash/internal/domain/constant"
	"carwash/internal/domain/entity"
	"carwash/internal/domain/repository"
	"carwash/internal/pkg/logger"
)

type loyaltyService struct {
	customerRepo repository.CustomerRepository
	liveRepo     repository.LiveNotificationRepository
	emailSender  ChannelSender
	log          logger.Logger
	now          func() time.Time
}

// NewLoyaltyService creates a new instance of LoyaltyService implementation.
// emailSender may be nil; reward emails are then skipped.
func NewLoyaltyService(
	customerRepo repository.CustomerRepository,
	liveRepo repository.LiveNotificationRepository,
	emailSender ChannelSender,
	log logger.Logger,
) LoyaltyService {
	return &loyaltyService{
		customerRepo: customerRepo,
		liveRepo:     liveRepo,
		emailSender:  emailSender,
		log:          log,
		now:          time.Now,
	}
}

// RecordCompletedBooking bumps the customer's completed-booking count,
// recomputes milestone rewards, persists the updated counts, and emits
// notifications for each newly earned reward.
func (s *loyaltyService) RecordCompletedBooking(ctx context.Context, customerID string, completedAt time.Time) ([]Reward, error) {
	customer, err := s.customerRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	customer.CompletedBookings++
	customer.LoyaltyPoints++
	if customer.FirstBookingDate == nil {
		customer.FirstBookingDate = &completedAt
	}
	customer.LastBookingDate = &completedAt

	newRewards, updated, err := EvaluateRewards(customer.CompletedBookings, EarnedRewards{
		FreeWashes: customer.FreeWashesEarned,
		Discounts:  customer.DiscountEarned,
	})
	if err != nil {
		return nil, err
	}
	customer.FreeWashesEarned = updated.FreeWashes
	customer.DiscountEarned = updated.Discounts

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	for _, reward := range newRewards {
		s.notifyReward(ctx, customer, reward)
	}
	return newRewards, nil
}

// notifyReward emits a live notification and a reward email for one newly
// earned reward. Failures are logged; the reward itself is already persisted.
func (s *loyaltyService) notifyReward(ctx context.Context, customer *entity.Customer, reward Reward) {
	title, message := rewardCopy(reward, customer)

	now := s.now().UTC()
	live := &entity.LiveNotification{
		NotificationID: entity.NewLiveNotificationID(),
		TargetType:     "customer",
		TargetID:       customer.CustomerID,
		Title:          title,
		Message:        message,
		Type:           "success",
		Priority:       constant.PriorityHigh,
		Status:         constant.LiveActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.liveRepo.Create(ctx, live); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create reward notification for customer %s", customer.CustomerID), err)
	}

	if s.emailSender != nil && customer.EmailNotifications {
		if err := s.emailSender.Send(ctx, customer.Recipient(), title, message); err != nil {
			s.log.Error(fmt.Sprintf("Failed to send reward email to customer %s", customer.CustomerID), err)
		}
	}
}

func rewardCopy(reward Reward, customer *entity.Customer) (title, message string) {
	switch reward {
	case RewardFreeWash:
		return "You've Earned a Free Wash! 🎉",
			fmt.Sprintf("Congratulations %s! You've completed %d bookings and earned a free wash. It's waiting in your account.",
				customer.Name, customer.CompletedBookings)
	case RewardDiscount:
		return "You've Earned a 15% Discount!",
			fmt.Sprintf("Congratulations %s! You've completed %d bookings and earned a 15%% discount on your next service.",
				customer.Name, customer.CompletedBookings)
	default:
		return "You've Earned a Reward!",
			fmt.Sprintf("Congratulations %s! A new loyalty reward has been added to your account.", customer.Name)
	}
}
