package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carwash/internal/application/dto"
	"carwash/internal/domain/constant"
	"carwash/internal/domain/entity"
	"carwash/internal/domain/repository"
	"carwash/internal/metrics"
	appErrors "carwash/internal/pkg/errors"
	"carwash/internal/pkg/logger"
)

const (
	defaultLeadDays = 2
	dateLayout      = "2006-01-02"
)

type subscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	occurrenceRepo   repository.OccurrenceRepository
	reminderRepo     repository.ReminderRepository
	customerRepo     repository.CustomerRepository
	planRepo         repository.PlanRepository

	loyalty LoyaltyService
	ops     OpsNotifier

	lookaheadDays int
	reminderHour  int

	log logger.Logger
	now func() time.Time
}

// NewSubscriptionService creates a new instance of SubscriptionService
// implementation. ops may be nil; operational events are then skipped.
func NewSubscriptionService(
	subscriptionRepo repository.SubscriptionRepository,
	occurrenceRepo repository.OccurrenceRepository,
	reminderRepo repository.ReminderRepository,
	customerRepo repository.CustomerRepository,
	planRepo repository.PlanRepository,
	loyalty LoyaltyService,
	ops OpsNotifier,
	lookaheadDays int,
	reminderHour int,
	log logger.Logger,
) SubscriptionService {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		occurrenceRepo:   occurrenceRepo,
		reminderRepo:     reminderRepo,
		customerRepo:     customerRepo,
		planRepo:         planRepo,
		loyalty:          loyalty,
		ops:              ops,
		lookaheadDays:    lookaheadDays,
		reminderHour:     reminderHour,
		log:              log,
		now:              time.Now,
	}
}

// CreateSubscription creates a subscription after a successful payment
// confirmation. Malformed frequency and lead-day values are rejected here,
// never inside the scheduling core.
func (s *subscriptionService) CreateSubscription(ctx context.Context, req dto.CreateSubscriptionRequest) (*entity.Subscription, error) {
	frequency := constant.Frequency(req.Frequency)
	if !frequency.Valid() {
		return nil, fmt.Errorf("%w: %q", appErrors.ErrInvalidFrequency, req.Frequency)
	}
	leadDays := defaultLeadDays
	if req.LeadDays != nil {
		if *req.LeadDays < 0 {
			return nil, fmt.Errorf("%w: %d", appErrors.ErrInvalidLeadDays, *req.LeadDays)
		}
		leadDays = *req.LeadDays
	}

	plan, err := s.planRepo.FindByPlanID(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}
	if len(plan.Frequencies) > 0 && !plan.SupportsFrequency(frequency) {
		return nil, fmt.Errorf("%w: plan %s does not support %s", appErrors.ErrInvalidFrequency, plan.PlanID, frequency)
	}

	startDate := DateOf(s.now())
	if req.StartDate != "" {
		parsed, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start_date %q: %w", req.StartDate, err)
		}
		startDate = DateOf(parsed)
	}

	customer, err := s.findOrCreateCustomer(ctx, req.CustomerInfo)
	if err != nil {
		return nil, err
	}

	notifyEmail, notifySMS := true, true
	if req.NotifyEmail != nil {
		notifyEmail = *req.NotifyEmail
	}
	if req.NotifySMS != nil {
		notifySMS = *req.NotifySMS
	}

	now := s.now().UTC()
	sub := &entity.Subscription{
		SubscriptionID:  entity.NewSubscriptionID(),
		PlanID:          plan.PlanID,
		CustomerID:      customer.CustomerID,
		CustomerName:    req.CustomerInfo.Name,
		CustomerEmail:   req.CustomerInfo.Email,
		CustomerPhone:   req.CustomerInfo.Phone,
		Address:         req.CustomerInfo.Address,
		VehicleType:     req.VehicleType,
		Frequency:       frequency,
		PreferredTime:   req.PreferredTime,
		StartDate:       startDate,
		Status:          constant.SubscriptionActive,
		NextServiceDate: &startDate,
		NotifyEmail:     notifyEmail,
		NotifySMS:       notifySMS,
		LeadDays:        leadDays,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.subscriptionRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	// First occurrence at the start date, with its reminder.
	if err := s.materializeOccurrence(ctx, sub, startDate); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create first occurrence for subscription %s", sub.SubscriptionID), err)
	}

	if s.ops != nil {
		s.ops.NotifySubscriptionCreated(ctx, sub)
	}
	s.log.Info(fmt.Sprintf("Subscription %s created for customer %s", sub.SubscriptionID, customer.CustomerID))
	return sub, nil
}

func (s *subscriptionService) findOrCreateCustomer(ctx context.Context, info dto.CustomerInfo) (*entity.Customer, error) {
	customer, err := s.customerRepo.FindByEmail(ctx, info.Email)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, appErrors.ErrCustomerNotFound) {
		return nil, err
	}

	now := s.now().UTC()
	customer = &entity.Customer{
		CustomerID:         entity.NewCustomerID(),
		Name:               info.Name,
		Email:              info.Email,
		Phone:              info.Phone,
		EmailNotifications: true,
		SMSNotifications:   true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetSubscription retrieves a subscription by its identifier.
func (s *subscriptionService) GetSubscription(ctx context.Context, subscriptionID string) (*entity.Subscription, error) {
	return s.subscriptionRepo.FindBySubscriptionID(ctx, subscriptionID)
}

// PauseSubscription pauses an active subscription.
func (s *subscriptionService) PauseSubscription(ctx context.Context, subscriptionID string) error {
	sub, err := s.subscriptionRepo.FindBySubscriptionID(ctx, subscriptionID)
	if err != nil {
		return err
	}
	if sub.Status != constant.SubscriptionActive {
		return fmt.Errorf("%w: cannot pause subscription in status %s", appErrors.ErrInvalidStatus, sub.Status)
	}
	sub.Status = constant.SubscriptionPaused
	return s.subscriptionRepo.Update(ctx, sub)
}

// ResumeSubscription reactivates a paused subscription. A stale next service
// date is recomputed from today so the scheduler picks it up again.
func (s *subscriptionService) ResumeSubscription(ctx context.Context, subscriptionID string) error {
	sub, err := s.subscriptionRepo.FindBySubscriptionID(ctx, subscriptionID)
	if err != nil {
		return err
	}
	if sub.Status != constant.SubscriptionPaused {
		return fmt.Errorf("%w: cannot resume subscription in status %s", appErrors.ErrInvalidStatus, sub.Status)
	}
	sub.Status = constant.SubscriptionActive

	today := DateOf(s.now())
	if sub.NextServiceDate == nil || sub.NextServiceDate.Before(today) {
		next := NextServiceDate(sub.Frequency, today)
		sub.NextServiceDate = &next
	}
	return s.subscriptionRepo.Update(ctx, sub)
}

// CancelSubscription cancels a subscription. The record is never deleted;
// future scheduled occurrences are cancelled alongside it.
func (s *subscriptionService) CancelSubscription(ctx context.Context, subscriptionID string) error {
	sub, err := s.subscriptionRepo.FindBySubscriptionID(ctx, subscriptionID)
	if err != nil {
		return err
	}
	if sub.Status == constant.SubscriptionCancelled {
		return fmt.Errorf("%w: subscription already cancelled", appErrors.ErrInvalidStatus)
	}
	sub.Status = constant.SubscriptionCancelled
	sub.NextServiceDate = nil
	if err := s.subscriptionRepo.Update(ctx, sub); err != nil {
		return err
	}

	occs, err := s.occurrenceRepo.FindScheduledBySubscriptionID(ctx, subscriptionID)
	if err != nil {
		return err
	}
	today := DateOf(s.now())
	for _, occ := range occs {
		if occ.ScheduledDate.Before(today) {
			continue
		}
		occ.Status = constant.OccurrenceCancelled
		if err := s.occurrenceRepo.Update(ctx, occ); err != nil {
			s.log.Error(fmt.Sprintf("Failed to cancel occurrence %s", occ.OccurrenceID), err)
		}
	}
	s.log.Info(fmt.Sprintf("Subscription %s cancelled", subscriptionID))
	return nil
}

// CompleteOccurrence handles the booking-completed event from the booking
// collaborator.
func (s *subscriptionService) CompleteOccurrence(ctx context.Context, occurrenceID string, req dto.CompleteOccurrenceRequest) error {
	occ, err := s.occurrenceRepo.FindByOccurrenceID(ctx, occurrenceID)
	if err != nil {
		return err
	}
	if occ.Status.Terminal() {
		return fmt.Errorf("%w: occurrence %s is already %s", appErrors.ErrInvalidStatus, occurrenceID, occ.Status)
	}

	completedDate := DateOf(s.now())
	if req.CompletedDate != "" {
		parsed, err := time.Parse(dateLayout, req.CompletedDate)
		if err != nil {
			return fmt.Errorf("invalid completed_date %q: %w", req.CompletedDate, err)
		}
		completedDate = DateOf(parsed)
	}

	now := s.now().UTC()
	occ.Status = constant.OccurrenceCompleted
	occ.CompletedAt = &now
	occ.Rating = req.Rating
	occ.Notes = req.Notes
	if err := s.occurrenceRepo.Update(ctx, occ); err != nil {
		return err
	}

	sub, err := s.subscriptionRepo.FindBySubscriptionID(ctx, occ.SubscriptionID)
	if err != nil {
		return err
	}
	sub.LastServiceDate = &completedDate
	next := NextServiceDate(sub.Frequency, completedDate)
	// next_service_date is monotonically non-decreasing.
	if sub.NextServiceDate == nil || next.After(*sub.NextServiceDate) {
		sub.NextServiceDate = &next
	}
	if err := s.subscriptionRepo.Update(ctx, sub); err != nil {
		return err
	}

	if sub.CustomerID != "" {
		if _, err := s.loyalty.RecordCompletedBooking(ctx, sub.CustomerID, completedDate); err != nil {
			// The completion itself is committed; the milestone engine
			// recomputes from the booking count, so a retry catches up.
			s.log.Error(fmt.Sprintf("Loyalty evaluation failed for customer %s", sub.CustomerID), err)
		}
	}

	if s.ops != nil {
		s.ops.NotifyBookingCompleted(ctx, occ)
	}
	s.log.Info(fmt.Sprintf("Occurrence %s completed, next service %s", occurrenceID, next.Format(dateLayout)))
	return nil
}

// ScheduleRecurringServices materializes the next occurrence and reminder
// for every active subscription due within the lookahead window. A failure
// on one subscription never aborts the sweep.
func (s *subscriptionService) ScheduleRecurringServices(ctx context.Context) (int, error) {
	subs, err := s.subscriptionRepo.FindByStatus(ctx, constant.SubscriptionActive)
	if err != nil {
		return 0, err
	}

	today := DateOf(s.now())
	horizon := today.AddDate(0, 0, s.lookaheadDays)

	created := 0
	for _, sub := range subs {
		if sub.NextServiceDate == nil {
			continue
		}
		next := DateOf(*sub.NextServiceDate)
		if next.After(horizon) {
			continue
		}
		n, err := s.materializeIfMissing(ctx, sub, next)
		if err != nil {
			s.log.Error(fmt.Sprintf("Failed to schedule subscription %s", sub.SubscriptionID), err)
			continue
		}
		created += n
	}
	return created, nil
}

// materializeIfMissing creates the occurrence for the given date unless one
// already exists, then ensures its reminder is scheduled. Returns 1 if an
// occurrence was created.
func (s *subscriptionService) materializeIfMissing(ctx context.Context, sub *entity.Subscription, serviceDate time.Time) (int, error) {
	exists, err := s.occurrenceRepo.ExistsForDate(ctx, sub.SubscriptionID, serviceDate)
	if err != nil {
		return 0, err
	}
	if exists {
		// Occurrence already there; the reminder check below still runs so a
		// previously failed reminder write is retried.
		if err := s.scheduleReminder(ctx, sub, serviceDate); err != nil {
			return 0, err
		}
		return 0, nil
	}
	if err := s.materializeOccurrence(ctx, sub, serviceDate); err != nil {
		return 0, err
	}
	return 1, nil
}

// materializeOccurrence creates a scheduled occurrence and its reminder.
func (s *subscriptionService) materializeOccurrence(ctx context.Context, sub *entity.Subscription, serviceDate time.Time) error {
	now := s.now().UTC()
	occ := &entity.ServiceOccurrence{
		OccurrenceID:   entity.NewOccurrenceID(),
		SubscriptionID: sub.SubscriptionID,
		ScheduledDate:  serviceDate,
		ScheduledTime:  sub.PreferredTime,
		Status:         constant.OccurrenceScheduled,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.occurrenceRepo.Create(ctx, occ); err != nil {
		return err
	}
	metrics.OccurrencesScheduled.Inc()
	s.log.Info(fmt.Sprintf("Scheduled occurrence %s for subscription %s on %s",
		occ.OccurrenceID, sub.SubscriptionID, serviceDate.Format(dateLayout)))

	return s.scheduleReminder(ctx, sub, serviceDate)
}

// scheduleReminder creates the reminder for the given service date unless
// the reminder date has already passed or a reminder already exists.
func (s *subscriptionService) scheduleReminder(ctx context.Context, sub *entity.Subscription, serviceDate time.Time) error {
	reminderDate := serviceDate.AddDate(0, 0, -sub.LeadDays)
	if reminderDate.Before(DateOf(s.now())) {
		return nil
	}

	exists, err := s.reminderRepo.ExistsForService(ctx, sub.SubscriptionID, serviceDate)
	if err != nil || exists {
		return err
	}

	planName := "car service"
	if plan, err := s.planRepo.FindByPlanID(ctx, sub.PlanID); err == nil {
		planName = plan.Name
	}

	now := s.now().UTC()
	reminder := &entity.ReminderNotification{
		NotificationID: entity.NewReminderID(),
		SubscriptionID: sub.SubscriptionID,
		Title:          "Upcoming Car Service Reminder",
		Message: fmt.Sprintf("Your %s is scheduled for %s at %s. We'll be at %s.",
			planName, serviceDate.Format("January 2, 2006"), sub.PreferredTime, sub.Address),
		ScheduledSendTime: CombineDateHour(reminderDate, s.reminderHour),
		ServiceDate:       serviceDate,
		ServiceTime:       sub.PreferredTime,
		SendEmail:         sub.NotifyEmail,
		SendSMS:           sub.NotifySMS,
		SendWebsite:       true,
		Status:            constant.ReminderPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.reminderRepo.Create(ctx, reminder); err != nil {
		return err
	}
	s.log.Info(fmt.Sprintf("Scheduled reminder %s for subscription %s, send at %s",
		reminder.NotificationID, sub.SubscriptionID, reminder.ScheduledSendTime.Format(time.RFC3339)))
	return nil
}
