package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"carwash/internal/application/dto"
	"carwash/internal/domain/constant"
	"carwash/internal/domain/entity"
	"carwash/internal/domain/repository"
	"carwash/internal/metrics"
	"carwash/internal/pkg/logger"
)

// Provider-friendly send rates. SMTP and SMS providers both throttle;
// bursts cover a normal tick's worth of reminders.
const (
	sendsPerSecond = 5
	sendBurst      = 10
)

type notificationService struct {
	reminderRepo     repository.ReminderRepository
	liveRepo         repository.LiveNotificationRepository
	subscriptionRepo repository.SubscriptionRepository

	senders  map[constant.Channel]ChannelSender
	limiters map[constant.Channel]*rate.Limiter

	sendTimeout time.Duration
	retention   time.Duration

	log logger.Logger
	now func() time.Time
}

// NewNotificationService creates a new instance of NotificationService
// implementation with the given channel senders.
func NewNotificationService(
	reminderRepo repository.ReminderRepository,
	liveRepo repository.LiveNotificationRepository,
	subscriptionRepo repository.SubscriptionRepository,
	senders []ChannelSender,
	sendTimeout time.Duration,
	retention time.Duration,
	log logger.Logger,
) NotificationService {
	senderMap := make(map[constant.Channel]ChannelSender, len(senders))
	limiters := make(map[constant.Channel]*rate.Limiter, len(senders))
	for _, s := range senders {
		senderMap[s.Channel()] = s
		limiters[s.Channel()] = rate.NewLimiter(rate.Limit(sendsPerSecond), sendBurst)
	}
	return &notificationService{
		reminderRepo:     reminderRepo,
		liveRepo:         liveRepo,
		subscriptionRepo: subscriptionRepo,
		senders:          senderMap,
		limiters:         limiters,
		sendTimeout:      sendTimeout,
		retention:        retention,
		log:              log,
		now:              time.Now,
	}
}

// DispatchDueReminders sends every due pending reminder through its enabled
// channels. Delivery is at-least-once: a crash between a channel send and
// the status commit re-sends on the next tick.
func (s *notificationService) DispatchDueReminders(ctx context.Context) (int, error) {
	due, err := s.reminderRepo.FindDue(ctx, s.now().UTC())
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, reminder := range due {
		if err := s.dispatch(ctx, reminder); err != nil {
			// Skipped this tick, retried on the next one.
			s.log.Error(fmt.Sprintf("Failed to dispatch reminder %s", reminder.NotificationID), err)
			continue
		}
		processed++
	}
	return processed, nil
}

// dispatch sends one reminder through every enabled channel and commits the
// final status. A channel failure never aborts the remaining channels.
func (s *notificationService) dispatch(ctx context.Context, reminder *entity.ReminderNotification) error {
	sub, err := s.subscriptionRepo.FindBySubscriptionID(ctx, reminder.SubscriptionID)
	if err != nil {
		return err
	}
	recipient := sub.Recipient()

	for _, ch := range reminder.EnabledChannels() {
		sendErr := s.send(ctx, ch, recipient, reminder.Title, reminder.Message)
		errMsg := ""
		if sendErr != nil {
			errMsg = sendErr.Error()
			s.log.Warn(fmt.Sprintf("Channel %s failed for reminder %s: %v", ch, reminder.NotificationID, sendErr))
		}
		reminder.RecordDelivery(ch, sendErr == nil, errMsg)
		metrics.RecordChannelSend(ch.String(), sendErr == nil)
	}

	if reminder.AnySucceeded() {
		reminder.Status = constant.ReminderSent
		now := s.now().UTC()
		reminder.ActualSendTime = &now
	} else {
		reminder.Status = constant.ReminderFailed
	}
	metrics.RemindersDispatched.WithLabelValues(string(reminder.Status)).Inc()

	s.log.Info(fmt.Sprintf("Reminder %s dispatched with status %s", reminder.NotificationID, reminder.Status))
	return s.reminderRepo.Update(ctx, reminder)
}

// send invokes one channel sender with the per-send timeout and the
// channel's rate limiter. A panicking sender is treated as a failed send.
func (s *notificationService) send(ctx context.Context, ch constant.Channel, to entity.Recipient, title, message string) (err error) {
	sender, ok := s.senders[ch]
	if !ok {
		return fmt.Errorf("no sender configured for channel %s", ch)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("channel %s panicked: %v", ch, r)
		}
	}()

	if limiter := s.limiters[ch]; limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait for channel %s: %w", ch, err)
		}
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()
	return sender.Send(sendCtx, to, title, message)
}

// CleanupOldNotifications purges notification rows past the retention
// window. Active and read live notifications are never removed.
func (s *notificationService) CleanupOldNotifications(ctx context.Context) error {
	threshold := s.now().UTC().Add(-s.retention)

	purgedReminders, err := s.reminderRepo.DeleteOlderThan(ctx, threshold)
	if err != nil {
		s.log.Error("Failed to purge old reminder notifications", err)
	} else if purgedReminders > 0 {
		metrics.NotificationsPurged.WithLabelValues("reminder").Add(float64(purgedReminders))
	}

	purgedLive, err := s.liveRepo.DeleteOlderThanWithStatus(ctx, threshold,
		[]constant.LiveStatus{constant.LiveDismissed, constant.LiveExpired})
	if err != nil {
		s.log.Error("Failed to purge old live notifications", err)
	} else if purgedLive > 0 {
		metrics.NotificationsPurged.WithLabelValues("live").Add(float64(purgedLive))
	}

	s.log.Info(fmt.Sprintf("Retention sweep removed %d reminder and %d live notifications", purgedReminders, purgedLive))
	return nil
}

// ListActiveForCustomer retrieves the customer's active live notifications.
func (s *notificationService) ListActiveForCustomer(ctx context.Context, customerID string) ([]dto.LiveNotificationResponse, error) {
	notifications, err := s.liveRepo.FindActiveByTarget(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return dto.ToLiveNotificationResponseList(notifications), nil
}

// MarkRead marks a live notification as read.
func (s *notificationService) MarkRead(ctx context.Context, notificationID string) error {
	n, err := s.liveRepo.FindByNotificationID(ctx, notificationID)
	if err != nil {
		return err
	}
	n.MarkRead()
	return s.liveRepo.Update(ctx, n)
}

// Dismiss dismisses a live notification.
func (s *notificationService) Dismiss(ctx context.Context, notificationID string) error {
	n, err := s.liveRepo.FindByNotificationID(ctx, notificationID)
	if err != nil {
		return err
	}
	n.Dismiss()
	return s.liveRepo.Update(ctx, n)
}
