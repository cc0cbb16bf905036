package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"carwash/internal/infrastructure/scheduler"
	"carwash/internal/metrics"
	appErrors "carwash/internal/pkg/errors"
	"carwash/internal/pkg/logger"
)

type schedulerService struct {
	cron            *scheduler.Cron
	subscriptionSvc SubscriptionService
	notificationSvc NotificationService

	tickMinutes int
	sweepHour   int

	mu            sync.Mutex
	lastSchedule  time.Time // last hourly occurrence-scheduling pass
	lastSweepDate string    // calendar date of the last retention sweep

	log logger.Logger
	now func() time.Time
}

// NewSchedulerService creates a new instance of SchedulerService
// implementation on top of the cron runner.
func NewSchedulerService(
	cron *scheduler.Cron,
	subscriptionSvc SubscriptionService,
	notificationSvc NotificationService,
	tickMinutes int,
	sweepHour int,
	log logger.Logger,
) SchedulerService {
	return &schedulerService{
		cron:            cron,
		subscriptionSvc: subscriptionSvc,
		notificationSvc: notificationSvc,
		tickMinutes:     tickMinutes,
		sweepHour:       sweepHour,
		log:             log,
		now:             time.Now,
	}
}

// Start registers the tick job and starts the loop.
func (s *schedulerService) Start() error {
	spec := fmt.Sprintf("0 */%d * * * *", s.tickMinutes)
	_, err := s.cron.AddJob(spec, func() {
		s.RunTick(context.Background())
	})
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrScheduling, err)
	}
	s.cron.Start()
	s.log.Info(fmt.Sprintf("Scheduling loop started, ticking every %d minutes", s.tickMinutes))
	return nil
}

// Stop stops the loop and waits for a running tick to finish.
func (s *schedulerService) Stop() {
	s.cron.Stop()
}

// RunTick executes one full work cycle: reminder dispatch on every tick,
// occurrence scheduling hourly, retention sweep once per day. A failure in
// one phase never blocks the others; everything is retried on later ticks.
func (s *schedulerService) RunTick(ctx context.Context) {
	start := s.now()
	defer func() {
		metrics.TickDuration.Observe(time.Since(start).Seconds())
	}()

	if n, err := s.notificationSvc.DispatchDueReminders(ctx); err != nil {
		s.log.Error("Reminder dispatch failed", err)
	} else if n > 0 {
		s.log.Info(fmt.Sprintf("Dispatched %d due reminders", n))
	}

	if s.shouldSchedule(start) {
		if n, err := s.subscriptionSvc.ScheduleRecurringServices(ctx); err != nil {
			s.log.Error("Occurrence scheduling failed", err)
		} else if n > 0 {
			s.log.Info(fmt.Sprintf("Scheduled %d recurring services", n))
		}
	}

	if s.shouldSweep(start) {
		if err := s.notificationSvc.CleanupOldNotifications(ctx); err != nil {
			s.log.Error("Retention sweep failed", err)
		}
	}
}

// shouldSchedule gates the occurrence-scheduling pass to once per hour.
// The first tick after startup always runs it.
func (s *schedulerService) shouldSchedule(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.lastSchedule.IsZero() && now.Sub(s.lastSchedule) < time.Hour {
		return false
	}
	s.lastSchedule = now
	return true
}

// shouldSweep gates the retention sweep to once per calendar day, at the
// configured hour of day.
func (s *schedulerService) shouldSweep(now time.Time) bool {
	if now.Hour() != s.sweepHour {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	day := now.Format("2006-01-02")
	if s.lastSweepDate == day {
		return false
	}
	s.lastSweepDate = day
	return true
}
