package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"carwash/internal/domain/constant"
	"carwash/internal/domain/entity"
	appErrors "carwash/internal/pkg/errors"
)

// In-memory repository fakes shared by the service tests.

type nopLogger struct{}

func (nopLogger) Error(string, error) {}
func (nopLogger) Warn(string)         {}
func (nopLogger) Info(string)         {}
func (nopLogger) Debug(string)        {}

type fakeSubscriptionRepo struct {
	mu   sync.Mutex
	subs map[string]*entity.Subscription
	err  error
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[string]*entity.Subscription)}
}

func (r *fakeSubscriptionRepo) FindBySubscriptionID(_ context.Context, id string) (*entity.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if sub, ok := r.subs[id]; ok {
		return sub, nil
	}
	return nil, fmt.Errorf("%w: %s", appErrors.ErrSubscriptionNotFound, id)
}

func (r *fakeSubscriptionRepo) FindByCustomerID(_ context.Context, customerID string) ([]*entity.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Subscription
	for _, sub := range r.subs {
		if sub.CustomerID == customerID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) FindByStatus(_ context.Context, status constant.SubscriptionStatus) ([]*entity.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []*entity.Subscription
	for _, sub := range r.subs {
		if sub.Status == status {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) Create(_ context.Context, sub *entity.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.subs[sub.SubscriptionID] = sub
	return nil
}

func (r *fakeSubscriptionRepo) Update(_ context.Context, sub *entity.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.subs[sub.SubscriptionID] = sub
	return nil
}

type fakeOccurrenceRepo struct {
	mu   sync.Mutex
	occs []*entity.ServiceOccurrence
	err  error
}

func (r *fakeOccurrenceRepo) FindByOccurrenceID(_ context.Context, id string) (*entity.ServiceOccurrence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, occ := range r.occs {
		if occ.OccurrenceID == id {
			return occ, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", appErrors.ErrOccurrenceNotFound, id)
}

func (r *fakeOccurrenceRepo) FindBySubscriptionID(_ context.Context, subID string) ([]*entity.ServiceOccurrence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ServiceOccurrence
	for _, occ := range r.occs {
		if occ.SubscriptionID == subID {
			out = append(out, occ)
		}
	}
	return out, nil
}

func (r *fakeOccurrenceRepo) ExistsForDate(_ context.Context, subID string, date time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	for _, occ := range r.occs {
		if occ.SubscriptionID == subID && occ.ScheduledDate.Equal(date) && occ.Status != constant.OccurrenceCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeOccurrenceRepo) FindScheduledBySubscriptionID(_ context.Context, subID string) ([]*entity.ServiceOccurrence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ServiceOccurrence
	for _, occ := range r.occs {
		if occ.SubscriptionID == subID && occ.Status == constant.OccurrenceScheduled {
			out = append(out, occ)
		}
	}
	return out, nil
}

func (r *fakeOccurrenceRepo) Create(_ context.Context, occ *entity.ServiceOccurrence) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.occs = append(r.occs, occ)
	return nil
}

func (r *fakeOccurrenceRepo) Update(_ context.Context, occ *entity.ServiceOccurrence) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.occs {
		if existing.OccurrenceID == occ.OccurrenceID {
			r.occs[i] = occ
			return nil
		}
	}
	return fmt.Errorf("%w: %s", appErrors.ErrOccurrenceNotFound, occ.OccurrenceID)
}

type fakeReminderRepo struct {
	mu        sync.Mutex
	reminders []*entity.ReminderNotification
	err       error
}

func (r *fakeReminderRepo) FindByNotificationID(_ context.Context, id string) (*entity.ReminderNotification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.reminders {
		if n.NotificationID == id {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", appErrors.ErrNotificationNotFound, id)
}

func (r *fakeReminderRepo) FindDue(_ context.Context, now time.Time) ([]*entity.ReminderNotification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var due []*entity.ReminderNotification
	for _, n := range r.reminders {
		if n.Status == constant.ReminderPending && !n.ScheduledSendTime.After(now) {
			due = append(due, n)
		}
	}
	return due, nil
}

func (r *fakeReminderRepo) ExistsForService(_ context.Context, subID string, serviceDate time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	for _, n := range r.reminders {
		if n.SubscriptionID == subID && n.ServiceDate.Equal(serviceDate) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReminderRepo) Create(_ context.Context, n *entity.ReminderNotification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.reminders = append(r.reminders, n)
	return nil
}

func (r *fakeReminderRepo) Update(_ context.Context, n *entity.ReminderNotification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.reminders {
		if existing.NotificationID == n.NotificationID {
			r.reminders[i] = n
			return nil
		}
	}
	return fmt.Errorf("%w: %s", appErrors.ErrNotificationNotFound, n.NotificationID)
}

func (r *fakeReminderRepo) DeleteOlderThan(_ context.Context, threshold time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	var kept []*entity.ReminderNotification
	var removed int64
	for _, n := range r.reminders {
		if n.CreatedAt.Before(threshold) {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	r.reminders = kept
	return removed, nil
}

type fakeLiveRepo struct {
	mu            sync.Mutex
	notifications []*entity.LiveNotification
	err           error
}

func (r *fakeLiveRepo) FindByNotificationID(_ context.Context, id string) (*entity.LiveNotification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.NotificationID == id {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", appErrors.ErrNotificationNotFound, id)
}

func (r *fakeLiveRepo) FindActiveByTarget(_ context.Context, customerID string) ([]*entity.LiveNotification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.LiveNotification
	for _, n := range r.notifications {
		if n.Status != constant.LiveActive {
			continue
		}
		if n.TargetType == "all" || n.TargetID == customerID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeLiveRepo) Create(_ context.Context, n *entity.LiveNotification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *fakeLiveRepo) Update(_ context.Context, n *entity.LiveNotification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.notifications {
		if existing.NotificationID == n.NotificationID {
			r.notifications[i] = n
			return nil
		}
	}
	return fmt.Errorf("%w: %s", appErrors.ErrNotificationNotFound, n.NotificationID)
}

func (r *fakeLiveRepo) DeleteOlderThanWithStatus(_ context.Context, threshold time.Time, statuses []constant.LiveStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	match := func(s constant.LiveStatus) bool {
		for _, candidate := range statuses {
			if s == candidate {
				return true
			}
		}
		return false
	}
	var kept []*entity.LiveNotification
	var removed int64
	for _, n := range r.notifications {
		if n.CreatedAt.Before(threshold) && match(n.Status) {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	r.notifications = kept
	return removed, nil
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]*entity.Customer // keyed by customer_id
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[string]*entity.Customer)}
}

func (r *fakeCustomerRepo) FindByCustomerID(_ context.Context, id string) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.customers[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %s", appErrors.ErrCustomerNotFound, id)
}

func (r *fakeCustomerRepo) FindByEmail(_ context.Context, email string) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", appErrors.ErrCustomerNotFound, email)
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[c.CustomerID] = c
	return nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[c.CustomerID] = c
	return nil
}

type fakePlanRepo struct {
	mu    sync.Mutex
	plans []*entity.Plan
}

func (r *fakePlanRepo) FindByPlanID(_ context.Context, id string) (*entity.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if p.PlanID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", appErrors.ErrPlanNotFound, id)
}

func (r *fakePlanRepo) FindByServiceType(_ context.Context, serviceType string) (*entity.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if p.ServiceType == serviceType {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", appErrors.ErrPlanNotFound, serviceType)
}

func (r *fakePlanRepo) FindActive(_ context.Context) ([]*entity.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.Plan(nil), r.plans...), nil
}

func (r *fakePlanRepo) Create(_ context.Context, p *entity.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans = append(r.plans, p)
	return nil
}

type sendCall struct {
	to      entity.Recipient
	title   string
	message string
}

// stubSender is a controllable ChannelSender.
type stubSender struct {
	mu       sync.Mutex
	ch       constant.Channel
	err      error
	panicMsg string
	calls    []sendCall
}

func (s *stubSender) Channel() constant.Channel { return s.ch }

func (s *stubSender) Send(_ context.Context, to entity.Recipient, title, message string) error {
	s.mu.Lock()
	s.calls = append(s.calls, sendCall{to: to, title: title, message: message})
	s.mu.Unlock()
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	return s.err
}

func (s *stubSender) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
