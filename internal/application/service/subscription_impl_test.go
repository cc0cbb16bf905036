package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carwash/internal/application/dto"
	"carwash/internal/domain/constant"
	"carwash/internal/domain/entity"
	appErrors "carwash/internal/pkg/errors"
)

type subscriptionFixture struct {
	svc          *subscriptionService
	subRepo      *fakeSubscriptionRepo
	occRepo      *fakeOccurrenceRepo
	reminderRepo *fakeReminderRepo
	customerRepo *fakeCustomerRepo
	planRepo     *fakePlanRepo
	liveRepo     *fakeLiveRepo
}

func newSubscriptionFixture(t *testing.T, now time.Time) *subscriptionFixture {
	t.Helper()
	f := &subscriptionFixture{
		subRepo:      newFakeSubscriptionRepo(),
		occRepo:      &fakeOccurrenceRepo{},
		reminderRepo: &fakeReminderRepo{},
		customerRepo: newFakeCustomerRepo(),
		planRepo:     &fakePlanRepo{},
		liveRepo:     &fakeLiveRepo{},
	}
	f.planRepo.plans = append(f.planRepo.plans, &entity.Plan{
		PlanID:      "PLAN_basic",
		Name:        "Full Valet",
		ServiceType: "full_valet",
		Frequencies: []constant.Frequency{constant.FrequencyWeekly, constant.FrequencyBiWeekly, constant.FrequencyMonthly},
		IsActive:    true,
	})

	loyalty := NewLoyaltyService(f.customerRepo, f.liveRepo, nil, nopLogger{})
	svc := NewSubscriptionService(
		f.subRepo, f.occRepo, f.reminderRepo, f.customerRepo, f.planRepo,
		loyalty, nil, 30, 9, nopLogger{},
	)
	f.svc = svc.(*subscriptionService)
	f.svc.now = func() time.Time { return now }
	if ls, ok := loyalty.(*loyaltyService); ok {
		ls.now = func() time.Time { return now }
	}
	return f
}

func createRequest() dto.CreateSubscriptionRequest {
	return dto.CreateSubscriptionRequest{
		CustomerInfo: dto.CustomerInfo{
			Name:    "Amina",
			Email:   "amina@example.com",
			Phone:   "+447700900123",
			Address: "12 High Street",
		},
		PlanID:        "PLAN_basic",
		Frequency:     "weekly",
		VehicleType:   "sedan",
		PreferredTime: "10:00",
		StartDate:     "2025-02-10",
	}
}

func TestCreateSubscription(t *testing.T) {
	ctx := context.Background()
	f := newSubscriptionFixture(t, date(2025, time.February, 1))

	sub, err := f.svc.CreateSubscription(ctx, createRequest())
	require.NoError(t, err)

	assert.Equal(t, constant.SubscriptionActive, sub.Status)
	assert.Equal(t, constant.FrequencyWeekly, sub.Frequency)
	assert.Equal(t, 2, sub.LeadDays)
	assert.True(t, sub.NotifyEmail)
	assert.True(t, sub.NotifySMS)
	require.NotNil(t, sub.NextServiceDate)
	assert.Equal(t, date(2025, time.February, 10), *sub.NextServiceDate)

	// Customer, first occurrence and its reminder are materialized together.
	_, err = f.customerRepo.FindByEmail(ctx, "amina@example.com")
	require.NoError(t, err)
	require.Len(t, f.occRepo.occs, 1)
	assert.Equal(t, date(2025, time.February, 10), f.occRepo.occs[0].ScheduledDate)
	assert.Equal(t, constant.OccurrenceScheduled, f.occRepo.occs[0].Status)
	require.Len(t, f.reminderRepo.reminders, 1)
}

func TestCreateSubscriptionReminderTiming(t *testing.T) {
	ctx := context.Background()
	f := newSubscriptionFixture(t, date(2025, time.February, 1))

	_, err := f.svc.CreateSubscription(ctx, createRequest())
	require.NoError(t, err)

	// Service on Feb 10 with a 2-day lead sends at 09:00 on Feb 8.
	require.Len(t, f.reminderRepo.reminders, 1)
	reminder := f.reminderRepo.reminders[0]
	assert.Equal(t, time.Date(2025, time.February, 8, 9, 0, 0, 0, time.UTC), reminder.ScheduledSendTime)
	assert.Equal(t, date(2025, time.February, 10), reminder.ServiceDate)
	assert.Equal(t, constant.ReminderPending, reminder.Status)
	assert.True(t, reminder.SendEmail)
	assert.True(t, reminder.SendSMS)
	assert.True(t, reminder.SendWebsite)
}

func TestCreateSubscriptionInvalidFrequency(t *testing.T) {
	f := newSubscriptionFixture(t, date(2025, time.February, 1))
	req := createRequest()
	req.Frequency = "fortnightly"

	_, err := f.svc.CreateSubscription(context.Background(), req)
	assert.ErrorIs(t, err, appErrors.ErrInvalidFrequency)
	assert.Empty(t, f.subRepo.subs)
}

func TestCreateSubscriptionNegativeLeadDays(t *testing.T) {
	f := newSubscriptionFixture(t, date(2025, time.February, 1))
	req := createRequest()
	lead := -1
	req.LeadDays = &lead

	_, err := f.svc.CreateSubscription(context.Background(), req)
	assert.ErrorIs(t, err, appErrors.ErrInvalidLeadDays)
}

func TestCreateSubscriptionUnknownPlan(t *testing.T) {
	f := newSubscriptionFixture(t, date(2025, time.February, 1))
	req := createRequest()
	req.PlanID = "PLAN_missing"

	_, err := f.svc.CreateSubscription(context.Background(), req)
	assert.ErrorIs(t, err, appErrors.ErrPlanNotFound)
}

func TestCreateSubscriptionUnsupportedPlanFrequency(t *testing.T) {
	f := newSubscriptionFixture(t, date(2025, time.February, 1))
	f.planRepo.plans[0].Frequencies = []constant.Frequency{constant.FrequencyMonthly}

	_, err := f.svc.CreateSubscription(context.Background(), createRequest())
	assert.ErrorIs(t, err, appErrors.ErrInvalidFrequency)
}

func TestCreateSubscriptionReusesExistingCustomer(t *testing.T) {
	ctx := context.Background()
	f := newSubscriptionFixture(t, date(2025, time.February, 1))
	f.customerRepo.customers["CUST-2025-0009"] = &entity.Customer{
		CustomerID: "CUST-2025-0009",
		Email:      "amina@example.com",
	}

	sub, err := f.svc.CreateSubscription(ctx, createRequest())
	require.NoError(t, err)
	assert.Equal(t, "CUST-2025-0009", sub.CustomerID)
	assert.Len(t, f.customerRepo.customers, 1)
}

func TestScheduleRecurringServicesIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newSubscriptionFixture(t, date(2025, time.February, 1))

	next := date(2025, time.February, 10)
	f.subRepo.subs["SUB_1"] = &entity.Subscription{
		SubscriptionID:  "SUB_1",
		PlanID:          "PLAN_basic",
		Frequency:       constant.FrequencyWeekly,
		Status:          constant.SubscriptionActive,
		NextServiceDate: &next,
		LeadDays:        2,
		NotifyEmail:     true,
		NotifySMS:       true,
	}

	created, err := f.svc.ScheduleRecurringServices(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	require.Len(t, f.occRepo.occs, 1)
	require.Len(t, f.reminderRepo.reminders, 1)

	// Running the sweep again creates nothing new.
	created, err = f.svc.ScheduleRecurringServices(ctx)
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Len(t, f.occRepo.occs, 1)
	assert.Len(t, f.reminderRepo.reminders, 1)
}

func TestScheduleRecurringServicesHorizon(t *testing.T) {
	ctx := context.Background()
	f := newSubscriptionFixture(t, date(2025, time.February, 1))

	beyond := date(2025, time.April, 1) // outside the 30-day window
	f.subRepo.subs["SUB_far"] = &entity.Subscription{
		SubscriptionID:  "SUB_far",
		Frequency:       constant.FrequencyMonthly,
		Status:          constant.SubscriptionActive,
		NextServiceDate: &beyond,
	}

	created, err := f.svc.ScheduleRecurringServices(ctx)
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Empty(t, f.occRepo.occs)
}

func TestScheduleRecurringServicesSkipsInactive(t *testing.T) {
	ctx := context.Background()
	f := newSubscriptionFixture(t, date(2025, time.February, 1))

	next := date(2025, time.February, 5)
	f.subRepo.subs["SUB_paused"] = &entity.Subscription{
		SubscriptionID:  "SUB_paused",
		Frequency:       constant.FrequencyWeekly,
		Status:          constant.SubscriptionPaused,
		NextServiceDate: &next,
	}
	f.subRepo.subs["SUB_nodate"] = &entity.Subscription{
		SubscriptionID: "SUB_nodate",
		Frequency:      constant.FrequencyWeekly,
		Status:         constant.SubscriptionActive,
	}

	created, err := f.svc.ScheduleRecurringServices(ctx)
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Empty(t, f.occRepo.occs)
}

func TestScheduleRecurringSkipsPastReminderDate(t *testing.T) {
	ctx := context.Background()
	f := newSubscriptionFixture(t, date(2025, time.February, 9))

	// Service tomorrow with a 2-day lead: the reminder moment is already gone.
	next := date(2025, time.February, 10)
	f.subRepo.subs["SUB_late"] = &entity.Subscription{
		SubscriptionID:  "SUB_late",
		PlanID:          "PLAN_basic",
		Frequency:       constant.FrequencyWeekly,
		Status:          constant.SubscriptionActive,
		NextServiceDate: &next,
		LeadDays:        2,
		NotifyEmail:     true,
	}

	created, err := f.svc.ScheduleRecurringServices(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Len(t, f.occRepo.occs, 1)
	assert.Empty(t, f.reminderRepo.reminders)
}

func TestCompleteOccurrenceAdvancesNextServiceDate(t *testing.T) {
	ctx := context.Background()
	f := newSubscriptionFixture(t, date(2025, time.January, 6))

	next := date(2025, time.January, 6)
	f.subRepo.subs["SUB_1"] = &entity.Subscription{
		SubscriptionID:  "SUB_1",
		CustomerID:      "CUST-2025-0001",
		Frequency:       constant.FrequencyWeekly,
		Status:          constant.SubscriptionActive,
		NextServiceDate: &next,
	}
	f.customerRepo.customers["CUST-2025-0001"] = &entity.Customer{
		CustomerID: "CUST-2025-0001",
		Email:      "amina@example.com",
	}
	f.occRepo.occs = append(f.occRepo.occs, &entity.ServiceOccurrence{
		OccurrenceID:   "SVC_1",
		SubscriptionID: "SUB_1",
		ScheduledDate:  next,
		Status:         constant.OccurrenceScheduled,
	})

	rating := 5
	err := f.svc.CompleteOccurrence(ctx, "SVC_1", dto.CompleteOccurrenceRequest{
		CompletedDate: "2025-01-06",
		Rating:        &rating,
		Notes:         "sparkling",
	})
	require.NoError(t, err)

	occ := f.occRepo.occs[0]
	assert.Equal(t, constant.OccurrenceCompleted, occ.Status)
	require.NotNil(t, occ.CompletedAt)
	require.NotNil(t, occ.Rating)
	assert.Equal(t, 5, *occ.Rating)

	sub := f.subRepo.subs["SUB_1"]
	require.NotNil(t, sub.NextServiceDate)
	assert.Equal(t, date(2025, time.January, 13), *sub.NextServiceDate)
	require.NotNil(t, sub.LastServiceDate)
	assert.Equal(t, date(2025, time.January, 6), *sub.LastServiceDate)

	// The completion feeds the loyalty counters.
	assert.Equal(t, 1, f.customerRepo.customers["CUST-2025-0001"].CompletedBookings)
}

func TestCompleteOccurrenceTerminalState(t *testing.T) {
	ctx := context.Background()
	f := newSubscriptionFixture(t, date(2025, time.January, 6))
	f.occRepo.occs = append(f.occRepo.occs, &entity.ServiceOccurrence{
		OccurrenceID:   "SVC_done",
		SubscriptionID: "SUB_1",
		Status:         constant.OccurrenceCompleted,
	})

	err := f.svc.CompleteOccurrence(ctx, "SVC_done", dto.CompleteOccurrenceRequest{})
	assert.ErrorIs(t, err, appErrors.ErrInvalidStatus)
}

func TestCompleteOccurrenceNextDateNeverRegresses(t *testing.T) {
	ctx := context.Background()
	f := newSubscriptionFixture(t, date(2025, time.January, 6))

	// Next service already pushed past what this completion would produce.
	later := date(2025, time.February, 1)
	f.subRepo.subs["SUB_1"] = &entity.Subscription{
		SubscriptionID:  "SUB_1",
		Frequency:       constant.FrequencyWeekly,
		Status:          constant.SubscriptionActive,
		NextServiceDate: &later,
	}
	f.occRepo.occs = append(f.occRepo.occs, &entity.ServiceOccurrence{
		OccurrenceID:   "SVC_1",
		SubscriptionID: "SUB_1",
		Status:         constant.OccurrenceScheduled,
	})

	err := f.svc.CompleteOccurrence(ctx, "SVC_1", dto.CompleteOccurrenceRequest{CompletedDate: "2025-01-06"})
	require.NoError(t, err)
	assert.Equal(t, later, *f.subRepo.subs["SUB_1"].NextServiceDate)
}

func TestPauseAndResumeSubscription(t *testing.T) {
	ctx := context.Background()
	f := newSubscriptionFixture(t, date(2025, time.January, 10))

	stale := date(2024, time.December, 1)
	f.subRepo.subs["SUB_1"] = &entity.Subscription{
		SubscriptionID:  "SUB_1",
		Frequency:       constant.FrequencyWeekly,
		Status:          constant.SubscriptionActive,
		NextServiceDate: &stale,
	}

	require.NoError(t, f.svc.PauseSubscription(ctx, "SUB_1"))
	assert.Equal(t, constant.SubscriptionPaused, f.subRepo.subs["SUB_1"].Status)

	// Pausing twice is rejected.
	err := f.svc.PauseSubscription(ctx, "SUB_1")
	assert.ErrorIs(t, err, appErrors.ErrInvalidStatus)

	// Resume recomputes the stale next service date from today.
	require.NoError(t, f.svc.ResumeSubscription(ctx, "SUB_1"))
	sub := f.subRepo.subs["SUB_1"]
	assert.Equal(t, constant.SubscriptionActive, sub.Status)
	require.NotNil(t, sub.NextServiceDate)
	assert.Equal(t, date(2025, time.January, 17), *sub.NextServiceDate)
}

func TestResumeActiveSubscriptionRejected(t *testing.T) {
	f := newSubscriptionFixture(t, date(2025, time.January, 10))
	f.subRepo.subs["SUB_1"] = &entity.Subscription{
		SubscriptionID: "SUB_1",
		Status:         constant.SubscriptionActive,
	}
	err := f.svc.ResumeSubscription(context.Background(), "SUB_1")
	assert.ErrorIs(t, err, appErrors.ErrInvalidStatus)
}

func TestCancelSubscription(t *testing.T) {
	ctx := context.Background()
	f := newSubscriptionFixture(t, date(2025, time.January, 10))

	next := date(2025, time.January, 15)
	f.subRepo.subs["SUB_1"] = &entity.Subscription{
		SubscriptionID:  "SUB_1",
		Frequency:       constant.FrequencyWeekly,
		Status:          constant.SubscriptionActive,
		NextServiceDate: &next,
	}
	f.occRepo.occs = append(f.occRepo.occs,
		&entity.ServiceOccurrence{
			OccurrenceID:   "SVC_future",
			SubscriptionID: "SUB_1",
			ScheduledDate:  date(2025, time.January, 15),
			Status:         constant.OccurrenceScheduled,
		},
		&entity.ServiceOccurrence{
			OccurrenceID:   "SVC_past",
			SubscriptionID: "SUB_1",
			ScheduledDate:  date(2025, time.January, 5),
			Status:         constant.OccurrenceScheduled,
		},
	)

	require.NoError(t, f.svc.CancelSubscription(ctx, "SUB_1"))

	sub := f.subRepo.subs["SUB_1"]
	assert.Equal(t, constant.SubscriptionCancelled, sub.Status)
	assert.Nil(t, sub.NextServiceDate)

	// Future occurrences cancelled, past ones untouched.
	for _, occ := range f.occRepo.occs {
		switch occ.OccurrenceID {
		case "SVC_future":
			assert.Equal(t, constant.OccurrenceCancelled, occ.Status)
		case "SVC_past":
			assert.Equal(t, constant.OccurrenceScheduled, occ.Status)
		}
	}

	// Cancelling twice is rejected; the record itself is retained.
	err := f.svc.CancelSubscription(ctx, "SUB_1")
	assert.ErrorIs(t, err, appErrors.ErrInvalidStatus)
}

func TestGetSubscriptionNotFound(t *testing.T) {
	f := newSubscriptionFixture(t, date(2025, time.January, 10))
	_, err := f.svc.GetSubscription(context.Background(), "SUB_missing")
	assert.ErrorIs(t, err, appErrors.ErrSubscriptionNotFound)
}
