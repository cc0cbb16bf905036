package channel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"carwash/internal/domain/constant"
	"carwash/internal/domain/entity"
)

// Shared helpers for the sender tests.

type nopLogger struct{}

func (nopLogger) Error(string, error) {}
func (nopLogger) Warn(string)         {}
func (nopLogger) Info(string)         {}
func (nopLogger) Debug(string)        {}

func testRecipient() entity.Recipient {
	return entity.Recipient{
		CustomerID: "CUST-2025-0001",
		Name:       "Amina",
		Email:      "amina@example.com",
		Phone:      "+447700900123",
	}
}

// memLiveRepo is an in-memory LiveNotificationRepository for the website
// sender tests.
type memLiveRepo struct {
	mu            sync.Mutex
	notifications []*entity.LiveNotification
	createErr     error
}

func (r *memLiveRepo) FindByNotificationID(_ context.Context, id string) (*entity.LiveNotification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.NotificationID == id {
			return n, nil
		}
	}
	return nil, fmt.Errorf("notification not found: %s", id)
}

func (r *memLiveRepo) FindActiveByTarget(_ context.Context, customerID string) ([]*entity.LiveNotification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.LiveNotification
	for _, n := range r.notifications {
		if n.Status == constant.LiveActive && (n.TargetType == "all" || n.TargetID == customerID) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memLiveRepo) Create(_ context.Context, n *entity.LiveNotification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *memLiveRepo) Update(_ context.Context, n *entity.LiveNotification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.notifications {
		if existing.NotificationID == n.NotificationID {
			r.notifications[i] = n
			return nil
		}
	}
	return fmt.Errorf("notification not found: %s", n.NotificationID)
}

func (r *memLiveRepo) DeleteOlderThanWithStatus(_ context.Context, threshold time.Time, statuses []constant.LiveStatus) (int64, error) {
	return 0, nil
}
