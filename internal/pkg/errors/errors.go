package errors

import "errors"

// Custom application errors
var (
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrPlanNotFound         = errors.New("subscription plan not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrOccurrenceNotFound   = errors.New("service occurrence not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidFrequency     = errors.New("invalid service frequency")
	ErrInvalidStatus        = errors.New("invalid status for the operation")
	ErrInvalidBookingCount  = errors.New("invalid completed booking count")
	ErrInvalidLeadDays      = errors.New("lead days must not be negative")
	ErrDatabaseOperation    = errors.New("database operation failed")
	ErrChannelSend          = errors.New("notification channel send failed")
	ErrScheduling           = errors.New("scheduling failed")
	ErrInternalServer       = errors.New("internal server error")
)
