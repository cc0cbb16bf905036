package constant

// SubscriptionStatus defines the possible states of a customer subscription.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionPaused    SubscriptionStatus = "paused"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
)

// OccurrenceStatus defines the possible states of a service occurrence.
type OccurrenceStatus string

const (
	OccurrenceScheduled   OccurrenceStatus = "scheduled"
	OccurrenceInProgress  OccurrenceStatus = "in_progress"
	OccurrenceCompleted   OccurrenceStatus = "completed"
	OccurrenceCancelled   OccurrenceStatus = "cancelled"
	OccurrenceRescheduled OccurrenceStatus = "rescheduled"
)

// Terminal reports whether the occurrence status is a terminal state.
func (s OccurrenceStatus) Terminal() bool {
	return s == OccurrenceCompleted || s == OccurrenceCancelled
}

// ReminderStatus defines the possible states of a reminder notification.
type ReminderStatus string

const (
	ReminderPending ReminderStatus = "pending"
	ReminderSent    ReminderStatus = "sent"
	ReminderFailed  ReminderStatus = "failed"
)

// LiveStatus defines the possible states of a live (in-app) notification.
type LiveStatus string

const (
	LiveActive    LiveStatus = "active"
	LiveRead      LiveStatus = "read"
	LiveDismissed LiveStatus = "dismissed"
	LiveExpired   LiveStatus = "expired"
)

// Priority defines the display priority of a live notification.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)
