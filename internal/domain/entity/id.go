package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// prefixedID builds identifiers like "SUB_20250106_AB12CD34".
func prefixedID(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("%s_%s_%s", prefix, time.Now().Format("20060102"), suffix)
}

// NewSubscriptionID generates a unique subscription identifier.
func NewSubscriptionID() string { return prefixedID("SUB") }

// NewOccurrenceID generates a unique service occurrence identifier.
func NewOccurrenceID() string { return prefixedID("SVC") }

// NewReminderID generates a unique reminder notification identifier.
func NewReminderID() string { return prefixedID("NOT") }

// NewLiveNotificationID generates a unique live notification identifier.
func NewLiveNotificationID() string { return prefixedID("LIVE") }

// NewPlanID generates a unique subscription plan identifier.
func NewPlanID() string { return prefixedID("PLAN") }

// NewCustomerID generates a unique customer identifier.
func NewCustomerID() string {
	return fmt.Sprintf("CUST-%d-%s", time.Now().Year(), strings.ToUpper(uuid.New().String()[:4]))
}
