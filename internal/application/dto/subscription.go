package dto

import (
	"time"

	"carwash/internal/domain/entity"
)

// CustomerInfo carries the customer details supplied by the payment
// collaborator on subscription creation.
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CreateSubscriptionRequest is the DTO for creating a subscription after a
// successful payment confirmation.
type CreateSubscriptionRequest struct {
	CustomerInfo  CustomerInfo `json:"customer_info"`
	PlanID        string       `json:"plan_id"`
	Frequency     string       `json:"frequency"`
	VehicleType   string       `json:"vehicle_type"`
	PreferredTime string       `json:"preferred_time"`
	StartDate     string       `json:"start_date"` // YYYY-MM-DD
	NotifyEmail   *bool        `json:"notify_email,omitempty"`
	NotifySMS     *bool        `json:"notify_sms,omitempty"`
	LeadDays      *int         `json:"lead_days,omitempty"`
}

// CompleteOccurrenceRequest is the DTO for the booking-completed event.
type CompleteOccurrenceRequest struct {
	CompletedDate string `json:"completed_date"` // YYYY-MM-DD, defaults to today
	Rating        *int   `json:"rating,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// SubscriptionResponse is the DTO for returning subscription state.
type SubscriptionResponse struct {
	SubscriptionID  string     `json:"subscription_id"`
	CustomerID      string     `json:"customer_id"`
	PlanID          string     `json:"plan_id"`
	Frequency       string     `json:"frequency"`
	Status          string     `json:"status"`
	PreferredTime   string     `json:"preferred_time"`
	StartDate       time.Time  `json:"start_date"`
	NextServiceDate *time.Time `json:"next_service_date,omitempty"`
	LastServiceDate *time.Time `json:"last_service_date,omitempty"`
}

// ToSubscriptionResponse converts an entity.Subscription to its DTO.
func ToSubscriptionResponse(s *entity.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		SubscriptionID:  s.SubscriptionID,
		CustomerID:      s.CustomerID,
		PlanID:          s.PlanID,
		Frequency:       s.Frequency.String(),
		Status:          string(s.Status),
		PreferredTime:   s.PreferredTime,
		StartDate:       s.StartDate,
		NextServiceDate: s.NextServiceDate,
		LastServiceDate: s.LastServiceDate,
	}
}
