package dto

import (
	"time"

	"carwash/internal/domain/entity"
)

// LiveNotificationResponse is the DTO for live notifications shown to a
// customer on the website.
type LiveNotificationResponse struct {
	NotificationID string     `json:"notification_id"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	Type           string     `json:"type"`
	Priority       string     `json:"priority"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
}

// ToLiveNotificationResponse converts an entity.LiveNotification to its DTO.
func ToLiveNotificationResponse(n *entity.LiveNotification) LiveNotificationResponse {
	return LiveNotificationResponse{
		NotificationID: n.NotificationID,
		Title:          n.Title,
		Message:        n.Message,
		Type:           n.Type,
		Priority:       string(n.Priority),
		Status:         string(n.Status),
		CreatedAt:      n.CreatedAt,
		ReadAt:         n.ReadAt,
	}
}

// ToLiveNotificationResponseList converts a slice of live notifications.
func ToLiveNotificationResponseList(notifications []*entity.LiveNotification) []LiveNotificationResponse {
	list := make([]LiveNotificationResponse, len(notifications))
	for i, n := range notifications {
		list[i] = ToLiveNotificationResponse(n)
	}
	return list
}
