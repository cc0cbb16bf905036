package channel

import (
	"context"
	"fmt"
	"time"

	"carwash/internal/domain/constant"
	"carwash/internal/domain/entity"
	"carwash/internal/domain/repository"
	"carwash/internal/pkg/logger"
)

// WebsiteSender delivers notifications by creating a live in-app
// notification for the subscription's customer.
type WebsiteSender struct {
	liveRepo repository.LiveNotificationRepository
	log      logger.Logger
}

// NewWebsiteSender creates a new website (live notification) sender.
func NewWebsiteSender(liveRepo repository.LiveNotificationRepository, log logger.Logger) *WebsiteSender {
	return &WebsiteSender{liveRepo: liveRepo, log: log}
}

// Channel returns the delivery channel this sender serves.
func (s *WebsiteSender) Channel() constant.Channel {
	return constant.ChannelWebsite
}

// Send creates a live notification targeted at the recipient.
func (s *WebsiteSender) Send(ctx context.Context, to entity.Recipient, title, message string) error {
	now := time.Now().UTC()
	live := &entity.LiveNotification{
		NotificationID: entity.NewLiveNotificationID(),
		TargetType:     "customer",
		TargetID:       to.CustomerID,
		Title:          title,
		Message:        message,
		Type:           "info",
		Priority:       constant.PriorityNormal,
		Status:         constant.LiveActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.liveRepo.Create(ctx, live); err != nil {
		return fmt.Errorf("failed to create live notification for customer %s: %w", to.CustomerID, err)
	}
	s.log.Debug(fmt.Sprintf("Live notification created for customer %s", to.CustomerID))
	return nil
}
