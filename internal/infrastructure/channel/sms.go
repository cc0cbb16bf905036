package channel

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"carwash/internal/config"
	"carwash/internal/domain/constant"
	"carwash/internal/domain/entity"
	"carwash/internal/pkg/logger"
)

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// SMSSender delivers notifications via the Twilio Messages REST API.
type SMSSender struct {
	cfg    config.SMSConfig
	client *http.Client
	log    logger.Logger
	base   string
}

// NewSMSSender creates a new Twilio SMS sender.
func NewSMSSender(cfg config.SMSConfig, log logger.Logger) *SMSSender {
	return &SMSSender{
		cfg:    cfg,
		client: &http.Client{},
		log:    log,
		base:   twilioAPIBase,
	}
}

// Channel returns the delivery channel this sender serves.
func (s *SMSSender) Channel() constant.Channel {
	return constant.ChannelSMS
}

// Send delivers the notification to the recipient's phone number.
func (s *SMSSender) Send(ctx context.Context, to entity.Recipient, title, message string) error {
	if to.Phone == "" {
		return fmt.Errorf("recipient %s has no phone number", to.CustomerID)
	}

	form := url.Values{}
	form.Set("To", to.Phone)
	form.Set("From", s.cfg.FromNumber)
	form.Set("Body", fmt.Sprintf("%s: %s", title, message))

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", s.base, s.cfg.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build SMS request: %w", err)
	}
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS to %s: %w", to.Phone, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("SMS provider returned status %d for %s", resp.StatusCode, to.Phone)
	}

	s.log.Debug(fmt.Sprintf("SMS sent to %s", to.Phone))
	return nil
}
