package channel

import (
	"context"
	"fmt"
	"net/smtp"

	"carwash/internal/config"
	"carwash/internal/domain/constant"
	"carwash/internal/domain/entity"
	"carwash/internal/pkg/logger"
)

// EmailSender delivers notifications over SMTP.
type EmailSender struct {
	cfg config.SMTPConfig
	log logger.Logger

	// sendMail is swappable for tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailSender creates a new SMTP email sender.
func NewEmailSender(cfg config.SMTPConfig, log logger.Logger) *EmailSender {
	return &EmailSender{
		cfg:      cfg,
		log:      log,
		sendMail: smtp.SendMail,
	}
}

// Channel returns the delivery channel this sender serves.
func (s *EmailSender) Channel() constant.Channel {
	return constant.ChannelEmail
}

// Send delivers the notification to the recipient's email address.
func (s *EmailSender) Send(ctx context.Context, to entity.Recipient, title, message string) error {
	if to.Email == "" {
		return fmt.Errorf("recipient %s has no email address", to.CustomerID)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.From, to.Email, title, buildBody(to, title, message))

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)

	// smtp.SendMail has no context support, so honour cancellation by
	// running the send in a goroutine and abandoning it on timeout.
	done := make(chan error, 1)
	go func() {
		done <- s.sendMail(addr, auth, s.cfg.From, []string{to.Email}, []byte(msg))
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email to %s: %w", to.Email, err)
		}
		s.log.Debug(fmt.Sprintf("Email sent to %s", to.Email))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("email send to %s aborted: %w", to.Email, ctx.Err())
	}
}

func buildBody(to entity.Recipient, title, message string) string {
	return fmt.Sprintf(`<html><body>
<h2>%s</h2>
<p>Hi %s,</p>
<p>%s</p>
<p>Thank you for choosing Infinite Mobile Carwash &amp; Detailing!</p>
<p>This is an automated message from your subscription service.</p>
</body></html>`, title, to.Name, message)
}
