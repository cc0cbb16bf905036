package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `env:",prefix=SERVER_"`
	Database  DatabaseConfig  `env:",prefix=DB_"`
	Scheduler SchedulerConfig `env:",prefix=SCHEDULER_"`
	SMTP      SMTPConfig      `env:",prefix=SMTP_"`
	SMS       SMSConfig       `env:",prefix=SMS_"`
	Webhook   WebhookConfig   `env:",prefix=WEBHOOK_"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         int `env:"PORT,default=8080"`
	ReadTimeout  int `env:"READ_TIMEOUT,default=10"`  // seconds
	WriteTimeout int `env:"WRITE_TIMEOUT,default=30"` // seconds
}

// DatabaseConfig holds SQLite configuration.
type DatabaseConfig struct {
	Path string `env:"PATH,default=carwash.db"`
}

// SchedulerConfig holds the background scheduling loop configuration.
type SchedulerConfig struct {
	TickMinutes    int `env:"TICK_MINUTES,default=5"`
	LookaheadDays  int `env:"LOOKAHEAD_DAYS,default=30"`
	ReminderHour   int `env:"REMINDER_HOUR,default=9"`    // hour-of-day reminders fire at
	RetentionDays  int `env:"RETENTION_DAYS,default=30"`  // notification retention window
	SweepHour      int `env:"SWEEP_HOUR,default=2"`       // hour-of-day the retention sweep runs
	SendTimeoutSec int `env:"SEND_TIMEOUT_SEC,default=15"` // per-channel send timeout
}

// SMTPConfig holds the email sender configuration.
type SMTPConfig struct {
	Host     string `env:"HOST,default=smtp.gmail.com"`
	Port     int    `env:"PORT,default=587"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
}

// SMSConfig holds the Twilio SMS sender configuration.
type SMSConfig struct {
	AccountSID string `env:"ACCOUNT_SID"`
	AuthToken  string `env:"AUTH_TOKEN"`
	FromNumber string `env:"FROM_NUMBER"`
}

// WebhookConfig holds the operations webhook configuration.
type WebhookConfig struct {
	URL string `env:"URL"`
}

// Load loads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	return &cfg, nil
}

// TickInterval returns the scheduling loop tick interval.
func (c *SchedulerConfig) TickInterval() time.Duration {
	return time.Duration(c.TickMinutes) * time.Minute
}

// SendTimeout returns the per-channel send timeout.
func (c *SchedulerConfig) SendTimeout() time.Duration {
	return time.Duration(c.SendTimeoutSec) * time.Second
}

// Retention returns the notification retention window.
func (c *SchedulerConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}
