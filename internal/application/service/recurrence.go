package service

import (
	"time"

	"carwash/internal/domain/constant"
)

// NextServiceDate returns the date of the service following anchor for the
// given frequency. Monthly uses a fixed 30-day step rather than calendar
// month arithmetic. Unknown frequencies fall back to the monthly step;
// they are rejected at subscription creation, not here.
func NextServiceDate(frequency constant.Frequency, anchor time.Time) time.Time {
	anchor = DateOf(anchor)
	switch frequency {
	case constant.FrequencyWeekly:
		return anchor.AddDate(0, 0, 7)
	case constant.FrequencyBiWeekly:
		return anchor.AddDate(0, 0, 14)
	case constant.FrequencyMonthly:
		return anchor.AddDate(0, 0, 30)
	default:
		return anchor.AddDate(0, 0, 30)
	}
}

// DateOf truncates a timestamp to midnight UTC of its calendar date.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CombineDateHour returns the timestamp at the given hour-of-day on the
// given date, in UTC. Used to place reminder send times (e.g. 09:00 on the
// reminder date).
func CombineDateHour(date time.Time, hour int) time.Time {
	date = DateOf(date)
	return time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, time.UTC)
}
