package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RemindersDispatched counts processed reminder notifications by final status.
	RemindersDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carwash_reminders_dispatched_total",
			Help: "Reminder notifications processed by the dispatcher, by final status",
		},
		[]string{"status"}, // sent or failed
	)

	// ChannelSends counts per-channel send attempts by outcome.
	ChannelSends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carwash_channel_sends_total",
			Help: "Per-channel notification send attempts, by channel and outcome",
		},
		[]string{"channel", "outcome"}, // outcome: success or failure
	)

	// OccurrencesScheduled counts service occurrences materialized by the scheduler.
	OccurrencesScheduled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "carwash_occurrences_scheduled_total",
			Help: "Service occurrences created by the occurrence scheduler",
		},
	)

	// NotificationsPurged counts notification rows removed by the retention sweep.
	NotificationsPurged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carwash_notifications_purged_total",
			Help: "Notification rows deleted by the retention sweeper, by kind",
		},
		[]string{"kind"}, // reminder or live
	)

	// TickDuration tracks the latency of one full scheduling-loop tick.
	TickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "carwash_scheduler_tick_duration_seconds",
			Help:    "Duration of one background scheduling loop tick in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
		},
	)
)

// RecordChannelSend records the outcome of a single channel send attempt.
func RecordChannelSend(channel string, success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	ChannelSends.WithLabelValues(channel, outcome).Inc()
}
