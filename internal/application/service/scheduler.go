package service

import "context"

// SchedulerService owns the single background scheduling loop. One tick
// dispatches due reminders, materializes upcoming occurrences (hourly) and
// runs the retention sweep (once per day at the configured hour).
type SchedulerService interface {
	// Start registers the tick job and starts the loop.
	Start() error
	// Stop stops the loop and waits for a running tick to finish.
	Stop()
	// RunTick executes one full work cycle immediately. The loop calls this
	// on every tick; it is also safe to invoke directly.
	RunTick(ctx context.Context)
}
