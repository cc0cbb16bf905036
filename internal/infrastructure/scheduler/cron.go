package scheduler

import (
	"fmt"
	"sync"

	"carwash/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Cron wraps the robfig cron runner that hosts the background scheduling
// loop. Lifecycle is owned by the process bootstrap.
type Cron struct {
	cron *cron.Cron
	log  logger.Logger
	mu   sync.Mutex
}

// NewCron creates a new cron runner with seconds precision.
func NewCron(log logger.Logger) *Cron {
	return &Cron{
		cron: cron.New(cron.WithSeconds()),
		log:  log,
	}
}

// AddJob adds a new job to the runner. spec follows the cron format with a
// seconds field (e.g., "0 */5 * * * *").
func (c *Cron) AddJob(spec string, cmd func()) (cron.EntryID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, err := c.cron.AddFunc(spec, cmd)
	if err != nil {
		return 0, fmt.Errorf("failed to add cron job: %w", err)
	}
	c.log.Info(fmt.Sprintf("Added cron job with ID %d, spec: %s", id, spec))
	return id, nil
}

// Start starts the runner.
func (c *Cron) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cron.Start()
	c.log.Info("Cron runner started.")
}

// Stop stops the runner and waits for running jobs to complete.
func (c *Cron) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cron != nil {
		ctx := c.cron.Stop()
		<-ctx.Done()
		c.log.Info("Cron runner stopped.")
	}
}
