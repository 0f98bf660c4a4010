package jobs

import (
	"context"
	"log/slog"

	"deliverytracking/internal/core/application/session"

	"github.com/robfig/cron/v3"
)

// SessionSweepJob periodically drops finished delivery sessions from the
// registry so completed and failed runs do not accumulate.
type SessionSweepJob struct {
	registry *session.Registry
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSessionSweepJob creates a sweep job over the given session registry.
func NewSessionSweepJob(registry *session.Registry, logger *slog.Logger) *SessionSweepJob {
	return &SessionSweepJob{
		registry: registry,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "session_sweep_job"),
	}
}

// Start begins the sweep job to run every 30 seconds.
func (j *SessionSweepJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		if removed := j.registry.Sweep(); removed > 0 {
			j.logger.InfoContext(ctx, "Swept finished delivery sessions",
				"removed", removed, "remaining", j.registry.Len())
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session sweep job started (running every 30 seconds)")
	return nil
}

// Stop stops the sweep job.
func (j *SessionSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Session sweep job stopped")
}
