package jobs

import (
	"fmt"
	"log/slog"

	"deliverytracking/internal/core/application/session"
	"deliverytracking/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	sessionSweepJob    *SessionSweepJob
	deliveryMonitorJob *DeliveryMonitorJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	registry *session.Registry,
	activeDeliveriesHandler queries.GetActiveDeliveriesQueryHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		sessionSweepJob:    NewSessionSweepJob(registry, logger),
		deliveryMonitorJob: NewDeliveryMonitorJob(activeDeliveriesHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.sessionSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start session sweep job: %w", err)
	}

	if err := jm.deliveryMonitorJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.sessionSweepJob.Stop()
		return fmt.Errorf("failed to start delivery monitor job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.sessionSweepJob.Stop()
	jm.deliveryMonitorJob.Stop()
}
