// Package jobs provides scheduled background tasks for the delivery tracking service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for delivery tracking.
//
// # Available Jobs
//
// 1. SessionSweepJob - Runs every 30 seconds to drop finished delivery sessions from the registry
// 2. DeliveryMonitorJob - Runs every minute to log how many orders are out for delivery
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(registry, activeDeliveriesHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Sweep job cannot fail; it only reports how many sessions it removed
// - Monitor job logs query errors and keeps running; a broken read model must
//   not take the scheduler down
// - Failed job starts will stop any already running jobs
package jobs
