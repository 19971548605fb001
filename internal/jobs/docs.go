// Package jobs provides scheduled background tasks for the dispatch engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the delivery lifecycle.
//
// # Available Jobs
//
// 1. TrialTimeoutJob - Runs every second to expire home trial windows whose
// 20-minute deadline has passed, auto-advancing those deliveries to in_transit
// with a timeout-flagged history entry.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(checkTrialTimeoutsHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep uses the cron expression "* * * * * *" which means it runs every
// second. Trial deadlines are minute-scale, so a one-second sweep keeps the
// auto-advance close to the promised deadline without a per-order timer.
//
// # Error Handling
//
// The sweep is idempotent: a delivery that already left trial_wait is skipped,
// so a firing that overlaps an explicit endTrial request never double-appends
// history or double-releases a courier. Sweep failures are logged and retried
// on the next tick.
package jobs
