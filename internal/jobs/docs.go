// Package jobs provides the scheduled background tasks of the engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic housekeeping the dispatch flow needs.
//
// # Available Jobs
//
// 1. DispatchRetryJob - Runs every minute to re-offer pending orders that never reached a courier
// 2. LowStockJob - Runs hourly to alert the admin channel about stock lines under the threshold
// 3. SessionSweepJob - Runs every minute to purge expired admin session tokens
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(dispatchRetryJob, lowStockJob, sessionSweepJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Jobs never abort the schedule on failure: each run logs its error and the
// next tick tries again. The retry job treats a still-unroutable zone as a
// normal outcome, not an error, since intake already warned the admin.
package jobs
