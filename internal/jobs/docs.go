// Package jobs provides scheduled background tasks for the tableside system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order and table coordination.
//
// # Available Jobs
//
// 1. TableReconciliationJob - Runs on a configurable schedule to release tables
// whose most recent order has completed but whose release commit never happened
// 2. BusRefreshJob - Broadcasts a refresh tick on the coordination bus at a
// configurable interval so board pollers wake within the staleness bound
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(reconcileHandler, bus, schedule, interval, logger)
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
// The reconciliation job takes a six-field cron expression with a seconds
// column; the refresh job takes a plain interval. Both default to values that
// keep boards fresh without hammering storage.
//
// # Error Handling
//
// - The reconciliation job logs every failed sweep and every repair it makes
// - The refresh tick never fails; a full subscriber buffer drops the oldest event
// - Failed job starts will stop any already running jobs
package jobs
