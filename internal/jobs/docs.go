// Package jobs provides scheduled background tasks for the meal delivery
// system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the offline-first sync layer.
//
// # Available Jobs
//
// 1. SyncReplayJob - Runs every 30 seconds to probe the remote record store
// and drain the pending-save queue once connectivity returns
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager around the sync coordinator
//	jobManager := jobs.NewJobManager(coordinator, logger)
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
// - Being offline is the expected case and is not logged
// - A replay that fails mid-queue keeps the whole queue for the next run
//   and is logged as an error
// - Failed job starts will stop any already running jobs
package jobs
