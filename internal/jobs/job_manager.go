package jobs

import (
	"fmt"
	"log/slog"

	"mealroute/internal/core/application/sync"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	syncReplayJob *SyncReplayJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(coordinator *sync.Coordinator, logger *slog.Logger) *JobManager {
	return &JobManager{
		syncReplayJob: NewSyncReplayJob(coordinator, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.syncReplayJob.Start(); err != nil {
		return fmt.Errorf("failed to start sync replay job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.syncReplayJob.Stop()
}
