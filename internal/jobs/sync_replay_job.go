package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/robfig/cron/v3"

	"mealroute/internal/core/application/sync"
	"mealroute/internal/pkg/errs"
)

// SyncReplayJob periodically drains the pending-save queue. While the
// remote store is unreachable the coordinator queues operational writes;
// this job is the path that eventually delivers them once connectivity
// returns, and the same tick ends read-only fallback for an app that
// booted offline.
type SyncReplayJob struct {
	coordinator *sync.Coordinator
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewSyncReplayJob creates a new job replaying queued saves every 30 seconds.
func NewSyncReplayJob(coordinator *sync.Coordinator, logger *slog.Logger) *SyncReplayJob {
	return &SyncReplayJob{
		coordinator: coordinator,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "sync_replay_job"),
	}
}

// Start begins the replay job.
func (j *SyncReplayJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		if err := j.coordinator.ReplayPending(ctx); err != nil {
			// Still being offline is the expected case; a replay that
			// fails mid-queue is not.
			if errors.Is(err, errs.ErrQueueReplay) {
				j.logger.ErrorContext(ctx, "Pending queue replay failed", "error", err)
			} else if !errors.Is(err, errs.ErrNotConnected) {
				j.logger.ErrorContext(ctx, "Sync replay job failed", "error", err)
			}
			return
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Sync replay job started (running every 30 seconds)")
	return nil
}

// Stop stops the replay job.
func (j *SyncReplayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Sync replay job stopped")
}
