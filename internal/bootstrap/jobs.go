package bootstrap

import (
	"log/slog"

	"github.com/osse101/CurioSync_Go/internal/config"
	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/scheduler"
	"github.com/osse101/CurioSync_Go/internal/worker"
)

// StartBackgroundJobs starts the worker pool and schedules the periodic sync
// sweep and taxonomy reconcile on it. A non-positive interval disables that job.
func StartBackgroundJobs(cfg *config.Config, svcs *Services) (*worker.Pool, *scheduler.Scheduler) {
	pool := worker.NewPool(cfg.Worker.Count, cfg.Worker.QueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(cfg.Sync.ScheduleInterval, &worker.SyncSweepJob{
		Runner:  svcs.Sync,
		Queue:   pool,
		Options: domain.SyncOptions{MaxItems: cfg.Sync.MaxItems},
	})
	sched.Schedule(cfg.Sync.ReconcileInterval, &worker.ReconcileJob{Auditor: svcs.Audit})
	sched.Start()

	slog.Info(LogMsgJobsScheduled,
		"workers", cfg.Worker.Count,
		"sync_interval", cfg.Sync.ScheduleInterval,
		"reconcile_interval", cfg.Sync.ReconcileInterval)

	return pool, sched
}
