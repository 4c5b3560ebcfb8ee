package worker

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/logger"
)

// SyncRunner is the part of the sync service the sync jobs use
type SyncRunner interface {
	Sync(ctx context.Context, userID, providerName string, opts domain.SyncOptions) (*domain.SyncResult, error)
	ListSyncEnabled(ctx context.Context) ([]domain.Connection, error)
}

// Enqueuer accepts jobs without blocking. *Pool satisfies it.
type Enqueuer interface {
	Enqueue(job Job) bool
}

// SyncJob syncs each of one user's providers in turn
type SyncJob struct {
	Runner    SyncRunner
	UserID    string
	Providers []string
	Options   domain.SyncOptions
}

func (j *SyncJob) Name() string { return JobNameSync }

// Process runs every provider even when an earlier one fails. Only store
// failures come back as an error; failed runs are logged from their result.
func (j *SyncJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)

	var errs error
	for _, p := range j.Providers {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}

		result, err := j.Runner.Sync(ctx, j.UserID, p, j.Options)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s %s/%s: %w", ErrMsgSyncFailed, j.UserID, p, err))
			continue
		}
		if result == nil {
			continue
		}
		if result.Success {
			log.Info(LogMsgScheduledSyncDone, "user_id", j.UserID, "provider", p,
				"synced", result.Synced, "skipped", result.Skipped, "failed", result.Failed)
		} else {
			log.Warn(LogMsgScheduledSyncError, "user_id", j.UserID, "provider", p,
				"state", result.State, "errors", result.Errors)
		}
	}
	return errs
}

// SyncSweepJob enqueues one SyncJob per user that has sync-enabled connections.
// A user's providers stay in a single job so their runs never overlap.
type SyncSweepJob struct {
	Runner  SyncRunner
	Queue   Enqueuer
	Options domain.SyncOptions
}

func (j *SyncSweepJob) Name() string { return JobNameSyncSweep }

func (j *SyncSweepJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSweepStarting)

	conns, err := j.Runner.ListSyncEnabled(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgListConnectionsFailed, err)
	}

	var order []string
	byUser := make(map[string][]string)
	for _, c := range conns {
		if _, seen := byUser[c.UserID]; !seen {
			order = append(order, c.UserID)
		}
		byUser[c.UserID] = append(byUser[c.UserID], c.Provider)
	}

	enqueued := 0
	for _, userID := range order {
		job := &SyncJob{Runner: j.Runner, UserID: userID, Providers: byUser[userID], Options: j.Options}
		if !j.Queue.Enqueue(job) {
			log.Warn(LogMsgSweepJobDropped, "user_id", userID)
			continue
		}
		enqueued++
	}
	log.Info(LogMsgSweepEnqueued, "users", len(order), "enqueued", enqueued)
	return nil
}
