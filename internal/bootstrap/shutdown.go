package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/CurioSync_Go/internal/scheduler"
	"github.com/osse101/CurioSync_Go/internal/server"
	"github.com/osse101/CurioSync_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server    *server.Server
	Scheduler *scheduler.Scheduler
	Workers   *worker.Pool
	DB        interface{ Close() }
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler (stop enqueueing new jobs)
// 3. Worker pool (cancel and wait for running syncs, which release their locks)
// 4. Database pool
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	if components.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Scheduler != nil {
		slog.Info(LogMsgStoppingScheduler)
		components.Scheduler.Stop()
	}

	if components.Workers != nil {
		slog.Info(LogMsgDrainingWorkers)
		done := make(chan struct{})
		go func() {
			components.Workers.Stop()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			slog.Error(LogMsgWorkerShutdownTimeout, "error", ctx.Err())
		}
	}

	if components.DB != nil {
		slog.Info(LogMsgClosingDatabase)
		components.DB.Close()
	}

	slog.Info(LogMsgServerStopped)
}
