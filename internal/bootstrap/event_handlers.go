package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/CurioSync_Go/internal/event"
	"github.com/osse101/CurioSync_Go/internal/logger"
	"github.com/osse101/CurioSync_Go/internal/metrics"
)

// RegisterEventHandlers sets up all event subscribers:
// - Metrics collector (event counters and sync/token/drift metrics)
// - Event logger (one structured line per event)
func RegisterEventHandlers(bus event.Bus) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	for _, t := range []event.Type{
		event.SyncCompleted,
		event.TokenRefreshed,
		event.TokenRefreshFailed,
		event.ConnectionRemoved,
		event.TaxonomyDriftDetected,
	} {
		bus.Subscribe(t, logEvent)
	}
	slog.Info(LogMsgEventLoggerInitialized)

	return nil
}

func logEvent(ctx context.Context, evt event.Event) error {
	level := slog.LevelInfo
	if evt.Type == event.TokenRefreshFailed || evt.Type == event.TaxonomyDriftDetected {
		level = slog.LevelWarn
	}
	logger.FromContext(ctx).Log(ctx, level, LogMsgEventObserved,
		"event_type", evt.Type,
		"payload", evt.Payload)
	return nil
}
