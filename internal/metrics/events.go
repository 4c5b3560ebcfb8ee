package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/CurioSync_Go/internal/event"
	"github.com/osse101/CurioSync_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.SyncCompleted,
		event.TokenRefreshed,
		event.TokenRefreshFailed,
		event.ConnectionRemoved,
		event.TaxonomyDriftDetected,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.SyncCompleted:
		err = recordSyncCompleted(evt.Payload)
	case event.TokenRefreshed, event.TokenRefreshFailed:
		err = recordTokenRefresh(evt.Type, evt.Payload)
	case event.ConnectionRemoved:
		err = recordConnectionRemoved(evt.Payload)
	case event.TaxonomyDriftDetected:
		err = recordTaxonomyDrift(evt.Payload)
	}

	if err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgEventPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func recordSyncCompleted(raw interface{}) error {
	p, err := event.DecodePayload[event.SyncCompletedPayloadV1](raw)
	if err != nil {
		return err
	}

	outcome := OutcomeSuccess
	if !p.Success {
		outcome = OutcomeFailure
	}
	SyncRunsTotal.WithLabelValues(p.Provider, outcome).Inc()
	SyncItemsTotal.WithLabelValues(p.Provider, ResultSynced).Add(float64(p.Synced))
	SyncItemsTotal.WithLabelValues(p.Provider, ResultSkipped).Add(float64(p.Skipped))
	SyncItemsTotal.WithLabelValues(p.Provider, ResultFailed).Add(float64(p.Failed))
	SyncRunDuration.WithLabelValues(p.Provider).Observe(p.DurationMs / 1000)
	return nil
}

func recordTokenRefresh(t event.Type, raw interface{}) error {
	p, err := event.DecodePayload[event.TokenPayloadV1](raw)
	if err != nil {
		return err
	}

	outcome := OutcomeSuccess
	if t == event.TokenRefreshFailed {
		outcome = OutcomeFailure
	}
	TokenRefreshesTotal.WithLabelValues(p.Provider, outcome).Inc()
	return nil
}

func recordConnectionRemoved(raw interface{}) error {
	p, err := event.DecodePayload[event.ConnectionRemovedPayloadV1](raw)
	if err != nil {
		return err
	}
	ConnectionsRemoved.WithLabelValues(p.Provider, strconv.FormatBool(p.Revoked)).Inc()
	return nil
}

func recordTaxonomyDrift(raw interface{}) error {
	p, err := event.DecodePayload[event.TaxonomyDriftPayloadV1](raw)
	if err != nil {
		return err
	}
	TaxonomyDriftTotal.WithLabelValues(p.Kind).Inc()
	return nil
}
