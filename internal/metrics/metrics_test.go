package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CurioSync_Go/internal/event"
)

func TestEventMetricsCollector_SyncCompleted(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))

	provider := "collector-test-sync"
	before := testutil.ToFloat64(SyncRunsTotal.WithLabelValues(provider, OutcomeSuccess))

	evt := event.NewSyncCompletedEvent("run-1", "user-1", provider, true, 4, 1, 0, 2*time.Second)
	require.NoError(t, bus.Publish(context.Background(), evt))

	assert.Equal(t, before+1, testutil.ToFloat64(SyncRunsTotal.WithLabelValues(provider, OutcomeSuccess)))
	assert.Equal(t, float64(4), testutil.ToFloat64(SyncItemsTotal.WithLabelValues(provider, ResultSynced)))
	assert.Equal(t, float64(1), testutil.ToFloat64(SyncItemsTotal.WithLabelValues(provider, ResultSkipped)))
	assert.Equal(t, float64(0), testutil.ToFloat64(SyncItemsTotal.WithLabelValues(provider, ResultFailed)))
}

func TestEventMetricsCollector_TokenAndDrift(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))
	ctx := context.Background()

	provider := "collector-test-token"
	require.NoError(t, bus.Publish(ctx, event.NewTokenRefreshedEvent("u", provider, nil)))
	require.NoError(t, bus.Publish(ctx, event.NewTokenRefreshFailedEvent("u", provider, assert.AnError)))
	require.NoError(t, bus.Publish(ctx, event.NewTokenRefreshFailedEvent("u", provider, assert.AnError)))

	assert.Equal(t, float64(1), testutil.ToFloat64(TokenRefreshesTotal.WithLabelValues(provider, OutcomeSuccess)))
	assert.Equal(t, float64(2), testutil.ToFloat64(TokenRefreshesTotal.WithLabelValues(provider, OutcomeFailure)))

	kind := "collector_test_kind"
	require.NoError(t, bus.Publish(ctx, event.NewTaxonomyDriftEvent(kind, "tag-1", "golang", 3)))
	assert.Equal(t, float64(1), testutil.ToFloat64(TaxonomyDriftTotal.WithLabelValues(kind)))
}

func TestEventMetricsCollector_BadPayloadCounted(t *testing.T) {
	before := testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.ConnectionRemoved)))

	err := NewEventMetricsCollector().HandleEvent(context.Background(), event.Event{
		Type:    event.ConnectionRemoved,
		Payload: make(chan int),
	})

	require.NoError(t, err, "metrics collection never fails the publisher")
	assert.Equal(t, before+1, testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.ConnectionRemoved))))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/connections/{provider}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/connections/twitter", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/connections/{provider}", "418")))
}
