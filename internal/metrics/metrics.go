package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Sync Metrics
var (
	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncRunsTotal,
			Help: HelpTextSyncRunsTotal,
		},
		[]string{LabelProvider, LabelOutcome},
	)

	SyncItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncItemsTotal,
			Help: HelpTextSyncItemsTotal,
		},
		[]string{LabelProvider, LabelResult},
	)

	SyncRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameSyncRunDuration,
			Help:    HelpTextSyncRunDuration,
			Buckets: SyncDurationBuckets,
		},
		[]string{LabelProvider},
	)

	TokenRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTokenRefreshesTotal,
			Help: HelpTextTokenRefreshesTotal,
		},
		[]string{LabelProvider, LabelOutcome},
	)

	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameProviderRequestsTotal,
			Help: HelpTextProviderRequestsTotal,
		},
		[]string{LabelProvider, LabelStatus},
	)

	ProviderBreakerChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameProviderBreakerChanges,
			Help: HelpTextProviderBreakerChanges,
		},
		[]string{LabelProvider, LabelState},
	)

	ConnectionsRemoved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameConnectionsRemoved,
			Help: HelpTextConnectionsRemoved,
		},
		[]string{LabelProvider, LabelRevoked},
	)

	TaxonomyDriftTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTaxonomyDriftTotal,
			Help: HelpTextTaxonomyDriftTotal,
		},
		[]string{LabelKind},
	)
)
