package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Sync metric names
const (
	MetricNameSyncRunsTotal          = "sync_runs_total"
	MetricNameSyncItemsTotal         = "sync_items_total"
	MetricNameSyncRunDuration        = "sync_run_duration_seconds"
	MetricNameTokenRefreshesTotal    = "token_refreshes_total"
	MetricNameProviderRequestsTotal  = "provider_requests_total"
	MetricNameConnectionsRemoved     = "connections_removed_total"
	MetricNameTaxonomyDriftTotal     = "taxonomy_drift_total"
	MetricNameProviderBreakerChanges = "provider_breaker_state_changes_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Sync metric help text
const (
	HelpTextSyncRunsTotal          = "Total number of provider sync runs by outcome"
	HelpTextSyncItemsTotal         = "Total number of provider items processed by result"
	HelpTextSyncRunDuration        = "Provider sync run duration in seconds"
	HelpTextTokenRefreshesTotal    = "Total number of OAuth token refresh attempts by outcome"
	HelpTextProviderRequestsTotal  = "Total number of outbound provider API requests by status class"
	HelpTextConnectionsRemoved     = "Total number of provider connections removed"
	HelpTextTaxonomyDriftTotal     = "Total number of taxonomy inconsistencies found by diagnostics or reconciliation"
	HelpTextProviderBreakerChanges = "Total number of provider circuit breaker state transitions"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelProvider = "provider"
	LabelOutcome  = "outcome"
	LabelResult   = "result"
	LabelKind     = "kind"
	LabelRevoked  = "revoked"
	LabelState    = "state"
)

// Label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"

	ResultSynced  = "synced"
	ResultSkipped = "skipped"
	ResultFailed  = "failed"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// SyncDurationBuckets covers a single-page run up to a full budget with throttling delays.
var SyncDurationBuckets = []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadDecodeFailed = "Event payload could not be decoded"
	LogMsgMetricsRecorded          = "Metrics recorded for event"
)
