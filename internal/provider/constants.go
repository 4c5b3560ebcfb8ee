package provider

import "time"

// DefaultPageDelay is the pause between consecutive page fetches
const DefaultPageDelay = 100 * time.Millisecond

// maxErrorBodyBytes caps how much of a failed response body is kept in errors
const maxErrorBodyBytes = 1024

// Breaker defaults
const (
	BreakerMaxRequests      = 3
	BreakerInterval         = 60 * time.Second
	BreakerTimeout          = 30 * time.Second
	BreakerMinRequests      = 5
	BreakerFailureThreshold = 0.6
)

// Metric status label for requests that never got a response
const StatusLabelTransportError = "error"

// Error messages
const (
	ErrMsgBuildRequestFailed = "failed to build provider request"
	ErrMsgRequestFailed      = "provider request failed"
	ErrMsgDecodeFailed       = "failed to decode provider response"
	ErrMsgCircuitOpen        = "provider circuit open"
)

// Log messages
const (
	LogMsgBreakerStateChanged = "Provider circuit breaker state changed"
	LogMsgPageFetched         = "Provider page fetched"
	LogMsgBudgetExhausted     = "Item budget exhausted"
)
