package ingest

import "time"

const (
	processPath       = "/items/process"
	defaultTimeout    = 60 * time.Second
	defaultMaxRetries = 2
	defaultRetryDelay = 500 * time.Millisecond
)

// Error messages
const (
	ErrMsgMarshalFailed   = "failed to marshal ingest request"
	ErrMsgRequestFailed   = "ingest request failed"
	ErrMsgUnexpectedCode  = "ingest pipeline returned status"
	ErrMsgDecodeFailed    = "failed to decode ingest response"
	ErrMsgRetriesExceeded = "ingest retries exceeded"
)

// Log messages
const (
	LogMsgRetrying = "Retrying ingest request"
)
