package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}

	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}

	return nil
}

// Sync engine event types
const (
	SyncCompleted         Type = "sync.completed"
	TokenRefreshed        Type = "token.refreshed"
	TokenRefreshFailed    Type = "token.refresh_failed"
	ConnectionRemoved     Type = "connection.removed"
	TaxonomyDriftDetected Type = "taxonomy.drift_detected"
)

// SyncCompletedPayloadV1 is the typed payload for a finished sync run, successful or not
type SyncCompletedPayloadV1 struct {
	RunID      string  `json:"run_id"`
	UserID     string  `json:"user_id"`
	Provider   string  `json:"provider"`
	Success    bool    `json:"success"`
	Synced     int     `json:"synced"`
	Skipped    int     `json:"skipped"`
	Failed     int     `json:"failed"`
	DurationMs float64 `json:"duration_ms"`
	Timestamp  int64   `json:"timestamp"`
}

// TokenPayloadV1 is the typed payload for token lifecycle events
type TokenPayloadV1 struct {
	UserID    string `json:"user_id"`
	Provider  string `json:"provider"`
	ExpiresAt int64  `json:"expires_at,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// ConnectionRemovedPayloadV1 is the typed payload for a disconnect
type ConnectionRemovedPayloadV1 struct {
	UserID    string `json:"user_id"`
	Provider  string `json:"provider"`
	Revoked   bool   `json:"revoked"`
	Timestamp int64  `json:"timestamp"`
}

// TaxonomyDriftPayloadV1 is the typed payload for an auditor finding
type TaxonomyDriftPayloadV1 struct {
	Kind      string `json:"kind"`
	TagID     string `json:"tag_id,omitempty"`
	TagName   string `json:"tag_name,omitempty"`
	Count     int    `json:"count"`
	Timestamp int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewSyncCompletedEvent creates a sync completed event
func NewSyncCompletedEvent(runID, userID, provider string, success bool, synced, skipped, failed int, duration time.Duration) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SyncCompleted,
		Payload: SyncCompletedPayloadV1{
			RunID:      runID,
			UserID:     userID,
			Provider:   provider,
			Success:    success,
			Synced:     synced,
			Skipped:    skipped,
			Failed:     failed,
			DurationMs: float64(duration.Milliseconds()),
			Timestamp:  time.Now().Unix(),
		},
		Metadata: map[string]interface{}{
			"run_id": runID,
		},
	}
}

// NewTokenRefreshedEvent creates a token refreshed event
func NewTokenRefreshedEvent(userID, provider string, expiresAt *time.Time) Event {
	payload := TokenPayloadV1{
		UserID:    userID,
		Provider:  provider,
		Timestamp: time.Now().Unix(),
	}
	if expiresAt != nil {
		payload.ExpiresAt = expiresAt.Unix()
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    TokenRefreshed,
		Payload: payload,
	}
}

// NewTokenRefreshFailedEvent creates a token refresh failure event
func NewTokenRefreshFailedEvent(userID, provider string, err error) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TokenRefreshFailed,
		Payload: TokenPayloadV1{
			UserID:    userID,
			Provider:  provider,
			Error:     err.Error(),
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewConnectionRemovedEvent creates a connection removed event
func NewConnectionRemovedEvent(userID, provider string, revoked bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ConnectionRemoved,
		Payload: ConnectionRemovedPayloadV1{
			UserID:    userID,
			Provider:  provider,
			Revoked:   revoked,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewTaxonomyDriftEvent creates an auditor finding event
func NewTaxonomyDriftEvent(kind, tagID, tagName string, count int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TaxonomyDriftDetected,
		Payload: TaxonomyDriftPayloadV1{
			Kind:      kind,
			TagID:     tagID,
			TagName:   tagName,
			Count:     count,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers run synchronously on the publisher's goroutine
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
