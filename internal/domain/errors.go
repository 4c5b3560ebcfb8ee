package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Provider errors
	ErrMsgAuthenticationExpired = "provider authentication expired, reconnect required"
	ErrMsgRateLimited           = "provider rate limit exceeded"
	ErrMsgProviderAPI           = "provider api error"
	ErrMsgInvalidProvider       = "invalid provider"

	// Token errors
	ErrMsgNoRefreshToken     = "no refresh token stored"
	ErrMsgTokenRefreshFailed = "token refresh failed"

	// Connection errors
	ErrMsgConnectionNotFound = "provider connection not found"
	ErrMsgSyncDisabled       = "sync is disabled for this connection"

	// Sync errors
	ErrMsgSyncInProgress = "a sync is already in progress for this connection"
	ErrMsgNoGroups       = "no groups to sync"

	// Item errors
	ErrMsgItemNotFound = "item not found"

	// Database/System errors
	ErrMsgDatabaseError = "database error"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Provider errors
	ErrAuthenticationExpired = errors.New(ErrMsgAuthenticationExpired)
	ErrRateLimited           = errors.New(ErrMsgRateLimited)
	ErrProviderAPI           = errors.New(ErrMsgProviderAPI)
	ErrInvalidProvider       = errors.New(ErrMsgInvalidProvider)

	// Token errors
	ErrNoRefreshToken     = errors.New(ErrMsgNoRefreshToken)
	ErrTokenRefreshFailed = errors.New(ErrMsgTokenRefreshFailed)

	// Connection errors
	ErrConnectionNotFound = errors.New(ErrMsgConnectionNotFound)
	ErrSyncDisabled       = errors.New(ErrMsgSyncDisabled)

	// Sync errors
	ErrSyncInProgress = errors.New(ErrMsgSyncInProgress)
	ErrNoGroups       = errors.New(ErrMsgNoGroups)

	// Item errors
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	// Database/System errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// ProviderAPIError is a non-2xx provider response that is neither 401 nor 429
type ProviderAPIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderAPIError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Provider, ErrMsgProviderAPI, e.StatusCode, e.Body)
}

// Is lets errors.Is(err, ErrProviderAPI) match any ProviderAPIError
func (e *ProviderAPIError) Is(target error) bool {
	return target == ErrProviderAPI
}

// IsFatalSyncError reports whether err must stop a sync run before any further provider calls
func IsFatalSyncError(err error) bool {
	return errors.Is(err, ErrNoRefreshToken) ||
		errors.Is(err, ErrTokenRefreshFailed) ||
		errors.Is(err, ErrAuthenticationExpired) ||
		errors.Is(err, ErrRateLimited)
}
