package token

import "time"

// RefreshWindow is how close to expiry a stored access token may get before it is refreshed
const RefreshWindow = 5 * time.Minute

// Error messages
const (
	ErrMsgDecryptAccessFailed  = "failed to read stored access token"
	ErrMsgDecryptRefreshFailed = "failed to read stored refresh token"
	ErrMsgPersistFailed        = "failed to persist refreshed tokens"
	ErrMsgEmptyAccessToken     = "refresh endpoint returned no access token"
	ErrMsgNoProviderConfig     = "no oauth client configured for provider"
)

// Log messages
const (
	LogMsgTokenStillValid   = "Access token valid, no refresh needed"
	LogMsgTokenRefreshing   = "Access token expired or expiring, refreshing"
	LogMsgTokenRefreshed    = "Access token refreshed"
	LogMsgTokenRefreshError = "Access token refresh failed"
	LogMsgEventPublishError = "Failed to publish token event"
)
