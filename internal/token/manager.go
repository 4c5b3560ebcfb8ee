// Package token hands callers a usable provider access token, refreshing and
// persisting new credentials when the stored ones are expired or about to be.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/event"
	"github.com/osse101/CurioSync_Go/internal/logger"
)

// Store is the credential storage the manager reads from and writes back to.
// *vault.Vault satisfies it.
type Store interface {
	AccessToken(conn *domain.Connection) (string, error)
	RefreshToken(conn *domain.Connection) (string, error)
	StoreTokens(ctx context.Context, conn *domain.Connection, creds domain.Credentials) error
}

// Refreshed is the result of exchanging a refresh token
type Refreshed struct {
	AccessToken  string
	RefreshToken string        // empty when the provider did not rotate it
	ExpiresIn    time.Duration // zero when the provider reported no lifetime
}

// Refresher exchanges a refresh token at the provider's token endpoint
type Refresher interface {
	Refresh(ctx context.Context, provider, refreshToken string) (*Refreshed, error)
}

// Manager guarantees callers a non-expired access token
type Manager struct {
	store     Store
	refresher Refresher
	bus       event.Bus
	now       func() time.Time
}

// NewManager creates a token manager. bus may be nil.
func NewManager(store Store, refresher Refresher, bus event.Bus) *Manager {
	return &Manager{
		store:     store,
		refresher: refresher,
		bus:       bus,
		now:       time.Now,
	}
}

// NeedsRefresh reports whether a token expiring at expiresAt must be refreshed at now.
// A missing expiry is treated as expired.
func NeedsRefresh(expiresAt *time.Time, now time.Time) bool {
	if expiresAt == nil {
		return true
	}
	return !expiresAt.After(now.Add(RefreshWindow))
}

// EnsureValidToken returns a plaintext access token for conn. When the stored token
// needs a refresh, the new credentials are persisted exactly once before returning,
// conn is updated in place, and updated is true.
func (m *Manager) EnsureValidToken(ctx context.Context, conn *domain.Connection) (string, bool, error) {
	log := logger.FromContext(ctx)

	access, err := m.store.AccessToken(conn)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", ErrMsgDecryptAccessFailed, err)
	}

	now := m.now()
	if !NeedsRefresh(conn.TokenExpiresAt, now) {
		log.Debug(LogMsgTokenStillValid, "provider", conn.Provider)
		return access, false, nil
	}

	log.Info(LogMsgTokenRefreshing, "provider", conn.Provider, "expires_at", conn.TokenExpiresAt)

	refreshToken, err := m.store.RefreshToken(conn)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", ErrMsgDecryptRefreshFailed, err)
	}
	if refreshToken == "" {
		return "", false, fmt.Errorf("%w: %s", domain.ErrNoRefreshToken, conn.Provider)
	}

	refreshed, err := m.refresher.Refresh(ctx, conn.Provider, refreshToken)
	if err == nil && refreshed.AccessToken == "" {
		err = errors.New(ErrMsgEmptyAccessToken)
	}
	if err != nil {
		log.Warn(LogMsgTokenRefreshError, "provider", conn.Provider, "error", err)
		m.publish(ctx, event.NewTokenRefreshFailedEvent(conn.UserID, conn.Provider, err))
		return "", false, fmt.Errorf("%w: %w", domain.ErrTokenRefreshFailed, err)
	}

	creds := domain.Credentials{
		AccessToken:  refreshed.AccessToken,
		RefreshToken: refreshed.RefreshToken,
	}
	if creds.RefreshToken == "" {
		creds.RefreshToken = refreshToken
	}
	if refreshed.ExpiresIn > 0 {
		expiresAt := now.Add(refreshed.ExpiresIn)
		creds.ExpiresAt = &expiresAt
	}

	if err := m.store.StoreTokens(ctx, conn, creds); err != nil {
		return "", false, fmt.Errorf("%s: %w", ErrMsgPersistFailed, err)
	}

	log.Info(LogMsgTokenRefreshed, "provider", conn.Provider, "expires_at", creds.ExpiresAt)
	m.publish(ctx, event.NewTokenRefreshedEvent(conn.UserID, conn.Provider, creds.ExpiresAt))

	return creds.AccessToken, true, nil
}

func (m *Manager) publish(ctx context.Context, evt event.Event) {
	if m.bus == nil {
		return
	}
	if err := m.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishError, "event_type", evt.Type, "error", err)
	}
}
