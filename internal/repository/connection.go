package repository

import (
	"context"
	"time"

	"github.com/osse101/CurioSync_Go/internal/domain"
)

// Connection defines data access for provider connections.
// Token columns are stored and returned as ciphertext.
type Connection interface {
	// GetConnection returns domain.ErrConnectionNotFound when no row exists
	GetConnection(ctx context.Context, userID, provider string) (*domain.Connection, error)
	ListConnections(ctx context.Context, userID string) ([]domain.Connection, error)
	ListSyncEnabledConnections(ctx context.Context) ([]domain.Connection, error)
	UpsertConnection(ctx context.Context, conn *domain.Connection) error
	UpdateTokens(ctx context.Context, connectionID, accessToken, refreshToken string, expiresAt *time.Time) error
	UpdateLastSync(ctx context.Context, connectionID string, at time.Time) error
	SetSyncEnabled(ctx context.Context, userID, provider string, enabled bool) error
	DeleteConnection(ctx context.Context, userID, provider string) error
}
