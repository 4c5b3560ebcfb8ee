package repository

import (
	"context"
	"time"
)

// SyncLock is a store-backed lease that keeps two runs for the same (user, provider) apart
type SyncLock interface {
	// AcquireSyncLock returns domain.ErrSyncInProgress while another run holds an unexpired lease
	AcquireSyncLock(ctx context.Context, userID, provider, runID string, ttl time.Duration) error
	// ReleaseSyncLock drops the lease if it still belongs to runID
	ReleaseSyncLock(ctx context.Context, userID, provider, runID string) error
}
