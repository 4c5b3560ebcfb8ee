package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CurioSync_Go/internal/domain"
)

// SyncLockRepository implements repository.SyncLock with a lease row per
// (user, provider), written under a transaction-scoped advisory lock.
type SyncLockRepository struct {
	db *pgxpool.Pool
}

// NewSyncLockRepository creates a new SyncLockRepository
func NewSyncLockRepository(db *pgxpool.Pool) *SyncLockRepository {
	return &SyncLockRepository{db: db}
}

// AcquireSyncLock takes the lease for runID, or returns domain.ErrSyncInProgress
// while another run holds an unexpired one
func (r *SyncLockRepository) AcquireSyncLock(ctx context.Context, userID, provider, runID string, ttl time.Duration) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	if err := lockTx(ctx, tx, advisoryKey(lockNamespaceSync, userID, provider)); err != nil {
		return err
	}

	ct, err := tx.Exec(ctx, sqlAcquireSyncLock, userID, provider, runID, ttl.Seconds())
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrSyncInProgress
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// ReleaseSyncLock drops the lease only if it still belongs to runID
func (r *SyncLockRepository) ReleaseSyncLock(ctx context.Context, userID, provider, runID string) error {
	if _, err := r.db.Exec(ctx, sqlReleaseSyncLock, userID, provider, runID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	return nil
}
