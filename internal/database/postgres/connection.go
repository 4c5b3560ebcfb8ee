package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CurioSync_Go/internal/domain"
)

// ConnectionRepository implements repository.Connection for PostgreSQL
type ConnectionRepository struct {
	db *pgxpool.Pool
}

// NewConnectionRepository creates a new ConnectionRepository
func NewConnectionRepository(db *pgxpool.Pool) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

func scanConnection(row pgx.Row) (*domain.Connection, error) {
	var (
		c  domain.Connection
		id uuid.UUID
	)
	err := row.Scan(&id, &c.UserID, &c.Provider, &c.ProviderUserID, &c.ProviderUsername,
		&c.AccessToken, &c.RefreshToken, &c.TokenExpiresAt, &c.SyncEnabled,
		&c.LastSyncAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.ID = id.String()
	return &c, nil
}

// GetConnection returns domain.ErrConnectionNotFound when no row exists
func (r *ConnectionRepository) GetConnection(ctx context.Context, userID, provider string) (*domain.Connection, error) {
	conn, err := scanConnection(r.db.QueryRow(ctx, sqlSelectConnection, userID, provider))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConnectionNotFound, provider)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	return conn, nil
}

func (r *ConnectionRepository) ListConnections(ctx context.Context, userID string) ([]domain.Connection, error) {
	return r.list(ctx, sqlListConnections, userID)
}

func (r *ConnectionRepository) ListSyncEnabledConnections(ctx context.Context) ([]domain.Connection, error) {
	return r.list(ctx, sqlListSyncEnabledConnections)
}

func (r *ConnectionRepository) list(ctx context.Context, query string, args ...any) ([]domain.Connection, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	conns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Connection, error) {
		c, err := scanConnection(row)
		if err != nil {
			return domain.Connection{}, err
		}
		return *c, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgScanFailed, err)
	}
	return conns, nil
}

// UpsertConnection creates the user row if needed and inserts or replaces the
// (user, provider) connection, filling in conn's id and timestamps.
func (r *ConnectionRepository) UpsertConnection(ctx context.Context, conn *domain.Connection) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	if _, err := tx.Exec(ctx, sqlEnsureUser, conn.UserID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx, sqlUpsertConnection,
		uuid.New(), conn.UserID, conn.Provider, conn.ProviderUserID, conn.ProviderUsername,
		conn.AccessToken, conn.RefreshToken, conn.TokenExpiresAt, conn.SyncEnabled,
	).Scan(&id, &conn.CreatedAt, &conn.UpdatedAt, &conn.LastSyncAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	conn.ID = id.String()
	return nil
}

func (r *ConnectionRepository) UpdateTokens(ctx context.Context, connectionID, accessToken, refreshToken string, expiresAt *time.Time) error {
	id, err := parseID(connectionID)
	if err != nil {
		return err
	}
	return r.execOne(ctx, sqlUpdateTokens, id, accessToken, refreshToken, expiresAt)
}

func (r *ConnectionRepository) UpdateLastSync(ctx context.Context, connectionID string, at time.Time) error {
	id, err := parseID(connectionID)
	if err != nil {
		return err
	}
	return r.execOne(ctx, sqlUpdateLastSync, id, at)
}

func (r *ConnectionRepository) SetSyncEnabled(ctx context.Context, userID, provider string, enabled bool) error {
	return r.execOne(ctx, sqlSetSyncEnabled, userID, provider, enabled)
}

func (r *ConnectionRepository) DeleteConnection(ctx context.Context, userID, provider string) error {
	return r.execOne(ctx, sqlDeleteConnection, userID, provider)
}

// execOne runs a statement that must touch exactly one connection row
func (r *ConnectionRepository) execOne(ctx context.Context, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConnectionNotFound
	}
	return nil
}
