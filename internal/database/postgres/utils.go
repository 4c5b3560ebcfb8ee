// Package postgres implements the repository interfaces on PostgreSQL with pgx.
package postgres

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error(LogMsgRollbackFailed, "error", err)
	}
}

// parseID parses a row id with a consistent error. Non-UUID ids are invalid input.
func parseID(id string) (uuid.UUID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, ErrMsgInvalidID, id)
	}
	return u, nil
}

// advisoryKey creates a consistent int64 hash from its parts for advisory locking
func advisoryKey(parts ...string) int64 {
	h := sha256.Sum256([]byte(strings.Join(parts, HashSeparator)))
	return int64(binary.BigEndian.Uint64(h[:8]) & HashMaskPositiveInt64)
}

// lockTx takes a transaction-scoped advisory lock on key
func lockTx(ctx context.Context, tx pgx.Tx, key int64) error {
	if _, err := tx.Exec(ctx, SQLAdvisoryLock, key); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgAcquireAdvisoryLock, err)
	}
	return nil
}

// likePrefixes turns literal prefixes into LIKE patterns
func likePrefixes(prefixes []string) []string {
	escaper := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	out := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		out = append(out, escaper.Replace(p)+"%")
	}
	return out
}

// collectIDs reads single-column uuid rows as strings
func collectIDs(rows pgx.Rows) ([]string, error) {
	ids, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (string, error) {
		var id uuid.UUID
		if err := row.Scan(&id); err != nil {
			return "", err
		}
		return id.String(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgScanFailed, err)
	}
	return ids, nil
}
