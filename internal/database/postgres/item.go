package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/logger"
	"github.com/osse101/CurioSync_Go/internal/taxonomy"
)

// ItemRepository implements repository.Item for PostgreSQL
type ItemRepository struct {
	db *pgxpool.Pool
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) ExistsByExternalID(ctx context.Context, userID, source, externalID string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, sqlExistsByExternalID, userID, source, externalID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	return exists, nil
}

// AttachProvenance serializes writers of one provenance key with an advisory
// lock, so a second item for the same key is flagged as a duplicate instead of
// violating the partial unique index.
func (r *ItemRepository) AttachProvenance(ctx context.Context, itemID string, p domain.Provenance) error {
	id, err := parseID(itemID)
	if err != nil {
		return err
	}
	meta, err := json.Marshal(p.Metadata)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgEncodeMetadataFailed, err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	var userID string
	if err := tx.QueryRow(ctx, sqlSelectItemOwner, id).Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
		}
		return fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}

	if err := lockTx(ctx, tx, advisoryKey(lockNamespaceProvenance, userID, p.Source, p.ExternalID)); err != nil {
		return err
	}

	var duplicate bool
	if err := tx.QueryRow(ctx, sqlHasOtherProvenanceHolder, userID, p.Source, p.ExternalID, id).Scan(&duplicate); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}

	if _, err := tx.Exec(ctx, sqlAttachProvenance, id, p.Source, p.ExternalID, meta, duplicate); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}

	if duplicate {
		logger.FromContext(ctx).Warn(LogMsgDuplicateFlagged,
			"item_id", itemID, "source", p.Source, "external_id", p.ExternalID)
	}
	return nil
}

func (r *ItemRepository) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	id, err := parseID(itemID)
	if err != nil {
		return nil, err
	}
	item, err := scanItem(r.db.QueryRow(ctx, sqlSelectItem, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, itemID)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	return item, nil
}

func (r *ItemRepository) DomainCounts(ctx context.Context, userID string) ([]taxonomy.DomainCount, error) {
	rows, err := r.db.Query(ctx, sqlDomainCounts, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (taxonomy.DomainCount, error) {
		var dc taxonomy.DomainCount
		err := row.Scan(&dc.Domain, &dc.Count)
		return dc, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgScanFailed, err)
	}
	return counts, nil
}

// scanItem reads one row selected with sqlItemColumns
func scanItem(row pgx.Row) (*domain.Item, error) {
	var (
		item domain.Item
		id   uuid.UUID
		meta []byte
	)
	err := row.Scan(&id, &item.UserID, &item.URL, &item.Note, &item.Title, &item.Summary,
		&item.ImageURL, &item.Category, &item.Domain, &item.Tags,
		&item.ImportSource, &item.ExternalID, &meta,
		&item.IsDuplicate, &item.DeletedAt, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	item.ID = id.String()

	if len(meta) > 0 {
		var m domain.ImportMetadata
		if err := json.Unmarshal(meta, &m); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgDecodeMetadataFailed, err)
		}
		item.ImportMetadata = &m
	}
	return &item, nil
}
