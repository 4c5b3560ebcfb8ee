package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/repository"
)

// TagRepository implements repository.TagIndex and repository.TagAudit for PostgreSQL
type TagRepository struct {
	db *pgxpool.Pool
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *pgxpool.Pool) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) GetOrCreateTag(ctx context.Context, name, displayName string) (string, error) {
	var id uuid.UUID
	if err := r.db.QueryRow(ctx, sqlGetOrCreateTag, uuid.New(), name, displayName).Scan(&id); err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	return id.String(), nil
}

// LinkItemTag inserts the join row and bumps the counter in one transaction
func (r *TagRepository) LinkItemTag(ctx context.Context, itemID, tagID string) (bool, error) {
	item, err := parseID(itemID)
	if err != nil {
		return false, err
	}
	tag, err := parseID(tagID)
	if err != nil {
		return false, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	ct, err := tx.Exec(ctx, sqlInsertItemTag, item, tag)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	if ct.RowsAffected() == 0 {
		return false, nil
	}
	if _, err := tx.Exec(ctx, sqlIncrementUsage, tag); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return true, nil
}

// ListItemTagSources pages by item id; an empty afterItemID starts from the beginning
func (r *TagRepository) ListItemTagSources(ctx context.Context, afterItemID string, limit int) ([]repository.ItemTagSource, error) {
	after := uuid.Nil
	if afterItemID != "" {
		var err error
		if after, err = parseID(afterItemID); err != nil {
			return nil, err
		}
	}

	rows, err := r.db.Query(ctx, sqlListItemTagSources, after, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.ItemTagSource, error) {
		var (
			src repository.ItemTagSource
			id  uuid.UUID
		)
		if err := row.Scan(&id, &src.Tags); err != nil {
			return src, err
		}
		src.ItemID = id.String()
		return src, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgScanFailed, err)
	}
	return out, nil
}

func (r *TagRepository) UpsertTags(ctx context.Context, batch []repository.TagUpsert) (map[string]string, error) {
	names := make([]string, 0, len(batch))
	displays := make([]string, 0, len(batch))
	counts := make([]int32, 0, len(batch))
	for _, t := range batch {
		names = append(names, t.Name)
		displays = append(displays, t.DisplayName)
		counts = append(counts, int32(t.UsageCount))
	}

	rows, err := r.db.Query(ctx, sqlUpsertTags, names, displays, counts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	defer rows.Close()

	ids := make(map[string]string, len(batch))
	for rows.Next() {
		var (
			name string
			id   uuid.UUID
		)
		if err := rows.Scan(&name, &id); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgScanFailed, err)
		}
		ids[name] = id.String()
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	return ids, nil
}

func (r *TagRepository) InsertItemTags(ctx context.Context, links []domain.ItemTag) (int64, error) {
	items := make([]uuid.UUID, 0, len(links))
	tags := make([]uuid.UUID, 0, len(links))
	for _, l := range links {
		item, err := parseID(l.ItemID)
		if err != nil {
			return 0, err
		}
		tag, err := parseID(l.TagID)
		if err != nil {
			return 0, err
		}
		items = append(items, item)
		tags = append(tags, tag)
	}

	ct, err := r.db.Exec(ctx, sqlInsertItemTags, items, tags)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	return ct.RowsAffected(), nil
}

func (r *TagRepository) SampleTags(ctx context.Context, userID string, limit int) ([]domain.Tag, error) {
	rows, err := r.db.Query(ctx, sqlSampleTags, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	tags, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Tag, error) {
		var (
			t  domain.Tag
			id uuid.UUID
		)
		err := row.Scan(&id, &t.Name, &t.DisplayName, &t.UsageCount, &t.CreatedAt)
		t.ID = id.String()
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgScanFailed, err)
	}
	return tags, nil
}

func (r *TagRepository) JoinedItemIDs(ctx context.Context, tagID, userID string) ([]string, error) {
	return r.itemIDs(ctx, sqlJoinedItemIDs, tagID, userID)
}

func (r *TagRepository) ItemIDsByDisplayName(ctx context.Context, displayName, userID string) ([]string, error) {
	rows, err := r.db.Query(ctx, sqlItemIDsByDisplayName, displayName, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	return collectIDs(rows)
}

func (r *TagRepository) ItemIDsByTagID(ctx context.Context, tagID, userID string) ([]string, error) {
	return r.itemIDs(ctx, sqlItemIDsByTagID, tagID, userID)
}

func (r *TagRepository) DeletedItemIDs(ctx context.Context, tagID string) ([]string, error) {
	return r.itemIDs(ctx, sqlDeletedItemIDs, tagID)
}

// itemIDs runs an id-list query whose first parameter is a tag id
func (r *TagRepository) itemIDs(ctx context.Context, query, tagID string, args ...any) ([]string, error) {
	id, err := parseID(tagID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	return collectIDs(rows)
}

func (r *TagRepository) CountActiveItems(ctx context.Context, tagID string) (int, error) {
	id, err := parseID(tagID)
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.db.QueryRow(ctx, sqlCountActiveItems, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	return n, nil
}

func (r *TagRepository) ReconcileUsageCounts(ctx context.Context) ([]repository.CounterDrift, error) {
	rows, err := r.db.Query(ctx, sqlReconcileUsageCounts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	drifts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.CounterDrift, error) {
		var (
			d  repository.CounterDrift
			id uuid.UUID
		)
		err := row.Scan(&id, &d.Name, &d.Previous, &d.Actual)
		d.TagID = id.String()
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgScanFailed, err)
	}
	return drifts, nil
}

func (r *TagRepository) ListUnattributedImports(ctx context.Context, notePrefixes []string, limit int) ([]domain.Item, error) {
	if len(notePrefixes) == 0 {
		return []domain.Item{}, nil
	}
	rows, err := r.db.Query(ctx, sqlListUnattributedImports, likePrefixes(notePrefixes), limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Item, error) {
		item, err := scanItem(row)
		if err != nil {
			return domain.Item{}, err
		}
		return *item, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgScanFailed, err)
	}
	return items, nil
}
