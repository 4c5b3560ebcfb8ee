package repository

import (
	"context"

	"github.com/osse101/CurioSync_Go/internal/domain"
)

// TagIndex defines the write path used when an imported item is tagged
type TagIndex interface {
	// GetOrCreateTag returns the id of the tag with this key, creating it with displayName when absent
	GetOrCreateTag(ctx context.Context, name, displayName string) (string, error)
	// LinkItemTag inserts the join row and bumps the tag counter only when the row is new
	LinkItemTag(ctx context.Context, itemID, tagID string) (bool, error)
}

// ItemTagSource is one item's raw tag strings as stored on the item
type ItemTagSource struct {
	ItemID string
	Tags   []string
}

// TagUpsert is one row of a backfill tag batch
type TagUpsert struct {
	Name        string
	DisplayName string
	UsageCount  int
}

// CounterDrift is a tag whose stored counter disagreed with its join rows
type CounterDrift struct {
	TagID    string `json:"tag_id"`
	Name     string `json:"name"`
	Previous int    `json:"previous"`
	Actual   int    `json:"actual"`
}

// TagAudit defines the bulk and diagnostic queries behind the taxonomy auditor
type TagAudit interface {
	// ListItemTagSources pages through non-deleted items ordered by id, starting after afterItemID
	ListItemTagSources(ctx context.Context, afterItemID string, limit int) ([]ItemTagSource, error)
	// UpsertTags creates missing tags and refreshes counters, returning name -> tag id
	UpsertTags(ctx context.Context, batch []TagUpsert) (map[string]string, error)
	// InsertItemTags inserts join rows, skipping existing pairs, and returns how many were new
	InsertItemTags(ctx context.Context, links []domain.ItemTag) (int64, error)

	SampleTags(ctx context.Context, userID string, limit int) ([]domain.Tag, error)
	// JoinedItemIDs returns one entry per join row on the user's non-deleted items, duplicates included
	JoinedItemIDs(ctx context.Context, tagID, userID string) ([]string, error)
	// ItemIDsByDisplayName runs the list query a client would run when filtering by label
	ItemIDsByDisplayName(ctx context.Context, displayName, userID string) ([]string, error)
	// ItemIDsByTagID returns distinct non-deleted items of the user linked to the tag
	ItemIDsByTagID(ctx context.Context, tagID, userID string) ([]string, error)
	// DeletedItemIDs returns soft-deleted items still linked to the tag
	DeletedItemIDs(ctx context.Context, tagID string) ([]string, error)
	// CountActiveItems counts distinct non-deleted items linked to the tag across all users
	CountActiveItems(ctx context.Context, tagID string) (int, error)

	// ReconcileUsageCounts rewrites every drifted counter from the join rows
	ReconcileUsageCounts(ctx context.Context) ([]CounterDrift, error)
	// ListUnattributedImports finds items whose note looks like a provider import but carry no provenance
	ListUnattributedImports(ctx context.Context, notePrefixes []string, limit int) ([]domain.Item, error)
}
