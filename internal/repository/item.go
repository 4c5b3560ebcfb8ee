package repository

import (
	"context"

	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/taxonomy"
)

// Item defines the item queries the sync engine needs.
// Items themselves are created by the ingestion pipeline.
type Item interface {
	// ExistsByExternalID reports whether a non-duplicate item with this provenance exists
	ExistsByExternalID(ctx context.Context, userID, source, externalID string) (bool, error)
	// AttachProvenance records import source, external id and metadata on an item.
	// If another item already holds the same provenance, this one is flagged as a duplicate.
	AttachProvenance(ctx context.Context, itemID string, provenance domain.Provenance) error
	GetItem(ctx context.Context, itemID string) (*domain.Item, error)
	DomainCounts(ctx context.Context, userID string) ([]taxonomy.DomainCount, error)
}
