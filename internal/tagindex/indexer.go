// Package tagindex links an imported item's raw tags to canonical taxonomy entries.
package tagindex

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/osse101/CurioSync_Go/internal/logger"
	"github.com/osse101/CurioSync_Go/internal/repository"
	"github.com/osse101/CurioSync_Go/internal/taxonomy"
)

// Indexer resolves raw tags to Tag rows and creates the item's join rows
type Indexer struct {
	repo  repository.TagIndex
	cache *tagCache
}

// New creates an indexer. Non-positive size or ttl fall back to defaults.
func New(repo repository.TagIndex, size int, ttl time.Duration) *Indexer {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Indexer{repo: repo, cache: newTagCache(size, ttl)}
}

// IndexItem normalizes rawTags, drops invalid ones, and links the rest to itemID.
// Usage counters move only for join rows that did not exist yet. It returns the
// number of new links; per-tag failures are combined into the returned error
// without stopping the remaining tags.
func (ix *Indexer) IndexItem(ctx context.Context, itemID string, rawTags []string) (int, error) {
	var (
		linked int
		errs   error
	)

	for _, tag := range taxonomy.NormalizeTags(rawTags) {
		tagID, err := ix.resolve(ctx, tag)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s %q: %w", ErrMsgResolveTagFailed, tag.Key, err))
			continue
		}

		created, err := ix.repo.LinkItemTag(ctx, itemID, tagID)
		if err != nil {
			ix.cache.Invalidate(tag.Key)
			errs = multierr.Append(errs, fmt.Errorf("%s %q: %w", ErrMsgLinkTagFailed, tag.Key, err))
			continue
		}
		if created {
			linked++
		}
	}

	logger.FromContext(ctx).Debug(LogMsgItemIndexed, "item_id", itemID, "linked", linked, "raw", len(rawTags))
	return linked, errs
}

func (ix *Indexer) resolve(ctx context.Context, tag taxonomy.NormalizedTag) (string, error) {
	if id, ok := ix.cache.Get(tag.Key); ok {
		return id, nil
	}
	id, err := ix.repo.GetOrCreateTag(ctx, tag.Key, tag.Display)
	if err != nil {
		return "", err
	}
	ix.cache.Set(tag.Key, id)
	return id, nil
}
