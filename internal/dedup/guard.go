// Package dedup is the idempotence gate for provider imports.
package dedup

import (
	"context"
	"fmt"

	"github.com/osse101/CurioSync_Go/internal/repository"
)

// ErrMsgLookupFailed is returned when the provenance lookup itself fails
const ErrMsgLookupFailed = "failed to check import provenance"

// Guard answers whether a provider item was already imported for a user
type Guard struct {
	repo   repository.Item
	source string
}

// NewGuard creates a guard scoped to one import source (provider)
func NewGuard(repo repository.Item, source string) *Guard {
	return &Guard{repo: repo, source: source}
}

// Source returns the import source this guard checks
func (g *Guard) Source() string {
	return g.source
}

// IsImported reports whether a non-duplicate item with this provider's external id exists for userID
func (g *Guard) IsImported(ctx context.Context, userID, externalID string) (bool, error) {
	exists, err := g.repo.ExistsByExternalID(ctx, userID, g.source, externalID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgLookupFailed, err)
	}
	return exists, nil
}
