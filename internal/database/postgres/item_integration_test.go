package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CurioSync_Go/internal/domain"
)

func TestItemRepository_Provenance(t *testing.T) {
	pool := requireDB(t)
	repo := NewItemRepository(pool)
	ctx := context.Background()
	userID := newUser(t, pool)

	first := insertItem(t, pool, testItem{UserID: userID, Note: `Pinterest pin from "Recipes"`})
	second := insertItem(t, pool, testItem{UserID: userID})

	exists, err := repo.ExistsByExternalID(ctx, userID, domain.ProviderPinterest, "pin-42")
	require.NoError(t, err)
	assert.False(t, exists)

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	prov := domain.Provenance{
		Source:     domain.ProviderPinterest,
		ExternalID: "pin-42",
		Metadata: domain.ImportMetadata{
			Provider:          domain.ProviderPinterest,
			GroupID:           "b1",
			GroupName:         "Recipes",
			ImageOnly:         true,
			MediaURL:          "https://i.pinimg.com/originals/x.jpg",
			ExternalCreatedAt: &created,
		},
	}
	require.NoError(t, repo.AttachProvenance(ctx, first, prov))

	exists, err = repo.ExistsByExternalID(ctx, userID, domain.ProviderPinterest, "pin-42")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByExternalID(ctx, "someone-else", domain.ProviderPinterest, "pin-42")
	require.NoError(t, err)
	assert.False(t, exists, "provenance is scoped per user")

	item, err := repo.GetItem(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderPinterest, item.ImportSource)
	assert.Equal(t, "pin-42", item.ExternalID)
	assert.False(t, item.IsDuplicate)
	require.NotNil(t, item.ImportMetadata)
	assert.Equal(t, "Recipes", item.ImportMetadata.GroupName)
	assert.True(t, item.ImportMetadata.ImageOnly)

	require.NoError(t, repo.AttachProvenance(ctx, second, prov))
	dup, err := repo.GetItem(ctx, second)
	require.NoError(t, err)
	assert.True(t, dup.IsDuplicate, "second holder of the same provenance is flagged")

	require.NoError(t, repo.AttachProvenance(ctx, first, prov), "reattaching to the holder is idempotent")
	item, err = repo.GetItem(ctx, first)
	require.NoError(t, err)
	assert.False(t, item.IsDuplicate)
}

func TestItemRepository_ConcurrentAttachKeepsOneHolder(t *testing.T) {
	pool := requireDB(t)
	repo := NewItemRepository(pool)
	ctx := context.Background()
	userID := newUser(t, pool)

	const writers = 8
	ids := make([]string, writers)
	for i := range ids {
		ids[i] = insertItem(t, pool, testItem{UserID: userID})
	}

	prov := domain.Provenance{Source: domain.ProviderTwitter, ExternalID: "tweet-1"}
	var wg sync.WaitGroup
	start := make(chan struct{})
	errs := make(chan error, writers)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			<-start
			errs <- repo.AttachProvenance(ctx, id, prov)
		}(id)
	}
	close(start)
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	var holders int
	err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM items
		WHERE user_id = $1 AND import_source = 'twitter' AND external_id = 'tweet-1' AND NOT is_duplicate`,
		userID).Scan(&holders)
	require.NoError(t, err)
	assert.Equal(t, 1, holders)
}

func TestItemRepository_MissingItem(t *testing.T) {
	pool := requireDB(t)
	repo := NewItemRepository(pool)
	ctx := context.Background()

	_, err := repo.GetItem(ctx, "00000000-0000-0000-0000-000000000001")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	err = repo.AttachProvenance(ctx, "00000000-0000-0000-0000-000000000001", domain.Provenance{Source: "twitter", ExternalID: "x"})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	_, err = repo.GetItem(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestItemRepository_DomainCounts(t *testing.T) {
	pool := requireDB(t)
	repo := NewItemRepository(pool)
	ctx := context.Background()
	userID := newUser(t, pool)

	insertItem(t, pool, testItem{UserID: userID, Domain: "x.com"})
	insertItem(t, pool, testItem{UserID: userID, Domain: "x.com"})
	insertItem(t, pool, testItem{UserID: userID, Domain: "twitter.com"})
	insertItem(t, pool, testItem{UserID: userID, Domain: "reddit.com", Deleted: true})
	insertItem(t, pool, testItem{UserID: userID})

	counts, err := repo.DomainCounts(ctx, userID)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "x.com", counts[0].Domain)
	assert.Equal(t, 2, counts[0].Count)
	assert.Equal(t, "twitter.com", counts[1].Domain)
}
