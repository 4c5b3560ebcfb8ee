package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/repository"
)

// uniqueTag returns a tag key no other test uses; the tags table is shared by all users
func uniqueTag(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func usageCount(t *testing.T, tagID string) int {
	t.Helper()
	var n int
	err := testPool.QueryRow(context.Background(), `SELECT usage_count FROM tags WHERE tag_id = $1`, tagID).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestTagRepository_GetOrCreateAndLink(t *testing.T) {
	pool := requireDB(t)
	repo := NewTagRepository(pool)
	ctx := context.Background()
	userID := newUser(t, pool)
	name := uniqueTag("golang")

	id, err := repo.GetOrCreateTag(ctx, name, "GoLang")
	require.NoError(t, err)
	again, err := repo.GetOrCreateTag(ctx, name, "golang")
	require.NoError(t, err)
	assert.Equal(t, id, again, "same key resolves to the same tag")

	var display string
	require.NoError(t, pool.QueryRow(ctx, `SELECT display_name FROM tags WHERE tag_id = $1`, id).Scan(&display))
	assert.Equal(t, "GoLang", display, "first display name wins")

	item := insertItem(t, pool, testItem{UserID: userID})
	linked, err := repo.LinkItemTag(ctx, item, id)
	require.NoError(t, err)
	assert.True(t, linked)

	linked, err = repo.LinkItemTag(ctx, item, id)
	require.NoError(t, err)
	assert.False(t, linked)
	assert.Equal(t, 1, usageCount(t, id), "relinking does not double count")

	_, err = repo.LinkItemTag(ctx, "bad", id)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTagRepository_BackfillBatches(t *testing.T) {
	pool := requireDB(t)
	repo := NewTagRepository(pool)
	ctx := context.Background()
	userID := newUser(t, pool)
	a, b := uniqueTag("a"), uniqueTag("b")

	first := insertItem(t, pool, testItem{UserID: userID, Tags: []string{a, b}})
	second := insertItem(t, pool, testItem{UserID: userID, Tags: []string{a}})
	insertItem(t, pool, testItem{UserID: userID, Tags: []string{b}, Deleted: true})

	batch := []repository.TagUpsert{
		{Name: a, DisplayName: a, UsageCount: 2},
		{Name: b, DisplayName: b, UsageCount: 1},
	}
	ids, err := repo.UpsertTags(ctx, batch)
	require.NoError(t, err)
	require.Len(t, ids, 2)

	links := []domain.ItemTag{
		{ItemID: first, TagID: ids[a]},
		{ItemID: first, TagID: ids[b]},
		{ItemID: second, TagID: ids[a]},
	}
	created, err := repo.InsertItemTags(ctx, links)
	require.NoError(t, err)
	assert.Equal(t, int64(3), created)

	t.Run("rerun is stable", func(t *testing.T) {
		rerun, err := repo.UpsertTags(ctx, batch)
		require.NoError(t, err)
		assert.Equal(t, ids, rerun)

		created, err := repo.InsertItemTags(ctx, links)
		require.NoError(t, err)
		assert.Zero(t, created)
		assert.Equal(t, 2, usageCount(t, ids[a]))
	})

	t.Run("sources skip deleted items", func(t *testing.T) {
		var seen []string
		after := ""
		for {
			page, err := repo.ListItemTagSources(ctx, after, 50)
			require.NoError(t, err)
			for _, src := range page {
				seen = append(seen, src.ItemID)
			}
			if len(page) < 50 {
				break
			}
			after = page[len(page)-1].ItemID
		}
		assert.Contains(t, seen, first)
		assert.Contains(t, seen, second)
		for i := 1; i < len(seen); i++ {
			assert.Less(t, seen[i-1], seen[i], "sources are ordered by id")
		}
	})

	t.Run("invalid link id", func(t *testing.T) {
		_, err := repo.InsertItemTags(ctx, []domain.ItemTag{{ItemID: "x", TagID: ids[a]}})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestTagRepository_Diagnostics(t *testing.T) {
	pool := requireDB(t)
	repo := NewTagRepository(pool)
	ctx := context.Background()
	userID := newUser(t, pool)
	name := uniqueTag("art")

	tagID, err := repo.GetOrCreateTag(ctx, name, "Art "+name)
	require.NoError(t, err)

	live := insertItem(t, pool, testItem{UserID: userID})
	gone := insertItem(t, pool, testItem{UserID: userID})
	for _, item := range []string{live, gone} {
		_, err := repo.LinkItemTag(ctx, item, tagID)
		require.NoError(t, err)
	}
	_, err = pool.Exec(ctx, `UPDATE items SET deleted_at = NOW() WHERE item_id = $1`, gone)
	require.NoError(t, err)

	sample, err := repo.SampleTags(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, sample, 1)
	assert.Equal(t, tagID, sample[0].ID)
	assert.Equal(t, 2, sample[0].UsageCount)

	joined, err := repo.JoinedItemIDs(ctx, tagID, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{live}, joined)

	byName, err := repo.ItemIDsByDisplayName(ctx, "Art "+name, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{live}, byName)

	byID, err := repo.ItemIDsByTagID(ctx, tagID, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{live}, byID)

	deleted, err := repo.DeletedItemIDs(ctx, tagID)
	require.NoError(t, err)
	assert.Equal(t, []string{gone}, deleted)

	active, err := repo.CountActiveItems(ctx, tagID)
	require.NoError(t, err)
	assert.Equal(t, 1, active)

	t.Run("reconcile rewrites the drifted counter", func(t *testing.T) {
		drifts, err := repo.ReconcileUsageCounts(ctx)
		require.NoError(t, err)

		var ours *repository.CounterDrift
		for i := range drifts {
			if drifts[i].TagID == tagID {
				ours = &drifts[i]
			}
		}
		require.NotNil(t, ours)
		assert.Equal(t, name, ours.Name)
		assert.Equal(t, 2, ours.Previous)
		assert.Equal(t, 1, ours.Actual)
		assert.Equal(t, 1, usageCount(t, tagID))

		drifts, err = repo.ReconcileUsageCounts(ctx)
		require.NoError(t, err)
		for _, d := range drifts {
			assert.NotEqual(t, tagID, d.TagID, "second pass finds nothing for this tag")
		}
	})
}

func TestTagRepository_ListUnattributedImports(t *testing.T) {
	pool := requireDB(t)
	repo := NewTagRepository(pool)
	items := NewItemRepository(pool)
	ctx := context.Background()
	userID := newUser(t, pool)
	marker := uuid.NewString()[:8]

	orphan := insertItem(t, pool, testItem{UserID: userID, Note: "Pin_" + marker + " from board"})
	attributed := insertItem(t, pool, testItem{UserID: userID, Note: "Pin_" + marker + " attributed"})
	insertItem(t, pool, testItem{UserID: userID, Note: "Pinx" + marker + " wildcard bait"})
	insertItem(t, pool, testItem{UserID: userID, Note: "Pin_" + marker + " deleted", Deleted: true})
	require.NoError(t, items.AttachProvenance(ctx, attributed, domain.Provenance{
		Source: domain.ProviderPinterest, ExternalID: "pin-" + marker,
	}))

	found, err := repo.ListUnattributedImports(ctx, []string{"Pin_" + marker}, 100)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, orphan, found[0].ID)
	assert.Empty(t, found[0].ImportSource)

	none, err := repo.ListUnattributedImports(ctx, nil, 100)
	require.NoError(t, err)
	assert.Empty(t, none)
}
