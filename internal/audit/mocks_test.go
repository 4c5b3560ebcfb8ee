package audit

import (
	"context"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/repository"
	"github.com/osse101/CurioSync_Go/internal/taxonomy"
)

// MockTagAudit implements repository.TagAudit for testing
type MockTagAudit struct {
	mock.Mock
}

func (m *MockTagAudit) ListItemTagSources(ctx context.Context, afterItemID string, limit int) ([]repository.ItemTagSource, error) {
	args := m.Called(ctx, afterItemID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ItemTagSource), args.Error(1)
}

func (m *MockTagAudit) UpsertTags(ctx context.Context, batch []repository.TagUpsert) (map[string]string, error) {
	args := m.Called(ctx, batch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockTagAudit) InsertItemTags(ctx context.Context, links []domain.ItemTag) (int64, error) {
	args := m.Called(ctx, links)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTagAudit) SampleTags(ctx context.Context, userID string, limit int) ([]domain.Tag, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *MockTagAudit) JoinedItemIDs(ctx context.Context, tagID, userID string) ([]string, error) {
	args := m.Called(ctx, tagID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTagAudit) ItemIDsByDisplayName(ctx context.Context, displayName, userID string) ([]string, error) {
	args := m.Called(ctx, displayName, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTagAudit) ItemIDsByTagID(ctx context.Context, tagID, userID string) ([]string, error) {
	args := m.Called(ctx, tagID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTagAudit) DeletedItemIDs(ctx context.Context, tagID string) ([]string, error) {
	args := m.Called(ctx, tagID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTagAudit) CountActiveItems(ctx context.Context, tagID string) (int, error) {
	args := m.Called(ctx, tagID)
	return args.Int(0), args.Error(1)
}

func (m *MockTagAudit) ReconcileUsageCounts(ctx context.Context) ([]repository.CounterDrift, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CounterDrift), args.Error(1)
}

func (m *MockTagAudit) ListUnattributedImports(ctx context.Context, notePrefixes []string, limit int) ([]domain.Item, error) {
	args := m.Called(ctx, notePrefixes, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

// memoryTaxonomy is an in-memory backfill target with primary-key semantics on
// tags(name) and item_tags(item_id, tag_id). Diagnostic methods fall through to the mock.
type memoryTaxonomy struct {
	*MockTagAudit

	mu         sync.Mutex
	items      []repository.ItemTagSource
	tags       map[string]*domain.Tag
	links      map[domain.ItemTag]struct{}
	tagBatches []int
	linkBatch  []int
}

func newMemoryTaxonomy(items ...repository.ItemTagSource) *memoryTaxonomy {
	sort.Slice(items, func(i, j int) bool { return items[i].ItemID < items[j].ItemID })
	return &memoryTaxonomy{
		MockTagAudit: &MockTagAudit{},
		items:        items,
		tags:         map[string]*domain.Tag{},
		links:        map[domain.ItemTag]struct{}{},
	}
}

func (m *memoryTaxonomy) ListItemTagSources(ctx context.Context, afterItemID string, limit int) ([]repository.ItemTagSource, error) {
	var out []repository.ItemTagSource
	for _, it := range m.items {
		if it.ItemID > afterItemID {
			out = append(out, it)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *memoryTaxonomy) UpsertTags(ctx context.Context, batch []repository.TagUpsert) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tagBatches = append(m.tagBatches, len(batch))
	ids := make(map[string]string, len(batch))
	for _, t := range batch {
		tag, ok := m.tags[t.Name]
		if !ok {
			tag = &domain.Tag{ID: "tag-" + t.Name, Name: t.Name, DisplayName: t.DisplayName}
			m.tags[t.Name] = tag
		}
		tag.UsageCount = t.UsageCount
		ids[t.Name] = tag.ID
	}
	return ids, nil
}

func (m *memoryTaxonomy) InsertItemTags(ctx context.Context, links []domain.ItemTag) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.linkBatch = append(m.linkBatch, len(links))
	var created int64
	for _, l := range links {
		key := domain.ItemTag{ItemID: l.ItemID, TagID: l.TagID}
		if _, ok := m.links[key]; ok {
			continue
		}
		m.links[key] = struct{}{}
		created++
	}
	return created, nil
}

func (m *memoryTaxonomy) usage() map[string]int {
	out := make(map[string]int, len(m.tags))
	for name, t := range m.tags {
		out[name] = t.UsageCount
	}
	return out
}

// fakeItemRepo serves domain counts for Platforms
type fakeItemRepo struct {
	repository.Item
	counts []taxonomy.DomainCount
	err    error
}

func (f *fakeItemRepo) DomainCounts(ctx context.Context, userID string) ([]taxonomy.DomainCount, error) {
	return f.counts, f.err
}
