package audit

import (
	"context"
	"fmt"
	"sort"

	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/logger"
	"github.com/osse101/CurioSync_Go/internal/repository"
	"github.com/osse101/CurioSync_Go/internal/taxonomy"
)

// BackfillReport summarizes one backfill pass
type BackfillReport struct {
	ItemsScanned int   `json:"items_scanned"`
	RawTags      int   `json:"raw_tags"`
	InvalidTags  int   `json:"invalid_tags"`
	Tags         int   `json:"tags"`
	Links        int   `json:"links"`
	LinksCreated int64 `json:"links_created"`
}

// tagUsage is one normalized key with its first-seen display form and the items using it
type tagUsage struct {
	key     string
	display string
	items   map[string]struct{}
}

// Backfill never prunes existing join rows; duplicates left by older data are
// reported by Diagnose and ignored by Reconcile, which counts distinct items.
func (s *service) Backfill(ctx context.Context) (*BackfillReport, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgBackfillStarted)

	report := &BackfillReport{}
	usages, err := s.collect(ctx, report)
	if err != nil {
		return nil, err
	}
	report.Tags = len(usages)
	log.Info(LogMsgBackfillScanned, "items", report.ItemsScanned, "tags", report.Tags, "invalid", report.InvalidTags)

	ids, err := s.upsertTags(ctx, usages)
	if err != nil {
		return nil, err
	}

	links := make([]domain.ItemTag, 0)
	for _, u := range usages {
		tagID, ok := ids[u.key]
		if !ok {
			return nil, fmt.Errorf("%s %q", ErrMsgMissingTagID, u.key)
		}
		for _, itemID := range sortedKeys(u.items) {
			links = append(links, domain.ItemTag{ItemID: itemID, TagID: tagID})
		}
	}
	report.Links = len(links)

	for start := 0; start < len(links); start += LinkBatchSize {
		end := min(start+LinkBatchSize, len(links))
		created, err := s.repo.InsertItemTags(ctx, links[start:end])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgInsertLinksFailed, err)
		}
		report.LinksCreated += created
	}

	log.Info(LogMsgBackfillFinished, "tags", report.Tags, "links", report.Links, "links_created", report.LinksCreated)
	return report, nil
}

// collect pages through every item and groups its tags by normalized key, in first-seen order
func (s *service) collect(ctx context.Context, report *BackfillReport) ([]*tagUsage, error) {
	byKey := make(map[string]*tagUsage)
	var ordered []*tagUsage

	after := ""
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := s.repo.ListItemTagSources(ctx, after, ScanPageSize)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgScanItemsFailed, err)
		}

		for _, src := range page {
			report.ItemsScanned++
			report.RawTags += len(src.Tags)
			for _, raw := range src.Tags {
				if !taxonomy.IsValidTag(taxonomy.NormalizeTag(raw)) {
					report.InvalidTags++
				}
			}

			for _, tag := range taxonomy.NormalizeTags(src.Tags) {
				u, ok := byKey[tag.Key]
				if !ok {
					u = &tagUsage{key: tag.Key, display: tag.Display, items: make(map[string]struct{})}
					byKey[tag.Key] = u
					ordered = append(ordered, u)
				}
				u.items[src.ItemID] = struct{}{}
			}
		}

		if len(page) < ScanPageSize {
			return ordered, nil
		}
		after = page[len(page)-1].ItemID
	}
}

func (s *service) upsertTags(ctx context.Context, usages []*tagUsage) (map[string]string, error) {
	ids := make(map[string]string, len(usages))
	for start := 0; start < len(usages); start += TagBatchSize {
		end := min(start+TagBatchSize, len(usages))

		batch := make([]repository.TagUpsert, 0, end-start)
		for _, u := range usages[start:end] {
			batch = append(batch, repository.TagUpsert{
				Name:        u.key,
				DisplayName: u.display,
				UsageCount:  len(u.items),
			})
		}

		got, err := s.repo.UpsertTags(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgUpsertTagsFailed, err)
		}
		for name, id := range got {
			ids[name] = id
		}
	}
	return ids, nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
