package audit

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/multierr"

	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/event"
	"github.com/osse101/CurioSync_Go/internal/logger"
)

// Finding is one disagreement between the counts of a tag
type Finding struct {
	Kind        string   `json:"kind"`
	TagID       string   `json:"tag_id"`
	TagName     string   `json:"tag_name"`
	DisplayName string   `json:"display_name"`
	Detail      string   `json:"detail"`
	ItemIDs     []string `json:"item_ids,omitempty"`
}

// TagCounts are the independent counts computed for one sampled tag
type TagCounts struct {
	TagID         string `json:"tag_id"`
	Name          string `json:"name"`
	UsageCount    int    `json:"usage_count"`
	JoinRows      int    `json:"join_rows"`
	ByDisplayName int    `json:"by_display_name"`
	ByTagID       int    `json:"by_tag_id"`
	ActiveItems   int    `json:"active_items"`
	DeletedLinked int    `json:"deleted_linked"`
}

// DiagnosticReport is the outcome of Diagnose. Errors lists tags whose queries failed.
type DiagnosticReport struct {
	UserID   string      `json:"user_id"`
	Sampled  int         `json:"sampled"`
	Counts   []TagCounts `json:"counts"`
	Findings []Finding   `json:"findings"`
	Errors   []string    `json:"errors"`
}

// Consistent reports whether no finding was raised
func (r *DiagnosticReport) Consistent() bool {
	return len(r.Findings) == 0
}

func (s *service) Diagnose(ctx context.Context, userID string, sample int) (*DiagnosticReport, error) {
	if sample <= 0 {
		sample = DefaultSampleSize
	}

	tags, err := s.repo.SampleTags(ctx, userID, sample)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgSampleTagsFailed, err)
	}

	report := &DiagnosticReport{
		UserID:   userID,
		Sampled:  len(tags),
		Counts:   []TagCounts{},
		Findings: []Finding{},
		Errors:   []string{},
	}

	var errs error
	for _, tag := range tags {
		counts, findings, err := s.inspect(ctx, tag, userID)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s %q: %w", ErrMsgTagQueryFailed, tag.Name, err))
			continue
		}
		report.Counts = append(report.Counts, counts)
		report.Findings = append(report.Findings, findings...)
	}
	for _, e := range multierr.Errors(errs) {
		report.Errors = append(report.Errors, e.Error())
	}

	log := logger.FromContext(ctx)
	for _, f := range report.Findings {
		log.Warn(LogMsgDriftFound, "kind", f.Kind, "tag", f.TagName, "items", len(f.ItemIDs))
		s.publish(ctx, event.NewTaxonomyDriftEvent(f.Kind, f.TagID, f.TagName, len(f.ItemIDs)))
	}
	log.Info(LogMsgDiagnoseFinished, "user_id", userID, "sampled", report.Sampled,
		"findings", len(report.Findings), "errors", len(report.Errors))

	return report, nil
}

// inspect runs every count for one tag. Any query error discards the tag's counts.
func (s *service) inspect(ctx context.Context, tag domain.Tag, userID string) (TagCounts, []Finding, error) {
	counts := TagCounts{TagID: tag.ID, Name: tag.Name, UsageCount: tag.UsageCount}

	joined, err := s.repo.JoinedItemIDs(ctx, tag.ID, userID)
	if err != nil {
		return counts, nil, err
	}
	byName, err := s.repo.ItemIDsByDisplayName(ctx, tag.DisplayName, userID)
	if err != nil {
		return counts, nil, err
	}
	byID, err := s.repo.ItemIDsByTagID(ctx, tag.ID, userID)
	if err != nil {
		return counts, nil, err
	}
	deleted, err := s.repo.DeletedItemIDs(ctx, tag.ID)
	if err != nil {
		return counts, nil, err
	}
	active, err := s.repo.CountActiveItems(ctx, tag.ID)
	if err != nil {
		return counts, nil, err
	}

	counts.JoinRows = len(joined)
	counts.ByDisplayName = len(byName)
	counts.ByTagID = len(byID)
	counts.ActiveItems = active
	counts.DeletedLinked = len(deleted)

	finding := func(kind, detail string, ids []string) Finding {
		return Finding{
			Kind:        kind,
			TagID:       tag.ID,
			TagName:     tag.Name,
			DisplayName: tag.DisplayName,
			Detail:      detail,
			ItemIDs:     ids,
		}
	}

	var findings []Finding
	if dups := duplicated(joined); len(dups) > 0 {
		findings = append(findings, finding(KindDuplicateJoins,
			fmt.Sprintf("%d join rows for %d items", len(joined), len(byID)), dups))
	}
	if diff := symmetricDifference(byName, byID); len(diff) > 0 {
		findings = append(findings, finding(KindDisplayNameDrift,
			fmt.Sprintf("label query returned %d items, tag id query %d", len(byName), len(byID)), diff))
	}
	if tag.UsageCount != active {
		detail := fmt.Sprintf("usage count %d, active items %d", tag.UsageCount, active)
		if len(deleted) > 0 && tag.UsageCount == active+len(deleted) {
			findings = append(findings, finding(KindDeletedItemsCounted, detail, deleted))
		} else {
			findings = append(findings, finding(KindStaleCounter, detail, nil))
		}
	}
	return counts, findings, nil
}

// duplicated returns the ids that occur more than once, sorted
func duplicated(ids []string) []string {
	seen := make(map[string]int, len(ids))
	for _, id := range ids {
		seen[id]++
	}
	var out []string
	for id, n := range seen {
		if n > 1 {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// symmetricDifference returns ids present in exactly one of a and b, sorted
func symmetricDifference(a, b []string) []string {
	inA := make(map[string]struct{}, len(a))
	for _, id := range a {
		inA[id] = struct{}{}
	}
	inB := make(map[string]struct{}, len(b))
	for _, id := range b {
		inB[id] = struct{}{}
	}

	var out []string
	for id := range inA {
		if _, ok := inB[id]; !ok {
			out = append(out, id)
		}
	}
	for id := range inB {
		if _, ok := inA[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
