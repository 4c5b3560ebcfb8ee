// Package audit recomputes and checks the tag taxonomy against its join rows.
// Apart from the initial backfill and the counter reconciliation it only reads.
package audit

import (
	"context"
	"fmt"

	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/event"
	"github.com/osse101/CurioSync_Go/internal/logger"
	"github.com/osse101/CurioSync_Go/internal/repository"
	"github.com/osse101/CurioSync_Go/internal/taxonomy"
)

// Service defines the taxonomy audit operations
type Service interface {
	// Backfill rebuilds tags and join rows from every item's raw tags. Safe to rerun.
	Backfill(ctx context.Context) (*BackfillReport, error)
	// Diagnose compares the independent counts of a sample of the user's tags
	Diagnose(ctx context.Context, userID string, sample int) (*DiagnosticReport, error)
	// Reconcile rewrites drifted usage counters from the join rows
	Reconcile(ctx context.Context) (*ReconcileReport, error)
	// ScanUnattributed lists items that look imported but carry no provenance
	ScanUnattributed(ctx context.Context, limit int) ([]domain.Item, error)
	// Platforms returns the user's item counts grouped by canonical platform
	Platforms(ctx context.Context, userID string) ([]taxonomy.PlatformCount, error)
}

type service struct {
	repo         repository.TagAudit
	items        repository.Item
	bus          event.Bus
	notePrefixes []string
}

// NewService creates a new audit service. notePrefixes are the note texts a
// provider import writes; bus may be nil.
func NewService(repo repository.TagAudit, items repository.Item, bus event.Bus, notePrefixes []string) Service {
	return &service{
		repo:         repo,
		items:        items,
		bus:          bus,
		notePrefixes: notePrefixes,
	}
}

// ReconcileReport lists the counters that were corrected
type ReconcileReport struct {
	Corrected []repository.CounterDrift `json:"corrected"`
}

func (s *service) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	drifts, err := s.repo.ReconcileUsageCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgReconcileFailed, err)
	}
	if drifts == nil {
		drifts = []repository.CounterDrift{}
	}

	for _, d := range drifts {
		s.publish(ctx, event.NewTaxonomyDriftEvent(KindStaleCounter, d.TagID, d.Name, d.Actual))
	}
	logger.FromContext(ctx).Info(LogMsgReconcileFinished, "corrected", len(drifts))
	return &ReconcileReport{Corrected: drifts}, nil
}

func (s *service) ScanUnattributed(ctx context.Context, limit int) ([]domain.Item, error) {
	if limit <= 0 {
		limit = DefaultScanLimit
	}
	items, err := s.repo.ListUnattributedImports(ctx, s.notePrefixes, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgScanUnattributed, err)
	}
	return items, nil
}

func (s *service) Platforms(ctx context.Context, userID string) ([]taxonomy.PlatformCount, error) {
	counts, err := s.items.DomainCounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgDomainCountsFailed, err)
	}
	return taxonomy.ConsolidatePlatforms(counts), nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFailed, "error", err)
	}
}
