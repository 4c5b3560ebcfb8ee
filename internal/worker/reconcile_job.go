package worker

import (
	"context"
	"fmt"

	"github.com/osse101/CurioSync_Go/internal/audit"
	"github.com/osse101/CurioSync_Go/internal/logger"
)

// Reconciler rewrites drifted tag counters. audit.Service satisfies it.
type Reconciler interface {
	Reconcile(ctx context.Context) (*audit.ReconcileReport, error)
}

// ReconcileJob runs a tag counter reconciliation pass
type ReconcileJob struct {
	Auditor Reconciler
}

func (j *ReconcileJob) Name() string { return JobNameReconcile }

func (j *ReconcileJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgReconcileStarting)

	report, err := j.Auditor.Reconcile(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgReconcileFailed, err)
	}
	log.Info(LogMsgReconcileCompleted, "corrected", len(report.Corrected))
	return nil
}
