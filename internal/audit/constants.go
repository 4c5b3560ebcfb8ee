package audit

// Batch sizes
const (
	// ScanPageSize is how many items are read per page while collecting raw tags
	ScanPageSize      = 500
	// TagBatchSize is the number of tags upserted per statement
	TagBatchSize      = 100
	// LinkBatchSize is the number of join rows inserted per statement
	LinkBatchSize     = 500
	// DefaultSampleSize is how many tags Diagnose inspects when no size is given
	DefaultSampleSize = 20
	// DefaultScanLimit caps the unattributed-import scan
	DefaultScanLimit  = 100
)

// Drift kinds reported by diagnostics and reconciliation
const (
	KindDuplicateJoins      = "duplicate_joins"
	KindDisplayNameDrift    = "display_name_drift"
	KindStaleCounter        = "stale_counter"
	KindDeletedItemsCounted = "deleted_items_counted"
)

// Error messages
const (
	ErrMsgScanItemsFailed    = "failed to scan item tags"
	ErrMsgUpsertTagsFailed   = "failed to upsert tag batch"
	ErrMsgInsertLinksFailed  = "failed to insert item tag batch"
	ErrMsgMissingTagID       = "upsert returned no id for tag"
	ErrMsgSampleTagsFailed   = "failed to sample tags"
	ErrMsgTagQueryFailed     = "diagnostic query failed for tag"
	ErrMsgReconcileFailed    = "failed to reconcile usage counts"
	ErrMsgScanUnattributed   = "failed to scan unattributed imports"
	ErrMsgDomainCountsFailed = "failed to load domain counts"
)

// Log messages
const (
	LogMsgBackfillStarted    = "Taxonomy backfill started"
	LogMsgBackfillScanned    = "Taxonomy backfill scan complete"
	LogMsgBackfillFinished   = "Taxonomy backfill finished"
	LogMsgDiagnoseFinished   = "Taxonomy diagnostics finished"
	LogMsgDriftFound         = "Taxonomy drift found"
	LogMsgReconcileFinished  = "Usage counter reconciliation finished"
	LogMsgEventPublishFailed = "Failed to publish taxonomy drift event"
)
