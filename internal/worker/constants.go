package worker

// DefaultWorkerCount is used when a pool is created with a non-positive size
const DefaultWorkerCount = 1

// ============================================================================
// Job Names
// ============================================================================

const (
	JobNameSync      = "sync"
	JobNameSyncSweep = "sync_sweep"
	JobNameReconcile = "reconcile"
)

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
	LogMsgQueueFull         = "Worker queue full, job dropped"
)

// ============================================================================
// Log Messages - Sync Jobs
// ============================================================================

const (
	LogMsgSweepStarting      = "Scheduled sync sweep starting"
	LogMsgSweepEnqueued      = "Scheduled sync sweep enqueued jobs"
	LogMsgSweepJobDropped    = "Scheduled sync for user dropped"
	LogMsgScheduledSyncDone  = "Scheduled sync finished"
	LogMsgScheduledSyncError = "Scheduled sync failed"
)

// ============================================================================
// Log Messages - Reconcile Job
// ============================================================================

const (
	LogMsgReconcileStarting  = "Tag counter reconciliation starting"
	LogMsgReconcileCompleted = "Tag counter reconciliation completed"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgListConnectionsFailed = "failed to list sync-enabled connections"
	ErrMsgSyncFailed            = "sync failed"
	ErrMsgReconcileFailed       = "reconcile failed"
)
