package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of log files kept, including the new one
	LogFileRetentionCount = 10
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting CurioSync"
	LogMsgConfigurationLoaded = "Configuration loaded"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultMaxRetries is the default number of retry attempts for failed event publishing
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the default base delay between retry attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second

	// EventDeadLetterFile is the dead-letter file name inside the log directory
	EventDeadLetterFile = "event_deadletter.jsonl"
)

const (
	LogMsgEventSystemInitialized    = "Event system initialized"
	ErrMsgFailedCreateDeadLetterDir = "failed to create dead-letter directory"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventLoggerInitialized     = "Event logger initialized"
	LogMsgEventObserved              = "Event observed"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
)

// =============================================================================
// Service Wiring
// =============================================================================

const (
	// ProviderHTTPTimeout bounds a single provider API or token endpoint call
	ProviderHTTPTimeout = 30 * time.Second

	// IngestHTTPTimeout bounds one pipeline call; summarizing a page is slow
	IngestHTTPTimeout = 2 * time.Minute

	// DBMaxConnIdleTime and DBMaxConnLifetime tune the pgx pool
	DBMaxConnIdleTime = 5 * time.Minute
	DBMaxConnLifetime = time.Hour
)

const (
	LogMsgServicesInitialized = "Services initialized"
	LogMsgRefreshDisabled     = "No OAuth client id configured, token refresh disabled"
	LogMsgJobsScheduled       = "Background jobs scheduled"
	ErrMsgFailedCreateCipher  = "failed to create token cipher"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer    = "Shutting down server..."
	LogMsgStoppingScheduler     = "Stopping scheduler..."
	LogMsgDrainingWorkers       = "Stopping worker pool..."
	LogMsgClosingDatabase       = "Closing database pool..."
	LogMsgServerStopped         = "Server stopped"
	LogMsgServerForcedShutdown  = "Server forced to shutdown"
	LogMsgWorkerShutdownTimeout = "Worker pool did not stop before the shutdown deadline"
)
