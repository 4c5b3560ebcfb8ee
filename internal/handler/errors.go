package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidLimit          = "Invalid %s parameter"
	ErrMsgUnsupportedProvider   = "Unsupported provider"
)

// Success messages for API responses
const (
	MsgConnectionSaved    = "Connection saved"
	MsgConnectionRemoved  = "Connection removed"
	MsgSyncSettingUpdated = "Sync setting updated"
)

// Log messages
const (
	LogMsgEncodeResponseFailed = "Failed to encode JSON response"
	LogMsgWriteResponseFailed  = "Failed to write response buffer"
	LogMsgReadinessFailed      = "Readiness check failed"
	LogMsgSyncTriggered        = "Sync triggered"
	LogMsgSyncFinished         = "Sync finished"
)

// Operation names used in logs
const (
	OpListConnections = "List connections"
	OpSaveConnection  = "Save connection"
	OpUpdateSync      = "Update sync setting"
	OpDisconnect      = "Disconnect provider"
	OpSync            = "Sync"
	OpPlatforms       = "Platform counts"
	OpBackfill        = "Taxonomy backfill"
	OpAudit           = "Taxonomy audit"
	OpReconcile       = "Counter reconciliation"
	OpUnattributed    = "Unattributed import scan"
)

// Query parameter defaults and bounds
const (
	DefaultAuditSample      = 20
	MaxAuditSample          = 200
	DefaultUnattributedScan = 100
	MaxUnattributedScan     = 1000
)
