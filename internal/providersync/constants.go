package providersync

import "time"

// Run defaults
const (
	DefaultMaxItems   = 50
	DefaultItemDelay  = 500 * time.Millisecond
	DefaultGroupDelay = 200 * time.Millisecond
	DefaultPageDelay  = 100 * time.Millisecond
	DefaultLockTTL    = 15 * time.Minute
)

// Error and abort messages
const (
	ErrMsgLoadConnectionFailed = "failed to load connection"
	ErrMsgAcquireLockFailed    = "failed to acquire sync lock"
	ErrMsgTokenUnavailable     = "could not obtain a valid access token"
	ErrMsgListGroupsFailed     = "failed to list groups"
	ErrMsgFetchItemsFailed     = "failed to fetch items"
	ErrMsgDedupFailed          = "failed to check for prior import"
	ErrMsgUpdateLastSyncFailed = "failed to record last sync time"
	ErrMsgUnexpected           = "unexpected error"
	ErrMsgPipelineFailed       = "ingest failed"
	ErrMsgAttachFailed         = "failed to attach import metadata"
	ErrMsgDeleteFailed         = "failed to delete connection"
)

// Log messages
const (
	LogMsgSyncStarted        = "Sync run started"
	LogMsgSyncAborted        = "Sync run aborted"
	LogMsgSyncFinished       = "Sync run finished"
	LogMsgStateChanged       = "Sync state changed"
	LogMsgItemSkipped        = "Item already imported, skipping"
	LogMsgItemImported       = "Item imported"
	LogMsgItemFailed         = "Item import failed"
	LogMsgAttachFailed       = "Failed to attach import metadata, item left unattributed"
	LogMsgTagIndexFailed     = "Failed to index item tags"
	LogMsgLockReleaseFailed  = "Failed to release sync lock"
	LogMsgRevokeFailed       = "Token revocation failed, deleting connection anyway"
	LogMsgConnectionRemoved  = "Connection removed"
	LogMsgConnectionSaved    = "Connection saved"
	LogMsgEventPublishFailed = "Failed to publish sync event"
)
