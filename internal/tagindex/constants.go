package tagindex

import "time"

// DefaultCacheSize is the default number of tag keys kept in memory
const DefaultCacheSize = 5000

// DefaultCacheTTL is the default lifetime of a cached key -> tag id mapping
const DefaultCacheTTL = 30 * time.Minute

// Error messages
const (
	ErrMsgResolveTagFailed = "failed to resolve tag"
	ErrMsgLinkTagFailed    = "failed to link tag to item"
)

// Log messages
const (
	LogMsgItemIndexed = "Item tags indexed"
)
