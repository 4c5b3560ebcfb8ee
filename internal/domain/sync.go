package domain

import "time"

// Supported content providers
const (
	ProviderTwitter   = "twitter"
	ProviderPinterest = "pinterest"
)

// SupportedProviders lists every provider with a sync implementation
var SupportedProviders = []string{ProviderTwitter, ProviderPinterest}

// IsSupportedProvider reports whether name is a known provider
func IsSupportedProvider(name string) bool {
	for _, p := range SupportedProviders {
		if p == name {
			return true
		}
	}
	return false
}

// SyncState is a stage of a single sync run
type SyncState string

// Sync run states
const (
	SyncStateInit               SyncState = "init"
	SyncStateFetchingConnection SyncState = "fetching_connection"
	SyncStateFetchingPages      SyncState = "fetching_pages"
	SyncStateImportingItem      SyncState = "importing_item"
	SyncStateFinalizing         SyncState = "finalizing"
	SyncStateDone               SyncState = "done"
	SyncStateAborted            SyncState = "aborted"
)

// IsTerminal reports whether no further transitions are possible
func (s SyncState) IsTerminal() bool {
	return s == SyncStateDone || s == SyncStateAborted
}

// SyncResult aggregates one sync run. It is returned to the caller and never persisted.
type SyncResult struct {
	RunID      string    `json:"run_id"`
	Provider   string    `json:"provider"`
	Success    bool      `json:"success"`
	Synced     int       `json:"synced"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	Errors     []string  `json:"errors"`
	State      SyncState `json:"state"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// SyncOptions narrows a sync run
type SyncOptions struct {
	// MaxItems is the item budget shared across all groups; zero means the configured default
	MaxItems int `json:"max_items,omitempty"`
	// Groups restricts the run to these group ids or names (e.g. Pinterest boards)
	Groups []string `json:"groups,omitempty"`
}
