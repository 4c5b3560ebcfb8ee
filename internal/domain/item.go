package domain

import "time"

// Item is a canonical content record owned by a user.
// For any (UserID, ImportSource, ExternalID) at most one non-duplicate item exists.
type Item struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	URL            string          `json:"url"`
	Note           string          `json:"note,omitempty"`
	Title          string          `json:"title,omitempty"`
	Summary        string          `json:"summary,omitempty"`
	ImageURL       string          `json:"image_url,omitempty"`
	Category       string          `json:"category,omitempty"`
	Domain         string          `json:"domain,omitempty"`
	Tags           []string        `json:"tags,omitempty"`
	ImportSource   string          `json:"import_source,omitempty"`
	ExternalID     string          `json:"external_id,omitempty"`
	ImportMetadata *ImportMetadata `json:"import_metadata,omitempty"`
	IsDuplicate    bool            `json:"is_duplicate"`
	DeletedAt      *time.Time      `json:"deleted_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ImportMetadata is the provider context attached to an imported item
type ImportMetadata struct {
	Provider          string     `json:"provider"`
	GroupID           string     `json:"group_id,omitempty"`
	GroupName         string     `json:"group_name,omitempty"`
	Permalink         string     `json:"permalink,omitempty"`
	MediaURL          string     `json:"media_url,omitempty"`
	ImageOnly         bool       `json:"image_only"`
	DestinationURL    string     `json:"destination_url,omitempty"`
	AltText           string     `json:"alt_text,omitempty"`
	AuthorHandle      string     `json:"author_handle,omitempty"`
	ExternalCreatedAt *time.Time `json:"external_created_at,omitempty"`
	ImportedAt        time.Time  `json:"imported_at"`
	PipelineError     string     `json:"pipeline_error,omitempty"`
}

// Provenance identifies where an imported item came from
type Provenance struct {
	Source     string
	ExternalID string
	Metadata   ImportMetadata
}
