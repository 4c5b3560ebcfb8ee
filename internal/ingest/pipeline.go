// Package ingest talks to the external content-ingestion pipeline that turns a
// URL into a summarized, tagged item.
package ingest

import (
	"context"

	"github.com/osse101/CurioSync_Go/internal/domain"
)

// PreExtracted carries provider-side data so the pipeline can skip fetching it
type PreExtracted struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	AltText     string `json:"alt_text,omitempty"`
}

// Request is one item to process
type Request struct {
	URL          string        `json:"url"`
	Note         string        `json:"note,omitempty"`
	UserID       string        `json:"user_id"`
	PreExtracted *PreExtracted `json:"pre_extracted,omitempty"`
}

// Result is the pipeline outcome. Item is set even when Success is false.
type Result struct {
	Success   bool         `json:"success"`
	Item      *domain.Item `json:"item"`
	NewBadges []string     `json:"new_badges,omitempty"`
	Error     string       `json:"error,omitempty"`
}

// Pipeline processes one URL for a user. A returned error means the pipeline
// could not be reached or answered unusably; logical failures come back as
// a Result with Success false.
type Pipeline interface {
	Process(ctx context.Context, req Request) (*Result, error)
}
