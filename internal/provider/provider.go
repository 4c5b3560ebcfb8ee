// Package provider defines the provider-neutral view of a content provider's
// saved items and the shared HTTP plumbing the per-provider clients use.
package provider

import (
	"context"
	"time"
)

// Item is one saved provider item, normalized across providers
type Item struct {
	ExternalID   string
	Title        string
	Description  string
	Link         string // outbound link, if the item points somewhere other than the provider
	Permalink    string // the item's own page on the provider
	MediaURL     string
	AltText      string
	AuthorHandle string
	CreatedAt    *time.Time
	GroupID      string
	GroupName    string
}

// Group is a top-level grouping of items, such as a Pinterest board
type Group struct {
	ID   string
	Name string
}

// Page is one page of items
type Page struct {
	Items      []Item
	NextCursor string
	HasMore    bool
}

// PageRequest identifies one page to fetch
type PageRequest struct {
	AccessToken    string
	ProviderUserID string
	Group          Group
	Cursor         string
}

// Client is implemented once per provider
type Client interface {
	// Name returns the provider identifier, e.g. "twitter"
	Name() string
	// ListGroups enumerates the user's groupings. Providers without groupings
	// return a single implicit group.
	ListGroups(ctx context.Context, accessToken, providerUserID string) ([]Group, error)
	// FetchPage returns one page of the group's items starting at req.Cursor
	FetchPage(ctx context.Context, req PageRequest) (*Page, error)
	// Revoke invalidates the token upstream where the provider supports it
	Revoke(ctx context.Context, accessToken string) error
}
