// Package pinterest reads a user's boards and pins from the Pinterest v5 API.
package pinterest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/provider"
)

// PageSize is the page size used for board and pin listing
const PageSize = 25

// imagePreference lists image variants from most to least preferred
var imagePreference = []string{"originals", "1200x", "600x", "400x300"}

// Config configures the client
type Config struct {
	BaseURL string
}

// Client implements provider.Client for Pinterest
type Client struct {
	transport *provider.Transport
	pageDelay time.Duration
	sleep     provider.SleepFunc
}

// New creates a Pinterest client. httpClient may be nil. pageDelay applies
// between board listing pages.
func New(cfg Config, httpClient *http.Client, pageDelay time.Duration) *Client {
	return &Client{
		transport: provider.NewTransport(domain.ProviderPinterest, cfg.BaseURL, httpClient),
		pageDelay: pageDelay,
		sleep:     provider.Sleep,
	}
}

// Name implements provider.Client
func (c *Client) Name() string {
	return domain.ProviderPinterest
}

type boardsResponse struct {
	Items []struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"items"`
	Bookmark *string `json:"bookmark"`
}

type image struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type pin struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	AltText     string `json:"alt_text"`
	CreatedAt   string `json:"created_at"`
	BoardID     string `json:"board_id"`
	Media       struct {
		MediaType string           `json:"media_type"`
		Images    map[string]image `json:"images"`
	} `json:"media"`
}

type pinsResponse struct {
	Items    []pin   `json:"items"`
	Bookmark *string `json:"bookmark"`
}

// ListGroups pages through every board the user owns
func (c *Client) ListGroups(ctx context.Context, accessToken, providerUserID string) ([]provider.Group, error) {
	var groups []provider.Group
	bookmark := ""

	for {
		query := url.Values{}
		query.Set("page_size", strconv.Itoa(PageSize))
		if bookmark != "" {
			query.Set("bookmark", bookmark)
		}

		var resp boardsResponse
		if err := c.transport.GetJSON(ctx, accessToken, "/boards", query, &resp); err != nil {
			return nil, err
		}
		for _, b := range resp.Items {
			groups = append(groups, provider.Group{ID: b.ID, Name: b.Name})
		}

		if resp.Bookmark == nil || *resp.Bookmark == "" {
			return groups, nil
		}
		bookmark = *resp.Bookmark

		if err := c.sleep(ctx, c.pageDelay); err != nil {
			return nil, err
		}
	}
}

// FetchPage implements provider.Client
func (c *Client) FetchPage(ctx context.Context, req provider.PageRequest) (*provider.Page, error) {
	query := url.Values{}
	query.Set("page_size", strconv.Itoa(PageSize))
	if req.Cursor != "" {
		query.Set("bookmark", req.Cursor)
	}

	var resp pinsResponse
	path := "/boards/" + url.PathEscape(req.Group.ID) + "/pins"
	if err := c.transport.GetJSON(ctx, req.AccessToken, path, query, &resp); err != nil {
		return nil, err
	}

	page := &provider.Page{Items: make([]provider.Item, 0, len(resp.Items))}
	if resp.Bookmark != nil && *resp.Bookmark != "" {
		page.NextCursor = *resp.Bookmark
		page.HasMore = true
	}
	for _, p := range resp.Items {
		page.Items = append(page.Items, toItem(p, req.Group))
	}
	return page, nil
}

func toItem(p pin, group provider.Group) provider.Item {
	item := provider.Item{
		ExternalID:  p.ID,
		Title:       p.Title,
		Description: p.Description,
		Link:        p.Link,
		Permalink:   "https://www.pinterest.com/pin/" + p.ID + "/",
		MediaURL:    bestImage(p.Media.Images),
		AltText:     p.AltText,
		GroupID:     group.ID,
		GroupName:   group.Name,
	}
	if created, err := time.Parse(time.RFC3339, p.CreatedAt); err == nil {
		item.CreatedAt = &created
	}
	return item
}

// bestImage picks the largest image variant by fixed preference, or "" if none is usable
func bestImage(images map[string]image) string {
	for _, key := range imagePreference {
		if img, ok := images[key]; ok && img.URL != "" {
			return img.URL
		}
	}
	return ""
}

// Revoke is a no-op; Pinterest exposes no token revocation endpoint
func (c *Client) Revoke(ctx context.Context, accessToken string) error {
	return nil
}
