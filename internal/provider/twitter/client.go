// Package twitter reads a user's bookmarks from the Twitter (X) v2 API.
package twitter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/provider"
	"github.com/osse101/CurioSync_Go/internal/taxonomy"
)

// MaxPageSize is the documented maximum for bookmark listing
const MaxPageSize = 100

// BookmarksGroupID is the single implicit group; Twitter bookmarks have no folders here
const BookmarksGroupID = "bookmarks"

const (
	tweetFields = "created_at,entities,attachments,author_id"
	expansions  = "author_id,attachments.media_keys"
	userFields  = "username,name"
	mediaFields = "url,preview_image_url,type,alt_text,width,height"
)

// Config configures the client
type Config struct {
	BaseURL      string
	RevokeURL    string
	ClientID     string
	ClientSecret string
}

// Client implements provider.Client for Twitter
type Client struct {
	transport *provider.Transport
	cfg       Config
}

// New creates a Twitter client. httpClient may be nil.
func New(cfg Config, httpClient *http.Client) *Client {
	return &Client{
		transport: provider.NewTransport(domain.ProviderTwitter, cfg.BaseURL, httpClient),
		cfg:       cfg,
	}
}

// Name implements provider.Client
func (c *Client) Name() string {
	return domain.ProviderTwitter
}

// ListGroups returns the implicit bookmarks group
func (c *Client) ListGroups(ctx context.Context, accessToken, providerUserID string) ([]provider.Group, error) {
	return []provider.Group{{ID: BookmarksGroupID, Name: "Bookmarks"}}, nil
}

type bookmarksResponse struct {
	Data     []tweet `json:"data"`
	Includes struct {
		Users []user  `json:"users"`
		Media []media `json:"media"`
	} `json:"includes"`
	Meta struct {
		NextToken   string `json:"next_token"`
		ResultCount int    `json:"result_count"`
	} `json:"meta"`
}

type tweet struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	AuthorID  string `json:"author_id"`
	CreatedAt string `json:"created_at"`
	Entities  struct {
		URLs []struct {
			ExpandedURL string `json:"expanded_url"`
			UnwoundURL  string `json:"unwound_url"`
			Title       string `json:"title"`
		} `json:"urls"`
	} `json:"entities"`
	Attachments struct {
		MediaKeys []string `json:"media_keys"`
	} `json:"attachments"`
}

type user struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type media struct {
	MediaKey        string `json:"media_key"`
	Type            string `json:"type"`
	URL             string `json:"url"`
	PreviewImageURL string `json:"preview_image_url"`
	AltText         string `json:"alt_text"`
}

// FetchPage implements provider.Client
func (c *Client) FetchPage(ctx context.Context, req provider.PageRequest) (*provider.Page, error) {
	if req.ProviderUserID == "" {
		return nil, fmt.Errorf("%w: twitter user id is required", domain.ErrInvalidInput)
	}

	query := url.Values{}
	query.Set("max_results", strconv.Itoa(MaxPageSize))
	query.Set("tweet.fields", tweetFields)
	query.Set("expansions", expansions)
	query.Set("user.fields", userFields)
	query.Set("media.fields", mediaFields)
	if req.Cursor != "" {
		query.Set("pagination_token", req.Cursor)
	}

	var resp bookmarksResponse
	path := "/users/" + url.PathEscape(req.ProviderUserID) + "/bookmarks"
	if err := c.transport.GetJSON(ctx, req.AccessToken, path, query, &resp); err != nil {
		return nil, err
	}

	users := make(map[string]user, len(resp.Includes.Users))
	for _, u := range resp.Includes.Users {
		users[u.ID] = u
	}
	mediaByKey := make(map[string]media, len(resp.Includes.Media))
	for _, m := range resp.Includes.Media {
		mediaByKey[m.MediaKey] = m
	}

	page := &provider.Page{
		Items:      make([]provider.Item, 0, len(resp.Data)),
		NextCursor: resp.Meta.NextToken,
		HasMore:    resp.Meta.NextToken != "",
	}
	for _, t := range resp.Data {
		page.Items = append(page.Items, toItem(t, users[t.AuthorID], mediaByKey, req.Group))
	}
	return page, nil
}

func toItem(t tweet, author user, mediaByKey map[string]media, group provider.Group) provider.Item {
	item := provider.Item{
		ExternalID:   t.ID,
		Description:  t.Text,
		AuthorHandle: author.Username,
		Permalink:    permalink(author.Username, t.ID),
		GroupID:      group.ID,
		GroupName:    group.Name,
	}

	if created, err := time.Parse(time.RFC3339, t.CreatedAt); err == nil {
		item.CreatedAt = &created
	}

	for _, u := range t.Entities.URLs {
		link := u.UnwoundURL
		if link == "" {
			link = u.ExpandedURL
		}
		// Links to the tweet itself or its media are not outbound
		if link == "" || taxonomy.NormalizeDomain(link) == taxonomy.PlatformTwitter {
			continue
		}
		item.Link = link
		item.Title = u.Title
		break
	}

	for _, key := range t.Attachments.MediaKeys {
		m, ok := mediaByKey[key]
		if !ok {
			continue
		}
		mediaURL := m.URL
		if mediaURL == "" {
			mediaURL = m.PreviewImageURL
		}
		if mediaURL == "" {
			continue
		}
		item.MediaURL = mediaURL
		item.AltText = m.AltText
		break
	}

	return item
}

func permalink(handle, id string) string {
	if handle == "" {
		return "https://x.com/i/web/status/" + id
	}
	return "https://x.com/" + handle + "/status/" + id
}

// Revoke invalidates the access token upstream
func (c *Client) Revoke(ctx context.Context, accessToken string) error {
	if c.cfg.RevokeURL == "" {
		return nil
	}
	form := url.Values{}
	form.Set("token", accessToken)
	form.Set("token_type_hint", "access_token")
	form.Set("client_id", c.cfg.ClientID)
	return c.transport.PostForm(ctx, c.cfg.RevokeURL, form, c.cfg.ClientID, c.cfg.ClientSecret)
}
