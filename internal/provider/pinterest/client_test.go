package pinterest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/provider"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(Config{BaseURL: srv.URL + "/v5"}, srv.Client(), time.Millisecond)
	c.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return c
}

func TestListGroups_PagesThroughBoards(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/v5/boards", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.Equal(t, "25", r.URL.Query().Get("page_size"))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("bookmark") == "" {
			fmt.Fprint(w, `{"items":[{"id":"b1","name":"Recipes"}],"bookmark":"next-1"}`)
			return
		}
		assert.Equal(t, "next-1", r.URL.Query().Get("bookmark"))
		fmt.Fprint(w, `{"items":[{"id":"b2","name":"Travel"}],"bookmark":null}`)
	})

	groups, err := c.ListGroups(context.Background(), "token-1", "")

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, []provider.Group{{ID: "b1", Name: "Recipes"}, {ID: "b2", Name: "Travel"}}, groups)
}

func TestFetchPage_NormalizesPins(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v5/boards/b1/pins", r.URL.Path)
		assert.Equal(t, "cursor-a", r.URL.Query().Get("bookmark"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"items": [
				{
					"id": "p1",
					"title": "Sourdough",
					"description": "Best loaf",
					"link": "https://example.com/bread",
					"alt_text": "a loaf",
					"created_at": "2024-01-02T03:04:05Z",
					"media": {"media_type": "image", "images": {
						"400x300": {"url": "https://i.pinimg.com/400x300/p1.jpg"},
						"600x": {"url": "https://i.pinimg.com/600x/p1.jpg"}
					}}
				},
				{"id": "p2", "media": {"images": {}}}
			],
			"bookmark": "cursor-b"
		}`)
	})

	page, err := c.FetchPage(context.Background(), provider.PageRequest{
		AccessToken: "token-1",
		Group:       provider.Group{ID: "b1", Name: "Recipes"},
		Cursor:      "cursor-a",
	})

	require.NoError(t, err)
	assert.True(t, page.HasMore)
	assert.Equal(t, "cursor-b", page.NextCursor)
	require.Len(t, page.Items, 2)

	first := page.Items[0]
	assert.Equal(t, "p1", first.ExternalID)
	assert.Equal(t, "Sourdough", first.Title)
	assert.Equal(t, "https://example.com/bread", first.Link)
	assert.Equal(t, "https://www.pinterest.com/pin/p1/", first.Permalink)
	assert.Equal(t, "https://i.pinimg.com/600x/p1.jpg", first.MediaURL)
	assert.Equal(t, "a loaf", first.AltText)
	assert.Equal(t, "Recipes", first.GroupName)
	require.NotNil(t, first.CreatedAt)
	assert.Equal(t, 2024, first.CreatedAt.Year())

	assert.Empty(t, page.Items[1].MediaURL)
	assert.Empty(t, page.Items[1].Link)
}

func TestFetchPage_LastPage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[],"bookmark":null}`)
	})

	page, err := c.FetchPage(context.Background(), provider.PageRequest{Group: provider.Group{ID: "b1"}})

	require.NoError(t, err)
	assert.False(t, page.HasMore)
	assert.Empty(t, page.NextCursor)
}

func TestFetchPage_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, domain.ErrAuthenticationExpired},
		{"rate limited", http.StatusTooManyRequests, domain.ErrRateLimited},
		{"server error", http.StatusBadGateway, domain.ErrProviderAPI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, `{"message":"nope"}`)
			})

			_, err := c.FetchPage(context.Background(), provider.PageRequest{Group: provider.Group{ID: "b1"}})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBestImage_Preference(t *testing.T) {
	all := map[string]image{
		"originals": {URL: "orig"},
		"1200x":     {URL: "1200"},
		"600x":      {URL: "600"},
		"400x300":   {URL: "400"},
		"150x150":   {URL: "150"},
	}
	assert.Equal(t, "orig", bestImage(all))

	delete(all, "originals")
	assert.Equal(t, "1200", bestImage(all))

	delete(all, "1200x")
	assert.Equal(t, "600", bestImage(all))

	delete(all, "600x")
	assert.Equal(t, "400", bestImage(all))

	delete(all, "400x300")
	assert.Empty(t, bestImage(all), "thumbnails are never used")
}

func TestRevokeIsNoop(t *testing.T) {
	c := New(Config{BaseURL: "http://127.0.0.1:0"}, nil, 0)
	assert.NoError(t, c.Revoke(context.Background(), "token"))
}
