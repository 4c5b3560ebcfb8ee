package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"www.reddit.com", PlatformReddit},
		{"reddit.com", PlatformReddit},
		{"old.reddit.com", PlatformReddit},
		{"https://x.com/someone/status/1", PlatformTwitter},
		{"http://t.co/abc", PlatformTwitter},
		{"mobile.twitter.com", PlatformTwitter},
		{"https://m.youtube.com/watch?v=1", PlatformYouTube},
		{"youtu.be", PlatformYouTube},
		{"vm.tiktok.com", PlatformTikTok},
		{"i.redd.it", PlatformReddit},
		{"news.ycombinator.com", PlatformHackerNews},
		{"engineering.medium.com", PlatformMedium},
		{"someone.substack.com", PlatformSubstack},
		{"example.com:8080/path", "example.com"},
		{"EXAMPLE.org/", "example.org"},
		{"blog.example.org", "blog.example.org"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDomain(tt.in))
		})
	}
}

func TestNormalizeDomain_PrefixStrippedOnce(t *testing.T) {
	// only one known prefix is removed, never recursively
	assert.Equal(t, "app.example.com", NormalizeDomain("m.app.example.com"))
}

func TestGetPlatformDisplayName(t *testing.T) {
	assert.Equal(t, "X (Twitter)", GetPlatformDisplayName(PlatformTwitter))
	assert.Equal(t, "Hacker News", GetPlatformDisplayName(PlatformHackerNews))
	assert.Equal(t, "example.com", GetPlatformDisplayName("example.com"))
}

func TestConsolidatePlatforms(t *testing.T) {
	got := ConsolidatePlatforms([]DomainCount{
		{Domain: "twitter.com", Count: 3},
		{Domain: "x.com", Count: 4},
		{Domain: "www.reddit.com", Count: 2},
		{Domain: "old.reddit.com", Count: 1},
		{Domain: "example.com", Count: 10},
		{Domain: "x.com", Count: 1},
	})

	require.Len(t, got, 3)

	assert.Equal(t, "example.com", got[0].Platform)
	assert.Equal(t, 10, got[0].Count)

	assert.Equal(t, PlatformTwitter, got[1].Platform)
	assert.Equal(t, 8, got[1].Count)
	assert.Equal(t, "X (Twitter)", got[1].DisplayName)
	assert.Equal(t, []string{"twitter.com", "x.com"}, got[1].Variants)

	assert.Equal(t, PlatformReddit, got[2].Platform)
	assert.Equal(t, 3, got[2].Count)
	assert.Equal(t, []string{"old.reddit.com", "www.reddit.com"}, got[2].Variants)
}

func TestConsolidatePlatforms_Empty(t *testing.T) {
	assert.Empty(t, ConsolidatePlatforms(nil))
}
