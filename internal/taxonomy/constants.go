package taxonomy

// Tag normalization limits
const (
	// MaxTagLength is the maximum number of characters kept in a normalized tag key
	MaxTagLength = 50

	// MinTagLength is the minimum number of characters a tag key needs to be persisted
	MinTagLength = 2
)

// Domain normalization
const (
	schemeSeparator = "://"
	wwwPrefix       = "www."
)

// subdomainPrefixes are stripped once from a host after the www. prefix.
var subdomainPrefixes = []string{
	"m.",
	"mobile.",
	"app.",
	"vt.",
	"vm.",
	"v.",
	"old.",
	"new.",
	"i.",
	"web.",
}

// Canonical platform names
const (
	PlatformTwitter    = "twitter"
	PlatformPinterest  = "pinterest"
	PlatformYouTube    = "youtube"
	PlatformReddit     = "reddit"
	PlatformInstagram  = "instagram"
	PlatformTikTok     = "tiktok"
	PlatformFacebook   = "facebook"
	PlatformLinkedIn   = "linkedin"
	PlatformGitHub     = "github"
	PlatformMedium     = "medium"
	PlatformSubstack   = "substack"
	PlatformThreads    = "threads"
	PlatformBluesky    = "bluesky"
	PlatformSpotify    = "spotify"
	PlatformTwitch     = "twitch"
	PlatformVimeo      = "vimeo"
	PlatformHackerNews = "hackernews"
)

// platformDomains maps known domain variants to their canonical platform name.
// A host matches an entry when it equals the key or ends with "." + key.
var platformDomains = map[string]string{
	"twitter.com":          PlatformTwitter,
	"x.com":                PlatformTwitter,
	"t.co":                 PlatformTwitter,
	"pinterest.com":        PlatformPinterest,
	"pinterest.co.uk":      PlatformPinterest,
	"pinterest.ca":         PlatformPinterest,
	"pinterest.de":         PlatformPinterest,
	"pinterest.fr":         PlatformPinterest,
	"pin.it":               PlatformPinterest,
	"youtube.com":          PlatformYouTube,
	"youtu.be":             PlatformYouTube,
	"reddit.com":           PlatformReddit,
	"redd.it":              PlatformReddit,
	"instagram.com":        PlatformInstagram,
	"instagr.am":           PlatformInstagram,
	"tiktok.com":           PlatformTikTok,
	"facebook.com":         PlatformFacebook,
	"fb.com":               PlatformFacebook,
	"fb.watch":             PlatformFacebook,
	"linkedin.com":         PlatformLinkedIn,
	"lnkd.in":              PlatformLinkedIn,
	"github.com":           PlatformGitHub,
	"medium.com":           PlatformMedium,
	"substack.com":         PlatformSubstack,
	"threads.net":          PlatformThreads,
	"bsky.app":             PlatformBluesky,
	"spotify.com":          PlatformSpotify,
	"spotify.link":         PlatformSpotify,
	"twitch.tv":            PlatformTwitch,
	"vimeo.com":            PlatformVimeo,
	"news.ycombinator.com": PlatformHackerNews,
}

// platformDisplayNames holds human-readable labels for canonical platform names
var platformDisplayNames = map[string]string{
	PlatformTwitter:    "X (Twitter)",
	PlatformPinterest:  "Pinterest",
	PlatformYouTube:    "YouTube",
	PlatformReddit:     "Reddit",
	PlatformInstagram:  "Instagram",
	PlatformTikTok:     "TikTok",
	PlatformFacebook:   "Facebook",
	PlatformLinkedIn:   "LinkedIn",
	PlatformGitHub:     "GitHub",
	PlatformMedium:     "Medium",
	PlatformSubstack:   "Substack",
	PlatformThreads:    "Threads",
	PlatformBluesky:    "Bluesky",
	PlatformSpotify:    "Spotify",
	PlatformTwitch:     "Twitch",
	PlatformVimeo:      "Vimeo",
	PlatformHackerNews: "Hacker News",
}
