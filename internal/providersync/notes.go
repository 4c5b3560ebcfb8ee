package providersync

import (
	"fmt"

	"github.com/osse101/CurioSync_Go/internal/domain"
	"github.com/osse101/CurioSync_Go/internal/provider"
)

// Note prefixes written on imported items. The unattributed-import scan
// looks for items whose note starts with one of these but carry no provenance.
const (
	NotePrefixPinterest = "Pinterest pin from "
	NotePrefixTwitter   = "Twitter bookmark"
)

// NotePrefixes returns every provider note prefix
func NotePrefixes() []string {
	return []string{NotePrefixPinterest, NotePrefixTwitter}
}

// noteFor builds the contextual note handed to the ingestion pipeline
func noteFor(providerName string, item provider.Item) string {
	switch providerName {
	case domain.ProviderPinterest:
		return fmt.Sprintf("%s%q", NotePrefixPinterest, item.GroupName)
	case domain.ProviderTwitter:
		if item.AuthorHandle != "" {
			return NotePrefixTwitter + " from @" + item.AuthorHandle
		}
		return NotePrefixTwitter
	}
	return ""
}

// importURL prefers the item's outbound link over the provider's own page
func importURL(item provider.Item) string {
	switch {
	case item.Link != "":
		return item.Link
	case item.Permalink != "":
		return item.Permalink
	}
	return item.MediaURL
}
