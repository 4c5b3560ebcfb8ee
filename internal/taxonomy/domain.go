package taxonomy

import (
	"sort"
	"strings"
)

// NormalizeDomain reduces a raw URL or host to a canonical platform name.
// Known provider variants collapse to one name (x.com, t.co -> twitter);
// unknown hosts pass through as their own canonical name.
func NormalizeDomain(raw string) string {
	host := strings.ToLower(strings.TrimSpace(raw))

	if idx := strings.Index(host, schemeSeparator); idx >= 0 {
		host = host[idx+len(schemeSeparator):]
	}
	if idx := strings.IndexAny(host, "/?#"); idx >= 0 {
		host = host[:idx]
	}
	if idx := strings.LastIndex(host, "@"); idx >= 0 {
		host = host[idx+1:]
	}
	if idx := strings.LastIndex(host, ":"); idx >= 0 {
		host = host[:idx]
	}

	host = strings.TrimPrefix(host, wwwPrefix)
	for _, prefix := range subdomainPrefixes {
		if strings.HasPrefix(host, prefix) && len(host) > len(prefix) {
			host = host[len(prefix):]
			break
		}
	}

	if platform, ok := matchPlatform(host); ok {
		return platform
	}
	return host
}

func matchPlatform(host string) (string, bool) {
	if platform, ok := platformDomains[host]; ok {
		return platform, true
	}
	// longest pattern wins so that news.ycombinator.com beats a shorter suffix
	best, bestLen := "", 0
	for pattern, platform := range platformDomains {
		if len(pattern) > bestLen && strings.HasSuffix(host, "."+pattern) {
			best, bestLen = platform, len(pattern)
		}
	}
	return best, bestLen > 0
}

// GetPlatformDisplayName returns a label for a canonical platform name,
// echoing the name back when it is not a known platform
func GetPlatformDisplayName(canonical string) string {
	if label, ok := platformDisplayNames[canonical]; ok {
		return label
	}
	return canonical
}

// DomainCount is a raw (domain, count) pair as stored on items
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// PlatformCount is a consolidated count for one canonical platform
type PlatformCount struct {
	Platform    string   `json:"platform"`
	DisplayName string   `json:"display_name"`
	Count       int      `json:"count"`
	Variants    []string `json:"variants"`
}

// ConsolidatePlatforms groups raw domain counts by canonical platform, sums
// their counts and records the distinct raw variants that contributed.
// Results are sorted by count, descending; ties sort by platform name.
func ConsolidatePlatforms(raw []DomainCount) []PlatformCount {
	byPlatform := make(map[string]*PlatformCount)
	variantSeen := make(map[string]map[string]struct{})

	for _, rc := range raw {
		platform := NormalizeDomain(rc.Domain)
		if platform == "" {
			continue
		}
		pc, ok := byPlatform[platform]
		if !ok {
			pc = &PlatformCount{
				Platform:    platform,
				DisplayName: GetPlatformDisplayName(platform),
			}
			byPlatform[platform] = pc
			variantSeen[platform] = make(map[string]struct{})
		}
		pc.Count += rc.Count
		if _, seen := variantSeen[platform][rc.Domain]; !seen {
			variantSeen[platform][rc.Domain] = struct{}{}
			pc.Variants = append(pc.Variants, rc.Domain)
		}
	}

	out := make([]PlatformCount, 0, len(byPlatform))
	for _, pc := range byPlatform {
		sort.Strings(pc.Variants)
		out = append(out, *pc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Platform < out[j].Platform
	})
	return out
}
