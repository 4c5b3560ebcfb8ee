// Package taxonomy reduces free-text tags and source domains to canonical keys.
package taxonomy

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeTag reduces a raw tag to its canonical key.
//
// The key is NFKC-folded and lowercased, every rune that is not a letter, digit,
// whitespace, '-' or '_' becomes a space, whitespace runs collapse to one space,
// and the result is trimmed and cut to MaxTagLength runes. The function is
// idempotent: NormalizeTag(NormalizeTag(s)) == NormalizeTag(s).
func NormalizeTag(raw string) string {
	s := strings.ToLower(strings.TrimSpace(norm.NFKC.String(raw)))

	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		if !isTagRune(r) {
			pendingSpace = true
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
	}

	key := b.String()
	if runes := []rune(key); len(runes) > MaxTagLength {
		// the cut can land right after a space
		key = strings.TrimRight(string(runes[:MaxTagLength]), " ")
	}
	return key
}

// isTagRune reports whether r survives normalization as itself.
// Whitespace is not a tag rune: it is re-emitted as a single separator.
func isTagRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}

// IsValidTag reports whether a normalized key is worth persisting.
// Keys shorter than MinTagLength, keys without any letter and purely numeric keys are rejected.
func IsValidTag(key string) bool {
	if len([]rune(key)) < MinTagLength {
		return false
	}

	hasLetter := false
	allDigits := true
	for _, r := range key {
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if !unicode.IsDigit(r) {
			allDigits = false
		}
	}
	return hasLetter && !allDigits
}

// TagsEqual reports whether two raw tags share a canonical key
func TagsEqual(a, b string) bool {
	return NormalizeTag(a) == NormalizeTag(b)
}

// NormalizeTags normalizes a list of raw tags, dropping invalid keys and
// duplicates. The first raw spelling of each key is kept as its display form.
func NormalizeTags(raw []string) []NormalizedTag {
	seen := make(map[string]struct{}, len(raw))
	out := make([]NormalizedTag, 0, len(raw))
	for _, r := range raw {
		key := NormalizeTag(r)
		if !IsValidTag(key) {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, NormalizedTag{Key: key, Display: strings.TrimSpace(r)})
	}
	return out
}

// NormalizedTag pairs a canonical key with the raw string it was first seen as
type NormalizedTag struct {
	Key     string
	Display string
}
