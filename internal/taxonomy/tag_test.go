package taxonomy

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

var tagCorpus = []string{
	"",
	"   ",
	"AI",
	"  Machine   Learning  ",
	"C++",
	"3D-Modeling",
	"web3!!!",
	"#hashtag",
	"rock & roll",
	"under_score",
	"café",
	"ＦＵＬＬＷＩＤＴＨ",
	"İstanbul",
	"emoji 🚀 launch",
	"tab\tand\nnewline",
	"---",
	"123",
	strings.Repeat("long tag ", 20),
	strings.Repeat("a", 49) + " b",
	strings.Repeat("x", 60),
}

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "AI", "ai"},
		{"collapses whitespace", "  Machine   Learning  ", "machine learning"},
		{"punctuation becomes space", "rock&roll", "rock roll"},
		{"keeps hyphen and underscore", "3D-Modeling_v2", "3d-modeling_v2"},
		{"strips trailing punctuation", "web3!!!", "web3"},
		{"strips leading hash", "#hashtag", "hashtag"},
		{"fullwidth folds to ascii", "ＡＩ", "ai"},
		{"tabs and newlines", "tab\tand\nnewline", "tab and newline"},
		{"only punctuation", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTag(tt.in))
		})
	}
}

func TestNormalizeTag_Idempotent(t *testing.T) {
	for _, s := range tagCorpus {
		once := NormalizeTag(s)
		assert.Equal(t, once, NormalizeTag(once), "input %q", s)
	}
}

func TestNormalizeTag_Length(t *testing.T) {
	for _, s := range tagCorpus {
		key := NormalizeTag(s)
		assert.LessOrEqual(t, utf8.RuneCountInString(key), MaxTagLength, "input %q", s)
		assert.Equal(t, strings.TrimSpace(key), key, "input %q", s)
	}
}

func TestNormalizeTag_TruncationOnSpace(t *testing.T) {
	in := strings.Repeat("a", 49) + " b"
	key := NormalizeTag(in)
	assert.Equal(t, strings.Repeat("a", 49), key)
	assert.Equal(t, key, NormalizeTag(key))
}

func TestIsValidTag(t *testing.T) {
	for _, key := range []string{"a", "123", "---", "", "4-2", "_1"} {
		assert.False(t, IsValidTag(key), "expected %q to be rejected", key)
	}
	for _, key := range []string{"ai", "web3", "3d-modeling", "go", "café"} {
		assert.True(t, IsValidTag(key), "expected %q to be accepted", key)
	}
}

func TestTagsEqual(t *testing.T) {
	for _, a := range tagCorpus {
		assert.True(t, TagsEqual(a, a), "reflexive for %q", a)
		for _, b := range tagCorpus {
			assert.Equal(t, TagsEqual(a, b), TagsEqual(b, a), "symmetric for %q, %q", a, b)
		}
	}
	assert.False(t, TagsEqual("Machine Learning", "machine-learning!"))
	assert.True(t, TagsEqual("Machine  Learning", "machine learning"))
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{"Go", " golang ", "GO", "1", "#Go!", "Rust"})

	assert.Equal(t, []NormalizedTag{
		{Key: "go", Display: "Go"},
		{Key: "golang", Display: "golang"},
		{Key: "rust", Display: "Rust"},
	}, got)
}
