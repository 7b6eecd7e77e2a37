package feedfetcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeLink(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips fragment", "https://Example.com/a/b#section", "https://example.com/a/b"},
		{"lowercases host", "https://EXAMPLE.COM/path", "https://example.com/path"},
		{"no fragment is a no-op", "https://example.com/path?x=1", "https://example.com/path?x=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeLink(tt.in))
		})
	}
}

func TestBuildSnippet(t *testing.T) {
	t.Run("strips html tags and unescapes entities", func(t *testing.T) {
		got := buildSnippet("<p>Hello &amp; welcome</p>")
		assert.Equal(t, "Hello & welcome", got)
	})

	t.Run("truncates to snippetMaxLen runes", func(t *testing.T) {
		long := strings.Repeat("a", snippetMaxLen+100)
		got := buildSnippet(long)
		assert.Len(t, []rune(got), snippetMaxLen)
	})

	t.Run("collapses whitespace", func(t *testing.T) {
		got := buildSnippet("line one\n\n  line   two")
		assert.Equal(t, "line one line two", got)
	})
}
