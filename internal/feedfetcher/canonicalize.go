package feedfetcher

import (
	"html"
	"net/url"
	"regexp"
	"strings"
)

const snippetMaxLen = 500

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// canonicalizeLink strips the fragment and lowercases the host, per
// spec.md's link-canonicalization rule, so the same article reached via
// different anchors or host casing dedupes to one FeedEntry identity.
func canonicalizeLink(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Fragment = ""
	u.Host = strings.ToLower(u.Host)
	return u.String()
}

// buildSnippet strips HTML tags from description, unescapes entities, and
// truncates to the first snippetMaxLen characters.
func buildSnippet(description string) string {
	stripped := htmlTagPattern.ReplaceAllString(description, " ")
	unescaped := html.UnescapeString(stripped)
	collapsed := strings.Join(strings.Fields(unescaped), " ")

	runes := []rune(collapsed)
	if len(runes) > snippetMaxLen {
		runes = runes[:snippetMaxLen]
	}
	return string(runes)
}
