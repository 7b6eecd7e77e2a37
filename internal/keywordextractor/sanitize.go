package keywordextractor

import (
	"regexp"
	"strings"
)

// denylistPatterns matches prompt-injection attempts embedded in a user
// query: instructions to disregard prior context, role-override tokens,
// and fake system/assistant turn markers.
var denylistPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?(previous|above|prior)\s+instructions?`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+)?(previous|above|prior)`),
	regexp.MustCompile(`(?i)^\s*system\s*:`),
	regexp.MustCompile(`(?i)^\s*assistant\s*:`),
	regexp.MustCompile(`(?i)you\s+are\s+now\s+`),
	regexp.MustCompile(`(?i)act\s+as\s+(a|an)\s+`),
	regexp.MustCompile(`(?i)\bnew\s+instructions?\b`),
}

// sanitize strips denylisted substrings from query. It reports whether the
// result is still usable: sanitization must not have removed more than half
// the original characters, and at least 2 characters must remain.
func sanitize(query string) (clean string, usable bool) {
	clean = query
	for _, p := range denylistPatterns {
		clean = p.ReplaceAllString(clean, "")
	}
	clean = strings.TrimSpace(clean)

	if len(query) == 0 {
		return "", false
	}

	removedRatio := 1 - float64(len(clean))/float64(len(query))
	if removedRatio > 0.5 {
		return clean, false
	}
	if len([]rune(clean)) < 2 {
		return clean, false
	}
	return clean, true
}
