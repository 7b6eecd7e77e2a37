package llmsummarizer

import (
	"fmt"
	"strings"
)

const (
	softTruncateLimit = 4000
	hardTruncateLimit = 6000
	maxCustomPrompt   = 2000
)

// systemPromptFor builds the fixed system message for language.
func systemPromptFor(language string) string {
	return fmt.Sprintf(
		"You are a news summarization assistant. Produce a faithful, neutral summary in %s. "+
			"3-5 sentences. Do not invent facts.",
		language,
	)
}

// buildUserPrompt prepends customPrompt (if present) to the truncated
// article body. softCap/hardCap override the BODY_SOFT_CAP/BODY_HARD_CAP
// configuration keys; callers pass softTruncateLimit/hardTruncateLimit for
// the documented defaults.
func buildUserPrompt(customPrompt, body string, softCap, hardCap int) string {
	truncated := truncateBody(body, softCap, hardCap)
	if customPrompt == "" {
		return truncated
	}
	return customPrompt + "\n\n" + truncated
}

// truncateBody applies the soft/hard truncation rule: prefer cutting at a
// sentence boundary (., !, ?, or Korean equivalents ., 。) no later than
// softCap characters in; if no boundary is found before hardCap, hard-cut
// there instead.
func truncateBody(body string, softCap, hardCap int) string {
	if len(body) <= softCap {
		return body
	}

	window := body
	if len(window) > hardCap {
		window = window[:hardCap]
	}

	if boundary := lastSentenceBoundary(window[:min(len(window), softCap)]); boundary > 0 {
		return window[:boundary]
	}

	if len(window) > softCap {
		return window[:softCap]
	}
	return window
}

func lastSentenceBoundary(s string) int {
	best := -1
	for _, terminator := range []string{". ", "! ", "? ", "。", "."} {
		if idx := strings.LastIndex(s, terminator); idx > best {
			best = idx + len(terminator)
		}
	}
	return best
}
