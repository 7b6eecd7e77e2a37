package llmsummarizer

import "strings"

// isRateLimitError reports whether err's message indicates a rate-limit
// response, so Summarize can surface ErrorRateLimited distinctly from a
// generic ErrorLLMUnavailable.
func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") || strings.Contains(msg, "rate_limit")
}
