package entity

import (
	"strings"
	"time"
)

// SummarizedArticle is an Article paired with an LLM-produced summary.
type SummarizedArticle struct {
	Article         Article
	Summary         string
	SummaryLanguage LanguageHint
	Model           string
	ProducedAt      time.Time
}

// Validate enforces the summary-length and prompt-leak invariants from
// spec.md §3: len(summary) <= len(article.body), and the summary must not
// contain any verbatim system-prompt fragment.
func (s *SummarizedArticle) Validate(systemPrompt string) error {
	if s.Summary == "" {
		return &ValidationError{Field: "summary", Message: "summary is empty"}
	}
	if len(s.Summary) > len(s.Article.Body) {
		return &ValidationError{Field: "summary", Message: "summary is longer than the source article body"}
	}
	if containsPromptFragment(s.Summary, systemPrompt) {
		return &ValidationError{Field: "summary", Message: "summary leaks a system-prompt fragment"}
	}
	return nil
}

// promptLeakWindow is the length of the contiguous substring checked for
// leakage, matching the "20-char contiguous substring" property in
// spec.md §8 TestableProperties.
const promptLeakWindow = 20

// containsPromptFragment reports whether summary contains any contiguous
// promptLeakWindow-character slice of systemPrompt.
func containsPromptFragment(summary, systemPrompt string) bool {
	if len(systemPrompt) < promptLeakWindow {
		return strings.Contains(summary, systemPrompt)
	}
	for i := 0; i+promptLeakWindow <= len(systemPrompt); i++ {
		if strings.Contains(summary, systemPrompt[i:i+promptLeakWindow]) {
			return true
		}
	}
	return false
}
