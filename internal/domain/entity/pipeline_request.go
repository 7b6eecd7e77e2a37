package entity

import (
	"net/mail"
	"strings"
)

const (
	minMaxArticles     = 1
	maxMaxArticles     = 50
	defaultMaxArticles = 10
)

// PipelineRequest is the single entry point into the summarization
// pipeline (C7). Exactly one of Query or (RSSURLs ∪ ArticleURLs) drives the
// run: a query fans out across the curated feed registry filtered by
// relevance, while an explicit URL set bypasses discovery entirely.
type PipelineRequest struct {
	Query          string
	RSSURLs        []string
	ArticleURLs    []string
	MaxArticles    int
	Language       LanguageHint
	UserID         string
	RecipientEmail string
	CustomPrompt   string
}

// ErrInvalidPipelineRequest-shaped ValidationErrors are returned by Validate.

// Validate enforces the "exactly one of query OR (rssURLs ∪ articleURLs)"
// invariant, the maxArticles range, the language enum, and that a
// RecipientEmail, when present, parses as a mailbox address.
func (r *PipelineRequest) Validate() error {
	hasQuery := strings.TrimSpace(r.Query) != ""
	hasURLs := len(r.RSSURLs) > 0 || len(r.ArticleURLs) > 0

	if hasQuery == hasURLs {
		return &ValidationError{
			Field:   "query",
			Message: "exactly one of query or (rssURLs, articleURLs) must be set",
		}
	}

	if r.MaxArticles == 0 {
		r.MaxArticles = defaultMaxArticles
	}
	if r.MaxArticles < minMaxArticles || r.MaxArticles > maxMaxArticles {
		return &ValidationError{
			Field:   "maxArticles",
			Message: "maxArticles must be between 1 and 50",
		}
	}

	switch r.Language {
	case "", LanguageKorean, LanguageEnglish:
		if r.Language == "" {
			r.Language = LanguageKorean
		}
	default:
		return &ValidationError{Field: "language", Message: "language must be ko or en"}
	}

	if r.RecipientEmail != "" {
		if _, err := mail.ParseAddress(r.RecipientEmail); err != nil {
			return &ValidationError{Field: "recipientEmail", Message: "recipientEmail is not a valid email address"}
		}
	}

	for _, u := range r.RSSURLs {
		if err := ValidateURL(u); err != nil {
			return &ValidationError{Field: "rssURLs", Message: err.Error()}
		}
	}
	for _, u := range r.ArticleURLs {
		if err := ValidateURL(u); err != nil {
			return &ValidationError{Field: "articleURLs", Message: err.Error()}
		}
	}

	return nil
}

// IsQueryDriven reports whether this request discovers articles via the
// feed registry (true) or operates on an explicit URL set (false).
func (r *PipelineRequest) IsQueryDriven() bool {
	return strings.TrimSpace(r.Query) != ""
}
