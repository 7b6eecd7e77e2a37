// Package entity defines the core domain entities and validation logic for the
// news aggregation and summarization core: feed sources, entries, articles,
// keyword sets, summaries, history records, feedback, and recommendations.
package entity

import (
	"fmt"
	"time"
)

// minArticleBodyLength is the threshold below which article extraction is
// considered to have failed (spec.md §9 Open Question: fixed at 100 chars).
const minArticleBodyLength = 100

// FeedEntry is a single item parsed from an RSS/Atom feed. It has no
// identity beyond (Source, Link) and exists only for the duration of a
// single request.
type FeedEntry struct {
	Title          string
	Link           string
	PublishedAt    *time.Time
	Source         FeedSource
	SummarySnippet string
}

// Article is the full text of a news page retrieved from a FeedEntry's link.
// Body is plain text: normalized whitespace, no HTML tags.
type Article struct {
	Title     string
	URL       string
	Body      string
	Source    FeedSource
	FetchedAt time.Time
}

// Validate reports whether the article body is long enough to be considered
// a successful extraction.
func (a *Article) Validate() error {
	if a.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if len(a.Body) < minArticleBodyLength {
		return &ValidationError{
			Field:   "body",
			Message: fmt.Sprintf("body length %d is below the minimum of %d characters", len(a.Body), minArticleBodyLength),
		}
	}
	return nil
}
