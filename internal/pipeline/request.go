package pipeline

import "catchup-feed/internal/domain/entity"

// Request is the common input to both SummarizeByQuery and SummarizeByRSS.
// Only the fields relevant to the chosen entry path need to be set.
type Request struct {
	// Query is the free-text search used by SummarizeByQuery.
	Query string

	// RSSURLs and ArticleURLs are used by SummarizeByRSS: RSSURLs are
	// fetched as feeds, ArticleURLs are treated as pre-selected entries.
	RSSURLs     []string
	ArticleURLs []string

	Language entity.LanguageHint

	// UserID gates history persistence; empty means "don't persist".
	UserID string
	// RecipientEmail gates the digest mail step; empty means "don't mail".
	RecipientEmail string

	// MaxArticles caps the number of articles summarized. Negative means
	// unspecified (resolves to the hard cap); zero is a deliberate
	// request for zero articles.
	MaxArticles int

	CustomPrompt string
}
