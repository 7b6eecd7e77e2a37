package entity

import "time"

// HistoryRecord is an append-only log entry created whenever a
// SummarizedArticle is successfully persisted for a user. Uniqueness is
// enforced on (UserID, ArticleURL, CreatedAt truncated to the second) so
// that re-submitting the same request within the same second is a no-op.
type HistoryRecord struct {
	ID              string
	UserID          string
	ArticleURL      string
	ArticleTitle    string
	ContentExcerpt  string
	SummaryText     string
	SummaryLanguage LanguageHint
	OriginalLength  int
	SummaryLength   int
	Keywords        []string
	Category        Category
	CreatedAt       time.Time
}

// DedupKey returns the tuple used to enforce at-most-once persistence.
func (h *HistoryRecord) DedupKey() (userID, articleURL string, createdAtSecond int64) {
	return h.UserID, h.ArticleURL, h.CreatedAt.Truncate(time.Second).Unix()
}

// NewHistoryRecord builds a HistoryRecord from a SummarizedArticle for the
// given user, truncating the content excerpt for storage.
func NewHistoryRecord(userID string, sa SummarizedArticle, keywords []string, createdAt time.Time) HistoryRecord {
	const excerptLen = 500
	excerpt := sa.Article.Body
	if len(excerpt) > excerptLen {
		excerpt = excerpt[:excerptLen]
	}

	return HistoryRecord{
		UserID:          userID,
		ArticleURL:      sa.Article.URL,
		ArticleTitle:    sa.Article.Title,
		ContentExcerpt:  excerpt,
		SummaryText:     sa.Summary,
		SummaryLanguage: sa.SummaryLanguage,
		OriginalLength:  len(sa.Article.Body),
		SummaryLength:   len(sa.Summary),
		Keywords:        keywords,
		Category:        sa.Article.Source.Category,
		CreatedAt:       createdAt,
	}
}
