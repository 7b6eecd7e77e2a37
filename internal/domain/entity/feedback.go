package entity

import (
	"fmt"
	"time"
)

// FeedbackType classifies a FeedbackRecord.
type FeedbackType string

const (
	FeedbackPositive FeedbackType = "positive"
	FeedbackNegative FeedbackType = "negative"
)

// FeedbackRecord captures a user's rating of a previously summarized
// article. It soft-references HistoryRecord by (UserID, ArticleURL)
// without foreign-key enforcement: a missing history entry is tolerated.
type FeedbackRecord struct {
	UserID       string
	ArticleURL   string
	Rating       int
	FeedbackType FeedbackType
	CreatedAt    time.Time
}

// Validate checks the rating range and feedback type.
func (f *FeedbackRecord) Validate() error {
	if f.UserID == "" {
		return &ValidationError{Field: "user_id", Message: "user_id is required"}
	}
	if f.Rating < 1 || f.Rating > 5 {
		return &ValidationError{Field: "rating", Message: fmt.Sprintf("rating %d is out of range [1,5]", f.Rating)}
	}
	if f.FeedbackType != FeedbackPositive && f.FeedbackType != FeedbackNegative {
		return &ValidationError{Field: "feedback_type", Message: fmt.Sprintf("unsupported feedback_type %q", f.FeedbackType)}
	}
	return nil
}
