package entity

import "time"

// RecommendationType classifies how a Recommendation's score was derived.
type RecommendationType string

const (
	RecommendationKeyword  RecommendationType = "keyword"
	RecommendationCategory RecommendationType = "category"
	RecommendationTrending RecommendationType = "trending"
)

// Recommendation is a suggested, not-yet-seen article scored by keyword or
// category affinity derived from a user's History, or by recency when the
// user has no history (Trending).
type Recommendation struct {
	ArticleTitle        string
	ArticleURL          string
	ArticleSource       string
	Category            Category
	Keywords            []string
	RecommendationType  RecommendationType
	RecommendationScore float64
	CreatedAt           time.Time
}
