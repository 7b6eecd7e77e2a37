package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecommendation_Struct(t *testing.T) {
	now := time.Now()
	r := Recommendation{
		ArticleTitle:        "Title",
		ArticleURL:          "https://example.com/a",
		ArticleSource:       "Example News",
		Category:            CategoryIT,
		Keywords:            []string{"ai", "chip"},
		RecommendationType:  RecommendationKeyword,
		RecommendationScore: 0.82,
		CreatedAt:           now,
	}

	assert.Equal(t, "Title", r.ArticleTitle)
	assert.Equal(t, RecommendationKeyword, r.RecommendationType)
	assert.InDelta(t, 0.82, r.RecommendationScore, 0.0001)
	assert.Equal(t, now, r.CreatedAt)
}

func TestRecommendation_ZeroValue(t *testing.T) {
	var r Recommendation
	assert.Empty(t, r.ArticleTitle)
	assert.Empty(t, r.RecommendationType)
	assert.Zero(t, r.RecommendationScore)
	assert.Nil(t, r.Keywords)
}

func TestRecommendationType_Values(t *testing.T) {
	assert.Equal(t, RecommendationType("keyword"), RecommendationKeyword)
	assert.Equal(t, RecommendationType("category"), RecommendationCategory)
	assert.Equal(t, RecommendationType("trending"), RecommendationTrending)
}
