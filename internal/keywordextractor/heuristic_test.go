package keywordextractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"hello", "world"}, tokenize("hello, world! 123"))
	assert.Equal(t, []string{"반도체", "뉴스"}, tokenize("반도체 뉴스 2024"))
	assert.Nil(t, tokenize("a 1 & $"))
}

func TestHeuristicKeywords_FrequencyRanked(t *testing.T) {
	terms := heuristicKeywords("apple banana apple cherry banana apple", 10)
	assert.Equal(t, []string{"apple", "banana", "cherry"}, terms)
}

func TestHeuristicKeywords_DropsStopwords(t *testing.T) {
	terms := heuristicKeywords("the latest news about the semiconductor industry", 10)
	assert.NotContains(t, terms, "the")
	assert.NotContains(t, terms, "news")
	assert.NotContains(t, terms, "latest")
	assert.Contains(t, terms, "semiconductor")
}

func TestHeuristicKeywords_CapsTopN(t *testing.T) {
	terms := heuristicKeywords("alpha beta gamma delta epsilon zeta eta", 3)
	assert.Len(t, terms, 3)
}

func TestLooksKorean(t *testing.T) {
	assert.True(t, looksKorean("반도체 뉴스"))
	assert.False(t, looksKorean("semiconductor news"))
}
