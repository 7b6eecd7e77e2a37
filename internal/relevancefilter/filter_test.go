package relevancefilter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catchup-feed/internal/domain/entity"
)

func mustKeywords(t *testing.T, terms ...string) entity.KeywordSet {
	t.Helper()
	ks, err := entity.NewKeywordSet(terms, entity.LanguageEnglish)
	require.NoError(t, err)
	return ks
}

func TestFilter_ScoresAndRanks(t *testing.T) {
	entries := []entity.FeedEntry{
		{Title: "Semiconductor exports rise", SummarySnippet: "chip demand grows"},
		{Title: "Unrelated sports news", SummarySnippet: "football match results"},
		{Title: "Semiconductor semiconductor boom", SummarySnippet: "chip chip chip"},
	}
	keywords := mustKeywords(t, "semiconductor", "chip")

	result := Filter(entries, keywords, 10)
	require.Len(t, result, 2)
	assert.Equal(t, "Semiconductor semiconductor boom", result[0].Title)
	assert.Equal(t, "Semiconductor exports rise", result[1].Title)
}

func TestFilter_DropsZeroScoreEntries(t *testing.T) {
	entries := []entity.FeedEntry{
		{Title: "Completely unrelated", SummarySnippet: "nothing matches here"},
	}
	keywords := mustKeywords(t, "semiconductor")

	result := Filter(entries, keywords, 10)
	assert.Empty(t, result)
}

func TestFilter_TieBreaksOnRecency(t *testing.T) {
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	entries := []entity.FeedEntry{
		{Title: "chip story A", PublishedAt: &older},
		{Title: "chip story B", PublishedAt: &newer},
	}
	keywords := mustKeywords(t, "chip")

	result := Filter(entries, keywords, 10)
	require.Len(t, result, 2)
	assert.Equal(t, "chip story B", result[0].Title)
	assert.Equal(t, "chip story A", result[1].Title)
}

func TestFilter_TieBreaksOnInputOrderWhenNoPublishedAt(t *testing.T) {
	entries := []entity.FeedEntry{
		{Title: "chip story first"},
		{Title: "chip story second"},
	}
	keywords := mustKeywords(t, "chip")

	result := Filter(entries, keywords, 10)
	require.Len(t, result, 2)
	assert.Equal(t, "chip story first", result[0].Title)
	assert.Equal(t, "chip story second", result[1].Title)
}

func TestFilter_RespectsLimit(t *testing.T) {
	entries := []entity.FeedEntry{
		{Title: "chip one"},
		{Title: "chip two"},
		{Title: "chip three"},
	}
	keywords := mustKeywords(t, "chip")

	result := Filter(entries, keywords, 2)
	assert.Len(t, result, 2)
}

func TestFilter_CaseInsensitive(t *testing.T) {
	entries := []entity.FeedEntry{
		{Title: "SEMICONDUCTOR news", SummarySnippet: "Chip demand"},
	}
	keywords := mustKeywords(t, "semiconductor", "chip")

	result := Filter(entries, keywords, 10)
	require.Len(t, result, 1)
}
