package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedSource_Struct(t *testing.T) {
	source := FeedSource{
		Name:     "Test Source",
		Category: CategoryIT,
		RSSURL:   "https://example.com/feed.xml",
	}

	assert.Equal(t, "Test Source", source.Name)
	assert.Equal(t, CategoryIT, source.Category)
	assert.Equal(t, "https://example.com/feed.xml", source.RSSURL)
	assert.Equal(t, "https://example.com/feed.xml", source.Key())
}

func TestFeedSource_ZeroValue(t *testing.T) {
	var source FeedSource

	assert.Equal(t, "", source.Name)
	assert.Equal(t, Category(""), source.Category)
	assert.Equal(t, "", source.RSSURL)
}

func TestFeedSource_Validate(t *testing.T) {
	tests := []struct {
		name    string
		source  FeedSource
		wantErr bool
	}{
		{
			name:    "valid source",
			source:  FeedSource{Name: "n", Category: CategoryGeneral, RSSURL: "https://example.com/rss.xml"},
			wantErr: false,
		},
		{
			name:    "missing name",
			source:  FeedSource{Category: CategoryGeneral, RSSURL: "https://example.com/rss.xml"},
			wantErr: true,
		},
		{
			name:    "unsupported category",
			source:  FeedSource{Name: "n", Category: Category("unknown"), RSSURL: "https://example.com/rss.xml"},
			wantErr: true,
		},
		{
			name:    "invalid rss url",
			source:  FeedSource{Name: "n", Category: CategoryGeneral, RSSURL: "not-a-url"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.source.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCategory_IsValid(t *testing.T) {
	assert.True(t, CategoryIT.IsValid())
	assert.True(t, CategorySports.IsValid())
	assert.False(t, Category("nonsense").IsValid())
}
