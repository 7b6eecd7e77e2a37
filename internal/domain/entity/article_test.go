package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testSource() FeedSource {
	return FeedSource{Name: "Test Source", Category: CategoryIT, RSSURL: "https://example.com/feed.xml"}
}

func TestArticle_Struct(t *testing.T) {
	now := time.Now()
	body := strings.Repeat("word ", 30)

	article := Article{
		Title:     "Test Article",
		URL:       "https://example.com/article",
		Body:      body,
		Source:    testSource(),
		FetchedAt: now,
	}

	assert.Equal(t, "Test Article", article.Title)
	assert.Equal(t, "https://example.com/article", article.URL)
	assert.Equal(t, body, article.Body)
	assert.Equal(t, now, article.FetchedAt)
}

func TestArticle_ZeroValue(t *testing.T) {
	var article Article

	assert.Equal(t, "", article.Title)
	assert.Equal(t, "", article.URL)
	assert.Equal(t, "", article.Body)
	assert.True(t, article.FetchedAt.IsZero())
}

func TestArticle_Validate(t *testing.T) {
	tests := []struct {
		name    string
		article Article
		wantErr bool
	}{
		{
			name:    "valid article",
			article: Article{Title: "t", Body: strings.Repeat("x", 120)},
			wantErr: false,
		},
		{
			name:    "missing title",
			article: Article{Body: strings.Repeat("x", 120)},
			wantErr: true,
		},
		{
			name:    "body too short",
			article: Article{Title: "t", Body: "too short"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.article.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestArticle_Mutability(t *testing.T) {
	article := Article{Title: "Original Title", URL: "https://example.com/original"}

	article.Title = "Updated Title"
	article.Body = "new body content"

	assert.Equal(t, "Updated Title", article.Title)
	assert.Equal(t, "new body content", article.Body)
}
