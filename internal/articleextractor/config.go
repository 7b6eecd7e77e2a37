// Package articleextractor fetches an article's HTML and extracts its
// title and body text (C3), falling back through a ladder of selection
// strategies when Mozilla Readability doesn't produce enough text.
package articleextractor

import (
	"fmt"
	"time"
)

// Config controls security, performance, and selector behavior.
type Config struct {
	// Timeout is the per-request HTTP timeout, superseded by the caller's
	// deadline when shorter.
	Timeout time.Duration

	// MaxBodySize is the maximum HTML response size read from the network.
	MaxBodySize int64

	// MaxRedirects is the maximum number of HTTP redirects to follow.
	MaxRedirects int

	// BodySelectors is an ordered list of CSS selectors tried, after
	// <article>, before falling back to the largest-div heuristic.
	BodySelectors []string

	// AdClassPattern matches element class/id attributes to strip before
	// extracting text (ads, navigation, related-content widgets).
	AdClassPattern string
}

// DefaultConfig returns production defaults grounded on the news-site
// selector conventions common to Korean press CMSes.
func DefaultConfig() Config {
	return Config{
		Timeout:      10 * time.Second,
		MaxBodySize:  10 * 1024 * 1024,
		MaxRedirects: 5,
		BodySelectors: []string{
			"div#articleBody",
			"div.article_body",
			"div#content",
			"div.news_content",
			"div#article-view-content-div",
			"div.article-view-content",
			"div.article-text",
			"section.article-content",
		},
		AdClassPattern: `(?i)(^|[\s_-])(ad|ads|advert|sponsor|banner|related|promo)([\s_-]|$)`,
	}
}

// Validate checks the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxBodySize < 1024 {
		return fmt.Errorf("max body size must be at least 1KB, got %d", c.MaxBodySize)
	}
	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}
	return nil
}
