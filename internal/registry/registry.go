package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"catchup-feed/internal/domain/entity"
)

// Registry is the read-only FeedSource table used by the Feed Fetcher
// and the query-driven pipeline path to resolve a category to its feeds.
// It is built once at process start and never mutated afterward.
type Registry struct {
	feeds      []entity.FeedSource
	byCategory map[entity.Category][]entity.FeedSource
}

// New builds a Registry from feeds, collapsing duplicate rssURL entries
// (first occurrence wins) and validating that every entity.AllCategories
// member has at least one feed. Returns a *ConfigError otherwise.
func New(feeds []entity.FeedSource) (*Registry, error) {
	seen := make(map[string]struct{}, len(feeds))
	dedup := make([]entity.FeedSource, 0, len(feeds))

	for _, f := range feeds {
		if err := f.Validate(); err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("invalid feed %q: %v", f.RSSURL, err)}
		}
		if _, ok := seen[f.Key()]; ok {
			continue
		}
		seen[f.Key()] = struct{}{}
		dedup = append(dedup, f)
	}

	byCategory := make(map[entity.Category][]entity.FeedSource)
	for _, f := range dedup {
		byCategory[f.Category] = append(byCategory[f.Category], f)
	}

	for _, c := range entity.AllCategories {
		if len(byCategory[c]) == 0 {
			return nil, &ConfigError{Reason: fmt.Sprintf("no feed configured for category %q", c)}
		}
	}

	return &Registry{feeds: dedup, byCategory: byCategory}, nil
}

// NewDefault builds a Registry from DefaultFeeds.
func NewDefault() (*Registry, error) {
	return New(DefaultFeeds)
}

// List returns every feed in the registry.
func (r *Registry) List() []entity.FeedSource {
	out := make([]entity.FeedSource, len(r.feeds))
	copy(out, r.feeds)
	return out
}

// ByCategory returns the feeds tagged with category, or nil if none exist.
func (r *Registry) ByCategory(category entity.Category) []entity.FeedSource {
	feeds := r.byCategory[category]
	out := make([]entity.FeedSource, len(feeds))
	copy(out, feeds)
	return out
}

// Categories returns every category present in the registry.
func (r *Registry) Categories() []entity.Category {
	out := make([]entity.Category, 0, len(r.byCategory))
	for c := range r.byCategory {
		out = append(out, c)
	}
	return out
}

// overrideFile is the YAML shape accepted by LoadOverride, mirroring
// internal/config's pattern of a thin struct tagged with `yaml:"..."`.
type overrideFile struct {
	Feeds []struct {
		Name     string `yaml:"name"`
		Category string `yaml:"category"`
		RSSURL   string `yaml:"rss_url"`
	} `yaml:"feeds"`
}

// LoadOverride reads a YAML file of feeds and builds a Registry from it,
// letting operators replace the curated defaults without recompiling.
func LoadOverride(path string) (*Registry, error) {
	// #nosec G304 -- path comes from trusted startup configuration, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Reason: fmt.Sprintf("read override file: %v", err)}
	}

	var parsed overrideFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, &ConfigError{Reason: fmt.Sprintf("parse override file: %v", err)}
	}

	feeds := make([]entity.FeedSource, 0, len(parsed.Feeds))
	for _, f := range parsed.Feeds {
		feeds = append(feeds, entity.FeedSource{
			Name:     f.Name,
			Category: entity.Category(f.Category),
			RSSURL:   f.RSSURL,
		})
	}

	return New(feeds)
}
