// Package registry holds the curated, read-only FeedSource table loaded at
// process start (see entity.FeedSource).
package registry

import "fmt"

// ConfigError is returned when the registry cannot be constructed from its
// backing data, e.g. a missing category or a malformed YAML override file.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("feed registry config error: %s", e.Reason)
}
