package entity

import "strings"

// LanguageHint indicates the language a KeywordSet or summary is in, or
// that the language should be auto-detected / passed through.
type LanguageHint string

const (
	LanguageKorean  LanguageHint = "ko"
	LanguageEnglish LanguageHint = "en"
	LanguageAuto    LanguageHint = "auto"
)

const (
	minKeywords = 1
	maxKeywords = 10
)

// KeywordSet is the ordered, deduplicated set of salient terms extracted
// from a user query. Terms are trimmed and lowercased for matching.
type KeywordSet struct {
	Terms        []string
	LanguageHint LanguageHint
}

// ErrKeywordEmpty is returned when keyword extraction yields no usable
// terms, even after the heuristic fallback. It is fatal to the query path.
var ErrKeywordEmpty = &ValidationError{Field: "keywords", Message: "no keywords could be extracted"}

// NewKeywordSet normalizes raw terms (trim, lowercase, dedupe, cap at
// maxKeywords) and validates the resulting set is non-empty.
func NewKeywordSet(rawTerms []string, hint LanguageHint) (KeywordSet, error) {
	seen := make(map[string]struct{}, len(rawTerms))
	terms := make([]string, 0, len(rawTerms))

	for _, raw := range rawTerms {
		t := strings.ToLower(strings.TrimSpace(raw))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		terms = append(terms, t)
		if len(terms) == maxKeywords {
			break
		}
	}

	if len(terms) < minKeywords {
		return KeywordSet{}, ErrKeywordEmpty
	}

	if hint == "" {
		hint = LanguageAuto
	}

	return KeywordSet{Terms: terms, LanguageHint: hint}, nil
}
