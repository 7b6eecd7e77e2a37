package articleextractor

import (
	"html"
	"regexp"
	"strings"
)

// zeroWidthChars are stripped because they are invisible but inflate
// len(body) past the minimum-length invariant without adding content.
var zeroWidthChars = strings.NewReplacer(
	"​", "", // zero-width space
	"‌", "", // zero-width non-joiner
	"‍", "", // zero-width joiner
	"﻿", "", // byte-order mark
)

var whitespaceRun = regexp.MustCompile(`[ \t\f\v]+`)
var blankLineRun = regexp.MustCompile(`\n{3,}`)

// normalizeText decodes HTML entities, strips zero-width characters, and
// collapses excess whitespace while preserving paragraph breaks.
func normalizeText(s string) string {
	s = html.UnescapeString(s)
	s = zeroWidthChars.Replace(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = blankLineRun.ReplaceAllString(s, "\n\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
