package parser

import (
	"regexp"
	"strings"
)

var nonAlnumPattern = regexp.MustCompile(`[^a-z0-9 ]`)

// CleanText normalizes text for fuzzy comparison: lowercase, strip every
// character that is not an ASCII letter, digit or space, trim the ends.
// It never touches stored data, only match input.
func CleanText(s string) string {
	return strings.TrimSpace(nonAlnumPattern.ReplaceAllString(strings.ToLower(s), ""))
}
