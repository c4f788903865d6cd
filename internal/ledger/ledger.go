// Package ledger assigns accounting categories ("ledger names") to
// transaction narrations. Three independent matchers are provided; the
// pipeline composes them with fixed precedence.
package ledger

import (
	"strings"

	"github.com/insightdelivered/statement-ledger/internal/models"
	"github.com/insightdelivered/statement-ledger/internal/parser"
)

// Built-in rule tiers. The cash/atm tier outranks the drawings tier:
// a narration containing both classifies as Cash.
var (
	drawingsKeywords = []string{
		"swiggy", "instamart", "zomato", "amazon",
		"flipkart", "groceries", "grocery",
		"blinkit", "zepto",
	}
	cashKeywords = []string{
		"cash from atm", "atm withdrawal", "atm wdl", "cash withdrawal",
	}
)

// DefaultMapping classifies a narration against the built-in keyword
// tiers. Matching is case-insensitive substring containment. Returns ""
// when no tier matches.
func DefaultMapping(narration string) string {
	lower := strings.ToLower(narration)

	if strings.Contains(lower, "cash") || strings.Contains(lower, "atm") {
		return "Cash"
	}
	if containsAny(lower, drawingsKeywords) {
		return "Drawings"
	}
	if containsAny(lower, cashKeywords) {
		return "Cash"
	}
	return ""
}

// ApplyCustomMapping returns the ledger of the first keyword in the list
// whose lowercased form is a substring of the lowercased narration, or ""
// if none match. List order decides ties.
func ApplyCustomMapping(narration string, customMap models.PairList) string {
	lower := strings.ToLower(narration)
	for _, pair := range customMap {
		if pair.Keyword != "" && strings.Contains(lower, strings.ToLower(pair.Keyword)) {
			return pair.Ledger
		}
	}
	return ""
}

// ApplyTrendMapping classifies a narration by fuzzy similarity to
// previously-labeled narrations. Both sides are normalized before
// scoring. The best-scoring exemplar wins only if its partial-ratio
// score strictly exceeds 70; ties keep the first-seen exemplar (the
// best score is only replaced on a strictly greater score).
func ApplyTrendMapping(narration string, trendMap models.PairList) string {
	cleaned := parser.CleanText(narration)

	bestLedger := ""
	bestScore := 0.0
	for _, pair := range trendMap {
		score := PartialRatio(cleaned, parser.CleanText(pair.Keyword))
		if score > bestScore {
			bestLedger = pair.Ledger
			bestScore = score
		}
	}
	if bestScore > 70 {
		return bestLedger
	}
	return ""
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
