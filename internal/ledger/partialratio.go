package ledger

import "github.com/lithammer/fuzzysearch/fuzzy"

// PartialRatio scores two strings on a 0-100 scale with a
// substring-tolerant metric: the shorter string is slid across every
// equal-length window of the longer one, each window is scored as
// 100 * (window_len - levenshtein(shorter, window)) / window_len, and the
// best window wins. A perfect substring scores 100 regardless of how much
// longer the other string is. Either side empty scores 0.
//
// The score is computed as an integer numerator over the window length so
// threshold comparisons (e.g. a strict "> 70") are exact: 3 edits over a
// 10-rune window is exactly 70, never 70.0000000000001.
func PartialRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	shorter, longer := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	n := len(shorter)
	best := 0.0
	for i := 0; i+n <= len(longer); i++ {
		d := fuzzy.LevenshteinDistance(string(shorter), string(longer[i:i+n]))
		if d > n {
			d = n
		}
		score := float64(100*(n-d)) / float64(n)
		if score > best {
			best = score
		}
		if best == 100 {
			break
		}
	}
	return best
}
