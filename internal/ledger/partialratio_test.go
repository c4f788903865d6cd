package ledger

import (
	"strings"
	"testing"
)

func TestPartialRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "abcdefghij", "abcdefghij", 100},
		{"perfect substring", "abc", "xxabcxx", 100},
		{"substring order independent", "xxabcxx", "abc", 100},
		{"three edits over ten runes", "aaaaaaaaaa", "aaaaaaabbb", 70},
		{"two edits over ten runes", "aaaaaaaaaa", "aaaaaaaabb", 80},
		{"completely different", "aaaa", "zzzz", 0},
		{"empty left", "", "abc", 0},
		{"empty right", "abc", "", 0},
		{"both empty", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PartialRatio(tt.a, tt.b); got != tt.want {
				t.Errorf("PartialRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPartialRatio_ExactThresholdValues(t *testing.T) {
	// The score is an integer numerator over the window length, so
	// boundary comparisons against 70 never suffer float drift.
	a := strings.Repeat("a", 100)
	b := strings.Repeat("a", 71) + strings.Repeat("b", 29)
	if got := PartialRatio(a, b); got != 71 {
		t.Errorf("got %v, want exactly 71", got)
	}

	b70 := strings.Repeat("a", 70) + strings.Repeat("b", 30)
	if got := PartialRatio(a, b70); got != 70 {
		t.Errorf("got %v, want exactly 70", got)
	}
}

func TestPartialRatio_WindowSliding(t *testing.T) {
	// The needle appears mid-haystack; only a sliding window finds it.
	haystack := "prefix atm withdrawal branch suffix"
	if got := PartialRatio("atm withdrawal", haystack); got != 100 {
		t.Errorf("got %v, want 100 for embedded needle", got)
	}
}
