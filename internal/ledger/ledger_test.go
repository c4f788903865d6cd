package ledger

import (
	"strings"
	"testing"

	"github.com/insightdelivered/statement-ledger/internal/models"
)

func TestDefaultMapping(t *testing.T) {
	tests := []struct {
		name      string
		narration string
		want      string
	}{
		{"swiggy order", "SWIGGY ORDER #123", "Drawings"},
		{"atm withdrawal", "ATM WDL 2000", "Cash"},
		{"cash and brand prefers cash tier", "CASH PAID AT SWIGGY", "Cash"},
		{"zomato", "UPI/ZOMATO/998877", "Drawings"},
		{"grocery", "GROCERY STORE PURCHASE", "Drawings"},
		{"plain atm mention", "NFS/ATM/DEC/XYZ", "Cash"},
		{"case insensitive", "blinkit order", "Drawings"},
		{"no match", "NEFT TRANSFER TO LANDLORD", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultMapping(tt.narration); got != tt.want {
				t.Errorf("DefaultMapping(%q) = %q, want %q", tt.narration, got, tt.want)
			}
		})
	}
}

func TestApplyCustomMapping(t *testing.T) {
	customMap := models.PairList{
		{Keyword: "rent", Ledger: "Rent"},
		{Keyword: "LANDLORD", Ledger: "Rent Paid"},
		{Keyword: "emi", Ledger: "Loan EMI"},
	}

	tests := []struct {
		name      string
		narration string
		want      string
	}{
		{"simple match", "EMI DEBIT HDFC", "Loan EMI"},
		{"keyword matched case-insensitively", "Paid to landlord", "Rent Paid"},
		{"first entry wins over later entries", "RENT TO LANDLORD", "Rent"},
		{"no match", "SALARY CREDIT", ""},
		{"empty narration", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyCustomMapping(tt.narration, customMap); got != tt.want {
				t.Errorf("ApplyCustomMapping(%q) = %q, want %q", tt.narration, got, tt.want)
			}
		})
	}

	t.Run("empty map", func(t *testing.T) {
		if got := ApplyCustomMapping("anything", nil); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})
}

func TestApplyTrendMapping(t *testing.T) {
	t.Run("close narration matches", func(t *testing.T) {
		trendMap := models.PairList{
			{Keyword: "UPI/SWIGGY/BANGALORE/1122", Ledger: "Drawings"},
			{Keyword: "NEFT SALARY ACME CORP", Ledger: "Salary"},
		}
		got := ApplyTrendMapping("UPI/SWIGGY/BANGALORE/3344", trendMap)
		if got != "Drawings" {
			t.Errorf("got %q, want Drawings", got)
		}
	})

	t.Run("normalization strips punctuation before scoring", func(t *testing.T) {
		trendMap := models.PairList{
			{Keyword: "PAYMENT-TO: XYZ!!", Ledger: "Suppliers"},
		}
		if got := ApplyTrendMapping("payment to xyz", trendMap); got != "Suppliers" {
			t.Errorf("got %q, want Suppliers", got)
		}
	})

	t.Run("score of exactly 70 is rejected", func(t *testing.T) {
		// 3 edits over a 10-rune key scores exactly 70; threshold is strict.
		trendMap := models.PairList{{Keyword: "aaaaaaabbb", Ledger: "Nope"}}
		if got := ApplyTrendMapping("aaaaaaaaaa", trendMap); got != "" {
			t.Errorf("got %q, want empty at score 70", got)
		}
	})

	t.Run("score of 71 is accepted", func(t *testing.T) {
		// 29 edits over a 100-rune key scores exactly 71.
		key := strings.Repeat("a", 71) + strings.Repeat("b", 29)
		trendMap := models.PairList{{Keyword: key, Ledger: "Close Enough"}}
		if got := ApplyTrendMapping(strings.Repeat("a", 100), trendMap); got != "Close Enough" {
			t.Errorf("got %q, want Close Enough at score 71", got)
		}
	})

	t.Run("ties keep the first-seen exemplar", func(t *testing.T) {
		trendMap := models.PairList{
			{Keyword: "identical text", Ledger: "First"},
			{Keyword: "identical text", Ledger: "Second"},
		}
		if got := ApplyTrendMapping("identical text", trendMap); got != "First" {
			t.Errorf("got %q, want First", got)
		}
	})

	t.Run("empty trend map", func(t *testing.T) {
		if got := ApplyTrendMapping("anything", nil); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})

	t.Run("distant narration stays unclassified", func(t *testing.T) {
		trendMap := models.PairList{{Keyword: "NEFT SALARY ACME CORP", Ledger: "Salary"}}
		if got := ApplyTrendMapping("zzzz 9999 qqqq", trendMap); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})
}
