package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionRecord represents a single statement transaction after
// extraction. Amounts are derived by differencing consecutive running
// balances, so exactly one of Deposit/Withdrawal is non-zero per record
// (both are zero for the first record, where no previous balance exists).
type TransactionRecord struct {
	Date           string          `json:"date"`           // DD-MM-YYYY
	Particulars    string          `json:"particulars"`    // narration, may span source lines
	Deposit        decimal.Decimal `json:"deposit"`
	Withdrawal     decimal.Decimal `json:"withdrawals"`
	ClosingBalance string          `json:"closingBalance"` // original amount string + Cr/Dr
	LedgerName     string          `json:"ledgerName"`     // empty until classified
}

// SignedBalance parses ClosingBalance back into a signed decimal:
// positive for Cr, negative for Dr.
func (t *TransactionRecord) SignedBalance() (decimal.Decimal, error) {
	s := t.ClosingBalance
	negative := false
	switch {
	case strings.HasSuffix(s, "Cr"):
		s = strings.TrimSuffix(s, "Cr")
	case strings.HasSuffix(s, "Dr"):
		s = strings.TrimSuffix(s, "Dr")
		negative = true
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid closing balance %q: %w", t.ClosingBalance, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// AccountIdentity identifies the statement's account holder. It is never
// validated; it only derives the storage key for persisted mappings.
type AccountIdentity struct {
	HolderName    string `json:"name"`
	AccountNumber string `json:"accountNumber"`
}

// StorageKey derives the stable per-account key: holder name with spaces
// replaced by underscores, joined with the last 4 digits of the account
// number. Distinct accounts can collide (same name, same trailing digits);
// the store is last-writer-wins by design.
func (a AccountIdentity) StorageKey() string {
	name := strings.ReplaceAll(a.HolderName, " ", "_")
	tail := a.AccountNumber
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	return name + "_" + tail
}

// MappingMode selects which classification strategies run.
type MappingMode string

const (
	// ModeCustomDefault runs the built-in keyword rules, then the
	// user-supplied keyword rules over whatever is still unclassified.
	ModeCustomDefault MappingMode = "custom+default"
	// ModeTrend runs only the fuzzy historical-pattern matcher.
	ModeTrend MappingMode = "trend"
)

// ParseMappingMode converts a user-facing mode string.
func ParseMappingMode(s string) (MappingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "custom+default", "custom-default", "default":
		return ModeCustomDefault, nil
	case "trend":
		return ModeTrend, nil
	default:
		return "", fmt.Errorf("unknown mapping mode: %q (use custom+default or trend)", s)
	}
}

// MappingSet is the per-account persisted state: user keyword rules and
// historical narration exemplars for fuzzy matching.
type MappingSet struct {
	CustomMap PairList `json:"custom_map"`
	TrendMap  PairList `json:"trend_map"`
}

// Empty reports whether the set carries no mappings at all.
func (m MappingSet) Empty() bool {
	return len(m.CustomMap) == 0 && len(m.TrendMap) == 0
}
