package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-ledger/internal/models"
)

// Statement line grammar. Header lines begin with a DD-MM-YY or DD-MM-YYYY
// date and end with a running balance figure, optionally tagged Cr or Dr.
// There are no separate debit/credit columns: the transaction amount is
// reconstructed by differencing consecutive balances.
var (
	datePattern    = regexp.MustCompile(`^(\d{2}-\d{2}-\d{2,4})`)
	balancePattern = regexp.MustCompile(`(\d[\d,]*\.\d{2})(Cr|Dr)?$`)
)

// StartsWithDate reports whether a line begins with a transaction date.
func StartsWithDate(line string) bool {
	return datePattern.MatchString(line)
}

// ParseTransactionLine parses one physical line as a transaction header.
// prev is the previous signed closing balance, nil before the first
// transaction. Non-header lines (no leading date, unparseable date, or no
// trailing balance) return (nil, prev) unchanged so the caller can treat
// them as noise or narration continuation.
func ParseTransactionLine(line string, prev *decimal.Decimal) (*models.TransactionRecord, *decimal.Decimal) {
	m := datePattern.FindStringSubmatch(line)
	if m == nil {
		return nil, prev
	}
	dateStr := m[1]

	layout := "02-01-2006"
	if len(dateStr) == len("02-01-06") {
		layout = "02-01-06"
	}
	date, err := time.Parse(layout, dateStr)
	if err != nil {
		return nil, prev
	}

	rest := strings.TrimSpace(line[len(dateStr):])
	loc := balancePattern.FindStringSubmatchIndex(rest)
	if loc == nil {
		// A header must end in a balance figure.
		return nil, prev
	}

	amountStr := rest[loc[2]:loc[3]]
	polarity := "Cr" // unspecified defaults to credit
	if loc[4] >= 0 {
		polarity = rest[loc[4]:loc[5]]
	}

	balance, err := decimal.NewFromString(strings.ReplaceAll(amountStr, ",", ""))
	if err != nil {
		return nil, prev
	}
	if polarity == "Dr" {
		balance = balance.Neg()
	}

	deposit := decimal.Zero
	withdrawal := decimal.Zero
	if prev != nil {
		// The first transaction has no opening balance to diff against,
		// so its amounts stay zero.
		diff := balance.Sub(*prev)
		switch diff.Sign() {
		case 1:
			deposit = diff
		case -1:
			withdrawal = diff.Neg()
		}
	}

	record := &models.TransactionRecord{
		Date:           date.Format("02-01-2006"),
		Particulars:    strings.TrimSpace(rest[:loc[0]]),
		Deposit:        deposit,
		Withdrawal:     withdrawal,
		ClosingBalance: amountStr + polarity,
	}
	return record, &balance
}
