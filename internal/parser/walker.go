package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-ledger/internal/models"
)

// separatorPattern matches ruled lines between statement sections.
var separatorPattern = regexp.MustCompile(`^[.\-_=]{5,}$`)

// isNoise filters statement boilerplate: blank lines, headers and footers
// mentioning the account, page numbers or totals, and separator rules.
func isNoise(line string) bool {
	if line == "" {
		return true
	}
	lower := strings.ToLower(line)
	if strings.Contains(lower, "account") ||
		strings.Contains(lower, "page") ||
		strings.Contains(lower, "total") {
		return true
	}
	return separatorPattern.MatchString(line)
}

// ExtractTransactions walks the page texts of a statement in document
// order and returns the transactions it can recover. Lines that start
// with a date and end with a balance open a new record; other
// non-noise lines are buffered and folded into the preceding record's
// narration. Continuation text seen before any record exists is dropped.
// A document with no recognizable header lines yields an empty slice,
// never an error: malformed lines are reclassified, not fatal.
func ExtractTransactions(pages []string) []models.TransactionRecord {
	var (
		records []models.TransactionRecord
		prev    *decimal.Decimal
		buffer  string
	)

	flush := func() {
		if buffer != "" && len(records) > 0 {
			records[len(records)-1].Particulars += " " + strings.TrimSpace(buffer)
		}
		buffer = ""
	}

	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			line = strings.TrimSpace(line)
			if isNoise(line) {
				continue
			}

			if StartsWithDate(line) {
				// Buffered continuation text belongs to the previous
				// record, not the one this line opens.
				flush()
				record, next := ParseTransactionLine(line, prev)
				prev = next
				if record != nil {
					records = append(records, *record)
				}
				continue
			}

			buffer += " " + line
		}
	}
	flush()

	return records
}
