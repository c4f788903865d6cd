package mapping

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/statement-ledger/internal/models"
)

// LoadTrendXLSX reads a previously exported statement workbook and builds
// the trend map from its Particulars and Ledger Name columns. Duplicate
// Particulars keep the first occurrence; rows with an empty Particulars
// or ledger are skipped.
func LoadTrendXLSX(r io.Reader) (models.PairList, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open trend workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("trend workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("trend workbook sheet %q is empty", sheets[0])
	}

	particularsCol, ledgerCol := -1, -1
	for i, name := range rows[0] {
		switch strings.TrimSpace(name) {
		case "Particulars":
			particularsCol = i
		case "Ledger Name":
			ledgerCol = i
		}
	}
	if particularsCol < 0 || ledgerCol < 0 {
		return nil, fmt.Errorf("trend workbook needs Particulars and Ledger Name columns")
	}

	seen := make(map[string]bool)
	var pairs models.PairList
	for _, row := range rows[1:] {
		if particularsCol >= len(row) || ledgerCol >= len(row) {
			continue
		}
		particulars := strings.TrimSpace(row[particularsCol])
		ledger := strings.TrimSpace(row[ledgerCol])
		if particulars == "" || ledger == "" || seen[particulars] {
			continue
		}
		seen[particulars] = true
		pairs = append(pairs, models.Pair{Keyword: particulars, Ledger: ledger})
	}
	return pairs, nil
}
