// Package pipeline wires statement extraction into ledger classification,
// producing the final record set for export. One document is processed
// start-to-finish per invocation; there is no internal parallelism.
package pipeline

import (
	"fmt"

	"github.com/insightdelivered/statement-ledger/internal/extractor"
	"github.com/insightdelivered/statement-ledger/internal/ledger"
	"github.com/insightdelivered/statement-ledger/internal/models"
	"github.com/insightdelivered/statement-ledger/internal/parser"
)

// Options selects which classification strategies run and with which
// mappings. Absent optional inputs (empty maps, disabled toggles) skip
// their stage rather than erroring.
type Options struct {
	Mode          models.MappingMode
	EnableDefault bool
	EnableCustom  bool
	CustomMap     models.PairList
	TrendMap      models.PairList
}

// Run extracts transactions from the page texts and classifies them.
// Zero recognized transactions is a normal empty result, not an error.
func Run(pages []string, opts Options) []models.TransactionRecord {
	records := parser.ExtractTransactions(pages)
	Classify(records, opts)
	return records
}

// RunFile extracts a PDF at path and runs the pipeline over it. Unlike an
// empty result, an unreadable document is a hard error.
func RunFile(path string, opts Options) ([]models.TransactionRecord, error) {
	pages, err := extractor.ExtractText(path)
	if err != nil {
		return nil, fmt.Errorf("PDF extraction failed: %w", err)
	}
	return Run(pages, opts), nil
}

// Classify assigns ledger names in place.
//
// Under custom+default mode the default rules run first (when enabled)
// and custom keywords only fill records the default step left empty.
// Under trend mode only the fuzzy matcher runs; default and custom
// mappings are never consulted.
func Classify(records []models.TransactionRecord, opts Options) {
	switch opts.Mode {
	case models.ModeTrend:
		if len(opts.TrendMap) == 0 {
			return
		}
		for i := range records {
			records[i].LedgerName = ledger.ApplyTrendMapping(records[i].Particulars, opts.TrendMap)
		}
	default:
		if opts.EnableDefault {
			for i := range records {
				records[i].LedgerName = ledger.DefaultMapping(records[i].Particulars)
			}
		}
		if opts.EnableCustom && len(opts.CustomMap) > 0 {
			for i := range records {
				if records[i].LedgerName == "" {
					records[i].LedgerName = ledger.ApplyCustomMapping(records[i].Particulars, opts.CustomMap)
				}
			}
		}
	}
}
