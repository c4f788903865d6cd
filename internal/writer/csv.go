package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/insightdelivered/statement-ledger/internal/models"
)

// CSVWriter writes the record set in CSV format, as a lighter alternative
// to the XLSX export.
type CSVWriter struct {
	// IncludeHeader adds account metadata rows before the column header.
	IncludeHeader bool
	Identity      models.AccountIdentity
}

// WriteToFile writes records to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, records []models.TransactionRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, records)
}

// Write writes records in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, records []models.TransactionRecord) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if w.IncludeHeader {
		if w.Identity.HolderName != "" {
			writer.Write([]string{"# Account Holder", w.Identity.HolderName})
		}
		if w.Identity.AccountNumber != "" {
			writer.Write([]string{"# Account Number", w.Identity.AccountNumber})
		}
	}

	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.Date,
			rec.Particulars,
			rec.Deposit.Round(2).StringFixed(2),
			rec.Withdrawal.Round(2).StringFixed(2),
			rec.ClosingBalance,
			rec.LedgerName,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}
