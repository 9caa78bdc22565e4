// Package export writes quotations to CSV, Excel and PDF documents.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/piwi3910/PrintCost/internal/engine"
	"github.com/piwi3910/PrintCost/internal/model"
)

// reportHeader is the header row shared by the CSV and Excel reports.
var reportHeader = []string{"Cost Category", "Formula / Details", "Amount"}

// unsafeFilenameChars are replaced by underscores in generated filenames.
var unsafeFilenameChars = strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")

// Filename returns the conventional download name for a quotation,
// e.g. quote_A4_1000.csv.
func Filename(paperName string, totalUnits int, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	return fmt.Sprintf("quote_%s_%d.%s", unsafeFilenameChars.Replace(paperName), totalUnits, ext)
}

// QuoteFilename applies Filename to a quotation.
func QuoteFilename(q engine.Quotation, ext string) string {
	return Filename(q.Spec.Paper.Name(), q.Spec.TotalUnits, ext)
}

// WriteCSV writes the nine-row component report with a header row.
// Amounts are formatted with the job's currency symbol.
func WriteCSV(w io.Writer, q engine.Quotation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range engine.ReportRows(q) {
		record := []string{row.Category, row.Formula, model.FormatMoney(q.Spec.Currency, row.Amount)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %q: %w", row.Category, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the CSV report to path.
func ExportCSV(path string, q engine.Quotation) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	if err := WriteCSV(f, q); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
