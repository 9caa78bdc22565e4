package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/PrintCost/internal/engine"
	"github.com/piwi3910/PrintCost/internal/model"
)

const (
	quoteSheetName = "Quotation"
	inputSheetName = "Job Inputs"
)

// ExportXLSX writes the quotation workbook to path.
func ExportXLSX(path string, q engine.Quotation) error {
	f, err := buildWorkbook(q)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}

// WriteXLSX writes the quotation workbook to w.
func WriteXLSX(w io.Writer, q engine.Quotation) error {
	f, err := buildWorkbook(q)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel data: %w", err)
	}
	return nil
}

// buildWorkbook lays out the report table with numeric amounts on the first
// sheet and the job inputs on the second.
func buildWorkbook(q engine.Quotation) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", quoteSheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeQuoteSheet(f, q); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(inputSheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to add inputs sheet: %w", err)
	}
	if err := writeInputSheet(f, q); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeQuoteSheet(f *excelize.File, q engine.Quotation) error {
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	moneyFmt := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	for i, h := range reportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(quoteSheetName, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	if err := f.SetCellStyle(quoteSheetName, "A1", "C1", boldStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	rows := engine.ReportRows(q)
	for i, row := range rows {
		r := i + 2
		if err := f.SetCellValue(quoteSheetName, fmt.Sprintf("A%d", r), row.Category); err != nil {
			return err
		}
		if err := f.SetCellValue(quoteSheetName, fmt.Sprintf("B%d", r), row.Formula); err != nil {
			return err
		}
		if err := f.SetCellValue(quoteSheetName, fmt.Sprintf("C%d", r), row.Amount.InexactFloat64()); err != nil {
			return err
		}
	}
	last := len(rows) + 1
	if err := f.SetCellStyle(quoteSheetName, "C2", fmt.Sprintf("C%d", last), moneyStyle); err != nil {
		return fmt.Errorf("failed to style amounts: %w", err)
	}

	// Summary block under the table
	summary := last + 2
	perUnit := "n/a"
	if q.Breakdown.CostPerUnitDefined {
		perUnit = model.FormatMoney(q.Spec.Currency, q.Breakdown.CostPerUnit)
	}
	lines := [][2]string{
		{"Fit", engine.FitSummary(q.Fit)},
		{"Currency", q.Spec.Currency},
		{"Cost per Unit", perUnit},
	}
	for i, l := range lines {
		if err := writeRow(f, quoteSheetName, summary+i, l[0], l[1]); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	for col, width := range map[string]float64{"A": 24, "B": 48, "C": 16} {
		if err := f.SetColWidth(quoteSheetName, col, col, width); err != nil {
			return fmt.Errorf("failed to size columns: %w", err)
		}
	}
	return nil
}

// writeRow fills consecutive cells of row r starting at column A.
func writeRow(f *excelize.File, sheet string, r int, values ...interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, r)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func writeInputSheet(f *excelize.File, q engine.Quotation) error {
	s := q.Spec
	inputs := []struct {
		name  string
		value interface{}
	}{
		{"Paper", s.Paper.Name()},
		{"Unit Width", q.Unit.Width},
		{"Unit Height", q.Unit.Height},
		{"Sheet Width", s.Sheet.Width},
		{"Sheet Height", s.Sheet.Height},
		{"Total Units", s.TotalUnits},
		{"Plate", s.Plate.Name()},
		{"Price per Sheet", s.PricePerSheet.InexactFloat64()},
		{"Colors", s.NumColors},
		{"Print Rate per Color", s.PrintRatePerColor.InexactFloat64()},
		{"Cutting Operations", s.CutOps},
		{"Cut Rate", s.CutRate.InexactFloat64()},
		{"Die-Cut Cost", s.DieCutCost.InexactFloat64()},
		{"Binding Rate per Unit", s.BindingRatePerUnit.InexactFloat64()},
		{"Packing Rate per Sheet", s.PackingRatePerSheet.InexactFloat64()},
		{"Overhead", s.OverheadFixed.InexactFloat64()},
		{"Margin %", s.MarginPercent.InexactFloat64()},
	}

	if err := writeRow(f, inputSheetName, 1, "Input", "Value"); err != nil {
		return fmt.Errorf("failed to write inputs: %w", err)
	}
	for i, in := range inputs {
		if err := writeRow(f, inputSheetName, i+2, in.name, in.value); err != nil {
			return fmt.Errorf("failed to write inputs: %w", err)
		}
	}
	if err := f.SetColWidth(inputSheetName, "A", "A", 26); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	return nil
}
