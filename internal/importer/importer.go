// Package importer reads paper-size presets from CSV and Excel files and
// unit footprints from DXF drawings. Tabular imports guess the delimiter,
// and map columns by header name when a header row is present.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/PrintCost/internal/model"
)

// ImportResult collects the presets read from a file together with the
// per-row problems found along the way.
type ImportResult struct {
	Papers   []model.PaperPreset
	Errors   []string
	Warnings []string
}

func (r *ImportResult) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ImportResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ColumnMapping holds the column index of each field, or -1 when absent.
type ColumnMapping struct {
	Name   int
	Width  int
	Height int
}

var positionalColumns = ColumnMapping{Name: 0, Width: 1, Height: 2}

// Lowercase header spellings accepted for each field.
var (
	nameHeaders   = []string{"name", "paper", "paper size", "size", "preset", "label", "description", "desc"}
	widthHeaders  = []string{"width", "w", "x", "width (in)", "width (inches)"}
	heightHeaders = []string{"height", "h", "y", "length", "height (in)", "height (inches)"}
)

var delimiterNames = map[rune]string{',': "comma", ';': "semicolon", '\t': "tab", '|': "pipe"}

func newCSVReader(r io.Reader, delim rune) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr
}

// DetectCSVDelimiter picks the delimiter among comma, semicolon, tab and pipe
// that splits the first line into several columns and keeps that width on
// the most lines. Comma is returned when nothing splits.
func DetectCSVDelimiter(data []byte) rune {
	best, bestScore := ',', 0
	for _, delim := range []rune{',', ';', '\t', '|'} {
		records, err := newCSVReader(bytes.NewReader(data), delim).ReadAll()
		if err != nil || len(records) == 0 || len(records[0]) < 2 {
			continue
		}
		width := len(records[0])
		consistent := 0
		for _, rec := range records {
			if len(rec) == width {
				consistent++
			}
		}
		if score := consistent*10 + width; score > bestScore {
			best, bestScore = delim, score
		}
	}
	return best
}

func matchesAny(cell string, options []string) bool {
	for _, o := range options {
		if cell == o {
			return true
		}
	}
	return false
}

// DetectColumns maps the columns of a header row. When no cell is a known
// header name it returns the positional Name, Width, Height layout and false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	m := ColumnMapping{Name: -1, Width: -1, Height: -1}
	found := false
	claim := func(slot *int, idx int) {
		found = true
		if *slot < 0 {
			*slot = idx
		}
	}
	for i, raw := range row {
		cell := strings.ToLower(strings.TrimSpace(raw))
		switch {
		case matchesAny(cell, nameHeaders):
			claim(&m.Name, i)
		case matchesAny(cell, widthHeaders):
			claim(&m.Width, i)
		case matchesAny(cell, heightHeaders):
			claim(&m.Height, i)
		}
	}
	if !found {
		return positionalColumns, false
	}
	return m, true
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// dimension parses one positive size field of a row.
func dimension(row []string, idx int, field string) (float64, error) {
	s := cellAt(row, idx)
	if s == "" {
		return 0, fmt.Errorf("Missing %s value", field)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("Invalid %s '%s'", field, s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("Width and height must be positive")
	}
	return v, nil
}

// paperFromRow builds a preset from one data row. Unnamed rows are numbered
// after the presets accepted so far.
func paperFromRow(row []string, m ColumnMapping, accepted int) (model.PaperPreset, error) {
	name := cellAt(row, m.Name)
	if name == "" {
		name = fmt.Sprintf("Paper %d", accepted+1)
	}
	if strings.EqualFold(name, model.CustomPresetName) {
		return model.PaperPreset{}, fmt.Errorf("'%s' is reserved", model.CustomPresetName)
	}
	w, err := dimension(row, m.Width, "width")
	if err != nil {
		return model.PaperPreset{}, err
	}
	h, err := dimension(row, m.Height, "height")
	if err != nil {
		return model.PaperPreset{}, err
	}
	return model.NewPaperPreset(name, w, h), nil
}

// ImportCSV reads paper presets from a CSV file of any supported delimiter.
func ImportCSV(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}

	delim := DetectCSVDelimiter(data)
	result := ImportCSVFromReader(bytes.NewReader(data), delim)
	if delim != ',' {
		result.Warnings = append([]string{fmt.Sprintf("Detected %s delimiter", delimiterNames[delim])}, result.Warnings...)
	}
	return result
}

// ImportCSVFromReader reads paper presets from CSV data with a known delimiter.
func ImportCSVFromReader(r io.Reader, delim rune) ImportResult {
	records, err := newCSVReader(r, delim).ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	if len(records) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}
	return importRows(records, "Line")
}

// ImportExcel reads paper presets from the first sheet of an .xlsx workbook.
func ImportExcel(path string) ImportResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open Excel file: %v", err)}}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{Errors: []string{"Excel file has no sheets"}}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read Excel data: %v", err)}}
	}
	if len(rows) == 0 {
		return ImportResult{Errors: []string{"Sheet is empty"}}
	}
	return importRows(rows, "Row")
}

// importRows turns tabular rows into presets. unit names the row kind in
// messages ("Line" for CSV, "Row" for Excel), numbered from 1.
func importRows(rows [][]string, unit string) ImportResult {
	var result ImportResult

	m, hasHeader := DetectColumns(rows[0])
	first := 0
	switch {
	case hasHeader:
		first = 1
		result.warnf("Detected header row, skipping")
		var missing []string
		if m.Width < 0 {
			missing = append(missing, "Width")
		}
		if m.Height < 0 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.errorf("Required columns not found in header: %s", strings.Join(missing, ", "))
			return result
		}
	case len(rows[0]) >= 3:
		// foreign-language header: the width column is not a number
		if _, err := strconv.ParseFloat(cellAt(rows[0], 1), 64); err != nil {
			first = 1
			result.warnf("Detected header row, skipping")
		}
	}

	seen := make(map[string]bool)
	for i := first; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		label := fmt.Sprintf("%s %d", unit, i+1)
		paper, err := paperFromRow(rows[i], m, len(result.Papers))
		if err != nil {
			result.errorf("%s: %v", label, err)
			continue
		}
		key := strings.ToLower(paper.Name)
		if seen[key] {
			result.warnf("%s: Duplicate paper '%s', keeping the first", label, paper.Name)
			continue
		}
		seen[key] = true
		result.Papers = append(result.Papers, paper)
	}
	return result
}
