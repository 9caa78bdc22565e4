package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PrintCost/internal/engine"
	"github.com/piwi3910/PrintCost/internal/model"
)

// buildTestQuotation quotes the stock default job: A4 on a 25x36 sheet.
func buildTestQuotation(t *testing.T) engine.Quotation {
	t.Helper()
	q, err := engine.Quote(model.DefaultAppConfig().NewJobSpec(), model.DefaultInventory())
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}
	return q
}

func TestExportPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test_output.pdf")

	err := ExportPDF(path, buildTestQuotation(t))
	if err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
	// Two pages with an embedded QR image should be a reasonable size
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_EmptyQuotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	err := ExportPDF(path, engine.Quotation{})
	if err == nil {
		t.Fatal("expected error for empty quotation, got nil")
	}
}

func TestWritePDF_HasHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, buildTestQuotation(t)); err != nil {
		t.Fatalf("WritePDF returned error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("expected PDF header, got %q", buf.Bytes()[:min(8, buf.Len())])
	}
}

func TestExportPDF_RotatedCustomJob(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rotated.pdf")

	job := model.DefaultAppConfig().NewJobSpec()
	job.Paper = model.CustomPaper(10, 4)
	job.Sheet = model.Dim(8, 30)
	job.Currency = "€"
	q, err := engine.Quote(job, model.DefaultInventory())
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}
	if q.Fit.Orientation != model.OrientationRotated {
		t.Fatalf("expected rotated fit, got %s", q.Fit.Orientation)
	}

	if err := ExportPDF(path, q); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
}

func TestExportPDF_ManySmallUnits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dense.pdf")

	job := model.DefaultAppConfig().NewJobSpec()
	job.Paper = model.CustomPaper(1, 1.5)
	job.TotalUnits = 100000
	q, err := engine.Quote(job, model.DefaultInventory())
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}

	if err := ExportPDF(path, q); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
}

func TestLabelFontSize(t *testing.T) {
	tests := []struct {
		w, h float64
		want float64
	}{
		{50, 50, 8},
		{30, 25, 7},
		{15, 10, 6},
	}
	for _, tc := range tests {
		if got := labelFontSize(tc.w, tc.h); got != tc.want {
			t.Errorf("labelFontSize(%v, %v) = %v, want %v", tc.w, tc.h, got, tc.want)
		}
	}
}

func TestPDFSymbol(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Rs.", "Rs."},
		{"$", "$"},
		{"€", "€"},
		{"₹", "Rs."},
		{"₹ ", "Rs. "},
		{"₿", ""},
	}
	for _, tc := range tests {
		if got := pdfSymbol(tc.in); got != tc.want {
			t.Errorf("pdfSymbol(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExportPDF_RupeeCurrency(t *testing.T) {
	job := model.DefaultAppConfig().NewJobSpec()
	job.Currency = model.CurrencySymbol("INR (₹)")
	q, err := engine.Quote(job, model.DefaultInventory())
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}

	var buf bytes.Buffer
	if err := WritePDF(&buf, q); err != nil {
		t.Fatalf("WritePDF returned error: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected PDF output")
	}
}
