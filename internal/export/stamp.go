package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/PrintCost/internal/engine"
)

// StampInfo holds the data encoded into the quotation's QR stamp.
// Monetary values are plain decimal strings without a currency symbol.
type StampInfo struct {
	Paper          string `json:"paper"`
	Unit           string `json:"unit"`
	Sheet          string `json:"sheet"`
	TotalUnits     int    `json:"units"`
	PiecesPerSheet int    `json:"per_sheet"`
	Orientation    string `json:"orientation"`
	SheetsRequired int    `json:"sheets"`
	Plate          string `json:"plate"`
	Currency       string `json:"currency"`
	TotalExpenses  string `json:"total_expenses"`
	FinalJobCost   string `json:"final"`
	CostPerUnit    string `json:"per_unit,omitempty"`
}

// Stamp size constants (mm).
const (
	qrSize       = 32.0
	stampPadding = 2.0
)

// CollectStampInfo extracts the QR payload from a quotation.
func CollectStampInfo(q engine.Quotation) StampInfo {
	b := q.Breakdown
	info := StampInfo{
		Paper:          q.Spec.Paper.Name(),
		Unit:           fmt.Sprintf("%gx%g", q.Unit.Width, q.Unit.Height),
		Sheet:          fmt.Sprintf("%gx%g", q.Fit.Sheet.Width, q.Fit.Sheet.Height),
		TotalUnits:     b.TotalUnits,
		PiecesPerSheet: q.Fit.PiecesPerSheet,
		Orientation:    q.Fit.Orientation.String(),
		SheetsRequired: b.SheetsRequired,
		Plate:          q.Spec.Plate.Name(),
		Currency:       q.Spec.Currency,
		TotalExpenses:  b.TotalExpenses.StringFixed(2),
		FinalJobCost:   b.FinalJobCost.StringFixed(2),
	}
	if b.CostPerUnitDefined {
		info.CostPerUnit = b.CostPerUnit.StringFixed(2)
	}
	return info
}

// StampPNG renders the QR stamp of a quotation as a PNG image.
func StampPNG(q engine.Quotation, size int) ([]byte, error) {
	data, err := json.Marshal(CollectStampInfo(q))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stamp info: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

// renderStamp draws the QR stamp with a caption at the given position.
func renderStamp(pdf *fpdf.Fpdf, x, y float64, q engine.Quotation) error {
	qrPNG, err := StampPNG(q, 256)
	if err != nil {
		return err
	}

	const imgName = "quote_stamp"
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// Light border for the stamp area
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, qrSize+2*stampPadding, qrSize+2*stampPadding+5, "D")

	pdf.ImageOptions(imgName, x+stampPadding, y+stampPadding, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(x, y+qrSize+stampPadding+0.5)
	pdf.CellFormat(qrSize+2*stampPadding, 4, "Scan for job summary", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	return nil
}
