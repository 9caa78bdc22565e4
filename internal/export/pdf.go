package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/piwi3910/PrintCost/internal/engine"
	"github.com/piwi3910/PrintCost/internal/model"
)

// symbolFallbacks spell out currency signs the core PDF fonts cannot draw.
var symbolFallbacks = map[rune]string{
	'₹': "Rs.",
	'₽': "RUB ",
	'₩': "KRW ",
	'₦': "NGN ",
	'₱': "PHP ",
}

// pdfSymbol returns symbol unchanged when it fits the cp1252 encoding of the
// core fonts. Other runes are replaced by their fallback or dropped.
func pdfSymbol(symbol string) string {
	enc := charmap.Windows1252.NewEncoder()
	if _, err := enc.String(symbol); err == nil {
		return symbol
	}
	var b strings.Builder
	for _, r := range symbol {
		if alt, ok := symbolFallbacks[r]; ok {
			b.WriteString(alt)
			continue
		}
		if _, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// rgb represents an RGB color.
type rgb struct {
	R, G, B int
}

// categoryColors mirrors the color scheme used in the UI breakdown chart.
var categoryColors = map[model.Category]rgb{
	model.CategoryPaper:    {R: 76, G: 175, B: 80},  // green
	model.CategoryPrinting: {R: 33, G: 150, B: 243}, // blue
	model.CategoryCutting:  {R: 255, G: 152, B: 0},  // orange
	model.CategoryBinding:  {R: 156, G: 39, B: 176}, // purple
	model.CategoryPacking:  {R: 0, G: 188, B: 212},  // cyan
	model.CategoryOverhead: {R: 121, G: 85, B: 72},  // brown
	model.CategoryMargin:   {R: 244, G: 67, B: 54},  // red
}

// unitColors alternate across the layout diagram so neighbouring cells
// stay distinguishable.
var unitColors = []rgb{
	{R: 144, G: 202, B: 249},
	{R: 100, G: 181, B: 246},
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes the quotation document to path.
func ExportPDF(path string, q engine.Quotation) error {
	pdf, err := buildPDF(q)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// WritePDF writes the quotation document to w.
func WritePDF(w io.Writer, q engine.Quotation) error {
	pdf, err := buildPDF(q)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

// buildPDF renders the two-page quotation: the sheet layout with the QR
// stamp, then the cost breakdown table and bar chart.
func buildPDF(q engine.Quotation) (*fpdf.Fpdf, error) {
	if q.Fit.PiecesPerSheet == 0 {
		return nil, fmt.Errorf("no feasible fit to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	renderLayoutPage(pdf, q)
	if err := renderStamp(pdf, pageWidth-marginRight-qrSize-2*stampPadding, marginTop, q); err != nil {
		return nil, err
	}

	pdf.AddPage()
	renderBreakdownPage(pdf, q, tr)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return pdf, nil
}

// renderLayoutPage draws the one-sheet imposition diagram on the current page.
func renderLayoutPage(pdf *fpdf.Fpdf, q engine.Quotation) {
	fit := q.Fit
	sheet := fit.Sheet
	textW := pageWidth - marginLeft - marginRight - qrSize - 2*stampPadding - 5

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Print Job Quotation: %s on %g x %g sheet", q.Spec.Paper.Name(), sheet.Width, sheet.Height)
	pdf.CellFormat(textW, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Unit: %g x %g | %s | Sheet utilization: %.1f%% | Overrun: %d units",
		q.Unit.Width, q.Unit.Height, engine.FitSummary(fit), fit.Utilization(), fit.Overrun())
	pdf.CellFormat(textW, 5, stats, "", 0, "L", false, 0, "")

	// Calculate drawing area, leaving the stamp column free
	drawWidth := textW
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	// Calculate scale to fit the parent sheet within drawing area
	scale := math.Min(drawWidth/sheet.Width, drawHeight/sheet.Height)
	canvasW := sheet.Width * scale
	canvasH := sheet.Height * scale

	// Center the drawing horizontally
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop + 8

	// Parent sheet, hatched so the trim left around the grid stays visible
	pdf.SetFillColor(250, 245, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")
	drawHatchPattern(pdf, offsetX, offsetY, canvasW, canvasH)

	rects := engine.LayoutRects(fit)
	draw := fit.DrawSize()
	for i, r := range rects {
		col := unitColors[i%len(unitColors)]
		px := offsetX + r.X0*scale
		py := offsetY + r.Y0*scale
		pw := r.Width() * scale
		ph := r.Height() * scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		// Cell label (only if rectangle is large enough)
		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := fmt.Sprintf("%d", i+1)
			dims := fmt.Sprintf("%gx%g", draw.Width, draw.Height)
			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")

			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, sheet, offsetX, offsetY, canvasW, canvasH)

	// Legend under the diagram
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(marginLeft, offsetY+canvasH+6)
	legend := fmt.Sprintf("Standard fit: %d per sheet | Rotated fit: %d per sheet | Chosen: %s | Hatched area is trim",
		fit.FitStandard, fit.FitRotated, fit.Orientation)
	pdf.CellFormat(drawWidth, 4, legend, "", 0, "C", false, 0, "")
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark trim.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 170, 140)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations adds width and height labels outside the sheet rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, sheet model.Dimensions, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	// Width annotation (below the sheet)
	widthLabel := fmt.Sprintf("%g", sheet.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	// Height annotation (to the left of the sheet, rotated)
	heightLabel := fmt.Sprintf("%g", sheet.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// renderBreakdownPage draws the report table and the category bar chart.
func renderBreakdownPage(pdf *fpdf.Fpdf, q engine.Quotation, tr func(string) string) {
	b := q.Breakdown
	symbol := pdfSymbol(q.Spec.Currency)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Detailed Quotation", "", 0, "L", false, 0, "")

	// Separator line
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	// Headline metrics
	perUnit := "n/a"
	if b.CostPerUnitDefined {
		perUnit = model.FormatMoney(symbol, b.CostPerUnit)
	}
	summaryItems := []struct {
		label string
		value string
	}{
		{"Sheets Required", fmt.Sprintf("%d", b.SheetsRequired)},
		{"Total Expenses", model.FormatMoney(symbol, b.TotalExpenses)},
		{"Final Job Cost", model.FormatMoney(symbol, b.FinalJobCost)},
		{"Cost per Unit", perUnit},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(45, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(50, 6, tr(item.value), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	y += 4

	// Report table
	colWidths := []float64{45, 90, 40}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range reportHeader {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	for i, row := range engine.ReportRows(q) {
		// Totals rows are emphasized
		style := ""
		if row.Category == "TOTAL EXPENSES" || row.Category == "FINAL QUOTE" {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)

		// Alternate row background
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		cells := []struct {
			text  string
			align string
		}{
			{row.Category, "L"},
			{row.Formula, "L"},
			{tr(model.FormatMoney(symbol, row.Amount)), "R"},
		}
		xPos = marginLeft
		for j, cell := range cells {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell.text, "1", 0, cell.align, true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	chartX := marginLeft + colWidths[0] + colWidths[1] + colWidths[2] + 10
	renderCostChart(pdf, b, chartX, marginTop+18, pageWidth-marginRight-chartX, tr, symbol)

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by PrintCost - Print Job Cost Estimator", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// renderCostChart draws a horizontal bar per cost category, margin last.
func renderCostChart(pdf *fpdf.Fpdf, b model.CostBreakdown, x, y, width float64, tr func(string) string, symbol string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(x, y)
	pdf.CellFormat(width, 7, "Cost Distribution", "", 0, "L", false, 0, "")
	y += 10

	categories := b.Categories()
	maxAmount := 0.0
	for _, c := range categories {
		maxAmount = math.Max(maxAmount, c.Amount.InexactFloat64())
	}

	const (
		labelW = 22.0
		barH   = 7.0
		gap    = 4.0
		valueW = 28.0
	)
	barMax := width - labelW - valueW

	for _, c := range categories {
		amount := c.Amount.InexactFloat64()
		barW := 0.0
		if maxAmount > 0 {
			barW = amount / maxAmount * barMax
		}

		pdf.SetFont("Helvetica", "", 8)
		pdf.SetXY(x, y)
		pdf.CellFormat(labelW, barH, string(c.Category), "", 0, "L", false, 0, "")

		col := categoryColors[c.Category]
		pdf.SetFillColor(col.R, col.G, col.B)
		if barW > 0 {
			pdf.Rect(x+labelW, y+1, barW, barH-2, "F")
		}

		pdf.SetXY(x+labelW+barW+1, y)
		pdf.CellFormat(valueW, barH, tr(model.FormatMoney(symbol, c.Amount)), "", 0, "L", false, 0, "")
		y += barH + gap
	}
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
