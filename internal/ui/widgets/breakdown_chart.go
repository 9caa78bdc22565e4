package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/shopspring/decimal"

	"github.com/piwi3910/PrintCost/internal/model"
)

// CategoryColors is the chart palette, shared in spirit with the PDF report.
var CategoryColors = map[model.Category]color.NRGBA{
	model.CategoryPaper:    {R: 76, G: 175, B: 80, A: 255},  // green
	model.CategoryPrinting: {R: 33, G: 150, B: 243, A: 255}, // blue
	model.CategoryCutting:  {R: 255, G: 152, B: 0, A: 255},  // orange
	model.CategoryBinding:  {R: 156, G: 39, B: 176, A: 255}, // purple
	model.CategoryPacking:  {R: 0, G: 188, B: 212, A: 255},  // cyan
	model.CategoryOverhead: {R: 121, G: 85, B: 72, A: 255},  // brown
	model.CategoryMargin:   {R: 244, G: 67, B: 54, A: 255},  // red
}

// Share is one chart slice with its fraction of the final quote.
type Share struct {
	Category model.Category
	Amount   decimal.Decimal
	Fraction float64 // 0..1
}

// Shares splits the final quote into the seven chart categories.
// Categories with a zero amount are kept so the legend stays stable.
// All fractions are zero when the final quote is zero.
func Shares(b model.CostBreakdown) []Share {
	cats := b.Categories()
	shares := make([]Share, 0, len(cats))
	for _, c := range cats {
		s := Share{Category: c.Category, Amount: c.Amount}
		if b.FinalJobCost.IsPositive() {
			s.Fraction = c.Amount.Div(b.FinalJobCost).InexactFloat64()
		}
		shares = append(shares, s)
	}
	return shares
}

// BreakdownChart draws the cost breakdown as labelled horizontal bars.
type BreakdownChart struct {
	widget.BaseWidget
	shares   []Share
	currency string
	width    float32
}

// NewBreakdownChart creates an empty chart whose bars span up to width.
func NewBreakdownChart(width float32) *BreakdownChart {
	c := &BreakdownChart{width: width}
	c.ExtendBaseWidget(c)
	return c
}

// SetBreakdown replaces the charted breakdown and redraws.
func (c *BreakdownChart) SetBreakdown(b model.CostBreakdown, currency string) {
	c.shares = Shares(b)
	c.currency = currency
	c.Refresh()
}

// Clear empties the chart.
func (c *BreakdownChart) Clear() {
	c.shares = nil
	c.Refresh()
}

func (c *BreakdownChart) CreateRenderer() fyne.WidgetRenderer {
	r := &breakdownChartRenderer{chart: c}
	r.rebuild()
	return r
}

const (
	chartRowHeight  = 22
	chartLabelWidth = 80
	chartTextSize   = 11
)

type breakdownChartRenderer struct {
	chart   *BreakdownChart
	objects []fyne.CanvasObject
}

func (r *breakdownChartRenderer) rebuild() {
	r.objects = nil
	c := r.chart

	barSpace := c.width - chartLabelWidth - 160
	if barSpace < 40 {
		barSpace = 40
	}

	for i, s := range c.shares {
		y := float32(i * chartRowHeight)

		label := canvas.NewText(string(s.Category), theme.Color(theme.ColorNameForeground))
		label.TextSize = chartTextSize
		label.Move(fyne.NewPos(0, y+3))
		r.objects = append(r.objects, label)

		w := float32(s.Fraction) * barSpace
		if w > 0 && w < 1 {
			w = 1
		}
		bar := canvas.NewRectangle(CategoryColors[s.Category])
		bar.Resize(fyne.NewSize(w, chartRowHeight-6))
		bar.Move(fyne.NewPos(chartLabelWidth, y+3))
		r.objects = append(r.objects, bar)

		value := canvas.NewText(
			fmt.Sprintf("%s (%.1f%%)", model.FormatMoney(c.currency, s.Amount), s.Fraction*100),
			theme.Color(theme.ColorNameForeground),
		)
		value.TextSize = chartTextSize
		value.Move(fyne.NewPos(chartLabelWidth+w+6, y+3))
		r.objects = append(r.objects, value)
	}
}

func (r *breakdownChartRenderer) Layout(size fyne.Size)        {}
func (r *breakdownChartRenderer) Refresh()                     { r.rebuild(); canvas.Refresh(r.chart) }
func (r *breakdownChartRenderer) Destroy()                     {}
func (r *breakdownChartRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *breakdownChartRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.chart.width, float32(len(r.chart.shares)*chartRowHeight))
}
