package model

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Category names one slice of the cost breakdown.
type Category string

const (
	CategoryPaper    Category = "Paper"
	CategoryPrinting Category = "Printing"
	CategoryCutting  Category = "Cutting"
	CategoryBinding  Category = "Binding"
	CategoryPacking  Category = "Packing"
	CategoryOverhead Category = "Overhead"
	CategoryMargin   Category = "Margin"
)

// CostParams bundles the rate and cost inputs of the quotation.
// Monetary values are exact decimals.
type CostParams struct {
	TotalUnits          int             `json:"total_units"`
	PricePerSheet       decimal.Decimal `json:"price_per_sheet"`
	PlateBaseCost       decimal.Decimal `json:"plate_base_cost"`
	NumColors           int             `json:"num_colors"`
	PrintRatePerColor   decimal.Decimal `json:"print_rate_per_color"` // per color per sheet
	CutOps              int             `json:"cut_ops"`
	CutRate             decimal.Decimal `json:"cut_rate"` // per cutting operation
	DieCutCost          decimal.Decimal `json:"die_cut_cost"`
	BindingRatePerUnit  decimal.Decimal `json:"binding_rate_per_unit"`
	PackingRatePerSheet decimal.Decimal `json:"packing_rate_per_sheet"`
	OverheadFixed       decimal.Decimal `json:"overhead_fixed"`
	MarginPercent       decimal.Decimal `json:"margin_percent"` // 0-100
}

// CategoryAmount pairs a category with its computed amount.
type CategoryAmount struct {
	Category Category        `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// CostBreakdown is the itemized result of one quotation pass.
type CostBreakdown struct {
	SheetsRequired int `json:"sheets_required"`
	TotalUnits     int `json:"total_units"`

	Paper     decimal.Decimal `json:"paper"`
	PlateCost decimal.Decimal `json:"plate_cost"` // Included in Printing
	Printing  decimal.Decimal `json:"printing"`
	Cutting   decimal.Decimal `json:"cutting"`
	Binding   decimal.Decimal `json:"binding"`
	Packing   decimal.Decimal `json:"packing"`
	Overhead  decimal.Decimal `json:"overhead"`

	TotalExpenses decimal.Decimal `json:"total_expenses"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
	MarginValue   decimal.Decimal `json:"margin_value"`
	FinalJobCost  decimal.Decimal `json:"final_job_cost"`

	// CostPerUnit is zero and CostPerUnitDefined false when TotalUnits is 0.
	CostPerUnit        decimal.Decimal `json:"cost_per_unit"`
	CostPerUnitDefined bool            `json:"cost_per_unit_defined"`
}

// Expenses returns the six non-margin categories in report order.
func (b CostBreakdown) Expenses() []CategoryAmount {
	return []CategoryAmount{
		{CategoryPaper, b.Paper},
		{CategoryPrinting, b.Printing},
		{CategoryCutting, b.Cutting},
		{CategoryBinding, b.Binding},
		{CategoryPacking, b.Packing},
		{CategoryOverhead, b.Overhead},
	}
}

// Categories returns all seven chart slices, margin last.
func (b CostBreakdown) Categories() []CategoryAmount {
	return append(b.Expenses(), CategoryAmount{CategoryMargin, b.MarginValue})
}

// ReportRow is one line of the tabular quotation report.
type ReportRow struct {
	Category string          `json:"category"`
	Formula  string          `json:"formula"`
	Amount   decimal.Decimal `json:"amount"`
}

// FormatMoney renders an amount with the currency symbol, thousands
// separators and two decimals, e.g. "Rs.1,680.00".
func FormatMoney(symbol string, amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	p := message.NewPrinter(language.English)
	return sign + symbol + p.Sprintf("%.2f", rounded.Abs().InexactFloat64())
}
