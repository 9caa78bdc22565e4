package engine

import (
	"github.com/shopspring/decimal"

	"github.com/piwi3910/PrintCost/internal/model"
)

// ComputeBreakdown prices a job from a feasible fit and its cost parameters.
func ComputeBreakdown(fit model.FitResult, params model.CostParams) model.CostBreakdown {
	return ComputeBreakdownForSheets(fit.SheetsRequired, params)
}

// ComputeBreakdownForSheets prices a job for a known sheet count. Each
// category depends only on the inputs and the sheet count; the totals are
// exact decimal sums of the categories.
func ComputeBreakdownForSheets(sheetsRequired int, params model.CostParams) model.CostBreakdown {
	sheets := decimal.NewFromInt(int64(sheetsRequired))
	colors := decimal.NewFromInt(int64(params.NumColors))
	units := decimal.NewFromInt(int64(params.TotalUnits))

	paper := sheets.Mul(params.PricePerSheet)
	plateCost := params.PlateBaseCost.Mul(colors)
	printing := plateCost.Add(params.PrintRatePerColor.Mul(colors).Mul(sheets))
	cutting := decimal.NewFromInt(int64(params.CutOps)).Mul(params.CutRate).Add(params.DieCutCost)
	binding := params.BindingRatePerUnit.Mul(units)
	packing := params.PackingRatePerSheet.Mul(sheets)
	overhead := params.OverheadFixed

	total := decimal.Sum(paper, printing, cutting, binding, packing, overhead)
	margin := total.Mul(params.MarginPercent).Shift(-2)
	final := total.Add(margin)

	b := model.CostBreakdown{
		SheetsRequired: sheetsRequired,
		TotalUnits:     params.TotalUnits,
		Paper:          paper,
		PlateCost:      plateCost,
		Printing:       printing,
		Cutting:        cutting,
		Binding:        binding,
		Packing:        packing,
		Overhead:       overhead,
		TotalExpenses:  total,
		MarginPercent:  params.MarginPercent,
		MarginValue:    margin,
		FinalJobCost:   final,
		CostPerUnit:    decimal.Zero,
	}
	if params.TotalUnits > 0 {
		b.CostPerUnit = final.Div(units)
		b.CostPerUnitDefined = true
	}
	return b
}
