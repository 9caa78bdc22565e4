package engine

import (
	"fmt"

	"github.com/piwi3910/PrintCost/internal/model"
)

// Quotation is the full result of pricing one job snapshot.
type Quotation struct {
	Spec      model.JobSpec       `json:"spec"`
	Unit      model.Dimensions    `json:"unit"`
	Fit       model.FitResult     `json:"fit"`
	Breakdown model.CostBreakdown `json:"breakdown"`
}

// Quote resolves the preset choices of spec, fits the unit on the sheet and,
// only when the fit is feasible, prices the job. On an infeasible fit the
// returned error wraps model.ErrInfeasibleFit and no costs are produced.
func Quote(spec model.JobSpec, inv model.Inventory) (Quotation, error) {
	unit, err := spec.Paper.Resolve(inv)
	if err != nil {
		return Quotation{}, err
	}
	plateCost, err := spec.Plate.Resolve(inv)
	if err != nil {
		return Quotation{}, err
	}

	fit, err := Fit(unit, spec.Sheet, spec.TotalUnits)
	if err != nil {
		return Quotation{}, err
	}

	return Quotation{
		Spec:      spec,
		Unit:      unit,
		Fit:       fit,
		Breakdown: ComputeBreakdown(fit, spec.CostParams(plateCost)),
	}, nil
}

// ReportRows lays the quotation out as the nine-line component report:
// six cost components, total expenses, margin and the final quote.
func ReportRows(q Quotation) []model.ReportRow {
	s := q.Spec
	b := q.Breakdown

	return []model.ReportRow{
		{
			Category: "Paper Material",
			Formula:  fmt.Sprintf("%d sheets @ %s/sheet", b.SheetsRequired, s.PricePerSheet),
			Amount:   b.Paper,
		},
		{
			Category: "Printing & Plates",
			Formula: fmt.Sprintf("Plate(%s) + (%d colors * %d sheets * %s)",
				s.Plate.Name(), s.NumColors, b.SheetsRequired, s.PrintRatePerColor),
			Amount: b.Printing,
		},
		{
			Category: "Cutting & Die-Cutting",
			Formula:  fmt.Sprintf("(%d ops * %s) + %s die-cut", s.CutOps, s.CutRate, s.DieCutCost),
			Amount:   b.Cutting,
		},
		{
			Category: "Binding",
			Formula:  fmt.Sprintf("%d units @ %s/unit", b.TotalUnits, s.BindingRatePerUnit),
			Amount:   b.Binding,
		},
		{
			Category: "Packing",
			Formula:  fmt.Sprintf("%d sheets @ %s/sheet", b.SheetsRequired, s.PackingRatePerSheet),
			Amount:   b.Packing,
		},
		{Category: "Overheads", Formula: "Fixed operational costs", Amount: b.Overhead},
		{Category: "TOTAL EXPENSES", Formula: "Sum of all components", Amount: b.TotalExpenses},
		{Category: "Profit Margin", Formula: fmt.Sprintf("%s%% of expenses", b.MarginPercent), Amount: b.MarginValue},
		{Category: "FINAL QUOTE", Formula: "Total + Margin", Amount: b.FinalJobCost},
	}
}

// FitSummary is the one-line fit message shown above the quotation.
func FitSummary(fit model.FitResult) string {
	return fmt.Sprintf("%d units per sheet (%s). Total: %d sheets.",
		fit.PiecesPerSheet, fit.Orientation, fit.SheetsRequired)
}
