package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// JobSpec is the complete input snapshot of one quotation. Front-ends build a
// fresh JobSpec on every change and hand it to the engine by value.
type JobSpec struct {
	Paper      PaperChoice `json:"paper"`
	Sheet      Dimensions  `json:"sheet"`
	TotalUnits int         `json:"total_units"`
	Plate      PlateChoice `json:"plate"`
	Currency   string      `json:"currency"` // Display only

	PricePerSheet       decimal.Decimal `json:"price_per_sheet"`
	NumColors           int             `json:"num_colors"`
	PrintRatePerColor   decimal.Decimal `json:"print_rate_per_color"`
	CutOps              int             `json:"cut_ops"`
	CutRate             decimal.Decimal `json:"cut_rate"`
	DieCutCost          decimal.Decimal `json:"die_cut_cost"`
	BindingRatePerUnit  decimal.Decimal `json:"binding_rate_per_unit"`
	PackingRatePerSheet decimal.Decimal `json:"packing_rate_per_sheet"`
	OverheadFixed       decimal.Decimal `json:"overhead_fixed"`
	MarginPercent       decimal.Decimal `json:"margin_percent"`
}

// CostParams assembles the quotation inputs once the plate cost is resolved.
func (j JobSpec) CostParams(plateBaseCost decimal.Decimal) CostParams {
	return CostParams{
		TotalUnits:          j.TotalUnits,
		PricePerSheet:       j.PricePerSheet,
		PlateBaseCost:       plateBaseCost,
		NumColors:           j.NumColors,
		PrintRatePerColor:   j.PrintRatePerColor,
		CutOps:              j.CutOps,
		CutRate:             j.CutRate,
		DieCutCost:          j.DieCutCost,
		BindingRatePerUnit:  j.BindingRatePerUnit,
		PackingRatePerSheet: j.PackingRatePerSheet,
		OverheadFixed:       j.OverheadFixed,
		MarginPercent:       j.MarginPercent,
	}
}

// Validate performs the input checks a front-end applies before quoting.
// The engine itself assumes valid input.
func (j JobSpec) Validate() error {
	if !j.Sheet.Positive() {
		return fmt.Errorf("%w: sheet size %gx%g must be positive", ErrInvalidInput, j.Sheet.Width, j.Sheet.Height)
	}
	if j.Paper.IsCustom() && !j.Paper.Custom.Positive() {
		return fmt.Errorf("%w: custom unit size must be positive", ErrInvalidInput)
	}
	if !j.Paper.IsCustom() && j.Paper.Preset == "" {
		return fmt.Errorf("%w: no paper size selected", ErrInvalidInput)
	}
	if !j.Plate.IsCustom() && j.Plate.Preset == "" {
		return fmt.Errorf("%w: no plate type selected", ErrInvalidInput)
	}
	if j.TotalUnits < 1 {
		return fmt.Errorf("%w: total units must be at least 1", ErrInvalidInput)
	}
	if j.NumColors < 1 {
		return fmt.Errorf("%w: number of colors must be at least 1", ErrInvalidInput)
	}
	if j.CutOps < 0 {
		return fmt.Errorf("%w: cutting operations cannot be negative", ErrInvalidInput)
	}

	rates := []struct {
		name  string
		value decimal.Decimal
	}{
		{"price per sheet", j.PricePerSheet},
		{"print rate", j.PrintRatePerColor},
		{"cut rate", j.CutRate},
		{"die-cut cost", j.DieCutCost},
		{"binding rate", j.BindingRatePerUnit},
		{"packing rate", j.PackingRatePerSheet},
		{"overhead", j.OverheadFixed},
	}
	for _, r := range rates {
		if r.value.IsNegative() {
			return fmt.Errorf("%w: %s cannot be negative", ErrInvalidInput, r.name)
		}
	}

	if j.MarginPercent.IsNegative() || j.MarginPercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: margin must be between 0 and 100", ErrInvalidInput)
	}
	return nil
}
