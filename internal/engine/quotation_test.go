package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PrintCost/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// defaultParams mirrors the stock defaults of a new job with a Rota plate.
func defaultParams() model.CostParams {
	return model.CostParams{
		TotalUnits:          1000,
		PricePerSheet:       dec("15"),
		PlateBaseCost:       dec("250"),
		NumColors:           1,
		PrintRatePerColor:   dec("0.05"),
		CutOps:              4,
		CutRate:             dec("10"),
		DieCutCost:          dec("0"),
		BindingRatePerUnit:  dec("0.20"),
		PackingRatePerSheet: dec("0.10"),
		OverheadFixed:       dec("500"),
		MarginPercent:       dec("20"),
	}
}

func assertDec(t *testing.T, want string, got decimal.Decimal, name string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s: want %s, got %s", name, want, got)
}

func TestComputeBreakdown_DefaultJob(t *testing.T) {
	b := ComputeBreakdownForSheets(112, defaultParams())

	assertDec(t, "1680", b.Paper, "paper")
	assertDec(t, "250", b.PlateCost, "plate")
	assertDec(t, "255.6", b.Printing, "printing")
	assertDec(t, "40", b.Cutting, "cutting")
	assertDec(t, "200", b.Binding, "binding")
	assertDec(t, "11.2", b.Packing, "packing")
	assertDec(t, "500", b.Overhead, "overhead")
	assertDec(t, "2686.8", b.TotalExpenses, "total")
	assertDec(t, "537.36", b.MarginValue, "margin")
	assertDec(t, "3224.16", b.FinalJobCost, "final")
	assertDec(t, "3.22416", b.CostPerUnit, "per unit")
	assert.True(t, b.CostPerUnitDefined)
	assert.Equal(t, 112, b.SheetsRequired)
}

func TestComputeBreakdown_PrintingWithFourColors(t *testing.T) {
	p := defaultParams()
	p.NumColors = 4

	b := ComputeBreakdownForSheets(112, p)
	assertDec(t, "1000", b.PlateCost, "plate")
	assertDec(t, "1022.40", b.Printing, "printing")
}

func TestComputeBreakdown_UsesFitSheets(t *testing.T) {
	fit, err := Fit(model.Dim(8.27, 11.69), model.Dim(25, 36), 1000)
	require.NoError(t, err)

	b := ComputeBreakdown(fit, defaultParams())
	assert.Equal(t, 112, b.SheetsRequired)
	assertDec(t, "1680.00", b.Paper, "paper")
}

func TestComputeBreakdown_Additivity(t *testing.T) {
	p := defaultParams()
	p.PricePerSheet = dec("0.1")
	p.PrintRatePerColor = dec("0.007")
	p.DieCutCost = dec("33.33")
	p.NumColors = 3

	for sheets := 1; sheets < 300; sheets += 7 {
		b := ComputeBreakdownForSheets(sheets, p)
		sum := decimal.Zero
		for _, c := range b.Expenses() {
			sum = sum.Add(c.Amount)
		}
		assert.True(t, sum.Equal(b.TotalExpenses), "sheets=%d: %s != %s", sheets, sum, b.TotalExpenses)
		assert.True(t, b.TotalExpenses.Add(b.MarginValue).Equal(b.FinalJobCost))
	}
}

func TestComputeBreakdown_MarginMonotonic(t *testing.T) {
	p := defaultParams()
	prev := decimal.Zero
	for m := 0; m <= 100; m += 5 {
		p.MarginPercent = decimal.NewFromInt(int64(m))
		b := ComputeBreakdownForSheets(112, p)
		if m > 0 {
			assert.True(t, b.FinalJobCost.GreaterThan(prev), "margin %d%% should increase final cost", m)
		}
		prev = b.FinalJobCost
	}
}

func TestComputeBreakdown_ZeroUnitsGuarded(t *testing.T) {
	p := defaultParams()
	p.TotalUnits = 0

	var b model.CostBreakdown
	assert.NotPanics(t, func() { b = ComputeBreakdownForSheets(0, p) })
	assert.True(t, b.CostPerUnit.IsZero())
	assert.False(t, b.CostPerUnitDefined)
}

func TestComputeBreakdown_Idempotent(t *testing.T) {
	p := defaultParams()
	first := ComputeBreakdownForSheets(112, p)
	second := ComputeBreakdownForSheets(112, p)

	assert.Equal(t, first, second)
	assert.Equal(t, first.FinalJobCost.String(), second.FinalJobCost.String())
}

func TestComputeBreakdown_CategoriesAreIndependent(t *testing.T) {
	p := defaultParams()
	base := ComputeBreakdownForSheets(112, p)

	p.CutRate = dec("99")
	changed := ComputeBreakdownForSheets(112, p)

	assert.True(t, base.Paper.Equal(changed.Paper))
	assert.True(t, base.Printing.Equal(changed.Printing))
	assert.True(t, base.Binding.Equal(changed.Binding))
	assert.False(t, base.Cutting.Equal(changed.Cutting))
}
