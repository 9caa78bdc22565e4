package widgets

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/PrintCost/internal/model"
)

func TestShares(t *testing.T) {
	b := model.CostBreakdown{
		Paper:        decimal.NewFromInt(40),
		Printing:     decimal.NewFromInt(20),
		Cutting:      decimal.NewFromInt(10),
		Binding:      decimal.Zero,
		Packing:      decimal.NewFromInt(5),
		Overhead:     decimal.NewFromInt(5),
		MarginValue:  decimal.NewFromInt(20),
		FinalJobCost: decimal.NewFromInt(100),
	}

	shares := Shares(b)
	if len(shares) != 7 {
		t.Fatalf("expected 7 shares, got %d", len(shares))
	}
	if shares[0].Category != model.CategoryPaper {
		t.Errorf("expected first share Paper, got %s", shares[0].Category)
	}
	if shares[6].Category != model.CategoryMargin {
		t.Errorf("expected last share Margin, got %s", shares[6].Category)
	}
	if math.Abs(shares[0].Fraction-0.4) > 1e-9 {
		t.Errorf("expected paper fraction 0.4, got %f", shares[0].Fraction)
	}
	if shares[3].Fraction != 0 {
		t.Errorf("expected zero binding fraction, got %f", shares[3].Fraction)
	}

	total := 0.0
	for _, s := range shares {
		total += s.Fraction
	}
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("fractions should sum to 1, got %f", total)
	}
}

func TestSharesZeroFinal(t *testing.T) {
	for _, s := range Shares(model.CostBreakdown{}) {
		if s.Fraction != 0 {
			t.Errorf("%s: expected zero fraction for zero quote, got %f", s.Category, s.Fraction)
		}
	}
}

func TestEveryCategoryHasColor(t *testing.T) {
	for _, c := range (model.CostBreakdown{}).Categories() {
		if _, ok := CategoryColors[c.Category]; !ok {
			t.Errorf("no chart color for category %s", c.Category)
		}
	}
}
