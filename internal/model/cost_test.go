package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		symbol string
		amount string
		want   string
	}{
		{"Rs.", "1680", "Rs.1,680.00"},
		{"$", "1022.4", "$1,022.40"},
		{"€", "0", "€0.00"},
		{"", "999.999", "1,000.00"},
		{"$", "1234567.891", "$1,234,567.89"},
		{"$", "-42.5", "-$42.50"},
		{"Rs.", "2.345", "Rs.2.35"},
		{"$", "-0.001", "$0.00"},
		{"Rs.", "98765432.1", "Rs.98,765,432.10"},
	}
	for _, c := range cases {
		got := FormatMoney(c.symbol, decimal.RequireFromString(c.amount))
		if got != c.want {
			t.Errorf("FormatMoney(%q, %s) = %q, want %q", c.symbol, c.amount, got, c.want)
		}
	}
}

func TestCategoriesOrder(t *testing.T) {
	b := CostBreakdown{
		Paper:       decimal.NewFromInt(1),
		Printing:    decimal.NewFromInt(2),
		Cutting:     decimal.NewFromInt(3),
		Binding:     decimal.NewFromInt(4),
		Packing:     decimal.NewFromInt(5),
		Overhead:    decimal.NewFromInt(6),
		MarginValue: decimal.NewFromInt(7),
	}

	cats := b.Categories()
	want := []Category{CategoryPaper, CategoryPrinting, CategoryCutting, CategoryBinding, CategoryPacking, CategoryOverhead, CategoryMargin}
	if len(cats) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(cats))
	}
	for i, c := range cats {
		if c.Category != want[i] {
			t.Errorf("category %d: expected %s, got %s", i, want[i], c.Category)
		}
		if !c.Amount.Equal(decimal.NewFromInt(int64(i + 1))) {
			t.Errorf("category %s: expected amount %d, got %s", c.Category, i+1, c.Amount)
		}
	}

	if len(b.Expenses()) != 6 {
		t.Errorf("expected 6 expense categories, got %d", len(b.Expenses()))
	}
}
