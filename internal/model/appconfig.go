package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currencies offered by the front-ends. The symbol between parentheses is
// used for display only; no conversion is performed.
var Currencies = []string{"PKR (Rs.)", "INR (₹)", "USD ($)", "EUR (€)"}

// CurrencySymbol extracts the symbol from a "PKR (Rs.)" style label.
// Labels without parentheses are returned unchanged.
func CurrencySymbol(label string) string {
	_, rest, ok := strings.Cut(label, "(")
	if !ok {
		return label
	}
	return strings.TrimSuffix(strings.TrimSpace(rest), ")")
}

// AppConfig holds application-wide preferences and the defaults used to
// seed a new job. Every field can be overridden from the environment with
// the PRINTCOST_ prefix.
type AppConfig struct {
	Currency string `json:"currency" env:"CURRENCY"` // Label from Currencies

	DefaultPaper       string  `json:"default_paper" env:"DEFAULT_PAPER"`
	DefaultPlate       string  `json:"default_plate" env:"DEFAULT_PLATE"`
	DefaultSheetWidth  float64 `json:"default_sheet_width" env:"SHEET_WIDTH"`
	DefaultSheetHeight float64 `json:"default_sheet_height" env:"SHEET_HEIGHT"`
	DefaultTotalUnits  int     `json:"default_total_units" env:"TOTAL_UNITS"`
	DefaultNumColors   int     `json:"default_num_colors" env:"NUM_COLORS"`
	DefaultCutOps      int     `json:"default_cut_ops" env:"CUT_OPS"`

	DefaultPricePerSheet decimal.Decimal `json:"default_price_per_sheet" env:"PRICE_PER_SHEET"`
	DefaultPrintRate     decimal.Decimal `json:"default_print_rate" env:"PRINT_RATE"`
	DefaultCutRate       decimal.Decimal `json:"default_cut_rate" env:"CUT_RATE"`
	DefaultDieCutCost    decimal.Decimal `json:"default_die_cut_cost" env:"DIE_CUT_COST"`
	DefaultBindingRate   decimal.Decimal `json:"default_binding_rate" env:"BINDING_RATE"`
	DefaultPackingRate   decimal.Decimal `json:"default_packing_rate" env:"PACKING_RATE"`
	DefaultOverhead      decimal.Decimal `json:"default_overhead" env:"OVERHEAD"`
	DefaultMarginPercent decimal.Decimal `json:"default_margin_percent" env:"MARGIN_PERCENT"`

	// Application preferences
	Theme    string `json:"theme" env:"THEME"` // "light", "dark", "system"
	LogLevel string `json:"log_level" env:"LOG_LEVEL"`
	APIAddr  string `json:"api_addr" env:"API_ADDR"`
}

// DefaultAppConfig returns an AppConfig populated with the stock defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Currency:             Currencies[0],
		DefaultPaper:         "A4",
		DefaultPlate:         "Rota",
		DefaultSheetWidth:    25.0,
		DefaultSheetHeight:   36.0,
		DefaultTotalUnits:    1000,
		DefaultNumColors:     1,
		DefaultCutOps:        4,
		DefaultPricePerSheet: decimal.NewFromInt(15),
		DefaultPrintRate:     decimal.RequireFromString("0.05"),
		DefaultCutRate:       decimal.NewFromInt(10),
		DefaultDieCutCost:    decimal.Zero,
		DefaultBindingRate:   decimal.RequireFromString("0.20"),
		DefaultPackingRate:   decimal.RequireFromString("0.10"),
		DefaultOverhead:      decimal.NewFromInt(500),
		DefaultMarginPercent: decimal.NewFromInt(20),
		Theme:                "system",
		LogLevel:             "info",
		APIAddr:              ":8080",
	}
}

// CurrencySymbol returns the display symbol of the configured currency.
func (c AppConfig) CurrencySymbol() string {
	return CurrencySymbol(c.Currency)
}

// NewJobSpec seeds a JobSpec from the configured defaults.
func (c AppConfig) NewJobSpec() JobSpec {
	return JobSpec{
		Paper:               PresetPaper(c.DefaultPaper),
		Sheet:               Dimensions{Width: c.DefaultSheetWidth, Height: c.DefaultSheetHeight},
		TotalUnits:          c.DefaultTotalUnits,
		Plate:               PresetPlate(c.DefaultPlate),
		Currency:            c.CurrencySymbol(),
		PricePerSheet:       c.DefaultPricePerSheet,
		NumColors:           c.DefaultNumColors,
		PrintRatePerColor:   c.DefaultPrintRate,
		CutOps:              c.DefaultCutOps,
		CutRate:             c.DefaultCutRate,
		DieCutCost:          c.DefaultDieCutCost,
		BindingRatePerUnit:  c.DefaultBindingRate,
		PackingRatePerSheet: c.DefaultPackingRate,
		OverheadFixed:       c.DefaultOverhead,
		MarginPercent:       c.DefaultMarginPercent,
	}
}
