// Package ui provides the PrintCost application UI components.
//
// This file defines a custom compact Fyne theme for a dense estimator layout.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PrintCostTheme wraps the default Fyne theme with compact sizing overrides
// so the whole job form fits beside the quotation.
type PrintCostTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	system  bool
}

// NewPrintCostTheme creates a new PrintCostTheme that follows the system variant.
func NewPrintCostTheme() *PrintCostTheme {
	return &PrintCostTheme{
		base:   theme.DefaultTheme(),
		system: true,
	}
}

// NewPrintCostThemeWithVariant creates a PrintCostTheme with a fixed light/dark variant.
func NewPrintCostThemeWithVariant(variant fyne.ThemeVariant) *PrintCostTheme {
	return &PrintCostTheme{
		base:    theme.DefaultTheme(),
		variant: variant,
	}
}

// ThemeForName maps the "light", "dark" and "system" config values to a theme.
// Unknown names follow the system variant.
func ThemeForName(name string) *PrintCostTheme {
	switch name {
	case "light":
		return NewPrintCostThemeWithVariant(theme.VariantLight)
	case "dark":
		return NewPrintCostThemeWithVariant(theme.VariantDark)
	default:
		return NewPrintCostTheme()
	}
}

// Color delegates to the base theme, forcing the stored variant unless the
// theme follows the system.
func (t *PrintCostTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.system {
		return t.base.Color(name, variant)
	}
	return t.base.Color(name, t.variant)
}

// Font delegates to the base theme.
func (t *PrintCostTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *PrintCostTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *PrintCostTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
