// Package ui provides the PrintCost application UI components.
//
// This file provides tooltip-enabled helpers using the fyne-tooltip library.

package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
)

// newIconButtonWithTooltip creates an icon-only button with a tooltip that appears on hover.
func newIconButtonWithTooltip(icon fyne.Resource, tooltip string, tapped func()) *ttwidget.Button {
	btn := ttwidget.NewButtonWithIcon("", icon, tapped)
	btn.SetToolTip(tooltip)
	return btn
}

// newInfoButton creates a small info icon that shows hint on hover.
func newInfoButton(hint string) *ttwidget.Button {
	return newIconButtonWithTooltip(theme.InfoIcon(), hint, func() {})
}
