// Package engine implements the sheet fitting and quotation pipeline.
// Every function here is pure: the same inputs always give the same outputs.
package engine

import (
	"fmt"
	"iter"
	"math"

	"github.com/piwi3910/PrintCost/internal/model"
)

// fitCount returns how many whole cells of size cell fit along span, as a
// plain floor of span/cell.
func fitCount(span, cell float64) int {
	if cell <= 0 || span <= 0 {
		return 0
	}
	return int(math.Floor(span / cell))
}

// Fit decides the best axis-aligned orientation of unit on sheet and the
// number of sheets needed for totalUnits. Ties between the two orientations
// resolve to Standard. It returns model.ErrInfeasibleFit when not a single
// unit fits.
func Fit(unit, sheet model.Dimensions, totalUnits int) (model.FitResult, error) {
	fitStandard := fitCount(sheet.Width, unit.Width) * fitCount(sheet.Height, unit.Height)
	fitRotated := fitCount(sheet.Width, unit.Height) * fitCount(sheet.Height, unit.Width)

	result := model.FitResult{
		Unit:           unit,
		Sheet:          sheet,
		FitStandard:    fitStandard,
		FitRotated:     fitRotated,
		PiecesPerSheet: fitStandard,
		Orientation:    model.OrientationStandard,
		TotalUnits:     totalUnits,
	}
	if fitRotated > fitStandard {
		result.PiecesPerSheet = fitRotated
		result.Orientation = model.OrientationRotated
	}

	if result.PiecesPerSheet == 0 {
		return model.FitResult{}, fmt.Errorf("%w: unit %gx%g, sheet %gx%g",
			model.ErrInfeasibleFit, unit.Width, unit.Height, sheet.Width, sheet.Height)
	}

	// Integer ceiling division
	if totalUnits > 0 {
		result.SheetsRequired = (totalUnits + result.PiecesPerSheet - 1) / result.PiecesPerSheet
	}
	return result, nil
}

// Layout yields the unit cells of one sheet in row-major order using the
// winning orientation's grid. Leftover trim area is not represented.
func Layout(fit model.FitResult) iter.Seq[model.Rect] {
	draw := fit.DrawSize()
	cols := fitCount(fit.Sheet.Width, draw.Width)
	rows := fitCount(fit.Sheet.Height, draw.Height)

	return func(yield func(model.Rect) bool) {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				rect := model.Rect{
					X0: float64(c) * draw.Width,
					Y0: float64(r) * draw.Height,
					X1: float64(c+1) * draw.Width,
					Y1: float64(r+1) * draw.Height,
				}
				if !yield(rect) {
					return
				}
			}
		}
	}
}

// LayoutRects collects Layout into a slice.
func LayoutRects(fit model.FitResult) []model.Rect {
	var rects []model.Rect
	for r := range Layout(fit) {
		rects = append(rects, r)
	}
	return rects
}
