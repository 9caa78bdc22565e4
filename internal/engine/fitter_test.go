package engine

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PrintCost/internal/model"
)

func TestFit_A4OnParentSheet(t *testing.T) {
	fit, err := Fit(model.Dim(8.27, 11.69), model.Dim(25, 36), 1000)
	require.NoError(t, err)

	assert.Equal(t, 9, fit.FitStandard)
	assert.Equal(t, 8, fit.FitRotated)
	assert.Equal(t, 9, fit.PiecesPerSheet)
	assert.Equal(t, model.OrientationStandard, fit.Orientation)
	assert.Equal(t, 112, fit.SheetsRequired)
	assert.Equal(t, 1000, fit.TotalUnits)
}

func TestFit_TieFavorsStandard(t *testing.T) {
	fit, err := Fit(model.Dim(2, 3), model.Dim(6, 6), 10)
	require.NoError(t, err)

	assert.Equal(t, fit.FitStandard, fit.FitRotated, "both orientations should yield the same count")
	assert.Equal(t, model.OrientationStandard, fit.Orientation)
	assert.Equal(t, 6, fit.PiecesPerSheet)
	assert.Equal(t, 2, fit.SheetsRequired)
}

func TestFit_RotatedWins(t *testing.T) {
	fit, err := Fit(model.Dim(2, 5), model.Dim(10, 4), 9)
	require.NoError(t, err)

	assert.Equal(t, 0, fit.FitStandard)
	assert.Equal(t, 4, fit.FitRotated)
	assert.Equal(t, model.OrientationRotated, fit.Orientation)
	assert.Equal(t, 3, fit.SheetsRequired)
}

func TestFit_Infeasible(t *testing.T) {
	_, err := Fit(model.Dim(10, 10), model.Dim(5, 5), 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInfeasibleFit))
	assert.Contains(t, err.Error(), "10x10")
}

func TestFit_ExactMultiple(t *testing.T) {
	fit, err := Fit(model.Dim(5, 5), model.Dim(10, 10), 8)
	require.NoError(t, err)
	assert.Equal(t, 4, fit.PiecesPerSheet)
	assert.Equal(t, 2, fit.SheetsRequired)
}

func TestFit_PlainFloorOfQuotient(t *testing.T) {
	// 3.3 / 1.1 evaluates to 2.9999999999999996 in float64
	fit, err := Fit(model.Dim(1.1, 1.1), model.Dim(3.3, 3.3), 10)
	require.NoError(t, err)
	assert.Equal(t, 4, fit.PiecesPerSheet)
	assert.Equal(t, 3, fit.SheetsRequired)
	assert.Len(t, LayoutRects(fit), 4)
}

func TestFit_MarginallyOversizedUnitIsInfeasible(t *testing.T) {
	_, err := Fit(model.Dim(10.000000005, 10.000000005), model.Dim(10, 10), 100)
	assert.ErrorIs(t, err, model.ErrInfeasibleFit)
}

func TestFit_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		unit := model.Dim(1+rng.Float64()*12, 1+rng.Float64()*12)
		sheet := model.Dim(10+rng.Float64()*30, 10+rng.Float64()*30)
		total := 1 + rng.Intn(5000)

		std := int(math.Floor(sheet.Width/unit.Width)) * int(math.Floor(sheet.Height/unit.Height))
		rot := int(math.Floor(sheet.Width/unit.Height)) * int(math.Floor(sheet.Height/unit.Width))
		best := std
		if rot > best {
			best = rot
		}

		fit, err := Fit(unit, sheet, total)
		if best == 0 {
			assert.ErrorIs(t, err, model.ErrInfeasibleFit)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, best, fit.PiecesPerSheet, "unit %v sheet %v", unit, sheet)
		assert.Equal(t, int(math.Ceil(float64(total)/float64(best))), fit.SheetsRequired)
		if std >= rot {
			assert.Equal(t, model.OrientationStandard, fit.Orientation)
		} else {
			assert.Equal(t, model.OrientationRotated, fit.Orientation)
		}
		assert.GreaterOrEqual(t, fit.SheetsRequired*fit.PiecesPerSheet, total)
		assert.Less(t, fit.Overrun(), fit.PiecesPerSheet)
	}
}

func TestLayout_RowMajorGrid(t *testing.T) {
	fit, err := Fit(model.Dim(8.27, 11.69), model.Dim(25, 36), 1000)
	require.NoError(t, err)

	rects := LayoutRects(fit)
	require.Len(t, rects, 9)

	assert.Equal(t, model.Rect{X0: 0, Y0: 0, X1: 8.27, Y1: 11.69}, rects[0])
	assert.InDelta(t, 8.27, rects[1].X0, 1e-9, "second cell should be next column of first row")
	assert.InDelta(t, 0.0, rects[1].Y0, 1e-9)
	assert.InDelta(t, 0.0, rects[3].X0, 1e-9, "fourth cell should start the second row")
	assert.InDelta(t, 11.69, rects[3].Y0, 1e-9)

	last := rects[8]
	assert.InDelta(t, 16.54, last.X0, 1e-9)
	assert.InDelta(t, 23.38, last.Y0, 1e-9)
	assert.InDelta(t, 24.81, last.X1, 1e-9)
	assert.InDelta(t, 35.07, last.Y1, 1e-9)

	for _, r := range rects {
		assert.LessOrEqual(t, r.X1, fit.Sheet.Width+1e-9)
		assert.LessOrEqual(t, r.Y1, fit.Sheet.Height+1e-9)
	}
}

func TestLayout_UsesRotatedCell(t *testing.T) {
	fit, err := Fit(model.Dim(2, 5), model.Dim(10, 4), 4)
	require.NoError(t, err)

	rects := LayoutRects(fit)
	require.Len(t, rects, fit.PiecesPerSheet)
	for _, r := range rects {
		assert.InDelta(t, 5.0, r.Width(), 1e-9)
		assert.InDelta(t, 2.0, r.Height(), 1e-9)
	}
}

func TestLayout_StopsEarly(t *testing.T) {
	fit, err := Fit(model.Dim(1, 1), model.Dim(10, 10), 1)
	require.NoError(t, err)

	count := 0
	for range Layout(fit) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}
