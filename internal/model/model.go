package model

import "math"

// Orientation represents how units are laid on the parent sheet.
type Orientation int

const (
	OrientationStandard Orientation = iota // Unit width along sheet width
	OrientationRotated                     // Unit turned 90°
)

func (o Orientation) String() string {
	switch o {
	case OrientationRotated:
		return "Rotated 90°"
	default:
		return "Standard"
	}
}

// MarshalText encodes the orientation for JSON responses.
func (o Orientation) MarshalText() ([]byte, error) {
	if o == OrientationRotated {
		return []byte("rotated"), nil
	}
	return []byte("standard"), nil
}

// UnmarshalText accepts "standard" or "rotated".
func (o *Orientation) UnmarshalText(b []byte) error {
	switch string(b) {
	case "rotated", "Rotated", "Rotated 90°":
		*o = OrientationRotated
	default:
		*o = OrientationStandard
	}
	return nil
}

// Dimensions is a width/height footprint in any consistent unit (inches by default).
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Dim is shorthand for building a Dimensions value.
func Dim(w, h float64) Dimensions {
	return Dimensions{Width: w, Height: h}
}

// Rotate returns the footprint turned 90°.
func (d Dimensions) Rotate() Dimensions {
	return Dimensions{Width: d.Height, Height: d.Width}
}

// Area returns width * height.
func (d Dimensions) Area() float64 {
	return d.Width * d.Height
}

// Positive reports whether both sides are strictly positive finite numbers.
func (d Dimensions) Positive() bool {
	return d.Width > 0 && d.Height > 0 &&
		!math.IsInf(d.Width, 0) && !math.IsInf(d.Height, 0)
}

// Rect is one unit cell of a sheet layout, from (X0,Y0) to (X1,Y1).
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Width returns the horizontal extent of the cell.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical extent of the cell.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// FitResult holds the best-fit decision for one unit/sheet pair.
// It is only produced for feasible fits, so PiecesPerSheet is always > 0.
type FitResult struct {
	Unit           Dimensions  `json:"unit"`
	Sheet          Dimensions  `json:"sheet"`
	FitStandard    int         `json:"fit_standard"`    // Whole units with unit width along sheet width
	FitRotated     int         `json:"fit_rotated"`     // Whole units with the unit turned 90°
	PiecesPerSheet int         `json:"pieces_per_sheet"` // max(FitStandard, FitRotated)
	Orientation    Orientation `json:"orientation"`
	TotalUnits     int         `json:"total_units"`
	SheetsRequired int         `json:"sheets_required"`
}

// DrawSize returns the unit cell size in the winning orientation.
func (f FitResult) DrawSize() Dimensions {
	if f.Orientation == OrientationRotated {
		return f.Unit.Rotate()
	}
	return f.Unit
}

// Utilization returns the percentage of one sheet covered by placed units.
func (f FitResult) Utilization() float64 {
	sa := f.Sheet.Area()
	if sa == 0 {
		return 0
	}
	return float64(f.PiecesPerSheet) * f.Unit.Area() / sa * 100.0
}

// Overrun returns how many units the last sheet produces beyond the order.
func (f FitResult) Overrun() int {
	return f.SheetsRequired*f.PiecesPerSheet - f.TotalUnits
}
