package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/PrintCost/internal/model"
)

// MillimetresPerInch converts a drawing in millimetres to inch job units
// when passed as 1/MillimetresPerInch scale.
const MillimetresPerInch = 25.4

// point is a 2D drawing coordinate.
type point struct {
	X, Y float64
}

// bounds accumulates the axis-aligned extent of a set of points.
type bounds struct {
	min, max point
	empty    bool
}

func newBounds() bounds {
	return bounds{empty: true}
}

func (b *bounds) add(p point) {
	if b.empty {
		b.min, b.max = p, p
		b.empty = false
		return
	}
	b.min.X = math.Min(b.min.X, p.X)
	b.min.Y = math.Min(b.min.Y, p.Y)
	b.max.X = math.Max(b.max.X, p.X)
	b.max.Y = math.Max(b.max.Y, p.Y)
}

func (b bounds) size() model.Dimensions {
	if b.empty {
		return model.Dimensions{}
	}
	return model.Dimensions{Width: b.max.X - b.min.X, Height: b.max.Y - b.min.Y}
}

// DXFResult holds the unit footprint derived from a die-line drawing.
type DXFResult struct {
	Unit     model.Dimensions
	Shapes   int // Entities that contributed to the footprint
	Errors   []string
	Warnings []string
}

// OK reports whether a usable footprint was found.
func (r DXFResult) OK() bool {
	return len(r.Errors) == 0 && r.Unit.Positive()
}

// ImportUnitDXF reads a die-line drawing and returns the bounding box of all
// supported geometry (LWPOLYLINE, CIRCLE, ARC, LINE) as the unit footprint.
// Coordinates are multiplied by scale; a scale <= 0 is treated as 1.
func ImportUnitDXF(path string, scale float64) DXFResult {
	result := DXFResult{}
	if scale <= 0 {
		scale = 1
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	box := newBounds()
	skipped := 0
	for _, ent := range entities {
		var pts []point
		switch e := ent.(type) {
		case *entity.LwPolyline:
			pts = lwPolylinePoints(e)
		case *entity.Circle:
			pts = circlePoints(e)
		case *entity.Arc:
			pts = arcPoints(e)
		case *entity.Line:
			pts = []point{{X: e.Start[0], Y: e.Start[1]}, {X: e.End[0], Y: e.End[1]}}
		default:
			skipped++
			continue
		}
		if len(pts) == 0 {
			continue
		}
		for _, p := range pts {
			box.add(p)
		}
		result.Shapes++
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d unsupported entities", skipped))
	}
	if result.Shapes == 0 {
		result.Errors = append(result.Errors, "No supported shapes found in DXF file")
		return result
	}

	size := box.size()
	unit := model.Dimensions{Width: size.Width * scale, Height: size.Height * scale}
	if unit.Width < 1e-6 || unit.Height < 1e-6 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Degenerate die-line footprint (%.4f x %.4f)", unit.Width, unit.Height))
		return result
	}
	result.Unit = unit
	return result
}

// lwPolylinePoints returns the vertices of a LWPOLYLINE. Bulge values on
// vertices produce interpolated arc points so rounded corners count.
func lwPolylinePoints(lw *entity.LwPolyline) []point {
	var pts []point

	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := point{X: v[0], Y: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}

		if math.Abs(bulge) > 1e-9 {
			nextIdx := (i + 1) % len(lw.Vertices)
			next := point{X: lw.Vertices[nextIdx][0], Y: lw.Vertices[nextIdx][1]}
			arc := bulgeArcPoints(current, next, bulge, 32)
			pts = append(pts, arc[:len(arc)-1]...)
		} else {
			pts = append(pts, current)
		}
	}

	return pts
}

// bulgeArcPoints generates points along an arc defined by two endpoints and a
// DXF bulge factor. The bulge is the tangent of 1/4 the included angle.
func bulgeArcPoints(p1, p2 point, bulge float64, numSegments int) []point {
	mx := (p1.X + p2.X) / 2
	my := (p1.Y + p2.Y) / 2
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	chordLen := math.Sqrt(dx*dx + dy*dy)
	if chordLen < 1e-9 {
		return []point{p1, p2}
	}

	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	// Center lies on the chord's perpendicular, opposite the bulge
	perpX := -dy / chordLen
	perpY := dx / chordLen
	dist := radius - sagitta
	if bulge > 0 {
		perpX, perpY = -perpX, -perpY
	}
	cx := mx + perpX*dist
	cy := my + perpY*dist

	startAngle := math.Atan2(p1.Y-cy, p1.X-cx)
	endAngle := math.Atan2(p2.Y-cy, p2.X-cx)
	if bulge < 0 {
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else if endAngle < startAngle {
		endAngle += 2 * math.Pi
	}

	pts := make([]point, 0, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startAngle + t*(endAngle-startAngle)
		pts = append(pts, point{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		})
	}
	return pts
}

// circlePoints returns the four axis extremes of a circle, which bound it exactly.
func circlePoints(c *entity.Circle) []point {
	cx, cy, r := c.Center[0], c.Center[1], c.Radius
	return []point{{cx - r, cy}, {cx + r, cy}, {cx, cy - r}, {cx, cy + r}}
}

// arcPoints returns the arc endpoints plus every axis extreme (0, 90, 180
// and 270 degrees) the counter-clockwise sweep passes through.
func arcPoints(a *entity.Arc) []point {
	cx, cy, r := a.Circle.Center[0], a.Circle.Center[1], a.Circle.Radius
	at := func(deg float64) point {
		rad := deg * math.Pi / 180
		return point{cx + r*math.Cos(rad), cy + r*math.Sin(rad)}
	}

	start := math.Mod(a.Angle[0], 360)
	if start < 0 {
		start += 360
	}
	sweep := math.Mod(a.Angle[1]-a.Angle[0], 360)
	if sweep <= 0 {
		sweep += 360
	}

	pts := []point{at(start), at(start + sweep)}
	for q := math.Ceil(start/90) * 90; q < start+sweep; q += 90 {
		pts = append(pts, at(q))
	}
	return pts
}
