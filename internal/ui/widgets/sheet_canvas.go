package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PrintCost/internal/engine"
	"github.com/piwi3910/PrintCost/internal/model"
)

// Unit colors alternate so neighbouring cells stay distinguishable.
var unitColors = []color.NRGBA{
	{R: 144, G: 202, B: 249, A: 220},
	{R: 100, G: 181, B: 246, A: 220},
}

var (
	sheetColor  = color.NRGBA{R: 250, G: 245, B: 235, A: 255} // paper
	trimColor   = color.NRGBA{R: 210, G: 180, B: 140, A: 160}
	borderColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	cellStroke  = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
)

// SheetCanvas renders one parent sheet with the unit grid of a fit.
// A zero FitResult draws an empty placeholder of the configured size.
type SheetCanvas struct {
	widget.BaseWidget
	fit       model.FitResult
	maxWidth  float32
	maxHeight float32
}

// NewSheetCanvas creates a canvas scaled to fit within maxW x maxH.
func NewSheetCanvas(fit model.FitResult, maxW, maxH float32) *SheetCanvas {
	sc := &SheetCanvas{
		fit:       fit,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	sc.ExtendBaseWidget(sc)
	return sc
}

// SetFit replaces the displayed fit and redraws.
func (sc *SheetCanvas) SetFit(fit model.FitResult) {
	sc.fit = fit
	sc.Refresh()
}

// Clear removes the displayed fit.
func (sc *SheetCanvas) Clear() {
	sc.SetFit(model.FitResult{})
}

func (sc *SheetCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newSheetCanvasRenderer(sc)
}

// scale returns the sheet-to-pixel factor, or 0 when there is no sheet.
func (sc *SheetCanvas) scale() float32 {
	sheetW := float32(sc.fit.Sheet.Width)
	sheetH := float32(sc.fit.Sheet.Height)
	if sheetW <= 0 || sheetH <= 0 {
		return 0
	}
	return min(sc.maxWidth/sheetW, sc.maxHeight/sheetH)
}

type sheetCanvasRenderer struct {
	sc      *SheetCanvas
	objects []fyne.CanvasObject
}

func newSheetCanvasRenderer(sc *SheetCanvas) *sheetCanvasRenderer {
	r := &sheetCanvasRenderer{sc: sc}
	r.rebuild()
	return r
}

func (r *sheetCanvasRenderer) rebuild() {
	r.objects = nil

	fit := r.sc.fit
	scale := r.sc.scale()
	if scale == 0 || fit.PiecesPerSheet == 0 {
		placeholder := canvas.NewText("No layout", color.NRGBA{R: 120, G: 120, B: 120, A: 255})
		placeholder.Move(fyne.NewPos(8, 8))
		r.objects = append(r.objects, placeholder)
		return
	}

	canvasW := float32(fit.Sheet.Width) * scale
	canvasH := float32(fit.Sheet.Height) * scale

	// Whole sheet is drawn as trim first, the unit grid covers the used area
	bg := canvas.NewRectangle(sheetColor)
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, bg)

	trim := canvas.NewRectangle(trimColor)
	trim.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, trim)

	draw := fit.DrawSize()
	for i, rect := range engine.LayoutRects(fit) {
		cw := float32(rect.Width()) * scale
		ch := float32(rect.Height()) * scale
		cx := float32(rect.X0) * scale
		cy := float32(rect.Y0) * scale

		cell := canvas.NewRectangle(unitColors[i%len(unitColors)])
		cell.StrokeColor = cellStroke
		cell.StrokeWidth = 1
		cell.Resize(fyne.NewSize(cw, ch))
		cell.Move(fyne.NewPos(cx, cy))
		r.objects = append(r.objects, cell)

		// Label (only if big enough)
		if cw > 40 && ch > 16 {
			label := canvas.NewText(fmt.Sprintf("%gx%g", draw.Width, draw.Height), color.Black)
			label.TextSize = 10
			label.Move(fyne.NewPos(cx+3, cy+2))
			r.objects = append(r.objects, label)
		}
	}

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = borderColor
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	r.objects = append(r.objects, border)
}

func (r *sheetCanvasRenderer) Layout(size fyne.Size)        {}
func (r *sheetCanvasRenderer) Refresh()                     { r.rebuild(); canvas.Refresh(r.sc) }
func (r *sheetCanvasRenderer) Destroy()                     {}
func (r *sheetCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *sheetCanvasRenderer) MinSize() fyne.Size {
	scale := r.sc.scale()
	if scale == 0 {
		return fyne.NewSize(r.sc.maxWidth, r.sc.maxHeight)
	}
	return fyne.NewSize(float32(r.sc.fit.Sheet.Width)*scale, float32(r.sc.fit.Sheet.Height)*scale)
}
