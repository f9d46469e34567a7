// Package grid renders the alignment grid drawn above the canvas. The grid
// lives in its own layer and never touches the drawing surface or history.
package grid

import (
	"image"
	"image/color"

	"seehuhn.de/go/pdf/graphics"

	"github.com/bethropolis/scribble/internal/core/surface"
	"github.com/bethropolis/scribble/internal/logger"
	"github.com/bethropolis/scribble/internal/types"
)

// DefaultStep is the spacing between grid lines in pixels.
const DefaultStep = 20

// DefaultColor is the grid line color, #e5e7eb.
var DefaultColor = color.NRGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}

// Overlay is a transparent layer holding the grid lines.
type Overlay struct {
	step    int
	color   color.NRGBA
	visible bool
	layer   *surface.Surface
}

// New returns a hidden w×h overlay. Non-positive steps fall back to DefaultStep.
func New(w, h, step int, c color.NRGBA) *Overlay {
	if step <= 0 {
		step = DefaultStep
	}
	return &Overlay{
		step:  step,
		color: c,
		layer: surface.New(w, h),
	}
}

// Visible reports whether the grid is shown.
func (o *Overlay) Visible() bool { return o.visible }

// Step returns the line spacing.
func (o *Overlay) Step() int { return o.step }

// Image returns the layer. It is fully transparent while hidden.
func (o *Overlay) Image() *image.NRGBA { return o.layer.Image() }

// SetVisible shows or hides the grid.
func (o *Overlay) SetVisible(v bool) {
	if o.visible == v {
		return
	}
	o.visible = v
	o.redraw()
}

// Toggle flips visibility and returns the new state.
func (o *Overlay) Toggle() bool {
	o.SetVisible(!o.visible)
	return o.visible
}

// Resize reallocates the layer and redraws it for the new size.
func (o *Overlay) Resize(w, h int) {
	o.layer.Initialize(w, h)
	o.redraw()
}

// Positions returns the centre coordinate of every line along an axis of
// the given length. Lines sit on half pixels so a 1px stroke fills one
// column; a line at the far edge is pulled into the last column.
func Positions(length, step int) []float64 {
	var out []float64
	for v := 0; v <= length; v += step {
		out = append(out, min(float64(v)+0.5, float64(length)-0.5))
	}
	return out
}

func (o *Overlay) redraw() {
	o.layer.Clear()
	if !o.visible || o.layer.Empty() {
		return
	}

	w, h := float64(o.layer.Width()), float64(o.layer.Height())
	st := surface.Style{
		Color: o.color,
		Width: 1,
		Cap:   graphics.LineCapButt,
		Join:  graphics.LineJoinMiter,
	}

	var lines [][]types.Point
	for _, x := range Positions(o.layer.Width(), o.step) {
		lines = append(lines, []types.Point{types.Pt(x, 0), types.Pt(x, h)})
	}
	for _, y := range Positions(o.layer.Height(), o.step) {
		lines = append(lines, []types.Point{types.Pt(0, y), types.Pt(w, y)})
	}
	for _, l := range lines {
		if err := o.layer.StrokePolyline(l, false, st); err != nil {
			logger.DebugTagf("draw", "grid line skipped: %v", err)
		}
	}

	border := []types.Point{
		types.Pt(0.5, 0.5),
		types.Pt(w-0.5, 0.5),
		types.Pt(w-0.5, h-0.5),
		types.Pt(0.5, h-0.5),
	}
	if err := o.layer.StrokePolyline(border, true, st); err != nil {
		logger.DebugTagf("draw", "grid border skipped: %v", err)
	}
}
