// Package gui is the desktop host: a fyne widget showing the canvas plus
// the window chrome around it.
package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"github.com/bethropolis/scribble/internal/core"
	"github.com/bethropolis/scribble/internal/input"
	"github.com/bethropolis/scribble/internal/logger"
	"github.com/bethropolis/scribble/internal/types"
)

// Board draws the surface with the grid above it and feeds pointer input
// to the canvas. One device-independent pixel is one surface pixel.
type Board struct {
	widget.BaseWidget

	canvas    *core.Canvas
	adapter   *input.Adapter
	mouseHeld bool
	touchHeld bool
	paper     color.Color

	// OnChanged runs after input that may have changed the canvas.
	OnChanged func()
}

var _ fyne.Widget = (*Board)(nil)
var _ fyne.Draggable = (*Board)(nil)
var _ desktop.Mouseable = (*Board)(nil)
var _ desktop.Hoverable = (*Board)(nil)
var _ mobile.Touchable = (*Board)(nil)

// NewBoard wraps c in a widget.
func NewBoard(c *core.Canvas, paper color.Color) *Board {
	b := &Board{
		canvas:  c,
		adapter: input.NewAdapter(c),
		paper:   paper,
	}
	b.ExtendBaseWidget(b)
	b.updateViewport()
	return b
}

// Canvas returns the drawing model.
func (b *Board) Canvas() *core.Canvas { return b.canvas }

func (b *Board) updateViewport() {
	w, h := b.canvas.Size()
	b.adapter.SetViewport(input.Viewport{
		Width:  float64(w),
		Height: float64(h),
		ScaleX: 1,
		ScaleY: 1,
	})
}

// containerResized runs the resize coordinator for the widget's new size.
func (b *Board) containerResized(size fyne.Size) {
	if b.canvas.Resize(int(size.Width), int(size.Height)) {
		b.updateViewport()
	}
}

func (b *Board) afterInput(err error) {
	if err != nil {
		logger.Errorf("Board: pointer input failed: %v", err)
	}
	// A release may have applied a deferred resize.
	b.updateViewport()
	b.Refresh()
	if b.OnChanged != nil {
		b.OnChanged()
	}
}

// MouseDown starts a gesture with the primary button.
func (b *Board) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.mouseHeld = true
	b.afterInput(b.adapter.Down(float64(e.Position.X), float64(e.Position.Y)))
}

// MouseUp ends the gesture.
func (b *Board) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.mouseHeld = false
	b.afterInput(b.adapter.Up())
}

// TouchDown starts a touch gesture. While one finger is drawing, further
// touches are ignored so only the first point steers the stroke.
func (b *Board) TouchDown(e *mobile.TouchEvent) {
	if b.adapter.Pressed() {
		return
	}
	b.touchHeld = true
	b.afterInput(b.adapter.Touch([]types.Point{touchPoint(e)}))
}

// TouchUp ends the touch gesture.
func (b *Board) TouchUp(*mobile.TouchEvent) { b.endTouch() }

// TouchCancel ends the touch gesture like a release.
func (b *Board) TouchCancel(*mobile.TouchEvent) { b.endTouch() }

func (b *Board) endTouch() {
	if !b.touchHeld {
		return
	}
	b.touchHeld = false
	b.afterInput(b.adapter.Touch(nil))
}

func touchPoint(e *mobile.TouchEvent) types.Point {
	return types.Pt(float64(e.Position.X), float64(e.Position.Y))
}

// Dragged extends the gesture. Drags without a preceding mouse or touch
// down start the gesture at the drag origin.
func (b *Board) Dragged(e *fyne.DragEvent) {
	x, y := float64(e.Position.X), float64(e.Position.Y)
	if b.touchHeld {
		b.afterInput(b.adapter.Touch([]types.Point{types.Pt(x, y)}))
		return
	}
	if !b.mouseHeld && !b.adapter.Pressed() {
		if err := b.adapter.Down(x-float64(e.Dragged.DX), y-float64(e.Dragged.DY)); err != nil {
			b.afterInput(err)
			return
		}
		b.mouseHeld = true
	}
	b.afterInput(b.adapter.Move(x, y))
}

// DragEnd ends a drag gesture.
func (b *Board) DragEnd() {
	b.mouseHeld = false
	b.touchHeld = false
	b.afterInput(b.adapter.Up())
}

// MouseIn is part of desktop.Hoverable.
func (b *Board) MouseIn(*desktop.MouseEvent) {}

// MouseMoved is part of desktop.Hoverable.
func (b *Board) MouseMoved(*desktop.MouseEvent) {}

// MouseOut ends an active gesture like leaving the drawing area does.
func (b *Board) MouseOut() {
	if b.adapter.Pressed() {
		b.afterInput(b.adapter.Leave())
	}
}

func (b *Board) CreateRenderer() fyne.WidgetRenderer {
	r := &boardRenderer{
		board:   b,
		paper:   canvas.NewRectangle(b.paper),
		surface: canvas.NewImageFromImage(b.canvas.Image()),
		grid:    canvas.NewImageFromImage(b.canvas.GridImage()),
	}
	for _, img := range []*canvas.Image{r.surface, r.grid} {
		img.ScaleMode = canvas.ImageScalePixels
		img.FillMode = canvas.ImageFillStretch
	}
	r.sync()
	return r
}

type boardRenderer struct {
	board   *Board
	paper   *canvas.Rectangle
	surface *canvas.Image
	grid    *canvas.Image
}

// sync points the images at the current buffers, which are reallocated
// on resize, and sizes them to the surface.
func (r *boardRenderer) sync() {
	c := r.board.canvas
	r.surface.Image = c.Image()
	r.grid.Image = c.GridImage()
	r.grid.Hidden = !c.GridVisible()

	w, h := c.Size()
	size := fyne.NewSize(float32(w), float32(h))
	for _, o := range r.Objects() {
		o.Move(fyne.NewPos(0, 0))
		o.Resize(size)
	}
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.board.containerResized(size)
	r.sync()
}

func (r *boardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 60)
}

func (r *boardRenderer) Refresh() {
	r.sync()
	r.paper.FillColor = r.board.paper
	r.paper.Refresh()
	r.surface.Refresh()
	r.grid.Refresh()
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.paper, r.surface, r.grid}
}

func (r *boardRenderer) Destroy() {}
