package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/scribble/internal/logger"
	"github.com/bethropolis/scribble/internal/types"
)

// Sink receives normalized pointer events. core.Canvas implements it.
type Sink interface {
	PointerDown(p types.Point) error
	PointerMove(p types.Point) error
	PointerUp() error
	PointerLeave() error
}

// Viewport places the surface inside host coordinates. Host units are
// cells for the terminal and device-independent pixels for the window.
type Viewport struct {
	X, Y          float64 // top-left of the surface in host units
	Width, Height float64 // visible extent in host units
	ScaleX        float64 // surface pixels per host unit
	ScaleY        float64
}

// ToSurface converts host coordinates to surface-local pixels.
func (v Viewport) ToSurface(hx, hy float64) types.Point {
	sx, sy := v.ScaleX, v.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return types.Pt((hx-v.X)*sx, (hy-v.Y)*sy)
}

// Contains reports whether a host coordinate is over the surface.
func (v Viewport) Contains(hx, hy float64) bool {
	return hx >= v.X && hy >= v.Y && hx < v.X+v.Width && hy < v.Y+v.Height
}

// FirstTouch returns the primary point of a multi-touch event.
func FirstTouch(touches []types.Point) (types.Point, bool) {
	if len(touches) == 0 {
		return types.Point{}, false
	}
	return touches[0], true
}

// Adapter turns host pointer events into surface-local gestures. Leaving
// the viewport while pressed ends the gesture as a pointer-leave.
type Adapter struct {
	sink    Sink
	view    Viewport
	pressed bool
}

// NewAdapter returns an adapter with an identity viewport of zero size;
// call SetViewport before feeding events.
func NewAdapter(sink Sink) *Adapter {
	return &Adapter{sink: sink, view: Viewport{ScaleX: 1, ScaleY: 1}}
}

// SetViewport updates the mapping, typically after a host resize.
func (a *Adapter) SetViewport(v Viewport) { a.view = v }

// Viewport returns the current mapping.
func (a *Adapter) Viewport() Viewport { return a.view }

// Pressed reports whether a gesture is being tracked.
func (a *Adapter) Pressed() bool { return a.pressed }

// Down starts a gesture when the point is over the surface.
func (a *Adapter) Down(hx, hy float64) error {
	if !a.view.Contains(hx, hy) {
		return nil
	}
	a.pressed = true
	return a.sink.PointerDown(a.view.ToSurface(hx, hy))
}

// Move extends the gesture, or ends it with a leave when the pointer
// exits the viewport. Moves without a press are ignored.
func (a *Adapter) Move(hx, hy float64) error {
	if !a.pressed {
		return nil
	}
	if !a.view.Contains(hx, hy) {
		return a.Leave()
	}
	return a.sink.PointerMove(a.view.ToSurface(hx, hy))
}

// Up ends the gesture.
func (a *Adapter) Up() error {
	if !a.pressed {
		return nil
	}
	a.pressed = false
	return a.sink.PointerUp()
}

// Leave ends the gesture at its last point.
func (a *Adapter) Leave() error {
	if !a.pressed {
		return nil
	}
	a.pressed = false
	logger.DebugTagf("gesture", "pointer left the canvas")
	return a.sink.PointerLeave()
}

// Touch handles a touch event using its first point. An empty touch list
// ends the gesture.
func (a *Adapter) Touch(touches []types.Point) error {
	p, ok := FirstTouch(touches)
	if !ok {
		return a.Up()
	}
	if a.pressed {
		return a.Move(p.X, p.Y)
	}
	return a.Down(p.X, p.Y)
}

// HandleMouse feeds a terminal mouse event. tcell reports a held button on
// every motion event and ButtonNone on release. Positions are taken at
// the cell centre.
func (a *Adapter) HandleMouse(ev *tcell.EventMouse) error {
	x, y := ev.Position()
	hx, hy := float64(x)+0.5, float64(y)+0.5

	if ev.Buttons()&tcell.Button1 != 0 {
		if a.pressed {
			return a.Move(hx, hy)
		}
		return a.Down(hx, hy)
	}
	return a.Up()
}
