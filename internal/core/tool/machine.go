package tool

import (
	"errors"
	"image/color"

	"github.com/bethropolis/scribble/internal/core/surface"
	"github.com/bethropolis/scribble/internal/logger"
	"github.com/bethropolis/scribble/internal/types"
)

// State is the machine state.
type State int

const (
	Idle State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// Gesture is the in-progress pointer interaction. Pre is the surface as it
// was on pointer-down; shape previews are drawn on top of it.
type Gesture struct {
	Tool  Kind
	Start types.Point
	Last  types.Point
	Pre   surface.Snapshot
}

// CommitFunc records the surface once a gesture finishes.
type CommitFunc func() error

// Machine turns pointer events into draw calls on a surface.
type Machine struct {
	surface *surface.Surface
	commit  CommitFunc
	kind    Kind
	style   surface.Style
	text    string
	gesture *Gesture
}

// NewMachine returns an idle machine using the pen and the surface's style.
func NewMachine(s *surface.Surface, commit CommitFunc) *Machine {
	if commit == nil {
		commit = func() error { return nil }
	}
	return &Machine{
		surface: s,
		commit:  commit,
		kind:    Pen,
		style:   s.Style(),
		text:    "Text",
	}
}

// Tool returns the selected tool.
func (m *Machine) Tool() Kind { return m.kind }

// SetTool selects the tool for the next gesture.
func (m *Machine) SetTool(k Kind) { m.kind = k }

// Style returns the current stroke style.
func (m *Machine) Style() surface.Style { return m.style }

// SetColor changes the ink for subsequent draws.
func (m *Machine) SetColor(c color.NRGBA) {
	m.style.Color = c
	m.pushStyle()
}

// SetWidth changes the stroke width for subsequent draws.
func (m *Machine) SetWidth(w float64) {
	m.style.Width = w
	m.pushStyle()
}

func (m *Machine) pushStyle() {
	st := m.surface.Style()
	st.Color, st.Width = m.style.Color, m.style.Width
	m.surface.SetStyle(st)
}

// Text returns the content stamped by the text tool.
func (m *Machine) Text() string { return m.text }

// SetText changes the content stamped by the text tool.
func (m *Machine) SetText(s string) { m.text = s }

// State reports whether a gesture is in progress.
func (m *Machine) State() State {
	if m.gesture != nil {
		return Active
	}
	return Idle
}

// Gesture returns a copy of the active gesture.
func (m *Machine) Gesture() (Gesture, bool) {
	if m.gesture == nil {
		return Gesture{}, false
	}
	return *m.gesture, true
}

// PointerDown starts a gesture. The text tool stamps and commits at once
// and stays idle.
func (m *Machine) PointerDown(p types.Point) error {
	if m.gesture != nil {
		// A second down without an up: finish the first gesture.
		if err := m.PointerUp(); err != nil {
			return err
		}
	}

	if m.kind == Text {
		if err := m.swallow(m.surface.StampText(m.text, p, m.style)); err != nil {
			return err
		}
		logger.DebugTagf("gesture", "text %q stamped at (%.1f, %.1f)", m.text, p.X, p.Y)
		return m.commit()
	}

	m.gesture = &Gesture{
		Tool:  m.kind,
		Start: p,
		Last:  p,
		Pre:   m.surface.Snapshot(),
	}
	logger.DebugTagf("gesture", "%s down at (%.1f, %.1f)", m.kind, p.X, p.Y)
	return nil
}

// PointerMove extends the gesture. Pen and eraser draw the segment since
// the last point; shapes replace the previous preview. A non-finite point
// is dropped and the gesture keeps its last good point and preview.
func (m *Machine) PointerMove(p types.Point) error {
	g := m.gesture
	if g == nil {
		return nil
	}
	if !p.Finite() {
		logger.DebugTagf("geometry", "skipped move to non-finite point (%v, %v)", p.X, p.Y)
		return nil
	}

	var err error
	switch {
	case g.Tool == Pen:
		err = m.surface.StrokeSegment(g.Last, p, m.style, surface.CompositeSourceOver)
	case g.Tool == Eraser:
		err = m.surface.StrokeSegment(g.Last, p, m.style, surface.CompositeDestinationOut)
	case g.Tool.isShape():
		if rerr := m.surface.Restore(g.Pre); rerr != nil {
			return rerr
		}
		err = m.surface.StrokeShape(shapeOf(g.Tool), g.Start, p, m.style)
	}
	if err := m.swallow(err); err != nil {
		return err
	}
	g.Last = p
	return nil
}

// PointerUp ends the gesture and commits once. It does nothing when idle.
func (m *Machine) PointerUp() error {
	g := m.gesture
	if g == nil {
		return nil
	}
	m.gesture = nil
	logger.DebugTagf("gesture", "%s up at (%.1f, %.1f)", g.Tool, g.Last.X, g.Last.Y)
	return m.commit()
}

// Cancel drops an active gesture without committing. The pixels drawn so
// far stay on the surface.
func (m *Machine) Cancel() bool {
	if m.gesture == nil {
		return false
	}
	logger.DebugTagf("gesture", "%s cancelled", m.gesture.Tool)
	m.gesture = nil
	return true
}

// PointerLeave ends an active gesture at its last point, exactly like up.
func (m *Machine) PointerLeave() error {
	return m.PointerUp()
}

// swallow drops invalid geometry errors; the draw is skipped.
func (m *Machine) swallow(err error) error {
	var ge *surface.InvalidGeometryError
	if errors.As(err, &ge) {
		logger.DebugTagf("geometry", "skipped draw: %v", ge)
		return nil
	}
	return err
}

func shapeOf(k Kind) surface.ShapeKind {
	switch k {
	case Rectangle:
		return surface.ShapeRectangle
	case Circle:
		return surface.ShapeCircle
	default:
		return surface.ShapeLine
	}
}
