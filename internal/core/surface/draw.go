package surface

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/bethropolis/scribble/internal/raster"
	"github.com/bethropolis/scribble/internal/types"
)

// ShapeKind selects the outline drawn by StrokeShape.
type ShapeKind int

const (
	ShapeLine ShapeKind = iota
	ShapeRectangle
	ShapeCircle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeLine:
		return "line"
	case ShapeRectangle:
		return "rectangle"
	case ShapeCircle:
		return "circle"
	default:
		return "unknown"
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func checkGeometry(op string, st Style, pts ...types.Point) error {
	ok := finite(st.Width) && st.Width > 0
	values := make([]float64, 0, 2*len(pts)+1)
	for _, p := range pts {
		ok = ok && p.Finite()
		values = append(values, p.X, p.Y)
	}
	if ok {
		return nil
	}
	return &InvalidGeometryError{Op: op, Values: append(values, st.Width)}
}

func (s *Surface) strokeStyle(st Style) raster.StrokeStyle {
	return raster.StrokeStyle{Width: st.Width, Cap: st.Cap, Join: st.Join}
}

// StrokeSegment draws one segment from→to. With CompositeDestinationOut it
// removes alpha instead of painting color.
func (s *Surface) StrokeSegment(from, to types.Point, st Style, mode Mode) error {
	if err := checkGeometry("stroke segment", st, from, to); err != nil {
		return err
	}
	if s.Empty() {
		return nil
	}
	s.rast.Stroke(raster.Line(from.Vec(), to.Vec()), s.strokeStyle(st), raster.Painter(s.img, st.Color, mode))
	return nil
}

// StrokeShape draws the outline of a line, rectangle (opposite corners
// start and end) or circle (centre start, radius |end-start|).
func (s *Surface) StrokeShape(kind ShapeKind, start, end types.Point, st Style) error {
	if err := checkGeometry("stroke "+kind.String(), st, start, end); err != nil {
		return err
	}
	if s.Empty() {
		return nil
	}
	paint := raster.Painter(s.img, st.Color, CompositeSourceOver)
	switch kind {
	case ShapeLine:
		s.rast.Stroke(raster.Line(start.Vec(), end.Vec()), s.strokeStyle(st), paint)
	case ShapeRectangle:
		s.rast.Stroke(raster.Rect(start.Vec(), end.Vec()), s.strokeStyle(st), paint)
	case ShapeCircle:
		radius := start.Dist(end)
		if radius == 0 {
			return nil
		}
		s.rast.Fill(raster.Ring(start.Vec(), radius, st.Width/2), paint)
	}
	return nil
}

// StrokePolyline draws an open or closed polyline with butt caps. The grid
// overlay uses it for its lines.
func (s *Surface) StrokePolyline(pts []types.Point, closed bool, st Style) error {
	if err := checkGeometry("stroke polyline", st, pts...); err != nil {
		return err
	}
	if s.Empty() || len(pts) == 0 {
		return nil
	}
	vs := make([]vec.Vec2, len(pts))
	for i, p := range pts {
		vs[i] = p.Vec()
	}
	p := raster.Polyline(vs)
	if closed {
		p = raster.Polygon(vs)
	}
	s.rast.Stroke(p, s.strokeStyle(st), raster.Painter(s.img, st.Color, CompositeSourceOver))
	return nil
}
