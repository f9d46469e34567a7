package raster

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// Line returns an open two-point path.
func Line(a, b vec.Vec2) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdMoveTo, []vec.Vec2{a}) {
			return
		}
		yield(path.CmdLineTo, []vec.Vec2{b})
	}
}

// Rect returns the closed rectangle with opposite corners a and b.
// Either corner may be the larger one.
func Rect(a, b vec.Vec2) path.Path {
	return Polygon([]vec.Vec2{
		{X: a.X, Y: a.Y},
		{X: b.X, Y: a.Y},
		{X: b.X, Y: b.Y},
		{X: a.X, Y: b.Y},
	})
}

// Polygon returns a closed path through pts.
func Polygon(pts []vec.Vec2) path.Path {
	return polyPath(pts, true)
}

// Polyline returns an open path through pts.
func Polyline(pts []vec.Vec2) path.Path {
	return polyPath(pts, false)
}

func polyPath(pts []vec.Vec2, closed bool) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if len(pts) == 0 {
			return
		}
		if !yield(path.CmdMoveTo, []vec.Vec2{pts[0]}) {
			return
		}
		for _, v := range pts[1:] {
			if !yield(path.CmdLineTo, []vec.Vec2{v}) {
				return
			}
		}
		if closed {
			yield(path.CmdClose, nil)
		}
	}
}

// Circle returns a closed circle built from four cubic arcs. Positive
// circles have positive signed area; negative ones run the other way and
// cut holes when combined with a positive outline.
func Circle(c vec.Vec2, radius float64, positive bool) path.Path {
	s := 1.0
	if !positive {
		s = -1
	}
	k := kappa * radius
	return func(yield func(path.Command, []vec.Vec2) bool) {
		pt := func(x, y float64) vec.Vec2 {
			return vec.Vec2{X: c.X + x, Y: c.Y + s*y}
		}
		if !yield(path.CmdMoveTo, []vec.Vec2{pt(radius, 0)}) {
			return
		}
		quarters := [4][3]vec.Vec2{
			{pt(radius, k), pt(k, radius), pt(0, radius)},
			{pt(-k, radius), pt(-radius, k), pt(-radius, 0)},
			{pt(-radius, -k), pt(-k, -radius), pt(0, -radius)},
			{pt(k, -radius), pt(radius, -k), pt(radius, 0)},
		}
		for _, q := range quarters {
			if !yield(path.CmdCubeTo, q[:]) {
				return
			}
		}
		yield(path.CmdClose, nil)
	}
}

// Ring returns the fill region of a circle of the given radius stroked with
// halfWidth on each side. When the stroke swallows the centre the ring
// degenerates to a disc.
func Ring(c vec.Vec2, radius, halfWidth float64) path.Path {
	if radius-halfWidth <= 0 {
		return Circle(c, radius+halfWidth, true)
	}
	return Concat(Circle(c, radius+halfWidth, true), Circle(c, radius-halfWidth, false))
}

// Concat joins paths into one.
func Concat(paths ...path.Path) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for _, p := range paths {
			for cmd, pts := range p {
				if !yield(cmd, pts) {
					return
				}
			}
		}
	}
}
