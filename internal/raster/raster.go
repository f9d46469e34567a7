// Package raster converts vector paths into anti-aliased pixel coverage
// and composites that coverage onto NRGBA images.
//
// Paths use the seehuhn.de/go/geom iterator representation. Filling uses
// the nonzero winding rule; every polygon produced by the stroker is
// positively oriented, so overlapping stroke pieces union cleanly.
package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// EmitFunc receives the coverage of one pixel row, starting at column xMin.
// Values are in [0, 1]. The slice is only valid during the call.
type EmitFunc func(y, xMin int, coverage []float32)

// Rasterizer turns paths into coverage rows. It reuses its buffers between
// calls and is not safe for concurrent use.
type Rasterizer struct {
	// Clip bounds the output. Coordinates must be integer-aligned.
	Clip rect.Rect

	// Flatness is the maximum distance in pixels between a curve and its
	// polygonal approximation.
	Flatness float64

	acc []float32 // signed area deltas, one row of stride w+2 per scanline
	cov []float32 // output row
}

// polyline is one flattened subpath.
type polyline struct {
	pts    []vec.Vec2
	closed bool
}

const defaultFlatness = 0.25

// NewRasterizer returns a Rasterizer clipped to clip.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		Clip:     clip,
		Flatness: defaultFlatness,
	}
}

// ClipTo returns an integer clip rectangle for a w×h surface.
func ClipTo(w, h int) rect.Rect {
	return rect.Rect{LLx: 0, LLy: 0, URx: float64(w), URy: float64(h)}
}

func (r *Rasterizer) flatness() float64 {
	if r.Flatness > 0 {
		return r.Flatness
	}
	return defaultFlatness
}

// flattenQuadratic appends points approximating the quadratic Bézier p0,p1,p2
// (excluding p0).
func (r *Rasterizer) flattenQuadratic(p0, p1, p2 vec.Vec2, add func(vec.Vec2)) {
	// e = (P0 - 2*P1 + P2) / 4
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)

	n := 1
	if errLen := e.Length(); errLen > r.flatness() {
		n = int(math.Ceil(math.Sqrt(errLen / r.flatness())))
	}
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		add(p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t)))
	}
}

// flattenCubic appends points approximating the cubic Bézier p0..p3
// (excluding p0). The segment count follows Wang's formula.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2, add func(vec.Vec2)) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2)
	d2 := p1.Sub(p2.Mul(2)).Add(p3)

	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		if nf := math.Sqrt(3 * m / (4 * r.flatness())); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		add(p0.Mul(omt2 * omt).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t2 * t)))
	}
}

// flatten converts p into polylines, one per subpath. Drawing commands
// before the first MoveTo, or after a Close without a new MoveTo, are ignored.
func (r *Rasterizer) flatten(p path.Path) []polyline {
	var polys []polyline
	open := false
	add := func(v vec.Vec2) {
		last := &polys[len(polys)-1]
		last.pts = append(last.pts, v)
	}
	current := func() vec.Vec2 {
		pts := polys[len(polys)-1].pts
		return pts[len(pts)-1]
	}

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			polys = append(polys, polyline{pts: []vec.Vec2{pts[0]}})
			open = true
		case path.CmdLineTo:
			if open {
				add(pts[0])
			}
		case path.CmdQuadTo:
			if open {
				r.flattenQuadratic(current(), pts[0], pts[1], add)
			}
		case path.CmdCubeTo:
			if open {
				r.flattenCubic(current(), pts[0], pts[1], pts[2], add)
			}
		case path.CmdClose:
			if open {
				polys[len(polys)-1].closed = true
				open = false
			}
		}
	}
	return polys
}

func finite(v vec.Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Fill rasterizes p with the nonzero winding rule. Every subpath is
// implicitly closed.
func (r *Rasterizer) Fill(p path.Path, emit EmitFunc) {
	r.fillPolys(r.flatten(p), emit)
}

func (r *Rasterizer) fillPolys(polys []polyline, emit EmitFunc) {
	bx0, by0 := math.Inf(1), math.Inf(1)
	bx1, by1 := math.Inf(-1), math.Inf(-1)
	for _, pl := range polys {
		for _, v := range pl.pts {
			if !finite(v) {
				return
			}
			bx0, bx1 = min(bx0, v.X), max(bx1, v.X)
			by0, by1 = min(by0, v.Y), max(by1, v.Y)
		}
	}
	if bx0 > bx1 {
		return
	}

	x0 := max(int(math.Floor(bx0)), int(r.Clip.LLx))
	y0 := max(int(math.Floor(by0)), int(r.Clip.LLy))
	x1 := min(int(math.Ceil(bx1)), int(r.Clip.URx))
	y1 := min(int(math.Ceil(by1)), int(r.Clip.URy))
	if x0 >= x1 || y0 >= y1 {
		return
	}

	w, h := x1-x0, y1-y0
	stride := w + 2
	need := stride * h
	if cap(r.acc) < need {
		r.acc = make([]float32, need)
	} else {
		r.acc = r.acc[:need]
		clear(r.acc)
	}
	if cap(r.cov) < w {
		r.cov = make([]float32, w)
	}

	origin := vec.Vec2{X: float64(x0), Y: float64(y0)}
	for _, pl := range polys {
		n := len(pl.pts)
		if n < 2 {
			continue
		}
		for i := 0; i < n; i++ {
			a := pl.pts[i].Sub(origin)
			b := pl.pts[(i+1)%n].Sub(origin)
			r.addEdge(a, b, float64(w), h, stride)
		}
	}

	cov := r.cov[:w]
	for row := 0; row < h; row++ {
		line := r.acc[row*stride : row*stride+stride]
		var sum float32
		lo, hi := -1, -1
		for i := 0; i < w; i++ {
			sum += line[i]
			c := sum
			if c < 0 {
				c = -c
			}
			if c > 1 {
				c = 1
			}
			if c < coverageEpsilon {
				c = 0
			}
			cov[i] = c
			if c > 0 {
				if lo < 0 {
					lo = i
				}
				hi = i
			}
		}
		if lo >= 0 {
			emit(y0+row, x0+lo, cov[lo:hi+1])
		}
	}
}

// coverageEpsilon suppresses float residue in rows the path does not touch.
const coverageEpsilon = 1.0 / 4096

// addEdge splits a segment at the left and right clip boundaries and clamps
// the outside pieces onto them, so area to the right of the clip is still
// accounted for.
func (r *Rasterizer) addEdge(a, b vec.Vec2, w float64, h, stride int) {
	if a.Y == b.Y {
		return
	}
	var ts [2]float64
	n := 0
	for _, xb := range [2]float64{0, w} {
		if (a.X < xb && b.X > xb) || (a.X > xb && b.X < xb) {
			ts[n] = (xb - a.X) / (b.X - a.X)
			n++
		}
	}
	if n == 2 && ts[0] > ts[1] {
		ts[0], ts[1] = ts[1], ts[0]
	}

	clampX := func(v vec.Vec2) vec.Vec2 {
		v.X = min(max(v.X, 0), w)
		return v
	}
	prev := a
	for _, t := range ts[:n] {
		mid := a.Add(b.Sub(a).Mul(t))
		r.drawLine(clampX(prev), clampX(mid), w, h, stride)
		prev = mid
	}
	r.drawLine(clampX(prev), clampX(b), w, h, stride)
}

// drawLine accumulates the signed area contribution of one edge. x is
// already within [0, w]; rows outside [0, h) are skipped.
func (r *Rasterizer) drawLine(p0, p1 vec.Vec2, w float64, h, stride int) {
	if p0.Y == p1.Y {
		return
	}
	dir := float32(1)
	if p0.Y > p1.Y {
		dir = -1
		p0, p1 = p1, p0
	}
	dxdy := (p1.X - p0.X) / (p1.Y - p0.Y)
	x := p0.X
	yStart := int(math.Floor(p0.Y))
	if p0.Y < 0 {
		x = min(max(x-p0.Y*dxdy, 0), w)
		yStart = 0
	}
	yEnd := min(h, int(math.Ceil(p1.Y)))

	acc := r.acc
	for y := yStart; y < yEnd; y++ {
		line := y * stride
		dy := math.Min(float64(y+1), p1.Y) - math.Max(float64(y), p0.Y)
		xNext := min(max(x+dxdy*dy, 0), w)
		d := float32(dy) * dir

		x0, x1 := x, xNext
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		x0Floor := math.Floor(x0)
		x0i := int(x0Floor)
		x1Ceil := math.Ceil(x1)
		x1i := int(x1Ceil)

		if x1i <= x0i+1 {
			xmf := float32(0.5*(x+xNext) - x0Floor)
			acc[line+x0i] += d - d*xmf
			acc[line+x0i+1] += d * xmf
		} else {
			s := float32(1 / (x1 - x0))
			x0f := float32(x0 - x0Floor)
			a0 := 0.5 * s * (1 - x0f) * (1 - x0f)
			x1f := float32(x1 - x1Ceil + 1)
			am := 0.5 * s * x1f * x1f

			acc[line+x0i] += d * a0
			if x1i == x0i+2 {
				acc[line+x0i+1] += d * (1 - a0 - am)
			} else {
				a1 := s * (1.5 - x0f)
				acc[line+x0i+1] += d * (a1 - a0)
				for xi := x0i + 2; xi < x1i-1; xi++ {
					acc[line+xi] += d * s
				}
				a2 := a1 + float32(x1i-x0i-3)*s
				acc[line+x1i-1] += d * (1 - a2 - am)
			}
			acc[line+x1i] += d * am
		}
		x = xNext
	}
}
