package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// StrokeStyle describes how a path outline is widened.
type StrokeStyle struct {
	Width      float64
	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64
}

const defaultMiterLimit = 10.0

// Stroke rasterizes the outline of p. Closed subpaths get a join at their
// start point; open subpaths get caps. An open subpath that collapses to a
// single point draws a dot for round and square caps.
func (r *Rasterizer) Stroke(p path.Path, st StrokeStyle, emit EmitFunc) {
	r.fillPolys(r.outline(r.flatten(p), st), emit)
}

// outline builds the stroke of the given polylines as a set of positively
// oriented polygons: one quad per segment plus the join and cap pieces.
func (r *Rasterizer) outline(polys []polyline, st StrokeStyle) []polyline {
	d := st.Width / 2
	if !(d > 0) || math.IsInf(d, 0) {
		return nil
	}
	miterLimit := st.MiterLimit
	if miterLimit < 1 {
		miterLimit = defaultMiterLimit
	}

	o := outliner{flatness: r.flatness(), d: d}
	for _, pl := range polys {
		pts := dedupe(pl.pts, pl.closed)
		n := len(pts)
		if n == 0 {
			continue
		}
		if n == 1 {
			if !pl.closed {
				o.dot(pts[0], st.Cap)
			}
			continue
		}

		segs := n - 1
		if pl.closed {
			segs = n
		}
		for i := 0; i < segs; i++ {
			a, b := pts[i], pts[(i+1)%n]
			nv := perp(unit(b.Sub(a))).Mul(d)
			o.poly(a.Add(nv), b.Add(nv), b.Sub(nv), a.Sub(nv))
		}

		if pl.closed {
			for i := 0; i < n; i++ {
				o.join(pts[(i-1+n)%n], pts[i], pts[(i+1)%n], st.Join, miterLimit)
			}
		} else {
			for i := 1; i < n-1; i++ {
				o.join(pts[i-1], pts[i], pts[i+1], st.Join, miterLimit)
			}
			o.cap(pts[0], unit(pts[0].Sub(pts[1])), st.Cap)
			o.cap(pts[n-1], unit(pts[n-1].Sub(pts[n-2])), st.Cap)
		}
	}
	return o.out
}

type outliner struct {
	flatness float64
	d        float64
	out      []polyline
}

// poly appends a polygon with positive orientation. Degenerate polygons
// are dropped.
func (o *outliner) poly(pts ...vec.Vec2) {
	area := shoelace(pts)
	if math.Abs(area) < 1e-12 {
		return
	}
	cp := make([]vec.Vec2, len(pts))
	if area > 0 {
		copy(cp, pts)
	} else {
		for i, v := range pts {
			cp[len(pts)-1-i] = v
		}
	}
	o.out = append(o.out, polyline{pts: cp, closed: true})
}

func (o *outliner) disc(c vec.Vec2) {
	o.poly(discPoints(c, o.d, o.flatness)...)
}

func (o *outliner) dot(p vec.Vec2, capStyle graphics.LineCapStyle) {
	d := o.d
	switch capStyle {
	case graphics.LineCapRound:
		o.disc(p)
	case graphics.LineCapSquare:
		o.poly(
			vec.Vec2{X: p.X - d, Y: p.Y - d},
			vec.Vec2{X: p.X + d, Y: p.Y - d},
			vec.Vec2{X: p.X + d, Y: p.Y + d},
			vec.Vec2{X: p.X - d, Y: p.Y + d},
		)
	}
}

// cap adds the end cap at p; dir is the unit vector pointing away from the line.
func (o *outliner) cap(p, dir vec.Vec2, capStyle graphics.LineCapStyle) {
	switch capStyle {
	case graphics.LineCapRound:
		o.disc(p)
	case graphics.LineCapSquare:
		nv := perp(dir).Mul(o.d)
		ext := dir.Mul(o.d)
		o.poly(p.Add(nv), p.Add(nv).Add(ext), p.Sub(nv).Add(ext), p.Sub(nv))
	}
}

// join fills the gap on the outer side of the corner at p.
func (o *outliner) join(prev, p, next vec.Vec2, style graphics.LineJoinStyle, miterLimit float64) {
	t1 := unit(p.Sub(prev))
	t2 := unit(next.Sub(p))
	cross := t1.X*t2.Y - t1.Y*t2.X
	if math.Abs(cross) < 1e-9 && t1.Dot(t2) > 0 {
		return
	}

	if style == graphics.LineJoinRound {
		o.disc(p)
		return
	}
	if math.Abs(cross) < 1e-9 {
		// U-turn: miter is infinite and a bevel has no area.
		return
	}

	side := 1.0
	if cross > 0 {
		side = -1
	}
	o1 := perp(t1).Mul(o.d * side)
	o2 := perp(t2).Mul(o.d * side)

	if style == graphics.LineJoinMiter {
		u := o1.Add(o2)
		ul2 := u.Dot(u)
		if ul2 > 0 && 2*o.d/math.Sqrt(ul2) <= miterLimit {
			tip := p.Add(u.Mul(2 * o.d * o.d / ul2))
			o.poly(p, p.Add(o1), tip, p.Add(o2))
			return
		}
	}
	o.poly(p, p.Add(o1), p.Add(o2))
}

func perp(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -v.Y, Y: v.X}
}

func unit(v vec.Vec2) vec.Vec2 {
	l := v.Length()
	if l == 0 {
		return vec.Vec2{}
	}
	return v.Mul(1 / l)
}

// dedupe drops consecutive duplicate points, and the closing duplicate of a
// closed polyline.
func dedupe(pts []vec.Vec2, closed bool) []vec.Vec2 {
	const eps = 1e-9
	out := make([]vec.Vec2, 0, len(pts))
	for _, v := range pts {
		if len(out) > 0 && v.Sub(out[len(out)-1]).Length() < eps {
			continue
		}
		out = append(out, v)
	}
	if closed && len(out) > 1 && out[0].Sub(out[len(out)-1]).Length() < eps {
		out = out[:len(out)-1]
	}
	return out
}

// shoelace returns twice the signed area of the polygon.
func shoelace(pts []vec.Vec2) float64 {
	var a float64
	for i, v := range pts {
		w := pts[(i+1)%len(pts)]
		a += v.X*w.Y - w.X*v.Y
	}
	return a
}

// discPoints approximates a circle by a positively oriented polygon whose
// edges stay within flatness of the true circle.
func discPoints(c vec.Vec2, radius, flatness float64) []vec.Vec2 {
	n := 32
	if radius > flatness {
		n = max(n, int(math.Ceil(math.Pi/math.Acos(1-flatness/radius))))
	}
	n = min(n, 256)
	pts := make([]vec.Vec2, n)
	for i := range pts {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = vec.Vec2{X: c.X + radius*math.Cos(theta), Y: c.Y + radius*math.Sin(theta)}
	}
	return pts
}
