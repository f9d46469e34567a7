package raster

import (
	"image"
	"image/color"
	"math"
	"testing"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

type coverageMap map[image.Point]float64

func (m coverageMap) total() float64 {
	var s float64
	for _, v := range m {
		s += v
	}
	return s
}

func collect(m coverageMap) EmitFunc {
	return func(y, xMin int, coverage []float32) {
		for i, c := range coverage {
			if c > 0 {
				m[image.Pt(xMin+i, y)] += float64(c)
			}
		}
	}
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestFillIntegerRectangle(t *testing.T) {
	r := NewRasterizer(ClipTo(6, 6))
	m := coverageMap{}
	r.Fill(Rect(vec.Vec2{X: 1, Y: 1}, vec.Vec2{X: 3, Y: 3}), collect(m))

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			want := 0.0
			if x >= 1 && x < 3 && y >= 1 && y < 3 {
				want = 1
			}
			if got := m[image.Pt(x, y)]; !near(got, want, 1e-4) {
				t.Errorf("pixel (%d,%d) = %.4f, want %.1f", x, y, got, want)
			}
		}
	}
}

func TestFillHalfPixelRectangle(t *testing.T) {
	r := NewRasterizer(ClipTo(4, 4))
	m := coverageMap{}
	r.Fill(Rect(vec.Vec2{X: 0.5, Y: 0.5}, vec.Vec2{X: 2.5, Y: 1.5}), collect(m))

	want := map[image.Point]float64{
		{0, 0}: 0.25, {1, 0}: 0.5, {2, 0}: 0.25,
		{0, 1}: 0.25, {1, 1}: 0.5, {2, 1}: 0.25,
	}
	for p, w := range want {
		if got := m[p]; !near(got, w, 1e-4) {
			t.Errorf("pixel %v = %.4f, want %.2f", p, got, w)
		}
	}
	if len(m) != len(want) {
		t.Errorf("covered %d pixels, want %d", len(m), len(want))
	}
}

func TestFillTriangleAreaAndOrientation(t *testing.T) {
	pts := []vec.Vec2{{X: 2, Y: 2}, {X: 30, Y: 5}, {X: 10, Y: 25}}
	reversed := []vec.Vec2{pts[2], pts[1], pts[0]}

	for _, poly := range [][]vec.Vec2{pts, reversed} {
		r := NewRasterizer(ClipTo(40, 40))
		m := coverageMap{}
		r.Fill(Polygon(poly), collect(m))
		if got := m.total(); !near(got, 310, 0.01) {
			t.Errorf("total coverage = %.4f, want 310", got)
		}
	}
}

func TestFillClipped(t *testing.T) {
	r := NewRasterizer(ClipTo(10, 10))
	m := coverageMap{}
	r.Fill(Rect(vec.Vec2{X: -5, Y: -5}, vec.Vec2{X: 3, Y: 3}), collect(m))
	if got := m.total(); !near(got, 9, 1e-3) {
		t.Errorf("total = %.4f, want 9", got)
	}
	for p := range m {
		if p.X < 0 || p.Y < 0 || p.X >= 3 || p.Y >= 3 {
			t.Errorf("unexpected coverage at %v", p)
		}
	}

	// Entirely outside.
	m = coverageMap{}
	r.Fill(Rect(vec.Vec2{X: 20, Y: 20}, vec.Vec2{X: 30, Y: 30}), collect(m))
	if len(m) != 0 {
		t.Errorf("outside rectangle produced %d pixels", len(m))
	}
}

func TestFillRingHasHole(t *testing.T) {
	r := NewRasterizer(ClipTo(40, 40))
	m := coverageMap{}
	r.Fill(Ring(vec.Vec2{X: 20, Y: 20}, 10, 2), collect(m))

	if got := m[image.Pt(19, 19)]; got != 0 {
		t.Errorf("centre coverage = %.3f, want 0", got)
	}
	if got := m[image.Pt(29, 20)]; !near(got, 1, 1e-3) {
		t.Errorf("ring coverage = %.3f, want 1", got)
	}
	want := math.Pi * (12*12 - 8*8)
	if got := m.total(); !near(got, want, want*0.02) {
		t.Errorf("ring area = %.2f, want about %.2f", got, want)
	}
}

func TestStrokeCaps(t *testing.T) {
	line := Line(vec.Vec2{X: 2, Y: 5}, vec.Vec2{X: 12, Y: 5})
	tests := []struct {
		name string
		cap  graphics.LineCapStyle
		want float64
		tol  float64
	}{
		{"butt", graphics.LineCapButt, 20, 1e-3},
		{"square", graphics.LineCapSquare, 24, 1e-3},
		{"round", graphics.LineCapRound, 20 + math.Pi, 0.1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRasterizer(ClipTo(20, 20))
			m := coverageMap{}
			r.Stroke(line, StrokeStyle{Width: 2, Cap: tc.cap, Join: graphics.LineJoinRound}, collect(m))
			if got := m.total(); !near(got, tc.want, tc.tol) {
				t.Errorf("area = %.4f, want %.4f", got, tc.want)
			}
		})
	}
}

func TestStrokeJoins(t *testing.T) {
	corner := Polyline([]vec.Vec2{{X: 2, Y: 2}, {X: 12, Y: 2}, {X: 12, Y: 12}})
	tests := []struct {
		name  string
		join  graphics.LineJoinStyle
		limit float64
		want  float64
	}{
		{"miter", graphics.LineJoinMiter, 10, 40},
		{"bevel", graphics.LineJoinBevel, 10, 39.5},
		{"miter over limit", graphics.LineJoinMiter, 1.2, 39.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRasterizer(ClipTo(20, 20))
			m := coverageMap{}
			st := StrokeStyle{Width: 2, Cap: graphics.LineCapButt, Join: tc.join, MiterLimit: tc.limit}
			r.Stroke(corner, st, collect(m))
			if got := m.total(); !near(got, tc.want, 1e-3) {
				t.Errorf("area = %.4f, want %.1f", got, tc.want)
			}
		})
	}
}

func TestStrokeDegenerate(t *testing.T) {
	p := vec.Vec2{X: 10, Y: 10}

	r := NewRasterizer(ClipTo(20, 20))
	m := coverageMap{}
	r.Stroke(Line(p, p), StrokeStyle{Width: 4, Cap: graphics.LineCapRound}, collect(m))
	if got := m.total(); !near(got, 4*math.Pi, 0.2) {
		t.Errorf("round dot area = %.3f, want about %.3f", got, 4*math.Pi)
	}

	m = coverageMap{}
	r.Stroke(Line(p, p), StrokeStyle{Width: 4, Cap: graphics.LineCapButt}, collect(m))
	if len(m) != 0 {
		t.Errorf("butt dot painted %d pixels", len(m))
	}

	m = coverageMap{}
	r.Stroke(Polygon([]vec.Vec2{p}), StrokeStyle{Width: 4, Cap: graphics.LineCapRound}, collect(m))
	if len(m) != 0 {
		t.Errorf("closed degenerate path painted %d pixels", len(m))
	}
}

func TestStrokeRectangleOutline(t *testing.T) {
	r := NewRasterizer(ClipTo(30, 30))
	m := coverageMap{}
	st := StrokeStyle{Width: 2, Cap: graphics.LineCapRound, Join: graphics.LineJoinMiter}
	r.Stroke(Rect(vec.Vec2{X: 5, Y: 5}, vec.Vec2{X: 15, Y: 15}), st, collect(m))

	// Outer 12x12 minus inner 8x8.
	if got := m.total(); !near(got, 144-64, 1e-3) {
		t.Errorf("area = %.4f, want 80", got)
	}
	if m[image.Pt(10, 10)] != 0 {
		t.Error("rectangle outline filled its interior")
	}
}

func TestPainterSourceOver(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	red := color.NRGBA{R: 255, A: 255}
	paint := Painter(img, red, OpSourceOver)
	paint(0, 0, []float32{1, 0.5})

	if got := img.NRGBAAt(0, 0); got != red {
		t.Errorf("full coverage = %v, want %v", got, red)
	}
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{R: 255, A: 128}) {
		t.Errorf("half coverage = %v", got)
	}

	// Painting blue over red at full coverage replaces it.
	blue := color.NRGBA{B: 255, A: 255}
	Painter(img, blue, OpSourceOver)(0, 0, []float32{1})
	if got := img.NRGBAAt(0, 0); got != blue {
		t.Errorf("overpaint = %v, want %v", got, blue)
	}
}

func TestPainterDestinationOut(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	green := color.NRGBA{G: 200, A: 255}
	Painter(img, green, OpSourceOver)(0, 0, []float32{1, 1})

	// The eraser color is irrelevant; only its alpha matters.
	Painter(img, color.NRGBA{R: 255, A: 255}, OpDestinationOut)(0, 0, []float32{1, 0.5, 1})

	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{}) {
		t.Errorf("fully erased = %v, want transparent", got)
	}
	if got := img.NRGBAAt(1, 0); got.A != 128 || got.G != 200 || got.R != 0 {
		t.Errorf("half erased = %v", got)
	}
	if got := img.NRGBAAt(2, 0); got != (color.NRGBA{}) {
		t.Errorf("erasing empty pixel changed it: %v", got)
	}
}

func TestPaintMask(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	mask := image.NewAlpha(image.Rect(2, 2, 6, 6))
	mask.SetAlpha(2, 2, color.Alpha{A: 255})
	mask.SetAlpha(5, 5, color.Alpha{A: 255})

	c := color.NRGBA{R: 10, G: 20, B: 30, A: 255}
	PaintMask(dst, mask, c, OpSourceOver)
	if got := dst.NRGBAAt(2, 2); got != c {
		t.Errorf("mask pixel = %v, want %v", got, c)
	}
	if got := dst.NRGBAAt(3, 3); got.A != 0 {
		t.Errorf("unmasked pixel painted: %v", got)
	}
}
