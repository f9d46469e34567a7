package raster

import (
	"image"
	"image/color"
)

// Op selects how painted coverage combines with existing pixels.
type Op uint8

const (
	// OpSourceOver paints the color over the destination.
	OpSourceOver Op = iota
	// OpDestinationOut removes destination alpha in proportion to coverage
	// and never adds color.
	OpDestinationOut
)

func (op Op) String() string {
	switch op {
	case OpSourceOver:
		return "source-over"
	case OpDestinationOut:
		return "destination-out"
	default:
		return "unknown"
	}
}

// Painter returns an EmitFunc compositing coverage rows onto dst with c.
// Rows and columns outside dst are ignored.
func Painter(dst *image.NRGBA, c color.NRGBA, op Op) EmitFunc {
	b := dst.Bounds()
	return func(y, xMin int, coverage []float32) {
		if y < b.Min.Y || y >= b.Max.Y {
			return
		}
		for i, cv := range coverage {
			x := xMin + i
			if cv <= 0 || x < b.Min.X || x >= b.Max.X {
				continue
			}
			blend(dst.Pix[dst.PixOffset(x, y):], c, float64(cv), op)
		}
	}
}

// PaintMask composites c onto dst through an alpha mask placed with its
// bounds' origin at the mask's own coordinates.
func PaintMask(dst *image.NRGBA, mask *image.Alpha, c color.NRGBA, op Op) {
	r := dst.Bounds().Intersect(mask.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			a := mask.AlphaAt(x, y).A
			if a == 0 {
				continue
			}
			blend(dst.Pix[dst.PixOffset(x, y):], c, float64(a)/255, op)
		}
	}
}

// blend composites one non-premultiplied pixel in place.
func blend(pix []uint8, c color.NRGBA, cover float64, op Op) {
	pix = pix[:4:4]
	sa := cover * float64(c.A) / 255
	da := float64(pix[3]) / 255

	if op == OpDestinationOut {
		a := to8(da * (1 - sa))
		if a == 0 {
			pix[0], pix[1], pix[2], pix[3] = 0, 0, 0, 0
			return
		}
		pix[3] = a
		return
	}

	outA := sa + da*(1-sa)
	if outA <= 0 {
		return
	}
	src := [3]uint8{c.R, c.G, c.B}
	for i, sc := range src {
		dc := float64(pix[i]) / 255
		pix[i] = to8((float64(sc)/255*sa + dc*da*(1-sa)) / outA)
	}
	pix[3] = to8(outA)
}

func to8(v float64) uint8 {
	v = v*255 + 0.5
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
