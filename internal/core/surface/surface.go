// Package surface owns the drawing pixel buffer and its draw primitives.
package surface

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"seehuhn.de/go/pdf/graphics"

	"github.com/bethropolis/scribble/internal/raster"
)

// Mode selects how a stroke combines with existing pixels.
type Mode = raster.Op

const (
	CompositeSourceOver     = raster.OpSourceOver
	CompositeDestinationOut = raster.OpDestinationOut
)

// Style is the stroke style applied by draw primitives.
type Style struct {
	Color color.NRGBA
	Width float64
	Cap   graphics.LineCapStyle
	Join  graphics.LineJoinStyle
}

// DefaultColor is the initial ink, #111827.
var DefaultColor = color.NRGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xff}

// DefaultStyle returns round caps and joins, DefaultColor and width 3.
func DefaultStyle() Style {
	return Style{
		Color: DefaultColor,
		Width: 3,
		Cap:   graphics.LineCapRound,
		Join:  graphics.LineJoinRound,
	}
}

// ParseColor parses a hex color such as "#1e40af" into an opaque NRGBA.
func ParseColor(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// HexColor formats c as #rrggbb.
func HexColor(c color.NRGBA) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

// Surface is a non-premultiplied RGBA pixel grid. It is not safe for
// concurrent use.
type Surface struct {
	img   *image.NRGBA
	style Style
	rast  *raster.Rasterizer
	faces map[float64]font.Face
}

// New returns a transparent w×h surface with the default style.
func New(w, h int) *Surface {
	s := &Surface{}
	s.Initialize(w, h)
	return s
}

// Initialize reallocates a blank buffer and resets the style.
func (s *Surface) Initialize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	s.img = image.NewNRGBA(image.Rect(0, 0, w, h))
	s.style = DefaultStyle()
	s.rast = raster.NewRasterizer(raster.ClipTo(w, h))
}

// Width returns the buffer width in pixels.
func (s *Surface) Width() int { return s.img.Rect.Dx() }

// Height returns the buffer height in pixels.
func (s *Surface) Height() int { return s.img.Rect.Dy() }

// Empty reports whether the surface has zero area.
func (s *Surface) Empty() bool { return s.Width() == 0 || s.Height() == 0 }

// Image exposes the live buffer. Callers must not modify it.
func (s *Surface) Image() *image.NRGBA { return s.img }

// Style returns the default style.
func (s *Surface) Style() Style { return s.style }

// SetStyle replaces the default style.
func (s *Surface) SetStyle(st Style) { s.style = st }

// Clear makes every pixel transparent.
func (s *Surface) Clear() {
	clear(s.img.Pix)
}

// ResizePreservingContent reallocates the buffer to w×h and copies the old
// pixels back at the origin, unscaled and clipped. The style is kept.
func (s *Surface) ResizePreservingContent(w, h int) {
	w, h = max(w, 0), max(h, 0)
	old := s.img
	s.img = image.NewNRGBA(image.Rect(0, 0, w, h))
	s.rast.Clip = raster.ClipTo(w, h)
	copyAtOrigin(s.img, old)
}

// Coverage returns the fraction of pixels with non-zero alpha.
func (s *Surface) Coverage() float64 {
	total := s.Width() * s.Height()
	if total == 0 {
		return 0
	}
	inked := 0
	for i := 3; i < len(s.img.Pix); i += 4 {
		if s.img.Pix[i] != 0 {
			inked++
		}
	}
	return float64(inked) / float64(total)
}

// copyAtOrigin copies the overlapping top-left region of src into dst.
func copyAtOrigin(dst, src *image.NRGBA) {
	w := min(dst.Rect.Dx(), src.Rect.Dx())
	h := min(dst.Rect.Dy(), src.Rect.Dy())
	for y := 0; y < h; y++ {
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+w*4], src.Pix[y*src.Stride:y*src.Stride+w*4])
	}
}
