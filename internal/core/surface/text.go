package surface

import (
	"fmt"
	"image"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/bethropolis/scribble/internal/raster"
	"github.com/bethropolis/scribble/internal/types"
)

var (
	regularOnce sync.Once
	regularFont *opentype.Font
	regularErr  error
)

func loadRegular() (*opentype.Font, error) {
	regularOnce.Do(func() {
		regularFont, regularErr = opentype.Parse(goregular.TTF)
	})
	return regularFont, regularErr
}

// FontSize returns the text size in pixels used for a stroke width.
func FontSize(width float64) float64 {
	return math.Max(12, width*6)
}

func (s *Surface) face(size float64) (font.Face, error) {
	if f, ok := s.faces[size]; ok {
		return f, nil
	}
	ft, err := loadRegular()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	f, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	if s.faces == nil {
		s.faces = make(map[float64]font.Face)
	}
	s.faces[size] = f
	return f, nil
}

// StampText draws content left-anchored at pos.X with its alphabetic
// baseline on pos.Y, sized by FontSize(st.Width).
func (s *Surface) StampText(content string, pos types.Point, st Style) error {
	if err := checkGeometry("stamp text", st, pos); err != nil {
		return err
	}
	if s.Empty() || content == "" {
		return nil
	}
	face, err := s.face(FontSize(st.Width))
	if err != nil {
		return err
	}

	dot := fixed.Point26_6{
		X: fixed.Int26_6(math.Round(pos.X * 64)),
		Y: fixed.Int26_6(math.Round(pos.Y * 64)),
	}
	b, _ := font.BoundString(face, content)
	area := image.Rect(
		(b.Min.X + dot.X).Floor(), (b.Min.Y + dot.Y).Floor(),
		(b.Max.X + dot.X).Ceil(), (b.Max.Y + dot.Y).Ceil(),
	).Intersect(s.img.Rect)
	if area.Empty() {
		return nil
	}

	mask := image.NewAlpha(area)
	d := font.Drawer{Dst: mask, Src: image.Opaque, Face: face, Dot: dot}
	d.DrawString(content)
	raster.PaintMask(s.img, mask, st.Color, CompositeSourceOver)
	return nil
}
