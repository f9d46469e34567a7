package tui

import (
	"image"
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/scribble/internal/theme"
)

func simScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	tu, err := NewWithScreen(s, tcell.StyleDefault)
	if err != nil {
		t.Fatal(err)
	}
	s.SetSize(w, h)
	t.Cleanup(tu.Close)
	return s
}

func TestContainerAndLayout(t *testing.T) {
	v := NewView(4)
	w, h := v.Container(80, 24)
	if w != 78*4 || h != 21*8 {
		t.Errorf("container = %dx%d", w, h)
	}
	if w, h := v.Container(2, 3); w != 0 || h != 0 {
		t.Errorf("tiny container = %dx%d", w, h)
	}

	l := v.Layout(80, 24, 300, 175)
	if l.Cols != 75 || l.Rows != 22 {
		t.Errorf("layout = %+v", l)
	}
	if l.X != 2 || l.Y != 1 {
		t.Errorf("origin = %d,%d", l.X, l.Y)
	}
	vp := l.Viewport()
	p := vp.ToSurface(float64(l.X)+1, float64(l.Y)+1)
	if p.X != 4 || p.Y != 8 {
		t.Errorf("cell (1,1) maps to %v", p)
	}
}

func TestPreviewHalfBlocks(t *testing.T) {
	v := NewView(2)
	surf := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	// Ink the top half opaque black; the bottom stays transparent.
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			surf.SetNRGBA(x, y, color.NRGBA{A: 0xff})
		}
	}
	l := v.Layout(10, 6, 4, 4)
	if l.Cols != 2 || l.Rows != 1 {
		t.Fatalf("layout = %+v", l)
	}

	s := simScreen(t, 10, 6)
	v.Draw(s, l, Layers{Surface: surf}, theme.ScribbleDark)
	s.Show()

	cells, w, _ := s.GetContents()
	c := cells[l.Y*w+l.X]
	if len(c.Runes) == 0 || c.Runes[0] != halfBlock {
		t.Fatalf("cell runes = %q", c.Runes)
	}
	fg, bg, _ := c.Style.Decompose()
	if fg != tcell.NewRGBColor(0, 0, 0) {
		t.Errorf("top pixel = %v, want black", fg)
	}
	if bg != theme.TcellColor(theme.ScribbleDark.Paper) {
		t.Errorf("bottom pixel = %v, want paper", bg)
	}

	// Frame corners surround the canvas.
	if r := cells[(l.Y-1)*w+l.X-1].Runes; len(r) == 0 || r[0] != tcell.RuneULCorner {
		t.Errorf("top-left frame = %q", r)
	}
}

func TestGridDrawnOverSurface(t *testing.T) {
	v := NewView(1)
	surf := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	grid := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	red := color.NRGBA{R: 0xff, A: 0xff}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			surf.SetNRGBA(x, y, color.NRGBA{A: 0xff})
			grid.SetNRGBA(x, y, red)
		}
	}
	l := v.Layout(10, 5, 2, 2)

	img := v.Preview(l, Layers{Surface: surf, Grid: grid, GridVisible: true}, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	if got := img.NRGBAAt(0, 0); got != red {
		t.Errorf("visible grid pixel = %v", got)
	}
	img = v.Preview(l, Layers{Surface: surf, Grid: grid}, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{A: 0xff}) {
		t.Errorf("hidden grid pixel = %v", got)
	}
}
