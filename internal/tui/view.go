package tui

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"

	"github.com/bethropolis/scribble/internal/config"
	"github.com/bethropolis/scribble/internal/input"
	"github.com/bethropolis/scribble/internal/logger"
	"github.com/bethropolis/scribble/internal/theme"
)

// halfBlock draws the upper preview pixel in the foreground color and the
// lower one in the background color.
const halfBlock = '▀'

// Layout is where the surface sits on screen. Each cell shows two preview
// pixels stacked vertically; each preview pixel covers CellPixels surface
// pixels in both directions.
type Layout struct {
	X, Y       int // top-left cell of the surface
	Cols, Rows int
	CellPixels int
}

// Viewport maps terminal cells to surface pixels for the input adapter.
func (l Layout) Viewport() input.Viewport {
	return input.Viewport{
		X:      float64(l.X),
		Y:      float64(l.Y),
		Width:  float64(l.Cols),
		Height: float64(l.Rows),
		ScaleX: float64(l.CellPixels),
		ScaleY: float64(2 * l.CellPixels),
	}
}

// Layers are the images composited into the preview.
type Layers struct {
	Surface     *image.NRGBA
	Grid        *image.NRGBA
	GridVisible bool
}

// View renders the canvas in the area above the status bar.
type View struct {
	cellPixels int
	composite  *image.NRGBA
	preview    *image.NRGBA
}

// NewView returns a view that maps cellPixels surface pixels to a column.
func NewView(cellPixels int) *View {
	return &View{cellPixels: max(cellPixels, 1)}
}

// CellPixels returns the horizontal surface pixels per column.
func (v *View) CellPixels() int { return v.cellPixels }

// Container returns the surface-pixel size available inside the frame for
// a screen of the given size.
func (v *View) Container(screenW, screenH int) (w, h int) {
	cols := screenW - 2
	rows := screenH - config.StatusBarHeight - 2
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	return cols * v.cellPixels, rows * 2 * v.cellPixels
}

// Layout centres a surface of surfW×surfH pixels horizontally, just below
// the top frame line.
func (v *View) Layout(screenW, screenH, surfW, surfH int) Layout {
	cp := v.cellPixels
	cols := (surfW + cp - 1) / cp
	rows := (surfH + 2*cp - 1) / (2 * cp)
	x := max((screenW-cols)/2, 1)
	return Layout{X: x, Y: 1, Cols: cols, Rows: rows, CellPixels: cp}
}

// compose flattens paper, surface and the grid overlay into one opaque
// image.
func (v *View) compose(layers Layers, paper color.NRGBA) *image.NRGBA {
	b := layers.Surface.Bounds()
	if v.composite == nil || v.composite.Bounds() != b {
		v.composite = image.NewNRGBA(b)
	}
	draw.Draw(v.composite, b, image.NewUniform(paper), image.Point{}, draw.Src)
	draw.Draw(v.composite, b, layers.Surface, b.Min, draw.Over)
	if layers.GridVisible && layers.Grid != nil {
		draw.Draw(v.composite, b, layers.Grid, b.Min, draw.Over)
	}
	return v.composite
}

// Preview scales the composited layers down to Cols×(2·Rows) pixels.
func (v *View) Preview(l Layout, layers Layers, paper color.NRGBA) *image.NRGBA {
	r := image.Rect(0, 0, l.Cols, 2*l.Rows)
	if v.preview == nil || v.preview.Bounds() != r {
		v.preview = image.NewNRGBA(r)
	}
	src := v.compose(layers, paper)
	draw.ApproxBiLinear.Scale(v.preview, r, src, src.Bounds(), draw.Src, nil)
	return v.preview
}

// Draw paints the frame and the canvas preview.
func (v *View) Draw(screen tcell.Screen, l Layout, layers Layers, th *theme.Theme) {
	if layers.Surface == nil || l.Cols <= 0 || l.Rows <= 0 {
		return
	}
	drawFrame(screen, l, th.GetStyle(theme.StyleFrame))

	img := v.Preview(l, layers, th.Paper)
	sw, sh := screen.Size()
	for row := 0; row < l.Rows; row++ {
		y := l.Y + row
		if y >= sh-config.StatusBarHeight {
			break
		}
		for col := 0; col < l.Cols; col++ {
			x := l.X + col
			if x >= sw {
				break
			}
			top := img.NRGBAAt(col, 2*row)
			bottom := img.NRGBAAt(col, 2*row+1)
			style := tcell.StyleDefault.
				Foreground(theme.TcellColor(top)).
				Background(theme.TcellColor(bottom))
			screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	logger.DebugTagf("draw", "canvas drawn at %d,%d as %dx%d cells", l.X, l.Y, l.Cols, l.Rows)
}

func drawFrame(screen tcell.Screen, l Layout, style tcell.Style) {
	left, right := l.X-1, l.X+l.Cols
	top, bottom := l.Y-1, l.Y+l.Rows
	for x := left + 1; x < right; x++ {
		screen.SetContent(x, top, tcell.RuneHLine, nil, style)
		screen.SetContent(x, bottom, tcell.RuneHLine, nil, style)
	}
	for y := top + 1; y < bottom; y++ {
		screen.SetContent(left, y, tcell.RuneVLine, nil, style)
		screen.SetContent(right, y, tcell.RuneVLine, nil, style)
	}
	screen.SetContent(left, top, tcell.RuneULCorner, nil, style)
	screen.SetContent(right, top, tcell.RuneURCorner, nil, style)
	screen.SetContent(left, bottom, tcell.RuneLLCorner, nil, style)
	screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, style)
}
