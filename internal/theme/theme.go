package theme

import (
	"image/color"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/bethropolis/scribble/internal/logger"
)

// Style names used by the terminal host.
const (
	StyleDefault           = "Default"
	StyleFrame             = "Frame"
	StyleStatusBar         = "StatusBar"
	StyleStatusBarModified = "StatusBarModified"
	StyleStatusBarMessage  = "StatusBarMessage"
	StyleStatusBarPrompt   = "StatusBarPrompt"
	StyleSwatch            = "Swatch"
)

// Theme groups terminal styles with the colors used around the canvas.
type Theme struct {
	Name     string
	IsDark   bool
	Styles   map[string]tcell.Style
	Paper    color.NRGBA // shown under transparent surface pixels
	Swatches []string    // palette cycled with 'n', as #rrggbb
}

// GetStyle returns the named style, falling back to the part before the
// first dot and then to Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.Debugf("Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// NextSwatch returns the palette entry after current, wrapping around.
// When current is not in the palette the nearest swatch by perceptual
// distance is used as the starting point.
func (t *Theme) NextSwatch(current string) string {
	if len(t.Swatches) == 0 {
		return current
	}
	idx := nearestSwatch(t.Swatches, current)
	return t.Swatches[(idx+1)%len(t.Swatches)]
}

func nearestSwatch(swatches []string, hex string) int {
	want, err := colorful.Hex(hex)
	if err != nil {
		return -1
	}
	best, bestDist := -1, 0.0
	for i, s := range swatches {
		c, err := colorful.Hex(s)
		if err != nil {
			continue
		}
		if d := c.DistanceCIEDE2000(want); best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// TcellColor converts an NRGBA value to a true-color tcell color.
func TcellColor(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// HexColor parses #rrggbb into a tcell color.
func HexColor(hex string) (tcell.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return tcell.ColorDefault, err
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}

func mustHex(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

func nrgba(c colorful.Color) color.NRGBA {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// DefaultSwatches is the built-in ink palette.
var DefaultSwatches = []string{
	"#111827", "#ef4444", "#f97316", "#eab308",
	"#22c55e", "#0ea5e9", "#6366f1", "#d946ef",
}

// ScribbleDark is the built-in theme.
var ScribbleDark = newBuiltin("Scribble Dark", true, "#1f2430", "#c5cdd9", "#e5c07b", "#98c379", "#ffffff")

// ScribbleLight suits light terminal backgrounds.
var ScribbleLight = newBuiltin("Scribble Light", false, "#e5e7eb", "#1f2937", "#b45309", "#047857", "#ffffff")

func newBuiltin(name string, dark bool, bar, fg, modified, prompt, paper string) *Theme {
	barC, fgC := mustHex(bar), mustHex(fg)
	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(TcellColor(nrgba(fgC)))
	barStyle := tcell.StyleDefault.Background(TcellColor(nrgba(barC))).Foreground(TcellColor(nrgba(fgC)))
	// The frame sits between terminal background and the status bar.
	frame := barC.BlendLab(fgC, 0.25)

	return &Theme{
		Name:   name,
		IsDark: dark,
		Styles: map[string]tcell.Style{
			StyleDefault:           base,
			StyleFrame:             base.Foreground(TcellColor(nrgba(frame))),
			StyleStatusBar:         barStyle,
			StyleStatusBarModified: barStyle.Foreground(TcellColor(nrgba(mustHex(modified)))),
			StyleStatusBarMessage:  barStyle.Bold(true),
			StyleStatusBarPrompt:   barStyle.Foreground(TcellColor(nrgba(mustHex(prompt)))).Bold(true),
			StyleSwatch:            barStyle,
		},
		Paper:    nrgba(mustHex(paper)),
		Swatches: append([]string(nil), DefaultSwatches...),
	}
}
