package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestNextSwatchWraps(t *testing.T) {
	th := &Theme{Swatches: []string{"#000000", "#ff0000", "#0000ff"}}
	if got := th.NextSwatch("#000000"); got != "#ff0000" {
		t.Errorf("next after black = %s", got)
	}
	if got := th.NextSwatch("#0000ff"); got != "#000000" {
		t.Errorf("next after last = %s", got)
	}
	// Not in the palette: start from the closest entry.
	if got := th.NextSwatch("#f00010"); got != "#0000ff" {
		t.Errorf("next after near-red = %s", got)
	}
}

func TestGetStyleFallback(t *testing.T) {
	def := tcell.StyleDefault.Foreground(tcell.ColorRed)
	bar := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	th := &Theme{Name: "t", Styles: map[string]tcell.Style{StyleDefault: def, "StatusBar": bar}}

	if th.GetStyle("StatusBar.extra") != bar {
		t.Error("dotted name did not fall back to its base")
	}
	if th.GetStyle("Missing") != def {
		t.Error("unknown name did not fall back to Default")
	}
}

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme(`
name = "Paperwhite"
paper = "#fafafa"
swatches = ["#000000", "nope", "#FF0000"]

[styles.StatusBar]
fg = "#ffffff"
bg = "#333333"
bold = true
`)
	if err != nil {
		t.Fatal(err)
	}
	if th.Paper.R != 0xfa || th.Paper.A != 0xff {
		t.Errorf("paper = %v", th.Paper)
	}
	if len(th.Swatches) != 2 || th.Swatches[1] != "#ff0000" {
		t.Errorf("swatches = %v", th.Swatches)
	}
	fg, bg, attr := th.GetStyle(StyleStatusBar).Decompose()
	if fg != tcell.NewRGBColor(0xff, 0xff, 0xff) || bg != tcell.NewRGBColor(0x33, 0x33, 0x33) || attr&tcell.AttrBold == 0 {
		t.Errorf("StatusBar = %v %v %v", fg, bg, attr)
	}
	if _, ok := th.Styles[StyleFrame]; !ok {
		t.Error("built-in styles were not inherited")
	}
}

func TestParseThemeRejectsBadPaper(t *testing.T) {
	if _, err := ParseTheme(`paper = "white"`); err == nil {
		t.Error("expected error")
	}
}

func TestManagerLoadsDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mono.toml"), []byte(`swatches = ["#000000"]`), 0o644); err != nil {
		t.Fatal(err)
	}
	m := &Manager{themes: map[string]*Theme{}}
	m.add(ScribbleDark)
	m.activeTheme = ScribbleDark
	if err := m.LoadThemesFromDir(dir); err != nil {
		t.Fatal(err)
	}
	if err := m.SetTheme("MONO"); err != nil {
		t.Fatal(err)
	}
	if m.Current().Name != "mono" {
		t.Errorf("current = %s", m.Current().Name)
	}
	if err := m.SetTheme("absent"); err == nil {
		t.Error("expected error for unknown theme")
	}
	if err := m.LoadThemesFromDir(filepath.Join(dir, "missing")); err != nil {
		t.Errorf("missing dir: %v", err)
	}
}
