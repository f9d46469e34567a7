package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/scribble/internal/config"
	"github.com/bethropolis/scribble/internal/core/tool"
)

func newTestApp(t *testing.T, cfg *config.Config) (*App, tcell.SimulationScreen) {
	t.Helper()
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	screen := tcell.NewSimulationScreen("UTF-8")
	a, err := NewAppWithScreen(cfg, screen)
	if err != nil {
		t.Fatalf("NewAppWithScreen: %v", err)
	}
	t.Cleanup(a.tuiManager.Close)
	resize(a, screen, 80, 24)
	return a, screen
}

func resize(a *App, screen tcell.SimulationScreen, w, h int) {
	screen.SetSize(w, h)
	a.handleEvent(tcell.NewEventResize(w, h))
}

func mouse(a *App, x, y int, btn tcell.ButtonMask) {
	a.handleEvent(tcell.NewEventMouse(x, y, btn, tcell.ModNone))
}

func key(a *App, k tcell.Key, r rune) {
	a.handleEvent(tcell.NewEventKey(k, r, tcell.ModNone))
}

func typeCommand(a *App, cmd string) {
	key(a, tcell.KeyRune, ':')
	for _, r := range cmd {
		key(a, tcell.KeyRune, r)
	}
	key(a, tcell.KeyEnter, 0)
}

func statusLine(screen tcell.SimulationScreen) string {
	cells, w, h := screen.GetContents()
	var sb strings.Builder
	for _, c := range cells[(h-1)*w:] {
		if len(c.Runes) > 0 {
			sb.WriteString(string(c.Runes))
		}
	}
	return sb.String()
}

func TestCanvasFitsTerminalWidth(t *testing.T) {
	a, screen := newTestApp(t, nil)

	// 78 usable columns of 4 pixels each.
	if w, h := a.canvas.Size(); w != 312 || h != 182 {
		t.Errorf("size = %dx%d, want 312x182", w, h)
	}

	resize(a, screen, 200, 60)
	if w, h := a.canvas.Size(); w != 600 || h != 350 {
		t.Errorf("size = %dx%d, want capped 600x350", w, h)
	}
}

func TestMouseDragDrawsAndCommits(t *testing.T) {
	a, _ := newTestApp(t, nil)

	mouse(a, 10, 5, tcell.Button1)
	mouse(a, 30, 5, tcell.Button1)
	mouse(a, 30, 5, tcell.ButtonNone)

	// Row 5 is surface y (5.5-1)*8 = 36.
	if a.canvas.Image().NRGBAAt(80, 36).A == 0 {
		t.Error("expected ink along the dragged row")
	}
	if undo, _ := a.canvas.Depth(); undo != 2 {
		t.Errorf("undo depth = %d, want 2", undo)
	}

	key(a, tcell.KeyCtrlZ, 0)
	if a.canvas.Image().NRGBAAt(80, 36).A != 0 {
		t.Error("ctrl+z should remove the stroke")
	}
}

func TestResizeDuringDragIsDeferred(t *testing.T) {
	a, screen := newTestApp(t, nil)

	mouse(a, 10, 5, tcell.Button1)
	resize(a, screen, 200, 60)
	if w, _ := a.canvas.Size(); w != 312 {
		t.Fatalf("resize applied mid-stroke: width %d", w)
	}
	if _, ok := a.canvas.PendingResize(); !ok {
		t.Fatal("expected a pending resize")
	}

	mouse(a, 10, 5, tcell.ButtonNone)
	if w, h := a.canvas.Size(); w != 600 || h != 350 {
		t.Errorf("size after release = %dx%d, want 600x350", w, h)
	}
	if got := a.adapter.Viewport().Width; got != 150 {
		t.Errorf("viewport width = %v cells, want 150", got)
	}
}

func TestCommandsDriveCanvas(t *testing.T) {
	a, _ := newTestApp(t, nil)

	typeCommand(a, "tool rectangle")
	if a.canvas.Tool() != tool.Rectangle {
		t.Errorf("tool = %v, want rectangle", a.canvas.Tool())
	}
	typeCommand(a, "width 40")
	if a.canvas.StrokeWidth() != 20 {
		t.Errorf("width = %d, want clamped 20", a.canvas.StrokeWidth())
	}
	typeCommand(a, "color #ff0000")
	if a.canvas.ColorHex() != "#ff0000" {
		t.Errorf("color = %s", a.canvas.ColorHex())
	}
	typeCommand(a, "text hello world")
	if a.canvas.Text() != "hello world" {
		t.Errorf("text = %q", a.canvas.Text())
	}
	typeCommand(a, "size 300 100")
	if w, h := a.canvas.Size(); w != 300 || h != 100 {
		t.Errorf("size = %dx%d, want 300x100", w, h)
	}
	typeCommand(a, "stats")
	if msg := a.statusBar.Message(); !strings.HasPrefix(msg, "Strokes: 0") {
		t.Errorf("stats message = %q", msg)
	}
}

func TestExportCommandWritesFile(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Export.Path = filepath.Join(t.TempDir(), "drawing.png")
	a, _ := newTestApp(t, cfg)

	mouse(a, 10, 5, tcell.Button1)
	mouse(a, 10, 5, tcell.ButtonNone)
	if !a.canvas.Modified() {
		t.Fatal("drawing should mark the canvas modified")
	}

	key(a, tcell.KeyCtrlS, 0)
	data, err := os.ReadFile(cfg.Export.Path)
	if err != nil {
		t.Fatalf("export missing: %v", err)
	}
	if !strings.HasPrefix(string(data), "\x89PNG") {
		t.Error("export is not a PNG")
	}
	if a.canvas.Modified() {
		t.Error("export should clear the modified flag")
	}
	if msg := a.statusBar.Message(); !strings.Contains(msg, "drawing.png") {
		t.Errorf("message = %q", msg)
	}
}

func TestDrawShowsStatus(t *testing.T) {
	a, screen := newTestApp(t, nil)
	key(a, tcell.KeyRune, 'g')
	a.statusBar.ResetTemporaryMessage()
	a.draw()

	line := statusLine(screen)
	for _, want := range []string{"pen", "grid:on", "312x182", "NORMAL"} {
		if !strings.Contains(line, want) {
			t.Errorf("status line %q missing %q", line, want)
		}
	}
}

func TestPostRunsOnLoop(t *testing.T) {
	a, _ := newTestApp(t, nil)
	ran := false
	a.canvasAPI.Post(func() { ran = true })

	fn := <-a.posted
	fn()
	if !ran {
		t.Error("posted function did not run")
	}
}

func TestThemeCommand(t *testing.T) {
	a, _ := newTestApp(t, nil)
	typeCommand(a, "theme scribble light")
	if got := a.GetTheme().Name; got != "Scribble Light" {
		t.Errorf("theme = %q", got)
	}
	typeCommand(a, "theme nope")
	if msg := a.statusBar.Message(); !strings.Contains(msg, "not found") {
		t.Errorf("message = %q", msg)
	}
}
