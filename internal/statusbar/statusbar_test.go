package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/scribble/internal/theme"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func row(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) > 0 {
			b.WriteString(string(c.Runes))
		}
	}
	return b.String()
}

func TestDrawInfo(t *testing.T) {
	s := newScreen(t, 80, 3)
	sb := New(DefaultConfig())
	sb.SetInfo(Info{Tool: "pen", Color: "#111827", Width: 3, W: 600, H: 350, Undo: 1})
	sb.Draw(s, 80, 3, theme.ScribbleDark)
	s.Show()

	line := row(s, 2)
	if !strings.Contains(line, "pen #111827 w3 grid:off") {
		t.Errorf("left side missing: %q", line)
	}
	if !strings.Contains(line, "600x350 undo:1 redo:0 NORMAL") {
		t.Errorf("right side missing: %q", line)
	}
}

func TestDrawTruncatesNarrow(t *testing.T) {
	s := newScreen(t, 12, 1)
	sb := New(DefaultConfig())
	sb.SetInfo(Info{Tool: "rectangle", Color: "#111827", Width: 3, W: 600, H: 350})
	sb.Draw(s, 12, 1, theme.ScribbleDark)
	s.Show()

	line := row(s, 0)
	if strings.Contains(line, "undo") {
		t.Errorf("right side should be dropped: %q", line)
	}
	if !strings.Contains(line, "…") {
		t.Errorf("expected ellipsis: %q", line)
	}
}

func TestTemporaryMessageExpires(t *testing.T) {
	sb := New(Config{MessageTimeout: time.Second})
	now := time.Unix(100, 0)
	sb.now = func() time.Time { return now }

	sb.SetTemporaryMessage("exported %d bytes", 42)
	if got := sb.Message(); got != "exported 42 bytes" {
		t.Errorf("message = %q", got)
	}
	now = now.Add(2 * time.Second)
	if got := sb.Message(); got != "" {
		t.Errorf("message after timeout = %q", got)
	}
}

func TestPromptWins(t *testing.T) {
	s := newScreen(t, 40, 1)
	sb := New(DefaultConfig())
	sb.SetTemporaryMessage("hello")
	sb.SetPrompt(":tool pen")
	sb.Draw(s, 40, 1, theme.ScribbleDark)
	s.Show()

	if line := row(s, 0); !strings.HasPrefix(line, ":tool pen") {
		t.Errorf("line = %q", line)
	}
}
