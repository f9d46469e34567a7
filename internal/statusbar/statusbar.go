package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/scribble/internal/config"
	"github.com/bethropolis/scribble/internal/theme"
)

// Config defines the behavior of the status bar.
type Config struct {
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		MessageTimeout: config.MessageTimeout,
	}
}

// Info is the canvas state shown on the left side of the bar.
type Info struct {
	Tool      string
	Color     string // #rrggbb
	Width     int
	Text      string
	Grid      bool
	W, H      int
	Undo      int
	Redo      int
	Modified  bool
	Drawing   bool
	InputMode string // NORMAL, COMMAND, TEXT
}

// StatusBar is the single bottom line of the terminal host.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	info   Info
	prompt string // shown instead of the info while a prompt is open

	tempMessage     string
	tempMessageTime time.Time
	now             func() time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{
		config: config,
		now:    time.Now,
	}
}

// SetInfo replaces the canvas state shown.
func (sb *StatusBar) SetInfo(info Info) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.info = info
}

// SetPrompt shows a prompt line such as ":tool pen". An empty string
// hides it.
func (sb *StatusBar) SetPrompt(prompt string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.prompt = prompt
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...any) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Message returns the temporary message if it is still active.
func (sb *StatusBar) Message() string {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.activeMessage()
}

// activeMessage expires the temporary message. Caller holds the lock.
func (sb *StatusBar) activeMessage() string {
	if sb.tempMessageTime.IsZero() {
		return ""
	}
	if sb.now().Sub(sb.tempMessageTime) > sb.config.MessageTimeout {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
		return ""
	}
	return sb.tempMessage
}

func (i Info) left() string {
	grid := "off"
	if i.Grid {
		grid = "on"
	}
	mod := ""
	if i.Modified {
		mod = " [+]"
	}
	s := fmt.Sprintf(" %s %s w%d grid:%s%s", i.Tool, i.Color, i.Width, grid, mod)
	if i.Tool == "text" {
		s += fmt.Sprintf(" %q", i.Text)
	}
	return s
}

func (i Info) right() string {
	mode := i.InputMode
	if mode == "" {
		mode = "NORMAL"
	}
	return fmt.Sprintf("%dx%d undo:%d redo:%d %s ", i.W, i.H, i.Undo, i.Redo, mode)
}

// Draw renders the bar on the last screen row.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, th *theme.Theme) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	sb.mu.Lock()
	msg := sb.activeMessage()
	info, prompt := sb.info, sb.prompt
	sb.mu.Unlock()

	style := th.GetStyle(theme.StyleStatusBar)
	var left, right string
	switch {
	case prompt != "":
		left = prompt
		style = th.GetStyle(theme.StyleStatusBarPrompt)
	case msg != "":
		left = " " + msg
		style = th.GetStyle(theme.StyleStatusBarMessage)
	default:
		left = info.left()
		right = info.right()
	}

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	// The right side yields to the left when space runs out.
	rightWidth := runewidth.StringWidth(right)
	leftLimit := width
	if rightWidth > 0 && runewidth.StringWidth(left)+rightWidth+1 <= width {
		leftLimit = width - rightWidth - 1
		drawString(screen, width-rightWidth, y, width, right, style)
	}
	leftStyle := style
	if prompt == "" && msg == "" && info.Modified {
		leftStyle = th.GetStyle(theme.StyleStatusBarModified)
	}
	drawString(screen, 0, y, leftLimit, runewidth.Truncate(left, leftLimit, "…"), leftStyle)

	if prompt != "" {
		cx := uniseg.StringWidth(prompt)
		if cx < width {
			screen.ShowCursor(cx, y)
		}
	} else {
		screen.HideCursor()
	}
}

// drawString writes text grapheme by grapheme, stopping at limit.
func drawString(screen tcell.Screen, x, y, limit int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		w := gr.Width()
		if x+w > limit {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += w
	}
	return x
}
