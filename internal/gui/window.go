package gui

import (
	"fmt"
	"image/color"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/bethropolis/scribble/internal/config"
	"github.com/bethropolis/scribble/internal/core"
	"github.com/bethropolis/scribble/internal/event"
	"github.com/bethropolis/scribble/internal/export"
	"github.com/bethropolis/scribble/internal/logger"
	"github.com/bethropolis/scribble/internal/theme"
)

// Window is the desktop host: toolbar, board and a status line.
type Window struct {
	cfg      *config.Config
	win      fyne.Window
	canvas   *core.Canvas
	events   *event.Manager
	board    *Board
	status   *widget.Label
	controls controls
}

// NewWindow builds the main window on a. The caller shows it.
func NewWindow(a fyne.App, cfg *config.Config) (*Window, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	events := event.NewManager()
	c, err := core.New(core.OptionsFromConfig(cfg), events)
	if err != nil {
		return nil, fmt.Errorf("canvas initialization failed: %w", err)
	}

	w := &Window{
		cfg:    cfg,
		win:    a.NewWindow("Scribble"),
		canvas: c,
		events: events,
		status: widget.NewLabel(""),
	}
	w.board = NewBoard(c, color.White)
	w.board.OnChanged = w.refreshStatus

	toolbar := w.newToolbar(theme.DefaultSwatches)
	w.win.SetContent(container.NewBorder(toolbar, w.status, nil, nil, w.board))

	maxW, maxH := c.MaxSize()
	w.win.Resize(fyne.NewSize(float32(maxW)+32, float32(maxH)+96))

	w.subscribe()
	w.installShortcuts()
	w.refreshStatus()
	return w, nil
}

// ShowAndRun shows the window and runs the fyne event loop.
func (w *Window) ShowAndRun() {
	w.events.Dispatch(event.TypeAppReady, event.AppReadyData{})
	w.win.ShowAndRun()
	w.events.Dispatch(event.TypeAppQuit, event.AppQuitData{})
}

// Board returns the drawing widget.
func (w *Window) Board() *Board { return w.board }

// subscribe keeps the toolbar and status in step with the canvas, whatever
// changed it.
func (w *Window) subscribe() {
	refresh := func(event.Event) bool {
		w.refreshStatus()
		return false
	}
	for _, t := range []event.Type{
		event.TypeCommitted, event.TypeUndone, event.TypeRedone,
		event.TypeResized, event.TypeExported,
	} {
		w.events.Subscribe(t, refresh)
	}

	w.events.Subscribe(event.TypeToolChanged, func(e event.Event) bool {
		if d, ok := e.Data.(event.ToolChangedData); ok && w.controls.tool.Selected != d.Tool {
			w.controls.tool.SetSelected(d.Tool)
		}
		w.refreshStatus()
		return false
	})
	w.events.Subscribe(event.TypeStyleChanged, func(e event.Event) bool {
		if d, ok := e.Data.(event.StyleChangedData); ok && int(w.controls.width.Value) != d.Width {
			w.controls.width.SetValue(float64(d.Width))
		}
		w.refreshStatus()
		return false
	})
	w.events.Subscribe(event.TypeGridToggled, func(e event.Event) bool {
		if d, ok := e.Data.(event.GridToggledData); ok && w.controls.grid.Checked != d.Visible {
			w.controls.grid.SetChecked(d.Visible)
		}
		w.board.Refresh()
		return false
	})
}

func (w *Window) installShortcuts() {
	cv := w.win.Canvas()
	cv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { w.undo() })
	cv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { w.redo() })
	cv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { w.exportDialog() })
	// Typed keys only reach the canvas when no entry has focus.
	cv.SetOnTypedRune(w.typedRune)
	cv.SetOnTypedKey(w.typedKey)
}

func (w *Window) typedRune(r rune) {
	if r == 'g' || r == 'G' {
		w.canvas.ToggleGrid()
	}
}

func (w *Window) typedKey(ev *fyne.KeyEvent) {
	if ev.Name == fyne.KeyDelete {
		w.clear()
	}
}

func (w *Window) undo() {
	if _, err := w.canvas.Undo(); err != nil {
		w.showError(err)
	}
	w.board.Refresh()
}

func (w *Window) redo() {
	if _, err := w.canvas.Redo(); err != nil {
		w.showError(err)
	}
	w.board.Refresh()
}

func (w *Window) clear() {
	if err := w.canvas.Clear(); err != nil {
		w.showError(err)
	}
	w.board.Refresh()
}

func (w *Window) exportDialog() {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			w.showError(err)
			return
		}
		if wc == nil {
			return // cancelled
		}
		defer func() {
			if cerr := wc.Close(); cerr != nil {
				logger.Errorf("GUI: closing export: %v", cerr)
			}
		}()
		name := wc.URI().Name()
		f := export.FormatForPath(name, export.Format(w.cfg.Export.Format))
		if err := w.canvas.ExportTo(wc, wc.URI().String(), f); err != nil {
			w.showError(err)
		}
	}, w.win)
	d.SetFileName(filepath.Base(w.cfg.Export.Path))
	d.Show()
}

func (w *Window) copyDataURL() {
	if err := w.canvas.CopyDataURL(); err != nil {
		w.showError(err)
		return
	}
	w.status.SetText("Copied PNG data URL to the clipboard")
}

func (w *Window) showError(err error) {
	logger.Errorf("GUI: %v", err)
	dialog.ShowError(err, w.win)
}

// statusText summarizes the canvas for the bottom label.
func statusText(c *core.Canvas) string {
	w, h := c.Size()
	undo, redo := c.Depth()
	mod := ""
	if c.Modified() {
		mod = " [+]"
	}
	return fmt.Sprintf("%s | %s | width %d | %dx%d | undo %d redo %d%s",
		c.Tool(), c.ColorHex(), c.StrokeWidth(), w, h, undo, redo, mod)
}

func (w *Window) refreshStatus() {
	w.status.SetText(statusText(w.canvas))
	setEnabled(w.controls.undo, w.canvas.CanUndo())
	setEnabled(w.controls.redo, w.canvas.CanRedo())
}

func setEnabled(btn *widget.Button, on bool) {
	if btn == nil {
		return
	}
	if on {
		btn.Enable()
	} else {
		btn.Disable()
	}
}
