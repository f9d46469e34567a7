// Package core assembles the drawing surface, grid, tool machine and
// history into the Canvas that hosts drive.
package core

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/scribble/internal/config"
	"github.com/bethropolis/scribble/internal/core/grid"
	"github.com/bethropolis/scribble/internal/core/history"
	"github.com/bethropolis/scribble/internal/core/surface"
	"github.com/bethropolis/scribble/internal/core/tool"
	"github.com/bethropolis/scribble/internal/event"
	"github.com/bethropolis/scribble/internal/export"
	"github.com/bethropolis/scribble/internal/logger"
	"github.com/bethropolis/scribble/internal/types"
)

// MaxTextClusters bounds the text tool content in user-perceived characters.
const MaxTextClusters = 64

// Canvas is the single owner of all drawing state. It is not safe for
// concurrent use; hosts call it from one goroutine.
type Canvas struct {
	surface *surface.Surface
	grid    *grid.Overlay
	history *history.Manager
	tools   *tool.Machine
	events  *event.Manager

	maxW, maxH int
	container  image.Point
	pending    *image.Point // resize waiting for the gesture to end

	strokeWidth int
	modified    bool // changed since the last export
}

// New builds a canvas at the maximum size and commits the blank state.
// A nil event manager disables notifications.
func New(opts Options, events *event.Manager) (*Canvas, error) {
	if opts.MaxWidth <= 0 || opts.MaxHeight <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", opts.MaxWidth, opts.MaxHeight)
	}
	codec, err := surface.CodecByName(opts.Codec)
	if err != nil {
		return nil, err
	}
	gridColor, err := surface.ParseColor(opts.GridColor)
	if err != nil {
		gridColor = grid.DefaultColor
	}

	c := &Canvas{
		maxW:   opts.MaxWidth,
		maxH:   opts.MaxHeight,
		events: events,
	}
	c.surface = surface.New(c.maxW, c.maxH)
	c.grid = grid.New(c.maxW, c.maxH, opts.GridStep, gridColor)
	c.history = history.NewManager(c.surface, codec, opts.HistoryLimit)
	c.tools = tool.NewMachine(c.surface, c.commit)

	if opts.Color != "" {
		if err := c.SetColor(opts.Color); err != nil {
			logger.Warnf("Canvas: ignoring default color %q: %v", opts.Color, err)
		}
	}
	c.SetStrokeWidth(opts.StrokeWidth)
	if opts.Text != "" {
		c.SetTextContent(opts.Text)
	}
	c.grid.SetVisible(opts.ShowGrid)

	if _, err := c.history.Commit(); err != nil {
		return nil, fmt.Errorf("commit initial state: %w", err)
	}
	c.modified = false
	logger.Infof("Canvas: created %dx%d (history limit %d, codec %s)", c.maxW, c.maxH, opts.HistoryLimit, codec.Name())
	return c, nil
}

// commit records the surface and notifies subscribers.
func (c *Canvas) commit() error {
	e, err := c.history.Commit()
	if err != nil {
		return err
	}
	c.modified = true
	undo, _ := c.history.Depth()
	c.events.Dispatch(event.TypeCommitted, event.CommittedData{EntryID: e.ID, UndoDepth: undo})
	return nil
}

// Configure changes the logical maximum size and re-runs the resize
// coordinator against the last container size.
func (c *Canvas) Configure(maxW, maxH int) error {
	if maxW <= 0 || maxH <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", maxW, maxH)
	}
	c.maxW, c.maxH = maxW, maxH
	container := c.container
	if container.X <= 0 || container.Y <= 0 {
		container = image.Pt(maxW, maxH)
	}
	c.Resize(container.X, container.Y)
	return nil
}

// SetTool selects the tool for the next gesture.
func (c *Canvas) SetTool(k tool.Kind) {
	if c.tools.Tool() == k {
		return
	}
	c.tools.SetTool(k)
	c.events.Dispatch(event.TypeToolChanged, event.ToolChangedData{Tool: k.String()})
}

// SetToolByName parses and selects a tool.
func (c *Canvas) SetToolByName(name string) error {
	k, err := tool.ParseKind(name)
	if err != nil {
		return err
	}
	c.SetTool(k)
	return nil
}

// SetColor parses a hex color and uses it for subsequent draws.
func (c *Canvas) SetColor(hex string) error {
	col, err := surface.ParseColor(hex)
	if err != nil {
		return fmt.Errorf("invalid color %q: %w", hex, err)
	}
	c.tools.SetColor(col)
	c.styleChanged()
	return nil
}

// SetStrokeWidth clamps n to 1..20 and returns the applied width.
func (c *Canvas) SetStrokeWidth(n int) int {
	n = min(max(n, config.MinStrokeWidth), config.MaxStrokeWidth)
	c.strokeWidth = n
	c.tools.SetWidth(float64(n))
	c.styleChanged()
	return n
}

// SetTextContent sets the text tool content, truncated to MaxTextClusters
// grapheme clusters.
func (c *Canvas) SetTextContent(s string) {
	if uniseg.GraphemeClusterCount(s) > MaxTextClusters {
		var b strings.Builder
		g := uniseg.NewGraphemes(s)
		for n := 0; n < MaxTextClusters && g.Next(); n++ {
			b.WriteString(g.Str())
		}
		s = b.String()
	}
	c.tools.SetText(s)
	c.styleChanged()
}

func (c *Canvas) styleChanged() {
	c.events.Dispatch(event.TypeStyleChanged, event.StyleChangedData{
		Color: surface.HexColor(c.tools.Style().Color),
		Width: c.strokeWidth,
		Text:  c.tools.Text(),
	})
}

// ToggleGrid flips grid visibility and returns the new state.
func (c *Canvas) ToggleGrid() bool {
	v := c.grid.Toggle()
	c.events.Dispatch(event.TypeGridToggled, event.GridToggledData{Visible: v})
	return v
}

// SetGridVisible shows or hides the grid.
func (c *Canvas) SetGridVisible(v bool) {
	if c.grid.Visible() != v {
		c.ToggleGrid()
	}
}

// interrupt drops an in-progress gesture before an operation that replaces
// the surface, then applies any resize it was holding back.
func (c *Canvas) interrupt() {
	if c.tools.Cancel() {
		c.applyPending()
	}
}

// Undo steps back one committed state.
func (c *Canvas) Undo() (bool, error) {
	c.interrupt()
	ok, err := c.history.Undo()
	if ok {
		c.modified = true
		undo, redo := c.history.Depth()
		c.events.Dispatch(event.TypeUndone, event.HistoryData{UndoDepth: undo, RedoDepth: redo})
	}
	return ok, err
}

// Redo reapplies the most recently undone state.
func (c *Canvas) Redo() (bool, error) {
	c.interrupt()
	ok, err := c.history.Redo()
	if ok {
		c.modified = true
		undo, redo := c.history.Depth()
		c.events.Dispatch(event.TypeRedone, event.HistoryData{UndoDepth: undo, RedoDepth: redo})
	}
	return ok, err
}

// Clear wipes the surface and commits the blank state.
func (c *Canvas) Clear() error {
	c.interrupt()
	c.surface.Clear()
	c.events.Dispatch(event.TypeCleared, nil)
	return c.commit()
}

// PointerDown starts a gesture at p.
func (c *Canvas) PointerDown(p types.Point) error {
	return c.tools.PointerDown(p)
}

// PointerMove extends the active gesture.
func (c *Canvas) PointerMove(p types.Point) error {
	return c.tools.PointerMove(p)
}

// PointerUp finishes the gesture and applies a deferred resize.
func (c *Canvas) PointerUp() error {
	err := c.tools.PointerUp()
	c.applyPending()
	return err
}

// PointerLeave finishes the gesture exactly like PointerUp.
func (c *Canvas) PointerLeave() error {
	err := c.tools.PointerLeave()
	c.applyPending()
	return err
}

// ExportImage returns the drawing as PNG bytes. The grid is not included
// and history is untouched.
func (c *Canvas) ExportImage() ([]byte, error) {
	return c.Export(export.PNG)
}

// Export encodes the drawing in the given format.
func (c *Canvas) Export(f export.Format) ([]byte, error) {
	return export.Bytes(c.surface.Image(), f)
}

// ExportFile writes the drawing to path, choosing the format from the
// extension (def when it has none).
func (c *Canvas) ExportFile(path string, def export.Format) error {
	f := export.FormatForPath(path, def)
	n, err := export.WriteFile(path, c.surface.Image(), f)
	if err != nil {
		return err
	}
	c.modified = false
	c.events.Dispatch(event.TypeExported, event.ExportedData{Path: path, Format: string(f), Bytes: n})
	return nil
}

// ExportTo encodes the drawing onto w, which a host opened for name.
func (c *Canvas) ExportTo(w io.Writer, name string, f export.Format) error {
	data, err := c.Export(f)
	if err != nil {
		return err
	}
	n, err := w.Write(data)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	c.modified = false
	c.events.Dispatch(event.TypeExported, event.ExportedData{Path: name, Format: string(f), Bytes: n})
	return nil
}

// CopyDataURL puts the drawing on the clipboard as a PNG data URL.
func (c *Canvas) CopyDataURL() error {
	n, err := export.CopyDataURL(c.surface.Image())
	if err != nil {
		return err
	}
	c.events.Dispatch(event.TypeExported, event.ExportedData{Format: string(export.PNG), Bytes: n})
	return nil
}

// Image returns the live drawing buffer. Callers must not modify it.
func (c *Canvas) Image() *image.NRGBA { return c.surface.Image() }

// GridImage returns the grid layer.
func (c *Canvas) GridImage() *image.NRGBA { return c.grid.Image() }

// Size returns the logical drawing size.
func (c *Canvas) Size() (w, h int) { return c.surface.Width(), c.surface.Height() }

// MaxSize returns the configured maximum size.
func (c *Canvas) MaxSize() (w, h int) { return c.maxW, c.maxH }

// Tool returns the selected tool.
func (c *Canvas) Tool() tool.Kind { return c.tools.Tool() }

// Style returns the current stroke style.
func (c *Canvas) Style() surface.Style { return c.tools.Style() }

// StrokeWidth returns the integer stroke width.
func (c *Canvas) StrokeWidth() int { return c.strokeWidth }

// ColorHex returns the ink as #rrggbb.
func (c *Canvas) ColorHex() string { return surface.HexColor(c.tools.Style().Color) }

// Text returns the text tool content.
func (c *Canvas) Text() string { return c.tools.Text() }

// GridVisible reports grid visibility.
func (c *Canvas) GridVisible() bool { return c.grid.Visible() }

// Drawing reports whether a gesture is in progress.
func (c *Canvas) Drawing() bool { return c.tools.State() == tool.Active }

// Depth returns the undo and redo stack sizes.
func (c *Canvas) Depth() (undo, redo int) { return c.history.Depth() }

// CanUndo reports whether Undo would restore an earlier state.
func (c *Canvas) CanUndo() bool { return c.history.CanUndo() }

// CanRedo reports whether Redo would reapply an undone state.
func (c *Canvas) CanRedo() bool { return c.history.CanRedo() }

// Commits returns the number of commits recorded, including the initial one.
func (c *Canvas) Commits() int { return c.history.Commits() }

// Coverage returns the inked fraction of the surface.
func (c *Canvas) Coverage() float64 { return c.surface.Coverage() }

// Modified reports whether the drawing changed since the last file export.
func (c *Canvas) Modified() bool { return c.modified }

// Events returns the event bus, which may be nil.
func (c *Canvas) Events() *event.Manager { return c.events }
