// Package event is the synchronous publish/subscribe bus connecting the
// canvas to hosts and plugins.
package event

import (
	"fmt"

	"github.com/bethropolis/scribble/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Canvas events
	TypeCommitted    // a gesture or clear was recorded in history
	TypeUndone       // history stepped back
	TypeRedone       // history stepped forward
	TypeCleared      // the surface was wiped
	TypeResized      // the logical drawing area changed
	TypeToolChanged  // a different tool was selected
	TypeStyleChanged // color, width or text content changed
	TypeGridToggled  // grid visibility flipped
	TypeExported     // an image was written or copied

	// Input
	TypeKeyPressed

	// Application lifecycle
	TypeAppReady
	TypeAppQuit

	TypeThemeChanged
)

var typeNames = map[Type]string{
	TypeUnknown:      "unknown",
	TypeCommitted:    "committed",
	TypeUndone:       "undone",
	TypeRedone:       "redone",
	TypeCleared:      "cleared",
	TypeResized:      "resized",
	TypeToolChanged:  "tool-changed",
	TypeStyleChanged: "style-changed",
	TypeGridToggled:  "grid-toggled",
	TypeExported:     "exported",
	TypeKeyPressed:   "key-pressed",
	TypeAppReady:     "app-ready",
	TypeAppQuit:      "app-quit",
	TypeThemeChanged: "theme-changed",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Event is the structure passed through the bus.
type Event struct {
	Type Type
	Data any
}

// CommittedData describes a new history entry.
type CommittedData struct {
	EntryID   string
	UndoDepth int
}

// HistoryData accompanies undo and redo.
type HistoryData struct {
	UndoDepth int
	RedoDepth int
}

// ResizedData carries the new logical size.
type ResizedData struct {
	Width, Height int
	Deferred      bool // the request waited for a gesture to finish
}

// ToolChangedData names the selected tool.
type ToolChangedData struct {
	Tool string
}

// StyleChangedData carries the drawing parameters after a change.
type StyleChangedData struct {
	Color string // #rrggbb
	Width int
	Text  string
}

// GridToggledData carries the new grid visibility.
type GridToggledData struct {
	Visible bool
}

// ExportedData describes an exported image.
type ExportedData struct {
	Path   string // empty when the image went to the clipboard
	Format string
	Bytes  int
}

// KeyPressedData is a host-neutral key description such as "ctrl+z" or "g".
type KeyPressedData struct {
	Key string
}

// PointerData is attached to debug traces of pointer input.
type PointerData struct {
	Pos types.Point
}

// ThemeChangedData names the theme now in use.
type ThemeChangedData struct {
	Name string
}

// AppReadyData is sent once the host has mounted the canvas.
type AppReadyData struct{}

// AppQuitData is sent just before shutdown.
type AppQuitData struct{}
