package plugin

import (
	"github.com/bethropolis/scribble/internal/event"
)

// CommandFunc is a ':' command. It receives the words after the name.
type CommandFunc func(args []string) error

// CanvasAPI is what plugins may use. Every method except Post must be
// called on the host loop, which is where commands and event handlers
// already run; background goroutines wrap their work in Post.
type CanvasAPI interface {
	// --- Canvas state (read-only) ---
	CanvasSize() (w, h int)
	IsModified() bool
	HistoryDepth() (undo, redo int)
	Commits() int
	InkCoverage() float64
	ToolName() string

	// --- Export ---
	ExportFile(path string) error

	// --- Scheduling ---
	Post(fn func())

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data any)
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Commands and status ---
	RegisterCommand(name string, cmdFunc CommandFunc) error
	SetStatusMessage(format string, args ...any)

	// --- Theme ---
	SetTheme(name string) error
	ListThemes() []string

	// --- Configuration ---
	GetPluginConfigValue(pluginName, key string) (any, bool)
}

// Plugin is implemented by every plugin.
type Plugin interface {
	// Name returns the unique identifier of the plugin; it is also the
	// key of its [plugins.<name>] config table.
	Name() string

	// Initialize is called once after the canvas exists. Plugins subscribe
	// to events and register commands here.
	Initialize(api CanvasAPI) error

	// Shutdown is called once when the host exits.
	Shutdown() error
}
