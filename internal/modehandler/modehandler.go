package modehandler

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/scribble/internal/core"
	"github.com/bethropolis/scribble/internal/event"
	"github.com/bethropolis/scribble/internal/input"
	"github.com/bethropolis/scribble/internal/logger"
	"github.com/bethropolis/scribble/internal/plugin"
	"github.com/bethropolis/scribble/internal/statusbar"
	"github.com/bethropolis/scribble/internal/theme"
)

// InputMode is the keyboard state of the terminal host.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
	ModeText // editing the text tool content
)

func (m InputMode) String() string {
	switch m {
	case ModeCommand:
		return "COMMAND"
	case ModeText:
		return "TEXT"
	default:
		return "NORMAL"
	}
}

// ModeHandler owns the input modes and the command registry.
type ModeHandler struct {
	canvas         *core.Canvas
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	currentTheme   func() *theme.Theme
	quitSignal     chan<- struct{}

	currentMode      InputMode
	cmdBuffer        string
	textBuffer       string
	commands         map[string]plugin.CommandFunc
	forceQuitPending bool
	quitting         bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Canvas         *core.Canvas
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	Theme          func() *theme.Theme
	QuitSignal     chan<- struct{}
}

// New creates a ModeHandler. It panics on missing dependencies, which is a
// programming error during setup.
func New(cfg Config) *ModeHandler {
	if cfg.Canvas == nil || cfg.InputProcessor == nil || cfg.EventManager == nil || cfg.StatusBar == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	if cfg.Theme == nil {
		cfg.Theme = func() *theme.Theme { return theme.ScribbleDark }
	}
	return &ModeHandler{
		canvas:         cfg.Canvas,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		currentTheme:   cfg.Theme,
		quitSignal:     cfg.QuitSignal,
		currentMode:    ModeNormal,
		commands:       make(map[string]plugin.CommandFunc),
	}
}

// HandleKeyEvent routes a key event by mode. It reports whether a redraw
// is needed.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	actionEvent := mh.inputProcessor.ProcessEvent(ev)
	mh.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{Key: actionEvent.Key})

	var processed bool
	switch mh.currentMode {
	case ModeNormal:
		processed = mh.executeAction(actionEvent)
	case ModeCommand:
		processed = mh.handleActionCommand(actionEvent)
	case ModeText:
		processed = mh.handleActionText(actionEvent)
	default:
		logger.Warnf("ModeHandler: Unknown input mode: %v", mh.currentMode)
	}
	mh.updatePrompt()
	return processed || mh.forceQuitPending
}

// updatePrompt mirrors the prompt buffers onto the status bar.
func (mh *ModeHandler) updatePrompt() {
	switch mh.currentMode {
	case ModeCommand:
		mh.statusBar.SetPrompt(":" + mh.cmdBuffer)
	case ModeText:
		mh.statusBar.SetPrompt("text: " + mh.textBuffer)
	default:
		mh.statusBar.SetPrompt("")
	}
}

// RegisterCommand adds a ':' command.
func (mh *ModeHandler) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	mh.commands[name] = cmdFunc
	logger.Debugf("ModeHandler: Registered command ':%s'", name)
	return nil
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCommandBuffer returns the command being typed, or "".
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return mh.cmdBuffer
	}
	return ""
}

// GetTextBuffer returns the text being edited, or "".
func (mh *ModeHandler) GetTextBuffer() string {
	if mh.currentMode == ModeText {
		return mh.textBuffer
	}
	return ""
}

// RequestQuit asks the host to exit, warning once about unexported changes
// unless force is set.
func (mh *ModeHandler) RequestQuit(force bool) {
	if mh.quitting {
		return
	}
	if !force && mh.canvas.Modified() && !mh.forceQuitPending {
		mh.statusBar.SetTemporaryMessage("Unexported changes! Press Esc again or Ctrl+Q to quit.")
		mh.forceQuitPending = true
		return
	}
	mh.quitting = true
	close(mh.quitSignal)
}
