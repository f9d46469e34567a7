package modehandler

import (
	"github.com/bethropolis/scribble/internal/input"
	"github.com/bethropolis/scribble/internal/logger"
)

// executeAction handles a key in ModeNormal. Shortcuts that have a ':'
// command equivalent run through the registry so both paths behave alike.
func (mh *ModeHandler) executeAction(actionEvent input.ActionEvent) bool {
	processed := true

	switch actionEvent.Action {
	case input.ActionEnterCommandMode:
		mh.currentMode = ModeCommand
		mh.cmdBuffer = ""
		logger.Debugf("ModeHandler: Entering Command Mode")

	case input.ActionEditText:
		mh.currentMode = ModeText
		mh.textBuffer = mh.canvas.Text()
		logger.Debugf("ModeHandler: Editing text tool content")

	case input.ActionQuit, input.ActionCancel:
		mh.RequestQuit(false)
	case input.ActionForceQuit:
		mh.RequestQuit(true)

	case input.ActionUndo:
		mh.runCommand("undo", nil)
	case input.ActionRedo:
		mh.runCommand("redo", nil)
	case input.ActionToggleGrid:
		mh.runCommand("grid", nil)
	case input.ActionClear:
		mh.runCommand("clear", nil)
	case input.ActionExport:
		mh.runCommand("export", nil)
	case input.ActionCopyDataURL:
		mh.runCommand("copy", nil)

	case input.ActionSelectTool:
		name, ok := input.ToolKeys[actionEvent.Rune]
		if !ok {
			processed = false
			break
		}
		mh.runCommand("tool", []string{name})

	case input.ActionWidthUp:
		w := mh.canvas.SetStrokeWidth(mh.canvas.StrokeWidth() + 1)
		mh.statusBar.SetTemporaryMessage("Width %d", w)
	case input.ActionWidthDown:
		w := mh.canvas.SetStrokeWidth(mh.canvas.StrokeWidth() - 1)
		mh.statusBar.SetTemporaryMessage("Width %d", w)

	case input.ActionCycleColor:
		next := mh.currentTheme().NextSwatch(mh.canvas.ColorHex())
		if err := mh.canvas.SetColor(next); err != nil {
			mh.statusBar.SetTemporaryMessage("Color: %v", err)
		}

	default:
		processed = false
	}

	if processed && actionEvent.Action != input.ActionQuit && actionEvent.Action != input.ActionCancel {
		mh.forceQuitPending = false
	}
	return processed
}
