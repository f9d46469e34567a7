package modehandler

import (
	"github.com/bethropolis/scribble/internal/input"
	"github.com/bethropolis/scribble/internal/logger"
)

// handleActionText edits the text tool content. Enter applies it, Esc
// discards the edit.
func (mh *ModeHandler) handleActionText(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionInsertRune, input.ActionSelectTool, input.ActionToggleGrid,
		input.ActionEditText, input.ActionWidthUp, input.ActionWidthDown,
		input.ActionCycleColor, input.ActionEnterCommandMode:
		mh.textBuffer += string(actionEvent.Rune)

	case input.ActionDeleteCharBackward:
		mh.textBuffer = dropLastCluster(mh.textBuffer)

	case input.ActionInsertNewLine:
		mh.canvas.SetTextContent(mh.textBuffer)
		mh.statusBar.SetTemporaryMessage("Text set to %q", mh.canvas.Text())
		mh.textBuffer = ""
		mh.currentMode = ModeNormal

	case input.ActionCancel, input.ActionQuit:
		mh.textBuffer = ""
		mh.currentMode = ModeNormal
		logger.Debugf("ModeHandler: Text edit cancelled")

	default:
		return false
	}
	return true
}
