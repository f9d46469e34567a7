package modehandler

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/scribble/internal/input"
	"github.com/bethropolis/scribble/internal/logger"
)

// handleActionCommand handles keys while the ':' prompt is open.
func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionInsertRune, input.ActionSelectTool, input.ActionToggleGrid,
		input.ActionEditText, input.ActionWidthUp, input.ActionWidthDown,
		input.ActionCycleColor, input.ActionEnterCommandMode:
		// Bound runes are plain text inside the prompt.
		mh.cmdBuffer += string(actionEvent.Rune)

	case input.ActionDeleteCharBackward:
		if mh.cmdBuffer == "" {
			mh.currentMode = ModeNormal
			logger.Debugf("ModeHandler: Exiting Command Mode via Backspace")
			break
		}
		mh.cmdBuffer = dropLastCluster(mh.cmdBuffer)

	case input.ActionInsertNewLine:
		cmd := mh.cmdBuffer
		mh.cmdBuffer = ""
		mh.currentMode = ModeNormal
		mh.ExecuteCommand(cmd)

	case input.ActionCancel, input.ActionQuit:
		mh.currentMode = ModeNormal
		mh.cmdBuffer = ""
		logger.Debugf("ModeHandler: Canceled Command Mode via Escape")

	default:
		return false
	}
	return true
}

// ExecuteCommand parses and runs a command line such as "tool pen".
func (mh *ModeHandler) ExecuteCommand(line string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return
	}
	mh.runCommand(parts[0], parts[1:])
}

func (mh *ModeHandler) runCommand(name string, args []string) {
	cmdFunc, exists := mh.commands[name]
	if !exists {
		mh.statusBar.SetTemporaryMessage("Unknown command: %s", name)
		return
	}
	logger.Debugf("ModeHandler: Executing command ':%s' with args %v", name, args)
	if err := cmdFunc(args); err != nil {
		mh.statusBar.SetTemporaryMessage("Error executing command '%s': %v", name, err)
	}
}

// dropLastCluster removes the final grapheme cluster of s.
func dropLastCluster(s string) string {
	last := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		if len(rest) == 0 {
			return s[:last]
		}
		last += len(cluster)
	}
	return s
}
