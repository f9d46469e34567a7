package input

// Action is an operation requested by a key press.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit // quit without the unsaved-drawing warning

	// --- Canvas ---
	ActionUndo
	ActionRedo
	ActionToggleGrid
	ActionClear
	ActionExport
	ActionCopyDataURL

	// --- Tools and style ---
	ActionSelectTool // Rune carries the tool key
	ActionWidthUp
	ActionWidthDown
	ActionCycleColor

	// --- Prompts ---
	ActionEnterCommandMode
	ActionEditText
	ActionInsertRune
	ActionInsertNewLine
	ActionDeleteCharBackward
	ActionCancel
)

var actionNames = map[Action]string{
	ActionUnknown:            "unknown",
	ActionQuit:               "quit",
	ActionForceQuit:          "force-quit",
	ActionUndo:               "undo",
	ActionRedo:               "redo",
	ActionToggleGrid:         "toggle-grid",
	ActionClear:              "clear",
	ActionExport:             "export",
	ActionCopyDataURL:        "copy",
	ActionSelectTool:         "select-tool",
	ActionWidthUp:            "width-up",
	ActionWidthDown:          "width-down",
	ActionCycleColor:         "cycle-color",
	ActionEnterCommandMode:   "command-mode",
	ActionEditText:           "edit-text",
	ActionInsertRune:         "insert-rune",
	ActionInsertNewLine:      "newline",
	ActionDeleteCharBackward: "backspace",
	ActionCancel:             "cancel",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// ActionEvent is a decoded key press.
type ActionEvent struct {
	Action Action
	Rune   rune // for ActionInsertRune and ActionSelectTool
	Key    string
}
