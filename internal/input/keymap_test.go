package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestProcessEvent(t *testing.T) {
	p := NewInputProcessor()
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Action
		key  string
	}{
		{"grid", tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModNone), ActionToggleGrid, "g"},
		{"undo control key", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), ActionUndo, "ctrl+z"},
		{"redo control key", tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl), ActionRedo, "ctrl+y"},
		{"undo cmd rune", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModMeta), ActionUndo, "cmd+z"},
		{"redo cmd rune", tcell.NewEventKey(tcell.KeyRune, 'y', tcell.ModMeta), ActionRedo, "cmd+y"},
		{"delete clears", tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone), ActionClear, "delete"},
		{"export", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), ActionExport, "ctrl+s"},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionCancel, "esc"},
		{"command mode", tcell.NewEventKey(tcell.KeyRune, ':', tcell.ModNone), ActionEnterCommandMode, ":"},
		{"tool", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), ActionSelectTool, "r"},
		{"plain rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), ActionInsertRune, "q"},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModAlt), ActionUnknown, "alt+g"},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), ActionDeleteCharBackward, "backspace"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ProcessEvent(tt.ev)
			if got.Action != tt.want {
				t.Errorf("action = %v, want %v", got.Action, tt.want)
			}
			if got.Key != tt.key {
				t.Errorf("key = %q, want %q", got.Key, tt.key)
			}
		})
	}
}

func TestToolKeysAreBound(t *testing.T) {
	p := NewInputProcessor()
	for r, name := range ToolKeys {
		ev := p.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
		if ev.Action != ActionSelectTool || ev.Rune != r {
			t.Errorf("%q (%s) decoded as %v/%q", r, name, ev.Action, ev.Rune)
		}
	}
}
