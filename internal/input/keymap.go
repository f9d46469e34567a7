package input

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys to actions.
type Keymap map[tcell.Key]Action
type RuneKeymap map[rune]Action

// ToolKeys maps a rune to the tool name it selects.
var ToolKeys = map[rune]string{
	'p': "pen",
	'e': "eraser",
	'l': "line",
	'r': "rectangle",
	'c': "circle",
	'x': "text",
}

// InputProcessor translates tcell key events into ActionEvents. It is mode
// agnostic; the mode handler decides whether a rune is a command or text.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
}

// NewInputProcessor creates a processor with the default bindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
	p.keymap[tcell.KeyDelete] = ActionClear
	p.keymap[tcell.KeyEscape] = ActionCancel
	p.keymap[tcell.KeyEnter] = ActionInsertNewLine
	p.keymap[tcell.KeyCtrlZ] = ActionUndo
	p.keymap[tcell.KeyCtrlY] = ActionRedo
	p.keymap[tcell.KeyCtrlS] = ActionExport
	p.keymap[tcell.KeyCtrlQ] = ActionForceQuit
	p.keymap[tcell.KeyCtrlC] = ActionQuit

	p.runeKeymap[':'] = ActionEnterCommandMode
	p.runeKeymap['g'] = ActionToggleGrid
	p.runeKeymap['t'] = ActionEditText
	p.runeKeymap['['] = ActionWidthDown
	p.runeKeymap[']'] = ActionWidthUp
	p.runeKeymap['n'] = ActionCycleColor
	for r := range ToolKeys {
		p.runeKeymap[r] = ActionSelectTool
	}
}

// ProcessEvent decodes a key event. Runes without a binding come back as
// ActionInsertRune so prompts can consume them.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()
	r := ev.Rune()
	name := KeyName(ev)

	// ctrl/cmd + z/y delivered as a modified rune rather than a control key.
	if key == tcell.KeyRune && mod&(tcell.ModCtrl|tcell.ModMeta) != 0 {
		switch r {
		case 'z', 'Z':
			return ActionEvent{Action: ActionUndo, Key: name}
		case 'y', 'Y':
			return ActionEvent{Action: ActionRedo, Key: name}
		case 's', 'S':
			return ActionEvent{Action: ActionExport, Key: name}
		}
		return ActionEvent{Action: ActionUnknown, Key: name}
	}

	if action, ok := p.keymap[key]; ok {
		return ActionEvent{Action: action, Key: name}
	}

	if key == tcell.KeyRune {
		if mod&tcell.ModAlt != 0 {
			return ActionEvent{Action: ActionUnknown, Key: name}
		}
		if action, ok := p.runeKeymap[r]; ok {
			return ActionEvent{Action: action, Rune: r, Key: name}
		}
		return ActionEvent{Action: ActionInsertRune, Rune: r, Key: name}
	}

	return ActionEvent{Action: ActionUnknown, Key: name}
}

// KeyName renders a key event in the host-neutral form used by events,
// such as "g", "ctrl+z" or "delete".
func KeyName(ev *tcell.EventKey) string {
	var parts []string
	mod := ev.Modifiers()
	key := ev.Key()

	switch key {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyTab:
		return "tab"
	}
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+int(key-tcell.KeyCtrlA)))
	}
	if mod&tcell.ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if mod&tcell.ModMeta != 0 {
		parts = append(parts, "cmd")
	}
	if mod&tcell.ModAlt != 0 {
		parts = append(parts, "alt")
	}
	switch key {
	case tcell.KeyRune:
		parts = append(parts, strings.ToLower(string(ev.Rune())))
	case tcell.KeyDelete:
		parts = append(parts, "delete")
	case tcell.KeyEscape:
		parts = append(parts, "esc")
	default:
		parts = append(parts, strings.ToLower(tcell.KeyNames[key]))
	}
	return strings.Join(parts, "+")
}
