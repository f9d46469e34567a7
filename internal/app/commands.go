package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/scribble/internal/core/tool"
	"github.com/bethropolis/scribble/internal/logger"
	"github.com/bethropolis/scribble/internal/plugin"
)

// registerAppCommands registers the built-in ':' commands. The keyboard
// shortcuts for export, copy, undo, redo, clear and grid run these too.
func registerAppCommands(app *App) {
	api := app.canvasAPI
	c := app.canvas

	cmds := map[string]plugin.CommandFunc{
		"tool": func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: tool <%s>", strings.Join(toolNames(), "|"))
			}
			return c.SetToolByName(args[0])
		},
		"color": func(args []string) error {
			if len(args) != 1 {
				api.SetStatusMessage("Color: %s", c.ColorHex())
				return nil
			}
			return c.SetColor(args[0])
		},
		"width": func(args []string) error {
			if len(args) != 1 {
				api.SetStatusMessage("Width: %d", c.StrokeWidth())
				return nil
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid width %q", args[0])
			}
			api.SetStatusMessage("Width: %d", c.SetStrokeWidth(n))
			return nil
		},
		"text": func(args []string) error {
			c.SetTextContent(strings.Join(args, " "))
			api.SetStatusMessage("Text set to %q", c.Text())
			return nil
		},
		"grid": func(args []string) error {
			if c.ToggleGrid() {
				api.SetStatusMessage("Grid on")
			} else {
				api.SetStatusMessage("Grid off")
			}
			return nil
		},
		"undo": func(args []string) error {
			ok, err := c.Undo()
			if err == nil && !ok {
				api.SetStatusMessage("Already at oldest change")
			}
			return err
		},
		"redo": func(args []string) error {
			ok, err := c.Redo()
			if err == nil && !ok {
				api.SetStatusMessage("Already at newest change")
			}
			return err
		},
		"clear": func(args []string) error {
			return c.Clear()
		},
		"export": func(args []string) error {
			path := app.cfg.Export.Path
			if len(args) > 0 {
				path = strings.Join(args, " ")
			}
			return api.ExportFile(path)
		},
		"copy": func(args []string) error {
			return c.CopyDataURL()
		},
		"size": func(args []string) error {
			if len(args) != 2 {
				w, h := c.MaxSize()
				api.SetStatusMessage("Max size: %dx%d", w, h)
				return nil
			}
			w, errW := strconv.Atoi(args[0])
			h, errH := strconv.Atoi(args[1])
			if errW != nil || errH != nil {
				return fmt.Errorf("usage: size <width> <height>")
			}
			if err := c.Configure(w, h); err != nil {
				return err
			}
			app.syncLayout()
			return nil
		},
		"theme": func(args []string) error {
			if len(args) == 0 {
				api.SetStatusMessage("Current theme: %s", app.GetTheme().Name)
				return nil
			}
			themeName := strings.Join(args, " ")
			if err := api.SetTheme(themeName); err != nil {
				return fmt.Errorf("theme '%s' not found. Available: %s", themeName, strings.Join(api.ListThemes(), ", "))
			}
			api.SetStatusMessage("Theme set to: %s", themeName)
			return nil
		},
		"themes": func(args []string) error {
			api.SetStatusMessage("Available themes: %s", strings.Join(api.ListThemes(), ", "))
			return nil
		},
		"q": func(args []string) error {
			app.modeHandler.RequestQuit(false)
			return nil
		},
		"q!": func(args []string) error {
			app.modeHandler.RequestQuit(true)
			return nil
		},
	}

	for name, fn := range cmds {
		if err := api.RegisterCommand(name, fn); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", name, err)
		}
	}
}

func toolNames() []string {
	var names []string
	for _, k := range tool.Kinds() {
		names = append(names, k.String())
	}
	return names
}
