package app

import (
	"fmt"

	"github.com/bethropolis/scribble/internal/event"
	"github.com/bethropolis/scribble/internal/export"
	"github.com/bethropolis/scribble/internal/logger"
	"github.com/bethropolis/scribble/internal/plugin"
)

var _ plugin.CanvasAPI = (*appCanvasAPI)(nil)

// appCanvasAPI is the App's implementation of plugin.CanvasAPI.
type appCanvasAPI struct {
	app *App
}

func newCanvasAPI(app *App) *appCanvasAPI {
	return &appCanvasAPI{app: app}
}

// --- Canvas state ---

func (api *appCanvasAPI) CanvasSize() (w, h int) {
	return api.app.canvas.Size()
}

func (api *appCanvasAPI) IsModified() bool {
	return api.app.canvas.Modified()
}

func (api *appCanvasAPI) HistoryDepth() (undo, redo int) {
	return api.app.canvas.Depth()
}

func (api *appCanvasAPI) Commits() int {
	return api.app.canvas.Commits()
}

func (api *appCanvasAPI) InkCoverage() float64 {
	return api.app.canvas.Coverage()
}

func (api *appCanvasAPI) ToolName() string {
	return api.app.canvas.Tool().String()
}

// ExportFile writes the drawing using the configured default format for
// paths without a known extension.
func (api *appCanvasAPI) ExportFile(path string) error {
	return api.app.canvas.ExportFile(path, export.Format(api.app.cfg.Export.Format))
}

// Post runs fn on the app loop. It must not be called from the loop itself.
func (api *appCanvasAPI) Post(fn func()) {
	api.app.post(fn)
}

// --- Event Bus Interaction ---

func (api *appCanvasAPI) DispatchEvent(eventType event.Type, data any) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appCanvasAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Commands and status ---

func (api *appCanvasAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if api.app == nil || api.app.GetModeHandler() == nil {
		logger.Errorf("appCanvasAPI cannot register command '%s', app or modeHandler is nil", name)
		return fmt.Errorf("internal error: API cannot access command registration")
	}
	return api.app.GetModeHandler().RegisterCommand(name, cmdFunc)
}

func (api *appCanvasAPI) SetStatusMessage(format string, args ...any) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
	api.app.requestRedraw()
}

// --- Theme ---

func (api *appCanvasAPI) SetTheme(name string) error {
	return api.app.SetTheme(name)
}

func (api *appCanvasAPI) ListThemes() []string {
	return api.app.themeManager.ListThemes()
}

// --- Configuration ---

func (api *appCanvasAPI) GetPluginConfigValue(pluginName, key string) (any, bool) {
	return api.app.cfg.PluginValue(pluginName, key)
}
