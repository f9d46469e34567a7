package app

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/scribble/internal/config"
	"github.com/bethropolis/scribble/internal/core"
	"github.com/bethropolis/scribble/internal/core/surface"
	"github.com/bethropolis/scribble/internal/event"
	"github.com/bethropolis/scribble/internal/input"
	"github.com/bethropolis/scribble/internal/logger"
	"github.com/bethropolis/scribble/internal/modehandler"
	"github.com/bethropolis/scribble/internal/plugin"
	"github.com/bethropolis/scribble/internal/statusbar"
	"github.com/bethropolis/scribble/internal/theme"
	"github.com/bethropolis/scribble/internal/tui"
	"github.com/bethropolis/scribble/internal/utils"
)

// App wires the canvas to the terminal. Everything that touches the canvas
// runs on the goroutine executing Run.
type App struct {
	cfg           *config.Config
	tuiManager    *tui.TUI
	view          *tui.View
	layout        tui.Layout
	canvas        *core.Canvas
	adapter       *input.Adapter
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	themeManager  *theme.Manager
	modeHandler   *modehandler.ModeHandler
	canvasAPI     plugin.CanvasAPI
	paper         *color.NRGBA // overrides the theme paper when set
	messageExpiry utils.Debouncer

	// Channels managed by the App
	quit          chan struct{}
	redrawRequest chan struct{}
	posted        chan func()
	termEvents    chan tcell.Event
}

// NewApp creates the application on the real terminal.
func NewApp(cfg *config.Config) (*App, error) {
	tuiManager, err := tui.New(tcell.StyleDefault)
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	a, err := newApp(cfg, tuiManager)
	if err != nil {
		tuiManager.Close()
		return nil, err
	}
	return a, nil
}

// NewAppWithScreen creates the application on an existing screen, such as
// tcell's simulation screen.
func NewAppWithScreen(cfg *config.Config, screen tcell.Screen) (*App, error) {
	tuiManager, err := tui.NewWithScreen(screen, tcell.StyleDefault)
	if err != nil {
		return nil, err
	}
	return newApp(cfg, tuiManager)
}

func newApp(cfg *config.Config, tuiManager *tui.TUI) (*App, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	eventManager := event.NewManager()
	canvas, err := core.New(core.OptionsFromConfig(cfg), eventManager)
	if err != nil {
		return nil, fmt.Errorf("canvas initialization failed: %w", err)
	}

	themeManager := theme.NewManager(cfg.Terminal.Theme)
	statusBar := statusbar.New(statusbar.DefaultConfig())
	quitChan := make(chan struct{})

	a := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		view:          tui.NewView(cfg.Terminal.CellPixels),
		canvas:        canvas,
		adapter:       input.NewAdapter(canvas),
		statusBar:     statusBar,
		eventManager:  eventManager,
		pluginManager: plugin.NewManager(),
		themeManager:  themeManager,
		quit:          quitChan,
		redrawRequest: make(chan struct{}, 1),
		posted:        make(chan func(), 16),
		termEvents:    make(chan tcell.Event, 16),
	}
	if cfg.Terminal.Paper != config.DefaultPaper {
		if p, err := surface.ParseColor(cfg.Terminal.Paper); err == nil {
			a.paper = &p
		}
	}

	a.modeHandler = modehandler.New(modehandler.Config{
		Canvas:         canvas,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   eventManager,
		StatusBar:      statusBar,
		Theme:          themeManager.Current,
		QuitSignal:     quitChan,
	})
	a.canvasAPI = newCanvasAPI(a)

	registerAppCommands(a)
	a.subscribeStatusEvents()

	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	a.pluginManager.InitializePlugins(a.canvasAPI)

	a.relayout()
	return a, nil
}

// Run starts the application's event and drawing loop.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.pluginManager.ShutdownPlugins()
	defer a.messageExpiry.Stop()

	go a.pollEvents()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("Scribble - drag to draw | : commands | Ctrl+S export | Esc quit")
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.canvas.Modified() {
				logger.Warnf("Exited with unexported changes.")
			}
			logger.Infof("Exiting application.")
			return nil
		case ev := <-a.termEvents:
			if a.handleEvent(ev) {
				a.draw()
			}
		case fn := <-a.posted:
			fn()
			a.draw()
		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// pollEvents forwards terminal events to the loop until the screen closes.
func (a *App) pollEvents() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.termEvents <- ev:
		case <-a.quit:
			return
		}
	}
}

// handleEvent applies one terminal event and reports whether to redraw.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		a.relayout()
		return true

	case *tcell.EventKey:
		redraw := a.modeHandler.HandleKeyEvent(e)
		// Undo, redo and clear may apply a deferred resize.
		a.syncLayout()
		return redraw

	case *tcell.EventMouse:
		if err := a.adapter.HandleMouse(e); err != nil {
			logger.Errorf("App: pointer input failed: %v", err)
			a.statusBar.SetTemporaryMessage("Draw failed: %v", err)
		}
		a.syncLayout()
		return true
	}
	return false
}

// relayout sizes the canvas to the area above the status bar.
func (a *App) relayout() {
	w, h := a.tuiManager.Size()
	cw, ch := a.view.Container(w, h)
	a.canvas.Resize(cw, ch)
	a.syncLayout()
}

// syncLayout places the current surface on screen and points pointer
// mapping at it.
func (a *App) syncLayout() {
	sw, sh := a.tuiManager.Size()
	w, h := a.canvas.Size()
	a.layout = a.view.Layout(sw, sh, w, h)
	a.adapter.SetViewport(a.layout.Viewport())
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}

// post queues fn for the loop. It gives up once the app is quitting.
func (a *App) post(fn func()) {
	select {
	case a.posted <- fn:
	case <-a.quit:
	}
}

// Canvas returns the drawing model.
func (a *App) Canvas() *core.Canvas { return a.canvas }

// GetModeHandler allows the API adapter to access the mode handler for command registration.
func (a *App) GetModeHandler() *modehandler.ModeHandler {
	return a.modeHandler
}

// GetTheme returns the app's active theme.
func (a *App) GetTheme() *theme.Theme {
	return a.themeManager.Current()
}

// SetTheme activates a theme by name and triggers a redraw.
func (a *App) SetTheme(name string) error {
	if err := a.themeManager.SetTheme(name); err != nil {
		return err
	}
	a.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: a.GetTheme().Name})
	a.requestRedraw()
	return nil
}
