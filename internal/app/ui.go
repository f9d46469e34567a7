package app

import (
	"time"

	"github.com/bethropolis/scribble/internal/logger"
	"github.com/bethropolis/scribble/internal/statusbar"
	"github.com/bethropolis/scribble/internal/theme"
	"github.com/bethropolis/scribble/internal/tui"
)

// draw clears the screen and redraws all components.
func (a *App) draw() {
	a.updateStatusBarContent()

	th := a.currentTheme()
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	logger.DebugTagf("draw", "draw: screen %dx%d, layout %+v", width, height, a.layout)

	a.tuiManager.SetStyle(th.GetStyle(theme.StyleDefault))
	a.tuiManager.Clear()
	a.view.Draw(screen, a.layout, tui.Layers{
		Surface:     a.canvas.Image(),
		Grid:        a.canvas.GridImage(),
		GridVisible: a.canvas.GridVisible(),
	}, th)
	a.statusBar.Draw(screen, width, height, th)
	a.tuiManager.Show()

	// Repaint once the message has timed out so it leaves the screen.
	if a.statusBar.Message() != "" {
		a.messageExpiry.Debounce(statusbar.DefaultConfig().MessageTimeout+100*time.Millisecond, a.requestRedraw)
	}
}

// currentTheme is the active theme with the configured paper applied.
func (a *App) currentTheme() *theme.Theme {
	th := a.themeManager.Current()
	if a.paper == nil {
		return th
	}
	withPaper := *th
	withPaper.Paper = *a.paper
	return &withPaper
}

// updateStatusBarContent pushes the canvas state to the status bar.
func (a *App) updateStatusBarContent() {
	w, h := a.canvas.Size()
	undo, redo := a.canvas.Depth()
	a.statusBar.SetInfo(statusbar.Info{
		Tool:      a.canvas.Tool().String(),
		Color:     a.canvas.ColorHex(),
		Width:     a.canvas.StrokeWidth(),
		Text:      a.canvas.Text(),
		Grid:      a.canvas.GridVisible(),
		W:         w,
		H:         h,
		Undo:      undo,
		Redo:      redo,
		Modified:  a.canvas.Modified(),
		Drawing:   a.canvas.Drawing(),
		InputMode: a.modeHandler.GetCurrentMode().String(),
	})
}
