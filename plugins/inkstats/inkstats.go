// Package inkstats reports drawing statistics through the :stats command.
package inkstats

import (
	"fmt"

	"github.com/bethropolis/scribble/internal/event"
	"github.com/bethropolis/scribble/internal/plugin"
)

var _ plugin.Plugin = (*InkStats)(nil)

// InkStats counts strokes and reports canvas usage.
type InkStats struct {
	api     plugin.CanvasAPI
	strokes int // commits seen since start, excluding clears
	clears  int
}

// New creates a new instance of the InkStats plugin.
func New() plugin.Plugin {
	return &InkStats{}
}

// Name returns the unique name of the plugin.
func (p *InkStats) Name() string {
	return "inkstats"
}

// Initialize registers :stats and starts counting.
func (p *InkStats) Initialize(api plugin.CanvasAPI) error {
	p.api = api
	api.SubscribeEvent(event.TypeCommitted, func(event.Event) bool {
		p.strokes++
		return false
	})
	api.SubscribeEvent(event.TypeCleared, func(event.Event) bool {
		p.clears++
		// A clear is followed by its own commit.
		p.strokes--
		return false
	})
	if err := api.RegisterCommand("stats", p.executeStats); err != nil {
		return fmt.Errorf("failed to register 'stats' command: %w", err)
	}
	return nil
}

// Shutdown performs no cleanup.
func (p *InkStats) Shutdown() error {
	return nil
}

// Summary formats the current statistics.
func (p *InkStats) Summary() string {
	w, h := p.api.CanvasSize()
	undo, redo := p.api.HistoryDepth()
	return fmt.Sprintf("Strokes: %d, Clears: %d, Commits: %d, Undo: %d, Redo: %d, Ink: %.1f%% of %dx%d",
		p.strokes, p.clears, p.api.Commits(), undo, redo, p.api.InkCoverage()*100, w, h)
}

func (p *InkStats) executeStats(args []string) error {
	if p.api == nil {
		return fmt.Errorf("inkstats plugin not initialized with API")
	}
	p.api.SetStatusMessage("%s", p.Summary())
	return nil
}
