package app

import (
	"github.com/bethropolis/scribble/internal/event"
	"github.com/bethropolis/scribble/internal/logger"
)

// subscribeStatusEvents reports canvas changes that have no visible
// feedback of their own.
func (a *App) subscribeStatusEvents() {
	a.eventManager.Subscribe(event.TypeResized, a.handleResizedForStatus)
	a.eventManager.Subscribe(event.TypeExported, a.handleExportedForStatus)
	a.eventManager.Subscribe(event.TypeCleared, a.handleClearedForStatus)
	a.eventManager.Subscribe(event.TypeToolChanged, a.handleToolChangedForStatus)
}

func (a *App) handleResizedForStatus(e event.Event) bool {
	data, ok := e.Data.(event.ResizedData)
	if !ok {
		logger.Warnf("App: Resized event with unexpected data type: %T", e.Data)
		return false
	}
	if data.Deferred {
		a.statusBar.SetTemporaryMessage("Canvas resized to %dx%d after stroke", data.Width, data.Height)
	}
	return false
}

func (a *App) handleExportedForStatus(e event.Event) bool {
	data, ok := e.Data.(event.ExportedData)
	if !ok {
		return false
	}
	if data.Path == "" {
		a.statusBar.SetTemporaryMessage("Copied %s data URL (%d bytes)", data.Format, data.Bytes)
	} else {
		a.statusBar.SetTemporaryMessage("Exported %s (%d bytes)", data.Path, data.Bytes)
	}
	return false
}

func (a *App) handleClearedForStatus(event.Event) bool {
	a.statusBar.SetTemporaryMessage("Canvas cleared (Ctrl+Z to undo)")
	return false
}

func (a *App) handleToolChangedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.ToolChangedData); ok {
		a.statusBar.SetTemporaryMessage("Tool: %s", data.Tool)
	}
	return false
}
