// Package history keeps the bounded undo/redo stacks of surface snapshots.
package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/bethropolis/scribble/internal/core/surface"
)

// Entry is one committed surface state.
type Entry struct {
	ID      string
	Data    []byte // encoded by the manager's codec
	Width   int
	Height  int
	Created time.Time
}

// Target is the surface the manager snapshots and restores.
type Target interface {
	Snapshot() surface.Snapshot
	Restore(surface.Snapshot) error
}

func newEntry(sn surface.Snapshot, data []byte, now time.Time) Entry {
	return Entry{
		ID:      uuid.NewString(),
		Data:    data,
		Width:   sn.Width,
		Height:  sn.Height,
		Created: now,
	}
}
