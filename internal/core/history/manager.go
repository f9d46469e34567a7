package history

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/scribble/internal/core/surface"
	"github.com/bethropolis/scribble/internal/logger"
)

const DefaultMaxHistory = 50

// Manager holds committed states in one slice. Entries before currentIndex
// form the undo stack (its top is the state on screen); entries from
// currentIndex on form the redo stack.
type Manager struct {
	target       Target
	codec        surface.Codec
	entries      []Entry
	currentIndex int
	maxHistory   int
	commits      int
	mutex        sync.Mutex
	now          func() time.Time
}

// NewManager creates a history manager for target. A nil codec means raw
// snapshots.
func NewManager(target Target, codec surface.Codec, maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	if codec == nil {
		codec = surface.RawCodec{}
	}
	return &Manager{
		target:     target,
		codec:      codec,
		entries:    make([]Entry, 0, maxHistory),
		maxHistory: maxHistory,
		now:        time.Now,
	}
}

// Commit records the target's current pixels, clearing any redo history.
// The oldest entries are evicted beyond the capacity.
func (m *Manager) Commit() (Entry, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	sn := m.target.Snapshot()
	data, err := m.codec.Encode(sn)
	if err != nil {
		return Entry{}, fmt.Errorf("commit: %w", err)
	}
	entry := newEntry(sn, data, m.now())

	if m.currentIndex < len(m.entries) {
		m.entries = m.entries[:m.currentIndex]
	}
	m.entries = append(m.entries, entry)
	if len(m.entries) > m.maxHistory {
		m.entries = append(m.entries[:0], m.entries[len(m.entries)-m.maxHistory:]...)
	}
	m.currentIndex = len(m.entries)
	m.commits++

	logger.DebugTagf("history", "History: committed %s (%dx%d, %d bytes). Index: %d, Count: %d",
		entry.ID, entry.Width, entry.Height, len(data), m.currentIndex, len(m.entries))
	return entry, nil
}

// Undo restores the previous state. With a single entry it does nothing.
// If the previous entry cannot be decoded the stacks and the surface stay
// as they were and a *surface.DecodeError is returned.
func (m *Manager) Undo() (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex <= 1 {
		logger.DebugTagf("history", "History: nothing to undo (depth %d)", m.currentIndex)
		return false, nil
	}

	prev := m.entries[m.currentIndex-2]
	if err := m.apply(prev); err != nil {
		logger.Errorf("History: undo to %s failed: %v", prev.ID, err)
		return false, fmt.Errorf("undo failed: %w", err)
	}
	m.currentIndex--
	logger.DebugTagf("history", "History: undid to %s. Index: %d", prev.ID, m.currentIndex)
	return true, nil
}

// Redo reapplies the most recently undone state.
func (m *Manager) Redo() (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex >= len(m.entries) {
		logger.DebugTagf("history", "History: nothing to redo. currentIndex=%d, len=%d", m.currentIndex, len(m.entries))
		return false, nil
	}

	next := m.entries[m.currentIndex]
	if err := m.apply(next); err != nil {
		logger.Errorf("History: redo to %s failed: %v", next.ID, err)
		return false, fmt.Errorf("redo failed: %w", err)
	}
	m.currentIndex++
	logger.DebugTagf("history", "History: redid %s. Index: %d", next.ID, m.currentIndex)
	return true, nil
}

// apply decodes e fully before touching the target.
func (m *Manager) apply(e Entry) error {
	sn, err := m.codec.Decode(e.Data)
	if err != nil {
		return err
	}
	return m.target.Restore(sn)
}

// CanUndo reports whether Undo would change anything.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex > 1
}

// CanRedo reports whether Redo would change anything.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex < len(m.entries)
}

// Depth returns the sizes of the undo and redo stacks.
func (m *Manager) Depth() (undo, redo int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex, len(m.entries) - m.currentIndex
}

// Commits returns how many commits were recorded since the manager was made.
func (m *Manager) Commits() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.commits
}
