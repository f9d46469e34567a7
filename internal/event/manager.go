package event

import (
	"sync"

	"github.com/bethropolis/scribble/internal/logger"
)

// Handler receives dispatched events. The return value reports whether the
// event was consumed; dispatch currently ignores it.
type Handler func(e Event) bool

// Manager handles subscriptions and synchronous dispatch.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe adds a handler for eventType.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handlers[eventType] = append(m.handlers[eventType], handler)
	logger.Debugf("Event Manager: handler subscribed to %v", eventType)
}

// Dispatch calls every handler for eventType in subscription order. A nil
// manager ignores the call.
func (m *Manager) Dispatch(eventType Type, data any) {
	if m == nil {
		return
	}
	e := Event{Type: eventType, Data: data}

	m.mu.RLock()
	handlers := append([]Handler(nil), m.handlers[eventType]...)
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}
	logger.Debugf("Event Manager: dispatching %v to %d handler(s)", eventType, len(handlers))

	// Handlers may subscribe further handlers; they run against this copy.
	for _, h := range handlers {
		h(e)
	}
}
