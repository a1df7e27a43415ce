package input

import (
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
)

// KeySink receives keypad state changes.
type KeySink interface {
	HandleKey(key uint8, pressed bool)
}

// Manager handles input actions and their associated callbacks
type Manager struct {
	handlers map[action.Action]map[event.Type][]func()
	keys     KeySink
}

func NewManager(keys KeySink) *Manager {
	return &Manager{
		handlers: make(map[action.Action]map[event.Type][]func()),
		keys:     keys,
	}
}

// On registers a callback for a specific action and event type
func (m *Manager) On(act action.Action, evt event.Type, callback func()) {
	if m.handlers[act] == nil {
		m.handlers[act] = make(map[event.Type][]func())
	}

	m.handlers[act][evt] = append(m.handlers[act][evt], callback)
}

// Trigger handles the given action and event type.
// Keypad actions go straight to the key sink, everything else to the registered callbacks.
func (m *Manager) Trigger(act action.Action, evt event.Type) {
	if key, ok := action.KeypadKey(act); ok && m.keys != nil {
		switch evt {
		case event.Press:
			m.keys.HandleKey(key, true)
		case event.Release:
			m.keys.HandleKey(key, false)
		}
		return
	}

	for _, callback := range m.handlers[act][evt] {
		callback()
	}
}
