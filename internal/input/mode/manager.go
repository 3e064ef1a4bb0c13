package mode

import (
	"errors"
	"fmt"
	"sync"
)

// Transition errors.
var (
	// ErrUnknownMode indicates a switch to an unregistered mode.
	ErrUnknownMode = errors.New("unknown mode")

	// ErrIllegalTransition indicates a guard rejected the transition.
	// Callers treat this as a routine UI race and no-op.
	ErrIllegalTransition = errors.New("illegal mode transition")
)

// Manager manages tool modes and coordinates guarded transitions.
type Manager struct {
	mu sync.RWMutex

	// modes holds all registered modes by name.
	modes map[string]Mode

	// current is the active mode.
	current Mode

	// previous is the mode before the current one.
	previous Mode

	// callbacks are notified on mode changes.
	callbacks []ChangeCallback
}

// ChangeCallback is called after the mode changes.
type ChangeCallback func(from, to Mode)

// NewManager creates a new mode manager.
func NewManager() *Manager {
	return &Manager{
		modes: make(map[string]Mode),
	}
}

// Register adds a mode to the manager, replacing any mode with the same
// name.
func (m *Manager) Register(mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modes[mode.Name()] = mode
}

// Get returns a mode by name, or nil if not found.
func (m *Manager) Get(name string) Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.modes[name]
}

// Current returns the current mode, or nil if none is set.
func (m *Manager) Current() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// CurrentName returns the name of the current mode, or empty string.
func (m *Manager) CurrentName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.Name()
}

// Previous returns the previous mode, or nil.
func (m *Manager) Previous() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.previous
}

// Switch changes to a different mode.
func (m *Manager) Switch(name string) error {
	return m.SwitchWithContext(name, nil)
}

// Guard is implemented by modes whose entry is conditional. CanEnter
// runs before any teardown, so a rejected transition has no side
// effects on the current mode.
type Guard interface {
	CanEnter(ctx *Context) error
}

// SwitchWithContext changes to a different mode with transition context.
// Calls the new mode's guard (if any), then Exit() on the current mode
// and Enter() on the new mode.
func (m *Manager) SwitchWithContext(name string, ctx *Context) error {
	m.mu.Lock()

	newMode, ok := m.modes[name]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownMode, name)
	}

	if ctx == nil {
		ctx = NewContext()
	}

	oldMode := m.current
	if oldMode != nil {
		ctx.PreviousMode = oldMode.Name()
	}

	if g, ok := newMode.(Guard); ok {
		if err := g.CanEnter(ctx); err != nil {
			m.mu.Unlock()
			return err
		}
	}

	// Exit current mode.
	if oldMode != nil {
		ctx.NextMode = name
		if err := oldMode.Exit(ctx); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("exit %s: %w", oldMode.Name(), err)
		}
	}

	// Enter new mode.
	ctx.NextMode = ""
	if err := newMode.Enter(ctx); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("enter %s: %w", name, err)
	}

	m.previous = oldMode
	m.current = newMode

	callbacks := make([]ChangeCallback, len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	// Notify callbacks outside of lock.
	for _, cb := range callbacks {
		if cb != nil {
			cb(oldMode, newMode)
		}
	}
	return nil
}

// SetInitialMode sets the initial mode without running Exit on anything.
// Should only be called once during initialization.
func (m *Manager) SetInitialMode(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	mode, ok := m.modes[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMode, name)
	}
	m.current = mode
	return mode.Enter(NewContext())
}

// OnChange registers a callback for mode changes. Returns a function to
// unregister the callback.
func (m *Manager) OnChange(callback ChangeCallback) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
	index := len(m.callbacks) - 1

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if index < len(m.callbacks) {
			m.callbacks[index] = nil
		}
	}
}

// IsMode returns true if the current mode matches the given name.
func (m *Manager) IsMode(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil && m.current.Name() == name
}

// Modes returns the names of all registered modes.
func (m *Manager) Modes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.modes))
	for name := range m.modes {
		names = append(names, name)
	}
	return names
}
