package mode

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownMode indicates a switch to a mode that was never registered.
var ErrUnknownMode = errors.New("unknown mode")

// ChangeFunc is called after a successful switch.
type ChangeFunc func(from, to Mode)

// Manager holds the pane modes and the one that is current.
type Manager struct {
	mu       sync.RWMutex
	modes    map[string]Mode
	current  Mode
	onChange []ChangeFunc
}

// NewManager creates a manager with no modes.
func NewManager() *Manager {
	return &Manager{modes: make(map[string]Mode)}
}

// Register adds mode, replacing any mode of the same name.
func (m *Manager) Register(mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modes[mode.Name()] = mode
}

// SetInitialMode enters the named mode without exiting anything and
// without notifying.
func (m *Manager) SetInitialMode(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	mode, ok := m.modes[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMode, name)
	}
	if err := mode.Enter(NewContext()); err != nil {
		return fmt.Errorf("enter %s: %w", name, err)
	}
	m.current = mode
	return nil
}

// Current returns the current mode, or nil before SetInitialMode.
func (m *Manager) Current() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// CurrentName returns the name of the current mode, or "".
func (m *Manager) CurrentName() string {
	if cur := m.Current(); cur != nil {
		return cur.Name()
	}
	return ""
}

// IsMode reports whether the named mode is current.
func (m *Manager) IsMode(name string) bool {
	return m.CurrentName() == name
}

// Switch changes to the named mode with a default context.
func (m *Manager) Switch(name string) error {
	return m.SwitchWithContext(name, nil)
}

// SwitchWithContext exits the current mode and enters the named one. If
// Enter fails the current mode is kept and nothing is notified. Change
// callbacks run after the lock is released.
func (m *Manager) SwitchWithContext(name string, ctx *Context) error {
	if ctx == nil {
		ctx = NewContext()
	}

	m.mu.Lock()
	next, ok := m.modes[name]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownMode, name)
	}
	prev := m.current
	if prev != nil {
		ctx.NextMode = name
		if err := prev.Exit(ctx); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("exit %s: %w", prev.Name(), err)
		}
		ctx.PreviousMode = prev.Name()
	}
	ctx.NextMode = ""
	if err := next.Enter(ctx); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("enter %s: %w", name, err)
	}
	m.current = next
	fns := append([]ChangeFunc(nil), m.onChange...)
	m.mu.Unlock()

	for _, fn := range fns {
		fn(prev, next)
	}
	return nil
}

// OnChange registers fn to be called after every successful switch.
func (m *Manager) OnChange(fn ChangeFunc) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = append(m.onChange, fn)
}
