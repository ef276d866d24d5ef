// Package ui draws a pane on a terminal and turns terminal input into key
// events.
package ui

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Terminal wraps a tcell screen.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a terminal on the controlling tty.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen, such as a simulation
// screen in tests.
func NewTerminalWithScreen(s tcell.Screen) *Terminal {
	return &Terminal{screen: s}
}

// Init puts the terminal in full-screen mode.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.HideCursor()
	return nil
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

// Size returns the terminal size in cells.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// Screen returns the underlying screen for drawing.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// Show flushes drawn content to the terminal.
func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// PollEvent blocks until the next event. It returns an EventQuit event
// once the screen is finalized.
func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{Type: EventQuit}
	}
	return convertEvent(ev)
}

// PostReload wakes PollEvent with an EventReload for dir. It is safe to
// call from any goroutine.
func (t *Terminal) PostReload(dir string) {
	// best-effort; event queue may be full and a later change will follow
	_ = t.screen.PostEvent(&reloadEvent{when: time.Now(), dir: dir})
}

// PostQuit wakes PollEvent with an EventQuit.
func (t *Terminal) PostQuit() {
	_ = t.screen.PostEvent(&quitEvent{when: time.Now()})
}

// reloadEvent is posted by the directory watcher.
type reloadEvent struct {
	when time.Time
	dir  string
}

func (e *reloadEvent) When() time.Time { return e.when }

type quitEvent struct{ when time.Time }

func (e *quitEvent) When() time.Time { return e.when }
