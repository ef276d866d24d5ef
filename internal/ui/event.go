package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/fpane/internal/input/key"
)

// EventType identifies what an Event carries.
type EventType uint8

const (
	// EventNone is an event the pane does not care about.
	EventNone EventType = iota
	// EventKey is a key press.
	EventKey
	// EventResize reports a new terminal size.
	EventResize
	// EventReload asks for the directory to be read again.
	EventReload
	// EventQuit asks the event loop to stop.
	EventQuit
)

// Event is a terminal event translated for the pane.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Event

	// Width and Height are set for EventResize.
	Width  int
	Height int

	// Dir is set for EventReload.
	Dir string
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		k, ok := convertKey(e)
		if !ok {
			return Event{Type: EventNone}
		}
		return Event{Type: EventKey, Key: k}
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}
	case *reloadEvent:
		return Event{Type: EventReload, Dir: e.dir}
	case *quitEvent:
		return Event{Type: EventQuit}
	default:
		return Event{Type: EventNone}
	}
}

// convertKey converts a tcell key press. Terminals report Control letters
// either as dedicated keys (KeyCtrlA..KeyCtrlZ) or as a rune with ModCtrl;
// both become key.Ctrl.
func convertKey(e *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(e.Modifiers())

	switch e.Key() {
	case tcell.KeyRune:
		r := e.Rune()
		if mods.Has(key.ModCtrl) {
			if r > 0 && r <= 26 {
				r = 'a' + r - 1
			}
			return key.Ctrl(r), true
		}
		return key.Event{Key: key.KeyRune, Rune: r, Modifiers: mods}.Normalize(), true
	case tcell.KeyEscape:
		return key.Special(key.KeyEscape), true
	case tcell.KeyEnter:
		return key.Special(key.KeyEnter), true
	case tcell.KeyTab:
		return key.Event{Key: key.KeyTab, Modifiers: mods &^ key.ModCtrl}, true
	case tcell.KeyBacktab:
		return key.Event{Key: key.KeyTab, Modifiers: key.ModShift}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.Special(key.KeyBackspace), true
	case tcell.KeyDelete:
		return key.Special(key.KeyDelete), true
	case tcell.KeyHome:
		return withMods(key.KeyHome, mods), true
	case tcell.KeyEnd:
		return withMods(key.KeyEnd, mods), true
	case tcell.KeyPgUp:
		return withMods(key.KeyPageUp, mods), true
	case tcell.KeyPgDn:
		return withMods(key.KeyPageDown, mods), true
	case tcell.KeyUp:
		return withMods(key.KeyUp, mods), true
	case tcell.KeyDown:
		return withMods(key.KeyDown, mods), true
	case tcell.KeyLeft:
		return withMods(key.KeyLeft, mods), true
	case tcell.KeyRight:
		return withMods(key.KeyRight, mods), true
	}

	if k := e.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return key.Ctrl(rune('a' + int(k-tcell.KeyCtrlA))), true
	}
	return key.Event{}, false
}

func withMods(k key.Key, mods key.Modifier) key.Event {
	return key.Event{Key: k, Modifiers: mods}
}

// convertMod converts tcell modifiers to our Modifier type.
func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 || m&tcell.ModMeta != 0 {
		mods |= key.ModAlt
	}
	if m&tcell.ModShift != 0 {
		mods |= key.ModShift
	}
	return mods
}
