package key

import (
	"strings"
	"unicode"
)

// Event is a single key press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// Rune returns the event for character r with no modifiers.
func Rune(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// Ctrl returns the event for Control plus character r.
func Ctrl(r rune) Event {
	return Event{Key: KeyRune, Rune: unicode.ToLower(r), Modifiers: ModCtrl}
}

// Special returns the event for a non-character key.
func Special(k Key) Event {
	return Event{Key: k}
}

// Normalize returns e in canonical form: rune events lose Shift, and
// Control letters become lower case.
func (e Event) Normalize() Event {
	if e.Key != KeyRune {
		return e
	}
	e.Modifiers &^= ModShift
	if e.Modifiers.Has(ModCtrl) {
		e.Rune = unicode.ToLower(e.Rune)
	}
	return e
}

// IsRune reports whether e is an unmodified character.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0 && e.Modifiers&(ModCtrl|ModAlt) == 0
}

// Digit returns the decimal value of an unmodified digit key.
func (e Event) Digit() (int, bool) {
	if !e.IsRune() || e.Rune < '0' || e.Rune > '9' {
		return 0, false
	}
	return int(e.Rune - '0'), true
}

// String returns e in binding notation: "j", "G", "<C-g>", "<CR>".
func (e Event) String() string {
	if e.IsRune() {
		if name := runeName(e.Rune); name != "" {
			return "<" + name + ">"
		}
		return string(e.Rune)
	}

	var b strings.Builder
	b.WriteByte('<')
	if mods := e.Modifiers.String(); mods != "" {
		b.WriteString(mods)
		b.WriteByte('-')
	}
	if e.Key == KeyRune {
		if name := runeName(e.Rune); name != "" {
			b.WriteString(name)
		} else {
			b.WriteRune(e.Rune)
		}
	} else {
		b.WriteString(e.Key.String())
	}
	b.WriteByte('>')
	return b.String()
}

func runeName(r rune) string {
	switch r {
	case ' ':
		return "Space"
	case '<':
		return "lt"
	}
	return ""
}
