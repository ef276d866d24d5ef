package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a single key: "j", "G", "<C-g>", "<CR>", "<Space>",
// "<S-Tab>" or a bare key name such as "Enter".
func Parse(spec string) (Event, error) {
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2 {
		return parseBracketed(spec[1 : len(spec)-1])
	}
	if r := []rune(spec); len(r) == 1 {
		return Rune(r[0]), nil
	}
	if k, ok := keyAliases[strings.ToLower(spec)]; ok {
		return Special(k), nil
	}
	return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}

func parseBracketed(inner string) (Event, error) {
	parts := strings.Split(inner, "-")
	// "<C-->" splits into ["C", "", ""]: the key is a literal '-'.
	if len(parts) >= 3 && parts[len(parts)-1] == "" && parts[len(parts)-2] == "" {
		parts = append(parts[:len(parts)-2], "-")
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(p) {
		case "c":
			mods |= ModCtrl
		case "a", "m":
			mods |= ModAlt
		case "s":
			mods |= ModShift
		default:
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
	}

	name := parts[len(parts)-1]
	if name == "" {
		return Event{}, fmt.Errorf("%w: <%s>", ErrInvalidSpec, inner)
	}
	lower := strings.ToLower(name)
	if k, ok := keyAliases[lower]; ok {
		return Event{Key: k, Modifiers: mods}, nil
	}
	if r, ok := runeAliases[lower]; ok {
		return Event{Key: KeyRune, Rune: r, Modifiers: mods}.Normalize(), nil
	}
	if r := []rune(name); len(r) == 1 {
		return Event{Key: KeyRune, Rune: r[0], Modifiers: mods}.Normalize(), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
}

// ParseSequence parses a run of keys such as "gg", "av", "<C-w>j" or
// "'<lt>". A '<' with no closing '>' is a literal character.
func ParseSequence(s string) ([]Event, error) {
	if s == "" {
		return nil, ErrEmptySpec
	}

	var seq []Event
	runes := []rune(s)
	for i := 0; i < len(runes); {
		if runes[i] == '<' {
			if end := indexRune(runes[i+1:], '>'); end > 0 {
				ev, err := Parse(string(runes[i : i+end+2]))
				if err != nil {
					return nil, err
				}
				seq = append(seq, ev)
				i += end + 2
				continue
			}
		}
		seq = append(seq, Rune(runes[i]))
		i++
	}
	return seq, nil
}

// MustParseSequence is ParseSequence for bindings known to be valid.
func MustParseSequence(s string) []Event {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence " + s + ": " + err.Error())
	}
	return seq
}

// FormatSequence is the inverse of ParseSequence.
func FormatSequence(seq []Event) string {
	var b strings.Builder
	for _, e := range seq {
		b.WriteString(e.String())
	}
	return b.String()
}

func indexRune(rs []rune, r rune) int {
	for i, c := range rs {
		if c == r {
			return i
		}
	}
	return -1
}
