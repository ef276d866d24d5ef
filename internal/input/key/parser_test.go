package key

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseSingle(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"a", Rune('a')},
		{"G", Rune('G')},
		{"%", Rune('%')},
		{"<", Rune('<')},
		{"Enter", Special(KeyEnter)},
		{"esc", Special(KeyEscape)},
		{"<CR>", Special(KeyEnter)},
		{"<Esc>", Special(KeyEscape)},
		{"<BS>", Special(KeyBackspace)},
		{"<PageDown>", Special(KeyPageDown)},
		{"<Space>", Rune(' ')},
		{"<lt>", Rune('<')},
		{"<C-g>", Ctrl('g')},
		{"<C-G>", Ctrl('g')},
		{"<c-d>", Ctrl('d')},
		{"<A-x>", Event{Key: KeyRune, Rune: 'x', Modifiers: ModAlt}},
		{"<S-Tab>", Event{Key: KeyTab, Modifiers: ModShift}},
		{"<S-x>", Rune('x')},
		{"<C-->", Event{Key: KeyRune, Rune: '-', Modifiers: ModCtrl}},
	}

	for _, tt := range tests {
		got, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %#v, want %#v", tt.spec, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"abc", ErrInvalidSpec},
		{"<X-a>", ErrInvalidSpec},
		{"<C->", ErrInvalidSpec},
		{"<Nope>", ErrInvalidSpec},
	}

	for _, tt := range tests {
		_, err := Parse(tt.spec)
		if !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
		}
	}
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		in   string
		want []Event
	}{
		{"gg", []Event{Rune('g'), Rune('g')}},
		{"av", []Event{Rune('a'), Rune('v')}},
		{"<C-w>j", []Event{Ctrl('w'), Rune('j')}},
		{"'<lt>", []Event{Rune('\''), Rune('<')}},
		{"<>", []Event{Rune('<'), Rune('>')}},
		{"<CR>", []Event{Special(KeyEnter)}},
	}

	for _, tt := range tests {
		got, err := ParseSequence(tt.in)
		if err != nil {
			t.Errorf("ParseSequence(%q) error = %v", tt.in, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseSequence(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseSequence("<C-?x>"); err == nil {
		t.Error("ParseSequence with a bad bracket should fail")
	}
}

func TestFormatSequenceRoundTrip(t *testing.T) {
	for _, s := range []string{"gg", "<C-g>", "<Esc>", "<Space>t", "m<lt>", "<S-Tab>", "<A-j>"} {
		seq := MustParseSequence(s)
		if got := FormatSequence(seq); got != s {
			t.Errorf("FormatSequence(ParseSequence(%q)) = %q", s, got)
		}
	}
}

func TestEventHelpers(t *testing.T) {
	if d, ok := Rune('7').Digit(); !ok || d != 7 {
		t.Errorf("Rune('7').Digit() = %d, %v", d, ok)
	}
	if _, ok := Ctrl('7').Digit(); ok {
		t.Error("Ctrl digit should not count")
	}
	if !Rune('x').IsRune() || Ctrl('x').IsRune() || Special(KeyEnter).IsRune() {
		t.Error("IsRune mismatch")
	}

	shifted := Event{Key: KeyRune, Rune: 'G', Modifiers: ModShift | ModCtrl}.Normalize()
	if shifted != Ctrl('g') {
		t.Errorf("Normalize() = %#v, want %#v", shifted, Ctrl('g'))
	}
	if got := Special(KeyUp).Normalize(); got != Special(KeyUp) {
		t.Errorf("Normalize() changed a special key: %#v", got)
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "C"},
		{ModCtrl | ModAlt, "C-A"},
		{ModShift | ModAlt, "A-S"},
	}
	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mod, got, tt.want)
		}
	}
}
