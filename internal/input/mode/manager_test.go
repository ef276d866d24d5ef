package mode

import (
	"errors"
	"testing"

	"github.com/dshills/fpane/internal/selection"
)

type fakeSelector struct {
	active     bool
	restorable bool
	entries    int
	variant    string
	rejects    int
}

func (f *fakeSelector) Active() bool { return f.active }

func (f *fakeSelector) enter(variant string) bool {
	if f.active || f.entries == 0 {
		return false
	}
	f.active = true
	f.variant = variant
	return true
}

func (f *fakeSelector) EnterFresh() bool { return f.enter("fresh") }
func (f *fakeSelector) EnterAmend() bool { return f.enter("amend") }

func (f *fakeSelector) EnterRestore() bool {
	if !f.restorable {
		return false
	}
	return f.enter("restore")
}

func (f *fakeSelector) Reject() bool {
	if !f.active {
		return false
	}
	f.active = false
	f.rejects++
	return true
}

func (f *fakeSelector) Describe() string {
	if !f.active {
		return ""
	}
	return "VISUAL (" + f.variant + ")"
}

func newTestManager(sel *fakeSelector) *Manager {
	m := NewManager()
	m.Register(NewNormalMode())
	m.Register(NewVisualMode(sel))
	return m
}

type labelMode struct {
	NormalMode
	label string
}

func (m labelMode) DisplayName() string { return m.label }

func TestManagerRegisterReplaces(t *testing.T) {
	m := newTestManager(&fakeSelector{})
	m.Register(&labelMode{label: "BROWSE"})

	if err := m.SetInitialMode(ModeNormal); err != nil {
		t.Fatalf("SetInitialMode() error = %v", err)
	}
	if got := m.Current().DisplayName(); got != "BROWSE" {
		t.Errorf("DisplayName() = %q, want the replacing mode", got)
	}
}

func TestManagerSetInitialModeUnknown(t *testing.T) {
	m := NewManager()
	if err := m.SetInitialMode("nope"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("SetInitialMode(nope) error = %v, want ErrUnknownMode", err)
	}
	if m.CurrentName() != "" {
		t.Errorf("CurrentName() = %q, want empty", m.CurrentName())
	}
}

func TestManagerSwitchStartsAndRejectsSession(t *testing.T) {
	sel := &fakeSelector{entries: 3}
	m := newTestManager(sel)
	_ = m.SetInitialMode(ModeNormal)

	if err := m.Switch(ModeVisual); err != nil {
		t.Fatalf("Switch(visual) error = %v", err)
	}
	if !m.IsMode(ModeVisual) || !sel.active || sel.variant != "fresh" {
		t.Fatalf("visual entry: mode=%s active=%v variant=%s", m.CurrentName(), sel.active, sel.variant)
	}
	if got := m.Current().DisplayName(); got != "VISUAL (fresh)" {
		t.Errorf("DisplayName() = %q", got)
	}

	if err := m.Switch(ModeNormal); err != nil {
		t.Fatalf("Switch(normal) error = %v", err)
	}
	if sel.active || sel.rejects != 1 {
		t.Errorf("leaving visual should reject: active=%v rejects=%d", sel.active, sel.rejects)
	}
	if !m.IsMode(ModeNormal) {
		t.Errorf("mode = %s, want normal", m.CurrentName())
	}
}

func TestManagerSwitchAfterAccept(t *testing.T) {
	sel := &fakeSelector{entries: 3}
	m := newTestManager(sel)
	_ = m.SetInitialMode(ModeNormal)
	_ = m.Switch(ModeVisual)

	sel.active = false // accepted by a command
	_ = m.Switch(ModeNormal)
	if sel.rejects != 0 {
		t.Errorf("an accepted session must not be rejected, rejects=%d", sel.rejects)
	}
}

func TestManagerSwitchWithReason(t *testing.T) {
	tests := []struct {
		reason Reason
		want   string
	}{
		{ReasonDefault, "fresh"},
		{ReasonAmend, "amend"},
		{ReasonRestore, "restore"},
	}

	for _, tt := range tests {
		t.Run(tt.reason.String(), func(t *testing.T) {
			sel := &fakeSelector{entries: 3, restorable: true}
			m := newTestManager(sel)
			_ = m.SetInitialMode(ModeNormal)

			if err := m.SwitchWithContext(ModeVisual, NewContext().WithReason(tt.reason)); err != nil {
				t.Fatalf("SwitchWithContext() error = %v", err)
			}
			if sel.variant != tt.want {
				t.Errorf("variant = %q, want %q", sel.variant, tt.want)
			}
		})
	}
}

func TestManagerEnterFailureKeepsMode(t *testing.T) {
	tests := []struct {
		name   string
		sel    *fakeSelector
		reason Reason
		want   error
	}{
		{"restore unavailable", &fakeSelector{entries: 3}, ReasonRestore, selection.ErrRestoreUnavailable},
		{"empty list", &fakeSelector{}, ReasonDefault, selection.ErrEmptyList},
		{"empty list amend", &fakeSelector{}, ReasonAmend, selection.ErrEmptyList},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(tt.sel)
			_ = m.SetInitialMode(ModeNormal)

			var changes int
			m.OnChange(func(from, to Mode) { changes++ })

			err := m.SwitchWithContext(ModeVisual, NewContext().WithReason(tt.reason))
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if !m.IsMode(ModeNormal) {
				t.Errorf("mode = %s, want normal", m.CurrentName())
			}
			if changes != 0 {
				t.Errorf("callbacks fired %d times on a failed switch", changes)
			}
		})
	}
}

func TestManagerOnChange(t *testing.T) {
	m := newTestManager(&fakeSelector{entries: 1})
	_ = m.SetInitialMode(ModeNormal)

	var got []string
	m.OnChange(nil)
	m.OnChange(func(f, n Mode) {
		got = append(got, f.Name()+">"+n.Name())
	})

	_ = m.Switch(ModeVisual)
	_ = m.Switch(ModeNormal)
	if len(got) != 2 || got[0] != "normal>visual" || got[1] != "visual>normal" {
		t.Errorf("callbacks = %v", got)
	}
}

func TestManagerSwitchUnknown(t *testing.T) {
	m := newTestManager(&fakeSelector{})
	_ = m.SetInitialMode(ModeNormal)

	if err := m.Switch("insert"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Switch(insert) error = %v", err)
	}
	if !m.IsMode(ModeNormal) {
		t.Errorf("mode = %s, want normal", m.CurrentName())
	}
}

func TestContextCopies(t *testing.T) {
	base := NewContext()
	ctx := base.WithReason(ReasonAmend).WithCount(3)
	if base.Reason != ReasonDefault || base.Count != 0 {
		t.Error("With* must not modify the receiver")
	}
	if ctx.Reason != ReasonAmend || ctx.Count != 3 {
		t.Errorf("ctx = %+v", ctx)
	}
	if Reason(9).String() != "unknown" {
		t.Error("Reason(9).String() should be unknown")
	}
}
