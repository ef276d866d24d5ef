package mode

import (
	"github.com/dshills/fpane/internal/selection"
)

// Selector is the part of a selection session that visual mode drives.
// *selection.Session implements it.
type Selector interface {
	Active() bool
	EnterFresh() bool
	EnterAmend() bool
	EnterRestore() bool
	Reject() bool
	Describe() string
}

// VisualMode ties a selection session to the mode lifecycle: entering the
// mode starts a session, leaving it with the session still active rejects
// the session.
type VisualMode struct {
	sel Selector
}

// NewVisualMode creates a visual mode driving sel.
func NewVisualMode(sel Selector) *VisualMode {
	return &VisualMode{sel: sel}
}

// Name returns the mode identifier.
func (m *VisualMode) Name() string {
	return ModeVisual
}

// DisplayName returns the label of the running session, which names the
// amend mode.
func (m *VisualMode) DisplayName() string {
	if d := m.sel.Describe(); d != "" {
		return d
	}
	return "VISUAL"
}

// Enter starts a session of the variant named by ctx.Reason.
func (m *VisualMode) Enter(ctx *Context) error {
	if m.sel.Active() {
		return selection.ErrSessionActive
	}

	var reason Reason
	if ctx != nil {
		reason = ctx.Reason
	}

	switch reason {
	case ReasonAmend:
		if !m.sel.EnterAmend() {
			return selection.ErrEmptyList
		}
	case ReasonRestore:
		if !m.sel.EnterRestore() {
			return selection.ErrRestoreUnavailable
		}
	default:
		if !m.sel.EnterFresh() {
			return selection.ErrEmptyList
		}
	}
	return nil
}

// Exit rejects a session that is still running. Commands that accept the
// selection end the session before switching modes.
func (m *VisualMode) Exit(ctx *Context) error {
	if m.sel.Active() {
		m.sel.Reject()
	}
	return nil
}
