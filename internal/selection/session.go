package selection

import (
	"github.com/google/uuid"

	"github.com/dshills/fpane/internal/logging"
)

// State is the lifecycle state of a Session.
type State uint8

const (
	// Inactive means no range is being drawn.
	Inactive State = iota
	// Active means an Engine owns the list flags.
	Active
)

// String returns the state name.
func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// Session is the enter/leave protocol around an Engine. A pane owns one
// Session; at most one range is active on it at a time.
//
// Every operation that changes the selection publishes the range bounds to
// the marks and calls the change callbacks exactly once, however many
// entries the engine walked over.
type Session struct {
	list     List
	engine   *Engine
	marks    *RangeMarks
	log      *logging.Logger
	state    State
	id       uuid.UUID
	entry    Baseline
	prev     Range
	hasPrev  bool
	onChange []func()
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMarks sets the adapter that persists the range bounds.
func WithMarks(m *RangeMarks) Option {
	return func(s *Session) {
		s.marks = m
	}
}

// NewSession returns an inactive session over l.
func NewSession(l List, opts ...Option) *Session {
	s := &Session{
		list: l,
		log:  logging.Null(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("selection")
	s.engine = NewEngine(l, s.log)
	return s
}

// OnChange registers fn to be called after every committed change.
func (s *Session) OnChange(fn func()) {
	if fn != nil {
		s.onChange = append(s.onChange, fn)
	}
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Active reports whether a range is being drawn.
func (s *Session) Active() bool { return s.state == Active }

// ID returns the identifier of the current or last session.
func (s *Session) ID() uuid.UUID { return s.id }

// Mode returns the amend mode of the active session.
func (s *Session) Mode() AmendMode { return s.engine.Mode() }

// Anchor returns the anchor of the active session.
func (s *Session) Anchor() int { return s.engine.Anchor() }

// Cursor returns the cursor of the active session.
func (s *Session) Cursor() int { return s.engine.Cursor() }

// Bounds returns the interval of the active session as (low, high).
func (s *Session) Bounds() (int, int) { return s.engine.Bounds() }

// Selected returns the number of selected entries while a session is
// active, and scans the list otherwise.
func (s *Session) Selected() int {
	if s.Active() {
		return s.engine.Selected()
	}
	return CountSelected(s.list)
}

// Describe returns the status line label, or "" when inactive.
func (s *Session) Describe() string {
	if !s.Active() {
		return ""
	}
	return s.engine.Mode().Describe()
}

// EnterFresh clears the selection and starts a Replace session at the
// current position.
func (s *Session) EnterFresh() bool {
	if !s.canEnter("fresh") {
		return false
	}
	ClearAll(s.list)
	s.entry, _ = Capture(s.list)
	s.engine.Enter(s.list.Position(), Replace)
	s.begin("fresh")
	return true
}

// EnterAmend starts an Append session at the current position, keeping the
// existing selection as the baseline.
func (s *Session) EnterAmend() bool {
	if !s.canEnter("amend") {
		return false
	}
	s.entry, _ = Capture(s.list)
	s.engine.Enter(s.list.Position(), Append)
	s.begin("amend")
	return true
}

// EnterRestore clears the selection and rebuilds the last published range.
// It returns false, and leaves the session and the list untouched, when
// either bound is missing or no longer names an entry of the list.
func (s *Session) EnterRestore() bool {
	if !s.canEnter("restore") {
		return false
	}
	low, high, upward, ok := s.marks.Resolve()
	if !ok {
		s.log.Debug("restore refused: %v", ErrRestoreUnavailable)
		return false
	}
	ClearAll(s.list)
	s.entry, _ = Capture(s.list)
	s.replay(low, high, upward)
	s.begin("restore")
	return true
}

// RestorePrevious rebuilds, under Replace, the range that was published
// before the active session began. The entry snapshot used by Reject is
// kept. It returns false when there was no such range or it no longer
// resolves in the list.
func (s *Session) RestorePrevious() bool {
	if !s.Active() || !s.hasPrev {
		return false
	}
	low, high, ok := s.marks.Locate(s.prev)
	if !ok {
		s.log.WithField("session", s.id).Debug("restore previous refused: %v", ErrRestoreUnavailable)
		return false
	}
	s.replay(low, high, s.prev.Upward)
	s.commit()
	return true
}

// Accept ends the session keeping the selection. The engine baseline is
// dropped and the bounds are published for a later EnterRestore.
func (s *Session) Accept() bool {
	if !s.Active() {
		return false
	}
	s.marks.Publish(s.engine.Anchor(), s.engine.Cursor())
	s.engine.DropBaseline()
	s.end("accept", s.engine.Selected())
	return true
}

// Reject ends the session restoring every flag to its value at entry, in
// one pass. The bounds are still published.
func (s *Session) Reject() bool {
	if !s.Active() {
		return false
	}
	s.marks.Publish(s.engine.Anchor(), s.engine.Cursor())
	n := s.entry.Restore(s.list)
	s.end("reject", n)
	return true
}

// StepTo walks the cursor to target one entry at a time.
func (s *Session) StepTo(target int) bool {
	return s.Active() && s.changed(s.engine.StepTo(target))
}

// JumpTo clamps target to the list and walks the cursor there.
func (s *Session) JumpTo(target int) bool {
	return s.Active() && s.changed(s.engine.JumpTo(target))
}

// Move moves the cursor by delta*count entries.
func (s *Session) Move(delta, count int) bool {
	return s.Active() && s.changed(s.engine.Move(delta, count))
}

// Swap exchanges anchor and cursor.
func (s *Session) Swap() bool {
	return s.Active() && s.changed(s.engine.Swap())
}

// ChangeMode switches the amend mode of the active session.
func (s *Session) ChangeMode(mode AmendMode) bool {
	if !s.Active() {
		return false
	}
	if !s.changed(s.engine.ChangeMode(mode)) {
		return false
	}
	s.log.WithField("session", s.id).Debug("amend mode %s", mode)
	return true
}

// CycleAmend advances Append, Remove, Invert, Append. It does nothing in a
// Replace session.
func (s *Session) CycleAmend() bool {
	if !s.Active() || !s.engine.Mode().Amending() {
		return false
	}
	return s.ChangeMode(s.engine.Mode().Next())
}

// ToggleAmend switches a Replace session to Append, and rejects an
// amending one. It reports whether the session is still active.
func (s *Session) ToggleAmend() bool {
	if !s.Active() {
		return false
	}
	if s.engine.Mode().Amending() {
		s.Reject()
		return false
	}
	s.ChangeMode(Append)
	return true
}

// ToggleVisual switches an amending session back to Replace, and rejects a
// Replace one. It reports whether the session is still active.
func (s *Session) ToggleVisual() bool {
	if !s.Active() {
		return false
	}
	if !s.engine.Mode().Amending() {
		s.Reject()
		return false
	}
	s.ChangeMode(Replace)
	return true
}

// Remap translates positions of the previous list into the current one.
// It returns -1 for entries that no longer exist.
type Remap func(old int) int

// Reload re-derives the active session after the list contents changed.
// Anchor and cursor follow their entries; if an entry vanished, the
// position clamps to the new list. The entry snapshot and the baseline are
// re-indexed through remap. An emptied list rejects the session.
func (s *Session) Reload(remap Remap) bool {
	if !s.Active() {
		return false
	}
	n := s.list.Len()
	if n == 0 {
		s.end("reload", 0)
		return false
	}

	anchor := follow(remap, s.engine.Anchor())
	cursor := follow(remap, s.engine.Cursor())
	s.entry = s.entry.Remap(n, remap)
	s.engine.Rebase(anchor, cursor, s.engine.Baseline().Remap(n, remap))
	s.log.WithField("session", s.id).Debug("reloaded: anchor %d cursor %d", anchor, cursor)
	s.commit()
	return true
}

func follow(remap Remap, old int) int {
	if i := remap(old); i >= 0 {
		return i
	}
	return old
}

// replay enters at low under Replace, which clears the list, walks to high
// and restores the orientation of the original range.
func (s *Session) replay(low, high int, upward bool) {
	s.engine.Enter(low, Replace)
	s.engine.JumpTo(high)
	if upward {
		s.engine.Swap()
	}
}

func (s *Session) canEnter(variant string) bool {
	if s.Active() {
		s.log.Debug("enter %s refused: %v", variant, ErrSessionActive)
		return false
	}
	if s.list.Len() == 0 {
		s.log.Debug("enter %s refused: %v", variant, ErrEmptyList)
		return false
	}
	return true
}

// begin keeps the range published so far for RestorePrevious, then
// publishes the new one.
func (s *Session) begin(variant string) {
	s.prev, s.hasPrev = s.marks.Last()
	s.state = Active
	s.id = uuid.New()
	s.log.WithField("session", s.id).Info("enter %s: anchor %d mode %s",
		variant, s.engine.Anchor(), s.engine.Mode())
	s.commit()
}

func (s *Session) end(how string, selected int) {
	s.state = Inactive
	s.entry = nil
	s.hasPrev = false
	s.marks.Save()
	s.log.WithField("session", s.id).Info("%s: %d selected", how, selected)
	s.notify()
}

func (s *Session) changed(ok bool) bool {
	if ok {
		s.commit()
	}
	return ok
}

// commit publishes the bounds and notifies once.
func (s *Session) commit() {
	s.marks.Publish(s.engine.Anchor(), s.engine.Cursor())
	s.notify()
}

func (s *Session) notify() {
	for _, fn := range s.onChange {
		fn()
	}
}
