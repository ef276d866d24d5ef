package selection

import (
	"fmt"

	"github.com/dshills/fpane/internal/logging"
)

// Engine tracks an anchor and a moving cursor over a List and keeps the
// selection flags equal to the anchor..cursor interval combined with a
// baseline under the current AmendMode.
//
// The cursor only ever moves one entry at a time. A move away from the
// anchor combines the entry being entered; a move towards the anchor reverts
// the entry being vacated. The flags after any walk therefore depend only on
// (baseline, anchor, cursor, mode), never on the path taken.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	list     List
	log      *logging.Logger
	anchor   int
	cursor   int
	mode     AmendMode
	baseline Baseline
	count    int
}

// NewEngine returns an engine over l. A nil logger discards warnings.
func NewEngine(l List, log *logging.Logger) *Engine {
	if log == nil {
		log = logging.Null()
	}
	return &Engine{list: l, log: log}
}

// Enter starts a selection at pos under mode: the anchor and cursor are set
// to pos, the baseline is captured from the current flags and the entry at
// pos is combined. Replace clears every flag before the capture. A
// pseudo-parent at pos stays unselected. Enter returns false when the list
// is empty.
func (e *Engine) Enter(pos int, mode AmendMode) bool {
	n := e.list.Len()
	if n == 0 {
		return false
	}
	if !mode.Valid() {
		e.violation("enter with unknown amend mode %d", mode)
		mode = Replace
	}

	pos = clamp(pos, n)
	e.mode = mode
	e.anchor = pos
	e.cursor = pos
	if mode == Replace {
		ClearAll(e.list)
	}
	e.baseline, e.count = Capture(e.list)
	e.combineAt(pos)
	e.commit()
	return true
}

// StepTo moves the cursor one entry at a time until it reaches target,
// combining or reverting every entry crossed. Targets outside the list are
// clamped. It reports whether the cursor moved.
func (e *Engine) StepTo(target int) bool {
	if !e.sane() {
		return false
	}
	target = clamp(target, e.list.Len())
	if target == e.cursor {
		return false
	}
	e.walk(target)
	e.commit()
	return true
}

// JumpTo clamps target to the list and walks the cursor there.
func (e *Engine) JumpTo(target int) bool {
	return e.StepTo(target)
}

// Move moves the cursor by delta*count entries. A count below one counts
// as one.
func (e *Engine) Move(delta, count int) bool {
	if count < 1 {
		count = 1
	}
	return e.StepTo(e.cursor + delta*count)
}

// ChangeMode switches the amend mode mid-session. The current flags become
// the new baseline, the cursor is reset to the anchor, the anchor is
// re-applied under the new mode and the cursor walks back out to where it
// was. Switching to Replace unselects every entry first, since Replace does
// not honour a baseline.
func (e *Engine) ChangeMode(mode AmendMode) bool {
	if !mode.Valid() || mode == e.mode || !e.sane() {
		return false
	}

	target := e.cursor
	if mode == Replace {
		for i := 0; i < e.list.Len(); i++ {
			e.setFlag(i, false)
		}
	}

	var n int
	e.baseline, n = Capture(e.list)
	if n != e.count {
		e.violation("selected count %d differs from list count %d", e.count, n)
		e.count = n
	}

	e.mode = mode
	e.cursor = e.anchor
	e.combineAt(e.anchor)
	e.walk(target)
	e.commit()
	return true
}

// Swap exchanges the roles of anchor and cursor. The interval, and so the
// selection, is unchanged.
func (e *Engine) Swap() bool {
	if !e.sane() || e.anchor == e.cursor {
		return false
	}
	e.anchor, e.cursor = e.cursor, e.anchor
	e.commit()
	return true
}

// Rebase re-derives the selection after the list was replaced. Every flag
// is reset to baseline, then the session is re-entered at anchor under the
// current mode and walked to cursor. Under Replace the baseline is ignored
// and every flag outside the interval ends up clear.
func (e *Engine) Rebase(anchor, cursor int, baseline Baseline) bool {
	n := e.list.Len()
	if n == 0 {
		return false
	}
	if e.mode == Replace {
		baseline = make(Baseline, n)
	}
	e.baseline = baseline
	e.count = baseline.Restore(e.list)
	e.anchor = clamp(anchor, n)
	e.cursor = e.anchor
	e.combineAt(e.anchor)
	e.walk(clamp(cursor, n))
	e.commit()
	return true
}

// Bounds returns the interval as (low, high).
func (e *Engine) Bounds() (int, int) {
	if e.anchor <= e.cursor {
		return e.anchor, e.cursor
	}
	return e.cursor, e.anchor
}

// Anchor returns the fixed end of the interval.
func (e *Engine) Anchor() int { return e.anchor }

// Cursor returns the moving end of the interval.
func (e *Engine) Cursor() int { return e.cursor }

// Mode returns the current amend mode.
func (e *Engine) Mode() AmendMode { return e.mode }

// Forward reports whether the cursor is at or below the anchor.
func (e *Engine) Forward() bool { return e.cursor >= e.anchor }

// Selected returns the number of selected entries in the whole list.
func (e *Engine) Selected() int { return e.count }

// Baseline returns the snapshot the current mode combines against.
func (e *Engine) Baseline() Baseline { return e.baseline }

// DropBaseline forgets the snapshot so nothing is treated as pre-existing.
func (e *Engine) DropBaseline() { e.baseline = nil }

// walk moves the cursor to an in-range target one entry at a time.
func (e *Engine) walk(target int) {
	for e.cursor < target {
		e.stepOne(1)
	}
	for e.cursor > target {
		e.stepOne(-1)
	}
}

func (e *Engine) stepOne(dir int) {
	next := e.cursor + dir
	if (dir > 0 && next > e.anchor) || (dir < 0 && next < e.anchor) {
		e.combineAt(next)
	} else {
		e.revertAt(e.cursor)
	}
	e.cursor = next
}

func (e *Engine) combineAt(i int) {
	if e.list.IsPseudoParent(i) {
		return
	}
	e.setFlag(i, e.mode.Combine(e.baseline.At(i)))
}

func (e *Engine) revertAt(i int) {
	if e.list.IsPseudoParent(i) {
		return
	}
	e.setFlag(i, e.mode.Revert(e.baseline.At(i)))
}

// setFlag writes one flag and keeps count in step with it.
func (e *Engine) setFlag(i int, v bool) {
	if v && e.list.IsPseudoParent(i) {
		v = false
	}
	if e.list.IsSelected(i) == v {
		return
	}
	e.list.SetSelected(i, v)
	if v {
		e.count++
		return
	}
	e.count--
	if e.count < 0 {
		e.violation("selected count went negative at entry %d", i)
		e.count = 0
	}
}

// commit publishes the cursor to the list once per operation.
func (e *Engine) commit() {
	e.list.SetPosition(e.cursor)
	if debugAssertions {
		if n := CountSelected(e.list); n != e.count {
			e.violation("selected count %d, list has %d", e.count, n)
		}
	}
}

// sane reports whether the engine can operate, clamping anchor and cursor
// back into the list if it shrank underneath them.
func (e *Engine) sane() bool {
	n := e.list.Len()
	if n == 0 {
		return false
	}
	if e.anchor >= n || e.cursor >= n || e.anchor < 0 || e.cursor < 0 {
		e.violation("anchor %d or cursor %d outside list of %d", e.anchor, e.cursor, n)
		e.anchor = clamp(e.anchor, n)
		e.cursor = clamp(e.cursor, n)
	}
	return true
}

func (e *Engine) violation(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if debugAssertions {
		panic("selection: " + msg)
	}
	e.log.Warn("invariant violated: %s", msg)
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
