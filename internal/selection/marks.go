package selection

// Bound names one end of a persisted range.
type Bound rune

const (
	// Low is the mark of the topmost entry of the last range.
	Low Bound = '<'
	// High is the mark of the bottommost entry of the last range.
	High Bound = '>'
)

// Ref identifies an entry independently of its position in a list.
type Ref struct {
	Origin string
	Name   string
}

// IsZero reports whether r refers to nothing.
func (r Ref) IsZero() bool {
	return r.Origin == "" && r.Name == ""
}

// MarkStore keeps the two range bounds. SetBound may hold a bound in
// memory until SaveBounds is called.
type MarkStore interface {
	SetBound(b Bound, ref Ref)
	Bound(b Bound) (Ref, bool)
	SaveBounds()
}

// Locator maps between list positions and entry references.
type Locator interface {
	// RefAt returns the reference of entry i.
	RefAt(i int) (Ref, bool)
	// IndexOf returns the position of ref in the list, or -1.
	IndexOf(ref Ref) int
}

// Range is a published range in a form that survives list reloads.
type Range struct {
	Low, High Ref
	Upward    bool
}

// RangeMarks publishes session bounds to a MarkStore and resolves them
// back into positions. It also remembers whether the last published range
// was drawn upwards, which the store has no room for.
type RangeMarks struct {
	store  MarkStore
	loc    Locator
	upward bool
}

// NewRangeMarks returns an adapter over store and loc.
func NewRangeMarks(store MarkStore, loc Locator) *RangeMarks {
	return &RangeMarks{store: store, loc: loc}
}

// Publish records anchor and cursor as the Low and High marks. Nothing
// changes, the orientation included, unless both ends name an entry.
func (m *RangeMarks) Publish(anchor, cursor int) {
	if m == nil || m.store == nil || m.loc == nil {
		return
	}
	upward := cursor < anchor
	low, high := anchor, cursor
	if upward {
		low, high = cursor, anchor
	}

	lowRef, okLow := m.loc.RefAt(low)
	highRef, okHigh := m.loc.RefAt(high)
	if !okLow || !okHigh {
		return
	}
	m.store.SetBound(Low, lowRef)
	m.store.SetBound(High, highRef)
	m.upward = upward
}

// Save asks the store to persist the published bounds.
func (m *RangeMarks) Save() {
	if m == nil || m.store == nil {
		return
	}
	m.store.SaveBounds()
}

// Last returns the range held by the store. ok is false if either mark is
// unset.
func (m *RangeMarks) Last() (Range, bool) {
	if m == nil || m.store == nil {
		return Range{}, false
	}
	lowRef, okLow := m.store.Bound(Low)
	highRef, okHigh := m.store.Bound(High)
	if !okLow || !okHigh {
		return Range{}, false
	}
	return Range{Low: lowRef, High: highRef, Upward: m.upward}, true
}

// Locate returns the current positions of r, ordered. ok is false if
// either end names an entry that is not in the list.
func (m *RangeMarks) Locate(r Range) (low, high int, ok bool) {
	if m == nil || m.loc == nil {
		return -1, -1, false
	}
	low = m.loc.IndexOf(r.Low)
	high = m.loc.IndexOf(r.High)
	if low < 0 || high < 0 {
		return -1, -1, false
	}
	if low > high {
		low, high = high, low
	}
	return low, high, true
}

// Resolve returns the current positions of the Low and High marks and the
// orientation of the range they came from. ok is false if either mark is
// unset or names an entry that is not in the list.
func (m *RangeMarks) Resolve() (low, high int, upward, ok bool) {
	r, ok := m.Last()
	if !ok {
		return -1, -1, false, false
	}
	low, high, ok = m.Locate(r)
	if !ok {
		return -1, -1, false, false
	}
	return low, high, r.Upward, true
}
