package selection

// Baseline is a snapshot of the selection flags of a list, indexed like the
// list it was captured from. Amend modes combine against it, and rejecting a
// session restores from it.
type Baseline []bool

// Capture snapshots the flags of l and returns the snapshot together with
// the number of selected entries. Pseudo-parents are recorded unselected.
func Capture(l List) (Baseline, int) {
	b := make(Baseline, l.Len())
	n := 0
	for i := range b {
		if l.IsPseudoParent(i) {
			continue
		}
		if l.IsSelected(i) {
			b[i] = true
			n++
		}
	}
	return b, n
}

// At returns the snapshot flag at i. Indexes outside the snapshot read as
// unselected.
func (b Baseline) At(i int) bool {
	if i < 0 || i >= len(b) {
		return false
	}
	return b[i]
}

// Count returns the number of set flags.
func (b Baseline) Count() int {
	n := 0
	for _, v := range b {
		if v {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of b.
func (b Baseline) Clone() Baseline {
	if b == nil {
		return nil
	}
	c := make(Baseline, len(b))
	copy(c, b)
	return c
}

// Restore writes the snapshot back into l in one pass and returns the
// number of selected entries afterwards. Entries beyond the snapshot are
// unselected.
func (b Baseline) Restore(l List) int {
	n := 0
	for i := 0; i < l.Len(); i++ {
		want := b.At(i) && !l.IsPseudoParent(i)
		if l.IsSelected(i) != want {
			l.SetSelected(i, want)
		}
		if want {
			n++
		}
	}
	return n
}

// Remap returns the snapshot re-indexed for a list of length n, where
// index(old) gives the new position of old entry i or -1 when it is gone.
func (b Baseline) Remap(n int, index func(old int) int) Baseline {
	out := make(Baseline, n)
	for old, v := range b {
		if !v {
			continue
		}
		if i := index(old); i >= 0 && i < n {
			out[i] = true
		}
	}
	return out
}
