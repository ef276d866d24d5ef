package selection

import (
	"fmt"
	"strings"
)

// flagList is an in-memory List. Entry 0 is a pseudo-parent when parent is
// set.
type flagList struct {
	sel    []bool
	names  []string
	parent bool
	pos    int
}

func newFlagList(n int, parent bool) *flagList {
	l := &flagList{sel: make([]bool, n), names: make([]string, n), parent: parent}
	for i := range l.names {
		l.names[i] = fmt.Sprintf("f%02d", i)
	}
	if parent && n > 0 {
		l.names[0] = ".."
	}
	return l
}

func (l *flagList) Len() int { return len(l.sel) }
func (l *flagList) IsSelected(i int) bool { return l.sel[i] }
func (l *flagList) SetSelected(i int, v bool) { l.sel[i] = v }
func (l *flagList) IsPseudoParent(i int) bool { return l.parent && i == 0 }
func (l *flagList) Position() int { return l.pos }
func (l *flagList) SetPosition(i int) { l.pos = i }

func (l *flagList) preselect(idx ...int) *flagList {
	for _, i := range idx {
		l.sel[i] = true
	}
	return l
}

func (l *flagList) selected() []int {
	var out []int
	for i, v := range l.sel {
		if v {
			out = append(out, i)
		}
	}
	return out
}

func (l *flagList) flags() []bool {
	out := make([]bool, len(l.sel))
	copy(out, l.sel)
	return out
}

func (l *flagList) RefAt(i int) (Ref, bool) {
	if i < 0 || i >= len(l.names) {
		return Ref{}, false
	}
	return Ref{Origin: "/dir", Name: l.names[i]}, true
}

func (l *flagList) IndexOf(ref Ref) int {
	if ref.Origin != "/dir" {
		return -1
	}
	for i, n := range l.names {
		if n == ref.Name {
			return i
		}
	}
	return -1
}

func (l *flagList) String() string {
	var b strings.Builder
	for _, v := range l.sel {
		if v {
			b.WriteByte('x')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// memMarks is an in-memory MarkStore.
type memMarks map[Bound]Ref

func (m memMarks) SetBound(b Bound, ref Ref) { m[b] = ref }

func (m memMarks) Bound(b Bound) (Ref, bool) {
	ref, ok := m[b]
	return ref, ok
}

func (m memMarks) SaveBounds() {}

// savingMarks counts SaveBounds calls.
type savingMarks struct {
	memMarks
	saves int
}

func (m *savingMarks) SaveBounds() { m.saves++ }

// expected computes the flags a range must produce from scratch. Replace
// ignores base outside the interval.
func expected(base []bool, parent bool, anchor, cursor int, mode AmendMode) []bool {
	lo, hi := anchor, cursor
	if lo > hi {
		lo, hi = hi, lo
	}
	out := make([]bool, len(base))
	for i := range base {
		switch {
		case parent && i == 0:
			out[i] = false
		case i >= lo && i <= hi:
			out[i] = mode.Combine(base[i])
		case mode == Replace:
			out[i] = false
		default:
			out[i] = base[i]
		}
	}
	return out
}

func countTrue(flags []bool) int {
	n := 0
	for _, v := range flags {
		if v {
			n++
		}
	}
	return n
}
