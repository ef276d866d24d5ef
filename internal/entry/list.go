package entry

import (
	"github.com/dshills/fpane/internal/selection"
)

// List is the ordered contents of one directory plus a cursor. It
// implements selection.List and selection.Locator.
type List struct {
	dir     string
	entries []Entry
	pos     int
}

// NewList returns a list over entries of dir.
func NewList(dir string, entries []Entry) *List {
	return &List{dir: dir, entries: entries}
}

// Load points the list at another directory. The cursor moves to the
// entry named focus, or to the first entry.
func (l *List) Load(dir string, entries []Entry, focus string) {
	l.dir = dir
	l.entries = entries
	l.pos = 0
	if i := l.IndexOfName(focus); i >= 0 {
		l.pos = i
	}
}

// Dir returns the directory the list was read from.
func (l *List) Dir() string { return l.dir }

// Len returns the number of entries, the pseudo-parent included.
func (l *List) Len() int { return len(l.entries) }

// At returns a copy of entry i.
func (l *List) At(i int) (Entry, bool) {
	if i < 0 || i >= len(l.entries) {
		return Entry{}, false
	}
	return l.entries[i], true
}

// Current returns the entry under the cursor.
func (l *List) Current() (Entry, bool) {
	return l.At(l.pos)
}

// IsSelected returns the selection flag of entry i.
func (l *List) IsSelected(i int) bool {
	if i < 0 || i >= len(l.entries) {
		return false
	}
	return l.entries[i].Selected
}

// SetSelected sets the selection flag of entry i. The pseudo-parent
// refuses to be selected.
func (l *List) SetSelected(i int, v bool) {
	if i < 0 || i >= len(l.entries) {
		return
	}
	if v && l.entries[i].IsPseudoParent() {
		return
	}
	l.entries[i].Selected = v
}

// Toggle flips the selection of entry i and reports the new value.
func (l *List) Toggle(i int) bool {
	l.SetSelected(i, !l.IsSelected(i))
	return l.IsSelected(i)
}

// IsPseudoParent reports whether entry i is "..".
func (l *List) IsPseudoParent(i int) bool {
	if i < 0 || i >= len(l.entries) {
		return false
	}
	return l.entries[i].IsPseudoParent()
}

// Position returns the cursor.
func (l *List) Position() int { return l.pos }

// SetPosition moves the cursor, clamped to the list.
func (l *List) SetPosition(i int) {
	switch {
	case len(l.entries) == 0 || i < 0:
		l.pos = 0
	case i >= len(l.entries):
		l.pos = len(l.entries) - 1
	default:
		l.pos = i
	}
}

// RefAt returns the reference of entry i.
func (l *List) RefAt(i int) (selection.Ref, bool) {
	e, ok := l.At(i)
	if !ok {
		return selection.Ref{}, false
	}
	return e.Ref(), true
}

// IndexOf returns the position of ref, or -1 when it names an entry of
// another directory or one that is not listed.
func (l *List) IndexOf(ref selection.Ref) int {
	if ref.Origin != l.dir {
		return -1
	}
	return l.IndexOfName(ref.Name)
}

// IndexOfName returns the position of the entry called name, or -1.
func (l *List) IndexOfName(name string) int {
	for i := range l.entries {
		if l.entries[i].Name == name {
			return i
		}
	}
	return -1
}

// SelectedCount scans the list and counts selected entries.
func (l *List) SelectedCount() int {
	return selection.CountSelected(l)
}

// Selected returns the selected entries in list order.
func (l *List) Selected() []Entry {
	var out []Entry
	for _, e := range l.entries {
		if e.Selected {
			out = append(out, e)
		}
	}
	return out
}

// SelectedPaths returns the paths of the selected entries, or the path of
// the entry under the cursor when nothing is selected.
func (l *List) SelectedPaths() []string {
	sel := l.Selected()
	if len(sel) == 0 {
		if cur, ok := l.Current(); ok && !cur.IsPseudoParent() {
			return []string{cur.Path()}
		}
		return nil
	}
	paths := make([]string, len(sel))
	for i, e := range sel {
		paths[i] = e.Path()
	}
	return paths
}

// ClearSelection unselects every entry.
func (l *List) ClearSelection() {
	selection.ClearAll(l)
}

// Replace swaps in a fresh listing of the same directory. Selection flags
// and the cursor follow entries by name. The returned function maps old
// positions to new ones, -1 for entries that disappeared.
func (l *List) Replace(entries []Entry) selection.Remap {
	oldNames := make([]string, len(l.entries))
	wasSelected := make(map[string]bool, len(l.entries))
	for i, e := range l.entries {
		oldNames[i] = e.Name
		if e.Selected {
			wasSelected[e.Name] = true
		}
	}

	index := make(map[string]int, len(entries))
	for i := range entries {
		entries[i].Selected = wasSelected[entries[i].Name] && !entries[i].IsPseudoParent()
		index[entries[i].Name] = i
	}

	remap := func(old int) int {
		if old < 0 || old >= len(oldNames) {
			return -1
		}
		if i, ok := index[oldNames[old]]; ok {
			return i
		}
		return -1
	}

	newPos := remap(l.pos)
	if newPos < 0 {
		newPos = l.pos
	}
	l.entries = entries
	l.SetPosition(newPos)
	return remap
}
