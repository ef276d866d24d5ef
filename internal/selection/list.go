package selection

// List is the index-addressable sequence of entries a session selects over.
// The engine mutates selection flags through it but never owns it, and it
// never keeps an entry by pointer: a reloaded list is addressed the same way.
type List interface {
	// Len returns the number of entries.
	Len() int

	// IsSelected returns the selection flag of entry i.
	IsSelected(i int) bool

	// SetSelected sets the selection flag of entry i.
	SetSelected(i int, selected bool)

	// IsPseudoParent reports whether entry i is the ".." navigation entry.
	IsPseudoParent(i int) bool

	// Position returns the browser cursor.
	Position() int

	// SetPosition moves the browser cursor.
	SetPosition(i int)
}

// CountSelected scans l and returns the number of selected entries.
func CountSelected(l List) int {
	n := 0
	for i := 0; i < l.Len(); i++ {
		if l.IsSelected(i) {
			n++
		}
	}
	return n
}

// ClearAll unselects every entry of l.
func ClearAll(l List) {
	for i := 0; i < l.Len(); i++ {
		if l.IsSelected(i) {
			l.SetSelected(i, false)
		}
	}
}
