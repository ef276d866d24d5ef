package pane

// viewport is the window of entries shown on screen.
type viewport struct {
	top       int
	height    int
	scrollOff int
}

// SetHeight sets the number of visible rows.
func (p *Pane) SetHeight(h int) {
	p.view.height = max(h, 1)
	p.view.follow(p.list.Position(), p.list.Len())
}

// Top returns the index of the first visible entry.
func (p *Pane) Top() int { return p.view.top }

// Height returns the number of visible rows.
func (p *Pane) Height() int { return p.view.height }

// off returns the scroll margin usable with the current height.
func (v *viewport) off() int {
	return min(v.scrollOff, (v.height-1)/2)
}

// follow scrolls so that pos is visible with the scroll margin.
func (v *viewport) follow(pos, n int) {
	off := v.off()
	if pos-off < v.top {
		v.top = pos - off
	}
	if pos+off >= v.top+v.height {
		v.top = pos + off - v.height + 1
	}
	v.top = min(v.top, n-v.height)
	v.top = max(v.top, 0)
}

// windowTop is the target of H: the first row below the top margin, moved
// down by count-1.
func (v *viewport) windowTop(count, n int) int {
	i := v.top + count - 1
	if v.top > 0 {
		i += v.off()
	}
	return min(i, v.bottom(n))
}

// windowMiddle is the target of M.
func (v *viewport) windowMiddle(n int) int {
	return v.top + (v.bottom(n)-v.top)/2
}

// windowBottom is the target of L: the last row above the bottom margin,
// moved up by count-1.
func (v *viewport) windowBottom(count, n int) int {
	i := v.bottom(n) - (count - 1)
	if v.top+v.height < n {
		i -= v.off()
	}
	return max(i, v.top)
}

// bottom returns the index of the last visible entry.
func (v *viewport) bottom(n int) int {
	return max(min(v.top+v.height, n)-1, 0)
}

// halfPage is the distance of C-d and C-u.
func (v *viewport) halfPage() int {
	return max(v.height/2, 1)
}

// page is the distance of C-f and C-b: a screen less two rows of context.
func (v *viewport) page() int {
	return max(v.height-2, 1)
}
