package ui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/fpane/internal/entry"
)

// Model is what the view needs from a pane.
type Model interface {
	Dir() string
	List() *entry.List
	Mode() string
	ModeLabel() string
	Pending() string
	Message() string
	Top() int
}

// Styles configures how the view draws.
type Styles struct {
	Normal   tcell.Style
	Dir      tcell.Style
	Selected tcell.Style
	Cursor   tcell.Style
	Status   tcell.Style
	Message  tcell.Style

	// Modes maps a mode name to the style of its label.
	Modes map[string]tcell.Style
}

// DefaultStyles returns the built-in color scheme.
func DefaultStyles() Styles {
	base := tcell.StyleDefault
	return Styles{
		Normal:   base,
		Dir:      base.Foreground(tcell.ColorBlue).Bold(true),
		Selected: base.Foreground(tcell.ColorYellow),
		Cursor:   base.Reverse(true),
		Status:   base.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite),
		Message:  base.Foreground(tcell.ColorRed),
		Modes: map[string]tcell.Style{
			"normal": base.Bold(true).Background(tcell.ColorBlue).Foreground(tcell.ColorWhite),
			"visual": base.Bold(true).Background(tcell.ColorPurple).Foreground(tcell.ColorWhite),
		},
	}
}

// selectMark prefixes selected rows.
const selectMark = '*'

// View draws a Model on a screen: one row per entry and a status line at
// the bottom.
type View struct {
	styles Styles
}

// NewView creates a view with the given styles.
func NewView(styles Styles) *View {
	return &View{styles: styles}
}

// Draw renders m onto s. The caller calls Show.
func (v *View) Draw(s tcell.Screen, m Model) {
	s.Clear()
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}

	list := m.List()
	rows := h - 1
	top := m.Top()
	for y := 0; y < rows; y++ {
		i := top + y
		e, ok := list.At(i)
		if !ok {
			break
		}
		v.drawEntry(s, y, w, e, i == list.Position())
	}
	v.drawStatus(s, h-1, w, m)
}

func (v *View) drawEntry(s tcell.Screen, y, w int, e entry.Entry, cursor bool) {
	style := v.styles.Normal
	switch {
	case e.Selected:
		style = v.styles.Selected
	case e.IsDir:
		style = v.styles.Dir
	}
	if cursor {
		style = style.Reverse(true)
	}

	mark := ' '
	if e.Selected {
		mark = selectMark
	}

	name := sanitize(e.Name)
	if e.IsDir && !e.IsPseudoParent() {
		name += "/"
	}
	size := ""
	if !e.IsDir {
		size = humanSize(e.Size)
	}

	// " name...   size "
	nameWidth := w - 2 - runewidth.StringWidth(size) - 1
	if nameWidth < 1 {
		nameWidth = w - 2
		size = ""
	}
	line := string(mark) + " " + runewidth.FillRight(runewidth.Truncate(name, nameWidth, "~"), nameWidth)
	if size != "" {
		line += " " + size
	}
	drawString(s, 0, y, w, line, style)
}

func (v *View) drawStatus(s tcell.Screen, y, w int, m Model) {
	fill(s, y, w, v.styles.Status)

	label := " " + m.ModeLabel() + " "
	labelStyle, ok := v.styles.Modes[m.Mode()]
	if !ok {
		labelStyle = v.styles.Status
	}
	x := drawString(s, 0, y, w, label, labelStyle)

	right := m.Pending()
	if n := m.List().SelectedCount(); n > 0 {
		if right != "" {
			right += "  "
		}
		right += fmt.Sprintf("%d selected", n)
	}
	if right != "" {
		right += " "
	}
	rw := runewidth.StringWidth(right)

	middle, style := " "+m.Dir(), v.styles.Status
	if msg := m.Message(); msg != "" {
		middle, style = " "+msg, v.styles.Status.Foreground(tcell.ColorRed)
	}
	avail := w - x - rw
	if avail > 0 {
		if runewidth.StringWidth(middle) > avail && m.Message() == "" {
			// Keep the tail of long paths.
			middle = runewidth.TruncateLeft(middle, runewidth.StringWidth(middle)-avail+1, "<")
		}
		drawString(s, x, y, x+avail, runewidth.Truncate(middle, avail, ""), style)
	}
	if rw > 0 && rw <= w-x {
		drawString(s, w-rw, y, w, right, v.styles.Status)
	}
}

// drawString draws str at (x, y), stopping before column limit. It
// returns the column after the last cell drawn.
func drawString(s tcell.Screen, x, y, limit int, str string, style tcell.Style) int {
	for _, r := range str {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > limit {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x += rw
	}
	return x
}

func fill(s tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

// sanitize replaces characters a terminal cannot draw.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if !unicode.IsPrint(r) {
			return '?'
		}
		return r
	}, name)
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%c", float64(n)/float64(div), "KMGTPE"[exp])
}
