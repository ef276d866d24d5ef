package pane

import (
	"fmt"
	"path/filepath"

	"github.com/dshills/fpane/internal/input/keymap"
	"github.com/dshills/fpane/internal/input/mode"
	"github.com/dshills/fpane/internal/marks"
	"github.com/dshills/fpane/internal/selection"
)

// handlerFunc runs one action.
type handlerFunc func(p *Pane, cmd keymap.Command) error

func defaultHandlers() map[string]handlerFunc {
	return map[string]handlerFunc{
		keymap.ActionNop: func(*Pane, keymap.Command) error { return nil },

		keymap.ActionDown:         func(p *Pane, c keymap.Command) error { p.moveBy(1, c.Count); return nil },
		keymap.ActionUp:           func(p *Pane, c keymap.Command) error { p.moveBy(-1, c.Count); return nil },
		keymap.ActionFirst:        func(p *Pane, c keymap.Command) error { p.moveTo(c.CountOr(1) - 1); return nil },
		keymap.ActionLast:         func(p *Pane, c keymap.Command) error { p.moveTo(c.CountOr(p.list.Len()) - 1); return nil },
		keymap.ActionWindowTop:    windowTop,
		keymap.ActionWindowMiddle: windowMiddle,
		keymap.ActionWindowBottom: windowBottom,
		keymap.ActionHalfPageDown: func(p *Pane, c keymap.Command) error { p.scrollBy(p.view.halfPage()); return nil },
		keymap.ActionHalfPageUp:   func(p *Pane, c keymap.Command) error { p.scrollBy(-p.view.halfPage()); return nil },
		keymap.ActionPageDown:     func(p *Pane, c keymap.Command) error { p.scrollBy(p.view.page() * c.Count); return nil },
		keymap.ActionPageUp:       func(p *Pane, c keymap.Command) error { p.scrollBy(-p.view.page() * c.Count); return nil },
		keymap.ActionPercent:      percent,

		keymap.ActionMarkJump: markJump,
		keymap.ActionMarkSet:  markSet,

		keymap.ActionVisualEnter:        func(p *Pane, c keymap.Command) error { return p.enterVisual(mode.ReasonDefault, c) },
		keymap.ActionVisualEnterAmend:   func(p *Pane, c keymap.Command) error { return p.enterVisual(mode.ReasonAmend, c) },
		keymap.ActionVisualEnterRestore: func(p *Pane, c keymap.Command) error { return p.enterVisual(mode.ReasonRestore, c) },
		keymap.ActionVisualToggle:       visualToggle,
		keymap.ActionVisualToggleAmend:  visualToggleAmend,
		keymap.ActionVisualCycleAmend:   func(p *Pane, _ keymap.Command) error { p.session.CycleAmend(); return nil },
		keymap.ActionVisualRestore:      visualRestore,
		keymap.ActionVisualSwap:         func(p *Pane, _ keymap.Command) error { p.session.Swap(); return nil },
		keymap.ActionVisualAccept:       visualAccept,
		keymap.ActionVisualReject:       visualReject,

		keymap.ActionSelectionToggle: selectionToggle,
		keymap.ActionSelectionClear:  func(p *Pane, _ keymap.Command) error { p.list.ClearSelection(); return nil },
		keymap.ActionSelectionYank:   selectionYank,

		keymap.ActionDirEnter:  dirEnter,
		keymap.ActionDirParent: dirParent,

		keymap.ActionQuit: func(*Pane, keymap.Command) error { return ErrQuit },
	}
}

// moveTo puts the cursor on i, extending the selection in visual mode.
func (p *Pane) moveTo(i int) {
	if p.session.Active() {
		p.session.JumpTo(i)
		return
	}
	p.list.SetPosition(i)
}

func (p *Pane) moveBy(dir, count int) {
	if p.session.Active() {
		p.session.Move(dir, count)
		return
	}
	p.list.SetPosition(p.list.Position() + dir*max(count, 1))
}

// scrollBy moves the window and the cursor together.
func (p *Pane) scrollBy(delta int) {
	p.view.top = max(min(p.view.top+delta, p.list.Len()-p.view.height), 0)
	p.moveTo(p.list.Position() + delta)
}

func windowTop(p *Pane, c keymap.Command) error {
	p.moveTo(p.view.windowTop(c.Count, p.list.Len()))
	return nil
}

func windowMiddle(p *Pane, _ keymap.Command) error {
	p.moveTo(p.view.windowMiddle(p.list.Len()))
	return nil
}

func windowBottom(p *Pane, c keymap.Command) error {
	p.moveTo(p.view.windowBottom(c.Count, p.list.Len()))
	return nil
}

// percent jumps to count percent of the list. Without a count it does
// nothing.
func percent(p *Pane, c keymap.Command) error {
	if !c.HasCount || c.Count > 100 {
		return nil
	}
	p.moveTo((c.Count*p.list.Len()+99)/100 - 1)
	return nil
}

func markJump(p *Pane, c keymap.Command) error {
	m, ok := p.marks.Get(c.Arg)
	if !ok {
		return userError{fmt.Errorf("%w: %c", ErrMarkNotSet, c.Arg)}
	}
	if m.Origin != p.list.Dir() {
		if p.session.Active() {
			return userError{ErrMarkElsewhere}
		}
		return p.chdir(m.Origin, m.Name)
	}
	i := p.list.IndexOfName(m.Name)
	if i < 0 {
		return userError{fmt.Errorf("%w: %s", ErrMarkGone, m.Name)}
	}
	p.moveTo(i)
	return nil
}

func markSet(p *Pane, c keymap.Command) error {
	if !marks.IsUser(c.Arg) {
		return userError{fmt.Errorf("%w: %c", marks.ErrInvalidMark, c.Arg)}
	}
	e, ok := p.list.Current()
	if !ok {
		return nil
	}
	if err := p.marks.Set(c.Arg, p.list.Dir(), e.Name); err != nil {
		return userError{err}
	}
	return nil
}

func (p *Pane) enterVisual(reason mode.Reason, c keymap.Command) error {
	ctx := mode.NewContext().WithReason(reason).WithCount(c.Count)
	if err := p.modes.SwitchWithContext(mode.ModeVisual, ctx); err != nil {
		p.log.Debug("visual entry refused: %v", err)
		return userError{err}
	}
	return nil
}

// leaveVisual returns to normal mode. A session still running at that
// point is rejected by the visual mode's exit hook.
func (p *Pane) leaveVisual() {
	if !p.modes.IsMode(mode.ModeVisual) {
		return
	}
	if err := p.modes.Switch(mode.ModeNormal); err != nil {
		p.log.Error("leaving visual mode: %v", err)
	}
}

func visualToggle(p *Pane, _ keymap.Command) error {
	if !p.session.ToggleVisual() {
		p.leaveVisual()
	}
	return nil
}

func visualToggleAmend(p *Pane, _ keymap.Command) error {
	if !p.session.ToggleAmend() {
		p.leaveVisual()
	}
	return nil
}

func visualRestore(p *Pane, _ keymap.Command) error {
	if !p.session.RestorePrevious() {
		return userError{selection.ErrRestoreUnavailable}
	}
	return nil
}

func visualAccept(p *Pane, _ keymap.Command) error {
	p.session.Accept()
	p.leaveVisual()
	return nil
}

func visualReject(p *Pane, _ keymap.Command) error {
	p.session.Reject()
	p.leaveVisual()
	return nil
}

// selectionToggle flips count entries starting at the cursor.
func selectionToggle(p *Pane, c keymap.Command) error {
	pos := p.list.Position()
	for i := pos; i < pos+c.Count && i < p.list.Len(); i++ {
		p.list.Toggle(i)
	}
	return nil
}

// selectionYank copies the selected paths, or the path under the cursor,
// to the clipboard. In visual mode the selection is accepted.
func selectionYank(p *Pane, _ keymap.Command) error {
	if p.session.Active() {
		p.session.Accept()
		p.leaveVisual()
	}
	paths := p.list.SelectedPaths()
	if len(paths) == 0 {
		return userError{ErrNothingToYank}
	}
	if err := p.yank(joinPaths(paths)); err != nil {
		return userError{fmt.Errorf("yank: %w", err)}
	}
	if len(paths) == 1 {
		p.message = "yanked " + paths[0]
	} else {
		p.message = fmt.Sprintf("yanked %d paths", len(paths))
	}
	return nil
}

func dirEnter(p *Pane, _ keymap.Command) error {
	e, ok := p.list.Current()
	if !ok {
		return nil
	}
	if e.IsPseudoParent() {
		return dirParent(p, keymap.Command{})
	}
	if !e.IsDir {
		return userError{fmt.Errorf("%s: %w", e.Name, ErrNotDirectory)}
	}
	return p.chdir(e.Path(), "")
}

func dirParent(p *Pane, _ keymap.Command) error {
	dir := p.list.Dir()
	parent := filepath.Dir(dir)
	if parent == dir {
		return nil
	}
	return p.chdir(parent, filepath.Base(dir))
}
