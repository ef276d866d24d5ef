package keymap

import "github.com/dshills/fpane/internal/input/mode"

// Actions understood by the pane.
const (
	ActionNop = "nop"

	ActionDown         = "cursor.down"
	ActionUp           = "cursor.up"
	ActionFirst        = "cursor.first"
	ActionLast         = "cursor.last"
	ActionWindowTop    = "cursor.windowTop"
	ActionWindowMiddle = "cursor.windowMiddle"
	ActionWindowBottom = "cursor.windowBottom"
	ActionHalfPageDown = "cursor.halfPageDown"
	ActionHalfPageUp   = "cursor.halfPageUp"
	ActionPageDown     = "cursor.pageDown"
	ActionPageUp       = "cursor.pageUp"
	ActionPercent      = "cursor.percent"

	ActionMarkJump = "mark.jump"
	ActionMarkSet  = "mark.set"

	ActionVisualEnter        = "visual.enter"
	ActionVisualEnterAmend   = "visual.enterAmend"
	ActionVisualEnterRestore = "visual.enterRestore"
	ActionVisualToggle       = "visual.toggle"
	ActionVisualToggleAmend  = "visual.toggleAmend"
	ActionVisualCycleAmend   = "visual.cycleAmend"
	ActionVisualRestore      = "visual.restore"
	ActionVisualSwap         = "visual.swap"
	ActionVisualAccept       = "visual.accept"
	ActionVisualReject       = "visual.reject"

	ActionSelectionToggle = "selection.toggle"
	ActionSelectionClear  = "selection.clear"
	ActionSelectionYank   = "selection.yank"

	ActionDirEnter  = "dir.enter"
	ActionDirParent = "dir.parent"

	ActionQuit = "app.quit"
)

// movement is shared by both modes; in visual mode every move extends the
// selection.
func movement() []Binding {
	const cat = "Movement"
	return []Binding{
		NewBinding("j", ActionDown).WithDescription("Move down").WithCategory(cat),
		NewBinding("<Down>", ActionDown).WithCategory(cat),
		NewBinding("<C-n>", ActionDown).WithCategory(cat),
		NewBinding("k", ActionUp).WithDescription("Move up").WithCategory(cat),
		NewBinding("<Up>", ActionUp).WithCategory(cat),
		NewBinding("<C-p>", ActionUp).WithCategory(cat),
		NewBinding("gg", ActionFirst).WithDescription("Go to first entry, or entry N").WithCategory(cat),
		NewBinding("<Home>", ActionFirst).WithCategory(cat),
		NewBinding("G", ActionLast).WithDescription("Go to last entry, or entry N").WithCategory(cat),
		NewBinding("<End>", ActionLast).WithCategory(cat),
		NewBinding("H", ActionWindowTop).WithDescription("Top of window").WithCategory(cat),
		NewBinding("M", ActionWindowMiddle).WithDescription("Middle of window").WithCategory(cat),
		NewBinding("L", ActionWindowBottom).WithDescription("Bottom of window").WithCategory(cat),
		NewBinding("<C-d>", ActionHalfPageDown).WithDescription("Half page down").WithCategory(cat),
		NewBinding("<C-u>", ActionHalfPageUp).WithDescription("Half page up").WithCategory(cat),
		NewBinding("<C-f>", ActionPageDown).WithDescription("Page down").WithCategory(cat),
		NewBinding("<PageDown>", ActionPageDown).WithCategory(cat),
		NewBinding("<C-b>", ActionPageUp).WithDescription("Page up").WithCategory(cat),
		NewBinding("<PageUp>", ActionPageUp).WithCategory(cat),
		NewBinding("%", ActionPercent).WithDescription("Go to N percent of the list").WithCategory(cat),
		NewBinding("'", ActionMarkJump).WithArg().WithDescription("Jump to mark").WithCategory("Marks"),
		NewBinding("m", ActionMarkSet).WithArg().WithDescription("Set mark").WithCategory("Marks"),
	}
}

// LoadDefaults loads all default keymaps into the registry.
func LoadDefaults(r *Registry) error {
	for _, km := range []*Keymap{DefaultNormalKeymap(), DefaultVisualKeymap()} {
		if err := r.Register(km); err != nil {
			return err
		}
	}
	return nil
}

// DefaultNormalKeymap returns default normal mode bindings.
func DefaultNormalKeymap() *Keymap {
	km := NewKeymap("default-normal").ForMode(mode.ModeNormal).WithSource("default")
	for _, b := range movement() {
		km.AddBinding(b)
	}

	const sel = "Selection"
	km.AddBinding(NewBinding("v", ActionVisualEnter).WithDescription("Start selecting").WithCategory(sel))
	km.AddBinding(NewBinding("V", ActionVisualEnter).WithCategory(sel))
	km.AddBinding(NewBinding("av", ActionVisualEnterAmend).WithDescription("Add to the selection").WithCategory(sel))
	km.AddBinding(NewBinding("gv", ActionVisualEnterRestore).WithDescription("Reselect previous range").WithCategory(sel))
	km.AddBinding(NewBinding("t", ActionSelectionToggle).WithDescription("Toggle entry").WithCategory(sel))
	km.AddBinding(NewBinding("<Space>", ActionSelectionToggle).WithCategory(sel))
	km.AddBinding(NewBinding("<Esc>", ActionSelectionClear).WithDescription("Clear selection").WithCategory(sel))
	km.AddBinding(NewBinding("Y", ActionSelectionYank).WithDescription("Copy paths").WithCategory(sel))

	const nav = "Navigation"
	km.AddBinding(NewBinding("l", ActionDirEnter).WithDescription("Open directory").WithCategory(nav))
	km.AddBinding(NewBinding("<CR>", ActionDirEnter).WithCategory(nav))
	km.AddBinding(NewBinding("<Right>", ActionDirEnter).WithCategory(nav))
	km.AddBinding(NewBinding("h", ActionDirParent).WithDescription("Parent directory").WithCategory(nav))
	km.AddBinding(NewBinding("<BS>", ActionDirParent).WithCategory(nav))
	km.AddBinding(NewBinding("<Left>", ActionDirParent).WithCategory(nav))

	km.AddBinding(NewBinding("q", ActionQuit).WithDescription("Quit"))
	km.AddBinding(NewBinding("ZZ", ActionQuit))
	return km
}

// DefaultVisualKeymap returns default visual mode bindings.
func DefaultVisualKeymap() *Keymap {
	km := NewKeymap("default-visual").ForMode(mode.ModeVisual).WithSource("default")
	for _, b := range movement() {
		km.AddBinding(b)
	}

	const cat = "Visual"
	km.AddBinding(NewBinding("o", ActionVisualSwap).WithDescription("Swap anchor and cursor").WithCategory(cat))
	km.AddBinding(NewBinding("O", ActionVisualSwap).WithCategory(cat))
	km.AddBinding(NewBinding("v", ActionVisualToggle).WithDescription("Leave, or back to plain visual").WithCategory(cat))
	km.AddBinding(NewBinding("av", ActionVisualToggleAmend).WithDescription("Amend, or leave amending").WithCategory(cat))
	km.AddBinding(NewBinding("<C-g>", ActionVisualCycleAmend).WithDescription("Cycle amend mode").WithCategory(cat))
	km.AddBinding(NewBinding("gv", ActionVisualRestore).WithDescription("Reselect previous range").WithCategory(cat))
	km.AddBinding(NewBinding("<Esc>", ActionVisualReject).WithDescription("Cancel selection").WithCategory(cat))
	km.AddBinding(NewBinding("<C-c>", ActionVisualReject).WithCategory(cat))
	km.AddBinding(NewBinding("<CR>", ActionVisualAccept).WithDescription("Keep selection").WithCategory(cat))
	km.AddBinding(NewBinding("Y", ActionSelectionYank).WithDescription("Copy paths and keep selection").WithCategory(cat))
	return km
}

// KnownAction reports whether name is an action the pane can run.
func KnownAction(name string) bool {
	_, ok := knownActions[name]
	return ok
}

var knownActions = func() map[string]struct{} {
	m := map[string]struct{}{ActionNop: {}}
	for _, km := range []*Keymap{DefaultNormalKeymap(), DefaultVisualKeymap()} {
		for _, b := range km.Bindings {
			m[b.Action] = struct{}{}
		}
	}
	return m
}()

// takesArg reports whether action consumes a character argument.
func takesArg(action string) bool {
	return action == ActionMarkJump || action == ActionMarkSet
}
