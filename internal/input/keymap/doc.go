// Package keymap maps key sequences to pane commands.
//
// A Keymap is a named list of bindings for one mode. The Registry indexes
// keymaps by mode in a prefix tree; keymaps registered later shadow earlier
// ones, which is how user overrides replace the defaults.
//
// The Resolver turns a stream of key events into commands. It accumulates a
// count prefix ("5j"), waits on multi-key sequences ("gg", "av"), and hands
// one extra key to bindings that take an argument ("mx", "'x").
//
//	reg := keymap.NewRegistry()
//	_ = keymap.LoadDefaults(reg)
//	res := keymap.NewResolver(reg)
//
//	cmd, status := res.Feed(mode.ModeVisual, ev)
//	if status == keymap.Matched {
//	    // dispatch cmd.Action with cmd.Count and cmd.Arg
//	}
package keymap
