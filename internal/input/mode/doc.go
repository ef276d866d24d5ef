// Package mode provides the modal layer of the pane.
//
// A pane is always in exactly one mode. Normal mode moves the cursor and
// toggles single entries; visual mode owns a selection session and extends
// the selection as the cursor moves.
//
// When switching modes:
//  1. The current mode's Exit() is called
//  2. The new mode's Enter() is called
//  3. Mode change callbacks are notified
//
// If Enter fails the manager keeps the previous mode current, so a refused
// visual entry (for example, a restore with no usable marks) leaves the pane
// in normal mode.
package mode
