package pane

import "errors"

// Pane errors.
var (
	// ErrQuit is returned by Execute when the user asked to leave.
	ErrQuit = errors.New("pane: quit")

	// ErrNoHandler indicates a command no handler is registered for.
	ErrNoHandler = errors.New("pane: no handler for action")

	// ErrNotDirectory indicates an attempt to enter a plain file.
	ErrNotDirectory = errors.New("not a directory")

	// ErrMarkNotSet indicates a jump to a mark that was never set.
	ErrMarkNotSet = errors.New("mark not set")

	// ErrMarkGone indicates a jump to a mark whose entry no longer exists.
	ErrMarkGone = errors.New("marked entry no longer exists")

	// ErrNothingToYank indicates a yank with no selection and no usable
	// entry under the cursor.
	ErrNothingToYank = errors.New("nothing to yank")

	// ErrMarkElsewhere indicates a jump in visual mode to a mark of
	// another directory.
	ErrMarkElsewhere = errors.New("mark is in another directory")
)
