// Package watcher follows the directory shown by a pane and reports when
// its listing may have changed.
//
// Individual file system events are not interesting to a pane: any create,
// remove or rename means the listing must be read again. The watcher
// therefore coalesces every event of the watched directory that arrives
// within the debounce window into a single Change.
package watcher

import (
	"errors"
	"time"
)

// Common errors returned by watcher operations.
var (
	ErrWatcherClosed = errors.New("watcher is closed")
	ErrPathNotExist  = errors.New("path does not exist")
	ErrNotDirectory  = errors.New("path is not a directory")
)

// changeBuffer is the capacity of the change and error channels.
const changeBuffer = 16

// Op represents the type of file system operation.
type Op uint32

const (
	// OpCreate indicates a file or directory was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates a file was written to.
	OpWrite
	// OpRemove indicates a file or directory was removed.
	OpRemove
	// OpRename indicates a file or directory was renamed.
	OpRename
	// OpChmod indicates file permissions were changed.
	OpChmod
)

var opNames = []struct {
	op   Op
	name string
}{
	{OpCreate, "CREATE"},
	{OpWrite, "WRITE"},
	{OpRemove, "REMOVE"},
	{OpRename, "RENAME"},
	{OpChmod, "CHMOD"},
}

// String returns the operations joined by '|'.
func (op Op) String() string {
	var s string
	for _, n := range opNames {
		if op.Has(n.op) {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	if s == "" {
		return "UNKNOWN"
	}
	return s
}

// Has returns true if the operation includes the given op.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Event represents a single file system change.
type Event struct {
	// Path is the absolute path of the affected file or directory.
	Path string

	// Op is the operation that occurred.
	Op Op

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Change is the coalesced result of the events of one debounce window.
type Change struct {
	// Dir is the directory the events happened in.
	Dir string

	// Op is the union of all operations seen.
	Op Op

	// Events is the number of events coalesced.
	Events int

	// First and Last bound the window.
	First time.Time
	Last  time.Time
}

// Config holds watcher configuration options.
type Config struct {
	// DebounceDelay is the quiet period after the last event before a
	// Change is delivered.
	// Default: 150ms
	DebounceDelay time.Duration

	// IgnoreHidden ignores events on hidden files (starting with .).
	// Default: false
	IgnoreHidden bool

	// IgnoreChmod drops permission-only changes, which never alter a
	// listing.
	// Default: true
	IgnoreChmod bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 150 * time.Millisecond,
		IgnoreChmod:   true,
	}
}

// Option configures a watcher.
type Option func(*Config)

// WithDebounceDelay sets the debounce delay.
func WithDebounceDelay(d time.Duration) Option {
	return func(c *Config) {
		c.DebounceDelay = d
	}
}

// WithIgnoreHidden enables ignoring hidden files.
func WithIgnoreHidden(ignore bool) Option {
	return func(c *Config) {
		c.IgnoreHidden = ignore
	}
}
