// Package entry holds the ordered list of directory entries shown by a
// pane, together with their selection flags and the pane cursor.
package entry

import (
	"io/fs"
	"path/filepath"
	"time"

	"github.com/dshills/fpane/internal/selection"
)

// ParentName is the name of the pseudo-parent entry.
const ParentName = ".."

// Entry is one row of a directory listing.
type Entry struct {
	Name     string
	Origin   string
	IsDir    bool
	Size     int64
	Mode     fs.FileMode
	ModTime  time.Time
	Selected bool
}

// Parent returns the pseudo-parent entry of dir.
func Parent(dir string) Entry {
	return Entry{Name: ParentName, Origin: dir, IsDir: true, Mode: fs.ModeDir}
}

// IsPseudoParent reports whether e is the ".." navigation entry.
func (e Entry) IsPseudoParent() bool {
	return e.Name == ParentName
}

// Path returns the absolute path of the entry.
func (e Entry) Path() string {
	return filepath.Join(e.Origin, e.Name)
}

// Ref returns a position-independent reference to e.
func (e Entry) Ref() selection.Ref {
	return selection.Ref{Origin: e.Origin, Name: e.Name}
}

// IsHidden reports whether the entry is a dot file.
func (e Entry) IsHidden() bool {
	return len(e.Name) > 0 && e.Name[0] == '.' && !e.IsPseudoParent()
}
