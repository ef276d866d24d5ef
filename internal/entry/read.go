package entry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SortKey orders a listing.
type SortKey int

const (
	// ByName sorts by name, case-insensitively.
	ByName SortKey = iota
	// BySize sorts by size, largest first.
	BySize
	// ByModTime sorts by modification time, newest first.
	ByModTime
)

// String returns the config name of the key.
func (k SortKey) String() string {
	switch k {
	case BySize:
		return "size"
	case ByModTime:
		return "mtime"
	default:
		return "name"
	}
}

// ParseSortKey parses "name", "size" or "mtime".
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "name":
		return ByName, nil
	case "size":
		return BySize, nil
	case "mtime", "time":
		return ByModTime, nil
	}
	return ByName, fmt.Errorf("unknown sort key %q", s)
}

// Options controls how a directory is listed.
type Options struct {
	ShowHidden bool
	DirsFirst  bool
	Sort       SortKey
}

// Read lists dir. Unless dir is the file system root, the first entry is
// the pseudo-parent.
func Read(dir string, opts Options) ([]Entry, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	dirents, err := os.ReadDir(abs)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirents)+1)
	for _, d := range dirents {
		info, err := d.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		e := Entry{
			Name:    d.Name(),
			Origin:  abs,
			IsDir:   d.IsDir(),
			Size:    info.Size(),
			Mode:    info.Mode(),
			ModTime: info.ModTime(),
		}
		if info.Mode()&os.ModeSymlink != 0 {
			if st, err := os.Stat(e.Path()); err == nil {
				e.IsDir = st.IsDir()
			}
		}
		if e.IsHidden() && !opts.ShowHidden {
			continue
		}
		entries = append(entries, e)
	}

	Sort(entries, opts)

	if filepath.Dir(abs) != abs {
		entries = append([]Entry{Parent(abs)}, entries...)
	}
	return entries, nil
}

// Sort orders entries in place according to opts.
func Sort(entries []Entry, opts Options) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsPseudoParent() != b.IsPseudoParent() {
			return a.IsPseudoParent()
		}
		if opts.DirsFirst && a.IsDir != b.IsDir {
			return a.IsDir
		}
		switch opts.Sort {
		case BySize:
			if a.Size != b.Size {
				return a.Size > b.Size
			}
		case ByModTime:
			if !a.ModTime.Equal(b.ModTime) {
				return a.ModTime.After(b.ModTime)
			}
		}
		la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if la != lb {
			return la < lb
		}
		return a.Name < b.Name
	})
}
