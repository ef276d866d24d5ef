package entry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dshills/fpane/internal/selection"
)

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func testList(dir string, ns ...string) *List {
	entries := []Entry{Parent(dir)}
	for _, n := range ns {
		entries = append(entries, Entry{Name: n, Origin: dir})
	}
	return NewList(dir, entries)
}

func TestListImplementsSelection(t *testing.T) {
	var _ selection.List = (*List)(nil)
	var _ selection.Locator = (*List)(nil)
}

func TestListPseudoParentRefusesSelection(t *testing.T) {
	l := testList("/d", "a", "b")

	l.SetSelected(0, true)
	require.False(t, l.IsSelected(0))
	require.True(t, l.IsPseudoParent(0))
	require.False(t, l.IsPseudoParent(1))

	require.True(t, l.Toggle(2))
	require.Equal(t, 1, l.SelectedCount())
	require.False(t, l.Toggle(2))
}

func TestListPositionClamped(t *testing.T) {
	l := testList("/d", "a", "b")

	l.SetPosition(10)
	require.Equal(t, 2, l.Position())
	l.SetPosition(-3)
	require.Equal(t, 0, l.Position())

	empty := NewList("/d", nil)
	empty.SetPosition(4)
	require.Equal(t, 0, empty.Position())
	_, ok := empty.Current()
	require.False(t, ok)
}

func TestListRefs(t *testing.T) {
	l := testList("/d", "a", "b")

	ref, ok := l.RefAt(2)
	require.True(t, ok)
	require.Equal(t, selection.Ref{Origin: "/d", Name: "b"}, ref)
	require.Equal(t, 2, l.IndexOf(ref))

	require.Equal(t, -1, l.IndexOf(selection.Ref{Origin: "/other", Name: "b"}))
	require.Equal(t, -1, l.IndexOf(selection.Ref{Origin: "/d", Name: "zz"}))
	_, ok = l.RefAt(9)
	require.False(t, ok)
}

func TestListSelectedPaths(t *testing.T) {
	l := testList("/d", "a", "b", "c")
	l.SetPosition(2)
	require.Equal(t, []string{"/d/b"}, l.SelectedPaths(), "falls back to the cursor")

	l.SetSelected(1, true)
	l.SetSelected(3, true)
	require.Equal(t, []string{"/d/a", "/d/c"}, l.SelectedPaths())

	l.ClearSelection()
	l.SetPosition(0)
	require.Empty(t, l.SelectedPaths(), "pseudo-parent is never a target")
}

func TestListReplaceFollowsNames(t *testing.T) {
	l := testList("/d", "a", "b", "c", "d")
	l.SetSelected(2, true)
	l.SetSelected(4, true)
	l.SetPosition(3)

	fresh := []Entry{Parent("/d"), {Name: "a"}, {Name: "aa"}, {Name: "c"}, {Name: "d"}}
	remap := l.Replace(fresh)

	require.Equal(t, []string{"..", "a", "aa", "c", "d"}, names(fresh))
	require.Equal(t, 3, l.Position(), "cursor stays on c")
	require.Equal(t, []bool{false, false, false, false, true}, []bool{
		l.IsSelected(0), l.IsSelected(1), l.IsSelected(2), l.IsSelected(3), l.IsSelected(4),
	})

	require.Equal(t, 1, remap(1))
	require.Equal(t, -1, remap(2), "b is gone")
	require.Equal(t, 3, remap(3))
	require.Equal(t, 4, remap(4))
	require.Equal(t, -1, remap(42))
}

func TestListReplaceCursorOnVanishedEntry(t *testing.T) {
	l := testList("/d", "a", "b", "c")
	l.SetPosition(3)

	l.Replace([]Entry{Parent("/d"), {Name: "a"}})
	require.Equal(t, 1, l.Position())
}

func TestParseSortKey(t *testing.T) {
	for in, want := range map[string]SortKey{"": ByName, "Name": ByName, "size": BySize, "mtime": ByModTime} {
		got, err := ParseSortKey(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
		require.NotEmpty(t, got.String())
	}
	_, err := ParseSortKey("color")
	require.Error(t, err)
}

func TestSortOrders(t *testing.T) {
	now := time.Now()
	base := []Entry{
		{Name: "b.txt", Size: 10, ModTime: now.Add(-time.Hour)},
		{Name: "A.txt", Size: 30, ModTime: now.Add(-2 * time.Hour)},
		{Name: "sub", IsDir: true, Size: 1, ModTime: now},
		Parent("/"),
	}

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{"name", Options{Sort: ByName}, []string{"..", "A.txt", "b.txt", "sub"}},
		{"dirs first", Options{Sort: ByName, DirsFirst: true}, []string{"..", "sub", "A.txt", "b.txt"}},
		{"size", Options{Sort: BySize}, []string{"..", "A.txt", "b.txt", "sub"}},
		{"mtime", Options{Sort: ByModTime}, []string{"..", "sub", "b.txt", "A.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := append([]Entry(nil), base...)
			Sort(entries, tt.opts)
			require.Equal(t, tt.want, names(entries))
		})
	}
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b"), []byte("bb"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "z"), 0o755))

	entries, err := Read(dir, Options{DirsFirst: true})
	require.NoError(t, err)
	require.Equal(t, []string{"..", "z", "a", "b"}, names(entries))
	require.True(t, entries[1].IsDir)
	require.Equal(t, int64(2), entries[3].Size)

	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	require.Equal(t, abs, entries[2].Origin)

	entries, err = Read(dir, Options{ShowHidden: true})
	require.NoError(t, err)
	require.Equal(t, []string{"..", ".hidden", "a", "b", "z"}, names(entries))

	_, err = Read(filepath.Join(dir, "missing"), Options{})
	require.Error(t, err)
}

func TestReadRootHasNoParent(t *testing.T) {
	root := string(filepath.Separator)
	entries, err := Read(root, Options{})
	if err != nil {
		t.Skipf("cannot list %s: %v", root, err)
	}
	for _, e := range entries {
		require.False(t, e.IsPseudoParent())
	}
}

func TestListLoad(t *testing.T) {
	l := testList("/d", "a", "b")
	l.SetSelected(2, true)
	l.SetPosition(2)

	l.Load("/", []Entry{{Name: "bin", Origin: "/"}, {Name: "d", Origin: "/", IsDir: true}}, "d")
	require.Equal(t, "/", l.Dir())
	require.Equal(t, 1, l.Position())
	require.Zero(t, l.SelectedCount())

	l.Load("/d", []Entry{Parent("/d"), {Name: "a", Origin: "/d"}}, "missing")
	require.Equal(t, 0, l.Position())
}
