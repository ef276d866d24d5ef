package marks

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dshills/fpane/internal/selection"
)

var fixedTime = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedTime }

func TestValid(t *testing.T) {
	for _, r := range "az<>" {
		require.True(t, Valid(r), "%q", r)
	}
	for _, r := range "AZ09'`\"" {
		require.False(t, Valid(r), "%q", r)
	}
}

func TestStoreSetGet(t *testing.T) {
	s := NewStore(WithClock(clock))

	require.NoError(t, s.Set('a', "/home", "notes.txt"))
	m, ok := s.Get('a')
	require.True(t, ok)
	require.Equal(t, Mark{Origin: "/home", Name: "notes.txt", Time: fixedTime}, m)

	_, ok = s.Get('b')
	require.False(t, ok)

	err := s.Set('A', "/home", "x")
	require.ErrorIs(t, err, ErrInvalidMark)
}

func TestStoreBounds(t *testing.T) {
	s := NewStore()

	_, ok := s.Bound(selection.Low)
	require.False(t, ok)

	s.SetBound(selection.Low, selection.Ref{Origin: "/src", Name: "a.go"})
	s.SetBound(selection.High, selection.Ref{Origin: "/src", Name: "z.go"})

	low, ok := s.Bound(selection.Low)
	require.True(t, ok)
	require.Equal(t, "a.go", low.Name)

	m, ok := s.Get('>')
	require.True(t, ok)
	require.Equal(t, "z.go", m.Name)
}

func TestStoreAllOrdered(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Set('q', "/", "q"))
	require.NoError(t, s.Set('<', "/", "lo"))
	require.NoError(t, s.Set('c', "/", "c"))

	var runes []rune
	for _, n := range s.All() {
		runes = append(runes, n.Rune)
	}
	require.Equal(t, []rune{'<', 'c', 'q'}, runes)
}

func TestOpenPersists(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, WithClock(clock))
	require.NoError(t, err)
	require.NoError(t, s.Set('m', "/work", "Makefile"))
	s.SetBound(selection.Low, selection.Ref{Origin: "/work", Name: "a"})
	s.SetBound(selection.High, selection.Ref{Origin: "/work", Name: "b"})

	_, err = os.Stat(filepath.Join(dir, "range-low"))
	require.True(t, os.IsNotExist(err), "range marks stay in memory until saved")

	s.SaveBounds()
	_, err = os.Stat(filepath.Join(dir, "range-low"))
	require.NoError(t, err)

	again, err := Open(dir)
	require.NoError(t, err)

	m, ok := again.Get('m')
	require.True(t, ok)
	require.Equal(t, "Makefile", m.Name)
	require.True(t, m.Time.Equal(fixedTime))

	high, ok := again.Bound(selection.High)
	require.True(t, ok)
	require.Equal(t, selection.Ref{Origin: "/work", Name: "b"}, high)

	require.NoError(t, again.Delete('m'))
	_, err = os.Stat(filepath.Join(dir, "user-m"))
	require.True(t, os.IsNotExist(err))
}

func TestOpenSkipsForeignAndCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("hi"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user-x"), []byte("{not json"), 0o644))

	s, err := Open(dir)
	require.NoError(t, err)
	require.Empty(t, s.All())
}

func TestOpenEmptyDir(t *testing.T) {
	_, err := Open("")
	require.Error(t, err)
}

func TestKeyRoundTrip(t *testing.T) {
	for _, r := range "<>amz" {
		got, ok := runeForKey(keyForRune(r))
		require.True(t, ok)
		require.Equal(t, r, got)
	}
	_, ok := runeForKey("user-A")
	require.False(t, ok)
}

func TestSaveBoundsWritesOnlyWhenChanged(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, WithClock(clock))
	require.NoError(t, err)

	s.SaveBounds()
	_, err = os.Stat(filepath.Join(dir, "range-high"))
	require.True(t, os.IsNotExist(err))

	s.SetBound(selection.High, selection.Ref{Origin: "/work", Name: "z"})
	s.SaveBounds()
	require.NoError(t, os.Remove(filepath.Join(dir, "range-high")))

	s.SaveBounds()
	_, err = os.Stat(filepath.Join(dir, "range-high"))
	require.True(t, os.IsNotExist(err), "nothing changed since the last save")

	s.SetBound(selection.High, selection.Ref{Origin: "/work", Name: "y"})
	s.SaveBounds()
	again, err := Open(dir)
	require.NoError(t, err)
	high, ok := again.Bound(selection.High)
	require.True(t, ok)
	require.Equal(t, "y", high.Name)
}
