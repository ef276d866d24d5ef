// Package marks keeps named positions in the file tree: the user marks
// 'a' to 'z' and the range marks '<' and '>' written by visual selections.
// A Store can persist every mark to a directory through diskv, one small
// JSON document per mark.
package marks

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"github.com/dshills/fpane/internal/logging"
	"github.com/dshills/fpane/internal/selection"
)

// ErrInvalidMark indicates a rune that cannot name a mark.
var ErrInvalidMark = errors.New("invalid mark")

// Mark is the location a mark points at.
type Mark struct {
	Origin string    `json:"origin"`
	Name   string    `json:"name"`
	Time   time.Time `json:"time"`
}

// Ref returns the mark as an entry reference.
func (m Mark) Ref() selection.Ref {
	return selection.Ref{Origin: m.Origin, Name: m.Name}
}

// Named pairs a mark with its rune for listing.
type Named struct {
	Rune rune
	Mark
}

// Valid reports whether r can name a mark.
func Valid(r rune) bool {
	return IsUser(r) || r == rune(selection.Low) || r == rune(selection.High)
}

// IsUser reports whether r names a user mark.
func IsUser(r rune) bool {
	return r >= 'a' && r <= 'z'
}

// Store holds marks in memory and optionally on disk.
type Store struct {
	marks map[rune]Mark
	disk  *diskv.Diskv
	log   *logging.Logger
	now   func() time.Time
	dirty bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report persistence failures.
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l.WithComponent("marks")
		}
	}
}

// WithClock overrides the time source used to stamp marks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore returns an in-memory store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		marks: make(map[rune]Mark),
		log:   logging.Null(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open returns a store persisted under dir and loads the marks already
// there. Unreadable documents are skipped and logged.
func Open(dir string, opts ...Option) (*Store, error) {
	if dir == "" {
		return nil, errors.New("marks: empty directory")
	}
	s := NewStore(opts...)
	s.disk = diskv.New(diskv.Options{
		BasePath:     dir,
		CacheSizeMax: 64 * 1024,
	})
	if err := s.load(); err != nil {
		return nil, fmt.Errorf("marks: load %s: %w", dir, err)
	}
	return s, nil
}

func (s *Store) load() error {
	done := make(chan struct{})
	defer close(done)

	for k := range s.disk.Keys(done) {
		r, ok := runeForKey(k)
		if !ok {
			continue
		}
		data, err := s.disk.Read(k)
		if err != nil {
			return err
		}
		var m Mark
		if err := json.Unmarshal(data, &m); err != nil {
			s.log.Warn("skipping mark %q: %v", k, err)
			continue
		}
		s.marks[r] = m
	}
	return nil
}

// Set points mark r at name inside origin.
func (s *Store) Set(r rune, origin, name string) error {
	if !Valid(r) {
		return fmt.Errorf("%w: %q", ErrInvalidMark, r)
	}
	m := Mark{Origin: origin, Name: name, Time: s.now()}
	s.marks[r] = m
	return s.persist(r, m)
}

// Get returns mark r.
func (s *Store) Get(r rune) (Mark, bool) {
	m, ok := s.marks[r]
	return m, ok
}

// Delete removes mark r.
func (s *Store) Delete(r rune) error {
	if _, ok := s.marks[r]; !ok {
		return nil
	}
	delete(s.marks, r)
	if s.disk == nil {
		return nil
	}
	return s.disk.Erase(keyForRune(r))
}

// All returns every mark ordered by rune.
func (s *Store) All() []Named {
	out := make([]Named, 0, len(s.marks))
	for r, m := range s.marks {
		out = append(out, Named{Rune: r, Mark: m})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rune < out[j].Rune })
	return out
}

// SetBound records a range bound in memory. It is written to disk by the
// next SaveBounds.
func (s *Store) SetBound(b selection.Bound, ref selection.Ref) {
	s.marks[rune(b)] = Mark{Origin: ref.Origin, Name: ref.Name, Time: s.now()}
	s.dirty = true
}

// SaveBounds persists the range bounds set since the last save.
func (s *Store) SaveBounds() {
	if !s.dirty {
		return
	}
	s.dirty = false
	for _, b := range []selection.Bound{selection.Low, selection.High} {
		r := rune(b)
		m, ok := s.marks[r]
		if !ok {
			continue
		}
		if err := s.persist(r, m); err != nil {
			s.log.Warn("saving range mark %c: %v", r, err)
		}
	}
}

// Bound returns a range bound.
func (s *Store) Bound(b selection.Bound) (selection.Ref, bool) {
	m, ok := s.Get(rune(b))
	if !ok {
		return selection.Ref{}, false
	}
	return m.Ref(), true
}

func (s *Store) persist(r rune, m Mark) error {
	if s.disk == nil {
		return nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return s.disk.Write(keyForRune(r), data)
}

// keyForRune maps a mark to a file name that is safe on every platform.
func keyForRune(r rune) string {
	switch selection.Bound(r) {
	case selection.Low:
		return "range-low"
	case selection.High:
		return "range-high"
	}
	return "user-" + string(r)
}

func runeForKey(k string) (rune, bool) {
	switch k {
	case "range-low":
		return rune(selection.Low), true
	case "range-high":
		return rune(selection.High), true
	}
	if len(k) == len("user-a") && k[:5] == "user-" && IsUser(rune(k[5])) {
		return rune(k[5]), true
	}
	return 0, false
}
