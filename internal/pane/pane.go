// Package pane is one file pane: a directory listing, its cursor and
// selection, the modes that drive them, and the commands bound to keys.
//
// A Pane is owned by a single goroutine. Directory reloads triggered by the
// watcher must be delivered to that goroutine, which then calls Reload.
package pane

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dshills/fpane/internal/entry"
	"github.com/dshills/fpane/internal/input/key"
	"github.com/dshills/fpane/internal/input/keymap"
	"github.com/dshills/fpane/internal/input/mode"
	"github.com/dshills/fpane/internal/logging"
	"github.com/dshills/fpane/internal/marks"
	"github.com/dshills/fpane/internal/selection"
)

// Pane is a single directory view.
type Pane struct {
	list     *entry.List
	session  *selection.Session
	marks    *marks.Store
	modes    *mode.Manager
	registry *keymap.Registry
	keys     *keymap.Resolver
	handlers map[string]handlerFunc
	opts     entry.Options
	log      *logging.Logger
	view     viewport
	yank     func(string) error

	message  string
	rev      uint64
	onChange []func()
	onChdir  []func(dir string)
}

// Option configures a Pane.
type Option func(*Pane)

// WithLogger sets the pane logger.
func WithLogger(l *logging.Logger) Option {
	return func(p *Pane) {
		if l != nil {
			p.log = l
		}
	}
}

// WithMarks sets the mark store. Without one, marks live only in memory.
func WithMarks(s *marks.Store) Option {
	return func(p *Pane) {
		if s != nil {
			p.marks = s
		}
	}
}

// WithListing sets how directories are read and ordered.
func WithListing(opts entry.Options) Option {
	return func(p *Pane) {
		p.opts = opts
	}
}

// WithKeymaps replaces the default bindings. The registry should already
// hold the defaults plus any user overrides.
func WithKeymaps(r *keymap.Registry) Option {
	return func(p *Pane) {
		if r != nil {
			p.registry = r
		}
	}
}

// WithClipboard sets the function that receives yanked paths.
func WithClipboard(write func(string) error) Option {
	return func(p *Pane) {
		if write != nil {
			p.yank = write
		}
	}
}

// WithScrollOff keeps n entries visible above and below the cursor.
func WithScrollOff(n int) Option {
	return func(p *Pane) {
		p.view.scrollOff = max(n, 0)
	}
}

// New opens a pane on dir.
func New(dir string, opts ...Option) (*Pane, error) {
	p := &Pane{
		log:  logging.Null(),
		yank: writeClipboard,
		view: viewport{height: 1},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.WithComponent("pane")

	if p.marks == nil {
		p.marks = marks.NewStore(marks.WithLogger(p.log))
	}
	if p.registry == nil {
		p.registry = keymap.NewRegistry()
		if err := keymap.LoadDefaults(p.registry); err != nil {
			return nil, fmt.Errorf("pane: keymaps: %w", err)
		}
	}
	p.keys = keymap.NewResolver(p.registry)

	abs, entries, err := p.read(dir)
	if err != nil {
		return nil, err
	}
	p.list = entry.NewList(abs, entries)

	p.session = selection.NewSession(p.list,
		selection.WithLogger(p.log),
		selection.WithMarks(selection.NewRangeMarks(p.marks, p.list)),
	)
	// Session changes can fire while the mode manager holds its lock, so
	// they only bump the revision; observers run after the command.
	p.session.OnChange(func() { p.rev++ })

	p.modes = mode.NewManager()
	p.modes.Register(mode.NewNormalMode())
	p.modes.Register(mode.NewVisualMode(p.session))
	if err := p.modes.SetInitialMode(mode.ModeNormal); err != nil {
		return nil, err
	}
	p.modes.OnChange(func(from, to mode.Mode) {
		p.log.Debug("mode %s -> %s", from.Name(), to.Name())
		p.changed()
	})

	p.handlers = defaultHandlers()
	return p, nil
}

// OnChange registers fn to be called whenever something visible changed.
func (p *Pane) OnChange(fn func()) {
	if fn != nil {
		p.onChange = append(p.onChange, fn)
	}
}

// OnChdir registers fn to be called after the pane moved to another
// directory.
func (p *Pane) OnChdir(fn func(dir string)) {
	if fn != nil {
		p.onChdir = append(p.onChdir, fn)
	}
}

// Dir returns the directory shown.
func (p *Pane) Dir() string { return p.list.Dir() }

// List returns the listing. Callers must not change it.
func (p *Pane) List() *entry.List { return p.list }

// Session returns the selection session.
func (p *Pane) Session() *selection.Session { return p.session }

// Marks returns the mark store.
func (p *Pane) Marks() *marks.Store { return p.marks }

// Mode returns the name of the current mode.
func (p *Pane) Mode() string { return p.modes.CurrentName() }

// ModeLabel returns the status line label of the current mode.
func (p *Pane) ModeLabel() string {
	if m := p.modes.Current(); m != nil {
		return m.DisplayName()
	}
	return ""
}

// Pending returns the keys typed toward the next command.
func (p *Pane) Pending() string { return p.keys.Pending() }

// Revision counts committed selection changes.
func (p *Pane) Revision() uint64 { return p.rev }

// Message returns the last status message.
func (p *Pane) Message() string { return p.message }

// HandleKey feeds one key press to the pane.
func (p *Pane) HandleKey(ev key.Event) error {
	cmd, status := p.keys.Feed(p.modes.CurrentName(), ev)
	switch status {
	case keymap.Matched:
		return p.Execute(cmd)
	case keymap.Pending:
		p.changed()
	}
	return nil
}

// Execute runs a resolved command. User-level failures, like jumping to an
// unset mark, become the status message; only failures of the pane itself
// are returned.
func (p *Pane) Execute(cmd keymap.Command) error {
	h, ok := p.handlers[cmd.Action]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoHandler, cmd.Action)
	}

	p.message = ""
	p.log.Debug("exec %s count=%d", cmd.Action, cmd.Count)
	err := h(p, cmd)
	if err != nil && !errors.Is(err, ErrQuit) {
		var ue userError
		if errors.As(err, &ue) {
			p.message = ue.Error()
			err = nil
		}
	}
	p.view.follow(p.list.Position(), p.list.Len())
	p.changed()
	return err
}

// Reload re-reads the directory, keeping the selection, the cursor and an
// active visual session attached to the same entries.
func (p *Pane) Reload() error {
	_, entries, err := p.read(p.list.Dir())
	if err != nil {
		return err
	}
	remap := p.list.Replace(entries)
	if p.session.Active() {
		if !p.session.Reload(remap) {
			p.leaveVisual()
		}
	}
	p.log.Debug("reloaded %s: %d entries", p.list.Dir(), p.list.Len())
	p.view.follow(p.list.Position(), p.list.Len())
	p.changed()
	return nil
}

// chdir moves the pane to dir and puts the cursor on focus.
func (p *Pane) chdir(dir, focus string) error {
	abs, entries, err := p.read(dir)
	if err != nil {
		return userError{err}
	}
	p.leaveVisual()
	p.list.Load(abs, entries, focus)
	p.view.top = 0
	p.log.Info("chdir %s", abs)
	for _, fn := range p.onChdir {
		fn(abs)
	}
	return nil
}

func (p *Pane) read(dir string) (string, []entry.Entry, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("pane: %w", err)
	}
	entries, err := entry.Read(abs, p.opts)
	if err != nil {
		return "", nil, fmt.Errorf("pane: read %s: %w", abs, err)
	}
	return abs, entries, nil
}

func (p *Pane) changed() {
	for _, fn := range p.onChange {
		fn()
	}
}

// userError wraps failures that are reported on the status line.
type userError struct{ err error }

func (e userError) Error() string { return e.err.Error() }
func (e userError) Unwrap() error { return e.err }
