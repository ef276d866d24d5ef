// Package app wires a pane, the terminal and the directory watcher into the
// fpane program and runs its event loop.
package app

import (
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/fpane/internal/config"
	"github.com/dshills/fpane/internal/input/keymap"
	"github.com/dshills/fpane/internal/logging"
	"github.com/dshills/fpane/internal/marks"
	"github.com/dshills/fpane/internal/pane"
	"github.com/dshills/fpane/internal/ui"
	"github.com/dshills/fpane/internal/watcher"
)

// Options configures the application.
type Options struct {
	// Dir is the directory opened on startup. Empty means the working
	// directory.
	Dir string

	// Config is the loaded configuration. Nil means config.Default().
	Config *config.Config

	// Logger receives application logs. Nil discards them.
	Logger *logging.Logger

	// Screen replaces the controlling terminal, e.g. with a simulation
	// screen in tests.
	Screen tcell.Screen

	// Clipboard replaces the system clipboard.
	Clipboard func(string) error
}

// Application is the running program.
type Application struct {
	cfg     *config.Config
	log     *logging.Logger
	term    *ui.Terminal
	view    *ui.View
	pane    *pane.Pane
	marks   *marks.Store
	watcher *watcher.DirWatcher

	running atomic.Bool
	wg      sync.WaitGroup
}

// New creates the application. Nothing touches the terminal until Run.
func New(opts Options) (*Application, error) {
	app := &Application{
		cfg: opts.Config,
		log: opts.Logger,
	}
	if app.cfg == nil {
		app.cfg = config.Default()
	}
	if app.log == nil {
		app.log = logging.Null()
	}

	if err := app.bootstrap(opts); err != nil {
		app.closeWatcher()
		return nil, err
	}
	return app, nil
}

func (app *Application) bootstrap(opts Options) error {
	var err error

	// 1. Marks
	if app.cfg.Marks.Persist {
		dir := filepath.Join(app.cfg.Marks.StateDir, "marks")
		if app.marks, err = marks.Open(dir, marks.WithLogger(app.log)); err != nil {
			return NewOperationError("open", dir, err).WithContext("marks")
		}
	} else {
		app.marks = marks.NewStore(marks.WithLogger(app.log))
	}

	// 2. Keymaps, user overrides after the defaults
	registry := keymap.NewRegistry()
	if err := keymap.LoadDefaults(registry); err != nil {
		return NewOperationError("load", "default keymaps", err)
	}
	user, err := app.cfg.Keymaps()
	if err != nil {
		return err
	}
	for _, km := range user {
		if err := registry.Register(km); err != nil {
			return NewOperationError("load", km.Name, err)
		}
	}

	// 3. Pane
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	paneOpts := []pane.Option{
		pane.WithLogger(app.log),
		pane.WithMarks(app.marks),
		pane.WithKeymaps(registry),
		pane.WithListing(app.cfg.Listing()),
		pane.WithScrollOff(app.cfg.Browser.ScrollOff),
	}
	if opts.Clipboard != nil {
		paneOpts = append(paneOpts, pane.WithClipboard(opts.Clipboard))
	}
	if app.pane, err = pane.New(dir, paneOpts...); err != nil {
		return NewOperationError("open", dir, err)
	}

	// 4. Watcher
	if app.cfg.Watch.Enabled {
		app.watcher, err = watcher.New(app.log,
			watcher.WithDebounceDelay(app.cfg.Watch.Debounce),
			watcher.WithIgnoreHidden(!app.cfg.Browser.ShowHidden),
		)
		if err != nil {
			return NewOperationError("start", "watcher", err)
		}
		app.pane.OnChdir(app.watch)
	}

	// 5. Terminal
	if opts.Screen != nil {
		app.term = ui.NewTerminalWithScreen(opts.Screen)
	} else if app.term, err = ui.NewTerminal(); err != nil {
		return NewOperationError("open", "terminal", err)
	}
	app.view = ui.NewView(ui.DefaultStyles())
	return nil
}

// Pane returns the pane shown by the application.
func (app *Application) Pane() *pane.Pane { return app.pane }

// Run takes over the terminal and processes events until the user quits
// or Shutdown is called.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.term.Init(); err != nil {
		return NewOperationError("init", "terminal", err)
	}
	defer app.term.Shutdown()
	defer app.closeWatcher()

	if app.watcher != nil {
		app.forwardChanges()
		app.watch(app.pane.Dir())
	}

	_, h := app.term.Size()
	app.pane.SetHeight(h - 1)
	app.log.Info("started in %s", app.pane.Dir())

	return app.eventLoop()
}

// Shutdown asks a running event loop to stop. It is safe to call from
// any goroutine.
func (app *Application) Shutdown() error {
	if !app.running.Load() {
		return ErrNotRunning
	}
	app.term.PostQuit()
	return nil
}

func (app *Application) eventLoop() error {
	for {
		app.draw()
		if app.handle(app.term.PollEvent()) {
			return nil
		}
	}
}

// handle processes one event and reports whether the loop should stop.
func (app *Application) handle(ev ui.Event) bool {
	switch ev.Type {
	case ui.EventQuit:
		return true
	case ui.EventResize:
		app.pane.SetHeight(ev.Height - 1)
	case ui.EventReload:
		app.reload(ev.Dir)
	case ui.EventKey:
		if err := app.pane.HandleKey(ev.Key); err != nil {
			if errors.Is(err, pane.ErrQuit) {
				app.log.Info("quit")
				return true
			}
			app.log.Error("key %s: %v", ev.Key, err)
		}
	}
	return false
}

func (app *Application) draw() {
	app.view.Draw(app.term.Screen(), app.pane)
	app.term.Show()
}

// reload re-reads the pane's directory. Changes for a directory the pane
// has since left are stale.
func (app *Application) reload(dir string) {
	if dir != app.pane.Dir() {
		app.log.Debug("stale change for %s", dir)
		return
	}
	if err := app.pane.Reload(); err != nil {
		app.log.Warn("reload %s: %v", dir, err)
	}
}

func (app *Application) watch(dir string) {
	if err := app.watcher.Watch(dir); err != nil {
		app.log.Warn("watch %s: %v", dir, err)
	}
}

// forwardChanges turns watcher output into terminal events so that the
// pane is only touched from the event loop.
func (app *Application) forwardChanges() {
	app.wg.Add(2)
	go func() {
		defer app.wg.Done()
		for change := range app.watcher.Changes() {
			app.log.Debug("change in %s: %s (%d events)", change.Dir, change.Op, change.Events)
			app.term.PostReload(change.Dir)
		}
	}()
	go func() {
		defer app.wg.Done()
		for err := range app.watcher.Errors() {
			app.log.Warn("watcher: %v", err)
		}
	}()
}

func (app *Application) closeWatcher() {
	if app.watcher == nil {
		return
	}
	if err := app.watcher.Close(); err != nil {
		app.log.Warn("close watcher: %v", err)
	}
	app.wg.Wait()
	app.log.Debug("watcher closed after %d events", app.watcher.TotalEvents())
}
