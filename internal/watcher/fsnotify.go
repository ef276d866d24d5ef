package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/fpane/internal/logging"
)

// DirWatcher follows one directory at a time using fsnotify.
type DirWatcher struct {
	mu sync.RWMutex

	watcher *fsnotify.Watcher
	config  Config
	log     *logging.Logger

	// dir is the directory being watched, "" when none.
	dir string

	deb    *debouncer
	errors chan error

	totalEvents int64

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// New creates a watcher. It watches nothing until Watch is called.
func New(log *logging.Logger, opts ...Option) (*DirWatcher, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = logging.Null()
	}

	w := &DirWatcher{
		watcher: fsw,
		config:  config,
		log:     log.WithComponent("watcher"),
		deb:     newDebouncer(config.DebounceDelay, changeBuffer),
		errors:  make(chan error, changeBuffer),
		closeCh: make(chan struct{}),
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Watch makes dir the watched directory, replacing the previous one.
func (w *DirWatcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if absPath == w.dir {
		return nil
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrPathNotExist
		}
		return err
	}
	if !info.IsDir() {
		return ErrNotDirectory
	}

	if err := w.watcher.Add(absPath); err != nil {
		return err
	}
	if w.dir != "" {
		if err := w.watcher.Remove(w.dir); err != nil {
			w.log.Debug("unwatch %s: %v", w.dir, err)
		}
	}
	w.deb.drop()
	w.dir = absPath
	w.log.Debug("watching %s", absPath)
	return nil
}

// Dir returns the watched directory.
func (w *DirWatcher) Dir() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.dir
}

// Changes returns the channel of coalesced changes.
// The channel is closed when the watcher is closed.
func (w *DirWatcher) Changes() <-chan Change {
	return w.deb.out
}

// Errors returns the channel of watcher errors.
// The channel is closed when the watcher is closed.
func (w *DirWatcher) Errors() <-chan error {
	return w.errors
}

// TotalEvents returns the number of events accepted since creation.
func (w *DirWatcher) TotalEvents() int64 {
	return atomic.LoadInt64(&w.totalEvents)
}

// Close stops the watcher.
func (w *DirWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	// Wait for processLoop to finish
	w.closedWg.Wait()

	w.deb.close()
	close(w.errors)

	return w.watcher.Close()
}

// processLoop handles incoming fsnotify events.
func (w *DirWatcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(fsEvent)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("fsnotify: %v", err)
			w.sendError(err)
		}
	}
}

// handleFSEvent filters an fsnotify event and feeds it to the debouncer.
func (w *DirWatcher) handleFSEvent(fsEvent fsnotify.Event) {
	op := convertOp(fsEvent.Op)
	if op == 0 {
		return
	}
	if w.config.IgnoreChmod && op == OpChmod {
		return
	}
	if w.shouldIgnore(fsEvent.Name) {
		return
	}

	dir := w.Dir()
	if dir == "" {
		return
	}
	// Children of dir, or dir itself being removed or renamed.
	if filepath.Dir(fsEvent.Name) != dir && fsEvent.Name != dir {
		return
	}

	atomic.AddInt64(&w.totalEvents, 1)
	w.deb.add(dir, Event{
		Path:      fsEvent.Name,
		Op:        op,
		Timestamp: time.Now(),
	})
}

// convertOp converts fsnotify.Op to watcher.Op.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	if fsOp.Has(fsnotify.Chmod) {
		op |= OpChmod
	}
	return op
}

// shouldIgnore checks if a path should be ignored.
func (w *DirWatcher) shouldIgnore(path string) bool {
	if !w.config.IgnoreHidden {
		return false
	}
	base := filepath.Base(path)
	return len(base) > 0 && base[0] == '.'
}

// sendError sends an error to the output channel.
func (w *DirWatcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
		// Channel full, drop error
	}
}
