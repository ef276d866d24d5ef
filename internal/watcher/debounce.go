package watcher

import (
	"sync"
	"time"
)

// debouncer merges events into one Change per quiet period.
type debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	pending *Change
	timer   *time.Timer
	out     chan Change
	closed  bool
}

func newDebouncer(delay time.Duration, buffer int) *debouncer {
	if delay <= 0 {
		delay = DefaultConfig().DebounceDelay
	}
	if buffer <= 0 {
		buffer = 1
	}
	return &debouncer{
		delay: delay,
		out:   make(chan Change, buffer),
	}
}

// add records ev as happening in dir and restarts the quiet period. A
// pending change of another directory is stale and dropped.
func (d *debouncer) add(dir string, ev Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	if d.pending != nil && d.pending.Dir == dir {
		d.pending.Op |= ev.Op
		d.pending.Events++
		d.pending.Last = ev.Timestamp
		d.timer.Reset(d.delay)
		return
	}

	d.pending = &Change{
		Dir:    dir,
		Op:     ev.Op,
		Events: 1,
		First:  ev.Timestamp,
		Last:   ev.Timestamp,
	}
	if d.timer == nil {
		d.timer = time.AfterFunc(d.delay, d.fire)
	} else {
		d.timer.Reset(d.delay)
	}
}

// fire delivers the pending change.
func (d *debouncer) fire() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || d.pending == nil {
		return
	}
	c := *d.pending
	d.pending = nil

	select {
	case d.out <- c:
	default:
		// A change is already queued; the reader reloads anyway.
	}
}

// drop forgets the pending change.
func (d *debouncer) drop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = nil
}

func (d *debouncer) close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = nil
	close(d.out)
}
