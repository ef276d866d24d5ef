package keymap

import (
	"strconv"

	"github.com/dshills/fpane/internal/input/key"
)

// Status is the outcome of feeding one key to a Resolver.
type Status uint8

const (
	// Pending means more keys are needed.
	Pending Status = iota

	// Matched means a command is ready.
	Matched

	// Unmatched means the keys fed so far name nothing and were dropped.
	Unmatched
)

// Command is a resolved binding with its count and argument.
type Command struct {
	Action string

	// Count is the count prefix, 1 when none was typed.
	Count int

	// HasCount reports whether a count was typed.
	HasCount bool

	// Arg is the character argument of bindings that take one.
	Arg rune

	// Keys is the typed sequence, count included.
	Keys string
}

// CountOr returns the typed count, or def when none was typed.
func (c Command) CountOr(def int) int {
	if c.HasCount {
		return c.Count
	}
	return def
}

// Resolver turns key events into commands for one pane.
// It is not safe for concurrent use.
type Resolver struct {
	registry *Registry
	count    CountState
	pending  []key.Event

	// await is the binding waiting for its argument.
	await *Binding
}

// NewResolver creates a resolver over r.
func NewResolver(r *Registry) *Resolver {
	return &Resolver{registry: r}
}

// Feed consumes one event under the bindings of mode.
func (r *Resolver) Feed(mode string, ev key.Event) (Command, Status) {
	ev = ev.Normalize()

	if r.await != nil {
		b := r.await
		if !ev.IsRune() {
			r.Reset()
			return Command{}, Unmatched
		}
		cmd := r.command(b)
		cmd.Arg = ev.Rune
		cmd.Keys += ev.String()
		r.Reset()
		return cmd, Matched
	}

	if len(r.pending) == 0 && ev.IsRune() && r.count.AccumulateDigit(ev.Rune) {
		return Command{}, Pending
	}

	r.pending = append(r.pending, ev)
	b, match := r.registry.Lookup(mode, r.pending)
	switch match {
	case PrefixMatch:
		return Command{}, Pending
	case ExactMatch:
		if b.TakesArg {
			r.await = b
			return Command{}, Pending
		}
		cmd := r.command(b)
		r.Reset()
		return cmd, Matched
	default:
		r.Reset()
		return Command{}, Unmatched
	}
}

// Pending returns the keys typed toward the next command, for display.
func (r *Resolver) Pending() string {
	var s string
	if r.count.Active {
		s = strconv.Itoa(r.count.Value)
	}
	return s + key.FormatSequence(r.pending)
}

// Reset drops any partial command.
func (r *Resolver) Reset() {
	r.count.Reset()
	r.pending = r.pending[:0]
	r.await = nil
}

func (r *Resolver) command(b *Binding) Command {
	return Command{
		Action:   b.Action,
		Count:    r.count.Get(),
		HasCount: r.count.Active,
		Keys:     r.Pending(),
	}
}
