package keymap

import (
	"fmt"
	"sync"

	"github.com/dshills/fpane/internal/input/key"
)

// Match describes how a key sequence relates to the bindings of a mode.
type Match uint8

const (
	// NoMatch means no binding starts with the sequence.
	NoMatch Match = iota

	// PrefixMatch means the sequence is a proper prefix of a binding.
	PrefixMatch

	// ExactMatch means the sequence names a binding.
	ExactMatch
)

// Registry manages all keymaps and provides binding lookup.
type Registry struct {
	mu sync.RWMutex

	// keymaps holds registered keymaps in registration order.
	keymaps []*Keymap

	// trees indexes the bindings of each mode.
	trees map[string]*prefixNode
}

// NewRegistry creates a new keymap registry.
func NewRegistry() *Registry {
	return &Registry{
		trees: make(map[string]*prefixNode),
	}
}

// Register adds a keymap to the registry.
// If a keymap with the same name already exists, it is replaced.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return fmt.Errorf("cannot register nil keymap")
	}
	if err := km.Validate(); err != nil {
		return fmt.Errorf("keymap %q: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.keymaps[:0]
	for _, existing := range r.keymaps {
		if existing.Name != km.Name {
			kept = append(kept, existing)
		}
	}
	r.keymaps = append(kept, km.Clone())
	r.rebuildLocked(km.Mode)
	return nil
}

// Unregister removes a keymap from the registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, km := range r.keymaps {
		if km.Name == name {
			r.keymaps = append(r.keymaps[:i], r.keymaps[i+1:]...)
			r.rebuildLocked(km.Mode)
			return
		}
	}
}

// Get returns a keymap by name.
func (r *Registry) Get(name string) *Keymap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, km := range r.keymaps {
		if km.Name == name {
			return km
		}
	}
	return nil
}

// Lookup finds the binding for seq in mode. The binding is only non-nil
// for an ExactMatch.
func (r *Registry) Lookup(mode string, seq []key.Event) (*Binding, Match) {
	if len(seq) == 0 {
		return nil, NoMatch
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	node := r.trees[mode]
	for _, ev := range seq {
		if node == nil {
			return nil, NoMatch
		}
		node = node.children[ev]
	}
	switch {
	case node == nil:
		return nil, NoMatch
	case node.binding != nil:
		b := *node.binding
		return &b, ExactMatch
	case len(node.children) > 0:
		return nil, PrefixMatch
	default:
		return nil, NoMatch
	}
}

// Bindings returns the effective bindings of mode, one per key sequence.
func (r *Registry) Bindings(mode string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Binding
	var walk func(n *prefixNode)
	walk = func(n *prefixNode) {
		if n.binding != nil {
			out = append(out, *n.binding)
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	if root := r.trees[mode]; root != nil {
		walk(root)
	}
	return out
}

// rebuildLocked re-indexes mode from every keymap registered for it.
// Caller must hold the write lock.
func (r *Registry) rebuildLocked(mode string) {
	root := newPrefixNode()
	for _, km := range r.keymaps {
		if km.Mode != mode {
			continue
		}
		for i := range km.Bindings {
			b := km.Bindings[i]
			// Validate already parsed every sequence.
			seq, _ := key.ParseSequence(b.Keys)
			if b.Unbound() {
				root.remove(seq)
				continue
			}
			root.insert(seq, &b)
		}
	}
	r.trees[mode] = root
}

// prefixNode is a node of the per-mode binding tree.
type prefixNode struct {
	children map[key.Event]*prefixNode
	binding  *Binding
}

func newPrefixNode() *prefixNode {
	return &prefixNode{children: make(map[key.Event]*prefixNode)}
}

func (n *prefixNode) insert(seq []key.Event, b *Binding) {
	node := n
	for _, ev := range seq {
		child, ok := node.children[ev]
		if !ok {
			child = newPrefixNode()
			node.children[ev] = child
		}
		node = child
	}
	node.binding = b
}

func (n *prefixNode) remove(seq []key.Event) {
	node := n
	for _, ev := range seq {
		node = node.children[ev]
		if node == nil {
			return
		}
	}
	node.binding = nil
}
