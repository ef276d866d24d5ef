package keymap

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the key sequence that triggers this binding.
	// Formats: "j", "gg", "<C-g>", "<CR>", "'"
	Keys string

	// Action is the command to execute.
	// Examples: "cursor.down", "visual.swap", "mark.jump"
	Action string

	// TakesArg makes the binding consume one more character key, which is
	// passed to the action as its argument (the mark name after m).
	TakesArg bool

	// Description provides documentation for the binding.
	Description string

	// Category groups bindings for display purposes.
	Category string
}

// NewBinding creates a new binding with the given keys and action.
func NewBinding(keys, action string) Binding {
	return Binding{
		Keys:   keys,
		Action: action,
	}
}

// WithArg marks the binding as taking a character argument.
func (b Binding) WithArg() Binding {
	b.TakesArg = true
	return b
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// WithCategory sets the category for this binding.
func (b Binding) WithCategory(category string) Binding {
	b.Category = category
	return b
}

// Unbound reports whether the binding removes a mapping instead of adding
// one.
func (b Binding) Unbound() bool {
	return b.Action == ActionNop
}
