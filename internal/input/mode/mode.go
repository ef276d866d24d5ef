package mode

// Mode defines the interface for pane modes.
type Mode interface {
	// Name returns the unique mode identifier (e.g., "normal", "visual").
	Name() string

	// DisplayName returns a human-readable name for the status line.
	DisplayName() string

	// Enter is called when entering this mode.
	// The context provides information about the transition.
	Enter(ctx *Context) error

	// Exit is called when leaving this mode.
	// The context provides information about the transition.
	Exit(ctx *Context) error
}

// Reason tells a mode why it is being entered.
type Reason uint8

const (
	// ReasonDefault is a plain switch.
	ReasonDefault Reason = iota

	// ReasonAmend enters visual mode keeping the existing selection.
	ReasonAmend

	// ReasonRestore enters visual mode on the previously published range.
	ReasonRestore
)

// String returns the reason name used in logs.
func (r Reason) String() string {
	switch r {
	case ReasonDefault:
		return "default"
	case ReasonAmend:
		return "amend"
	case ReasonRestore:
		return "restore"
	default:
		return "unknown"
	}
}

// Context provides information during mode transitions.
type Context struct {
	// PreviousMode is the mode being transitioned from (for Enter).
	PreviousMode string

	// NextMode is the mode being transitioned to (for Exit).
	NextMode string

	// Reason selects the entry variant.
	Reason Reason

	// Count is the numeric prefix of the command that caused the switch.
	Count int
}

// NewContext creates a new mode context.
func NewContext() *Context {
	return &Context{}
}

// WithReason returns a copy of the context with the given reason.
func (c *Context) WithReason(r Reason) *Context {
	copy := *c
	copy.Reason = r
	return &copy
}

// WithCount returns a copy of the context with the given count.
func (c *Context) WithCount(count int) *Context {
	copy := *c
	copy.Count = count
	return &copy
}

// Standard mode names.
const (
	ModeNormal = "normal"
	ModeVisual = "visual"
)
