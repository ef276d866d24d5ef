package selection

// AmendMode decides how the interval under the cursor combines with the
// selection that existed before the interval was drawn.
type AmendMode uint8

const (
	// Replace selects exactly the interval and ignores the baseline.
	Replace AmendMode = iota
	// Append adds the interval to the baseline.
	Append
	// Remove subtracts the interval from the baseline.
	Remove
	// Invert flips the baseline inside the interval.
	Invert

	amendModeCount
)

// rule is the per-mode behaviour of a single entry.
// combine gives the flag of an entry inside the interval, revert the flag
// of an entry that has just left it. Both receive the baseline flag.
type rule struct {
	name    string
	combine func(base bool) bool
	revert  func(base bool) bool
}

var rules = [amendModeCount]rule{
	Replace: {
		name:    "replace",
		combine: func(bool) bool { return true },
		revert:  func(bool) bool { return false },
	},
	Append: {
		name:    "append",
		combine: func(bool) bool { return true },
		revert:  func(base bool) bool { return base },
	},
	Remove: {
		name:    "remove",
		combine: func(bool) bool { return false },
		revert:  func(base bool) bool { return base },
	},
	Invert: {
		name:    "invert",
		combine: func(base bool) bool { return !base },
		revert:  func(base bool) bool { return base },
	},
}

// Valid reports whether m is one of the four known modes.
func (m AmendMode) Valid() bool {
	return m < amendModeCount
}

// Combine returns the flag of an entry inside the interval.
func (m AmendMode) Combine(base bool) bool {
	return m.rule().combine(base)
}

// Revert returns the flag of an entry outside the interval.
func (m AmendMode) Revert(base bool) bool {
	return m.rule().revert(base)
}

// Amending reports whether the mode honours a pre-existing selection.
func (m AmendMode) Amending() bool {
	return m != Replace
}

// Next returns the following amend mode in the Append, Remove, Invert
// cycle. Replace is not part of the cycle and is returned unchanged.
func (m AmendMode) Next() AmendMode {
	if m == Replace || !m.Valid() {
		return m
	}
	return 1 + m%(amendModeCount-1)
}

// String returns the lower-case mode name.
func (m AmendMode) String() string {
	if !m.Valid() {
		return "unknown"
	}
	return rules[m].name
}

// Describe returns the status line label for a visual session in mode m.
func (m AmendMode) Describe() string {
	if m == Replace || !m.Valid() {
		return "VISUAL"
	}
	return "VISUAL (" + rules[m].name + ")"
}

// ParseAmendMode parses the lower-case name produced by String.
func ParseAmendMode(s string) (AmendMode, bool) {
	for i, r := range rules {
		if r.name == s {
			return AmendMode(i), true
		}
	}
	return Replace, false
}

func (m AmendMode) rule() rule {
	if !m.Valid() {
		return rules[Replace]
	}
	return rules[m]
}
