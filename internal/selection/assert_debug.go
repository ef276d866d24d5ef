//go:build fpane_debug

package selection

// debugAssertions is true when built with -tags fpane_debug: violated
// invariants panic and every operation re-verifies the selected count.
const debugAssertions = true
