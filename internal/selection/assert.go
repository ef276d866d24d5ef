//go:build !fpane_debug

package selection

// debugAssertions is false in release builds: violated invariants are
// clamped and logged instead of panicking.
const debugAssertions = false
