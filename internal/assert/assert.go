//go:build !g3ddebug

// Package assert provides the debug-only assertion trap used for
// programming errors (out-of-range indices, short output buffers).
//
// Release builds compile the checks away; build with -tags g3ddebug to make
// a failed assertion panic.
package assert

// Enabled reports whether assertions panic in this build.
const Enabled = false

// That is a no-op in release builds.
func That(bool, string) {}
