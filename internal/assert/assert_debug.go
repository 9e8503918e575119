//go:build g3ddebug

package assert

// Enabled reports whether assertions panic in this build.
const Enabled = true

// That panics with msg when cond is false.
func That(cond bool, msg string) {
	if !cond {
		panic("g3d: assertion failed: " + msg)
	}
}
