package device

import (
	"errors"
	"fmt"
)

var (
	// ErrContextLost reports a graphics context that stopped working, for
	// example after a GPU reset. It is fatal for the current pass.
	ErrContextLost = errors.New("device: graphics context lost")

	// ErrNoContext reports a graphics context that was never bound or was
	// closed. It is fatal for the current pass.
	ErrNoContext = errors.New("device: no graphics context bound")

	// ErrUnknownBackend is returned by Open for an unregistered name.
	ErrUnknownBackend = errors.New("device: unknown backend")

	// ErrInvalidGeometry classifies a draw entry whose geometry cannot be
	// drawn. The entry is skipped.
	ErrInvalidGeometry = errors.New("device: invalid geometry")

	// ErrProgramNotReady classifies a draw entry whose program is missing
	// or failed to link. The entry is skipped.
	ErrProgramNotReady = errors.New("device: program not ready")

	// ErrNoPass is returned by draw calls issued outside a render pass.
	ErrNoPass = errors.New("device: no render pass in progress")
)

// IsFatal reports whether err aborts a rendering pass.
func IsFatal(err error) bool {
	return errors.Is(err, ErrContextLost) || errors.Is(err, ErrNoContext)
}

// ResourceError is a recoverable per-entry failure: the entry is skipped and
// rendering continues.
type ResourceError struct {
	// Kind is ErrInvalidGeometry or ErrProgramNotReady.
	Kind error

	// Actor names the skipped entry.
	Actor string

	// Err is the underlying cause.
	Err error
}

// Error implements error.
func (e *ResourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: actor %q", e.Kind, e.Actor)
	}
	return fmt.Sprintf("%v: actor %q: %v", e.Kind, e.Actor, e.Err)
}

// Unwrap returns the kind and the cause so errors.Is matches both.
func (e *ResourceError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
