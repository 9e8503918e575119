package device

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/g3d/geometry"
	"github.com/gogpu/g3d/primitive"
	"github.com/gogpu/g3d/shader"
	"github.com/gogpu/g3d/state"
)

// Context is a graphics context: the target of state changes, program
// compilation and draw calls.
//
// A Context is used by one goroutine at a time. It owns exactly one
// state.Tracker describing what is currently applied to it; renderers
// sharing the context share the tracker.
type Context interface {
	state.Applier
	primitive.Drawer
	shader.Compiler

	// Name returns the backend name.
	Name() string

	// Validate reports whether the context is bound and usable. It returns
	// an error wrapping ErrNoContext or ErrContextLost otherwise.
	Validate() error

	// Err returns the first fatal error observed since the last successful
	// Validate, or nil.
	Err() error

	// Tracker returns the applied-state snapshot of this context.
	Tracker() *state.Tracker

	// Target describes the framebuffer drawn into.
	Target() Target

	// BeginPass starts a render pass. Passes do not nest.
	BeginPass(desc PassDescriptor) error

	// EndPass finishes the current pass and submits its work.
	EndPass() error

	// BindGeometry makes the vertex arrays of g current, uploading those whose
	// buffer version changed.
	BindGeometry(g *geometry.Geometry) error

	// SetMatrices sets the transform of the next draws.
	SetMatrices(world, view, proj mgl32.Mat4)

	// SetUniforms sets additional uniform values of the next draws.
	// A nil Uniforms is a no-op.
	SetUniforms(u *shader.Uniforms)
}

// Closer is implemented by contexts holding releasable GPU objects.
type Closer interface {
	Close() error
}
