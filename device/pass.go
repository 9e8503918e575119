package device

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Provider gives a backend access to a GPU device owned by the host.
// Backends receive the device, they never create one.
type Provider = gpucontext.DeviceProvider

// Viewport is a rectangle of the framebuffer in pixels, origin bottom-left.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the viewport covers no pixel.
func (v Viewport) Empty() bool { return v.Width <= 0 || v.Height <= 0 }

// Aspect returns width divided by height, or 1 for an empty viewport.
func (v Viewport) Aspect() float32 {
	if v.Empty() {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// ClearFlags selects the buffers cleared at the start of a pass.
type ClearFlags uint8

const (
	ClearColor ClearFlags = 1 << iota
	ClearDepth
	ClearStencil

	// ClearAll clears every buffer.
	ClearAll = ClearColor | ClearDepth | ClearStencil
)

// Has reports whether every flag in f is set.
func (c ClearFlags) Has(f ClearFlags) bool { return c&f == f }

// PassDescriptor describes one render pass.
type PassDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Viewport is the drawn rectangle. An empty viewport covers the whole
	// target.
	Viewport Viewport

	// Clear selects the buffers cleared before drawing.
	Clear ClearFlags

	// ClearColor is the color the color buffer is cleared to.
	ClearColor gputypes.Color

	// ClearDepth is the depth the depth buffer is cleared to, usually 1.
	ClearDepth float32

	// ClearStencil is the stencil value the stencil buffer is cleared to.
	ClearStencil uint32
}

// Target describes the framebuffer of a context.
type Target struct {
	Width, Height int

	// ColorFormat is the color attachment format.
	ColorFormat gputypes.TextureFormat

	// DepthFormat is the depth attachment format, TextureFormatUndefined
	// for none.
	DepthFormat gputypes.TextureFormat

	// SampleCount is the number of samples per pixel, 1 without MSAA.
	SampleCount uint32
}

// Viewport returns the viewport covering the whole target.
func (t Target) Viewport() Viewport {
	return Viewport{Width: t.Width, Height: t.Height}
}

// DefaultTarget returns an RGBA8 target with a depth-stencil attachment.
func DefaultTarget(width, height int) Target {
	return Target{
		Width:       width,
		Height:      height,
		ColorFormat: gputypes.TextureFormatRGBA8Unorm,
		DepthFormat: gputypes.TextureFormatDepth24PlusStencil8,
		SampleCount: 1,
	}
}

// Config is passed to backend factories.
type Config struct {
	// Width and Height are the framebuffer size in pixels.
	Width, Height int

	// Target overrides the framebuffer description. When zero, it is
	// derived from Width and Height with DefaultTarget.
	Target Target

	// Provider supplies the GPU device to backends that need one.
	Provider Provider

	// Label is an optional debug label.
	Label string
}

// ResolvedTarget returns Target, or DefaultTarget(Width, Height) when
// Target is zero.
func (c Config) ResolvedTarget() Target {
	if c.Target == (Target{}) {
		return DefaultTarget(c.Width, c.Height)
	}
	return c.Target
}
