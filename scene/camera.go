package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/g3d/bounds"
	"github.com/gogpu/g3d/device"
)

// Camera is the eye a rendering sees the scene through: view and projection
// matrices, the viewport drawn into and how it is cleared.
//
// The host updates the camera once per frame before rendering, from input
// handling or animation code.
type Camera struct {
	view mgl32.Mat4
	proj mgl32.Mat4

	viewport   device.Viewport
	clearColor gputypes.Color
	clearFlags device.ClearFlags

	perspective bool
	fovy        float32
	near, far   float32
}

// NewCamera returns a camera at the origin looking down -Z with a 60 degree
// perspective projection, clearing every buffer to black.
func NewCamera() *Camera {
	c := &Camera{
		view:       mgl32.Ident4(),
		clearColor: gputypes.Color{A: 1},
		clearFlags: device.ClearAll,
	}
	c.SetPerspective(60, 1, 0.1, 1000)
	return c
}

// SetPerspective sets a perspective projection. fovy is in degrees.
func (c *Camera) SetPerspective(fovy, aspect, near, far float32) {
	c.proj = mgl32.Perspective(mgl32.DegToRad(fovy), aspect, near, far)
	c.perspective = true
	c.fovy = fovy
	c.near, c.far = near, far
}

// SetOrtho sets an orthographic projection.
func (c *Camera) SetOrtho(left, right, bottom, top, near, far float32) {
	c.proj = mgl32.Ortho(left, right, bottom, top, near, far)
	c.perspective = false
	c.near, c.far = near, far
}

// SetProjection sets an arbitrary projection matrix.
func (c *Camera) SetProjection(m mgl32.Mat4) {
	c.proj = m
	c.perspective = false
}

// Projection returns the projection matrix.
func (c *Camera) Projection() mgl32.Mat4 { return c.proj }

// LookAt places the camera at eye looking at center.
func (c *Camera) LookAt(eye, center, up mgl32.Vec3) {
	c.view = mgl32.LookAtV(eye, center, up)
}

// SetView sets the view matrix.
func (c *Camera) SetView(m mgl32.Mat4) { c.view = m }

// View returns the view matrix.
func (c *Camera) View() mgl32.Mat4 { return c.view }

// Position returns the eye position in world space.
func (c *Camera) Position() mgl32.Vec3 {
	return c.view.Inv().Col(3).Vec3()
}

// ViewProjection returns projection times view.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.proj.Mul4(c.view)
}

// Frustum returns the view frustum in world space.
func (c *Camera) Frustum() *bounds.Frustum {
	return bounds.NewFrustum(c.ViewProjection())
}

// Depth returns the camera-space depth of a world point, positive in front
// of the camera.
func (c *Camera) Depth(p mgl32.Vec3) float32 {
	v := c.view.Mul4x1(p.Vec4(1))
	return -v[2]
}

// Near returns the near plane distance.
func (c *Camera) Near() float32 { return c.near }

// Far returns the far plane distance.
func (c *Camera) Far() float32 { return c.far }

// SetViewport sets the drawn rectangle. An empty viewport covers the whole
// target.
func (c *Camera) SetViewport(v device.Viewport) { c.viewport = v }

// Viewport returns the drawn rectangle.
func (c *Camera) Viewport() device.Viewport { return c.viewport }

// Resize sets the viewport to width by height and, for a perspective
// camera, adapts the aspect ratio.
func (c *Camera) Resize(width, height int) {
	c.viewport = device.Viewport{Width: width, Height: height}
	if c.perspective {
		c.SetPerspective(c.fovy, c.viewport.Aspect(), c.near, c.far)
	}
}

// SetClearColor sets the color the color buffer is cleared to.
func (c *Camera) SetClearColor(col gputypes.Color) { c.clearColor = col }

// ClearColor returns the clear color.
func (c *Camera) ClearColor() gputypes.Color { return c.clearColor }

// SetClearFlags selects the buffers cleared at the start of a pass.
func (c *Camera) SetClearFlags(f device.ClearFlags) { c.clearFlags = f }

// ClearFlags returns the buffers cleared at the start of a pass.
func (c *Camera) ClearFlags() device.ClearFlags { return c.clearFlags }

// PassDescriptor returns the descriptor of a pass drawing through the
// camera.
func (c *Camera) PassDescriptor(label string) device.PassDescriptor {
	return device.PassDescriptor{
		Label:      label,
		Viewport:   c.viewport,
		Clear:      c.clearFlags,
		ClearColor: c.clearColor,
		ClearDepth: 1,
	}
}
