//go:build !nogl

package opengl

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/g3d"
	"github.com/gogpu/g3d/device"
	"github.com/gogpu/g3d/geometry"
	"github.com/gogpu/g3d/primitive"
	"github.com/gogpu/g3d/shader"
	"github.com/gogpu/g3d/state"
)

var (
	initOnce sync.Once
	initErr  error
)

// Init loads the OpenGL function pointers. It needs a current context and
// runs once per process; NewContext calls it.
func Init() error {
	initOnce.Do(func() {
		if err := gl.Init(); err != nil {
			initErr = fmt.Errorf("opengl: init: %w", err)
		}
	})
	return initErr
}

// Context is a device.Context issuing OpenGL calls on the current
// context. It is not safe for concurrent use.
type Context struct {
	label   string
	target  device.Target
	tracker *state.Tracker
	log     *slog.Logger

	vao      uint32
	flatEBO  uint32
	buffers  *buffers
	programs []*program

	prog   *program
	world  mgl32.Mat4
	view   mgl32.Mat4
	proj   mgl32.Mat4
	clip   [state.MaxClipPlanes]mgl32.Vec4
	geom   *geometry.Geometry
	flat   []uint32
	packed []byte

	// Applied values GL clears honor, restored after clearing.
	depthWrite  bool
	colorMask   state.ColorMask
	stencilMask uint32

	cullMode    state.CullFace
	cullEnabled bool
	restart     bool
	restartIdx  uint32

	inPass bool
	closed bool
	lost   bool
	err    error
}

var (
	_ device.Context        = (*Context)(nil)
	_ device.Closer         = (*Context)(nil)
	_ primitive.RangeDrawer = (*Context)(nil)
)

// NewContext creates a context on the OpenGL context current on the
// calling thread.
func NewContext(cfg device.Config) (*Context, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	c := &Context{
		label:       cfg.Label,
		target:      cfg.ResolvedTarget(),
		tracker:     state.NewTracker(),
		log:         g3d.Logger(),
		buffers:     newBuffers(),
		world:       mgl32.Ident4(),
		view:        mgl32.Ident4(),
		proj:        mgl32.Ident4(),
		depthWrite:  true,
		colorMask:   state.ColorMask{R: true, G: true, B: true, A: true},
		stencilMask: ^uint32(0),
		cullMode:    state.Default(state.KindCullFace).(state.CullFace),
	}
	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	gl.GenBuffers(1, &c.flatEBO)

	c.log.Info("opengl: context created",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"width", c.target.Width,
		"height", c.target.Height)
	return c, nil
}

// Name implements device.Context.
func (c *Context) Name() string { return "opengl" }

// Target implements device.Context.
func (c *Context) Target() device.Target { return c.target }

// Tracker implements device.Context.
func (c *Context) Tracker() *state.Tracker { return c.tracker }

// Uploads returns the number of buffer uploads so far.
func (c *Context) Uploads() int { return c.buffers.uploads }

// Resize changes the target size after the host resized the window.
func (c *Context) Resize(width, height int) {
	c.target.Width, c.target.Height = width, height
}

// Validate implements device.Context.
func (c *Context) Validate() error {
	switch {
	case c.closed:
		return fmt.Errorf("opengl: %w", device.ErrNoContext)
	case c.lost:
		return fmt.Errorf("opengl: %w", device.ErrContextLost)
	}
	c.err = nil
	return nil
}

// Err implements device.Context.
func (c *Context) Err() error { return c.err }

func (c *Context) usable() bool { return !c.closed && !c.lost }

// check drains the GL error queue. Context loss and out-of-memory are
// fatal; other errors are returned as plain errors.
func (c *Context) check(op string) error {
	var first uint32
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		if fatalError(code) {
			c.lost = true
			c.inPass = false
			if c.err == nil {
				c.err = fmt.Errorf("opengl: %s: %w (0x%04X)", op, device.ErrContextLost, code)
			}
			c.log.Error("opengl: context lost", "op", op, "code", code)
			return c.err
		}
		if first == 0 {
			first = code
		}
	}
	if first != 0 {
		return fmt.Errorf("opengl: %s: error 0x%04X", op, first)
	}
	return nil
}

// Close implements device.Closer.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.buffers.destroy()
	for _, p := range c.programs {
		p.delete()
	}
	c.programs = nil
	gl.DeleteBuffers(1, &c.flatEBO)
	gl.DeleteVertexArrays(1, &c.vao)
	c.closed = true
	c.inPass = false
	return nil
}

// BeginPass implements device.Context.
func (c *Context) BeginPass(desc device.PassDescriptor) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.inPass {
		return errPassInProgress
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindVertexArray(c.vao)
	vp := desc.Viewport
	if vp.Empty() {
		vp = c.target.Viewport()
	}
	gl.Viewport(int32(vp.X), int32(vp.Y), int32(vp.Width), int32(vp.Height))

	var mask uint32
	if desc.Clear.Has(device.ClearColor) {
		cc := desc.ClearColor
		gl.ClearColor(float32(cc.R), float32(cc.G), float32(cc.B), float32(cc.A))
		gl.ColorMask(true, true, true, true)
		mask |= gl.COLOR_BUFFER_BIT
	}
	if desc.Clear.Has(device.ClearDepth) {
		gl.ClearDepth(float64(desc.ClearDepth))
		gl.DepthMask(true)
		mask |= gl.DEPTH_BUFFER_BIT
	}
	if desc.Clear.Has(device.ClearStencil) {
		gl.ClearStencil(int32(desc.ClearStencil))
		gl.StencilMask(^uint32(0))
		mask |= gl.STENCIL_BUFFER_BIT
	}
	if mask != 0 {
		gl.Clear(mask)
		m := c.colorMask
		gl.ColorMask(m.R, m.G, m.B, m.A)
		gl.DepthMask(c.depthWrite)
		gl.StencilMask(c.stencilMask)
	}
	if err := c.check("begin pass"); err != nil && device.IsFatal(err) {
		return err
	}
	c.inPass = true
	return nil
}

// EndPass implements device.Context.
func (c *Context) EndPass() error {
	if c.err != nil {
		c.inPass = false
		return c.err
	}
	if !c.inPass {
		return device.ErrNoPass
	}
	c.inPass = false
	gl.Flush()
	return c.check("end pass")
}

// ApplyState implements state.Applier.
func (c *Context) ApplyState(rs state.RenderState) {
	if !c.usable() || rs == nil || !rs.Kind().Valid() {
		return
	}
	switch s := rs.(type) {
	case state.UseProgram:
		c.useProgram(s.Program)
	case state.DepthFunc:
		gl.DepthFunc(compareFunc(s.Func))
	case state.DepthMask:
		c.depthWrite = s.Write
		gl.DepthMask(s.Write)
	case state.DepthRange:
		gl.DepthRange(float64(s.Near), float64(s.Far))
	case state.BlendFunc:
		gl.BlendFuncSeparate(blendFactor(s.SrcRGB), blendFactor(s.DstRGB), blendFactor(s.SrcAlpha), blendFactor(s.DstAlpha))
	case state.BlendEquation:
		gl.BlendEquationSeparate(blendOperation(s.RGB), blendOperation(s.Alpha))
	case state.BlendColor:
		gl.BlendColor(float32(s.Color.R), float32(s.Color.G), float32(s.Color.B), float32(s.Color.A))
	case state.ColorMask:
		c.colorMask = s
		gl.ColorMask(s.R, s.G, s.B, s.A)
	case state.CullFace:
		c.cullMode = s
		c.updateCulling()
	case state.FrontFace:
		gl.FrontFace(frontFace(s.Face))
	case state.PolygonMode:
		gl.PolygonMode(gl.FRONT_AND_BACK, polygonMode(s.Mode))
	case state.PolygonOffset:
		gl.PolygonOffset(s.Factor, s.Units)
	case state.LineWidth:
		gl.LineWidth(s.Width)
	case state.PointSize:
		gl.PointSize(s.Size)
	case state.StencilFunc:
		gl.StencilFunc(compareFunc(s.Func), s.Ref, s.Mask)
	case state.StencilOp:
		gl.StencilOp(stencilOperation(s.Fail), stencilOperation(s.DepthFail), stencilOperation(s.Pass))
	case state.StencilMask:
		c.stencilMask = s.Mask
		gl.StencilMask(s.Mask)
	case state.TextureUnit:
		gl.ActiveTexture(gl.TEXTURE0 + uint32(s.Unit))
		var tex uint32
		if s.Texture != nil {
			tex = uint32(s.Texture.TextureID())
		}
		gl.BindTexture(gl.TEXTURE_2D, tex)
	case state.ClipPlane:
		if s.Index >= 0 && s.Index < state.MaxClipPlanes {
			c.clip[s.Index] = s.Plane
		}
	}
}

// ResetState implements state.Applier.
func (c *Context) ResetState(k state.Kind) {
	if rs := state.Default(k); rs != nil {
		c.ApplyState(rs)
	}
}

func (c *Context) useProgram(p *shader.Program) {
	c.prog = nil
	if p != nil && p.LinkedBy(c) {
		c.prog, _ = p.Handle().(*program)
	}
	if c.prog == nil {
		gl.UseProgram(0)
		return
	}
	gl.UseProgram(c.prog.handle)
}

// updateCulling applies the cull mode. GL has no "cull nothing" face, so
// CullModeNone keeps GL_CULL_FACE off even while the capability is on.
func (c *Context) updateCulling() {
	face, ok := cullFace(c.cullMode.Mode)
	if ok {
		gl.CullFace(face)
	}
	if ok && c.cullEnabled {
		gl.Enable(gl.CULL_FACE)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
}

// Enable implements state.Applier.
func (c *Context) Enable(cp state.Capability) {
	if !c.usable() {
		return
	}
	if cp == state.CapCullFace {
		c.cullEnabled = true
		c.updateCulling()
		return
	}
	if cp == state.CapPrimitiveRestart {
		c.restart = true
	}
	if e, ok := capability(cp); ok {
		gl.Enable(e)
	}
}

// Disable implements state.Applier.
func (c *Context) Disable(cp state.Capability) {
	if !c.usable() {
		return
	}
	if cp == state.CapCullFace {
		c.cullEnabled = false
		c.updateCulling()
		return
	}
	if cp == state.CapPrimitiveRestart {
		c.restart = false
	}
	if e, ok := capability(cp); ok {
		gl.Disable(e)
	}
}

// CompileProgram implements shader.Compiler. The handle is the linked GL
// program.
func (c *Context) CompileProgram(p *shader.Program) (any, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	prog, err := linkProgram(p)
	if err != nil {
		if cerr := c.check("compile program"); device.IsFatal(cerr) {
			return nil, cerr
		}
		return nil, err
	}
	c.programs = append(c.programs, prog)
	return prog, nil
}

// BindGeometry implements device.Context.
func (c *Context) BindGeometry(g *geometry.Geometry) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := g.Validate(); err != nil {
		return err
	}
	gl.BindVertexArray(c.vao)
	for a := range geometry.Attribute(geometry.NumAttributes) {
		v := g.Array(a)
		if v == nil {
			gl.DisableVertexAttribArray(uint32(a))
			continue
		}
		c.buffers.bind(gl.ARRAY_BUFFER, v.Buffer(), v.Bytes)
		gl.EnableVertexAttribArray(uint32(a))
		gl.VertexAttribPointer(uint32(a), int32(v.Components()), gl.FLOAT, false, 0, gl.PtrOffset(0))
	}
	c.geom = g
	return c.check("bind geometry")
}

// SetMatrices implements device.Context.
func (c *Context) SetMatrices(world, view, proj mgl32.Mat4) {
	c.world, c.view, c.proj = world, view, proj
}

// SetUniforms implements device.Context. Values are set by name on the
// program in use.
func (c *Context) SetUniforms(u *shader.Uniforms) {
	if u == nil || c.prog == nil || !c.usable() {
		return
	}
	for _, v := range u.Values() {
		c.prog.setUniform(v)
	}
}

func (c *Context) beginDraw() error {
	if c.err != nil {
		return c.err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if !c.inPass {
		return device.ErrNoPass
	}
	if c.prog == nil {
		return fmt.Errorf("opengl: %w: no program in use", device.ErrProgramNotReady)
	}
	if c.geom == nil {
		return fmt.Errorf("opengl: %w: no geometry bound", device.ErrInvalidGeometry)
	}
	p := c.prog
	if p.world >= 0 {
		gl.UniformMatrix4fv(p.world, 1, false, &c.world[0])
	}
	if p.view >= 0 {
		gl.UniformMatrix4fv(p.view, 1, false, &c.view[0])
	}
	if p.proj >= 0 {
		gl.UniformMatrix4fv(p.proj, 1, false, &c.proj[0])
	}
	for n, loc := range p.clip {
		if loc >= 0 {
			pl := c.clip[n]
			gl.Uniform4f(loc, pl[0], pl[1], pl[2], pl[3])
		}
	}
	return nil
}

// DrawArrays implements primitive.Drawer.
func (c *Context) DrawArrays(t primitive.Topology, first, count, instances int) error {
	if err := c.beginDraw(); err != nil {
		return err
	}
	if mode, ok := drawMode(t); ok {
		gl.DrawArraysInstanced(mode, int32(first), int32(count), int32(max(instances, 1)))
		return c.check("draw arrays")
	}
	c.flat = primitive.AppendTriangles(c.flat[:0], primitive.NewDrawArrays(t, first, count))
	return c.drawFlat(instances, 0)
}

// DrawElements implements primitive.Drawer.
func (c *Context) DrawElements(t primitive.Topology, idx primitive.IndexData, first, count, instances, baseVertex int) error {
	return c.DrawRangeElements(t, idx, -1, -1, first, count, instances, baseVertex)
}

// DrawRangeElements implements primitive.RangeDrawer. A negative start
// draws without a range hint.
func (c *Context) DrawRangeElements(t primitive.Topology, idx primitive.IndexData, start, end, first, count, instances, baseVertex int) error {
	if err := c.beginDraw(); err != nil {
		return err
	}
	if first < 0 || count < 0 || first+count > idx.Len() {
		return fmt.Errorf("opengl: %w: [%d, %d) of %d indices",
			primitive.ErrIndexOutOfRange, first, first+count, idx.Len())
	}
	ri, on := idx.RestartIndex()
	mode, native := drawMode(t)
	if !native {
		vals := make([]uint32, count)
		for i := range vals {
			vals[i] = idx.At(first + i)
		}
		d := primitive.NewDrawElements(t, vals)
		d.SetRestart(on, ri)
		c.flat = primitive.AppendTriangles(c.flat[:0], d)
		return c.drawFlat(instances, baseVertex)
	}

	c.setRestart(on, ri)
	c.buffers.bind(gl.ELEMENT_ARRAY_BUFFER, idx.Buffer(), idx.Bytes)
	typ := indexType(idx.Type())
	offset := gl.PtrOffset(first * idx.Type().Size())
	switch {
	case start >= 0 && instances <= 1:
		gl.DrawRangeElementsBaseVertex(mode, uint32(start), uint32(end), int32(count), typ, offset, int32(baseVertex))
	default:
		gl.DrawElementsInstancedBaseVertex(mode, int32(count), typ, offset, int32(max(instances, 1)), int32(baseVertex))
	}
	return c.check("draw elements")
}

func (c *Context) setRestart(on bool, idx uint32) {
	if on == c.restart && (!on || idx == c.restartIdx) {
		return
	}
	c.restart = on
	if !on {
		gl.Disable(gl.PRIMITIVE_RESTART)
		return
	}
	c.restartIdx = idx
	gl.Enable(gl.PRIMITIVE_RESTART)
	gl.PrimitiveRestartIndex(idx)
}

// drawFlat draws c.flat as an independent triangle list.
func (c *Context) drawFlat(instances, baseVertex int) error {
	if len(c.flat) == 0 {
		return nil
	}
	c.packed = c.packed[:0]
	for _, v := range c.flat {
		c.packed = binary.LittleEndian.AppendUint32(c.packed, v)
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, c.flatEBO)
	specify(gl.ELEMENT_ARRAY_BUFFER, c.packed, gl.STREAM_DRAW)
	gl.DrawElementsInstancedBaseVertex(gl.TRIANGLES, int32(len(c.flat)), gl.UNSIGNED_INT, gl.PtrOffset(0),
		int32(max(instances, 1)), int32(baseVertex))
	return c.check("draw triangulated")
}
