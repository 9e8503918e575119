//go:build !nogpu

package wgpu

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/g3d"
	"github.com/gogpu/g3d/cache"
	"github.com/gogpu/g3d/device"
	"github.com/gogpu/g3d/geometry"
	"github.com/gogpu/g3d/primitive"
	"github.com/gogpu/g3d/shader"
	"github.com/gogpu/g3d/state"
)

// halProvider is implemented by device providers exposing the hal objects.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// Context is a device.Context drawing through a hal device.
//
// A lost context stays lost; open a new one on a fresh device. The Context
// is not safe for concurrent use.
type Context struct {
	label   string
	target  device.Target
	tracker *state.Tracker
	log     *slog.Logger

	device hal.Device
	queue  hal.Queue

	color     hal.Texture
	colorView hal.TextureView
	depth     hal.Texture
	depthView hal.TextureView

	uniformLayout  hal.BindGroupLayout
	pipelineLayout hal.PipelineLayout
	pipelines      *pipelines
	buffers        *buffers
	uniforms       uniformRing
	modules        []hal.ShaderModule

	applied   applied
	world     mgl32.Mat4
	view      mgl32.Mat4
	proj      mgl32.Mat4
	params    []float32
	geom      *geometry.Geometry
	vertex    [geometry.NumAttributes]hal.Buffer
	layout    vertexLayout
	pipeline  hal.RenderPipeline
	viewport  device.Viewport
	flat      []uint32
	flatBytes []byte
	warned    [state.NumKinds]bool

	enc hal.CommandEncoder
	rp  hal.RenderPassEncoder

	closed bool
	lost   bool
	err    error
}

var (
	_ device.Context        = (*Context)(nil)
	_ device.Closer         = (*Context)(nil)
	_ primitive.RangeDrawer = (*Context)(nil)
)

// NewContext creates a context on the device exposed by cfg.Provider.
func NewContext(cfg device.Config) (*Context, error) {
	if cfg.Provider == nil {
		return nil, ErrNoProvider
	}
	hp, ok := cfg.Provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	dev, ok := hp.HalDevice().(hal.Device)
	if !ok {
		return nil, ErrNoHAL
	}
	q, ok := hp.HalQueue().(hal.Queue)
	if !ok {
		return nil, ErrNoHAL
	}
	return newContext(dev, q, cfg)
}

func newContext(dev hal.Device, q hal.Queue, cfg device.Config) (*Context, error) {
	c := &Context{
		label:   cfg.Label,
		target:  cfg.ResolvedTarget(),
		tracker: state.NewTracker(),
		log:     g3d.Logger(),
		device:  dev,
		queue:   q,
		applied: newApplied(),
		world:   mgl32.Ident4(),
		view:    mgl32.Ident4(),
		proj:    mgl32.Ident4(),
	}
	if c.target.Width <= 0 || c.target.Height <= 0 {
		return nil, fmt.Errorf("wgpu: invalid target size %dx%d", c.target.Width, c.target.Height)
	}
	if err := c.createTargets(); err != nil {
		c.destroy()
		return nil, err
	}
	if err := c.createLayouts(); err != nil {
		c.destroy()
		return nil, err
	}
	c.pipelines = newPipelines(dev, c.pipelineLayout, c.target.ColorFormat, c.target.DepthFormat, c.target.SampleCount)
	c.buffers = newBuffers(dev, q)
	c.uniforms = uniformRing{device: dev, queue: q, layout: c.uniformLayout}

	c.log.Info("wgpu: context created",
		"width", c.target.Width,
		"height", c.target.Height,
		"format", c.target.ColorFormat)
	return c, nil
}

func (c *Context) createTargets() error {
	size := hal.Extent3D{
		Width:              uint32(c.target.Width),
		Height:             uint32(c.target.Height),
		DepthOrArrayLayers: 1,
	}
	samples := max(c.target.SampleCount, 1)

	var err error
	c.color, err = c.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "g3d color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     gputypes.TextureDimension2D,
		Format:        c.target.ColorFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create color texture: %w", err)
	}
	c.colorView, err = c.device.CreateTextureView(c.color, &hal.TextureViewDescriptor{
		Label: "g3d color view",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create color view: %w", err)
	}

	if c.target.DepthFormat == gputypes.TextureFormatUndefined {
		return nil
	}
	c.depth, err = c.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "g3d depth",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     gputypes.TextureDimension2D,
		Format:        c.target.DepthFormat,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create depth texture: %w", err)
	}
	c.depthView, err = c.device.CreateTextureView(c.depth, &hal.TextureViewDescriptor{
		Label: "g3d depth view",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create depth view: %w", err)
	}
	return nil
}

func (c *Context) createLayouts() error {
	var err error
	c.uniformLayout, err = c.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "g3d uniforms layout",
		Entries: []gputypes.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		}},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group layout: %w", err)
	}
	c.pipelineLayout, err = c.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "g3d pipeline layout",
		BindGroupLayouts: []hal.BindGroupLayout{c.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}
	return nil
}

// Name implements device.Context.
func (c *Context) Name() string { return "wgpu" }

// Target implements device.Context.
func (c *Context) Target() device.Target { return c.target }

// Tracker implements device.Context.
func (c *Context) Tracker() *state.Tracker { return c.tracker }

// ColorTexture returns the texture the context renders into.
func (c *Context) ColorTexture() hal.Texture { return c.color }

// ColorView returns the view of the color texture.
func (c *Context) ColorView() hal.TextureView { return c.colorView }

// PipelineStats returns the pipeline cache statistics.
func (c *Context) PipelineStats() cache.Stats { return c.pipelines.lru.Stats() }

// Uploads returns the number of vertex and index buffer uploads so far.
func (c *Context) Uploads() int { return c.buffers.uploads }

// Validate implements device.Context.
func (c *Context) Validate() error {
	switch {
	case c.closed:
		return fmt.Errorf("wgpu: %w", device.ErrNoContext)
	case c.lost:
		return fmt.Errorf("wgpu: %w", device.ErrContextLost)
	}
	c.err = nil
	return nil
}

// Err implements device.Context.
func (c *Context) Err() error { return c.err }

func (c *Context) lose(cause error) {
	c.lost = true
	if c.err == nil {
		c.err = fmt.Errorf("wgpu: %w: %v", device.ErrContextLost, cause)
	}
	c.log.Error("wgpu: context lost", "err", cause)
}

// Close implements device.Closer. It releases every GPU object the context
// created; the device itself belongs to the host.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.abandonPass()
	c.destroy()
	c.closed = true
	return nil
}

func (c *Context) destroy() {
	if c.pipelines != nil {
		c.pipelines.destroy()
	}
	if c.buffers != nil {
		c.buffers.destroy()
	}
	c.uniforms.destroy()
	for _, m := range c.modules {
		c.device.DestroyShaderModule(m)
	}
	c.modules = nil
	if c.pipelineLayout != nil {
		c.device.DestroyPipelineLayout(c.pipelineLayout)
	}
	if c.uniformLayout != nil {
		c.device.DestroyBindGroupLayout(c.uniformLayout)
	}
	if c.depthView != nil {
		c.device.DestroyTextureView(c.depthView)
	}
	if c.depth != nil {
		c.device.DestroyTexture(c.depth)
	}
	if c.colorView != nil {
		c.device.DestroyTextureView(c.colorView)
	}
	if c.color != nil {
		c.device.DestroyTexture(c.color)
	}
}

// BeginPass implements device.Context.
func (c *Context) BeginPass(desc device.PassDescriptor) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.rp != nil {
		return errPassInProgress
	}
	enc, err := c.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: desc.Label})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := enc.BeginEncoding(desc.Label); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	rpDesc := &hal.RenderPassDescriptor{
		Label: desc.Label,
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       c.colorView,
			LoadOp:     loadOp(desc.Clear.Has(device.ClearColor)),
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: desc.ClearColor,
		}},
	}
	if c.depthView != nil {
		rpDesc.DepthStencilAttachment = &hal.RenderPassDepthStencilAttachment{
			View:              c.depthView,
			DepthLoadOp:       loadOp(desc.Clear.Has(device.ClearDepth)),
			DepthStoreOp:      gputypes.StoreOpStore,
			DepthClearValue:   desc.ClearDepth,
			StencilLoadOp:     loadOp(desc.Clear.Has(device.ClearStencil)),
			StencilStoreOp:    gputypes.StoreOpStore,
			StencilClearValue: desc.ClearStencil,
		}
	}
	c.enc = enc
	c.rp = enc.BeginRenderPass(rpDesc)
	c.pipeline = nil
	c.uniforms.rewind()

	vp := desc.Viewport
	if vp.Empty() {
		vp = c.target.Viewport()
	}
	c.setViewport(vp)
	c.rp.SetStencilReference(c.applied.stencilRef())
	bc := c.applied.blendColor()
	c.rp.SetBlendConstant(&bc)
	return nil
}

func loadOp(clear bool) gputypes.LoadOp {
	if clear {
		return gputypes.LoadOpClear
	}
	return gputypes.LoadOpLoad
}

// setViewport converts a bottom-left origin viewport to the top-left
// origin WebGPU uses. The depth range maps to the viewport depth bounds.
func (c *Context) setViewport(vp device.Viewport) {
	dr := c.applied.depthRange()
	y := c.target.Height - (vp.Y + vp.Height)
	c.rp.SetViewport(float32(vp.X), float32(y), float32(vp.Width), float32(vp.Height), dr.Near, dr.Far)
	c.viewport = vp
}

// EndPass implements device.Context. It submits the pass and waits for
// the GPU to finish it.
func (c *Context) EndPass() error {
	if c.err != nil {
		c.abandonPass()
		return c.err
	}
	if c.rp == nil {
		return device.ErrNoPass
	}
	c.rp.End()
	c.rp = nil
	enc := c.enc
	c.enc = nil
	defer c.releasePass()

	cmd, err := enc.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer c.device.FreeCommandBuffer(cmd)

	idx, err := c.queue.Submit([]hal.CommandBuffer{cmd})
	if err != nil {
		c.lose(err)
		return c.err
	}
	if err := c.waitSubmission(idx); err != nil {
		c.lose(err)
		return c.err
	}
	return nil
}

// waitSubmission blocks until the queue reports submission idx complete.
func (c *Context) waitSubmission(idx uint64) error {
	if c.queue.PollCompleted() >= idx {
		return nil
	}
	if err := c.device.WaitIdle(); err != nil {
		return fmt.Errorf("wait idle: %w", err)
	}
	if done := c.queue.PollCompleted(); done < idx {
		return fmt.Errorf("submission %d not complete after wait idle (completed %d)", idx, done)
	}
	return nil
}

// abandonPass ends an open pass without submitting it.
func (c *Context) abandonPass() {
	if c.rp != nil {
		c.rp.End()
		c.rp = nil
	}
	if c.enc != nil {
		if cmd, err := c.enc.EndEncoding(); err == nil {
			c.device.FreeCommandBuffer(cmd)
		}
		c.enc = nil
	}
	c.releasePass()
}

// releasePass destroys the objects only the finished pass referenced.
func (c *Context) releasePass() {
	c.uniforms.release()
	c.buffers.release()
	c.pipelines.release()
}

// ApplyState implements state.Applier.
func (c *Context) ApplyState(rs state.RenderState) {
	if rs == nil || !rs.Kind().Valid() {
		return
	}
	c.applied.set(rs)
	c.stateChanged(rs.Kind())
	if k := rs.Kind(); unsupported(rs) && !c.warned[k] {
		c.warned[k] = true
		c.log.Debug("wgpu: render state has no effect", "kind", k)
	}
}

// ResetState implements state.Applier.
func (c *Context) ResetState(k state.Kind) {
	c.applied.reset(k)
	c.stateChanged(k)
}

// stateChanged pushes the dynamic states into an open pass.
func (c *Context) stateChanged(k state.Kind) {
	if c.rp == nil {
		return
	}
	switch k {
	case state.KindDepthRange:
		c.setViewport(c.viewport)
	case state.KindBlendColor:
		bc := c.applied.blendColor()
		c.rp.SetBlendConstant(&bc)
	case state.KindStencilFunc:
		c.rp.SetStencilReference(c.applied.stencilRef())
	}
}

// Enable implements state.Applier.
func (c *Context) Enable(cp state.Capability) { c.applied.enables.Enable(cp) }

// Disable implements state.Applier.
func (c *Context) Disable(cp state.Capability) { c.applied.enables.Disable(cp) }

// CompileProgram implements shader.Compiler. The handle is the shader
// module.
func (c *Context) CompileProgram(p *shader.Program) (any, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	m, err := compile(c.device, p)
	if err != nil {
		return nil, err
	}
	c.modules = append(c.modules, m.shader)
	return m, nil
}

// BindGeometry implements device.Context.
func (c *Context) BindGeometry(g *geometry.Geometry) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := g.Validate(); err != nil {
		return err
	}
	c.vertex = [geometry.NumAttributes]hal.Buffer{}
	for a := range geometry.Attribute(geometry.NumAttributes) {
		v := g.Array(a)
		if v == nil {
			continue
		}
		buf, err := c.buffers.upload(v.Buffer(), gputypes.BufferUsageVertex, g.Name()+" "+a.String(), v.Bytes)
		if err != nil {
			return err
		}
		c.vertex[a] = buf
	}
	c.layout = layoutOf(g)
	c.geom = g
	return nil
}

// SetMatrices implements device.Context. It also clears the uniforms set
// for the previous draw.
func (c *Context) SetMatrices(world, view, proj mgl32.Mat4) {
	c.world, c.view, c.proj = world, view, proj
	c.params = c.params[:0]
}

// SetUniforms implements device.Context. Values are appended to the params
// of the uniform block.
func (c *Context) SetUniforms(u *shader.Uniforms) {
	if u == nil {
		return
	}
	c.params = u.Pack(c.params)
}

func (c *Context) beginDraw() error {
	if c.err != nil {
		return c.err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if c.rp == nil {
		return device.ErrNoPass
	}
	return nil
}

// prepare binds the pipeline, vertex buffers and uniforms of one draw.
func (c *Context) prepare(topo gputypes.PrimitiveTopology) error {
	p := c.applied.program()
	if p == nil {
		return ErrNoProgram
	}
	m, ok := p.Handle().(*module)
	if !ok || !p.LinkedBy(c) {
		return fmt.Errorf("wgpu: %w: %q", device.ErrProgramNotReady, p.Name())
	}
	if c.geom == nil {
		return fmt.Errorf("wgpu: %w: no geometry bound", device.ErrInvalidGeometry)
	}
	rp, err := c.pipelines.get(c.applied.key(p.ID(), topo, c.layout), m, p.Name())
	if err != nil {
		return err
	}
	if rp != c.pipeline {
		c.rp.SetPipeline(rp)
		c.pipeline = rp
	}
	slot := uint32(0)
	for _, buf := range c.vertex {
		if buf == nil {
			continue
		}
		c.rp.SetVertexBuffer(slot, buf, 0)
		slot++
	}
	bg, err := c.uniforms.bind(c.world, c.view, c.proj, c.params)
	if err != nil {
		return err
	}
	c.rp.SetBindGroup(0, bg, nil)
	return nil
}

// DrawArrays implements primitive.Drawer.
func (c *Context) DrawArrays(t primitive.Topology, first, count, instances int) error {
	if err := c.beginDraw(); err != nil {
		return err
	}
	if topo, ok := t.GPU(); ok {
		if err := c.prepare(topo); err != nil {
			return err
		}
		c.rp.Draw(uint32(count), uint32(max(instances, 1)), uint32(first), 0)
		return nil
	}
	vals := make([]uint32, count)
	for i := range vals {
		vals[i] = uint32(first + i)
	}
	return c.drawFlat(t, vals, 0, false, instances, 0)
}

// DrawElements implements primitive.Drawer.
func (c *Context) DrawElements(t primitive.Topology, idx primitive.IndexData, first, count, instances, baseVertex int) error {
	return c.DrawRangeElements(t, idx, -1, -1, first, count, instances, baseVertex)
}

// DrawRangeElements implements primitive.RangeDrawer. WebGPU has no range
// hint; start and end are ignored.
func (c *Context) DrawRangeElements(t primitive.Topology, idx primitive.IndexData, start, end, first, count, instances, baseVertex int) error {
	if err := c.beginDraw(); err != nil {
		return err
	}
	if first < 0 || count < 0 || first+count > idx.Len() {
		return fmt.Errorf("wgpu: %w: [%d, %d) of %d indices",
			primitive.ErrIndexOutOfRange, first, first+count, idx.Len())
	}
	restart, on := idx.RestartIndex()
	topo, native := t.GPU()
	format, formatOK := idx.Type().GPU()
	if native && formatOK && (!on || (isStrip(topo) && restart == maxIndex(format))) {
		if err := c.prepare(topo); err != nil {
			return err
		}
		buf, err := c.buffers.upload(idx.Buffer(), gputypes.BufferUsageIndex, "g3d indices", idx.Bytes)
		if err != nil {
			return err
		}
		c.rp.SetIndexBuffer(buf, format, 0)
		c.rp.DrawIndexed(uint32(count), uint32(max(instances, 1)), uint32(first), int32(baseVertex), 0)
		return nil
	}
	vals := make([]uint32, count)
	for i := range vals {
		vals[i] = idx.At(first + i)
	}
	return c.drawFlat(t, vals, restart, on, instances, baseVertex)
}

// drawFlat draws vals after flattening them into a list topology.
func (c *Context) drawFlat(t primitive.Topology, vals []uint32, restart uint32, on bool, instances, baseVertex int) error {
	c.flat = flatten(c.flat[:0], t, vals, restart, on)
	if len(c.flat) == 0 {
		return nil
	}
	if err := c.prepare(flatTopology(t)); err != nil {
		return err
	}
	c.flatBytes = c.flatBytes[:0]
	for _, v := range c.flat {
		c.flatBytes = binary.LittleEndian.AppendUint32(c.flatBytes, v)
	}
	buf, err := c.buffers.transient(gputypes.BufferUsageIndex, "g3d flattened indices", c.flatBytes)
	if err != nil {
		return err
	}
	c.rp.SetIndexBuffer(buf, gputypes.IndexFormatUint32, 0)
	c.rp.DrawIndexed(uint32(len(c.flat)), uint32(max(instances, 1)), 0, int32(baseVertex), 0)
	return nil
}
