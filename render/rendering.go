// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/gogpu/g3d"
	"github.com/gogpu/g3d/bounds"
	"github.com/gogpu/g3d/device"
	"github.com/gogpu/g3d/scene"
)

// Abstract is anything that renders a frame into a graphics context: a
// Rendering or a Tree of them.
type Abstract interface {
	// Render draws one frame. A returned error is fatal for the frame.
	Render(ctx device.Context) error

	// Callbacks returns the chain receiving PreRendering and PostRendering.
	Callbacks() *Callbacks

	// EnableMask returns the layers drawn.
	EnableMask() uint32

	// Name identifies the rendering in logs.
	Name() string
}

// Rendering renders the actors of its scene managers through a camera.
type Rendering struct {
	opts      options
	camera    *scene.Camera
	managers  []scene.Manager
	renderers []*Renderer
	callbacks Callbacks
	clock     *FrameClock

	queue  Queue
	actors []*scene.Actor
	kept   []*scene.Actor
	stats  Stats
}

var _ Abstract = (*Rendering)(nil)

// NewRendering returns a rendering through cam with one default renderer.
func NewRendering(cam *scene.Camera, opts ...Option) *Rendering {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r := &Rendering{
		opts:   o,
		camera: cam,
		clock:  o.clock,
	}
	if r.clock == nil {
		r.clock = NewFrameClock(nil)
	}
	rd := NewRenderer(o.name)
	if o.clear != nil {
		rd.SetClearFlags(*o.clear)
	}
	r.AddRenderer(rd)
	return r
}

// Name implements Abstract.
func (r *Rendering) Name() string { return r.opts.name }

// EnableMask implements Abstract.
func (r *Rendering) EnableMask() uint32 { return r.opts.enableMask }

// SetEnableMask changes the layers drawn.
func (r *Rendering) SetEnableMask(mask uint32) { r.opts.enableMask = mask }

// Callbacks implements Abstract.
func (r *Rendering) Callbacks() *Callbacks { return &r.callbacks }

// Camera returns the camera.
func (r *Rendering) Camera() *scene.Camera { return r.camera }

// SetCamera replaces the camera.
func (r *Rendering) SetCamera(cam *scene.Camera) { r.camera = cam }

// Culling reports whether frustum culling is on.
func (r *Rendering) Culling() bool { return r.opts.culling }

// SetCulling turns frustum culling on or off.
func (r *Rendering) SetCulling(enabled bool) { r.opts.culling = enabled }

// Clock returns the frame clock.
func (r *Rendering) Clock() *FrameClock { return r.clock }

// Queue returns the queue of the last frame.
func (r *Rendering) Queue() *Queue { return &r.queue }

// Stats returns the statistics of the last frame, summed over renderers.
func (r *Rendering) Stats() Stats { return r.stats }

// AddManager adds a scene manager.
func (r *Rendering) AddManager(m scene.Manager) {
	if m != nil {
		r.managers = append(r.managers, m)
	}
}

// RemoveManager removes a scene manager and reports whether it was present.
func (r *Rendering) RemoveManager(m scene.Manager) bool {
	i := slices.Index(r.managers, m)
	if i < 0 {
		return false
	}
	r.managers = slices.Delete(r.managers, i, i+1)
	return true
}

// AddRenderer appends a renderer. Renderers run in order over the same
// queue; renderers after the first do not clear unless told to.
func (r *Rendering) AddRenderer(rd *Renderer) {
	if rd == nil {
		return
	}
	if len(r.renderers) > 0 && rd.clear == nil {
		rd.SetClearFlags(0)
	}
	rd.owner = r
	if rd.log == nil {
		rd.log = r.opts.logger
	}
	r.renderers = append(r.renderers, rd)
}

// Renderers returns the renderers in execution order.
func (r *Rendering) Renderers() []*Renderer { return r.renderers }

func (r *Rendering) logger() *slog.Logger {
	if r.opts.logger != nil {
		return r.opts.logger
	}
	return g3d.Logger()
}

// Render draws one frame into ctx.
//
// The frame clock is ticked and PostRendering fired only when every
// renderer completed; an aborted frame leaves both untouched.
func (r *Rendering) Render(ctx device.Context) error {
	if r.camera == nil {
		return ErrNoCamera
	}
	if err := ctx.Validate(); err != nil {
		ctx.Tracker().Invalidate()
		r.logger().Error("render: context not usable", "rendering", r.opts.name, "err", err)
		return fmt.Errorf("render: rendering %q: %w", r.opts.name, err)
	}

	r.callbacks.Dispatch(PreRendering, r)

	var f *bounds.Frustum
	if r.opts.culling {
		f = r.camera.Frustum()
	}
	r.actors = r.actors[:0]
	for _, m := range r.managers {
		if m.Enabled() {
			r.actors = m.Actors(r.actors, f)
		}
	}
	var culled int
	r.kept, culled = Cull(r.kept[:0], r.actors, f, r.opts.enableMask)

	r.queue.Reset()
	for _, a := range r.kept {
		r.queue.AddActor(a, r.camera)
	}
	r.opts.sorter.Sort(r.queue.Tokens())

	total := Stats{Culled: culled}
	for _, rd := range r.renderers {
		st, err := rd.Render(ctx, &r.queue, r.camera)
		total = total.Add(st)
		if err != nil {
			r.stats = total
			return fmt.Errorf("render: rendering %q: %w", r.opts.name, err)
		}
	}
	r.stats = total

	r.callbacks.Dispatch(PostRendering, r)
	r.clock.Tick()
	return nil
}

// Tree renders its children in order. It aborts on the first child error.
type Tree struct {
	name       string
	enableMask uint32
	children   []Abstract
	callbacks  Callbacks
}

var _ Abstract = (*Tree)(nil)

// NewTree returns a tree of the given renderings.
func NewTree(name string, children ...Abstract) *Tree {
	return &Tree{name: name, enableMask: scene.AllLayers, children: children}
}

// Name implements Abstract.
func (t *Tree) Name() string { return t.name }

// EnableMask implements Abstract. It does not restrict the children.
func (t *Tree) EnableMask() uint32 { return t.enableMask }

// Callbacks implements Abstract.
func (t *Tree) Callbacks() *Callbacks { return &t.callbacks }

// Add appends a child.
func (t *Tree) Add(child Abstract) {
	if child != nil {
		t.children = append(t.children, child)
	}
}

// Children returns the children in render order.
func (t *Tree) Children() []Abstract { return t.children }

// Render implements Abstract.
func (t *Tree) Render(ctx device.Context) error {
	t.callbacks.Dispatch(PreRendering, t)
	for _, c := range t.children {
		if err := c.Render(ctx); err != nil {
			return fmt.Errorf("render: tree %q: %w", t.name, err)
		}
	}
	t.callbacks.Dispatch(PostRendering, t)
	return nil
}
