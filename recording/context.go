package recording

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/g3d"
	"github.com/gogpu/g3d/device"
	"github.com/gogpu/g3d/geometry"
	"github.com/gogpu/g3d/primitive"
	"github.com/gogpu/g3d/shader"
	"github.com/gogpu/g3d/state"
)

// errPassInProgress is returned by BeginPass inside a pass.
var errPassInProgress = errors.New("recording: pass already in progress")

// Context is a device.Context that records every call as a Command.
//
// Calls made while the context is lost or unbound are dropped. The Context
// is not safe for concurrent use.
type Context struct {
	label   string
	target  device.Target
	tracker *state.Tracker

	commands []Command
	counts   [numCommandTypes]int

	bound  bool
	lost   bool
	err    error
	inPass bool

	// loseAfter counts the draws left before a simulated loss, -1 for none.
	loseAfter int

	// uploaded maps buffer keys to the version last bound.
	uploaded map[primitive.BufferKey]uint64
}

var (
	_ device.Context = (*Context)(nil)
	_ device.Closer  = (*Context)(nil)

	_ primitive.RangeDrawer = (*Context)(nil)
)

// NewContext returns a bound recording context for cfg.
func NewContext(cfg device.Config) *Context {
	return &Context{
		label:     cfg.Label,
		target:    cfg.ResolvedTarget(),
		tracker:   state.NewTracker(),
		commands:  make([]Command, 0, 256),
		bound:     true,
		loseAfter: -1,
		uploaded:  make(map[primitive.BufferKey]uint64),
	}
}

// Name implements device.Context.
func (c *Context) Name() string { return "recording" }

// Label returns the label given in the config.
func (c *Context) Label() string { return c.label }

// Target implements device.Context.
func (c *Context) Target() device.Target { return c.target }

// Tracker implements device.Context.
func (c *Context) Tracker() *state.Tracker { return c.tracker }

// Validate implements device.Context.
func (c *Context) Validate() error {
	switch {
	case !c.bound:
		return fmt.Errorf("recording: %w", device.ErrNoContext)
	case c.lost:
		return fmt.Errorf("recording: %w", device.ErrContextLost)
	}
	c.err = nil
	return nil
}

// Err implements device.Context.
func (c *Context) Err() error { return c.err }

// Lose simulates a context loss. The current pass is abandoned.
func (c *Context) Lose() {
	c.lost = true
	c.inPass = false
	if c.err == nil {
		c.err = fmt.Errorf("recording: %w", device.ErrContextLost)
	}
	g3d.Logger().Warn("recording: context lost")
}

// LoseAfterDraws loses the context once n more draw calls were recorded.
// A negative n cancels a pending loss.
func (c *Context) LoseAfterDraws(n int) { c.loseAfter = n }

// Bind rebinds a lost or closed context. Uploaded buffers are forgotten, as
// they would be on a real device.
func (c *Context) Bind() {
	c.bound = true
	c.lost = false
	c.err = nil
	c.inPass = false
	clear(c.uploaded)
}

// Close implements device.Closer. A closed context reports
// device.ErrNoContext until Bind is called.
func (c *Context) Close() error {
	c.bound = false
	c.inPass = false
	return nil
}

// InPass reports whether a pass is in progress.
func (c *Context) InPass() bool { return c.inPass }

func (c *Context) usable() bool { return c.bound && !c.lost }

func (c *Context) record(cmd Command) {
	c.commands = append(c.commands, cmd)
	c.counts[cmd.Type()]++
}

// Commands returns the recorded commands in call order.
func (c *Context) Commands() []Command { return c.commands }

// Len returns the number of recorded commands.
func (c *Context) Len() int { return len(c.commands) }

// Count returns the number of recorded commands of type t.
func (c *Context) Count(t CommandType) int {
	if t >= numCommandTypes {
		return 0
	}
	return c.counts[t]
}

// Draws returns the number of recorded draw calls.
func (c *Context) Draws() int {
	return c.counts[CmdDrawArrays] + c.counts[CmdDrawElements]
}

// Reset discards the recorded commands. The tracker and bound resources are
// kept.
func (c *Context) Reset() {
	clear(c.commands)
	c.commands = c.commands[:0]
	c.counts = [numCommandTypes]int{}
}

// Finish returns the recorded commands as a Recording and resets c.
func (c *Context) Finish() *Recording {
	r := &Recording{target: c.target, commands: slices.Clone(c.commands)}
	c.Reset()
	return r
}

// BeginPass implements device.Context.
func (c *Context) BeginPass(desc device.PassDescriptor) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.inPass {
		return errPassInProgress
	}
	if desc.Viewport.Empty() {
		desc.Viewport = c.target.Viewport()
	}
	c.inPass = true
	c.record(BeginPassCommand{Desc: desc})
	return nil
}

// EndPass implements device.Context.
func (c *Context) EndPass() error {
	if c.err != nil {
		return c.err
	}
	if !c.inPass {
		return device.ErrNoPass
	}
	c.inPass = false
	c.record(EndPassCommand{})
	return nil
}

// ApplyState implements state.Applier.
func (c *Context) ApplyState(rs state.RenderState) {
	if c.usable() {
		c.record(ApplyStateCommand{State: rs})
	}
}

// ResetState implements state.Applier.
func (c *Context) ResetState(k state.Kind) {
	if c.usable() {
		c.record(ResetStateCommand{Kind: k})
	}
}

// Enable implements state.Applier.
func (c *Context) Enable(cp state.Capability) {
	if c.usable() {
		c.record(EnableCommand{Cap: cp})
	}
}

// Disable implements state.Applier.
func (c *Context) Disable(cp state.Capability) {
	if c.usable() {
		c.record(DisableCommand{Cap: cp})
	}
}

// CompileProgram implements shader.Compiler. WGSL programs are compiled to
// SPIR-V and the words are returned as the handle. GLSL sources are checked
// for an entry point only; the handle is the program id.
func (c *Context) CompileProgram(p *shader.Program) (any, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.record(CompileProgramCommand{Program: p})

	switch p.Language() {
	case shader.WGSL:
		// A WGSL program may be split across sources or share one module.
		var code strings.Builder
		seen := make(map[string]bool)
		for _, src := range p.Sources() {
			if seen[src.Code] {
				continue
			}
			seen[src.Code] = true
			code.WriteString(src.Code)
			code.WriteByte('\n')
		}
		words, err := shader.CompileWGSL(code.String())
		if err != nil {
			return nil, err
		}
		return words, nil
	default:
		for _, src := range p.Sources() {
			if !strings.Contains(src.Code, "main") {
				return nil, fmt.Errorf("recording: %s shader of %q has no main", src.Stage, p.Name())
			}
		}
		return p.ID(), nil
	}
}

// BindGeometry implements device.Context.
func (c *Context) BindGeometry(g *geometry.Geometry) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := g.Validate(); err != nil {
		return err
	}
	uploaded := 0
	for a := range geometry.Attribute(geometry.NumAttributes) {
		v := g.Array(a)
		if v == nil {
			continue
		}
		b := v.Buffer()
		if ver, ok := c.uploaded[b.Key()]; ok && ver == b.Version() {
			continue
		}
		c.uploaded[b.Key()] = b.Version()
		uploaded++
	}
	c.record(BindGeometryCommand{Geometry: g, Uploaded: uploaded})
	return nil
}

// SetMatrices implements device.Context.
func (c *Context) SetMatrices(world, view, proj mgl32.Mat4) {
	if c.usable() {
		c.record(SetMatricesCommand{World: world, View: view, Projection: proj})
	}
}

// SetUniforms implements device.Context.
func (c *Context) SetUniforms(u *shader.Uniforms) {
	if u == nil || !c.usable() {
		return
	}
	c.record(SetUniformsCommand{Values: slices.Clone(u.Values())})
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
	return nil
}

func (c *Context) endDraw() {
	if c.loseAfter < 0 {
		return
	}
	c.loseAfter--
	if c.loseAfter <= 0 {
		c.loseAfter = -1
		c.Lose()
	}
}

// DrawArrays implements primitive.Drawer.
func (c *Context) DrawArrays(t primitive.Topology, first, count, instances int) error {
	if err := c.beginDraw(); err != nil {
		return err
	}
	c.record(DrawArraysCommand{Topology: t, First: first, Count: count, Instances: instances})
	c.endDraw()
	return nil
}

// DrawElements implements primitive.Drawer.
func (c *Context) DrawElements(t primitive.Topology, idx primitive.IndexData, first, count, instances, baseVertex int) error {
	return c.DrawRangeElements(t, idx, -1, -1, first, count, instances, baseVertex)
}

// DrawRangeElements implements primitive.RangeDrawer.
func (c *Context) DrawRangeElements(t primitive.Topology, idx primitive.IndexData, start, end, first, count, instances, baseVertex int) error {
	if err := c.beginDraw(); err != nil {
		return err
	}
	if first < 0 || count < 0 || first+count > idx.Len() {
		return fmt.Errorf("recording: %w: [%d, %d) of %d indices",
			primitive.ErrIndexOutOfRange, first, first+count, idx.Len())
	}
	c.record(DrawElementsCommand{
		Topology:   t,
		Indices:    idx,
		First:      first,
		Count:      count,
		Instances:  instances,
		BaseVertex: baseVertex,
		Start:      start,
		End:        end,
	})
	c.endDraw()
	return nil
}
