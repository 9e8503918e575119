package recording

import (
	"fmt"

	"github.com/gogpu/g3d/device"
	"github.com/gogpu/g3d/primitive"
	"github.com/gogpu/g3d/shader"
)

// Recording is an immutable list of recorded commands. It can be replayed
// to any device.Context.
type Recording struct {
	target   device.Target
	commands []Command
}

// Target returns the target of the context that recorded the commands.
func (r *Recording) Target() device.Target { return r.target }

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command { return r.commands }

// Len returns the number of commands.
func (r *Recording) Len() int { return len(r.commands) }

// Count returns the number of commands of type t.
func (r *Recording) Count(t CommandType) int {
	n := 0
	for _, cmd := range r.commands {
		if cmd.Type() == t {
			n++
		}
	}
	return n
}

// Playback replays the recording to ctx. Programs are linked against ctx.
// Playback stops at the first error.
func (r *Recording) Playback(ctx device.Context) error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	for i, cmd := range r.commands {
		if err := replay(ctx, cmd); err != nil {
			return fmt.Errorf("recording: playback command %d (%s): %w", i, cmd.Type(), err)
		}
	}
	return nil
}

func replay(ctx device.Context, cmd Command) error {
	switch c := cmd.(type) {
	case BeginPassCommand:
		return ctx.BeginPass(c.Desc)
	case EndPassCommand:
		return ctx.EndPass()
	case ApplyStateCommand:
		ctx.ApplyState(c.State)
	case ResetStateCommand:
		ctx.ResetState(c.Kind)
	case EnableCommand:
		ctx.Enable(c.Cap)
	case DisableCommand:
		ctx.Disable(c.Cap)
	case CompileProgramCommand:
		return c.Program.Link(ctx)
	case BindGeometryCommand:
		return ctx.BindGeometry(c.Geometry)
	case SetMatricesCommand:
		ctx.SetMatrices(c.World, c.View, c.Projection)
	case SetUniformsCommand:
		u := shader.NewUniforms()
		for _, v := range c.Values {
			u.Set(v)
		}
		ctx.SetUniforms(u)
	case DrawArraysCommand:
		return ctx.DrawArrays(c.Topology, c.First, c.Count, c.Instances)
	case DrawElementsCommand:
		if rd, ok := ctx.(primitive.RangeDrawer); ok && c.Ranged() {
			return rd.DrawRangeElements(c.Topology, c.Indices, c.Start, c.End, c.First, c.Count, c.Instances, c.BaseVertex)
		}
		return ctx.DrawElements(c.Topology, c.Indices, c.First, c.Count, c.Instances, c.BaseVertex)
	}
	return ctx.Err()
}
