// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/g3d"
	"github.com/gogpu/g3d/device"
	"github.com/gogpu/g3d/scene"
)

// Phase is the step a Renderer is executing.
type Phase uint8

const (
	// PhaseIdle means no pass is running.
	PhaseIdle Phase = iota

	// PhasePreRenderingCallbacks runs the RendererStarted callbacks and
	// begins the pass.
	PhasePreRenderingCallbacks

	// PhaseBindGeometry makes the token's vertex arrays current.
	PhaseBindGeometry

	// PhaseApplyStateDiff applies the difference between the token's states
	// and the context's tracker.
	PhaseApplyStateDiff

	// PhaseIssueDraw renders the enabled primitive sets.
	PhaseIssueDraw

	// PhasePostRenderingCallbacks ends the pass and runs the
	// RendererFinished callbacks.
	PhasePostRenderingCallbacks
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhasePreRenderingCallbacks:
		return "PreRenderingCallbacks"
	case PhaseBindGeometry:
		return "BindGeometry"
	case PhaseApplyStateDiff:
		return "ApplyStateDiff"
	case PhaseIssueDraw:
		return "IssueDraw"
	case PhasePostRenderingCallbacks:
		return "PostRenderingCallbacks"
	default:
		return "Unknown"
	}
}

// Stats describes one pass.
type Stats struct {
	// Tokens is the queue length.
	Tokens int

	// Culled counts actors rejected before the queue was built.
	Culled int

	// Drawn counts tokens whose sets were rendered.
	Drawn int

	// Skipped counts tokens rejected by the renderer's enable mask or by a
	// resource error.
	Skipped int

	// ResourceErrors counts tokens skipped because of a resource error.
	ResourceErrors int

	DrawCalls    int
	Triangles    int
	StateChanges int
}

// Add returns the field-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Tokens:         s.Tokens + o.Tokens,
		Culled:         s.Culled + o.Culled,
		Drawn:          s.Drawn + o.Drawn,
		Skipped:        s.Skipped + o.Skipped,
		ResourceErrors: s.ResourceErrors + o.ResourceErrors,
		DrawCalls:      s.DrawCalls + o.DrawCalls,
		Triangles:      s.Triangles + o.Triangles,
		StateChanges:   s.StateChanges + o.StateChanges,
	}
}

// Renderer draws a sorted queue into one render pass.
type Renderer struct {
	name       string
	enableMask uint32
	clear      *device.ClearFlags
	callbacks  Callbacks
	owner      Abstract
	log        *slog.Logger

	phase   Phase
	running bool
	stats   Stats
}

// NewRenderer returns a renderer drawing every layer and clearing as the
// camera says.
func NewRenderer(name string) *Renderer {
	return &Renderer{name: name, enableMask: scene.AllLayers}
}

// Name returns the renderer name, used as the pass label.
func (r *Renderer) Name() string { return r.name }

// EnableMask returns the layers drawn by the renderer.
func (r *Renderer) EnableMask() uint32 { return r.enableMask }

// SetEnableMask restricts the renderer to the given layers.
func (r *Renderer) SetEnableMask(mask uint32) { r.enableMask = mask }

// SetClearFlags overrides the camera's clear flags for this renderer's pass.
func (r *Renderer) SetClearFlags(f device.ClearFlags) { r.clear = &f }

// ClearFlags returns the override set by SetClearFlags, if any.
func (r *Renderer) ClearFlags() (device.ClearFlags, bool) {
	if r.clear == nil {
		return 0, false
	}
	return *r.clear, true
}

// Callbacks returns the chain receiving RendererStarted and
// RendererFinished.
func (r *Renderer) Callbacks() *Callbacks { return &r.callbacks }

// Phase returns the current phase, PhaseIdle outside Render.
func (r *Renderer) Phase() Phase { return r.phase }

// Stats returns the statistics of the last pass, complete or not.
func (r *Renderer) Stats() Stats { return r.stats }

func (r *Renderer) logger() *slog.Logger {
	if r.log != nil {
		return r.log
	}
	return g3d.Logger()
}

// Render draws the tokens of q in order.
//
// Tokens failing on a missing program, a link error or invalid geometry are
// skipped and logged. A fatal context error aborts the pass: the context's
// tracker is invalidated and the error is returned. Calling Render from one
// of the renderer's own callbacks returns ErrPassInProgress.
func (r *Renderer) Render(ctx device.Context, q *Queue, cam *scene.Camera) (Stats, error) {
	if r.running {
		return Stats{}, ErrPassInProgress
	}
	if cam == nil {
		return Stats{}, ErrNoCamera
	}
	r.running = true
	defer func() {
		r.running = false
		r.phase = PhaseIdle
	}()

	st := Stats{Tokens: q.Len()}
	r.stats = st
	if err := ctx.Validate(); err != nil {
		return st, r.abort(ctx, err)
	}

	r.phase = PhasePreRenderingCallbacks
	r.callbacks.Dispatch(RendererStarted, r.owner)
	desc := cam.PassDescriptor(r.name)
	if r.clear != nil {
		desc.Clear = *r.clear
	}
	if err := ctx.BeginPass(desc); err != nil {
		return st, r.abort(ctx, err)
	}

	view, proj := cam.View(), cam.Projection()
	tokens := q.Tokens()
	for i := range tokens {
		tok := &tokens[i]
		if tok.Actor.EnableMask&r.enableMask == 0 {
			st.Skipped++
			continue
		}
		err := r.draw(ctx, tok, view, proj, &st)
		if err == nil {
			err = ctx.Err()
		}
		if err == nil {
			st.Drawn++
			continue
		}
		if device.IsFatal(err) {
			r.stats = st
			return st, r.abort(ctx, err)
		}
		st.Skipped++
		st.ResourceErrors++
		r.logger().Warn("render: entry skipped",
			"renderer", r.name, "actor", tok.Actor.Name, "pass", tok.Pass, "err", err)
	}

	r.phase = PhasePostRenderingCallbacks
	if err := ctx.EndPass(); err != nil {
		r.stats = st
		return st, r.abort(ctx, err)
	}
	r.stats = st
	r.callbacks.Dispatch(RendererFinished, r.owner)
	r.logger().Debug("render: pass finished",
		"renderer", r.name, "tokens", st.Tokens, "drawn", st.Drawn,
		"skipped", st.Skipped, "draws", st.DrawCalls, "states", st.StateChanges)
	return st, nil
}

// draw runs one token through BindGeometry, ApplyStateDiff and IssueDraw.
func (r *Renderer) draw(ctx device.Context, tok *Token, view, proj mgl32.Mat4, st *Stats) error {
	a := tok.Actor
	p := tok.Program()
	if p == nil {
		return &device.ResourceError{Kind: device.ErrProgramNotReady, Actor: a.Name, Err: errNoProgram}
	}
	if err := p.Link(ctx); err != nil {
		return &device.ResourceError{Kind: device.ErrProgramNotReady, Actor: a.Name, Err: err}
	}
	g := a.Geometry
	if g == nil {
		return &device.ResourceError{Kind: device.ErrInvalidGeometry, Actor: a.Name, Err: errNoGeometry}
	}
	if err := g.Validate(); err != nil {
		return &device.ResourceError{Kind: device.ErrInvalidGeometry, Actor: a.Name, Err: err}
	}

	r.phase = PhaseBindGeometry
	if err := ctx.BindGeometry(g); err != nil {
		return &device.ResourceError{Kind: device.ErrInvalidGeometry, Actor: a.Name, Err: err}
	}

	r.phase = PhaseApplyStateDiff
	ch := ctx.Tracker().Apply(ctx, tok.Shader.Enables, tok.Shader.States)
	st.StateChanges += ch.Total()
	ctx.SetMatrices(tok.World, view, proj)
	ctx.SetUniforms(tok.Shader.Uniforms)
	ctx.SetUniforms(a.Uniforms)

	r.phase = PhaseIssueDraw
	for _, s := range g.Sets() {
		if !s.Enabled() || s.IndexCount() == 0 {
			continue
		}
		if err := s.Render(ctx); err != nil {
			return &device.ResourceError{Kind: device.ErrInvalidGeometry, Actor: a.Name, Err: err}
		}
		st.DrawCalls++
		if n := s.TriangleCount(); n > 0 {
			st.Triangles += n * s.Instances()
		}
	}
	return nil
}

// abort invalidates the tracker so the next pass reapplies every state.
func (r *Renderer) abort(ctx device.Context, err error) error {
	ctx.Tracker().Invalidate()
	r.logger().Error("render: pass aborted", "renderer", r.name, "phase", r.phase, "err", err)
	return fmt.Errorf("render: renderer %q: %w", r.name, err)
}
