//go:build !nogpu

package wgpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/g3d/geometry"
	"github.com/gogpu/g3d/shader"
	"github.com/gogpu/g3d/state"
)

// applied mirrors the render states and capabilities applied to the
// context. WebGPU has no per-state setters, the mirror is turned into a
// pipeline key at draw time.
type applied struct {
	states  [state.NumKinds]state.RenderState
	enables state.EnableSet
}

func newApplied() applied {
	var a applied
	for k := range state.Kind(state.NumKinds) {
		a.states[k] = state.Default(k)
	}
	return a
}

func (a *applied) set(rs state.RenderState) {
	if rs == nil || !rs.Kind().Valid() {
		return
	}
	a.states[rs.Kind()] = rs
}

func (a *applied) reset(k state.Kind) {
	if k.Valid() {
		a.states[k] = state.Default(k)
	}
}

func (a *applied) program() *shader.Program {
	if p, ok := a.states[state.KindProgram].(state.UseProgram); ok {
		return p.Program
	}
	return nil
}

func (a *applied) depthRange() state.DepthRange {
	r, _ := a.states[state.KindDepthRange].(state.DepthRange)
	return r
}

func (a *applied) blendColor() gputypes.Color {
	c, _ := a.states[state.KindBlendColor].(state.BlendColor)
	return c.Color
}

func (a *applied) stencilRef() uint32 {
	f, _ := a.states[state.KindStencilFunc].(state.StencilFunc)
	return uint32(f.Ref)
}

// vertexLayout records the component count of every bound attribute, 0 for
// an absent one.
type vertexLayout [geometry.NumAttributes]uint8

func layoutOf(g *geometry.Geometry) vertexLayout {
	var l vertexLayout
	for a := range geometry.Attribute(geometry.NumAttributes) {
		if v := g.Array(a); v != nil {
			l[a] = uint8(v.Components())
		}
	}
	return l
}

// pipelineKey holds everything that selects a distinct render pipeline.
// It is comparable and used as the pipeline cache key.
type pipelineKey struct {
	program  uint64
	topology gputypes.PrimitiveTopology
	layout   vertexLayout

	depthWrite   bool
	depthCompare gputypes.CompareFunction

	blend     bool
	blendFunc state.BlendFunc
	blendEq   state.BlendEquation
	colorMask gputypes.ColorWriteMask

	cull  gputypes.CullMode
	front gputypes.FrontFace

	stencil      bool
	stencilFunc  gputypes.CompareFunction
	stencilOp    state.StencilOp
	stencilRead  uint32
	stencilWrite uint32

	alphaToCoverage bool
}

// key derives the pipeline key of the applied state for one draw.
func (a *applied) key(program uint64, topo gputypes.PrimitiveTopology, layout vertexLayout) pipelineKey {
	k := pipelineKey{
		program:      program,
		topology:     topo,
		layout:       layout,
		depthCompare: gputypes.CompareFunctionAlways,
		cull:         gputypes.CullModeNone,
		stencilFunc:  gputypes.CompareFunctionAlways,
		stencilRead:  ^uint32(0),
		stencilWrite: ^uint32(0),
	}
	if front, ok := a.states[state.KindFrontFace].(state.FrontFace); ok {
		k.front = front.Face
	}
	if m, ok := a.states[state.KindColorMask].(state.ColorMask); ok {
		k.colorMask = colorWriteMask(m)
	}
	// A disabled depth test also disables depth writes.
	if a.enables.Has(state.CapDepthTest) {
		if f, ok := a.states[state.KindDepthFunc].(state.DepthFunc); ok {
			k.depthCompare = f.Func
		}
		if m, ok := a.states[state.KindDepthMask].(state.DepthMask); ok {
			k.depthWrite = m.Write
		}
	}
	if a.enables.Has(state.CapBlend) {
		k.blend = true
		k.blendFunc, _ = a.states[state.KindBlendFunc].(state.BlendFunc)
		k.blendEq, _ = a.states[state.KindBlendEquation].(state.BlendEquation)
	}
	if a.enables.Has(state.CapCullFace) {
		if c, ok := a.states[state.KindCullFace].(state.CullFace); ok {
			k.cull = c.Mode
		}
	}
	if a.enables.Has(state.CapStencilTest) {
		k.stencil = true
		f, _ := a.states[state.KindStencilFunc].(state.StencilFunc)
		k.stencilFunc = f.Func
		k.stencilRead = f.Mask
		k.stencilOp, _ = a.states[state.KindStencilOp].(state.StencilOp)
		if m, ok := a.states[state.KindStencilMask].(state.StencilMask); ok {
			k.stencilWrite = m.Mask
		}
	}
	k.alphaToCoverage = a.enables.Has(state.CapSampleAlphaToCoverage)
	return k
}

func colorWriteMask(m state.ColorMask) gputypes.ColorWriteMask {
	var w gputypes.ColorWriteMask
	if m.R {
		w |= gputypes.ColorWriteMaskRed
	}
	if m.G {
		w |= gputypes.ColorWriteMaskGreen
	}
	if m.B {
		w |= gputypes.ColorWriteMaskBlue
	}
	if m.A {
		w |= gputypes.ColorWriteMaskAlpha
	}
	return w
}

func stencilOperation(op state.StencilOperation) hal.StencilOperation {
	switch op {
	case state.StencilZero:
		return hal.StencilOperationZero
	case state.StencilReplace:
		return hal.StencilOperationReplace
	case state.StencilIncrementClamp:
		return hal.StencilOperationIncrementClamp
	case state.StencilDecrementClamp:
		return hal.StencilOperationDecrementClamp
	case state.StencilInvert:
		return hal.StencilOperationInvert
	case state.StencilIncrementWrap:
		return hal.StencilOperationIncrementWrap
	case state.StencilDecrementWrap:
		return hal.StencilOperationDecrementWrap
	}
	return hal.StencilOperationKeep
}

func (k pipelineKey) blendState() *gputypes.BlendState {
	if !k.blend {
		return nil
	}
	return &gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: k.blendFunc.SrcRGB,
			DstFactor: k.blendFunc.DstRGB,
			Operation: k.blendEq.RGB,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: k.blendFunc.SrcAlpha,
			DstFactor: k.blendFunc.DstAlpha,
			Operation: k.blendEq.Alpha,
		},
	}
}

func (k pipelineKey) stencilFace() hal.StencilFaceState {
	if !k.stencil {
		return hal.StencilFaceState{
			Compare:     gputypes.CompareFunctionAlways,
			FailOp:      hal.StencilOperationKeep,
			DepthFailOp: hal.StencilOperationKeep,
			PassOp:      hal.StencilOperationKeep,
		}
	}
	return hal.StencilFaceState{
		Compare:     k.stencilFunc,
		FailOp:      stencilOperation(k.stencilOp.Fail),
		DepthFailOp: stencilOperation(k.stencilOp.DepthFail),
		PassOp:      stencilOperation(k.stencilOp.Pass),
	}
}

// vertexBuffers returns one buffer layout per bound attribute, in attribute
// order. The shader location is the attribute value.
func (l vertexLayout) vertexBuffers() []gputypes.VertexBufferLayout {
	var out []gputypes.VertexBufferLayout
	for a, n := range l {
		if n == 0 {
			continue
		}
		out = append(out, gputypes.VertexBufferLayout{
			ArrayStride: uint64(n) * 4,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{{
				Format:         vertexFormat(n),
				Offset:         0,
				ShaderLocation: uint32(a),
			}},
		})
	}
	return out
}

func vertexFormat(components uint8) gputypes.VertexFormat {
	switch components {
	case 1:
		return gputypes.VertexFormatFloat32
	case 2:
		return gputypes.VertexFormatFloat32x2
	case 3:
		return gputypes.VertexFormatFloat32x3
	}
	return gputypes.VertexFormatFloat32x4
}

// unsupported reports whether rs has no WebGPU equivalent and is kept
// without effect.
func unsupported(rs state.RenderState) bool {
	switch s := rs.(type) {
	case state.PolygonMode:
		return s.Mode != state.FillSolid
	case state.LineWidth:
		return s.Width != 1
	case state.PointSize:
		return s.Size != 1
	case state.PolygonOffset:
		return s != state.PolygonOffset{}
	case state.TextureUnit:
		return s.Texture != nil
	case state.ClipPlane:
		return s.Plane != [4]float32{}
	}
	return false
}
