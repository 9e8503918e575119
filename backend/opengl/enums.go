//go:build !nogl

package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/g3d/primitive"
	"github.com/gogpu/g3d/state"
)

// glContextLost is GL_CONTEXT_LOST, which the 4.1 core bindings lack.
const glContextLost = 0x0507

func compareFunc(f gputypes.CompareFunction) uint32 {
	switch f {
	case gputypes.CompareFunctionNever:
		return gl.NEVER
	case gputypes.CompareFunctionLess:
		return gl.LESS
	case gputypes.CompareFunctionEqual:
		return gl.EQUAL
	case gputypes.CompareFunctionLessEqual:
		return gl.LEQUAL
	case gputypes.CompareFunctionGreater:
		return gl.GREATER
	case gputypes.CompareFunctionNotEqual:
		return gl.NOTEQUAL
	case gputypes.CompareFunctionGreaterEqual:
		return gl.GEQUAL
	}
	return gl.ALWAYS
}

func blendFactor(f gputypes.BlendFactor) uint32 {
	switch f {
	case gputypes.BlendFactorZero:
		return gl.ZERO
	case gputypes.BlendFactorSrc:
		return gl.SRC_COLOR
	case gputypes.BlendFactorOneMinusSrc:
		return gl.ONE_MINUS_SRC_COLOR
	case gputypes.BlendFactorSrcAlpha:
		return gl.SRC_ALPHA
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case gputypes.BlendFactorDst:
		return gl.DST_COLOR
	case gputypes.BlendFactorOneMinusDst:
		return gl.ONE_MINUS_DST_COLOR
	case gputypes.BlendFactorDstAlpha:
		return gl.DST_ALPHA
	case gputypes.BlendFactorOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	case gputypes.BlendFactorSrcAlphaSaturated:
		return gl.SRC_ALPHA_SATURATE
	case gputypes.BlendFactorConstant:
		return gl.CONSTANT_COLOR
	case gputypes.BlendFactorOneMinusConstant:
		return gl.ONE_MINUS_CONSTANT_COLOR
	}
	return gl.ONE
}

func blendOperation(op gputypes.BlendOperation) uint32 {
	switch op {
	case gputypes.BlendOperationSubtract:
		return gl.FUNC_SUBTRACT
	case gputypes.BlendOperationReverseSubtract:
		return gl.FUNC_REVERSE_SUBTRACT
	case gputypes.BlendOperationMin:
		return gl.MIN
	case gputypes.BlendOperationMax:
		return gl.MAX
	}
	return gl.FUNC_ADD
}

// cullFace maps a cull mode. CullModeNone has no GL face; the caller
// disables culling instead.
func cullFace(m gputypes.CullMode) (uint32, bool) {
	switch m {
	case gputypes.CullModeFront:
		return gl.FRONT, true
	case gputypes.CullModeBack:
		return gl.BACK, true
	}
	return 0, false
}

func frontFace(f gputypes.FrontFace) uint32 {
	if f == gputypes.FrontFaceCW {
		return gl.CW
	}
	return gl.CCW
}

func polygonMode(m state.FillMode) uint32 {
	switch m {
	case state.FillLine:
		return gl.LINE
	case state.FillPoint:
		return gl.POINT
	}
	return gl.FILL
}

func stencilOperation(op state.StencilOperation) uint32 {
	switch op {
	case state.StencilZero:
		return gl.ZERO
	case state.StencilReplace:
		return gl.REPLACE
	case state.StencilIncrementClamp:
		return gl.INCR
	case state.StencilDecrementClamp:
		return gl.DECR
	case state.StencilInvert:
		return gl.INVERT
	case state.StencilIncrementWrap:
		return gl.INCR_WRAP
	case state.StencilDecrementWrap:
		return gl.DECR_WRAP
	}
	return gl.KEEP
}

var capabilities = map[state.Capability]uint32{
	state.CapDepthTest:             gl.DEPTH_TEST,
	state.CapBlend:                 gl.BLEND,
	state.CapCullFace:              gl.CULL_FACE,
	state.CapStencilTest:           gl.STENCIL_TEST,
	state.CapScissorTest:           gl.SCISSOR_TEST,
	state.CapPolygonOffsetFill:     gl.POLYGON_OFFSET_FILL,
	state.CapPolygonOffsetLine:     gl.POLYGON_OFFSET_LINE,
	state.CapPolygonOffsetPoint:    gl.POLYGON_OFFSET_POINT,
	state.CapMultisample:           gl.MULTISAMPLE,
	state.CapSampleAlphaToCoverage: gl.SAMPLE_ALPHA_TO_COVERAGE,
	state.CapLineSmooth:            gl.LINE_SMOOTH,
	state.CapProgramPointSize:      gl.PROGRAM_POINT_SIZE,
	state.CapPrimitiveRestart:      gl.PRIMITIVE_RESTART,
}

// capability maps a single capability to its GL enum.
func capability(c state.Capability) (uint32, bool) {
	if n := c.ClipPlane(); n >= 0 {
		return gl.CLIP_DISTANCE0 + uint32(n), true
	}
	e, ok := capabilities[c]
	return e, ok
}

// drawMode maps a topology. Quads, QuadStrip and Polygon report false and
// are triangulated.
func drawMode(t primitive.Topology) (uint32, bool) {
	switch t {
	case primitive.Points:
		return gl.POINTS, true
	case primitive.Lines:
		return gl.LINES, true
	case primitive.LineLoop:
		return gl.LINE_LOOP, true
	case primitive.LineStrip:
		return gl.LINE_STRIP, true
	case primitive.Triangles:
		return gl.TRIANGLES, true
	case primitive.TriangleStrip:
		return gl.TRIANGLE_STRIP, true
	case primitive.TriangleFan:
		return gl.TRIANGLE_FAN, true
	}
	return gl.TRIANGLES, false
}

func indexType(t primitive.IndexType) uint32 {
	switch t {
	case primitive.IndexUint8:
		return gl.UNSIGNED_BYTE
	case primitive.IndexUint16:
		return gl.UNSIGNED_SHORT
	}
	return gl.UNSIGNED_INT
}

// fatalError reports whether a glGetError code means the context is gone.
func fatalError(code uint32) bool {
	return code == glContextLost || code == gl.OUT_OF_MEMORY
}
