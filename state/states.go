package state

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/g3d/shader"
)

// RenderState is one render-state value. Implementations are small
// comparable structs; Equal compares kind and parameters.
type RenderState interface {
	Kind() Kind
	Equal(other RenderState) bool
}

// Texture is a texture bound to a texture unit. Implementations must be
// comparable, typically pointers.
type Texture interface {
	TextureID() uint64
}

// FillMode selects how polygons are rasterized.
type FillMode uint8

const (
	FillSolid FillMode = iota
	FillLine
	FillPoint
)

// String returns the string representation of a FillMode.
func (m FillMode) String() string {
	switch m {
	case FillSolid:
		return "Solid"
	case FillLine:
		return "Line"
	case FillPoint:
		return "Point"
	}
	return "Unknown"
}

// StencilOperation is the action taken on a stencil value.
type StencilOperation uint8

const (
	StencilKeep StencilOperation = iota
	StencilZero
	StencilReplace
	StencilIncrementClamp
	StencilDecrementClamp
	StencilInvert
	StencilIncrementWrap
	StencilDecrementWrap
)

// UseProgram selects the GPU program. A nil Program means fixed function,
// which no modern context supports; entries without a program are skipped.
type UseProgram struct {
	Program *shader.Program
}

func (UseProgram) Kind() Kind { return KindProgram }

func (s UseProgram) Equal(o RenderState) bool {
	x, ok := o.(UseProgram)
	return ok && x.Program == s.Program
}

// DepthFunc is the depth test comparison.
type DepthFunc struct {
	Func gputypes.CompareFunction
}

func (DepthFunc) Kind() Kind { return KindDepthFunc }

func (s DepthFunc) Equal(o RenderState) bool {
	x, ok := o.(DepthFunc)
	return ok && x == s
}

// DepthMask enables or disables depth writes.
type DepthMask struct {
	Write bool
}

func (DepthMask) Kind() Kind { return KindDepthMask }

func (s DepthMask) Equal(o RenderState) bool {
	x, ok := o.(DepthMask)
	return ok && x == s
}

// DepthRange maps normalized depth to window depth.
type DepthRange struct {
	Near, Far float32
}

func (DepthRange) Kind() Kind { return KindDepthRange }

func (s DepthRange) Equal(o RenderState) bool {
	x, ok := o.(DepthRange)
	return ok && x == s
}

// BlendFunc selects the blend factors.
type BlendFunc struct {
	SrcRGB, DstRGB     gputypes.BlendFactor
	SrcAlpha, DstAlpha gputypes.BlendFactor
}

// AlphaBlend returns the classic non-premultiplied alpha blend factors.
func AlphaBlend() BlendFunc {
	return BlendFunc{
		SrcRGB:   gputypes.BlendFactorSrcAlpha,
		DstRGB:   gputypes.BlendFactorOneMinusSrcAlpha,
		SrcAlpha: gputypes.BlendFactorOne,
		DstAlpha: gputypes.BlendFactorOneMinusSrcAlpha,
	}
}

func (BlendFunc) Kind() Kind { return KindBlendFunc }

func (s BlendFunc) Equal(o RenderState) bool {
	x, ok := o.(BlendFunc)
	return ok && x == s
}

// BlendEquation selects the blend operations.
type BlendEquation struct {
	RGB, Alpha gputypes.BlendOperation
}

func (BlendEquation) Kind() Kind { return KindBlendEquation }

func (s BlendEquation) Equal(o RenderState) bool {
	x, ok := o.(BlendEquation)
	return ok && x == s
}

// BlendColor is the constant blend color.
type BlendColor struct {
	Color gputypes.Color
}

func (BlendColor) Kind() Kind { return KindBlendColor }

func (s BlendColor) Equal(o RenderState) bool {
	x, ok := o.(BlendColor)
	return ok && x == s
}

// ColorMask enables or disables writes per color channel.
type ColorMask struct {
	R, G, B, A bool
}

func (ColorMask) Kind() Kind { return KindColorMask }

func (s ColorMask) Equal(o RenderState) bool {
	x, ok := o.(ColorMask)
	return ok && x == s
}

// CullFace selects which faces are culled when CapCullFace is enabled.
type CullFace struct {
	Mode gputypes.CullMode
}

func (CullFace) Kind() Kind { return KindCullFace }

func (s CullFace) Equal(o RenderState) bool {
	x, ok := o.(CullFace)
	return ok && x == s
}

// FrontFace selects the winding of front faces.
type FrontFace struct {
	Face gputypes.FrontFace
}

func (FrontFace) Kind() Kind { return KindFrontFace }

func (s FrontFace) Equal(o RenderState) bool {
	x, ok := o.(FrontFace)
	return ok && x == s
}

// PolygonMode selects polygon rasterization.
type PolygonMode struct {
	Mode FillMode
}

func (PolygonMode) Kind() Kind { return KindPolygonMode }

func (s PolygonMode) Equal(o RenderState) bool {
	x, ok := o.(PolygonMode)
	return ok && x == s
}

// PolygonOffset is the depth offset applied when polygon offset is enabled.
type PolygonOffset struct {
	Factor, Units float32
}

func (PolygonOffset) Kind() Kind { return KindPolygonOffset }

func (s PolygonOffset) Equal(o RenderState) bool {
	x, ok := o.(PolygonOffset)
	return ok && x == s
}

// LineWidth is the rasterized line width.
type LineWidth struct {
	Width float32
}

func (LineWidth) Kind() Kind { return KindLineWidth }

func (s LineWidth) Equal(o RenderState) bool {
	x, ok := o.(LineWidth)
	return ok && x == s
}

// PointSize is the rasterized point size.
type PointSize struct {
	Size float32
}

func (PointSize) Kind() Kind { return KindPointSize }

func (s PointSize) Equal(o RenderState) bool {
	x, ok := o.(PointSize)
	return ok && x == s
}

// StencilFunc is the stencil test.
type StencilFunc struct {
	Func gputypes.CompareFunction
	Ref  int32
	Mask uint32
}

func (StencilFunc) Kind() Kind { return KindStencilFunc }

func (s StencilFunc) Equal(o RenderState) bool {
	x, ok := o.(StencilFunc)
	return ok && x == s
}

// StencilOp is the stencil update rule.
type StencilOp struct {
	Fail, DepthFail, Pass StencilOperation
}

func (StencilOp) Kind() Kind { return KindStencilOp }

func (s StencilOp) Equal(o RenderState) bool {
	x, ok := o.(StencilOp)
	return ok && x == s
}

// StencilMask is the stencil write mask.
type StencilMask struct {
	Mask uint32
}

func (StencilMask) Kind() Kind { return KindStencilMask }

func (s StencilMask) Equal(o RenderState) bool {
	x, ok := o.(StencilMask)
	return ok && x == s
}

// TextureUnit binds a texture to unit Unit. A nil Texture unbinds.
type TextureUnit struct {
	Unit    int
	Texture Texture
}

func (s TextureUnit) Kind() Kind { return TextureUnitKind(s.Unit) }

func (s TextureUnit) Equal(o RenderState) bool {
	x, ok := o.(TextureUnit)
	return ok && x.Unit == s.Unit && x.Texture == s.Texture
}

// ClipPlane is a user clip plane in eye space. The plane only clips while
// the matching CapClipDistance capability is enabled.
type ClipPlane struct {
	Index int
	Plane mgl32.Vec4
}

func (s ClipPlane) Kind() Kind { return ClipPlaneKind(s.Index) }

func (s ClipPlane) Equal(o RenderState) bool {
	x, ok := o.(ClipPlane)
	return ok && x == s
}

var defaults [NumKinds]RenderState

func init() {
	defaults[KindProgram] = UseProgram{}
	defaults[KindDepthFunc] = DepthFunc{Func: gputypes.CompareFunctionLess}
	defaults[KindDepthMask] = DepthMask{Write: true}
	defaults[KindDepthRange] = DepthRange{Near: 0, Far: 1}
	defaults[KindBlendFunc] = BlendFunc{
		SrcRGB:   gputypes.BlendFactorOne,
		DstRGB:   gputypes.BlendFactorZero,
		SrcAlpha: gputypes.BlendFactorOne,
		DstAlpha: gputypes.BlendFactorZero,
	}
	defaults[KindBlendEquation] = BlendEquation{RGB: gputypes.BlendOperationAdd, Alpha: gputypes.BlendOperationAdd}
	defaults[KindBlendColor] = BlendColor{}
	defaults[KindColorMask] = ColorMask{R: true, G: true, B: true, A: true}
	defaults[KindCullFace] = CullFace{Mode: gputypes.CullModeBack}
	defaults[KindFrontFace] = FrontFace{Face: gputypes.FrontFaceCCW}
	defaults[KindPolygonMode] = PolygonMode{Mode: FillSolid}
	defaults[KindPolygonOffset] = PolygonOffset{}
	defaults[KindLineWidth] = LineWidth{Width: 1}
	defaults[KindPointSize] = PointSize{Size: 1}
	defaults[KindStencilFunc] = StencilFunc{Func: gputypes.CompareFunctionAlways, Mask: ^uint32(0)}
	defaults[KindStencilOp] = StencilOp{}
	defaults[KindStencilMask] = StencilMask{Mask: ^uint32(0)}
	for n := range MaxTextureUnits {
		defaults[TextureUnitKind(n)] = TextureUnit{Unit: n}
	}
	for n := range MaxClipPlanes {
		defaults[ClipPlaneKind(n)] = ClipPlane{Index: n}
	}
}

// Default returns the state a freshly created graphics context has for
// kind k, or nil for an unknown kind.
func Default(k Kind) RenderState {
	if !k.Valid() {
		return nil
	}
	return defaults[k]
}
