package state

import "strconv"

// Kind identifies a render-state slot. A Set holds at most one state per
// Kind.
type Kind uint8

// MaxTextureUnits is the number of texture-unit kinds.
const MaxTextureUnits = 16

// MaxClipPlanes is the number of clip-plane kinds.
const MaxClipPlanes = 8

const (
	KindProgram Kind = iota
	KindDepthFunc
	KindDepthMask
	KindDepthRange
	KindBlendFunc
	KindBlendEquation
	KindBlendColor
	KindColorMask
	KindCullFace
	KindFrontFace
	KindPolygonMode
	KindPolygonOffset
	KindLineWidth
	KindPointSize
	KindStencilFunc
	KindStencilOp
	KindStencilMask
	KindTextureUnit0
	KindClipPlane0 = KindTextureUnit0 + MaxTextureUnits

	// NumKinds is the number of distinct kinds.
	NumKinds = int(KindClipPlane0) + MaxClipPlanes
)

var kindNames = [...]string{
	KindProgram:       "Program",
	KindDepthFunc:     "DepthFunc",
	KindDepthMask:     "DepthMask",
	KindDepthRange:    "DepthRange",
	KindBlendFunc:     "BlendFunc",
	KindBlendEquation: "BlendEquation",
	KindBlendColor:    "BlendColor",
	KindColorMask:     "ColorMask",
	KindCullFace:      "CullFace",
	KindFrontFace:     "FrontFace",
	KindPolygonMode:   "PolygonMode",
	KindPolygonOffset: "PolygonOffset",
	KindLineWidth:     "LineWidth",
	KindPointSize:     "PointSize",
	KindStencilFunc:   "StencilFunc",
	KindStencilOp:     "StencilOp",
	KindStencilMask:   "StencilMask",
}

// KindInvalid is returned for texture units and clip planes out of range.
// It is not Valid, so sets ignore states reporting it.
const KindInvalid = Kind(NumKinds)

// TextureUnitKind returns the kind of texture unit n, or KindInvalid when
// n is not in [0, MaxTextureUnits).
func TextureUnitKind(n int) Kind {
	if n < 0 || n >= MaxTextureUnits {
		return KindInvalid
	}
	return KindTextureUnit0 + Kind(n)
}

// ClipPlaneKind returns the kind of clip plane n, or KindInvalid when n is
// not in [0, MaxClipPlanes).
func ClipPlaneKind(n int) Kind {
	if n < 0 || n >= MaxClipPlanes {
		return KindInvalid
	}
	return KindClipPlane0 + Kind(n)
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return int(k) < NumKinds }

// IsTextureUnit reports whether k is a texture-unit kind.
func (k Kind) IsTextureUnit() bool { return k >= KindTextureUnit0 && k < KindClipPlane0 }

// IsClipPlane reports whether k is a clip-plane kind.
func (k Kind) IsClipPlane() bool { return k >= KindClipPlane0 && k.Valid() }

// Unit returns the unit or plane number of an indexed kind, -1 otherwise.
func (k Kind) Unit() int {
	switch {
	case k.IsTextureUnit():
		return int(k - KindTextureUnit0)
	case k.IsClipPlane():
		return int(k - KindClipPlane0)
	}
	return -1
}

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch {
	case k.IsTextureUnit():
		return "TextureUnit" + strconv.Itoa(k.Unit())
	case k.IsClipPlane():
		return "ClipPlane" + strconv.Itoa(k.Unit())
	case int(k) < len(kindNames):
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}
