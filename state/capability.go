package state

import (
	"iter"
	"math/bits"
	"strconv"
	"strings"
)

// Capability is a graphics-context feature that is switched on or off
// rather than parameterized.
type Capability uint32

const (
	CapDepthTest Capability = 1 << iota
	CapBlend
	CapCullFace
	CapStencilTest
	CapScissorTest
	CapPolygonOffsetFill
	CapPolygonOffsetLine
	CapPolygonOffsetPoint
	CapMultisample
	CapSampleAlphaToCoverage
	CapLineSmooth
	CapProgramPointSize
	CapPrimitiveRestart
	CapClipDistance0
)

// NumCapabilities is the number of distinct capabilities.
const NumCapabilities = 13 + MaxClipPlanes

// AllCapabilities has every capability bit set.
const AllCapabilities Capability = 1<<NumCapabilities - 1

// ClipDistance returns the capability enabling clip plane n.
func ClipDistance(n int) Capability {
	return CapClipDistance0 << n
}

var capabilityNames = [...]string{
	"DepthTest",
	"Blend",
	"CullFace",
	"StencilTest",
	"ScissorTest",
	"PolygonOffsetFill",
	"PolygonOffsetLine",
	"PolygonOffsetPoint",
	"Multisample",
	"SampleAlphaToCoverage",
	"LineSmooth",
	"ProgramPointSize",
	"PrimitiveRestart",
}

// String returns the string representation of a single capability.
func (c Capability) String() string {
	if bits.OnesCount32(uint32(c)) != 1 {
		return "Capability(" + strconv.FormatUint(uint64(c), 2) + ")"
	}
	i := bits.TrailingZeros32(uint32(c))
	if i < len(capabilityNames) {
		return capabilityNames[i]
	}
	if i < NumCapabilities {
		return "ClipDistance" + strconv.Itoa(i-len(capabilityNames))
	}
	return "Capability(" + strconv.Itoa(i) + ")"
}

// ClipPlane returns the plane number of a clip-distance capability, or -1.
func (c Capability) ClipPlane() int {
	if bits.OnesCount32(uint32(c)) != 1 || c < CapClipDistance0 || c > AllCapabilities {
		return -1
	}
	return bits.TrailingZeros32(uint32(c)) - bits.TrailingZeros32(uint32(CapClipDistance0))
}

// EnableSet is the set of capabilities a shader pass switches on. Every
// capability not in the set is switched off when the set is applied.
type EnableSet Capability

// NewEnableSet returns a set holding caps.
func NewEnableSet(caps ...Capability) EnableSet {
	var e EnableSet
	e.Enable(caps...)
	return e
}

// Enable adds capabilities.
func (e *EnableSet) Enable(caps ...Capability) {
	for _, c := range caps {
		*e |= EnableSet(c & AllCapabilities)
	}
}

// Disable removes capabilities.
func (e *EnableSet) Disable(caps ...Capability) {
	for _, c := range caps {
		*e &^= EnableSet(c)
	}
}

// Has reports whether every capability in c is enabled.
func (e EnableSet) Has(c Capability) bool {
	return Capability(e)&c == c
}

// Len returns the number of enabled capabilities.
func (e EnableSet) Len() int {
	return bits.OnesCount32(uint32(e))
}

// All iterates over the enabled capabilities in bit order.
func (e EnableSet) All() iter.Seq[Capability] {
	return func(yield func(Capability) bool) {
		for v := uint32(e); v != 0; v &= v - 1 {
			if !yield(Capability(v & -v)) {
				return
			}
		}
	}
}

// String lists the enabled capabilities.
func (e EnableSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for c := range e.All() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(c.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
