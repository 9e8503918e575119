package geometry

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/g3d/primitive"
)

// Attribute names a vertex array slot. The value doubles as the shader
// attribute location.
type Attribute uint8

const (
	Position Attribute = iota
	Normal
	Color
	TexCoord0
	TexCoord1
	TexCoord2
	TexCoord3

	// NumAttributes is the number of attribute slots.
	NumAttributes = int(TexCoord3) + 1
)

var attributeNames = [...]string{
	Position:  "Position",
	Normal:    "Normal",
	Color:     "Color",
	TexCoord0: "TexCoord0",
	TexCoord1: "TexCoord1",
	TexCoord2: "TexCoord2",
	TexCoord3: "TexCoord3",
}

// String returns the string representation of an Attribute.
func (a Attribute) String() string {
	if int(a) < len(attributeNames) {
		return attributeNames[a]
	}
	return "Unknown"
}

// VertexArray is per-vertex float32 data with 1 to 4 components.
type VertexArray struct {
	components int
	data       []float32
	buf        primitive.Buffer

	encoded        []byte
	encodedVersion uint64
	encodedValid   bool
}

// NewVertexArray creates an array. The slice is retained, not copied.
func NewVertexArray(components int, data []float32) *VertexArray {
	return &VertexArray{components: components, data: data}
}

// Components returns the number of floats per vertex.
func (v *VertexArray) Components() int { return v.components }

// Data returns the raw floats. Callers that modify them in place must call
// Invalidate afterwards.
func (v *VertexArray) Data() []float32 { return v.data }

// Len returns the number of vertices.
func (v *VertexArray) Len() int {
	if v.components <= 0 {
		return 0
	}
	return len(v.data) / v.components
}

// Set replaces the data and invalidates uploaded buffers.
func (v *VertexArray) Set(data []float32) {
	v.data = data
	v.buf.Invalidate()
}

// Invalidate marks the data as changed.
func (v *VertexArray) Invalidate() { v.buf.Invalidate() }

// Buffer returns the buffer bookkeeping.
func (v *VertexArray) Buffer() *primitive.Buffer { return &v.buf }

// Bytes returns the data encoded little-endian, cached per version.
func (v *VertexArray) Bytes() []byte {
	if v.encodedValid && v.encodedVersion == v.buf.Version() {
		return v.encoded
	}
	b := v.encoded[:0]
	for _, f := range v.data {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
	}
	v.encoded = b
	v.encodedVersion = v.buf.Version()
	v.encodedValid = true
	return b
}
