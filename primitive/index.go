package primitive

import (
	"encoding/binary"

	"github.com/gogpu/gputypes"
)

// Index is the set of integer types usable as vertex indices.
type Index interface {
	~uint8 | ~uint16 | ~uint32
}

// IndexType identifies the width of stored indices.
type IndexType uint8

const (
	IndexUint8 IndexType = iota + 1
	IndexUint16
	IndexUint32
)

// String returns the string representation of an IndexType.
func (t IndexType) String() string {
	switch t {
	case IndexUint8:
		return "Uint8"
	case IndexUint16:
		return "Uint16"
	case IndexUint32:
		return "Uint32"
	}
	return "Unknown"
}

// Size returns the size of one index in bytes.
func (t IndexType) Size() int {
	switch t {
	case IndexUint8:
		return 1
	case IndexUint16:
		return 2
	case IndexUint32:
		return 4
	}
	return 0
}

// GPU maps the index type to a WebGPU index format.
// WebGPU has no 8-bit indices, so IndexUint8 reports false.
func (t IndexType) GPU() (gputypes.IndexFormat, bool) {
	switch t {
	case IndexUint16:
		return gputypes.IndexFormatUint16, true
	case IndexUint32:
		return gputypes.IndexFormatUint32, true
	}
	return gputypes.IndexFormatUint32, false
}

// indexTypeOf derives the IndexType of T from its maximum value.
func indexTypeOf[T Index]() IndexType {
	switch uint64(^T(0)) {
	case 0xFF:
		return IndexUint8
	case 0xFFFF:
		return IndexUint16
	}
	return IndexUint32
}

// IndexData is the read-only view of an index buffer handed to a Drawer.
type IndexData interface {
	// Len returns the number of stored indices.
	Len() int

	// At returns the raw index at position i.
	At(i int) uint32

	// Type returns the width of stored indices.
	Type() IndexType

	// Bytes returns the indices encoded little-endian, ready for upload.
	// The slice is owned by the index data and reused between calls.
	Bytes() []byte

	// Buffer returns the versioned buffer bookkeeping.
	Buffer() *Buffer

	// RestartIndex returns the primitive restart index and whether restart is on.
	RestartIndex() (uint32, bool)
}

// Indices stores indices of type T along with their buffer bookkeeping.
type Indices[T Index] struct {
	data         []T
	buf          Buffer
	restart      bool
	restartIndex T

	encoded        []byte
	encodedVersion uint64
	encodedValid   bool
}

// Len returns the number of stored indices.
func (x *Indices[T]) Len() int { return len(x.data) }

// At returns the raw index at position i.
func (x *Indices[T]) At(i int) uint32 { return uint32(x.data[i]) }

// Type returns the width of stored indices.
func (x *Indices[T]) Type() IndexType { return indexTypeOf[T]() }

// Buffer returns the versioned buffer bookkeeping.
func (x *Indices[T]) Buffer() *Buffer { return &x.buf }

// RestartIndex returns the primitive restart index and whether restart is on.
func (x *Indices[T]) RestartIndex() (uint32, bool) { return uint32(x.restartIndex), x.restart }

// Bytes returns the indices encoded little-endian. The encoding is cached
// until the buffer version changes.
func (x *Indices[T]) Bytes() []byte {
	if x.encodedValid && x.encodedVersion == x.buf.Version() {
		return x.encoded
	}
	b := x.encoded[:0]
	switch x.Type() {
	case IndexUint8:
		for _, v := range x.data {
			b = append(b, byte(v))
		}
	case IndexUint16:
		for _, v := range x.data {
			b = binary.LittleEndian.AppendUint16(b, uint16(v))
		}
	default:
		for _, v := range x.data {
			b = binary.LittleEndian.AppendUint32(b, uint32(v))
		}
	}
	x.encoded = b
	x.encodedVersion = x.buf.Version()
	x.encodedValid = true
	return b
}

// set replaces the stored indices and invalidates the buffer.
func (x *Indices[T]) set(data []T) {
	x.data = data
	x.buf.Invalidate()
}

// isRestart reports whether v is the active restart index.
func (x *Indices[T]) isRestart(v T) bool {
	return x.restart && v == x.restartIndex
}

var (
	_ IndexData = (*Indices[uint8])(nil)
	_ IndexData = (*Indices[uint16])(nil)
	_ IndexData = (*Indices[uint32])(nil)
)
