package primitive

import "sync/atomic"

// nextBufferID hands out process-unique buffer identities.
var nextBufferID atomic.Uint64

// BufferKey identifies one uploaded revision of a Buffer.
// Graphics contexts key their GPU object caches by it.
type BufferKey struct {
	ID      uint64
	Version uint64
}

// Buffer is the bookkeeping half of a GPU buffer: a stable identity plus a
// version that every explicit data update bumps. A context that uploaded
// revision N must re-upload when it sees revision N+1.
//
// The zero value is ready to use.
type Buffer struct {
	id      uint64
	version uint64
}

// ID returns the buffer identity, assigning one on first use.
func (b *Buffer) ID() uint64 {
	if b.id == 0 {
		b.id = nextBufferID.Add(1)
	}
	return b.id
}

// Version returns the current data revision.
func (b *Buffer) Version() uint64 {
	return b.version
}

// Key returns the cache key of the current revision.
func (b *Buffer) Key() BufferKey {
	return BufferKey{ID: b.ID(), Version: b.version}
}

// Invalidate marks the data as changed. Cached GPU handles for older
// revisions become stale.
func (b *Buffer) Invalidate() {
	b.version++
}
