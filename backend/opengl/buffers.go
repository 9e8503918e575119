//go:build !nogl

package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gogpu/g3d/cache"
	"github.com/gogpu/g3d/primitive"
)

// bufferCacheSize bounds the number of cached buffer objects.
const bufferCacheSize = 1024

type glBuffer struct {
	handle  uint32
	version uint64
}

// buffers keeps one GL buffer object per primitive.Buffer identity and
// re-specifies it when the version changes.
type buffers struct {
	lru     *cache.LRU[uint64, *glBuffer]
	uploads int
}

func newBuffers() *buffers {
	b := &buffers{lru: cache.New[uint64, *glBuffer](bufferCacheSize)}
	b.lru.OnEvict(func(_ uint64, gb *glBuffer) {
		gl.DeleteBuffers(1, &gb.handle)
	})
	return b
}

// bind binds the current revision of pb to target, uploading data first
// when the cached revision is stale.
func (b *buffers) bind(target uint32, pb *primitive.Buffer, data func() []byte) uint32 {
	id := pb.ID()
	gb, ok := b.lru.Get(id)
	if !ok {
		gb = &glBuffer{}
		gl.GenBuffers(1, &gb.handle)
		b.lru.Set(id, gb)
	}
	gl.BindBuffer(target, gb.handle)
	if ok && gb.version == pb.Version() {
		return gb.handle
	}
	specify(target, data(), gl.STATIC_DRAW)
	gb.version = pb.Version()
	b.uploads++
	return gb.handle
}

// specify replaces the data store of the buffer bound to target.
func specify(target uint32, data []byte, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data), gl.Ptr(data), usage)
}

func (b *buffers) destroy() { b.lru.Clear() }
