//go:build !nogpu

package wgpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/g3d/cache"
	"github.com/gogpu/g3d/primitive"
)

// bufferCacheSize bounds the number of cached vertex and index buffers.
const bufferCacheSize = 1024

// gpuBuffer is one uploaded vertex or index buffer.
type gpuBuffer struct {
	buf     hal.Buffer
	size    uint64
	version uint64
}

// buffers uploads vertex and index data keyed by buffer identity and
// re-uploads when the version changes.
type buffers struct {
	device hal.Device
	queue  hal.Queue
	lru    *cache.LRU[uint64, *gpuBuffer]

	// dead buffers are destroyed once the pass referencing them ended.
	dead []hal.Buffer

	uploads int
	scratch []byte
}

func newBuffers(device hal.Device, queue hal.Queue) *buffers {
	b := &buffers{
		device: device,
		queue:  queue,
		lru:    cache.New[uint64, *gpuBuffer](bufferCacheSize),
	}
	b.lru.OnEvict(func(_ uint64, gb *gpuBuffer) {
		b.dead = append(b.dead, gb.buf)
	})
	return b
}

// upload makes the current revision of pb resident and returns its GPU
// buffer. data is encoded on demand.
func (b *buffers) upload(pb *primitive.Buffer, usage gputypes.BufferUsage, label string, data func() []byte) (hal.Buffer, error) {
	id := pb.ID()
	gb, ok := b.lru.Get(id)
	if ok && gb.version == pb.Version() {
		return gb.buf, nil
	}
	raw := pad4(data(), &b.scratch)
	size := uint64(max(len(raw), 4))
	if !ok || gb.size < size {
		buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
			Label: label,
			Size:  size,
			Usage: usage | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, fmt.Errorf("wgpu: create buffer %q: %w", label, err)
		}
		if ok {
			b.dead = append(b.dead, gb.buf)
		}
		gb = &gpuBuffer{buf: buf, size: size}
		b.lru.Set(id, gb)
	}
	if len(raw) > 0 {
		if err := b.queue.WriteBuffer(gb.buf, 0, raw); err != nil {
			return nil, fmt.Errorf("wgpu: write buffer %q: %w", label, err)
		}
	}
	gb.version = pb.Version()
	b.uploads++
	return gb.buf, nil
}

// transient uploads data into a buffer that lives until the end of the
// current pass.
func (b *buffers) transient(usage gputypes.BufferUsage, label string, data []byte) (hal.Buffer, error) {
	raw := pad4(data, &b.scratch)
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(max(len(raw), 4)),
		Usage: usage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create buffer %q: %w", label, err)
	}
	b.dead = append(b.dead, buf)
	if len(raw) > 0 {
		if err := b.queue.WriteBuffer(buf, 0, raw); err != nil {
			return nil, fmt.Errorf("wgpu: write buffer %q: %w", label, err)
		}
	}
	return buf, nil
}

func (b *buffers) release() {
	for _, buf := range b.dead {
		b.device.DestroyBuffer(buf)
	}
	clear(b.dead)
	b.dead = b.dead[:0]
}

func (b *buffers) destroy() {
	b.lru.Clear()
	b.release()
}

// pad4 returns data padded with zeros to a multiple of four bytes, as
// WriteBuffer requires.
func pad4(data []byte, scratch *[]byte) []byte {
	if len(data)%4 == 0 {
		return data
	}
	s := append((*scratch)[:0], data...)
	for len(s)%4 != 0 {
		s = append(s, 0)
	}
	*scratch = s
	return s
}

// Uniform block layout of every draw.
const (
	matrixBytes = 64

	// paramSlots is the number of vec4 slots for extra uniforms.
	paramSlots = 20

	uniformBlockSize = 3*matrixBytes + paramSlots*16

	// uniformStride keeps every block at a 256-byte aligned offset.
	uniformStride = (uniformBlockSize + 255) &^ 255

	blocksPerChunk = 128
	chunkSize      = uniformStride * blocksPerChunk
)

// uniformRing hands out one uniform block per draw. Chunks are kept
// across passes, the ring rewinds at the start of each pass.
type uniformRing struct {
	device hal.Device
	queue  hal.Queue
	layout hal.BindGroupLayout

	chunks []hal.Buffer
	next   int

	// groups are bind groups of the current pass.
	groups []hal.BindGroup
	block  []byte
}

func (u *uniformRing) rewind() { u.next = 0 }

// bind writes one block and returns a bind group pointing at it.
func (u *uniformRing) bind(world, view, proj mgl32.Mat4, params []float32) (hal.BindGroup, error) {
	chunk, slot := u.next/blocksPerChunk, u.next%blocksPerChunk
	if chunk == len(u.chunks) {
		buf, err := u.device.CreateBuffer(&hal.BufferDescriptor{
			Label: fmt.Sprintf("g3d uniforms %d", chunk),
			Size:  chunkSize,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, fmt.Errorf("wgpu: create uniform buffer: %w", err)
		}
		u.chunks = append(u.chunks, buf)
	}
	buf := u.chunks[chunk]
	offset := uint64(slot * uniformStride)

	u.block = encodeBlock(u.block[:0], world, view, proj, params)
	if err := u.queue.WriteBuffer(buf, offset, u.block); err != nil {
		return nil, fmt.Errorf("wgpu: write uniform block: %w", err)
	}

	bg, err := u.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "g3d uniforms",
		Layout: u.layout,
		Entries: []gputypes.BindGroupEntry{{
			Binding: 0,
			Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(),
				Offset: offset,
				Size:   uniformBlockSize,
			},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create uniform bind group: %w", err)
	}
	u.groups = append(u.groups, bg)
	u.next++
	return bg, nil
}

func (u *uniformRing) release() {
	for _, bg := range u.groups {
		u.device.DestroyBindGroup(bg)
	}
	clear(u.groups)
	u.groups = u.groups[:0]
}

func (u *uniformRing) destroy() {
	u.release()
	for _, buf := range u.chunks {
		u.device.DestroyBuffer(buf)
	}
	u.chunks = nil
}

// encodeBlock appends the uniform block: three matrices followed by
// paramSlots vec4 slots. Extra params are dropped, missing ones are zero.
func encodeBlock(dst []byte, world, view, proj mgl32.Mat4, params []float32) []byte {
	for _, m := range [...]mgl32.Mat4{world, view, proj} {
		for _, f := range m {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
		}
	}
	n := min(len(params), paramSlots*4)
	for _, f := range params[:n] {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	for range paramSlots*4 - n {
		dst = binary.LittleEndian.AppendUint32(dst, 0)
	}
	return dst
}
