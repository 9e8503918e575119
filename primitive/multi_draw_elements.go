package primitive

// MultiDrawElements draws several index ranges of one index buffer, each
// with its own base vertex, as a single set.
type MultiDrawElements[T Index] struct {
	base
	indices      Indices[T]
	counts       []int
	baseVertices []int
	starts       []int
	total        int
}

// NewMultiDrawElements creates a multi-draw set. counts[j] indices are drawn
// for sub-draw j, consecutive in indices. baseVertices may be nil.
func NewMultiDrawElements[T Index](t Topology, indices []T, counts, baseVertices []int) *MultiDrawElements[T] {
	m := &MultiDrawElements[T]{base: newBase(t)}
	m.indices.data = indices
	m.indices.restartIndex = ^T(0)
	m.SetCounts(counts, baseVertices)
	return m
}

// SetIndices replaces the index data and invalidates uploaded buffers.
func (m *MultiDrawElements[T]) SetIndices(indices []T) {
	m.indices.set(indices)
	m.SetCounts(m.counts, m.baseVertices)
}

// SetCounts replaces the per-draw index counts and base vertices.
// Counts that run past the end of the index data are truncated.
func (m *MultiDrawElements[T]) SetCounts(counts, baseVertices []int) {
	m.counts = append(m.counts[:0], counts...)
	m.baseVertices = m.baseVertices[:0]
	for j := range m.counts {
		bv := 0
		if j < len(baseVertices) {
			bv = baseVertices[j]
		}
		m.baseVertices = append(m.baseVertices, bv)
	}
	m.starts = m.starts[:0]
	off := 0
	for j, c := range m.counts {
		c = min(max(c, 0), len(m.indices.data)-off)
		m.counts[j] = c
		m.starts = append(m.starts, off)
		off += c
	}
	m.total = off
}

// Draws returns the number of sub-draws.
func (m *MultiDrawElements[T]) Draws() int { return len(m.counts) }

// Draw returns the first index position, index count and base vertex of
// sub-draw j.
func (m *MultiDrawElements[T]) Draw(j int) (first, count, baseVertex int) {
	return m.starts[j], m.counts[j], m.baseVertices[j]
}

// IndexData returns the index view handed to drawers.
func (m *MultiDrawElements[T]) IndexData() IndexData { return &m.indices }

// Buffer returns the index buffer bookkeeping.
func (m *MultiDrawElements[T]) Buffer() *Buffer { return &m.indices.buf }

// SetTopology changes the topology and invalidates uploaded buffers.
func (m *MultiDrawElements[T]) SetTopology(t Topology) {
	m.topology = t
	m.indices.buf.Invalidate()
}

// IndexCount returns the number of indices over all sub-draws.
func (m *MultiDrawElements[T]) IndexCount() int { return m.total }

// Index returns the i-th index over all sub-draws, base vertex applied.
func (m *MultiDrawElements[T]) Index(i int) int {
	j := m.drawAt(i)
	return int(m.indices.data[i]) + m.baseVertices[j]
}

// drawAt returns the sub-draw containing index position i.
func (m *MultiDrawElements[T]) drawAt(i int) int {
	lo, hi := 0, len(m.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if m.starts[mid] <= i {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func (m *MultiDrawElements[T]) sum(count func(Topology, int) int) int {
	if count(m.topology, 0) < 0 {
		return -1
	}
	total := 0
	for _, c := range m.counts {
		total += count(m.topology, c)
	}
	return total
}

// TriangleCount returns the number of triangles over all sub-draws, or -1.
func (m *MultiDrawElements[T]) TriangleCount() int { return m.sum(TriangleCount) }

// LineCount returns the number of line segments over all sub-draws, or -1.
func (m *MultiDrawElements[T]) LineCount() int { return m.sum(LineCount) }

// PointCount returns the number of points over all sub-draws, or -1.
func (m *MultiDrawElements[T]) PointCount() int { return m.sum(PointCount) }

// Triangle returns the i-th triangle over all sub-draws.
func (m *MultiDrawElements[T]) Triangle(i int) (Triangle, bool) {
	if i < 0 || !m.topology.IsTriangles() {
		return NoTriangle, false
	}
	for j, c := range m.counts {
		n := TriangleCount(m.topology, c)
		if i < n {
			p, _ := positions(m.topology, i, c)
			off, bv := m.starts[j], m.baseVertices[j]
			return Triangle{
				int(m.indices.data[off+p[0]]) + bv,
				int(m.indices.data[off+p[1]]) + bv,
				int(m.indices.data[off+p[2]]) + bv,
			}, true
		}
		i -= n
	}
	return NoTriangle, false
}

// TriangleTo writes the i-th triangle into out.
func (m *MultiDrawElements[T]) TriangleTo(i int, out []int) bool { return triangleTo(m, i, out) }

// Render issues one DrawElements call per non-empty sub-draw.
func (m *MultiDrawElements[T]) Render(dr Drawer) error {
	if m.disabled {
		return nil
	}
	for j, c := range m.counts {
		if c == 0 {
			continue
		}
		if err := dr.DrawElements(m.topology, &m.indices, m.starts[j], c, m.Instances(), m.baseVertices[j]); err != nil {
			return err
		}
	}
	return nil
}

var (
	_ Set = (*MultiDrawElements[uint16])(nil)
	_ Set = (*MultiDrawElements[uint32])(nil)
)
