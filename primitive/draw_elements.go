package primitive

import (
	"cmp"
	"slices"
)

// run is a stretch of indices between restart markers.
type run struct {
	start int
	count int
}

// DrawElements draws vertices through an index buffer of type T.
//
// With primitive restart enabled the index data is split into independent
// runs at every occurrence of the restart index. Counts and triangle
// decomposition honor the runs.
type DrawElements[T Index] struct {
	base
	indices    Indices[T]
	baseVertex int

	runs        []run
	runsVersion uint64
	runsValid   bool
}

// NewDrawElements creates an indexed set. The slice is retained, not copied.
func NewDrawElements[T Index](t Topology, indices []T) *DrawElements[T] {
	d := &DrawElements[T]{base: newBase(t)}
	d.indices.data = indices
	d.indices.restartIndex = ^T(0)
	return d
}

// Indices returns the stored indices. Callers that modify the slice in
// place must call Invalidate afterwards.
func (d *DrawElements[T]) Indices() []T { return d.indices.data }

// SetIndices replaces the index data and invalidates uploaded buffers.
func (d *DrawElements[T]) SetIndices(indices []T) { d.indices.set(indices) }

// Invalidate marks the index data as changed.
func (d *DrawElements[T]) Invalidate() { d.indices.buf.Invalidate() }

// IndexData returns the index view handed to drawers.
func (d *DrawElements[T]) IndexData() IndexData { return &d.indices }

// Buffer returns the index buffer bookkeeping.
func (d *DrawElements[T]) Buffer() *Buffer { return &d.indices.buf }

// SetTopology changes the topology and invalidates uploaded buffers.
func (d *DrawElements[T]) SetTopology(t Topology) {
	d.topology = t
	d.indices.buf.Invalidate()
}

// BaseVertex returns the value added to every index.
func (d *DrawElements[T]) BaseVertex() int { return d.baseVertex }

// SetBaseVertex sets the value added to every index.
func (d *DrawElements[T]) SetBaseVertex(v int) { d.baseVertex = v }

// Restart reports whether primitive restart is enabled and the restart index.
func (d *DrawElements[T]) Restart() (bool, T) { return d.indices.restart, d.indices.restartIndex }

// SetRestart enables or disables primitive restart at index value idx.
func (d *DrawElements[T]) SetRestart(enabled bool, idx T) {
	d.indices.restart = enabled
	d.indices.restartIndex = idx
	d.indices.buf.Invalidate()
}

// IndexCount returns the number of stored indices, restart markers included.
func (d *DrawElements[T]) IndexCount() int { return len(d.indices.data) }

// Index returns the stored index at position i plus the base vertex.
func (d *DrawElements[T]) Index(i int) int { return int(d.indices.data[i]) + d.baseVertex }

// runTable returns the restart runs, rebuilding them after index updates.
func (d *DrawElements[T]) runTable() []run {
	v := d.indices.buf.Version()
	if d.runsValid && d.runsVersion == v {
		return d.runs
	}
	d.runs = d.runs[:0]
	start := 0
	for i, x := range d.indices.data {
		if d.indices.isRestart(x) {
			if i > start {
				d.runs = append(d.runs, run{start: start, count: i - start})
			}
			start = i + 1
		}
	}
	if n := len(d.indices.data); n > start {
		d.runs = append(d.runs, run{start: start, count: n - start})
	}
	d.runsVersion = v
	d.runsValid = true
	return d.runs
}

// sumRuns adds up count(t, run) over all runs. A negative count means the
// topology is unsupported and is returned as is.
func (d *DrawElements[T]) sumRuns(count func(Topology, int) int) int {
	if !d.indices.restart {
		return count(d.topology, len(d.indices.data))
	}
	if count(d.topology, 0) < 0 {
		return -1
	}
	total := 0
	for _, r := range d.runTable() {
		total += count(d.topology, r.count)
	}
	return total
}

// TriangleCount returns the number of triangles, or -1.
func (d *DrawElements[T]) TriangleCount() int { return d.sumRuns(TriangleCount) }

// LineCount returns the number of line segments, or -1.
func (d *DrawElements[T]) LineCount() int { return d.sumRuns(LineCount) }

// PointCount returns the number of points, or -1.
func (d *DrawElements[T]) PointCount() int { return d.sumRuns(PointCount) }

// Triangle returns the i-th triangle.
func (d *DrawElements[T]) Triangle(i int) (Triangle, bool) {
	if !d.indices.restart {
		return triangleAt(d, d.topology, i, 0, len(d.indices.data))
	}
	if i < 0 || !d.topology.IsTriangles() {
		return NoTriangle, false
	}
	for _, r := range d.runTable() {
		c := TriangleCount(d.topology, r.count)
		if i < c {
			return triangleAt(d, d.topology, i, r.start, r.count)
		}
		i -= c
	}
	return NoTriangle, false
}

// TriangleTo writes the i-th triangle into out.
func (d *DrawElements[T]) TriangleTo(i int, out []int) bool { return triangleTo(d, i, out) }

// Render issues one DrawElements call over all indices.
func (d *DrawElements[T]) Render(dr Drawer) error {
	if d.disabled || len(d.indices.data) == 0 {
		return nil
	}
	return dr.DrawElements(d.topology, &d.indices, 0, len(d.indices.data), d.Instances(), d.baseVertex)
}

// SortTriangles reorders the triangles of a Triangles set for better vertex
// cache locality. Each triangle is rotated so that its smallest index comes
// first, keeping its winding, and triangles are then ordered
// lexicographically. Equal triangles keep their relative order. Indices past
// the last complete triangle are left in place.
func (d *DrawElements[T]) SortTriangles() error {
	if d.indices.restart {
		return ErrPrimitiveRestart
	}
	if d.topology != Triangles {
		return ErrUnsupportedTopology
	}
	data := d.indices.data
	n := len(data) / 3
	if n == 0 {
		return nil
	}
	tris := make([][3]T, n)
	for i := range tris {
		a, b, c := data[3*i], data[3*i+1], data[3*i+2]
		switch {
		case b < a && b <= c:
			a, b, c = b, c, a
		case c < a && c < b:
			a, b, c = c, a, b
		}
		tris[i] = [3]T{a, b, c}
	}
	slices.SortStableFunc(tris, func(x, y [3]T) int {
		if r := cmp.Compare(x[0], y[0]); r != 0 {
			return r
		}
		if r := cmp.Compare(x[1], y[1]); r != 0 {
			return r
		}
		return cmp.Compare(x[2], y[2])
	})
	for i, t := range tris {
		data[3*i], data[3*i+1], data[3*i+2] = t[0], t[1], t[2]
	}
	d.indices.buf.Invalidate()
	return nil
}

var (
	_ Set = (*DrawElements[uint8])(nil)
	_ Set = (*DrawElements[uint16])(nil)
	_ Set = (*DrawElements[uint32])(nil)
)
