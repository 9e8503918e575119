package primitive

import "github.com/gogpu/g3d/internal/assert"

// Triangle holds the three vertex indices of one triangle.
type Triangle [3]int

// NoTriangle is reported when a triangle cannot be decomposed.
var NoTriangle = Triangle{-1, -1, -1}

// Set is a draw command over a range of vertices, optionally indexed.
//
// Counts are computed from the index count and the topology without walking
// the indices. Triangle decomposition is a pure query.
type Set interface {
	// Topology returns how indices are assembled into primitives.
	Topology() Topology

	// SetTopology changes the topology.
	SetTopology(t Topology)

	// IndexCount returns the number of vertex indices the set references.
	IndexCount() int

	// Index returns the vertex index at position i in [0, IndexCount()).
	Index(i int) int

	// Instances returns the instance count, 1 for non-instanced draws.
	Instances() int

	// SetInstances sets the instance count. Values below 1 are clamped to 1.
	SetInstances(n int)

	// Enabled reports whether the set is drawn.
	Enabled() bool

	// SetEnabled enables or disables drawing of the set.
	SetEnabled(enabled bool)

	// TriangleCount returns the number of triangles, or -1 when the topology
	// does not produce triangles.
	TriangleCount() int

	// LineCount returns the number of line segments, or -1 when the topology
	// does not produce lines.
	LineCount() int

	// PointCount returns the number of points, or -1 when the topology
	// does not produce points.
	PointCount() int

	// Triangle returns the i-th triangle of the set as if it were flattened
	// into independent triangles. It returns (NoTriangle, false) when i is
	// out of range or the topology does not produce triangles.
	Triangle(i int) (Triangle, bool)

	// TriangleTo writes the i-th triangle into out[0:3]. On failure every
	// available slot of out holds -1 and false is returned.
	TriangleTo(i int, out []int) bool

	// Render issues the draw command. Disabled and empty sets issue nothing.
	Render(d Drawer) error
}

// Drawer receives draw commands. Graphics contexts implement it.
type Drawer interface {
	// DrawArrays draws count consecutive vertices starting at first.
	DrawArrays(t Topology, first, count, instances int) error

	// DrawElements draws count indices of idx starting at index position
	// first. baseVertex is added to every index by the GPU.
	DrawElements(t Topology, idx IndexData, first, count, instances, baseVertex int) error
}

// RangeDrawer is implemented by drawers that can use a vertex range hint.
// Sets fall back to DrawElements when the drawer does not implement it.
type RangeDrawer interface {
	DrawRangeElements(t Topology, idx IndexData, start, end, first, count, instances, baseVertex int) error
}

// base holds the fields every set shares.
type base struct {
	topology  Topology
	instances int
	disabled  bool
}

func newBase(t Topology) base {
	return base{topology: t, instances: 1}
}

// Topology returns how indices are assembled into primitives.
func (b *base) Topology() Topology { return b.topology }

// SetTopology changes the topology.
func (b *base) SetTopology(t Topology) { b.topology = t }

// Instances returns the instance count.
func (b *base) Instances() int { return max(b.instances, 1) }

// SetInstances sets the instance count. Values below 1 are clamped to 1.
func (b *base) SetInstances(n int) { b.instances = max(n, 1) }

// Enabled reports whether the set is drawn.
func (b *base) Enabled() bool { return !b.disabled }

// SetEnabled enables or disables drawing of the set.
func (b *base) SetEnabled(enabled bool) { b.disabled = !enabled }

// positions maps triangle i of an n-index run under topology t to the three
// index positions that form it.
func positions(t Topology, i, n int) (Triangle, bool) {
	c := TriangleCount(t, n)
	if c < 0 || i < 0 || i >= c {
		return NoTriangle, false
	}
	switch t {
	case Triangles:
		return Triangle{3 * i, 3*i + 1, 3*i + 2}, true
	case TriangleStrip, QuadStrip:
		if i%2 == 1 {
			return Triangle{i, i + 1, i + 2}, true
		}
		return Triangle{i, i + 2, i + 1}, true
	case TriangleFan, Polygon:
		return Triangle{0, i + 1, i + 2}, true
	case Quads:
		if i%2 == 1 {
			return Triangle{2 * i, 2*i + 1, 2*i - 2}, true
		}
		return Triangle{2 * i, 2*i + 1, 2*i + 2}, true
	}
	return NoTriangle, false
}

// triangleAt decomposes triangle i of the run of n indices starting at
// position off of s.
func triangleAt(s Set, t Topology, i, off, n int) (Triangle, bool) {
	p, ok := positions(t, i, n)
	if !ok {
		return NoTriangle, false
	}
	return Triangle{s.Index(off + p[0]), s.Index(off + p[1]), s.Index(off + p[2])}, true
}

// triangleTo implements Set.TriangleTo on top of Set.Triangle.
func triangleTo(s Set, i int, out []int) bool {
	if out == nil {
		assert.That(false, "primitive: nil triangle buffer")
		return false
	}
	n := min(len(out), 3)
	for k := range n {
		out[k] = -1
	}
	if n < 3 {
		assert.That(false, "primitive: triangle buffer shorter than 3")
		return false
	}
	if c := s.TriangleCount(); c >= 0 && (i < 0 || i >= c) {
		assert.That(false, "primitive: triangle index out of range")
		return false
	}
	tri, ok := s.Triangle(i)
	if !ok {
		return false
	}
	copy(out, tri[:])
	return true
}
