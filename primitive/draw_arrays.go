package primitive

// DrawArrays draws a contiguous range of vertices without an index buffer.
type DrawArrays struct {
	base
	first int
	count int
}

// NewDrawArrays creates a non-indexed set drawing count vertices from first.
func NewDrawArrays(t Topology, first, count int) *DrawArrays {
	return &DrawArrays{base: newBase(t), first: max(first, 0), count: max(count, 0)}
}

// First returns the first vertex drawn.
func (d *DrawArrays) First() int { return d.first }

// SetRange changes the drawn vertex range.
func (d *DrawArrays) SetRange(first, count int) {
	d.first = max(first, 0)
	d.count = max(count, 0)
}

// IndexCount returns the number of vertices drawn.
func (d *DrawArrays) IndexCount() int { return d.count }

// Index returns first+i.
func (d *DrawArrays) Index(i int) int { return d.first + i }

// TriangleCount returns the number of triangles, or -1.
func (d *DrawArrays) TriangleCount() int { return TriangleCount(d.topology, d.count) }

// LineCount returns the number of line segments, or -1.
func (d *DrawArrays) LineCount() int { return LineCount(d.topology, d.count) }

// PointCount returns the number of points, or -1.
func (d *DrawArrays) PointCount() int { return PointCount(d.topology, d.count) }

// Triangle returns the i-th triangle.
func (d *DrawArrays) Triangle(i int) (Triangle, bool) {
	return triangleAt(d, d.topology, i, 0, d.count)
}

// TriangleTo writes the i-th triangle into out.
func (d *DrawArrays) TriangleTo(i int, out []int) bool { return triangleTo(d, i, out) }

// Render issues one DrawArrays call.
func (d *DrawArrays) Render(dr Drawer) error {
	if d.disabled || d.count == 0 {
		return nil
	}
	return dr.DrawArrays(d.topology, d.first, d.count, d.Instances())
}

var _ Set = (*DrawArrays)(nil)
