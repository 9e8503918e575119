package primitive

import "fmt"

// DrawRangeElements is a DrawElements that also declares the inclusive range
// [Start, End] of vertex indices it references. The hint lets drivers limit
// the vertex data they touch.
type DrawRangeElements[T Index] struct {
	DrawElements[T]
	start int
	end   int
}

// NewDrawRangeElements creates an indexed set with a vertex range hint.
func NewDrawRangeElements[T Index](t Topology, indices []T, start, end int) *DrawRangeElements[T] {
	d := &DrawRangeElements[T]{start: start, end: end}
	d.base = newBase(t)
	d.indices.data = indices
	d.indices.restartIndex = ^T(0)
	return d
}

// Range returns the declared vertex range.
func (d *DrawRangeElements[T]) Range() (start, end int) { return d.start, d.end }

// SetRange changes the declared vertex range.
func (d *DrawRangeElements[T]) SetRange(start, end int) {
	d.start = start
	d.end = end
}

// Validate checks that every index falls inside the declared range.
// Restart markers are not checked.
func (d *DrawRangeElements[T]) Validate() error {
	if d.end < d.start {
		return fmt.Errorf("%w: empty range [%d, %d]", ErrIndexOutOfRange, d.start, d.end)
	}
	for i, x := range d.indices.data {
		if d.indices.isRestart(x) {
			continue
		}
		v := int(x) + d.baseVertex
		if v < d.start || v > d.end {
			return fmt.Errorf("%w: index %d at position %d not in [%d, %d]", ErrIndexOutOfRange, v, i, d.start, d.end)
		}
	}
	return nil
}

// Render issues a DrawRangeElements call when the drawer supports it,
// DrawElements otherwise.
func (d *DrawRangeElements[T]) Render(dr Drawer) error {
	if d.disabled || len(d.indices.data) == 0 {
		return nil
	}
	if rd, ok := dr.(RangeDrawer); ok {
		return rd.DrawRangeElements(d.topology, &d.indices, d.start, d.end, 0, len(d.indices.data), d.Instances(), d.baseVertex)
	}
	return dr.DrawElements(d.topology, &d.indices, 0, len(d.indices.data), d.Instances(), d.baseVertex)
}

// TriangleTo writes the i-th triangle into out.
func (d *DrawRangeElements[T]) TriangleTo(i int, out []int) bool { return triangleTo(d, i, out) }

var (
	_ Set = (*DrawRangeElements[uint16])(nil)
	_ Set = (*DrawRangeElements[uint32])(nil)
)
