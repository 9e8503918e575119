package primitive

import "iter"

// AllTriangles iterates over every triangle of s in decomposition order.
// It yields nothing when the topology does not produce triangles.
func AllTriangles(s Set) iter.Seq2[int, Triangle] {
	return func(yield func(int, Triangle) bool) {
		n := s.TriangleCount()
		for i := range n {
			tri, ok := s.Triangle(i)
			if !ok {
				return
			}
			if !yield(i, tri) {
				return
			}
		}
	}
}

// AppendTriangles appends the flattened triangle list of s to dst.
// Backends use it to draw topologies the graphics API lacks.
func AppendTriangles(dst []uint32, s Set) []uint32 {
	for _, tri := range AllTriangles(s) {
		dst = append(dst, uint32(tri[0]), uint32(tri[1]), uint32(tri[2]))
	}
	return dst
}

// AppendLines appends the flattened line list of s to dst. Restart runs are
// not split; sets with restart enabled should be drawn natively instead.
func AppendLines(dst []uint32, s Set) []uint32 {
	n := s.IndexCount()
	switch s.Topology() {
	case Lines:
		for i := 0; i+1 < n; i += 2 {
			dst = append(dst, uint32(s.Index(i)), uint32(s.Index(i+1)))
		}
	case LineStrip:
		for i := 0; i+1 < n; i++ {
			dst = append(dst, uint32(s.Index(i)), uint32(s.Index(i+1)))
		}
	case LineLoop:
		if n < 2 {
			return dst
		}
		for i := range n {
			dst = append(dst, uint32(s.Index(i)), uint32(s.Index((i+1)%n)))
		}
	}
	return dst
}
