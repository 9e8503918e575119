package primitive

import "github.com/gogpu/gputypes"

// Topology is the rule the GPU uses to assemble a sequence of vertex indices
// into primitives.
type Topology uint8

const (
	Points        Topology = iota // each index is a point
	Lines                         // independent index pairs
	LineLoop                      // connected lines, last joined to first
	LineStrip                     // connected lines
	Triangles                     // independent index triples
	TriangleStrip                 // each new index forms a triangle with the previous two
	TriangleFan                   // triangles share the first index
	Quads                         // independent index quadruples
	QuadStrip                     // connected quads
	Polygon                       // a single convex polygon
)

var topologyNames = [...]string{
	Points:        "Points",
	Lines:         "Lines",
	LineLoop:      "LineLoop",
	LineStrip:     "LineStrip",
	Triangles:     "Triangles",
	TriangleStrip: "TriangleStrip",
	TriangleFan:   "TriangleFan",
	Quads:         "Quads",
	QuadStrip:     "QuadStrip",
	Polygon:       "Polygon",
}

// String returns the string representation of a Topology.
func (t Topology) String() string {
	if int(t) < len(topologyNames) {
		return topologyNames[t]
	}
	return "Unknown"
}

// IsTriangles reports whether the topology produces filled triangles.
func (t Topology) IsTriangles() bool {
	switch t {
	case Triangles, TriangleStrip, TriangleFan, Quads, QuadStrip, Polygon:
		return true
	}
	return false
}

// Native reports whether core-profile OpenGL can draw the topology
// directly. Quads, QuadStrip and Polygon have to be triangulated first.
func (t Topology) Native() bool {
	switch t {
	case Quads, QuadStrip, Polygon:
		return false
	}
	return t <= Polygon
}

// GPU maps the topology to its WebGPU equivalent. The boolean is false for
// topologies WebGPU lacks (LineLoop, TriangleFan, Quads, QuadStrip, Polygon);
// those must be decomposed into lines or triangles before submission.
func (t Topology) GPU() (gputypes.PrimitiveTopology, bool) {
	switch t {
	case Points:
		return gputypes.PrimitiveTopologyPointList, true
	case Lines:
		return gputypes.PrimitiveTopologyLineList, true
	case LineStrip:
		return gputypes.PrimitiveTopologyLineStrip, true
	case Triangles:
		return gputypes.PrimitiveTopologyTriangleList, true
	case TriangleStrip:
		return gputypes.PrimitiveTopologyTriangleStrip, true
	}
	return gputypes.PrimitiveTopologyTriangleList, false
}

// TriangleCount returns the number of triangles n indices produce under
// topology t, or -1 when t does not produce triangles.
func TriangleCount(t Topology, n int) int {
	switch t {
	case Triangles:
		return n / 3
	case TriangleStrip, TriangleFan, Polygon:
		return max(n-2, 0)
	case Quads:
		return n / 4 * 2
	case QuadStrip:
		return max((n-2)/2, 0) * 2
	}
	return -1
}

// LineCount returns the number of line segments n indices produce under
// topology t, or -1 when t does not produce lines.
func LineCount(t Topology, n int) int {
	switch t {
	case Lines:
		return n / 2
	case LineStrip:
		return max(n-1, 0)
	case LineLoop:
		if n < 2 {
			return 0
		}
		return n
	}
	return -1
}

// PointCount returns the number of points n indices produce under
// topology t, or -1 when t does not produce points.
func PointCount(t Topology, n int) int {
	if t == Points {
		return n
	}
	return -1
}
