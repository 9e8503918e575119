// Package primitive describes draw commands over vertex and index ranges.
//
// A Set is one draw command of a Geometry: DrawArrays (non-indexed),
// DrawElements, DrawRangeElements and MultiDrawElements (indexed). Every set
// has a primitive Topology, an instance count and an enabled flag, and can
// answer how many triangles, lines or points it produces in O(1).
//
// Sets that produce triangles can be decomposed one triangle at a time:
//
//	set := primitive.NewDrawElements(primitive.TriangleStrip, []uint16{0, 1, 2, 3})
//	for i, tri := range primitive.AllTriangles(set) {
//	    fmt.Println(i, tri) // 0 [0 2 1], 1 [1 2 3]
//	}
//
// Decomposition is a pure query. Queries outside the valid range, or against
// topologies that do not produce triangles, report false and return
// NoTriangle; they never panic in release builds.
//
// Sets never talk to a graphics API directly. Render hands the command to a
// Drawer, which graphics contexts implement. Index data carries a versioned
// Buffer so contexts can cache uploaded GPU objects and notice when an
// explicit update invalidated them.
package primitive
