package geometry

import "errors"

var (
	// ErrNoPositions is returned when a geometry has no position array.
	ErrNoPositions = errors.New("geometry: no position array")

	// ErrVertexCount is returned when vertex arrays disagree on the number
	// of vertices or hold a partial vertex.
	ErrVertexCount = errors.New("geometry: inconsistent vertex count")

	// ErrComponents is returned when an array has fewer than 1 or more than
	// 4 components.
	ErrComponents = errors.New("geometry: invalid component count")

	// ErrDrawRange is returned when a primitive set references vertices
	// past the end of the arrays.
	ErrDrawRange = errors.New("geometry: draw range exceeds vertex count")
)
