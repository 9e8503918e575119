// Package bounds provides the bounding volumes used for visibility culling:
// axis-aligned boxes, spheres and the view frustum they are tested against.
package bounds
