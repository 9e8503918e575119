package bounds

import "github.com/go-gl/mathgl/mgl32"

// Plane is a plane n·p + d = 0 stored as (n.x, n.y, n.z, d). Points with a
// positive distance are on the inner side.
type Plane mgl32.Vec4

// Distance returns the signed distance of p to the plane.
func (pl Plane) Distance(p mgl32.Vec3) float32 {
	return pl[0]*p[0] + pl[1]*p[1] + pl[2]*p[2] + pl[3]
}

// Frustum is a view volume bounded by six inward-facing planes in the order
// left, right, bottom, top, near, far.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustum extracts the frustum of a view-projection matrix mapping to
// OpenGL clip space.
func NewFrustum(viewProj mgl32.Mat4) *Frustum {
	r0, r1, r2, r3 := viewProj.Row(0), viewProj.Row(1), viewProj.Row(2), viewProj.Row(3)
	f := &Frustum{}
	f.Planes[0] = normalize(r3.Add(r0))
	f.Planes[1] = normalize(r3.Sub(r0))
	f.Planes[2] = normalize(r3.Add(r1))
	f.Planes[3] = normalize(r3.Sub(r1))
	f.Planes[4] = normalize(r3.Add(r2))
	f.Planes[5] = normalize(r3.Sub(r2))
	return f
}

func normalize(v mgl32.Vec4) Plane {
	l := v.Vec3().Len()
	if l == 0 {
		return Plane(v)
	}
	return Plane(v.Mul(1 / l))
}

// ContainsPoint reports whether p lies inside the frustum.
func (f *Frustum) ContainsPoint(p mgl32.Vec3) bool {
	for _, pl := range f.Planes {
		if pl.Distance(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsAABB reports whether b is at least partly inside the frustum.
// The test is conservative: boxes near a frustum corner may be reported
// visible while lying outside.
func (f *Frustum) IntersectsAABB(b AABB) bool {
	if b.IsEmpty() {
		return false
	}
	for _, pl := range f.Planes {
		// Corner farthest along the plane normal.
		var p mgl32.Vec3
		for i := range 3 {
			if pl[i] >= 0 {
				p[i] = b.Max[i]
			} else {
				p[i] = b.Min[i]
			}
		}
		if pl.Distance(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether s is at least partly inside the frustum.
func (f *Frustum) IntersectsSphere(s Sphere) bool {
	if s.IsEmpty() {
		return false
	}
	for _, pl := range f.Planes {
		if pl.Distance(s.Center) < -s.Radius {
			return false
		}
	}
	return true
}
