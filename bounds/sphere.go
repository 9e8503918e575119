package bounds

import "github.com/go-gl/mathgl/mgl32"

// Sphere is a bounding sphere. A negative radius means empty.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

// IsEmpty reports whether the sphere holds no point.
func (s Sphere) IsEmpty() bool { return s.Radius < 0 }

// Transform returns the sphere transformed by the affine matrix m. The
// radius is scaled by the largest axis scale of m.
func (s Sphere) Transform(m mgl32.Mat4) Sphere {
	if s.IsEmpty() {
		return s
	}
	c := m.Mul4x1(s.Center.Vec4(1)).Vec3()
	sx := m.Col(0).Vec3().Len()
	sy := m.Col(1).Vec3().Len()
	sz := m.Col(2).Vec3().Len()
	return Sphere{Center: c, Radius: s.Radius * max(sx, sy, sz)}
}
