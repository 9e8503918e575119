package bounds

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testFrustum() *Frustum {
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1, 1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	return NewFrustum(proj.Mul4(view))
}

func TestAABBEmpty(t *testing.T) {
	b := Empty()
	if !b.IsEmpty() {
		t.Fatal("Empty() should be empty")
	}
	b = b.Extend(mgl32.Vec3{1, 2, 3})
	if b.IsEmpty() || b.Min != b.Max {
		t.Errorf("point box = %v", b)
	}
	if u := Empty().Union(b); u != b {
		t.Errorf("Union with empty = %v, want %v", u, b)
	}
	if Empty().Intersects(b) {
		t.Error("empty box should not intersect")
	}
}

func TestAABBOps(t *testing.T) {
	b := FromPoints(mgl32.Vec3{-1, -2, -3}, mgl32.Vec3{1, 2, 3})
	if b.Center() != (mgl32.Vec3{0, 0, 0}) {
		t.Errorf("Center() = %v", b.Center())
	}
	if b.Size() != (mgl32.Vec3{2, 4, 6}) {
		t.Errorf("Size() = %v", b.Size())
	}
	if !b.Contains(mgl32.Vec3{1, 2, 3}) || b.Contains(mgl32.Vec3{1.5, 0, 0}) {
		t.Error("Contains mismatch")
	}
	o := FromPoints(mgl32.Vec3{0.5, 0, 0}, mgl32.Vec3{4, 4, 4})
	if !b.Intersects(o) {
		t.Error("overlapping boxes should intersect")
	}
	far := FromPoints(mgl32.Vec3{5, 5, 5}, mgl32.Vec3{6, 6, 6})
	if b.Intersects(far) {
		t.Error("disjoint boxes should not intersect")
	}
	u := b.Union(far)
	if u.Min != b.Min || u.Max != far.Max {
		t.Errorf("Union() = %v", u)
	}
}

func TestAABBTransform(t *testing.T) {
	b := FromPoints(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})

	moved := b.Transform(mgl32.Translate3D(10, 0, 0))
	if moved.Min != (mgl32.Vec3{9, -1, -1}) || moved.Max != (mgl32.Vec3{11, 1, 1}) {
		t.Errorf("translated = %v", moved)
	}

	scaled := b.Transform(mgl32.Scale3D(2, 3, 4))
	if scaled.Max != (mgl32.Vec3{2, 3, 4}) || scaled.Min != (mgl32.Vec3{-2, -3, -4}) {
		t.Errorf("scaled = %v", scaled)
	}

	rotated := FromPoints(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 1, 1}).Transform(mgl32.HomogRotate3DZ(mgl32.DegToRad(90)))
	if !mgl32.FloatEqualThreshold(rotated.Max[1], 2, 1e-5) || !mgl32.FloatEqualThreshold(rotated.Min[0], -1, 1e-5) {
		t.Errorf("rotated = %v", rotated)
	}

	if !Empty().Transform(mgl32.Ident4()).IsEmpty() {
		t.Error("transformed empty box should stay empty")
	}
}

func TestSphere(t *testing.T) {
	s := FromPoints(mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{1, 0, 0}).Sphere()
	if s.Radius != 1 || s.Center != (mgl32.Vec3{}) {
		t.Errorf("Sphere() = %v", s)
	}
	ts := s.Transform(mgl32.Translate3D(0, 5, 0).Mul4(mgl32.Scale3D(3, 1, 1)))
	if ts.Center != (mgl32.Vec3{0, 5, 0}) || ts.Radius != 3 {
		t.Errorf("Transform() = %v", ts)
	}
	if !Empty().Sphere().IsEmpty() {
		t.Error("sphere of empty box should be empty")
	}
}

func TestFrustumCulling(t *testing.T) {
	f := testFrustum()

	tests := []struct {
		name string
		box  AABB
		want bool
	}{
		{"in front", FromPoints(mgl32.Vec3{-1, -1, -11}, mgl32.Vec3{1, 1, -9}), true},
		{"behind", FromPoints(mgl32.Vec3{-1, -1, 9}, mgl32.Vec3{1, 1, 11}), false},
		{"beyond far", FromPoints(mgl32.Vec3{-1, -1, -300}, mgl32.Vec3{1, 1, -200}), false},
		{"left of view", FromPoints(mgl32.Vec3{-50, -1, -11}, mgl32.Vec3{-40, 1, -9}), false},
		{"straddling near", FromPoints(mgl32.Vec3{-1, -1, -2}, mgl32.Vec3{1, 1, 2}), true},
		{"empty", Empty(), false},
	}
	for _, tt := range tests {
		if got := f.IntersectsAABB(tt.box); got != tt.want {
			t.Errorf("%s: IntersectsAABB() = %v, want %v", tt.name, got, tt.want)
		}
	}

	if !f.ContainsPoint(mgl32.Vec3{0, 0, -10}) || f.ContainsPoint(mgl32.Vec3{0, 0, 10}) {
		t.Error("ContainsPoint mismatch")
	}
	if !f.IntersectsSphere(Sphere{Center: mgl32.Vec3{0, 0, -10}, Radius: 1}) {
		t.Error("sphere in front should be visible")
	}
	if f.IntersectsSphere(Sphere{Center: mgl32.Vec3{0, 0, 10}, Radius: 1}) {
		t.Error("sphere behind should be culled")
	}
	if !f.IntersectsSphere(Sphere{Center: mgl32.Vec3{0, 0, 1}, Radius: 3}) {
		t.Error("sphere straddling the near plane should be visible")
	}
}
