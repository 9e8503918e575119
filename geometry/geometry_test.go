package geometry

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/g3d/primitive"
)

func TestBoxGeometry(t *testing.T) {
	g := Box("box", mgl32.Vec3{2, 4, 6})
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if g.VertexCount() != 24 {
		t.Errorf("VertexCount() = %d, want 24", g.VertexCount())
	}
	if g.TriangleCount() != 12 {
		t.Errorf("TriangleCount() = %d, want 12", g.TriangleCount())
	}
	b := g.Bounds()
	if b.Min != (mgl32.Vec3{-1, -2, -3}) || b.Max != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Bounds() = %v", b)
	}
}

func TestBoxWinding(t *testing.T) {
	g := Box("box", mgl32.Vec3{1, 1, 1})
	pos := g.Array(Position).Data()
	at := func(i int) mgl32.Vec3 { return mgl32.Vec3{pos[3*i], pos[3*i+1], pos[3*i+2]} }
	s := g.Sets()[0]
	for i, tri := range primitive.AllTriangles(s) {
		a, b, c := at(tri[0]), at(tri[1]), at(tri[2])
		n := b.Sub(a).Cross(c.Sub(a))
		center := a.Add(b).Add(c).Mul(1.0 / 3)
		if n.Dot(center) <= 0 {
			t.Errorf("triangle %d %v faces inward", i, tri)
		}
	}
}

func TestPlaneGeometry(t *testing.T) {
	g := Plane("floor", 10, 4)
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if g.TriangleCount() != 2 {
		t.Errorf("TriangleCount() = %d, want 2", g.TriangleCount())
	}
	if g.Sets()[0].Topology() != primitive.Quads {
		t.Error("plane should use Quads")
	}
}

func TestBoundsFollowUpdates(t *testing.T) {
	g := New("g")
	if !g.Bounds().IsEmpty() {
		t.Error("geometry without positions should have empty bounds")
	}
	g.SetPositions([]float32{0, 0, 0, 1, 1, 1})
	if g.Bounds().Max != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Bounds() = %v", g.Bounds())
	}

	v := g.Version()
	pos := g.Array(Position)
	pos.Data()[3] = 5
	pos.Invalidate()
	if g.Version() == v {
		t.Error("Invalidate should change the geometry version")
	}
	if g.Bounds().Max[0] != 5 {
		t.Errorf("Bounds() after update = %v", g.Bounds())
	}

	v = g.Version()
	g.SetPositions([]float32{0, 0, 0})
	if g.Version() <= v {
		t.Error("replacing an array should advance the version")
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Geometry
		want  error
	}{
		{"no positions", func() *Geometry { return New("g") }, ErrNoPositions},
		{"components", func() *Geometry {
			g := New("g")
			g.SetArray(Position, NewVertexArray(5, make([]float32, 10)))
			return g
		}, ErrComponents},
		{"partial vertex", func() *Geometry {
			g := New("g")
			g.SetPositions(make([]float32, 7))
			return g
		}, ErrVertexCount},
		{"mismatched arrays", func() *Geometry {
			g := New("g")
			g.SetPositions(make([]float32, 9))
			g.SetArray(Normal, NewVertexArray(3, make([]float32, 6)))
			return g
		}, ErrVertexCount},
		{"draw range", func() *Geometry {
			g := New("g")
			g.SetPositions(make([]float32, 9))
			g.AddSet(primitive.NewDrawArrays(primitive.Triangles, 1, 3))
			return g
		}, ErrDrawRange},
		{"index range", func() *Geometry {
			g := New("g")
			g.SetPositions(make([]float32, 9))
			g.AddSet(primitive.NewDrawRangeElements(primitive.Triangles, []uint16{0, 1, 7}, 0, 2))
			return g
		}, primitive.ErrIndexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.build().Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateCached(t *testing.T) {
	g := New("g")
	if err := g.Validate(); !errors.Is(err, ErrNoPositions) {
		t.Fatalf("Validate() = %v", err)
	}
	g.SetPositions([]float32{0, 0, 0})
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() after fix = %v", err)
	}
}

func TestVertexArrayBytes(t *testing.T) {
	v := NewVertexArray(1, []float32{1})
	if got := v.Bytes(); len(got) != 4 || got[3] != 0x3f || got[2] != 0x80 {
		t.Errorf("Bytes() = %v", got)
	}
	v.Set([]float32{1, 2})
	if len(v.Bytes()) != 8 || v.Len() != 2 {
		t.Errorf("Bytes() after Set = %v", v.Bytes())
	}
}

func TestRemoveSet(t *testing.T) {
	g := New("g")
	s := primitive.NewDrawArrays(primitive.Points, 0, 1)
	g.AddSet(s)
	if !g.RemoveSet(s) || g.RemoveSet(s) || len(g.Sets()) != 0 {
		t.Error("RemoveSet mismatch")
	}
}
