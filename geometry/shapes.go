package geometry

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/g3d/primitive"
)

// boxFaces lists, per face, the outward normal and the two in-plane axes.
var boxFaces = [6][3]mgl32.Vec3{
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
}

// Box builds an axis-aligned box centered at the origin with positions,
// normals and one indexed triangle list. Faces wind counter-clockwise when
// seen from outside.
func Box(name string, size mgl32.Vec3) *Geometry {
	h := size.Mul(0.5)
	pos := make([]float32, 0, 24*3)
	nrm := make([]float32, 0, 24*3)
	idx := make([]uint16, 0, 36)
	for f, face := range boxFaces {
		n, u, v := face[0], face[1], face[2]
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := n.Add(u.Mul(c[0])).Add(v.Mul(c[1]))
			pos = append(pos, p[0]*h[0], p[1]*h[1], p[2]*h[2])
			nrm = append(nrm, n[0], n[1], n[2])
		}
		b := uint16(4 * f)
		idx = append(idx, b, b+1, b+2, b, b+2, b+3)
	}
	g := New(name)
	g.SetArray(Position, NewVertexArray(3, pos))
	g.SetArray(Normal, NewVertexArray(3, nrm))
	g.AddSet(primitive.NewDrawElements(primitive.Triangles, idx))
	return g
}

// Plane builds a w by d plane in the XZ plane facing +Y, drawn as a single
// Quads set.
func Plane(name string, w, d float32) *Geometry {
	x, z := w/2, d/2
	g := New(name)
	g.SetArray(Position, NewVertexArray(3, []float32{
		-x, 0, z,
		x, 0, z,
		x, 0, -z,
		-x, 0, -z,
	}))
	g.SetArray(Normal, NewVertexArray(3, []float32{
		0, 1, 0,
		0, 1, 0,
		0, 1, 0,
		0, 1, 0,
	}))
	g.AddSet(primitive.NewDrawArrays(primitive.Quads, 0, 4))
	return g
}
