package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/g3d/bounds"
	"github.com/gogpu/g3d/primitive"
)

// Geometry is vertex data plus the primitive sets drawing it.
type Geometry struct {
	name   string
	arrays [NumAttributes]*VertexArray
	sets   []primitive.Set

	// structure changes when arrays or sets are replaced.
	structure uint64

	bounds        bounds.AABB
	boundsVersion uint64
	boundsValid   bool

	validErr     error
	validVersion uint64
	validDone    bool
}

// New creates an empty geometry.
func New(name string) *Geometry {
	return &Geometry{name: name}
}

// Name returns the geometry name.
func (g *Geometry) Name() string { return g.name }

// SetArray installs the array for attribute a. A nil array removes it.
func (g *Geometry) SetArray(a Attribute, v *VertexArray) {
	if int(a) >= NumAttributes {
		return
	}
	// Carry the old array's version so Version never goes back.
	if old := g.arrays[a]; old != nil {
		g.structure += old.buf.Version()
	}
	g.arrays[a] = v
	g.structure++
}

// Array returns the array for attribute a, or nil.
func (g *Geometry) Array(a Attribute) *VertexArray {
	if int(a) >= NumAttributes {
		return nil
	}
	return g.arrays[a]
}

// SetPositions is shorthand for a three-component Position array.
func (g *Geometry) SetPositions(data []float32) {
	g.SetArray(Position, NewVertexArray(3, data))
}

// AddSet appends a primitive set.
func (g *Geometry) AddSet(s primitive.Set) {
	if s == nil {
		return
	}
	g.sets = append(g.sets, s)
	g.structure++
}

// RemoveSet removes a primitive set and reports whether it was present.
func (g *Geometry) RemoveSet(s primitive.Set) bool {
	for i, x := range g.sets {
		if x == s {
			g.sets = append(g.sets[:i], g.sets[i+1:]...)
			g.structure++
			return true
		}
	}
	return false
}

// Sets returns the primitive sets. The slice must not be modified.
func (g *Geometry) Sets() []primitive.Set { return g.sets }

// Version changes whenever arrays, sets or array data change.
func (g *Geometry) Version() uint64 {
	v := g.structure
	for _, a := range g.arrays {
		if a != nil {
			v += a.buf.Version()
		}
	}
	return v
}

// VertexCount returns the number of vertices of the position array.
func (g *Geometry) VertexCount() int {
	if p := g.arrays[Position]; p != nil {
		return p.Len()
	}
	return 0
}

// TriangleCount returns the triangles of all enabled sets. Sets that do not
// produce triangles count as zero.
func (g *Geometry) TriangleCount() int {
	n := 0
	for _, s := range g.sets {
		if c := s.TriangleCount(); c > 0 && s.Enabled() {
			n += c
		}
	}
	return n
}

// Bounds returns the local-space box of the positions, recomputed after the
// positions change. Geometry without positions has an empty box.
func (g *Geometry) Bounds() bounds.AABB {
	v := g.Version()
	if g.boundsValid && g.boundsVersion == v {
		return g.bounds
	}
	b := bounds.Empty()
	if p := g.arrays[Position]; p != nil && p.components > 0 {
		for i := 0; i+p.components <= len(p.data); i += p.components {
			var pt mgl32.Vec3
			copy(pt[:], p.data[i:i+min(p.components, 3)])
			b = b.Extend(pt)
		}
	}
	g.bounds = b
	g.boundsVersion = v
	g.boundsValid = true
	return b
}

// Validate checks that the geometry can be drawn: positions exist, every
// array has 1 to 4 components and the same vertex count, and non-indexed
// ranges stay within the arrays. The result is cached until the next data
// change.
func (g *Geometry) Validate() error {
	v := g.Version()
	if g.validDone && g.validVersion == v {
		return g.validErr
	}
	g.validErr = g.validate()
	g.validVersion = v
	g.validDone = true
	return g.validErr
}

func (g *Geometry) validate() error {
	pos := g.arrays[Position]
	if pos == nil {
		return fmt.Errorf("%w: %q", ErrNoPositions, g.name)
	}
	n := -1
	for i, a := range g.arrays {
		if a == nil {
			continue
		}
		attr := Attribute(i)
		if a.components < 1 || a.components > 4 {
			return fmt.Errorf("%w: %q %s has %d", ErrComponents, g.name, attr, a.components)
		}
		if len(a.data)%a.components != 0 {
			return fmt.Errorf("%w: %q %s holds a partial vertex", ErrVertexCount, g.name, attr)
		}
		if n < 0 {
			n = a.Len()
		} else if a.Len() != n {
			return fmt.Errorf("%w: %q %s has %d vertices, want %d", ErrVertexCount, g.name, attr, a.Len(), n)
		}
	}
	for _, s := range g.sets {
		switch x := s.(type) {
		case *primitive.DrawArrays:
			if x.First()+x.IndexCount() > n {
				return fmt.Errorf("%w: %q draws [%d, %d) of %d", ErrDrawRange, g.name, x.First(), x.First()+x.IndexCount(), n)
			}
		case interface{ Validate() error }:
			if err := x.Validate(); err != nil {
				return fmt.Errorf("geometry: %q: %w", g.name, err)
			}
		}
	}
	return nil
}
