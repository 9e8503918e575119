package scene

import "github.com/go-gl/mathgl/mgl32"

// Transform is a node of a transform hierarchy. The world matrix is the
// parent's world matrix times the local matrix and is recomputed lazily
// after the local matrix of the node or of any ancestor changes.
type Transform struct {
	local    mgl32.Mat4
	world    mgl32.Mat4
	parent   *Transform
	children []*Transform

	dirty         bool
	version       uint64
	parentVersion uint64
}

// NewTransform returns an identity transform.
func NewTransform() *Transform {
	return &Transform{local: mgl32.Ident4(), world: mgl32.Ident4(), version: 1}
}

// NewTransformAt returns a transform translated to p.
func NewTransformAt(p mgl32.Vec3) *Transform {
	t := NewTransform()
	t.SetLocal(mgl32.Translate3D(p[0], p[1], p[2]))
	return t
}

// Local returns the local matrix.
func (t *Transform) Local() mgl32.Mat4 { return t.local }

// SetLocal replaces the local matrix.
func (t *Transform) SetLocal(m mgl32.Mat4) {
	t.local = m
	t.dirty = true
}

// Translate post-multiplies the local matrix by a translation.
func (t *Transform) Translate(v mgl32.Vec3) {
	t.SetLocal(t.local.Mul4(mgl32.Translate3D(v[0], v[1], v[2])))
}

// Rotate post-multiplies the local matrix by a rotation of angle radians
// around axis.
func (t *Transform) Rotate(angle float32, axis mgl32.Vec3) {
	t.SetLocal(t.local.Mul4(mgl32.HomogRotate3D(angle, axis.Normalize())))
}

// Scale post-multiplies the local matrix by a scale.
func (t *Transform) Scale(v mgl32.Vec3) {
	t.SetLocal(t.local.Mul4(mgl32.Scale3D(v[0], v[1], v[2])))
}

// Parent returns the parent transform, or nil.
func (t *Transform) Parent() *Transform { return t.parent }

// Children returns the child transforms. The slice must not be modified.
func (t *Transform) Children() []*Transform { return t.children }

// AddChild attaches c below t, detaching it from its previous parent.
func (t *Transform) AddChild(c *Transform) {
	if c == nil || c == t {
		return
	}
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	c.parent = t
	c.dirty = true
	t.children = append(t.children, c)
}

// RemoveChild detaches c and reports whether it was a child of t.
func (t *Transform) RemoveChild(c *Transform) bool {
	for i, x := range t.children {
		if x == c {
			t.children = append(t.children[:i], t.children[i+1:]...)
			c.parent = nil
			c.dirty = true
			return true
		}
	}
	return false
}

// World returns the world matrix, recomputing it if needed.
func (t *Transform) World() mgl32.Mat4 {
	if t.parent == nil {
		if t.dirty {
			t.world = t.local
			t.dirty = false
			t.version++
		}
		return t.world
	}
	pw := t.parent.World()
	if t.dirty || t.parentVersion != t.parent.version {
		t.world = pw.Mul4(t.local)
		t.parentVersion = t.parent.version
		t.dirty = false
		t.version++
	}
	return t.world
}

// UpdateWorld recomputes the world matrices of t and its whole subtree.
func (t *Transform) UpdateWorld() {
	t.World()
	for _, c := range t.children {
		c.UpdateWorld()
	}
}

// Version changes every time the world matrix changes.
func (t *Transform) Version() uint64 {
	t.World()
	return t.version
}
