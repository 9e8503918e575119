package scene

import (
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/g3d/device"
	"github.com/gogpu/g3d/geometry"
	"github.com/gogpu/g3d/state"
)

func vecNear(a, b mgl32.Vec3) bool {
	return a.ApproxEqualThreshold(b, 1e-4)
}

func TestTransformHierarchy(t *testing.T) {
	root := NewTransformAt(mgl32.Vec3{10, 0, 0})
	child := NewTransformAt(mgl32.Vec3{0, 5, 0})
	root.AddChild(child)

	p := child.World().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	if !vecNear(p, mgl32.Vec3{10, 5, 0}) {
		t.Errorf("child origin = %v, want [10 5 0]", p)
	}

	v := child.Version()
	root.Translate(mgl32.Vec3{1, 0, 0})
	if child.Version() == v {
		t.Error("moving the parent should change the child version")
	}
	p = child.World().Col(3).Vec3()
	if !vecNear(p, mgl32.Vec3{11, 5, 0}) {
		t.Errorf("child origin after parent move = %v", p)
	}

	v = child.Version()
	if child.Version() != v {
		t.Error("version should be stable without changes")
	}

	if !root.RemoveChild(child) || child.Parent() != nil {
		t.Fatal("RemoveChild failed")
	}
	if !vecNear(child.World().Col(3).Vec3(), mgl32.Vec3{0, 5, 0}) {
		t.Error("detached child should use its local matrix")
	}
}

func TestTransformReparent(t *testing.T) {
	a, b, c := NewTransform(), NewTransform(), NewTransform()
	a.AddChild(c)
	b.AddChild(c)
	if len(a.Children()) != 0 || c.Parent() != b {
		t.Error("AddChild should detach from the previous parent")
	}
	a.AddChild(a)
	if len(a.Children()) != 0 {
		t.Error("a transform cannot be its own child")
	}
}

func TestActorWorldBounds(t *testing.T) {
	g := geometry.Box("box", mgl32.Vec3{2, 2, 2})
	tr := NewTransformAt(mgl32.Vec3{5, 0, 0})
	a := NewActor("a", g, NewEffect("e"), tr)

	b := a.WorldBounds()
	if !vecNear(b.Min, mgl32.Vec3{4, -1, -1}) || !vecNear(b.Max, mgl32.Vec3{6, 1, 1}) {
		t.Errorf("WorldBounds() = %v", b)
	}

	tr.Translate(mgl32.Vec3{0, 10, 0})
	if b := a.WorldBounds(); !vecNear(b.Min, mgl32.Vec3{4, 9, -1}) {
		t.Errorf("WorldBounds() after move = %v", b)
	}

	if !NewActor("empty", nil, nil, nil).WorldBounds().IsEmpty() {
		t.Error("actor without geometry should have empty bounds")
	}
}

func TestEffect(t *testing.T) {
	e := NewEffect("e")
	if len(e.Passes) != 1 || e.Shader(0) == nil || e.Shader(1) != nil {
		t.Fatal("NewEffect should create one default pass")
	}
	s := e.Shader(0)
	if s.Translucent() {
		t.Error("default pass should be opaque")
	}
	s.Enables.Enable(state.CapBlend)
	if !s.Translucent() {
		t.Error("blending pass should be translucent")
	}
	if s.Program() != nil {
		t.Error("default pass has no program")
	}
}

func TestActorList(t *testing.T) {
	a, b := NewActor("a", nil, nil, nil), NewActor("b", nil, nil, nil)
	l := NewActorList(a)
	l.Add(b)
	got := l.Actors(nil, nil)
	if !slices.Equal(got, []*Actor{a, b}) {
		t.Errorf("Actors() = %v", got)
	}
	if !l.Remove(a) || l.Remove(a) || l.Len() != 1 {
		t.Error("Remove mismatch")
	}
	l.SetEnabled(false)
	if l.Enabled() {
		t.Error("SetEnabled(false) ignored")
	}
}

func TestActorTreePrunes(t *testing.T) {
	box := geometry.Box("box", mgl32.Vec3{1, 1, 1})
	e := NewEffect("e")
	front := NewActor("front", box, e, NewTransformAt(mgl32.Vec3{0, 0, -10}))
	behind1 := NewActor("behind1", box, e, NewTransformAt(mgl32.Vec3{0, 0, 10}))
	behind2 := NewActor("behind2", box, e, NewTransformAt(mgl32.Vec3{1, 0, 12}))

	tree := NewActorTree()
	tree.Root().AddChild("front").AddActor(front)
	back := tree.Root().AddChild("back")
	back.AddActor(behind1)
	back.AddChild("deeper").AddActor(behind2)

	cam := NewCamera()
	cam.SetPerspective(90, 1, 1, 100)

	got := tree.Actors(nil, cam.Frustum())
	if !slices.Equal(got, []*Actor{front}) {
		names := []string{}
		for _, a := range got {
			names = append(names, a.Name)
		}
		t.Errorf("culled Actors() = %v, want [front]", names)
	}
	if back.Bounds().IsEmpty() {
		t.Error("back node bounds should enclose its subtree")
	}

	if n := len(tree.Actors(nil, nil)); n != 3 {
		t.Errorf("unculled Actors() = %d actors, want 3", n)
	}
}

func TestCamera(t *testing.T) {
	cam := NewCamera()
	cam.LookAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	if !vecNear(cam.Position(), mgl32.Vec3{0, 0, 10}) {
		t.Errorf("Position() = %v", cam.Position())
	}
	if d := cam.Depth(mgl32.Vec3{0, 0, 0}); !mgl32.FloatEqualThreshold(d, 10, 1e-4) {
		t.Errorf("Depth(origin) = %v, want 10", d)
	}
	if d := cam.Depth(mgl32.Vec3{0, 0, 20}); d >= 0 {
		t.Errorf("Depth(behind) = %v, want negative", d)
	}

	cam.Resize(800, 400)
	if cam.Viewport() != (device.Viewport{Width: 800, Height: 400}) {
		t.Errorf("Viewport() = %+v", cam.Viewport())
	}
	want := mgl32.Perspective(mgl32.DegToRad(60), 2, 0.1, 1000)
	if !cam.Projection().ApproxEqual(want) {
		t.Error("Resize should adapt the aspect ratio")
	}

	desc := cam.PassDescriptor("main")
	if desc.Clear != device.ClearAll || desc.ClearDepth != 1 || desc.Label != "main" {
		t.Errorf("PassDescriptor() = %+v", desc)
	}

	cam.SetOrtho(-1, 1, -1, 1, 0, 10)
	cam.Resize(100, 100)
	if !cam.Projection().ApproxEqual(mgl32.Ortho(-1, 1, -1, 1, 0, 10)) {
		t.Error("Resize should keep an orthographic projection")
	}
}
