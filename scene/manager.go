package scene

import (
	"slices"

	"github.com/gogpu/g3d/bounds"
)

// Manager yields the candidate actors of a scene each frame.
type Manager interface {
	// Actors appends candidate actors to dst and returns it. A non-nil
	// frustum allows the manager to skip whole groups of invisible actors;
	// returned actors are still culled individually by the caller.
	Actors(dst []*Actor, f *bounds.Frustum) []*Actor

	// Enabled reports whether the manager takes part in rendering.
	Enabled() bool
}

// ActorList is a flat Manager.
type ActorList struct {
	actors   []*Actor
	disabled bool
}

// NewActorList creates a list holding actors.
func NewActorList(actors ...*Actor) *ActorList {
	return &ActorList{actors: actors}
}

// Add appends actors.
func (l *ActorList) Add(actors ...*Actor) {
	l.actors = append(l.actors, actors...)
}

// Remove deletes a from the list and reports whether it was present.
func (l *ActorList) Remove(a *Actor) bool {
	i := slices.Index(l.actors, a)
	if i < 0 {
		return false
	}
	l.actors = slices.Delete(l.actors, i, i+1)
	return true
}

// Len returns the number of actors.
func (l *ActorList) Len() int { return len(l.actors) }

// Clear removes every actor.
func (l *ActorList) Clear() { l.actors = l.actors[:0] }

// SetEnabled enables or disables the list.
func (l *ActorList) SetEnabled(enabled bool) { l.disabled = !enabled }

// Enabled reports whether the list takes part in rendering.
func (l *ActorList) Enabled() bool { return !l.disabled }

// Actors appends every actor to dst.
func (l *ActorList) Actors(dst []*Actor, _ *bounds.Frustum) []*Actor {
	return append(dst, l.actors...)
}

// ActorTree is a hierarchical Manager. The bounds of a node enclose its
// actors and children, so a node outside the frustum is skipped with
// everything below it.
type ActorTree struct {
	root     *TreeNode
	disabled bool
}

// TreeNode is one node of an ActorTree.
type TreeNode struct {
	Name     string
	actors   []*Actor
	children []*TreeNode
	bounds   bounds.AABB
}

// NewActorTree creates a tree with an empty root.
func NewActorTree() *ActorTree {
	return &ActorTree{root: &TreeNode{Name: "root"}}
}

// Root returns the root node.
func (t *ActorTree) Root() *TreeNode { return t.root }

// SetEnabled enables or disables the tree.
func (t *ActorTree) SetEnabled(enabled bool) { t.disabled = !enabled }

// Enabled reports whether the tree takes part in rendering.
func (t *ActorTree) Enabled() bool { return !t.disabled }

// Actors appends the actors of every node whose bounds intersect f, or of
// every node when f is nil.
func (t *ActorTree) Actors(dst []*Actor, f *bounds.Frustum) []*Actor {
	if f == nil {
		return t.root.collect(dst, nil)
	}
	t.root.updateBounds()
	return t.root.collect(dst, f)
}

// AddActor adds actors to the node.
func (n *TreeNode) AddActor(actors ...*Actor) {
	n.actors = append(n.actors, actors...)
}

// AddChild creates and returns a child node.
func (n *TreeNode) AddChild(name string) *TreeNode {
	c := &TreeNode{Name: name}
	n.children = append(n.children, c)
	return c
}

// Actors returns the actors of the node itself.
func (n *TreeNode) Actors() []*Actor { return n.actors }

// Children returns the child nodes.
func (n *TreeNode) Children() []*TreeNode { return n.children }

// Bounds returns the bounds computed by the last culled traversal.
func (n *TreeNode) Bounds() bounds.AABB { return n.bounds }

func (n *TreeNode) updateBounds() bounds.AABB {
	b := bounds.Empty()
	for _, a := range n.actors {
		b = b.Union(a.WorldBounds())
	}
	for _, c := range n.children {
		b = b.Union(c.updateBounds())
	}
	n.bounds = b
	return b
}

func (n *TreeNode) collect(dst []*Actor, f *bounds.Frustum) []*Actor {
	if f != nil && !f.IntersectsAABB(n.bounds) {
		return dst
	}
	dst = append(dst, n.actors...)
	for _, c := range n.children {
		dst = c.collect(dst, f)
	}
	return dst
}
