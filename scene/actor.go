package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/g3d/bounds"
	"github.com/gogpu/g3d/geometry"
	"github.com/gogpu/g3d/shader"
)

// AllLayers is the enable mask matching every rendering.
const AllLayers = ^uint32(0)

// Actor places a shared geometry, drawn with a shared effect, in the world.
type Actor struct {
	Name      string
	Geometry  *geometry.Geometry
	Effect    *Effect
	Transform *Transform

	// EnableMask is matched against the rendering's mask. An actor is drawn
	// only when the two share a bit.
	EnableMask uint32

	// RenderRank orders actors before any other criterion, lower first.
	RenderRank int

	// RenderBlock groups actors within a rank, lower first.
	RenderBlock int

	// Uniforms are per-actor values applied after the pass uniforms.
	Uniforms *shader.Uniforms

	worldBounds  bounds.AABB
	boundsGeom   uint64
	boundsXform  uint64
	boundsCached bool
}

// NewActor creates an actor visible to every rendering. A nil transform
// means the identity.
func NewActor(name string, g *geometry.Geometry, e *Effect, t *Transform) *Actor {
	return &Actor{
		Name:       name,
		Geometry:   g,
		Effect:     e,
		Transform:  t,
		EnableMask: AllLayers,
	}
}

// World returns the world matrix of the actor.
func (a *Actor) World() mgl32.Mat4 {
	if a.Transform == nil {
		return mgl32.Ident4()
	}
	return a.Transform.World()
}

// WorldBounds returns the world-space box of the geometry, cached until the
// geometry or the transform changes.
func (a *Actor) WorldBounds() bounds.AABB {
	if a.Geometry == nil {
		return bounds.Empty()
	}
	gv := a.Geometry.Version()
	var tv uint64
	if a.Transform != nil {
		tv = a.Transform.Version()
	}
	if a.boundsCached && a.boundsGeom == gv && a.boundsXform == tv {
		return a.worldBounds
	}
	a.worldBounds = a.Geometry.Bounds().Transform(a.World())
	a.boundsGeom = gv
	a.boundsXform = tv
	a.boundsCached = true
	return a.worldBounds
}
