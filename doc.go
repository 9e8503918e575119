// Package g3d is a scene-graph based real-time 3D rendering core.
//
// # Overview
//
// g3d takes a scene of actors (geometry, effect, transform) and a camera,
// culls and sorts them into a render queue, resolves the effective render
// state of every draw by diffing it against what the graphics context already
// has applied, and issues draw calls through a uniform abstraction over
// primitive topologies.
//
// # Quick Start
//
//	ctx, _ := device.Open("recording", device.Config{Width: 800, Height: 600})
//
//	cam := scene.NewCamera()
//	cam.SetPerspective(60, 800.0/600.0, 0.1, 100)
//	cam.LookAt(mgl32.Vec3{0, 2, 8}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
//
//	actors := scene.NewActorList()
//	actors.Add(scene.NewActor("cube", geom, effect, scene.NewTransform()))
//
//	r := render.NewRendering(cam, render.WithCulling(true))
//	r.AddManager(actors)
//	if err := r.Render(ctx); err != nil {
//	    // fatal: the graphics context is lost or was never bound
//	}
//
// # Architecture
//
// The module is organized into:
//   - primitive: draw commands over index/vertex ranges and triangle decomposition
//   - state: render states, enable sets and the applied-state tracker
//   - shader, geometry, bounds: programs, vertex data, bounding volumes
//   - scene: actors, effects, transforms, camera, scene managers
//   - render: render queue, renderer state machine, callbacks, renderings
//   - device: the abstract graphics context and backend registry
//   - recording, backend/opengl, backend/wgpu: graphics context implementations
//
// # Thread Safety
//
// Rendering is single-threaded per graphics context. Every context owns one
// applied-state tracker; use one Rendering per context.
package g3d

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
