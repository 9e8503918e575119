// Package scene holds what the renderer draws: actors pairing a shared
// geometry with a shared effect and a transform, the managers that hand
// actors to a rendering each frame, and the camera they are seen through.
//
// Geometry and effects are plain pointers and may be shared by any number
// of actors; they live as long as the last actor referencing them.
package scene
