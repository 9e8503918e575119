// Package opengl provides a graphics context drawing through OpenGL 4.1
// core profile, using go-gl.
//
// The host creates the window and makes its OpenGL context current on the
// calling thread before opening the backend:
//
//	import _ "github.com/gogpu/g3d/backend/opengl"
//
//	win.MakeContextCurrent()
//	ctx, err := device.Open("opengl", device.Config{Width: w, Height: h})
//
// All calls on the Context must come from that thread.
//
// # Programs
//
// Only GLSL programs are supported. Every draw sets these uniforms when
// the program declares them:
//
//	uniform mat4 g3d_World;
//	uniform mat4 g3d_View;
//	uniform mat4 g3d_Projection;
//	uniform vec4 g3d_ClipPlane[8];
//
// Pass and actor uniforms are set by name. Vertex attributes are bound at
// the location equal to the geometry.Attribute value, so shaders declare
// them with layout(location = N).
//
// Quads, QuadStrip and Polygon are triangulated before drawing.
//
// Importing the package registers the "opengl" backend with device.Open.
// Build with the nogl tag to leave it out.
package opengl
