// Package wgpu provides a graphics context drawing through the gogpu/wgpu
// hardware abstraction layer (Vulkan, Metal, DX12 or GLES, depending on the
// platform).
//
// The context renders offscreen into a color and a depth/stencil texture
// sized from device.Config; hosts present or read back ColorTexture.
//
// # Programs
//
// Only WGSL programs are supported. Programs are compiled to SPIR-V with
// naga; a WGSL module may carry both entry points. Every draw binds one
// uniform block at @group(0) @binding(0):
//
//	struct G3D {
//	    world: mat4x4<f32>,
//	    view:  mat4x4<f32>,
//	    proj:  mat4x4<f32>,
//	    params: array<vec4<f32>, 20>,
//	}
//
// params holds the uniforms set since the last SetMatrices, in order, one
// 16-byte slot per value and four slots per matrix.
//
// Vertex arrays are bound one buffer per attribute, with the shader
// location equal to the geometry.Attribute value.
//
// # Render States
//
// WebGPU folds depth, blend, cull and stencil state into pipelines. The
// context keeps the applied states and capabilities and looks up a pipeline
// keyed by them in an LRU cache at draw time. States without a WebGPU
// equivalent (polygon mode, line width, point size, polygon offset, texture
// units, clip planes) are kept but have no effect.
//
// Topologies WebGPU lacks (LineLoop, TriangleFan, Quads, QuadStrip,
// Polygon) and sets with primitive restart are flattened into transient
// index lists before drawing.
//
// Importing the package registers the "wgpu" backend with device.Open. The
// config must carry a Provider exposing HalDevice and HalQueue.
package wgpu
