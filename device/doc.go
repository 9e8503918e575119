// Package device defines the abstract graphics context the renderer draws
// through, the pass descriptors it opens, the error taxonomy shared by all
// backends and the registry backends register themselves in.
//
// Backends register a factory from init(), in the database/sql driver
// style, and hosts open them by name:
//
//	import _ "github.com/gogpu/g3d/backend/opengl"
//
//	ctx, err := device.Open("opengl", device.Config{Width: 1280, Height: 720})
//
// The host owns the window and the native context. For the wgpu backend
// the host also owns the GPU device and passes it in Config.Provider.
package device
