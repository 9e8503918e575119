// Package geometry holds renderable vertex data: a fixed set of named
// float32 vertex arrays plus the primitive sets that draw them.
//
// A Geometry can be shared by any number of actors. Every data update goes
// through an explicit call (SetArray, VertexArray.Set, Invalidate) that
// bumps the version of the affected buffer, so graphics contexts re-upload
// exactly what changed.
package geometry
