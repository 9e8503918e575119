// Package shader describes GPU programs: their per-stage sources, their
// named uniform values and the outcome of linking them on a graphics
// context.
//
// The package does not compile GLSL itself. A Program is linked by handing
// it to a Compiler, which every graphics context implements; the program
// records the handle or the error and reports readiness to the renderer.
// WGSL sources can be translated to SPIR-V with CompileWGSL.
package shader
