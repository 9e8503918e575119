package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/g3d/geometry"
	"github.com/gogpu/g3d/scene"
	"github.com/gogpu/g3d/shader"
	"github.com/gogpu/g3d/state"
)

const glslVertex = `#version 410 core
layout(location = 0) in vec3 position;
layout(location = 1) in vec3 normal;
uniform mat4 g3d_World;
uniform mat4 g3d_View;
uniform mat4 g3d_Projection;
out vec3 vNormal;
void main() {
	vNormal = mat3(g3d_World) * normal;
	gl_Position = g3d_Projection * g3d_View * g3d_World * vec4(position, 1.0);
}
`

const glslFragment = `#version 410 core
in vec3 vNormal;
uniform vec4 tint;
out vec4 color;
void main() {
	float l = max(dot(normalize(vNormal), normalize(vec3(0.3, 0.8, 0.5))), 0.2);
	color = vec4(tint.rgb * l, tint.a);
}
`

const wgslModule = `
struct G3D {
	world: mat4x4<f32>,
	view: mat4x4<f32>,
	proj: mat4x4<f32>,
	params: array<vec4<f32>, 20>,
}

@group(0) @binding(0) var<uniform> u: G3D;

struct VertexOut {
	@builtin(position) position: vec4<f32>,
	@location(0) normal: vec3<f32>,
}

@vertex
fn vs_main(@location(0) position: vec3<f32>, @location(1) normal: vec3<f32>) -> VertexOut {
	var o: VertexOut;
	o.position = u.proj * u.view * u.world * vec4<f32>(position, 1.0);
	o.normal = (u.world * vec4<f32>(normal, 0.0)).xyz;
	return o;
}

@fragment
fn fs_main(v: VertexOut) -> @location(0) vec4<f32> {
	let tint = u.params[0];
	let l = max(dot(normalize(v.normal), normalize(vec3<f32>(0.3, 0.8, 0.5))), 0.2);
	return vec4<f32>(tint.rgb * l, tint.a);
}
`

// newProgram returns the lit program in the language backend compiles.
func newProgram(backend string) *shader.Program {
	if backend == "wgpu" {
		return shader.NewProgram("lit",
			shader.Source{Stage: shader.Vertex, Language: shader.WGSL, Code: wgslModule},
			shader.Source{Stage: shader.Fragment, Language: shader.WGSL, Code: wgslModule},
		)
	}
	return shader.NewProgram("lit",
		shader.Source{Stage: shader.Vertex, Language: shader.GLSL, Code: glslVertex},
		shader.Source{Stage: shader.Fragment, Language: shader.GLSL, Code: glslFragment},
	)
}

// buildScene lays out cfg.Grid x cfg.Grid cubes on the XZ plane. Every
// TranslucentEvery-th cube uses a blended effect.
func buildScene(cfg Config, p *shader.Program) *scene.ActorList {
	cube := geometry.Box("cube", mgl32.Vec3{0.8, 0.8, 0.8})

	solid := scene.NewProgramShader(p)
	solid.Enables.Enable(state.CapCullFace)
	solid.Uniforms.SetVec4("tint", mgl32.Vec4{0.8, 0.5, 0.2, 1})
	opaque := scene.NewEffect("opaque", solid)

	glass := scene.NewProgramShader(p)
	glass.Enables.Enable(state.CapBlend)
	glass.States.SetRenderState(state.AlphaBlend())
	glass.States.SetRenderState(state.DepthMask{Write: false})
	glass.Uniforms.SetVec4("tint", mgl32.Vec4{0.2, 0.6, 0.9, 0.4})
	translucent := scene.NewEffect("translucent", glass)

	list := scene.NewActorList()
	half := float32(cfg.Grid-1) / 2
	for i := range cfg.Grid * cfg.Grid {
		x, z := float32(i%cfg.Grid)-half, float32(i/cfg.Grid)-half
		e := opaque
		if cfg.TranslucentEvery > 0 && i%cfg.TranslucentEvery == cfg.TranslucentEvery-1 {
			e = translucent
		}
		list.Add(scene.NewActor(fmt.Sprintf("cube-%d", i), cube, e,
			scene.NewTransformAt(mgl32.Vec3{x * 1.5, 0, z * 1.5})))
	}
	return list
}

// newCamera frames the grid from above and behind.
func newCamera(cfg Config) *scene.Camera {
	cam := scene.NewCamera()
	cam.Resize(cfg.Width, cfg.Height)
	cam.SetPerspective(cfg.FOV, float32(cfg.Width)/float32(cfg.Height), 0.1, 200)
	d := float32(cfg.Grid) * 1.5
	cam.LookAt(mgl32.Vec3{0, d * 0.8, d * 1.2}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	cam.SetClearColor(gputypes.Color{R: 0.1, G: 0.1, B: 0.12, A: 1})
	return cam
}
