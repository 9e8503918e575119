//go:build !nogl

package opengl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gogpu/g3d/shader"
	"github.com/gogpu/g3d/state"
)

// ErrUnsupportedLanguage is returned for programs not written in GLSL.
var ErrUnsupportedLanguage = errors.New("opengl: only GLSL programs are supported")

// errComputeStage is returned for compute programs, which need GL 4.3.
var errComputeStage = errors.New("opengl: compute shaders need OpenGL 4.3")

// Built-in uniform names.
const (
	uniformWorld      = "g3d_World"
	uniformView       = "g3d_View"
	uniformProjection = "g3d_Projection"
	uniformClipPlane  = "g3d_ClipPlane"
)

// program is a linked GL program, stored as the shader.Program handle.
type program struct {
	handle uint32
	name   string

	world, view, proj int32
	clip              [state.MaxClipPlanes]int32

	locations map[string]int32
}

func stageType(s shader.Stage) (uint32, error) {
	switch s {
	case shader.Vertex:
		return gl.VERTEX_SHADER, nil
	case shader.Fragment:
		return gl.FRAGMENT_SHADER, nil
	case shader.Geometry:
		return gl.GEOMETRY_SHADER, nil
	}
	return 0, errComputeStage
}

// checkProgram rejects programs this backend cannot compile, before any GL
// call is made.
func checkProgram(p *shader.Program) error {
	if p.Language() != shader.GLSL {
		return fmt.Errorf("%w: %q is %s", ErrUnsupportedLanguage, p.Name(), p.Language())
	}
	for _, src := range p.Sources() {
		if _, err := stageType(src.Stage); err != nil {
			return fmt.Errorf("%w: %q", err, p.Name())
		}
	}
	return nil
}

// compileShader compiles one stage and returns its handle.
func compileShader(typ uint32, src string) (uint32, error) {
	handle := gl.CreateShader(typ)
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(handle, 1, csources, nil)
	free()
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(handle, logLength, nil, gl.Str(msg))
		gl.DeleteShader(handle)
		return 0, fmt.Errorf("compile: %s", strings.TrimRight(msg, "\x00"))
	}
	return handle, nil
}

// linkProgram compiles and links every stage of p.
func linkProgram(p *shader.Program) (*program, error) {
	if err := checkProgram(p); err != nil {
		return nil, err
	}
	handle := gl.CreateProgram()
	shaders := make([]uint32, 0, len(p.Sources()))
	defer func() {
		for _, sh := range shaders {
			gl.DetachShader(handle, sh)
			gl.DeleteShader(sh)
		}
	}()
	for _, src := range p.Sources() {
		typ, _ := stageType(src.Stage)
		sh, err := compileShader(typ, src.Code)
		if err != nil {
			gl.DeleteProgram(handle)
			return nil, fmt.Errorf("opengl: %s shader of %q: %w", src.Stage, p.Name(), err)
		}
		gl.AttachShader(handle, sh)
		shaders = append(shaders, sh)
	}
	gl.LinkProgram(handle)

	var status int32
	gl.GetProgramiv(handle, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(handle, logLength, nil, gl.Str(msg))
		gl.DeleteProgram(handle)
		return nil, fmt.Errorf("opengl: link %q: %s", p.Name(), strings.TrimRight(msg, "\x00"))
	}

	prog := &program{handle: handle, name: p.Name(), locations: make(map[string]int32)}
	prog.world = prog.location(uniformWorld)
	prog.view = prog.location(uniformView)
	prog.proj = prog.location(uniformProjection)
	for n := range prog.clip {
		prog.clip[n] = prog.location(uniformClipPlane + "[" + strconv.Itoa(n) + "]")
	}
	return prog, nil
}

// location returns the uniform location of name, -1 when the program does
// not declare it. Lookups are cached.
func (p *program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.handle, gl.Str(name+"\x00"))
	p.locations[name] = loc
	return loc
}

// setUniform uploads one value to the program in use.
func (p *program) setUniform(u shader.Uniform) {
	loc := p.location(u.Name)
	if loc < 0 {
		return
	}
	switch u.Type {
	case shader.Float:
		gl.Uniform1f(loc, u.F[0])
	case shader.Int:
		gl.Uniform1i(loc, u.I)
	case shader.Vec2:
		gl.Uniform2f(loc, u.F[0], u.F[1])
	case shader.Vec3:
		gl.Uniform3f(loc, u.F[0], u.F[1], u.F[2])
	case shader.Vec4:
		gl.Uniform4f(loc, u.F[0], u.F[1], u.F[2], u.F[3])
	case shader.Mat4:
		gl.UniformMatrix4fv(loc, 1, false, &u.F[0])
	}
}

func (p *program) delete() {
	gl.DeleteProgram(p.handle)
	p.handle = 0
}
