package scene

import (
	"github.com/gogpu/g3d/shader"
	"github.com/gogpu/g3d/state"
)

// Shader is one rendering pass of an effect: the render states and
// capabilities applied for it plus uniform values.
type Shader struct {
	States   *state.Set
	Enables  state.EnableSet
	Uniforms *shader.Uniforms
}

// NewShader returns a pass with an empty state set and depth testing on.
func NewShader() *Shader {
	return &Shader{
		States:   state.NewSet(),
		Enables:  state.NewEnableSet(state.CapDepthTest),
		Uniforms: shader.NewUniforms(),
	}
}

// NewProgramShader returns a pass using program p.
func NewProgramShader(p *shader.Program) *Shader {
	s := NewShader()
	s.States.SetProgram(p)
	return s
}

// Program returns the program of the pass, or nil.
func (s *Shader) Program() *shader.Program {
	return s.States.Program()
}

// Translucent reports whether the pass blends with what is already drawn.
// Translucent passes are drawn after opaque ones, back to front.
func (s *Shader) Translucent() bool {
	return s.Enables.Has(state.CapBlend)
}

// Effect is a named, shareable list of rendering passes. An actor is drawn
// once per pass.
type Effect struct {
	Name       string
	RenderRank int
	Passes     []*Shader
}

// NewEffect creates an effect. With no passes a single default pass is
// created.
func NewEffect(name string, passes ...*Shader) *Effect {
	if len(passes) == 0 {
		passes = []*Shader{NewShader()}
	}
	return &Effect{Name: name, Passes: passes}
}

// Shader returns pass i, or nil.
func (e *Effect) Shader(i int) *Shader {
	if i < 0 || i >= len(e.Passes) {
		return nil
	}
	return e.Passes[i]
}
