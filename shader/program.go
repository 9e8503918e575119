package shader

import (
	"fmt"
	"sync/atomic"

	"github.com/gogpu/g3d"
)

var nextProgramID atomic.Uint64

// Compiler turns a program description into a context-specific handle.
// Graphics contexts implement it.
type Compiler interface {
	CompileProgram(p *Program) (any, error)
}

// Program is a GPU program: a set of stage sources plus uniform defaults.
//
// Linking happens at most once per compiler. The program keeps the result,
// so an entry whose program failed to link is skipped cheaply every frame
// until Relink is called.
type Program struct {
	id       uint64
	name     string
	sources  []Source
	uniforms *Uniforms

	linked bool
	linker Compiler
	handle any
	err    error
}

// NewProgram creates a program from stage sources.
func NewProgram(name string, sources ...Source) *Program {
	return &Program{
		id:       nextProgramID.Add(1),
		name:     name,
		sources:  sources,
		uniforms: NewUniforms(),
	}
}

// ID returns the process-unique program identity. Renderers sort by it to
// batch draws that share a program.
func (p *Program) ID() uint64 { return p.id }

// Name returns the program name.
func (p *Program) Name() string { return p.name }

// Sources returns the stage sources.
func (p *Program) Sources() []Source { return p.sources }

// Source returns the source of stage s.
func (p *Program) Source(s Stage) (Source, bool) {
	for _, src := range p.sources {
		if src.Stage == s {
			return src, true
		}
	}
	return Source{}, false
}

// Language returns the language of the first source.
func (p *Program) Language() Language {
	if len(p.sources) == 0 {
		return GLSL
	}
	return p.sources[0].Language
}

// Uniforms returns the program's default uniform values.
func (p *Program) Uniforms() *Uniforms { return p.uniforms }

// Validate checks that the program has a usable set of stages.
func (p *Program) Validate() error {
	if len(p.sources) == 0 {
		return ErrNoSources
	}
	lang := p.sources[0].Language
	var has [Compute + 1]bool
	for _, src := range p.sources {
		if src.Language != lang {
			return fmt.Errorf("%w: %s and %s", ErrMixedLanguages, lang, src.Language)
		}
		if src.Stage <= Compute {
			has[src.Stage] = true
		}
	}
	if has[Compute] {
		return nil
	}
	if !has[Vertex] {
		return fmt.Errorf("%w: %s", ErrMissingStage, Vertex)
	}
	if !has[Fragment] {
		return fmt.Errorf("%w: %s", ErrMissingStage, Fragment)
	}
	return nil
}

// Link compiles the program with c unless it was already linked by c.
// The outcome is recorded and returned on later calls.
func (p *Program) Link(c Compiler) error {
	if p.linked && p.linker == c {
		return p.err
	}
	p.linked = true
	p.linker = c
	p.handle = nil
	if err := p.Validate(); err != nil {
		p.err = fmt.Errorf("shader: program %q: %w", p.name, err)
		return p.err
	}
	h, err := c.CompileProgram(p)
	if err != nil {
		p.err = fmt.Errorf("shader: link %q: %w", p.name, err)
		g3d.Logger().Warn("shader: link failed", "program", p.name, "err", err)
		return p.err
	}
	p.err = nil
	p.handle = h
	g3d.Logger().Info("shader: program linked", "program", p.name, "id", p.id)
	return nil
}

// Linked reports whether a link was attempted since the last Relink.
func (p *Program) Linked() bool { return p.linked }

// Ready reports whether the program linked successfully.
func (p *Program) Ready() bool { return p.linked && p.err == nil }

// Err returns the recorded link error, if any.
func (p *Program) Err() error { return p.err }

// Handle returns the handle produced by the compiler.
func (p *Program) Handle() any { return p.handle }

// LinkedBy reports whether the recorded link result belongs to c.
func (p *Program) LinkedBy(c Compiler) bool { return p.linked && p.linker == c }

// Relink forgets the recorded link result. The next Link compiles again.
func (p *Program) Relink() {
	p.linked = false
	p.linker = nil
	p.handle = nil
	p.err = nil
}
