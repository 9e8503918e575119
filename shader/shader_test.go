package shader

import (
	"errors"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const testWGSL = `
@vertex
fn vs_main(@location(0) pos: vec3<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(pos, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`

type mockCompiler struct {
	calls int
	err   error
}

func (m *mockCompiler) CompileProgram(p *Program) (any, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return p.Name() + "-handle", nil
}

func glslProgram() *Program {
	return NewProgram("basic",
		Source{Stage: Vertex, Language: GLSL, Code: "void main() {}"},
		Source{Stage: Fragment, Language: GLSL, Code: "void main() {}"},
	)
}

func TestProgramValidate(t *testing.T) {
	tests := []struct {
		name    string
		sources []Source
		want    error
	}{
		{"empty", nil, ErrNoSources},
		{"vertex only", []Source{{Stage: Vertex}}, ErrMissingStage},
		{"fragment only", []Source{{Stage: Fragment}}, ErrMissingStage},
		{"vertex fragment", []Source{{Stage: Vertex}, {Stage: Fragment}}, nil},
		{"compute", []Source{{Stage: Compute, Language: WGSL}}, nil},
		{"mixed", []Source{{Stage: Vertex}, {Stage: Fragment, Language: WGSL}}, ErrMixedLanguages},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewProgram(tt.name, tt.sources...).Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestProgramLinkOnce(t *testing.T) {
	p := glslProgram()
	c := &mockCompiler{}

	if p.Linked() || p.Ready() {
		t.Fatal("new program should not be linked")
	}
	if err := p.Link(c); err != nil {
		t.Fatalf("Link() error = %v", err)
	}
	if err := p.Link(c); err != nil {
		t.Fatalf("second Link() error = %v", err)
	}
	if c.calls != 1 {
		t.Errorf("compiler called %d times, want 1", c.calls)
	}
	if !p.Ready() || p.Handle() != "basic-handle" || !p.LinkedBy(c) {
		t.Errorf("Ready() = %v, Handle() = %v", p.Ready(), p.Handle())
	}

	other := &mockCompiler{}
	_ = p.Link(other)
	if other.calls != 1 {
		t.Error("a different compiler should link again")
	}

	p.Relink()
	if p.Linked() || p.Handle() != nil {
		t.Error("Relink should clear the link record")
	}
	_ = p.Link(c)
	if c.calls != 2 {
		t.Errorf("compiler called %d times after Relink, want 2", c.calls)
	}
}

func TestProgramLinkFailure(t *testing.T) {
	errCompile := errors.New("syntax error")
	p := glslProgram()
	c := &mockCompiler{err: errCompile}

	err := p.Link(c)
	if !errors.Is(err, errCompile) {
		t.Fatalf("Link() = %v, want wrapped compile error", err)
	}
	if p.Ready() || !p.Linked() {
		t.Errorf("Ready() = %v, Linked() = %v", p.Ready(), p.Linked())
	}
	if !errors.Is(p.Link(c), errCompile) || c.calls != 1 {
		t.Error("failed link result should be recorded")
	}

	invalid := NewProgram("broken")
	if err := invalid.Link(c); !errors.Is(err, ErrNoSources) {
		t.Errorf("Link() invalid = %v, want ErrNoSources", err)
	}
	if c.calls != 1 {
		t.Error("invalid program should not reach the compiler")
	}
}

func TestProgramIDsUnique(t *testing.T) {
	a, b := glslProgram(), glslProgram()
	if a.ID() == b.ID() {
		t.Error("programs should have distinct IDs")
	}
}

func TestSourceEntry(t *testing.T) {
	tests := []struct {
		src  Source
		want string
	}{
		{Source{Stage: Vertex, Language: GLSL}, "main"},
		{Source{Stage: Vertex, Language: WGSL}, "vs_main"},
		{Source{Stage: Fragment, Language: WGSL}, "fs_main"},
		{Source{Stage: Compute, Language: WGSL}, "cs_main"},
		{Source{Stage: Fragment, Language: WGSL, EntryPoint: "shade"}, "shade"},
	}
	for _, tt := range tests {
		if got := tt.src.Entry(); got != tt.want {
			t.Errorf("%v/%v Entry() = %q, want %q", tt.src.Stage, tt.src.Language, got, tt.want)
		}
	}
}

func TestUniforms(t *testing.T) {
	u := NewUniforms()
	u.SetFloat("alpha", 0.5)
	u.SetVec3("light", mgl32.Vec3{1, 2, 3})
	u.SetInt("mode", 2)
	v := u.Version()
	u.SetFloat("alpha", 0.25)

	if u.Version() == v {
		t.Error("Set should bump the version")
	}
	if u.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", u.Len())
	}
	names := make([]string, 0, u.Len())
	for _, x := range u.Values() {
		names = append(names, x.Name)
	}
	if !slices.Equal(names, []string{"alpha", "light", "mode"}) {
		t.Errorf("order = %v", names)
	}
	if a, _ := u.Get("alpha"); a.Float32() != 0.25 {
		t.Errorf("alpha = %v, want 0.25", a.Float32())
	}
	if l, _ := u.Get("light"); l.Vec3() != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("light = %v", l.Vec3())
	}

	if !u.Remove("light") || u.Remove("light") {
		t.Error("Remove should succeed once")
	}
	if m, ok := u.Get("mode"); !ok || m.I != 2 {
		t.Errorf("mode after remove = %v, %v", m, ok)
	}

	u.SetMat4("model", mgl32.Ident4())
	packed := u.Pack(nil)
	// alpha (4) + mode (4) + model (16)
	if len(packed) != 24 {
		t.Fatalf("Pack() len = %d, want 24", len(packed))
	}
	if packed[0] != 0.25 || packed[4] != 2 || packed[8] != 1 || packed[13] != 1 {
		t.Errorf("Pack() = %v", packed)
	}
}

func TestNilUniforms(t *testing.T) {
	var u *Uniforms
	if u.Len() != 0 || u.Values() != nil {
		t.Error("nil Uniforms should be empty")
	}
	if _, ok := u.Get("x"); ok {
		t.Error("nil Uniforms Get should fail")
	}
	if len(u.Pack(nil)) != 0 {
		t.Error("nil Uniforms Pack should append nothing")
	}
}

func TestCompileWGSL(t *testing.T) {
	words, err := CompileWGSL(testWGSL)
	if err != nil {
		t.Fatalf("CompileWGSL() error = %v", err)
	}
	if len(words) == 0 || words[0] != 0x07230203 {
		t.Errorf("missing SPIR-V magic, got %d words", len(words))
	}

	if _, err := CompileWGSL("fn broken( {"); err == nil {
		t.Error("CompileWGSL() should fail on invalid source")
	}
}
