package recording

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/g3d/device"
	"github.com/gogpu/g3d/geometry"
	"github.com/gogpu/g3d/primitive"
	"github.com/gogpu/g3d/shader"
	"github.com/gogpu/g3d/state"
)

func newTestContext() *Context {
	return NewContext(device.Config{Width: 64, Height: 32})
}

func glslProgram(name string) *shader.Program {
	return shader.NewProgram(name,
		shader.Source{Stage: shader.Vertex, Language: shader.GLSL, Code: "void main() {}"},
		shader.Source{Stage: shader.Fragment, Language: shader.GLSL, Code: "void main() {}"},
	)
}

func TestCommandType_String(t *testing.T) {
	tests := []struct {
		ct   CommandType
		want string
	}{
		{CmdBeginPass, "BeginPass"},
		{CmdEndPass, "EndPass"},
		{CmdApplyState, "ApplyState"},
		{CmdResetState, "ResetState"},
		{CmdEnable, "Enable"},
		{CmdDisable, "Disable"},
		{CmdCompileProgram, "CompileProgram"},
		{CmdBindGeometry, "BindGeometry"},
		{CmdSetMatrices, "SetMatrices"},
		{CmdSetUniforms, "SetUniforms"},
		{CmdDrawArrays, "DrawArrays"},
		{CmdDrawElements, "DrawElements"},
		{CommandType(254), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.ct.String(); got != tt.want {
				t.Errorf("CommandType.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStateCalls(t *testing.T) {
	c := newTestContext()
	c.ApplyState(state.DepthMask{Write: false})
	c.ResetState(state.KindDepthFunc)
	c.Enable(state.CapBlend)
	c.Disable(state.CapCullFace)

	want := []CommandType{CmdApplyState, CmdResetState, CmdEnable, CmdDisable}
	cmds := c.Commands()
	if len(cmds) != len(want) {
		t.Fatalf("recorded %d commands, want %d", len(cmds), len(want))
	}
	for i, w := range want {
		if cmds[i].Type() != w {
			t.Errorf("command %d = %v, want %v", i, cmds[i].Type(), w)
		}
	}
	if got := cmds[2].(EnableCommand).Cap; got != state.CapBlend {
		t.Errorf("Enable cap = %v, want CapBlend", got)
	}
}

func TestPassLifecycle(t *testing.T) {
	c := newTestContext()

	if err := c.DrawArrays(primitive.Triangles, 0, 3, 1); !errors.Is(err, device.ErrNoPass) {
		t.Errorf("DrawArrays outside pass = %v, want ErrNoPass", err)
	}
	if err := c.EndPass(); !errors.Is(err, device.ErrNoPass) {
		t.Errorf("EndPass outside pass = %v, want ErrNoPass", err)
	}
	if err := c.BeginPass(device.PassDescriptor{}); err != nil {
		t.Fatalf("BeginPass: %v", err)
	}
	if err := c.BeginPass(device.PassDescriptor{}); err == nil {
		t.Error("nested BeginPass succeeded")
	}
	if err := c.DrawArrays(primitive.Triangles, 0, 3, 1); err != nil {
		t.Errorf("DrawArrays: %v", err)
	}
	if err := c.EndPass(); err != nil {
		t.Errorf("EndPass: %v", err)
	}

	begin := c.Commands()[0].(BeginPassCommand)
	if begin.Desc.Viewport != (device.Viewport{Width: 64, Height: 32}) {
		t.Errorf("empty viewport resolved to %+v", begin.Desc.Viewport)
	}
	if c.Draws() != 1 {
		t.Errorf("Draws() = %d, want 1", c.Draws())
	}
}

func TestLoseAndBind(t *testing.T) {
	c := newTestContext()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	c.Lose()
	if err := c.Validate(); !errors.Is(err, device.ErrContextLost) {
		t.Errorf("Validate after Lose = %v, want ErrContextLost", err)
	}
	if !device.IsFatal(c.Err()) {
		t.Errorf("Err() = %v, want fatal", c.Err())
	}
	c.ApplyState(state.DepthMask{})
	if len(c.Commands()) != 0 {
		t.Errorf("lost context recorded %d commands", len(c.Commands()))
	}

	c.Bind()
	if err := c.Validate(); err != nil {
		t.Errorf("Validate after Bind: %v", err)
	}
	if c.Err() != nil {
		t.Errorf("Err() after Bind = %v", c.Err())
	}

	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if err := c.Validate(); !errors.Is(err, device.ErrNoContext) {
		t.Errorf("Validate after Close = %v, want ErrNoContext", err)
	}
}

func TestLoseAfterDraws(t *testing.T) {
	c := newTestContext()
	c.LoseAfterDraws(2)
	if err := c.BeginPass(device.PassDescriptor{}); err != nil {
		t.Fatal(err)
	}
	if err := c.DrawArrays(primitive.Points, 0, 1, 1); err != nil {
		t.Fatalf("first draw: %v", err)
	}
	if c.Err() != nil {
		t.Fatalf("lost after one draw: %v", c.Err())
	}
	if err := c.DrawArrays(primitive.Points, 0, 1, 1); err != nil {
		t.Fatalf("second draw: %v", err)
	}
	if !device.IsFatal(c.Err()) {
		t.Fatalf("Err() = %v after two draws, want fatal", c.Err())
	}
	if err := c.DrawArrays(primitive.Points, 0, 1, 1); !device.IsFatal(err) {
		t.Errorf("draw on lost context = %v, want fatal", err)
	}
	if c.Draws() != 2 {
		t.Errorf("Draws() = %d, want 2", c.Draws())
	}
}

func TestCompileProgram(t *testing.T) {
	c := newTestContext()
	p := glslProgram("ok")
	if err := p.Link(c); err != nil {
		t.Fatalf("Link: %v", err)
	}
	if p.Handle() != p.ID() {
		t.Errorf("handle = %v, want program id %d", p.Handle(), p.ID())
	}
	if c.Count(CmdCompileProgram) != 1 {
		t.Errorf("compile commands = %d, want 1", c.Count(CmdCompileProgram))
	}

	bad := shader.NewProgram("bad",
		shader.Source{Stage: shader.Vertex, Language: shader.GLSL, Code: "void main() {}"},
		shader.Source{Stage: shader.Fragment, Language: shader.GLSL, Code: "void entry() {}"},
	)
	if err := bad.Link(c); err == nil {
		t.Error("Link of fragment shader without main succeeded")
	}

	c.Lose()
	if _, err := c.CompileProgram(glslProgram("lost")); !device.IsFatal(err) {
		t.Errorf("CompileProgram on lost context = %v, want fatal", err)
	}
}

func TestBindGeometryUploads(t *testing.T) {
	c := newTestContext()
	g := geometry.Box("box", mgl32.Vec3{1, 1, 1})

	if err := c.BindGeometry(g); err != nil {
		t.Fatal(err)
	}
	if err := c.BindGeometry(g); err != nil {
		t.Fatal(err)
	}
	g.Array(geometry.Position).Invalidate()
	if err := c.BindGeometry(g); err != nil {
		t.Fatal(err)
	}

	want := []int{2, 0, 1}
	for i, cmd := range c.Commands() {
		if got := cmd.(BindGeometryCommand).Uploaded; got != want[i] {
			t.Errorf("bind %d uploaded %d arrays, want %d", i, got, want[i])
		}
	}

	if err := c.BindGeometry(geometry.New("empty")); !errors.Is(err, geometry.ErrNoPositions) {
		t.Errorf("BindGeometry(empty) = %v, want ErrNoPositions", err)
	}
}

func TestDrawElementsRange(t *testing.T) {
	c := newTestContext()
	if err := c.BeginPass(device.PassDescriptor{}); err != nil {
		t.Fatal(err)
	}
	set := primitive.NewDrawRangeElements(primitive.Triangles, []uint16{0, 1, 2, 2, 1, 3}, 0, 3)
	if err := set.Render(c); err != nil {
		t.Fatalf("Render: %v", err)
	}
	cmd := c.Commands()[1].(DrawElementsCommand)
	if !cmd.Ranged() || cmd.Start != 0 || cmd.End != 3 || cmd.Count != 6 {
		t.Errorf("recorded %+v, want range [0, 3] with 6 indices", cmd)
	}

	de := primitive.NewDrawElements(primitive.Triangles, []uint16{0, 1, 2})
	if err := c.DrawElements(primitive.Triangles, de.IndexData(), 1, 3, 1, 0); !errors.Is(err, primitive.ErrIndexOutOfRange) {
		t.Errorf("out-of-range DrawElements = %v, want ErrIndexOutOfRange", err)
	}
}

func TestSetUniformsCopies(t *testing.T) {
	c := newTestContext()
	u := shader.NewUniforms()
	u.SetFloat("alpha", 0.5)
	c.SetUniforms(u)
	u.SetFloat("alpha", 1)
	c.SetUniforms(nil)

	if len(c.Commands()) != 1 {
		t.Fatalf("recorded %d commands, want 1", len(c.Commands()))
	}
	got := c.Commands()[0].(SetUniformsCommand).Values[0].Float32()
	if got != 0.5 {
		t.Errorf("recorded alpha = %v, want 0.5", got)
	}
}

func TestFinishAndPlayback(t *testing.T) {
	src := newTestContext()
	p := glslProgram("replayed")
	if err := p.Link(src); err != nil {
		t.Fatal(err)
	}
	g := geometry.Box("box", mgl32.Vec3{1, 1, 1})
	if err := src.BeginPass(device.PassDescriptor{Clear: device.ClearAll}); err != nil {
		t.Fatal(err)
	}
	src.ApplyState(state.UseProgram{Program: p})
	src.Enable(state.CapDepthTest)
	if err := src.BindGeometry(g); err != nil {
		t.Fatal(err)
	}
	src.SetMatrices(mgl32.Ident4(), mgl32.Ident4(), mgl32.Ident4())
	for _, s := range g.Sets() {
		if err := s.Render(src); err != nil {
			t.Fatal(err)
		}
	}
	if err := src.EndPass(); err != nil {
		t.Fatal(err)
	}

	rec := src.Finish()
	if len(src.Commands()) != 0 {
		t.Errorf("Finish left %d commands", len(src.Commands()))
	}
	if rec.Count(CmdDrawElements) != 1 {
		t.Errorf("recording has %d indexed draws, want 1", rec.Count(CmdDrawElements))
	}

	dst := newTestContext()
	if err := rec.Playback(dst); err != nil {
		t.Fatalf("Playback: %v", err)
	}
	if dst.Len() != rec.Len() {
		t.Errorf("playback recorded %d commands, want %d", dst.Len(), rec.Len())
	}
	if !p.LinkedBy(dst) {
		t.Error("playback did not link the program against the target")
	}

	dst.Lose()
	if err := rec.Playback(dst); !device.IsFatal(err) {
		t.Errorf("Playback to lost context = %v, want fatal", err)
	}
}

func TestOpenRegistered(t *testing.T) {
	if !device.IsRegistered("recording") {
		t.Fatal("recording backend not registered")
	}
	ctx, err := device.Open("recording", device.Config{Width: 8, Height: 8})
	if err != nil {
		t.Fatal(err)
	}
	if ctx.Name() != "recording" {
		t.Errorf("Name() = %q", ctx.Name())
	}
}
