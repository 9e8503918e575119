package recording

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/g3d/device"
	"github.com/gogpu/g3d/geometry"
	"github.com/gogpu/g3d/primitive"
	"github.com/gogpu/g3d/shader"
	"github.com/gogpu/g3d/state"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// Pass commands
	CmdBeginPass CommandType = iota // Begin a render pass
	CmdEndPass                      // End the current pass

	// State commands
	CmdApplyState // Apply a render state
	CmdResetState // Reset a state kind to its default
	CmdEnable     // Enable a capability
	CmdDisable    // Disable a capability

	// Resource commands
	CmdCompileProgram // Compile and link a program
	CmdBindGeometry   // Bind vertex arrays
	CmdSetMatrices    // Set world, view and projection
	CmdSetUniforms    // Set uniform values

	// Drawing commands
	CmdDrawArrays   // Draw consecutive vertices
	CmdDrawElements // Draw indexed vertices

	numCommandTypes
)

var commandTypeNames = [...]string{
	CmdBeginPass:      "BeginPass",
	CmdEndPass:        "EndPass",
	CmdApplyState:     "ApplyState",
	CmdResetState:     "ResetState",
	CmdEnable:         "Enable",
	CmdDisable:        "Disable",
	CmdCompileProgram: "CompileProgram",
	CmdBindGeometry:   "BindGeometry",
	CmdSetMatrices:    "SetMatrices",
	CmdSetUniforms:    "SetUniforms",
	CmdDrawArrays:     "DrawArrays",
	CmdDrawElements:   "DrawElements",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// BeginPassCommand starts a render pass.
type BeginPassCommand struct {
	Desc device.PassDescriptor
}

// Type implements Command.
func (BeginPassCommand) Type() CommandType { return CmdBeginPass }

// EndPassCommand ends the current pass.
type EndPassCommand struct{}

// Type implements Command.
func (EndPassCommand) Type() CommandType { return CmdEndPass }

// ApplyStateCommand applies a render state.
type ApplyStateCommand struct {
	State state.RenderState
}

// Type implements Command.
func (ApplyStateCommand) Type() CommandType { return CmdApplyState }

// ResetStateCommand restores a state kind to its default.
type ResetStateCommand struct {
	Kind state.Kind
}

// Type implements Command.
func (ResetStateCommand) Type() CommandType { return CmdResetState }

// EnableCommand switches a capability on.
type EnableCommand struct {
	Cap state.Capability
}

// Type implements Command.
func (EnableCommand) Type() CommandType { return CmdEnable }

// DisableCommand switches a capability off.
type DisableCommand struct {
	Cap state.Capability
}

// Type implements Command.
func (DisableCommand) Type() CommandType { return CmdDisable }

// CompileProgramCommand records a program compilation.
type CompileProgramCommand struct {
	Program *shader.Program
}

// Type implements Command.
func (CompileProgramCommand) Type() CommandType { return CmdCompileProgram }

// BindGeometryCommand binds the vertex arrays of a geometry.
type BindGeometryCommand struct {
	Geometry *geometry.Geometry

	// Uploaded counts the arrays whose buffer version changed since they
	// were last bound.
	Uploaded int
}

// Type implements Command.
func (BindGeometryCommand) Type() CommandType { return CmdBindGeometry }

// SetMatricesCommand sets the transform of the next draws.
type SetMatricesCommand struct {
	World, View, Projection mgl32.Mat4
}

// Type implements Command.
func (SetMatricesCommand) Type() CommandType { return CmdSetMatrices }

// SetUniformsCommand sets uniform values. Values is a copy taken when the
// command was recorded.
type SetUniformsCommand struct {
	Values []shader.Uniform
}

// Type implements Command.
func (SetUniformsCommand) Type() CommandType { return CmdSetUniforms }

// DrawArraysCommand draws consecutive vertices.
type DrawArraysCommand struct {
	Topology  primitive.Topology
	First     int
	Count     int
	Instances int
}

// Type implements Command.
func (DrawArraysCommand) Type() CommandType { return CmdDrawArrays }

// DrawElementsCommand draws indexed vertices. Start and End are the vertex
// range hint, both -1 when none was given.
type DrawElementsCommand struct {
	Topology   primitive.Topology
	Indices    primitive.IndexData
	First      int
	Count      int
	Instances  int
	BaseVertex int
	Start, End int
}

// Type implements Command.
func (DrawElementsCommand) Type() CommandType { return CmdDrawElements }

// Ranged reports whether the draw carried a vertex range hint.
func (c DrawElementsCommand) Ranged() bool { return c.Start >= 0 }
