package shader

// Stage identifies a programmable pipeline stage.
type Stage uint8

const (
	Vertex Stage = iota
	Fragment
	Geometry
	Compute
)

// String returns the string representation of a Stage.
func (s Stage) String() string {
	switch s {
	case Vertex:
		return "Vertex"
	case Fragment:
		return "Fragment"
	case Geometry:
		return "Geometry"
	case Compute:
		return "Compute"
	}
	return "Unknown"
}

// Language identifies the shading language of a Source.
type Language uint8

const (
	GLSL Language = iota
	WGSL
)

// String returns the string representation of a Language.
func (l Language) String() string {
	switch l {
	case GLSL:
		return "GLSL"
	case WGSL:
		return "WGSL"
	}
	return "Unknown"
}

// Source is the code of one program stage.
//
// A WGSL module may carry several entry points; the same Code then appears
// once per stage with a different EntryPoint.
type Source struct {
	Stage      Stage
	Language   Language
	Code       string
	EntryPoint string
}

// entry returns the entry point, defaulting to "main" for GLSL and
// vs_main/fs_main/cs_main for WGSL.
func (s Source) entry() string {
	if s.EntryPoint != "" {
		return s.EntryPoint
	}
	if s.Language == GLSL {
		return "main"
	}
	switch s.Stage {
	case Vertex:
		return "vs_main"
	case Fragment:
		return "fs_main"
	case Compute:
		return "cs_main"
	}
	return "main"
}

// Entry returns the effective entry point of the source.
func (s Source) Entry() string { return s.entry() }
