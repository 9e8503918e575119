package shader

import "errors"

var (
	// ErrNoSources is returned when a program has no stage sources.
	ErrNoSources = errors.New("shader: program has no sources")

	// ErrMissingStage is returned when a program lacks a stage it needs:
	// a vertex and a fragment stage, or a compute stage.
	ErrMissingStage = errors.New("shader: missing required stage")

	// ErrMixedLanguages is returned when stages are written in different
	// shading languages.
	ErrMixedLanguages = errors.New("shader: stages use different languages")
)
