//go:build !nogpu

package wgpu

import "errors"

var (
	// ErrNoProvider is returned when the config has no device provider.
	ErrNoProvider = errors.New("wgpu: config has no device provider")

	// ErrNoHAL is returned when the provider does not expose a hal device
	// and queue.
	ErrNoHAL = errors.New("wgpu: provider does not expose hal device and queue")

	// ErrUnsupportedLanguage is returned for programs not written in WGSL.
	ErrUnsupportedLanguage = errors.New("wgpu: only WGSL programs are supported")

	// ErrNoProgram is returned for draws without a bound program.
	ErrNoProgram = errors.New("wgpu: no program bound")

	errPassInProgress = errors.New("wgpu: pass already in progress")
)
