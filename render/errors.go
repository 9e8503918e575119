// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "errors"

var (
	// ErrPassInProgress is returned when a Renderer is re-entered from one
	// of its own callbacks.
	ErrPassInProgress = errors.New("render: renderer is already rendering")

	// ErrNoCamera is returned when a rendering has no camera.
	ErrNoCamera = errors.New("render: no camera")

	errNoProgram  = errors.New("render: pass has no program")
	errNoGeometry = errors.New("render: actor has no geometry")
)
