// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"log/slog"

	"github.com/gogpu/g3d/device"
	"github.com/gogpu/g3d/scene"
)

// Option configures a Rendering.
type Option func(*options)

type options struct {
	name       string
	culling    bool
	enableMask uint32
	sorter     Sorter
	clock      *FrameClock
	logger     *slog.Logger
	clear      *device.ClearFlags
}

func defaultOptions() options {
	return options{
		name:       "rendering",
		culling:    true,
		enableMask: scene.AllLayers,
		sorter:     DefaultSorter{},
	}
}

// WithName sets the rendering name used in logs and pass labels.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithCulling enables or disables frustum culling. Culling is on by
// default; the enable mask applies either way.
func WithCulling(enabled bool) Option {
	return func(o *options) {
		o.culling = enabled
	}
}

// WithEnableMask sets the layers drawn by the rendering. Only actors whose
// mask shares a bit with it are drawn.
func WithEnableMask(mask uint32) Option {
	return func(o *options) {
		o.enableMask = mask
	}
}

// WithSorter replaces the DefaultSorter.
func WithSorter(s Sorter) Option {
	return func(o *options) {
		if s != nil {
			o.sorter = s
		}
	}
}

// WithClock sets the frame clock ticked after every completed frame.
func WithClock(c *FrameClock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithLogger sets the logger of the rendering and its renderers instead of
// the package-wide g3d logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithClearFlags overrides the camera's clear flags for the first renderer.
func WithClearFlags(f device.ClearFlags) Option {
	return func(o *options) {
		o.clear = &f
	}
}
