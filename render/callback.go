// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "slices"

// Event identifies the moment a callback is invoked.
type Event uint8

const (
	// PreRendering fires before a rendering collects its actors.
	PreRendering Event = iota

	// PostRendering fires after every renderer of a rendering completed.
	PostRendering

	// RendererStarted fires before a renderer walks the queue.
	RendererStarted

	// RendererFinished fires after a renderer ended its pass.
	RendererFinished
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case PreRendering:
		return "PreRendering"
	case PostRendering:
		return "PostRendering"
	case RendererStarted:
		return "RendererStarted"
	case RendererFinished:
		return "RendererFinished"
	default:
		return "Unknown"
	}
}

// Callback is invoked around renderings and renderers.
//
// OnRendering reports whether the callback handled the event. A handled
// callback whose RemoveAfterCall returns true is removed from its chain once
// the dispatch finishes. r is the rendering the event belongs to, possibly
// nil for a renderer used on its own.
//
// Callbacks are compared by identity; use pointer types.
type Callback interface {
	OnRendering(ev Event, r Abstract) bool
	RemoveAfterCall() bool
}

// CallbackFunc adapts a function to Callback.
type CallbackFunc struct {
	Fn func(ev Event, r Abstract) bool

	// Once removes the callback after the first handled event.
	Once bool
}

// NewCallback returns a callback calling fn.
func NewCallback(fn func(ev Event, r Abstract) bool) *CallbackFunc {
	return &CallbackFunc{Fn: fn}
}

// OnRendering implements Callback.
func (c *CallbackFunc) OnRendering(ev Event, r Abstract) bool {
	if c.Fn == nil {
		return false
	}
	return c.Fn(ev, r)
}

// RemoveAfterCall implements Callback.
func (c *CallbackFunc) RemoveAfterCall() bool { return c.Once }

// Callbacks is an ordered callback chain.
//
// Dispatch iterates a snapshot of the chain: callbacks added or removed
// while dispatching take effect on the next dispatch.
type Callbacks struct {
	list []Callback
	snap []Callback
	busy int
}

// Add appends cb. Nil callbacks are ignored.
func (c *Callbacks) Add(cb Callback) {
	if cb == nil {
		return
	}
	c.list = append(c.list, cb)
}

// Remove removes the first occurrence of cb and reports whether it was
// present.
func (c *Callbacks) Remove(cb Callback) bool {
	i := slices.Index(c.list, cb)
	if i < 0 {
		return false
	}
	c.list = slices.Delete(c.list, i, i+1)
	return true
}

// Len returns the number of callbacks in the chain.
func (c *Callbacks) Len() int { return len(c.list) }

// Dispatch invokes every callback with ev and returns how many handled it.
func (c *Callbacks) Dispatch(ev Event, r Abstract) int {
	if len(c.list) == 0 {
		return 0
	}
	var snap []Callback
	if c.busy == 0 {
		snap = append(c.snap[:0], c.list...)
	} else {
		// Nested dispatch from inside a callback must not reuse the buffer.
		snap = slices.Clone(c.list)
	}
	c.busy++

	handled := 0
	var done []Callback
	for _, cb := range snap {
		if !cb.OnRendering(ev, r) {
			continue
		}
		handled++
		if cb.RemoveAfterCall() {
			done = append(done, cb)
		}
	}

	c.busy--
	if c.busy == 0 {
		clear(snap)
		c.snap = snap[:0]
	}
	for _, cb := range done {
		c.Remove(cb)
	}
	return handled
}
