// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render turns a scene into draw calls.
//
// # Pipeline
//
// Each frame a Rendering:
//
//  1. validates the graphics context and fires its pre-rendering callbacks;
//  2. collects candidate actors from its scene managers;
//  3. culls them against the camera frustum and its enable mask;
//  4. builds a Queue with one Token per actor and effect pass;
//  5. sorts the queue: opaque tokens grouped by program and effect,
//     translucent tokens back to front;
//  6. runs each of its Renderers over the queue;
//  7. fires its post-rendering callbacks and ticks its FrameClock.
//
// A Renderer walks the queue through the phases BindGeometry,
// ApplyStateDiff and IssueDraw for every token. State changes are diffed
// against the context's state.Tracker, so tokens that share states issue
// no redundant calls.
//
// # Errors
//
// A token whose program is missing or fails to link, or whose geometry is
// invalid, is skipped and logged; rendering continues. A lost or unbound
// context aborts the pass, invalidates the tracker so the next frame
// reapplies every state, and is returned to the caller of Render. Errors
// returned by Render are always fatal in the device.IsFatal sense.
//
// # Thread Safety
//
// Renderings and Renderers are NOT thread-safe. A Rendering and its
// graphics context belong to one goroutine.
package render
