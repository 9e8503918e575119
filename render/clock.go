// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "time"

// FrameClock counts completed frames and measures frames per second over
// windows of at least one second.
type FrameClock struct {
	now func() time.Time

	frames  uint64
	started bool
	start   time.Time
	window  int
	fps     float64
	last    time.Time
}

// NewFrameClock returns a clock reading time from now, or from time.Now
// when now is nil.
func NewFrameClock(now func() time.Time) *FrameClock {
	if now == nil {
		now = time.Now
	}
	return &FrameClock{now: now}
}

// Tick records one completed frame.
func (c *FrameClock) Tick() {
	t := c.now()
	c.frames++
	c.last = t
	if !c.started {
		c.started = true
		c.start = t
		return
	}
	c.window++
	if elapsed := t.Sub(c.start); elapsed >= time.Second {
		c.fps = float64(c.window) / elapsed.Seconds()
		c.start = t
		c.window = 0
	}
}

// Frames returns the number of completed frames.
func (c *FrameClock) Frames() uint64 { return c.frames }

// FPS returns the rate measured over the last complete window, 0 before
// the first window completes.
func (c *FrameClock) FPS() float64 { return c.fps }

// LastFrame returns the time of the last tick.
func (c *FrameClock) LastFrame() time.Time { return c.last }

// Reset forgets every frame.
func (c *FrameClock) Reset() {
	now := c.now
	*c = FrameClock{now: now}
}
