// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/g3d/bounds"
	"github.com/gogpu/g3d/scene"
)

// Cull appends to dst the actors that can be drawn and returns it together
// with the number of rejected actors. An actor is rejected when its enable
// mask shares no bit with mask, when it has no geometry or effect, or, for
// a non-nil frustum, when its world bounds lie outside f.
func Cull(dst, actors []*scene.Actor, f *bounds.Frustum, mask uint32) ([]*scene.Actor, int) {
	culled := 0
	for _, a := range actors {
		if a == nil || a.EnableMask&mask == 0 || a.Geometry == nil || a.Effect == nil {
			culled++
			continue
		}
		if f != nil && !f.IntersectsAABB(a.WorldBounds()) {
			culled++
			continue
		}
		dst = append(dst, a)
	}
	return dst, culled
}
