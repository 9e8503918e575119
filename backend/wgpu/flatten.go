//go:build !nogpu

package wgpu

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/g3d/primitive"
)

func isStrip(t gputypes.PrimitiveTopology) bool {
	return t == gputypes.PrimitiveTopologyLineStrip || t == gputypes.PrimitiveTopologyTriangleStrip
}

// maxIndex returns the fixed restart value WebGPU uses for strips.
func maxIndex(f gputypes.IndexFormat) uint32 {
	if f == gputypes.IndexFormatUint16 {
		return 0xFFFF
	}
	return 0xFFFFFFFF
}

// flatTopology returns the list topology t is flattened into.
func flatTopology(t primitive.Topology) gputypes.PrimitiveTopology {
	switch {
	case t == primitive.Points:
		return gputypes.PrimitiveTopologyPointList
	case t.IsTriangles():
		return gputypes.PrimitiveTopologyTriangleList
	}
	return gputypes.PrimitiveTopologyLineList
}

// flatten appends the list form of vals drawn with topology t to dst.
// With restart on, every occurrence of restart starts a new run.
func flatten(dst []uint32, t primitive.Topology, vals []uint32, restart uint32, on bool) []uint32 {
	start := 0
	for i := 0; i <= len(vals); i++ {
		if i < len(vals) && (!on || vals[i] != restart) {
			continue
		}
		if run := vals[start:i]; len(run) > 0 {
			dst = appendRun(dst, t, run)
		}
		start = i + 1
	}
	return dst
}

func appendRun(dst []uint32, t primitive.Topology, run []uint32) []uint32 {
	switch {
	case t == primitive.Points:
		return append(dst, run...)
	case t.IsTriangles():
		return primitive.AppendTriangles(dst, primitive.NewDrawElements(t, run))
	}
	return primitive.AppendLines(dst, primitive.NewDrawElements(t, run))
}
