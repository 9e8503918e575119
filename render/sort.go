// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"cmp"
	"slices"
)

// Sorter orders the tokens of a queue in place. Implementations must be
// stable so that equal tokens keep insertion order and frames are
// reproducible.
type Sorter interface {
	Sort(tokens []Token)
}

// DefaultSorter orders tokens by actor rank, render block and effect rank,
// then draws opaque tokens before translucent ones. Opaque tokens are
// grouped by program and then by effect to minimize state changes.
// Translucent tokens are drawn back to front, farther first.
type DefaultSorter struct{}

// Sort implements Sorter.
func (DefaultSorter) Sort(tokens []Token) {
	slices.SortStableFunc(tokens, compareDefault)
}

func compareDefault(a, b Token) int {
	if c := compareRanks(a, b); c != 0 {
		return c
	}
	if a.Translucent != b.Translucent {
		if a.Translucent {
			return 1
		}
		return -1
	}
	if a.Translucent {
		return compareBackToFront(a, b)
	}
	if c := cmp.Compare(a.programID(), b.programID()); c != 0 {
		return c
	}
	return cmp.Compare(a.EffectSeq, b.EffectSeq)
}

func compareRanks(a, b Token) int {
	if c := cmp.Compare(a.ActorRank, b.ActorRank); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Block, b.Block); c != 0 {
		return c
	}
	return cmp.Compare(a.EffectRank, b.EffectRank)
}

// compareBackToFront puts larger depths first. The multi-pass order of one
// actor is kept by falling back to the pass index.
func compareBackToFront(a, b Token) int {
	if c := cmp.Compare(b.Depth, a.Depth); c != 0 {
		return c
	}
	if a.Actor == b.Actor {
		return cmp.Compare(a.Pass, b.Pass)
	}
	return 0
}

// DepthSorter orders tokens by actor rank, block and effect rank, then back
// to front regardless of translucency.
type DepthSorter struct{}

// Sort implements Sorter.
func (DepthSorter) Sort(tokens []Token) {
	slices.SortStableFunc(tokens, func(a, b Token) int {
		if c := compareRanks(a, b); c != 0 {
			return c
		}
		return compareBackToFront(a, b)
	})
}

// NopSorter keeps insertion order.
type NopSorter struct{}

// Sort implements Sorter.
func (NopSorter) Sort([]Token) {}
