// Package state holds render states, the sets that group them and the
// tracker that applies them to a graphics context with minimal calls.
//
// A RenderState is one value of a closed set of kinds (depth function,
// blend function, texture unit N, clip plane N, program, ...). A Set keeps
// at most one state per kind; inserting a state of a kind that is already
// present replaces it.
//
// Every graphics context owns one Tracker, the snapshot of what is
// currently applied. Tracker.Apply diffs a Set and an EnableSet against the
// snapshot and issues only the calls that change something:
//
//	changes := ctx.Tracker().Apply(ctx, shader.Enables, shader.States)
//
// Applying the same set twice in a row issues no calls the second time.
// After Invalidate, typically following a lost context, the next Apply
// sets or resets every kind and capability.
package state
