// Package cache provides the LRU cache graphics backends use to keep GPU
// objects (vertex arrays, buffers, pipelines) keyed by the data they were
// built from.
//
// An LRU is owned by one graphics context and, like the context, is not
// safe for concurrent use. The eviction callback releases the GPU object of
// an evicted entry.
package cache
