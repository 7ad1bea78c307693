// Package stackvec provides a fixed-count, scope-bound buffer that places
// its elements either in frame-local storage (an embedded scratch array that
// lives wherever the vector value lives, with no heap pressure and no
// release step) or on the heap when stack headroom is insufficient.
//
// # Quick start
//
//	var v stackvec.Vector[int]
//	stackvec.Init(&v, 10)
//	defer v.Release()
//
//	if v.IsValid() {
//	    v.ForEach(func(member *int, index int) { *member = index })
//	}
//
// Init returns nothing on purpose: a returned closure would capture the
// vector and force it to the heap, making frame-local placement impossible.
//
// # Allocation strategy
//
// Init decides the storage origin once, at construction:
//
//  1. If the requested bytes exceed the embedded scratch capacity, or the
//     vector value itself is not on the calling goroutine's stack, the
//     frame-local branch is categorically rejected.
//  2. If the host's stack introspection is unavailable or fails, the
//     decision conservatively falls back to heap.
//  3. Otherwise frame-local storage is used only when, after carving out
//     the requested bytes, at least the configured margin of headroom
//     remains above the stack's lower bound. The margin guards the entire
//     remaining call tree, not just this allocation.
//
// Stack introspection comes from the hoststack package by default; register
// the goroutine with hoststack.Bind or hoststack.Run to enable the
// frame-local branch. Without a registered task every vector is heap-backed.
//
// # Element lifecycle
//
// By default the vector owns its elements: each slot is constructed in
// index order at Init and destructed exactly once at release. Construction
// defaults to the zero value; WithElementLifecycle installs hooks for
// non-trivial element types. WithRawSlots disables ownership entirely for
// pointer-like payloads whose slots the caller populates directly.
//
// # Observability
//
// Allocation decisions are always counted in a Statistics instance
// (package-wide by default, injectable per vector). Prometheus export is
// optional via NewMetrics and WithMetrics. Attaching a zap logger enables
// debug tracing of allocation decisions, with a per-vector id for
// correlation.
//
// IMPORTANT:
// A Vector is **intentionally NOT thread-safe**. It is created, used, and
// released by one goroutine, synchronously. It must also not be copied
// after Init: frame-local storage points into the vector value itself.
package stackvec
