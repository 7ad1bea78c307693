// Package hoststack exposes the calling goroutine's stack region to code
// that needs to decide whether an address is stack-resident and how much
// headroom remains.
//
// # What is a stack task?
//
// The Go runtime does not publish goroutine stack bounds, so this package
// models them explicitly: a goroutine becomes a "task" by calling Bind with
// an anchor address captured in the binding frame and a stack budget. Bounds,
// used-byte probes, and address containment checks are all derived from that
// anchor. Run wraps the Reserve/Bind sequence for a fresh goroutine and is
// the usual entry point:
//
//	hoststack.Run(64*1024, func() {
//	    task, _ := hoststack.Self()
//	    used, _ := task.UsedBytes()
//	    ...
//	})
//
// # Failure model
//
// Every query fails closed. A goroutine with no registered task has no
// bounds; a probe landing outside the recorded region (for example because
// the runtime moved the stack) returns an error instead of a guess. Callers
// are expected to treat any failure as "not stack-resident".
//
// # Caller obligations
//
// A Task describes exactly one goroutine. Querying it from another goroutine
// returns errors rather than meaningless numbers, but Contains cannot detect
// misuse: the answer is only meaningful on the goroutine that called Bind.
package hoststack
