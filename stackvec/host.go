package stackvec

import (
	"github.com/jacadcaps/stackvector/hoststack"
)

// StackTask is the per-goroutine stack view the capacity decision consumes.
// hoststack.Task satisfies it; tests substitute fakes.
type StackTask interface {
	// Bounds returns the lower and upper addresses of the stack region.
	Bounds() (lower, upper uintptr)

	// UsedBytes returns the bytes currently in use on the stack, or an
	// error when the probe cannot answer. Errors mean "choose heap".
	UsedBytes() (uintptr, error)

	// Contains reports whether address lies strictly within the region.
	Contains(address uintptr) bool
}

// Host resolves the calling goroutine to its stack task, if one exists.
type Host interface {
	CurrentTask() (StackTask, bool)
}

// hoststackHost adapts the hoststack package's ambient registry.
type hoststackHost struct{}

func (hoststackHost) CurrentTask() (StackTask, bool) {
	t, ok := hoststack.Self()
	if !ok {
		return nil, false
	}
	return t, true
}

// DefaultHost returns the Host backed by the hoststack goroutine registry.
func DefaultHost() Host {
	return hoststackHost{}
}
