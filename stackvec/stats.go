package stackvec

import (
	"sync/atomic"
)

// Fallback classifies why an allocation could not use frame-local storage.
type Fallback int

const (
	// FallbackNone means no fallback occurred.
	FallbackNone Fallback = iota

	// FallbackScratchOverflow: the request exceeds ScratchCapacityBytes.
	FallbackScratchOverflow

	// FallbackNoTask: the goroutine has no registered stack task.
	FallbackNoTask

	// FallbackVectorOffStack: the vector value itself is not stack-resident.
	FallbackVectorOffStack

	// FallbackProbeFailed: the stack usage query failed or was inconsistent.
	FallbackProbeFailed

	// FallbackInsufficientHeadroom: the margin would be violated.
	FallbackInsufficientHeadroom

	numFallbackReasons
)

// String returns a human-readable representation of the fallback reason.
func (f Fallback) String() string {
	switch f {
	case FallbackNone:
		return "None"
	case FallbackScratchOverflow:
		return "ScratchOverflow"
	case FallbackNoTask:
		return "NoTask"
	case FallbackVectorOffStack:
		return "VectorOffStack"
	case FallbackProbeFailed:
		return "ProbeFailed"
	case FallbackInsufficientHeadroom:
		return "InsufficientHeadroom"
	default:
		return "Unknown"
	}
}

// Statistics tracks allocation decisions with atomic counters. It is always
// collected; a package-wide instance is the default, and WithStatistics
// routes a vector to its own.
type Statistics struct {
	stackAllocations atomic.Int64
	heapAllocations  atomic.Int64
	releases         atomic.Int64
	fallbacks        [numFallbackReasons]atomic.Int64
}

// NewStatistics creates an empty statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{}
}

var defaultStats = NewStatistics()

// DefaultStatistics returns the package-wide statistics instance.
func DefaultStatistics() *Statistics {
	return defaultStats
}

func (s *Statistics) recordStackAllocation() {
	s.stackAllocations.Add(1)
}

func (s *Statistics) recordHeapAllocation(reason Fallback) {
	s.heapAllocations.Add(1)
	if reason > FallbackNone && reason < numFallbackReasons {
		s.fallbacks[reason].Add(1)
	}
}

func (s *Statistics) recordRelease() {
	s.releases.Add(1)
}

// StackAllocations returns the number of frame-local allocations.
func (s *Statistics) StackAllocations() int64 {
	return s.stackAllocations.Load()
}

// HeapAllocations returns the number of heap allocations.
func (s *Statistics) HeapAllocations() int64 {
	return s.heapAllocations.Load()
}

// Releases returns the number of completed releases.
func (s *Statistics) Releases() int64 {
	return s.releases.Load()
}

// Fallbacks returns how many heap allocations were taken for the given
// reason.
func (s *Statistics) Fallbacks(reason Fallback) int64 {
	if reason <= FallbackNone || reason >= numFallbackReasons {
		return 0
	}
	return s.fallbacks[reason].Load()
}
