package stackvec

import (
	"go.uber.org/zap"
)

// DefaultStackMargin is the minimum stack headroom, in bytes, that must
// remain beneath a frame-local allocation for the rest of the call tree.
const DefaultStackMargin = 16 * 1024

// Option configures a vector at Init using the functional options pattern.
type Option[T any] func(*options[T])

// options holds internal configuration for one vector.
// Statistics are ALWAYS collected; metrics and logging are optional.
type options[T any] struct {
	margin    uintptr
	owns      bool
	construct func(index int) T
	destruct  func(member *T)
	host      Host
	logger    *zap.Logger
	checked   bool
	stats     *Statistics
	metrics   *Metrics
}

// WithStackMargin sets the stack headroom to preserve beneath the
// allocation. Defaults to DefaultStackMargin if not specified.
func WithStackMargin[T any](bytes uintptr) Option[T] {
	return func(o *options[T]) {
		o.margin = bytes
	}
}

// WithRawSlots disables element lifecycle ownership: slots are left as raw
// zeroed memory for the caller to populate directly. Used for pointer-like
// element types where default construction is meaningless.
func WithRawSlots[T any]() Option[T] {
	return func(o *options[T]) {
		o.owns = false
		o.construct = nil
		o.destruct = nil
	}
}

// WithElementLifecycle installs per-slot construction and destruction
// hooks. Construction runs in index order at Init, destruction exactly once
// per slot at release. Either hook may be nil.
func WithElementLifecycle[T any](construct func(index int) T, destruct func(member *T)) Option[T] {
	return func(o *options[T]) {
		o.owns = true
		o.construct = construct
		o.destruct = destruct
	}
}

// WithLogger attaches a zap logger for debug tracing of allocation and
// access diagnostics. Vectors with a logger carry an id for correlation.
func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(o *options[T]) {
		o.logger = logger
	}
}

// WithCheckedAccess selects the checked At code path: out-of-range indices
// are reported as a diagnostic and return nil instead of touching memory.
// The default unchecked path reproduces raw-array access.
func WithCheckedAccess[T any]() Option[T] {
	return func(o *options[T]) {
		o.checked = true
	}
}

// WithHost overrides the stack introspection source. Defaults to the
// hoststack goroutine registry.
func WithHost[T any](host Host) Option[T] {
	return func(o *options[T]) {
		if host != nil {
			o.host = host
		}
	}
}

// WithStatistics routes this vector's counters to the given statistics
// instance instead of the package-wide one.
func WithStatistics[T any](stats *Statistics) Option[T] {
	return func(o *options[T]) {
		if stats != nil {
			o.stats = stats
		}
	}
}

// WithMetrics additionally records allocation decisions in Prometheus
// metrics. If metrics is nil, this option is ignored.
func WithMetrics[T any](metrics *Metrics) Option[T] {
	return func(o *options[T]) {
		if metrics != nil {
			o.metrics = metrics
		}
	}
}

// applyOptions applies zero or more options to the default configuration.
func applyOptions[T any](opts ...Option[T]) *options[T] {
	o := &options[T]{
		margin: DefaultStackMargin,
		owns:   true,
		host:   DefaultHost(),
		stats:  defaultStats,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	return o
}
