package stackvec

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports allocation decisions as Prometheus metrics. Statistics
// and Metrics track independently: statistics stay available without any
// Prometheus infrastructure, metrics feed dashboards and alerting.
type Metrics struct {
	stackAllocations prometheus.Counter
	heapAllocations  prometheus.Counter
	releases         prometheus.Counter
	fallbacks        *prometheus.CounterVec
}

// NewMetrics creates and registers the vector metrics with the given
// registerer. The component label identifies the call site sharing this
// instance. Returns an error if registration fails.
func NewMetrics(registerer prometheus.Registerer, component string) (*Metrics, error) {
	labels := prometheus.Labels{"component": component}
	m := &Metrics{
		stackAllocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "stackvector",
			Subsystem:   "vector",
			Name:        "stack_allocations_total",
			ConstLabels: labels,
			Help:        "Total number of frame-local allocations",
		}),
		heapAllocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "stackvector",
			Subsystem:   "vector",
			Name:        "heap_allocations_total",
			ConstLabels: labels,
			Help:        "Total number of heap allocations",
		}),
		releases: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "stackvector",
			Subsystem:   "vector",
			Name:        "releases_total",
			ConstLabels: labels,
			Help:        "Total number of completed releases",
		}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "stackvector",
			Subsystem:   "vector",
			Name:        "heap_fallbacks_total",
			ConstLabels: labels,
			Help:        "Heap fallbacks by reason",
		}, []string{"reason"}),
	}

	for name, c := range map[string]prometheus.Collector{
		"stack_allocations": m.stackAllocations,
		"heap_allocations":  m.heapAllocations,
		"releases":          m.releases,
		"heap_fallbacks":    m.fallbacks,
	} {
		if err := registerer.Register(c); err != nil {
			return nil, fmt.Errorf("register %s: %w", name, err)
		}
	}

	return m, nil
}

func (m *Metrics) recordStackAllocation() {
	if m == nil {
		return
	}
	m.stackAllocations.Inc()
}

func (m *Metrics) recordHeapAllocation(reason Fallback) {
	if m == nil {
		return
	}
	m.heapAllocations.Inc()
	m.fallbacks.WithLabelValues(reason.String()).Inc()
}

func (m *Metrics) recordRelease() {
	if m == nil {
		return
	}
	m.releases.Inc()
}
