package stackvec

import (
	"unsafe"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScratchCapacityBytes is the capacity of the embedded frame-local scratch
// array. Requests larger than this always go to the heap; this is the
// compile-time bound the Go rendition trades against alloca's flexibility.
const ScratchCapacityBytes = 16 * 1024

// scratch is backed by uint64 words so that any element type is aligned.
const scratchWords = ScratchCapacityBytes / 8

// Origin identifies where a vector's storage was acquired.
type Origin int

const (
	// OriginFrameLocal means storage lives in the embedded scratch array,
	// inside the vector value itself. It has no release step; it is
	// reclaimed with the frame that declared the vector.
	OriginFrameLocal Origin = iota

	// OriginHeap means storage was acquired from the general-purpose heap
	// and is dropped exactly once at release.
	OriginHeap
)

// String returns a human-readable representation of the origin.
func (o Origin) String() string {
	switch o {
	case OriginFrameLocal:
		return "FrameLocal"
	case OriginHeap:
		return "Heap"
	default:
		return "Unknown"
	}
}

// noCopy triggers go vet's copylocks check; a vector whose storage points
// into its own scratch array must never be copied after Init.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Vector is a fixed-count adaptive buffer. The zero value is not usable;
// construct it in place with Init and release it at scope exit:
//
//	var v stackvec.Vector[int]
//	stackvec.Init(&v, 10)
//	defer v.Release()
//
// Vector is bound to one goroutine and must not be copied after Init.
type Vector[T any] struct {
	noCopy noCopy

	scratch [scratchWords]uint64

	storage  []T
	count    int
	origin   Origin
	owns     bool
	released bool

	construct func(index int) T
	destruct  func(member *T)

	host    Host
	logger  *zap.Logger
	checked bool
	stats   *Statistics
	metrics *Metrics
	id      string
}

// Init constructs the vector in place with storage for count elements;
// pair it with a deferred Release. The storage origin is decided once,
// here: frame-local when the vector value is stack-resident and enough
// headroom remains, heap otherwise. Owned elements are constructed slot 0
// upward.
//
// Init must be called on a vector declared in the owning scope; the
// frame-local branch is only meaningful because the scratch array lives
// inside that very value. Init deliberately returns nothing: any return
// value capturing v would make the vector escape to the heap and defeat
// frame-local placement.
func Init[T any](v *Vector[T], count int, opts ...Option[T]) {
	o := applyOptions(opts...)

	v.count = count
	v.owns = o.owns
	v.construct = o.construct
	v.destruct = o.destruct
	v.host = o.host
	v.logger = o.logger
	v.checked = o.checked
	v.stats = o.stats
	v.metrics = o.metrics
	v.released = false
	v.storage = nil

	if v.logger != nil {
		v.id = uuid.New().String()
	}

	if count <= 0 {
		// Invalid by contract; nothing to acquire, nothing to construct.
		v.origin = OriginHeap
		return
	}

	var zero T
	needBytes := uintptr(count) * unsafe.Sizeof(zero)

	if reason, ok := v.canReserveStack(needBytes, o.margin); ok {
		v.origin = OriginFrameLocal
		v.storage = unsafe.Slice((*T)(unsafe.Pointer(&v.scratch[0])), count)
		v.verifyScratchResidency()
		v.stats.recordStackAllocation()
		v.metrics.recordStackAllocation()
		if v.logger != nil {
			v.logger.Debug("allocated on stack",
				zap.String("vector", v.id),
				zap.Int("count", count),
				zap.Uint64("needBytes", uint64(needBytes)),
			)
		}
	} else {
		v.origin = OriginHeap
		v.storage = make([]T, count)
		v.stats.recordHeapAllocation(reason)
		v.metrics.recordHeapAllocation(reason)
		if v.logger != nil {
			v.logger.Debug("allocated on heap",
				zap.String("vector", v.id),
				zap.Int("count", count),
				zap.Uint64("needBytes", uint64(needBytes)),
				zap.String("reason", reason.String()),
			)
		}
	}

	if v.owns {
		for i := range v.storage {
			if v.construct != nil {
				v.storage[i] = v.construct(i)
			} else {
				v.storage[i] = zero
			}
		}
	}
}

// canReserveStack is the capacity decision: it accepts the frame-local
// branch only when the vector itself is stack-resident and, after carving
// out needBytes, at least margin bytes of headroom remain above the stack's
// lower bound. Any introspection failure rejects conservatively.
func (v *Vector[T]) canReserveStack(needBytes, margin uintptr) (Fallback, bool) {
	if needBytes > ScratchCapacityBytes {
		return FallbackScratchOverflow, false
	}

	task, ok := v.host.CurrentTask()
	if !ok {
		return FallbackNoTask, false
	}
	if !task.Contains(uintptr(unsafe.Pointer(v))) {
		return FallbackVectorOffStack, false
	}

	used, err := task.UsedBytes()
	if err != nil {
		return FallbackProbeFailed, false
	}
	lower, upper := task.Bounds()
	if lower >= upper || used > upper-lower {
		return FallbackProbeFailed, false
	}

	frontier := upper - used
	if frontier < needBytes {
		return FallbackInsufficientHeadroom, false
	}
	if lower+margin >= frontier-needBytes {
		return FallbackInsufficientHeadroom, false
	}

	return FallbackNone, true
}

// verifyScratchResidency reports, in checked mode, frame-local storage
// that does not lie within the task's stack bounds.
func (v *Vector[T]) verifyScratchResidency() {
	if !v.checked || v.logger == nil {
		return
	}
	task, ok := v.host.CurrentTask()
	if !ok {
		return
	}
	if !task.Contains(uintptr(unsafe.Pointer(&v.scratch[0]))) {
		v.logger.Error("frame-local storage outside stack bounds",
			zap.String("vector", v.id),
		)
	}
}

// Count returns the fixed element count set at Init.
func (v *Vector[T]) Count() int {
	return v.count
}

// Origin returns where the storage was acquired.
func (v *Vector[T]) Origin() Origin {
	return v.origin
}

// IsValid reports whether the vector holds usable storage: false when the
// element count is not positive, when storage acquisition failed, and after
// Release. Indexing or iterating an invalid vector is caller error.
func (v *Vector[T]) IsValid() bool {
	return v.storage != nil && v.count > 0
}

// IsAllocatedOnStack re-checks, at call time, whether the storage lies
// within the calling goroutine's current stack bounds. Only meaningful on
// the goroutine that called Init; elsewhere the answer is undefined because
// the stack query is goroutine-specific.
func (v *Vector[T]) IsAllocatedOnStack() bool {
	if v.storage == nil {
		return false
	}
	task, ok := v.host.CurrentTask()
	if !ok {
		return false
	}
	return task.Contains(uintptr(unsafe.Pointer(&v.storage[0])))
}

// Release destructs owned elements and drops heap storage. It runs exactly
// once; later calls are no-ops. Frame-local storage has no release step --
// it is reclaimed with the owning frame -- but the element lifecycle still
// completes here.
func (v *Vector[T]) Release() {
	if v.released {
		return
	}
	v.released = true

	if v.storage == nil {
		return
	}

	if v.owns && v.destruct != nil {
		for i := range v.storage {
			v.destruct(&v.storage[i])
		}
	}

	if v.origin == OriginHeap && v.logger != nil {
		v.logger.Debug("freeing heap storage", zap.String("vector", v.id))
	}
	v.storage = nil
	v.stats.recordRelease()
	v.metrics.recordRelease()
}
