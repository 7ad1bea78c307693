package stackvec

// PtrVector is a thin restriction of Vector to pointer elements. Slots are
// raw: no construction or destruction is performed, elements start nil and
// the caller populates them directly.
type PtrVector[T any] struct {
	Vector[*T]
}

// InitPtr constructs a pointer vector in place; pair it with a deferred
// Release. Lifecycle ownership is always disabled, overriding any lifecycle
// options passed.
func InitPtr[T any](v *PtrVector[T], count int, opts ...Option[*T]) {
	opts = append(opts, WithRawSlots[*T]())
	Init(&v.Vector, count, opts...)
}
