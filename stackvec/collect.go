package stackvec

import (
	"errors"
	"fmt"

	"github.com/jacadcaps/stackvector/shared/helper"
)

// ErrElementType reports that an untyped collection held an element that is
// not assignable to the vector's element type.
var ErrElementType = errors.New("stackvec: collection element type mismatch")

// Collection is the fast-enumeration surface: any indexable collection with
// a known length can be bulk-copied into a vector before iteration.
type Collection[T any] interface {
	Len() int
	At(index int) T
}

// InitFrom constructs a raw-slot vector sized to the collection and bulk
// copies its elements in, so that iteration runs over contiguous storage
// instead of the source object. Pair it with a deferred Release.
func InitFrom[T any](v *Vector[T], c Collection[T], opts ...Option[T]) {
	opts = append(opts, WithRawSlots[T]())
	Init(v, c.Len(), opts...)
	if !v.IsValid() {
		return
	}
	for i := range v.storage {
		v.storage[i] = c.At(i)
	}
}

// InitFromSlice constructs a raw-slot vector holding a copy of items.
func InitFromSlice[T any](v *Vector[T], items []T, opts ...Option[T]) {
	opts = append(opts, WithRawSlots[T]())
	Init(v, len(items), opts...)
	if v.IsValid() {
		copy(v.storage, items)
	}
}

// InitFromUntyped bulk copies from a heterogeneously typed collection,
// asserting each element to T. On the first mismatched element the vector
// is released and an error identifying the offending index is returned.
func InitFromUntyped[T any](v *Vector[T], c Collection[any], opts ...Option[T]) error {
	opts = append(opts, WithRawSlots[T]())
	Init(v, c.Len(), opts...)
	if !v.IsValid() {
		return nil
	}
	for i := range v.storage {
		raw := c.At(i)
		member, ok := helper.TypedValueOf[T](raw)
		if !ok {
			v.Release()
			return fmt.Errorf("%w: index %d holds %T", ErrElementType, i, raw)
		}
		v.storage[i] = member
	}
	return nil
}
