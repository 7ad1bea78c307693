package stackvec

import (
	"unsafe"

	"go.uber.org/zap"
)

// At returns a pointer to the slot at index.
//
// In the default unchecked mode this is raw-array access: no bounds test is
// performed and an out-of-range index reaches whatever lies there, exactly
// as the raw array it replaces would. With WithCheckedAccess an
// out-of-range index is reported as a diagnostic and returns nil.
func (v *Vector[T]) At(index int) *T {
	if v.checked {
		if v.storage == nil || index < 0 || index >= v.count {
			if v.logger != nil {
				v.logger.Error("access outside of size",
					zap.String("vector", v.id),
					zap.Int("index", index),
					zap.Int("count", v.count),
				)
			}
			return nil
		}
		return &v.storage[index]
	}

	var zero T
	base := unsafe.Pointer(unsafe.SliceData(v.storage))
	return (*T)(unsafe.Add(base, uintptr(index)*unsafe.Sizeof(zero)))
}

// ForEach invokes onEach for every slot, index 0 upward, unconditionally to
// completion. No effect on an invalid vector.
func (v *Vector[T]) ForEach(onEach func(member *T, index int)) {
	if v.storage == nil {
		return
	}
	for i := range v.storage {
		onEach(&v.storage[i], i)
	}
}

// ForEachValue is the read-only counterpart of ForEach; members are passed
// by value.
func (v *Vector[T]) ForEachValue(onEach func(member T, index int)) {
	if v.storage == nil {
		return
	}
	for i := range v.storage {
		onEach(v.storage[i], i)
	}
}

// WhileEach invokes onEach for every slot, index 0 upward, stopping after
// the first call that returns false. No effect on an invalid vector.
func (v *Vector[T]) WhileEach(onEach func(member *T, index int) bool) {
	if v.storage == nil {
		return
	}
	for i := range v.storage {
		if !onEach(&v.storage[i], i) {
			break
		}
	}
}

// WhileEachValue is the read-only counterpart of WhileEach.
func (v *Vector[T]) WhileEachValue(onEach func(member T, index int) bool) {
	if v.storage == nil {
		return
	}
	for i := range v.storage {
		if !onEach(v.storage[i], i) {
			break
		}
	}
}
