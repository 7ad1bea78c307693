package helper

import (
	"fmt"
)

// TypedValueOf safely asserts raw to the expected type T.
func TypedValueOf[T any](raw any) (T, bool) {
	val, ok := raw.(T)
	return val, ok
}

// MustTypedValueOf is the panic-on-failure variant of TypedValueOf.
// Use when a mismatch indicates a programming error, not input data.
func MustTypedValueOf[T any](raw any) T {
	val, ok := raw.(T)
	if !ok {
		panic(fmt.Sprintf("unexpected type: %T", raw))
	}
	return val
}
