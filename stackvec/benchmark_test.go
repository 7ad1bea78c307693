package stackvec_test

import (
	"testing"

	"github.com/jacadcaps/stackvector/hoststack"
	"github.com/jacadcaps/stackvector/stackvec"
)

func BenchmarkInit_Heap(b *testing.B) {
	for i := 0; i < b.N; i++ {
		var v stackvec.Vector[int]
		stackvec.Init(&v, 64)
		v.Release()
	}
}

func BenchmarkInit_FrameLocal(b *testing.B) {
	hoststack.Run(1<<20, func() {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			var v stackvec.Vector[int]
			stackvec.Init(&v, 64)
			v.Release()
		}
	})
}

func BenchmarkForEach(b *testing.B) {
	var v stackvec.Vector[int]
	stackvec.Init(&v, 1024)
	defer v.Release()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v.ForEach(func(member *int, index int) {
			*member = index
		})
	}
}

func BenchmarkAt_Unchecked(b *testing.B) {
	var v stackvec.Vector[int]
	stackvec.Init(&v, 1024)
	defer v.Release()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		*v.At(i & 1023) = i
	}
}
