package stackvec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacadcaps/stackvector/stackvec"
)

// wordList is a minimal fast-enumerable collection.
type wordList struct {
	words []string
}

func (l wordList) Len() int        { return len(l.words) }
func (l wordList) At(i int) string { return l.words[i] }

type anyList struct {
	items []any
}

func (l anyList) Len() int     { return len(l.items) }
func (l anyList) At(i int) any { return l.items[i] }

func TestInitFrom_BulkCopiesCollection(t *testing.T) {
	src := wordList{words: []string{"alpha", "beta", "gamma"}}

	var v stackvec.Vector[string]
	stackvec.InitFrom(&v, stackvec.Collection[string](src))
	defer v.Release()

	require.True(t, v.IsValid())
	require.Equal(t, 3, v.Count())

	var got []string
	v.ForEachValue(func(member string, index int) {
		got = append(got, member)
	})
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, got)
}

func TestInitFromSlice_CopyIsIndependent(t *testing.T) {
	items := []int{1, 2, 3}

	var v stackvec.Vector[int]
	stackvec.InitFromSlice(&v, items)
	defer v.Release()

	v.ForEach(func(member *int, index int) { *member *= 10 })

	assert.Equal(t, []int{1, 2, 3}, items, "source slice must not change")
	assert.Equal(t, 30, *v.At(2))
}

func TestInitFromSlice_Empty(t *testing.T) {
	var v stackvec.Vector[int]
	stackvec.InitFromSlice(&v, nil)
	defer v.Release()

	assert.False(t, v.IsValid())
}

func TestInitFromUntyped_TypedCopy(t *testing.T) {
	src := anyList{items: []any{1, 2, 3}}

	var v stackvec.Vector[int]
	err := stackvec.InitFromUntyped(&v, stackvec.Collection[any](src))
	defer v.Release()

	require.NoError(t, err)
	require.True(t, v.IsValid())
	assert.Equal(t, 3, *v.At(2))
}

func TestInitFromUntyped_MismatchReleasesVector(t *testing.T) {
	src := anyList{items: []any{1, "two", 3}}

	var v stackvec.Vector[int]
	err := stackvec.InitFromUntyped(&v, stackvec.Collection[any](src))

	require.ErrorIs(t, err, stackvec.ErrElementType)
	assert.Contains(t, err.Error(), "index 1")
	assert.False(t, v.IsValid(), "vector is released on mismatch")
}

func TestInitPtr_RawNilSlots(t *testing.T) {
	type payload struct{ n int }

	hooked := 0
	var v stackvec.PtrVector[payload]
	stackvec.InitPtr(&v, 3,
		stackvec.WithElementLifecycle[*payload](
			func(index int) *payload { hooked++; return &payload{} },
			func(member **payload) { hooked++ },
		),
	)
	defer v.Release()

	require.True(t, v.IsValid())
	assert.Zero(t, hooked, "pointer vectors never run lifecycle hooks")

	v.ForEachValue(func(member *payload, index int) {
		assert.Nil(t, member)
	})

	*v.At(1) = &payload{n: 7}
	assert.Equal(t, 7, (*v.At(1)).n)
}
