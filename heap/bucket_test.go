package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBucketFrontierPopsAscending(t *testing.T) {
	b := NewBucketFrontier[string](128)
	b.Push(5, "five")
	b.Push(0, "zero")
	b.Push(3, "three")

	require.Equal(t, 3, b.Len())

	v, d := b.PopBest()
	require.Equal(t, "zero", v)
	require.Equal(t, 0, d)

	v, d = b.PopBest()
	require.Equal(t, "three", v)
	require.Equal(t, 3, d)

	v, d = b.PopBest()
	require.Equal(t, "five", v)
	require.Equal(t, 5, d)

	require.Equal(t, 0, b.Len())
}

func TestBucketFrontierReset(t *testing.T) {
	b := NewBucketFrontier[int](8)
	b.Push(2, 1)
	b.Push(1, 2)
	b.Reset()
	require.Equal(t, 0, b.Len())

	b.Push(0, 99)
	v, d := b.PopBest()
	require.Equal(t, 99, v)
	require.Equal(t, 0, d)
}
