package hnsw

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBestListAscendingOrder(t *testing.T) {
	b := newBestList[float32](4)
	require.True(t, b.Push(3, 30))
	require.True(t, b.Push(1, 10))
	require.True(t, b.Push(2, 20))

	d, idx := b.At(0)
	require.Equal(t, float32(1), d)
	require.Equal(t, uint32(10), idx)

	d, idx = b.At(2)
	require.Equal(t, float32(3), d)
	require.Equal(t, uint32(30), idx)
}

func TestBestListEvictsWorstAtCapacity(t *testing.T) {
	b := newBestList[float32](2)
	require.True(t, b.Push(5, 1))
	require.True(t, b.Push(3, 2))

	require.False(t, b.Push(9, 3))
	require.Equal(t, 2, b.Len())

	require.True(t, b.Push(1, 4))
	d, idx := b.At(0)
	require.Equal(t, float32(1), d)
	require.Equal(t, uint32(4), idx)
}

func TestBestListTieBreaksOnInsertionOrder(t *testing.T) {
	b := newBestList[float32](4)
	b.Push(2, 100)
	b.Push(2, 200)
	b.Push(2, 300)

	_, idx := b.At(0)
	require.Equal(t, uint32(100), idx)
	_, idx = b.At(1)
	require.Equal(t, uint32(200), idx)
	_, idx = b.At(2)
	require.Equal(t, uint32(300), idx)
}

func TestBestListPeekAndPop(t *testing.T) {
	b := newBestList[float32](4)
	b.Push(3, 1)
	b.Push(1, 2)
	b.Push(2, 3)

	d, idx, ok := b.PeekBest()
	require.True(t, ok)
	require.Equal(t, float32(1), d)
	require.Equal(t, uint32(2), idx)

	d, idx, ok = b.PeekWorst()
	require.True(t, ok)
	require.Equal(t, float32(3), d)
	require.Equal(t, uint32(1), idx)

	d, idx, ok = b.PopWorst()
	require.True(t, ok)
	require.Equal(t, float32(3), d)
	require.Equal(t, uint32(1), idx)
	require.Equal(t, 2, b.Len())
}

func TestBestListFill(t *testing.T) {
	b := newBestList[float32](4)
	b.Push(3, 1)
	b.Push(1, 2)
	b.Push(2, 3)

	dest := make([]uint32, 2)
	got := b.Fill(dest)
	require.Equal(t, []uint32{2, 3}, got)
}

func TestBestListSetCapTrims(t *testing.T) {
	b := newBestList[float32](4)
	b.Push(3, 1)
	b.Push(1, 2)
	b.Push(2, 3)

	b.SetCap(1)
	require.Equal(t, 1, b.Len())
	d, idx := b.At(0)
	require.Equal(t, float32(1), d)
	require.Equal(t, uint32(2), idx)
}
