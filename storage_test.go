package hnsw

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStorageAppendAndRead(t *testing.T) {
	s := NewMemoryStorage[string](4, 8)

	id0 := s.AppendPoint("a")
	s.AppendZeroNode(id0)
	id1 := s.AppendPoint("b")
	s.AppendZeroNode(id1)

	require.Equal(t, uint32(0), id0)
	require.Equal(t, uint32(1), id1)
	require.Equal(t, "a", s.Point(id0))
	require.Equal(t, 2, s.Len())

	neighbors := s.Neighbors(0, id0)
	require.Len(t, neighbors, 8)
	for _, n := range neighbors {
		require.Equal(t, NilID, n)
	}
}

func TestMemoryStorageUpperLayers(t *testing.T) {
	s := NewMemoryStorage[string](4, 8)

	id0 := s.AppendPoint("a")
	s.AppendZeroNode(id0)
	idx := s.AppendUpperNode(1, id0)
	require.Equal(t, uint32(0), idx)
	require.Equal(t, 2, s.LayerCount())
	require.Equal(t, 1, s.Size(1))

	got, ok := s.IndexOf(1, id0)
	require.True(t, ok)
	require.Equal(t, idx, got)
	require.Equal(t, id0, s.PointIDOf(1, idx))
	require.Equal(t, id0, s.NextIndex(1, idx))

	_, ok = s.IndexOf(1, 99)
	require.False(t, ok)
}

func TestMemoryStorageSetNeighbors(t *testing.T) {
	s := NewMemoryStorage[string](4, 8)
	id0 := s.AppendPoint("a")
	s.AppendZeroNode(id0)
	id1 := s.AppendPoint("b")
	s.AppendZeroNode(id1)

	nb := nilFilled(8)
	nb[0] = id1
	s.SetNeighbors(0, id0, nb)

	got := s.Neighbors(0, id0)
	require.Equal(t, id1, got[0])
	require.Equal(t, NilID, got[1])
}

func TestMemoryStorageEntryPoint(t *testing.T) {
	s := NewMemoryStorage[string](4, 8)
	_, ok := s.EntryPoint()
	require.False(t, ok)

	s.SetEntryPoint(3)
	id, ok := s.EntryPoint()
	require.True(t, ok)
	require.Equal(t, uint32(3), id)
}
