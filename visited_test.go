package hnsw

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVisitedSetInsertAndClear(t *testing.T) {
	v := newVisitedSet()

	require.True(t, v.Insert(1))
	require.False(t, v.Insert(1))
	require.True(t, v.Insert(2))

	v.Clear()
	require.True(t, v.Insert(1))
}
