package hnsw

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyzerTopographyAndConnectivity(t *testing.T) {
	g, err := NewWithParams(EuclideanFloat32, Params{M: 8, M0: 16, EfConstruction: 64, Seed: 3})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		v := make([]float32, 4)
		for j := range v {
			v[j] = rng.Float32()
		}
		g.Insert(v)
	}

	a := &Analyzer[[]float32, float32]{Graph: g}

	topo := a.Topography()
	require.Equal(t, a.Height(), len(topo))
	require.Equal(t, 100, topo[0])
	for _, n := range topo[1:] {
		require.Less(t, n, topo[0])
	}

	conn := a.Connectivity()
	require.Equal(t, len(topo), len(conn))
	for _, c := range conn {
		require.GreaterOrEqual(t, c, 0.0)
		require.LessOrEqual(t, c, 32.0)
	}
}
