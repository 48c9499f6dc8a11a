package hnsw

import (
	"bytes"
	"encoding/gob"
	"io"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func encodeFloatVec(w io.Writer, p []float32) error {
	return gob.NewEncoder(w).Encode(p)
}

func decodeFloatVec(r io.Reader) ([]float32, error) {
	var p []float32
	err := gob.NewDecoder(r).Decode(&p)
	return p, err
}

func TestExportImportRoundTrip(t *testing.T) {
	g, err := NewWithParams(EuclideanFloat32, Params{M: 8, M0: 16, EfConstruction: 64, Seed: 42})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(9))
	var inserted [][]float32
	for i := 0; i < 40; i++ {
		v := make([]float32, 6)
		for j := range v {
			v[j] = rng.Float32()
		}
		inserted = append(inserted, v)
		g.Insert(v)
	}

	var buf bytes.Buffer
	require.NoError(t, g.Export(&buf, encodeFloatVec))

	g2, err := NewWithParams(EuclideanFloat32, DefaultParams())
	require.NoError(t, err)
	require.NoError(t, g2.Import(bytes.NewReader(buf.Bytes()), decodeFloatVec))

	require.Equal(t, g.Len(), g2.Len())
	for i, v := range inserted {
		require.Equal(t, v, g2.Point(uint32(i)))
	}

	q := inserted[5]
	out1, err := g.Nearest(q, 16, make([]Neighbor[float32], 5))
	require.NoError(t, err)
	out2, err := g2.Nearest(q, 16, make([]Neighbor[float32], 5))
	require.NoError(t, err)
	require.Equal(t, out1, out2)
}
