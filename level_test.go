package hnsw

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSamplerDeterministic(t *testing.T) {
	a := NewSampler(16, 42)
	b := NewSampler(16, 42)

	for i := 0; i < 1000; i++ {
		require.Equal(t, a.Sample(), b.Sample())
	}
}

func TestSamplerNonNegative(t *testing.T) {
	s := NewSampler(16, 7)
	for i := 0; i < 1000; i++ {
		require.GreaterOrEqual(t, s.Sample(), 0)
	}
}

func TestRestoreSamplerMatchesPosition(t *testing.T) {
	s := NewSampler(16, 99)
	for i := 0; i < 50; i++ {
		s.Sample()
	}

	r := restoreSampler(16, 99, 50)
	for i := 0; i < 20; i++ {
		require.Equal(t, s.Sample(), r.Sample())
	}
}
