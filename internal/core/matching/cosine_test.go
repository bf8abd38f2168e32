package matching

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, expected: 1},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, expected: -1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, expected: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			score, err := cosineSimilarity(tc.a, tc.b)
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, score, 1e-9)
		})
	}
}

func TestCosineSimilarity_NonFiniteInput(t *testing.T) {
	inf := float32(math.Inf(1))

	_, err := cosineSimilarity([]float32{inf, 1}, []float32{1, inf})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrScoreOutOfRange)
}

func TestCosineSimilarity_InvalidVectors(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
	}{
		{name: "empty a", a: nil, b: []float32{1}},
		{name: "empty b", a: []float32{1}, b: nil},
		{name: "dimension mismatch", a: []float32{1, 2}, b: []float32{1, 2, 3}},
		{name: "zero magnitude", a: []float32{0, 0}, b: []float32{1, 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := cosineSimilarity(tc.a, tc.b)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrEmbeddingUnavailable)
		})
	}
}
