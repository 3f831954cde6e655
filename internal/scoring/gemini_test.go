package scoring

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiEmbedder_RequiresAPIKey(t *testing.T) {
	_, err := NewGeminiEmbedder(context.Background(), "", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestL2Normalize_UnitLength(t *testing.T) {
	vector := l2Normalize([]float32{3, 4})

	assert.InDelta(t, 0.6, vector[0], 1e-6)
	assert.InDelta(t, 0.8, vector[1], 1e-6)

	var norm float64
	for _, v := range vector {
		norm += v * v
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
}

func TestL2Normalize_ZeroVector(t *testing.T) {
	assert.Equal(t, []float64{0, 0, 0}, l2Normalize([]float32{0, 0, 0}))
}

func TestL2Normalize_Empty(t *testing.T) {
	assert.Empty(t, l2Normalize(nil))
}
