package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKernel(t *testing.T) {
	k := GenerateKernel(64, 42)
	require.Len(t, k, 64)
	for i, v := range k {
		assert.GreaterOrEqual(t, v[2], float32(0), "sample %d below the hemisphere", i)
		l := v.Len()
		assert.GreaterOrEqual(t, l, float32(0.1-1e-5), "sample %d", i)
		assert.LessOrEqual(t, l, float32(1+1e-5), "sample %d", i)
	}
	// squared falloff: early samples hug the origin
	assert.Less(t, k[0].Len(), k[63].Len())
	assert.InDelta(t, 0.1, k[0].Len(), 1e-5)

	assert.Equal(t, k, GenerateKernel(64, 42), "kernel is deterministic")
	assert.NotEqual(t, k, GenerateKernel(64, 43))
}

func TestGenerateNoise(t *testing.T) {
	n := GenerateNoise(123)
	require.Len(t, n, NoiseSize*NoiseSize)
	for i, v := range n {
		assert.Zero(t, v[2], "noise %d", i)
		assert.LessOrEqual(t, v[0], float32(1))
		assert.GreaterOrEqual(t, v[0], float32(-1))
	}
	assert.Equal(t, n, GenerateNoise(123))
}
