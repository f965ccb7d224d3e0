package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestEffectRadiusPositive(t *testing.T) {
	a := DefaultAttenuation()
	colors := []mgl32.Vec3{
		{1, 1, 1},
		{3, 0, 0},
		{0, 0.001, 0},
		{1e-6, 0, 0},
		{0.01, 0.02, 0.005},
	}
	for _, c := range colors {
		assert.Greater(t, a.EffectRadius(c), float32(0), "color %v", c)
	}
}

func TestEffectRadiusMonotonic(t *testing.T) {
	a := DefaultAttenuation()
	prev := float32(0)
	for i := 1; i <= 100; i++ {
		c := mgl32.Vec3{0.2, float32(i) * 0.05, 0.1}
		r := a.EffectRadius(c)
		assert.GreaterOrEqual(t, r, prev, "intensity %v", c[1])
		prev = r
	}
}

func TestEffectRadiusSolvesModel(t *testing.T) {
	a := DefaultAttenuation()
	c := mgl32.Vec3{0.5, 2, 1}
	r := a.EffectRadius(c)

	// attenuated brightest channel equals the visibility floor at r
	assert.InDelta(t, 1/a.Threshold, 2*a.At(r), 1e-4)
	assert.Greater(t, 2*a.At(r*0.9), 1/a.Threshold)
}

func TestEffectRadiusLinearOnly(t *testing.T) {
	a := Attenuation{Constant: 1, Linear: 0.5, Threshold: 64, MinRadius: 0.01}
	// 1 + 0.5 r = 64 → r = 126
	assert.InDelta(t, 126, a.EffectRadius(mgl32.Vec3{1, 0, 0}), 1e-3)
}

func TestEffectRadiusDimLightClamped(t *testing.T) {
	a := DefaultAttenuation()
	// below 1/Threshold nothing is ever visible
	assert.Equal(t, a.MinRadius, a.EffectRadius(mgl32.Vec3{0.001, 0, 0}))
	assert.Equal(t, a.MinRadius, a.EffectRadius(mgl32.Vec3{}))
}
