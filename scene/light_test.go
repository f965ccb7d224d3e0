package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedSet(t *testing.T) (*LightSet, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return NewLightSet(DefaultLightParams(), DefaultAttenuation(), 7, zap.New(core)), logs
}

func snapshot(s *LightSet) []Light {
	return append([]Light(nil), s.Lights()...)
}

func TestLightSetAddRemoveRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 20} {
		for _, k := range []int{0, 1, 10, 37} {
			s := NewLightSet(DefaultLightParams(), DefaultAttenuation(), 3, nil)
			s.Add(n)
			s.Update(0.25)
			before := snapshot(s)

			s.Add(k)
			require.Equal(t, n+k, s.Len())
			removed := s.Remove(k)

			assert.Equal(t, k, removed)
			assert.Equal(t, before, snapshot(s), "n=%d k=%d", n, k)
		}
	}
}

func TestLightSetScenario(t *testing.T) {
	s, logs := newObservedSet(t)

	s.Add(20)
	require.Equal(t, 20, s.Len())

	s.Add(10)
	assert.Equal(t, 30, s.Len())

	removed := s.Remove(100)
	assert.Equal(t, 30, removed)
	assert.Equal(t, 0, s.Len())
	warns := logs.FilterMessage("no more lights to remove")
	require.Equal(t, 1, warns.Len())
	assert.Equal(t, int64(100), warns.All()[0].ContextMap()["requested"])
	assert.Equal(t, int64(30), warns.All()[0].ContextMap()["available"])

	removed = s.Remove(5)
	assert.Equal(t, 0, removed)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 2, logs.FilterMessage("no more lights to remove").Len())
}

func TestLightSetRemoveExactDoesNotWarn(t *testing.T) {
	s, logs := newObservedSet(t)
	s.Add(10)
	assert.Equal(t, 10, s.Remove(10))
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestLightSetStackDiscipline(t *testing.T) {
	s := NewLightSet(DefaultLightParams(), DefaultAttenuation(), 11, nil)
	s.Add(5)
	first := snapshot(s)
	s.Add(3)
	s.Remove(4)
	require.Equal(t, 4, s.Len())
	assert.Equal(t, first[:4], snapshot(s))
}

func TestLightGeneratedRanges(t *testing.T) {
	p := DefaultLightParams()
	s := NewLightSet(p, DefaultAttenuation(), 5, nil)
	s.Add(200)
	for i, l := range s.Lights() {
		assert.GreaterOrEqual(t, l.Distance, p.MinDistance, "light %d", i)
		assert.LessOrEqual(t, l.Distance, p.MaxDistance, "light %d", i)
		assert.LessOrEqual(t, mgl32.Abs(l.Height), p.MaxHeight, "light %d", i)
		intensity := l.Color.Len()
		assert.GreaterOrEqual(t, intensity, p.MinIntensity-1e-4, "light %d", i)
		assert.LessOrEqual(t, intensity, p.MaxIntensity+1e-4, "light %d", i)
		assert.Greater(t, l.Radius, float32(0), "light %d", i)
	}
}

func TestLightDerivedTransforms(t *testing.T) {
	s := NewLightSet(DefaultLightParams(), DefaultAttenuation(), 1, nil)
	s.Add(1)
	l := &s.Lights()[0]

	l.Distance, l.Height, l.OrbitAngle = 10, 2, 0
	s.Update(0)

	// orbit 0: translate(0,0,-d) then lift
	assert.InDeltaSlice(t, []float32{0, 2, -10}, l.Position[:], 1e-4)
	assert.InDelta(t, l.Radius, l.VolumeTransform.Col(0).Vec3().Len(), 1e-4)
	assert.InDelta(t, l.Radius*0.05, l.MarkerSize(), 1e-4)

	center := l.VolumeTransform.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	assert.InDeltaSlice(t, l.Position[:], center[:], 1e-4)

	// a quarter turn about +Y maps -Z onto -X
	s.Update(90 / DefaultLightParams().OrbitSpeed)
	assert.InDeltaSlice(t, []float32{-10, 2, 0}, l.Position[:], 1e-3)
}

func TestLightUpdateKeepsAngleBounded(t *testing.T) {
	s := NewLightSet(DefaultLightParams(), DefaultAttenuation(), 1, nil)
	s.Add(4)
	for i := 0; i < 100; i++ {
		s.Update(10)
	}
	for _, l := range s.Lights() {
		assert.GreaterOrEqual(t, l.OrbitAngle, float32(0))
		assert.Less(t, l.OrbitAngle, float32(2*3.1416))
	}
}
