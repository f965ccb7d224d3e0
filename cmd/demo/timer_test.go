package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFrameTimerRate(t *testing.T) {
	obsCore, logs := observer.New(zapcore.InfoLevel)
	timer := NewFrameTimer(2, zap.New(obsCore))

	assert.Zero(t, timer.Tick(0, 4), "first frame has no delta")
	var dt float32
	for i := 1; i <= 15; i++ {
		dt = timer.Tick(float64(i)/10, 4)
	}

	assert.InDelta(t, 0.1, dt, 1e-4)
	assert.InDelta(t, 10, timer.FPS(), 0.01)
	assert.InDelta(t, 25, timer.MsPerLight(), 0.05)
	assert.Equal(t, uint64(16), timer.Frames())

	entries := logs.FilterMessage("frame rate").All()
	require.NotEmpty(t, entries)
	assert.Equal(t, int64(4), entries[0].ContextMap()["lights"])
}

func TestFrameTimerDropsOldFrames(t *testing.T) {
	timer := NewFrameTimer(2, nil)
	for i := 0; i <= 10; i++ {
		timer.Tick(float64(i), 1)
	}
	// only frames 8, 9 and 10 are inside the window
	assert.InDelta(t, 1, timer.FPS(), 1e-6)
}

func TestFrameTimerNoLights(t *testing.T) {
	timer := NewFrameTimer(1, nil)
	timer.Tick(0, 0)
	timer.Tick(0.5, 0)
	assert.InDelta(t, 2, timer.FPS(), 1e-6)
	assert.Zero(t, timer.MsPerLight())
}
