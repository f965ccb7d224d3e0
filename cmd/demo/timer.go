package main

import (
	"go.uber.org/zap"
)

// FrameTimer measures frame rate over a sliding window of recent frame
// timestamps and logs it once per second.
type FrameTimer struct {
	log    *zap.Logger
	window float64 // seconds of history kept

	times     []float64
	last      float64
	lastPrint float64
	frames    uint64

	fps     float32
	msLight float32
}

func NewFrameTimer(window float64, log *zap.Logger) *FrameTimer {
	if log == nil {
		log = zap.NewNop()
	}
	if window <= 0 {
		window = 1
	}
	return &FrameTimer{log: log, window: window, last: -1}
}

// Tick records a frame finished at now (seconds) with lights active and
// returns the time since the previous frame. The first tick returns 0.
func (t *FrameTimer) Tick(now float64, lights int) float32 {
	dt := float32(0)
	if t.last >= 0 {
		dt = float32(now - t.last)
	}
	t.last = now
	t.frames++

	t.times = append(t.times, now)
	drop := 0
	for drop < len(t.times)-1 && now-t.times[drop] > t.window {
		drop++
	}
	t.times = t.times[drop:]

	t.fps = 0
	if span := t.times[len(t.times)-1] - t.times[0]; span > 0 {
		t.fps = float32(float64(len(t.times)-1) / span)
	}
	t.msLight = 0
	if t.fps > 0 && lights > 0 {
		t.msLight = 1000 / t.fps / float32(lights)
	}

	if now-t.lastPrint >= 1 {
		t.lastPrint = now
		t.log.Info("frame rate",
			zap.Float32("fps", t.fps),
			zap.Int("lights", lights),
			zap.Float32("ms_per_light", t.msLight))
	}
	return dt
}

func (t *FrameTimer) FPS() float32 { return t.fps }

// MsPerLight is frame time divided by the light count, 0 with no lights.
func (t *FrameTimer) MsPerLight() float32 { return t.msLight }

func (t *FrameTimer) Frames() uint64 { return t.frames }
