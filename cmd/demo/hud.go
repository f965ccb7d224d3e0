package main

import (
	"fmt"

	"deferred-engine/pipeline"
)

// DebugOverlay collects the HUD lines for one frame.
type DebugOverlay struct {
	lines   []string
	Visible bool
}

func (do *DebugOverlay) AddLine(format string, args ...interface{}) {
	do.lines = append(do.lines, fmt.Sprintf(format, args...))
}

func (do *DebugOverlay) Clear() {
	do.lines = do.lines[:0]
}

// Lines returns the collected lines, or nil while the overlay is hidden.
func (do *DebugOverlay) Lines() []string {
	if !do.Visible || len(do.lines) == 0 {
		return nil
	}
	return do.lines
}

// hudStats is everything the overlay reports.
type hudStats struct {
	Mode     pipeline.Mode
	SSAO     bool
	Lights   int
	FPS      float32
	MsLight  float32
	Exposure float32
}

// Fill replaces the overlay contents with s.
func (do *DebugOverlay) Fill(s hudStats) {
	do.Clear()
	do.AddLine("mode: %s", s.Mode)
	do.AddLine("lights: %d", s.Lights)
	do.AddLine("fps: %.1f (%.4f ms/light)", s.FPS, s.MsLight)
	do.AddLine("exposure: %.3f", s.Exposure)
	ssao := "off"
	if s.SSAO {
		ssao = "on"
	}
	if s.Mode == pipeline.ModeForward {
		ssao += " (deferred only)"
	}
	do.AddLine("ssao: %s", ssao)
}
