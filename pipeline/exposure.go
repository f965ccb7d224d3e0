package pipeline

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Luminance weights an average scene color into a single brightness value.
func Luminance(c mgl32.Vec3) float32 {
	return 0.21*c[0] + 0.71*c[1] + 0.07*c[2]
}

// ExposureParams tune auto-exposure. Half-lives are in frames. Falling
// exposure (the scene got brighter) adapts fast; rising exposure (the scene
// got darker) adapts slowly, the way eyes do.
type ExposureParams struct {
	K            float32 // keeps the target finite in a black scene
	Min, Max     float32
	FallHalfLife float32
	RiseHalfLife float32
	MaxFallStep  float32 // per-frame cap on a decrease
	MaxRiseStep  float32 // per-frame cap on an increase
}

func DefaultExposureParams() ExposureParams {
	return ExposureParams{
		K:            0.25,
		Min:          0.05,
		Max:          4,
		FallHalfLife: 8,
		RiseHalfLife: 30,
		MaxFallStep:  0.25,
		MaxRiseStep:  0.05,
	}
}

// Target is the exposure that maps luminance lum to mid-grey.
func (p ExposureParams) Target(lum float32) float32 {
	if lum < 0 || math.IsNaN(float64(lum)) {
		lum = 0
	}
	return mgl32.Clamp(1/(lum+p.K), p.Min, p.Max)
}

// ExposureState is the single exposure scalar, written once per frame.
type ExposureState struct {
	Exposure float32
	Params   ExposureParams
}

func NewExposureState(initial float32, params ExposureParams) *ExposureState {
	return &ExposureState{Exposure: initial, Params: params}
}

// Adapt moves the exposure one frame toward the target for lum and returns
// the applied change. The step is a fixed fraction of the remaining distance
// (so it never overshoots) capped by the per-frame maximum.
func (s *ExposureState) Adapt(lum float32) float32 {
	target := s.Params.Target(lum)
	diff := target - s.Exposure

	halfLife, maxStep := s.Params.RiseHalfLife, s.Params.MaxRiseStep
	if diff < 0 {
		halfLife, maxStep = s.Params.FallHalfLife, s.Params.MaxFallStep
	}
	rate := float32(1 - math.Exp2(-1/float64(halfLife)))
	delta := mgl32.Clamp(diff*rate, -maxStep, maxStep)

	s.Exposure += delta
	return delta
}
