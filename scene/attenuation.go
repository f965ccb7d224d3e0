package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Attenuation is the quadratic falloff model 1/(c + l·d + q·d²) shared by the
// light shaders and the effect-radius solver.
type Attenuation struct {
	Constant  float32
	Linear    float32
	Quadratic float32
	// Threshold is the inverse of the smallest visible contribution: a light
	// stops mattering once its attenuated brightest channel falls under
	// 1/Threshold.
	Threshold float32
	// MinRadius is returned when no positive radius solves the model.
	MinRadius float32
}

func DefaultAttenuation() Attenuation {
	return Attenuation{
		Constant:  1,
		Linear:    0.7,
		Quadratic: 1.8,
		Threshold: 256.0 / 4.0,
		MinRadius: 0.01,
	}
}

// EffectRadius returns the distance at which the brightest channel of color
// drops below the visibility threshold:
//
//	c + l·r + q·r² = Threshold · max(R, G, B)
//
// The result is at least MinRadius and grows with the brightest channel.
func (a Attenuation) EffectRadius(color mgl32.Vec3) float32 {
	maxChannel := float64(max(color[0], color[1], color[2]))
	c := float64(a.Constant) - float64(a.Threshold)*maxChannel
	l := float64(a.Linear)
	q := float64(a.Quadratic)

	var r float64
	if q == 0 {
		if l == 0 {
			return a.MinRadius
		}
		r = -c / l
	} else {
		disc := l*l - 4*q*c
		if disc < 0 {
			return a.MinRadius
		}
		r = (-l + math.Sqrt(disc)) / (2 * q)
	}
	if r <= float64(a.MinRadius) || math.IsNaN(r) {
		return a.MinRadius
	}
	return float32(r)
}

// At returns the attenuation factor at distance d.
func (a Attenuation) At(d float32) float32 {
	return 1 / (a.Constant + a.Linear*d + a.Quadratic*d*d)
}
