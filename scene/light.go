package scene

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Light is one orbiting point light. The first four fields are its state;
// the rest are derived by update and rewritten every frame.
type Light struct {
	Distance   float32    // orbit radius around the Y axis
	OrbitAngle float32    // radians
	Height     float32    // offset along Y
	Color      mgl32.Vec3 // unnormalized RGB scaled by intensity

	Position        mgl32.Vec3
	Radius          float32
	DrawTransform   mgl32.Mat4 // marker
	VolumeTransform mgl32.Mat4 // unit sphere scaled to Radius
}

// LightParams controls how new lights are generated and animated.
type LightParams struct {
	OrbitSpeed   float32 // degrees per second
	MinDistance  float32
	MaxDistance  float32
	MaxHeight    float32
	MinIntensity float32
	MaxIntensity float32
	MarkerScale  float32
}

func DefaultLightParams() LightParams {
	return LightParams{
		OrbitSpeed:   15,
		MinDistance:  1,
		MaxDistance:  30,
		MaxHeight:    2.5,
		MinIntensity: 0.1,
		MaxIntensity: 3,
		MarkerScale:  0.05,
	}
}

// LightSet is a dense arena of lights. Index order is creation order and
// doubles as the light ID used by the per-light instance buffers, so lights
// are only ever pushed and popped at the back.
type LightSet struct {
	lights []Light
	params LightParams
	atten  Attenuation
	rng    *rand.Rand
	log    *zap.Logger
}

func NewLightSet(params LightParams, atten Attenuation, seed int64, log *zap.Logger) *LightSet {
	if log == nil {
		log = zap.NewNop()
	}
	return &LightSet{
		params: params,
		atten:  atten,
		rng:    rand.New(rand.NewSource(seed)),
		log:    log,
	}
}

func (s *LightSet) Len() int { return len(s.lights) }

// Lights returns the live slice. Callers must not retain it across Add,
// Remove or Update.
func (s *LightSet) Lights() []Light { return s.lights }

func (s *LightSet) Attenuation() Attenuation { return s.atten }

// Add appends n freshly generated lights with their derived fields filled in.
func (s *LightSet) Add(n int) {
	if n <= 0 {
		return
	}
	for i := 0; i < n; i++ {
		l := s.generate()
		s.derive(&l)
		s.lights = append(s.lights, l)
	}
	s.log.Info("lights added", zap.Int("added", n), zap.Int("total", len(s.lights)))
}

// Remove pops up to n lights from the back and returns how many were
// removed. Asking for more than exist removes all of them and logs a
// warning; it is never an error.
func (s *LightSet) Remove(n int) int {
	if n <= 0 {
		return 0
	}
	have := len(s.lights)
	removed := min(n, have)
	clear(s.lights[have-removed:])
	s.lights = s.lights[:have-removed]

	if n > have {
		s.log.Warn("no more lights to remove",
			zap.Int("requested", n),
			zap.Int("available", have))
	}
	if removed > 0 {
		s.log.Info("lights removed", zap.Int("removed", removed), zap.Int("total", len(s.lights)))
	}
	return removed
}

// Update advances every orbit by dt seconds and recomputes derived fields.
func (s *LightSet) Update(dt float32) {
	step := mgl32.DegToRad(s.params.OrbitSpeed) * dt
	for i := range s.lights {
		l := &s.lights[i]
		l.OrbitAngle = float32(math.Mod(float64(l.OrbitAngle+step), 2*math.Pi))
		s.derive(l)
	}
}

func (s *LightSet) generate() Light {
	p := s.params
	color := mgl32.Vec3{s.rng.Float32(), s.rng.Float32(), s.rng.Float32()}
	if color.Len() < 1e-6 {
		color = mgl32.Vec3{1, 1, 1}
	}
	intensity := p.MinIntensity + s.rng.Float32()*(p.MaxIntensity-p.MinIntensity)
	return Light{
		Color:      color.Normalize().Mul(intensity),
		Distance:   p.MinDistance + s.rng.Float32()*(p.MaxDistance-p.MinDistance),
		OrbitAngle: s.rng.Float32() * 2 * math.Pi,
		Height:     (s.rng.Float32()*2 - 1) * p.MaxHeight,
	}
}

func (s *LightSet) derive(l *Light) {
	unscaled := mgl32.HomogRotate3DY(l.OrbitAngle).
		Mul4(mgl32.Translate3D(0, l.Height, 0)).
		Mul4(mgl32.Translate3D(0, 0, -l.Distance))

	l.Radius = s.atten.EffectRadius(l.Color)
	l.Position = unscaled.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	marker := l.Radius * s.params.MarkerScale
	l.DrawTransform = unscaled.Mul4(mgl32.Scale3D(marker, marker, marker))
	l.VolumeTransform = unscaled.Mul4(mgl32.Scale3D(l.Radius, l.Radius, l.Radius))
}

// MarkerSize is the world-space edge length of the light's marker billboard.
func (l Light) MarkerSize() float32 {
	return l.DrawTransform.Col(0).Vec3().Len()
}
