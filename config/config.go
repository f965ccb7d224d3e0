package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

// Config holds every tunable of the demo. Zero values are never used directly:
// Load overlays the file on top of Default().
type Config struct {
	Window      WindowConfig      `yaml:"window"`
	Camera      CameraConfig      `yaml:"camera"`
	Lights      LightsConfig      `yaml:"lights"`
	Attenuation AttenuationConfig `yaml:"attenuation"`
	SSAO        SSAOConfig        `yaml:"ssao"`
	Exposure    ExposureConfig    `yaml:"exposure"`
	Assets      AssetsConfig      `yaml:"assets"`

	Forward bool `yaml:"forward"` // start in forward mode
	Debug   bool `yaml:"debug"`   // GL error polling + debug logging
}

type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	VSync      bool   `yaml:"vsync"`
	Fullscreen bool   `yaml:"fullscreen"`
}

type CameraConfig struct {
	Position     [3]float32 `yaml:"position"`
	Yaw          float32    `yaml:"yaw"`   // degrees
	Pitch        float32    `yaml:"pitch"` // degrees
	FOV          float32    `yaml:"fov"`   // vertical, degrees
	NearDeferred float32    `yaml:"near_deferred"`
	NearForward  float32    `yaml:"near_forward"`
	Far          float32    `yaml:"far"`
	MoveSpeed    float32    `yaml:"move_speed"`
	LookSpeed    float32    `yaml:"look_speed"` // degrees per pixel
}

type LightsConfig struct {
	Initial      int     `yaml:"initial"`
	Seed         int64   `yaml:"seed"`
	OrbitSpeed   float32 `yaml:"orbit_speed"` // degrees per second
	MinDistance  float32 `yaml:"min_distance"`
	MaxDistance  float32 `yaml:"max_distance"`
	MaxHeight    float32 `yaml:"max_height"` // heights are drawn from [-MaxHeight, MaxHeight]
	MinIntensity float32 `yaml:"min_intensity"`
	MaxIntensity float32 `yaml:"max_intensity"`
	MarkerScale  float32 `yaml:"marker_scale"` // marker size as a fraction of the effect radius
}

type AttenuationConfig struct {
	Constant  float32 `yaml:"constant"`
	Linear    float32 `yaml:"linear"`
	Quadratic float32 `yaml:"quadratic"`
	Threshold float32 `yaml:"threshold"`
	MinRadius float32 `yaml:"min_radius"`
}

type SSAOConfig struct {
	Enabled    bool    `yaml:"enabled"`
	KernelSize int     `yaml:"kernel_size"`
	Radius     float32 `yaml:"radius"`
	Bias       float32 `yaml:"bias"`
	KernelSeed int64   `yaml:"kernel_seed"`
	NoiseSeed  int64   `yaml:"noise_seed"`
}

type ExposureConfig struct {
	Initial      float32 `yaml:"initial"`
	K            float32 `yaml:"k"`
	Min          float32 `yaml:"min"`
	Max          float32 `yaml:"max"`
	FallHalfLife float32 `yaml:"fall_half_life"` // frames
	RiseHalfLife float32 `yaml:"rise_half_life"` // frames
	MaxFallStep  float32 `yaml:"max_fall_step"`
	MaxRiseStep  float32 `yaml:"max_rise_step"`
}

// AssetsConfig names the two meshes. Empty paths select procedural stand-ins.
type AssetsConfig struct {
	Model  string `yaml:"model"`
	Ground string `yaml:"ground"`
}

// Default returns the settings the demo ships with.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Deferred Engine",
			VSync:  true,
		},
		Camera: CameraConfig{
			Position:     [3]float32{0, 10, 25},
			Yaw:          0,
			Pitch:        20,
			FOV:          60,
			NearDeferred: 0.1,
			NearForward:  0.5,
			Far:          1000,
			MoveSpeed:    5,
			LookSpeed:    0.1,
		},
		Lights: LightsConfig{
			Initial:      20,
			Seed:         1,
			OrbitSpeed:   15,
			MinDistance:  1,
			MaxDistance:  30,
			MaxHeight:    2.5,
			MinIntensity: 0.1,
			MaxIntensity: 3,
			MarkerScale:  0.05,
		},
		Attenuation: AttenuationConfig{
			Constant:  1,
			Linear:    0.7,
			Quadratic: 1.8,
			Threshold: 256.0 / 4.0,
			MinRadius: 0.01,
		},
		SSAO: SSAOConfig{
			Enabled:    true,
			KernelSize: 64,
			Radius:     0.5,
			Bias:       0.025,
			KernelSeed: 42,
			NoiseSeed:  123,
		},
		Exposure: ExposureConfig{
			Initial:      1,
			K:            0.25,
			Min:          0.05,
			Max:          4,
			FallHalfLife: 8,
			RiseHalfLife: 30,
			MaxFallStep:  0.25,
			MaxRiseStep:  0.05,
		},
	}
}

// Load reads a YAML file over Default(). Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first setting that would break the renderer.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("%w: fov %v", ErrInvalid, c.Camera.FOV)
	case c.Camera.NearDeferred <= 0 || c.Camera.NearForward <= 0 || c.Camera.Far <= c.Camera.NearForward || c.Camera.Far <= c.Camera.NearDeferred:
		return fmt.Errorf("%w: clip planes near=%v/%v far=%v", ErrInvalid,
			c.Camera.NearDeferred, c.Camera.NearForward, c.Camera.Far)
	case c.Lights.Initial < 0:
		return fmt.Errorf("%w: negative initial light count", ErrInvalid)
	case c.Lights.MaxDistance < c.Lights.MinDistance:
		return fmt.Errorf("%w: light distance range [%v, %v]", ErrInvalid, c.Lights.MinDistance, c.Lights.MaxDistance)
	case c.Attenuation.Constant < 0 || c.Attenuation.Linear < 0 || c.Attenuation.Quadratic < 0:
		return fmt.Errorf("%w: negative attenuation term", ErrInvalid)
	case c.Attenuation.Linear == 0 && c.Attenuation.Quadratic == 0:
		return fmt.Errorf("%w: attenuation needs a linear or quadratic term", ErrInvalid)
	case c.Attenuation.MinRadius <= 0:
		return fmt.Errorf("%w: min_radius must be positive", ErrInvalid)
	case c.SSAO.KernelSize <= 0 || c.SSAO.KernelSize > 64:
		return fmt.Errorf("%w: ssao kernel size %d (1..64)", ErrInvalid, c.SSAO.KernelSize)
	case c.Exposure.Min <= 0 || c.Exposure.Max < c.Exposure.Min:
		return fmt.Errorf("%w: exposure range [%v, %v]", ErrInvalid, c.Exposure.Min, c.Exposure.Max)
	case c.Exposure.FallHalfLife <= 0 || c.Exposure.RiseHalfLife <= 0:
		return fmt.Errorf("%w: exposure half-lives must be positive", ErrInvalid)
	case c.Exposure.MaxFallStep <= 0 || c.Exposure.MaxRiseStep <= 0:
		return fmt.Errorf("%w: exposure steps must be positive", ErrInvalid)
	}
	return nil
}
