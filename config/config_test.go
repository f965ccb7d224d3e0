package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 20, cfg.Lights.Initial)
	assert.Equal(t, 64, cfg.SSAO.KernelSize)
	assert.InDelta(t, 64.0, cfg.Attenuation.Threshold, 1e-6)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
lights:
  initial: 50
exposure:
  k: 0.5
forward: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Lights.Initial)
	assert.InDelta(t, 0.5, cfg.Exposure.K, 1e-6)
	assert.True(t, cfg.Forward)

	// untouched keys keep defaults
	def := Default()
	assert.Equal(t, def.Window, cfg.Window)
	assert.Equal(t, def.Attenuation, cfg.Attenuation)
	assert.Equal(t, def.Lights.OrbitSpeed, cfg.Lights.OrbitSpeed)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeConfig(t, `
ssao:
  kernel_size: 128
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "lights: [1, 2")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"fov too wide", func(c *Config) { c.Camera.FOV = 180 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.2 }},
		{"negative lights", func(c *Config) { c.Lights.Initial = -1 }},
		{"no falloff", func(c *Config) { c.Attenuation.Linear, c.Attenuation.Quadratic = 0, 0 }},
		{"zero min radius", func(c *Config) { c.Attenuation.MinRadius = 0 }},
		{"exposure range", func(c *Config) { c.Exposure.Max = c.Exposure.Min / 2 }},
		{"zero half life", func(c *Config) { c.Exposure.RiseHalfLife = 0 }},
		{"zero step", func(c *Config) { c.Exposure.MaxFallStep = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}
