package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deferred-engine/config"
)

func TestParseFlagsDefaults(t *testing.T) {
	f, err := parseFlags(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "", f.configPath)
	assert.Equal(t, -1, f.lights)
	assert.False(t, f.debug)
	assert.False(t, f.forward)
	assert.Equal(t, ".", f.screenshots)
}

func TestParseFlagsRejectsUnknown(t *testing.T) {
	_, err := parseFlags([]string{"-bogus"}, io.Discard)
	assert.Error(t, err)
}

func TestLoadConfigWithoutFile(t *testing.T) {
	f, err := parseFlags(nil, io.Discard)
	require.NoError(t, err)
	cfg, err := loadConfig(f)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lights:\n  initial: 50\nssao:\n  radius: 0.75\n"), 0o644))

	f, err := parseFlags([]string{"-config", path, "-lights", "5", "-forward", "-debug"}, io.Discard)
	require.NoError(t, err)
	cfg, err := loadConfig(f)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Lights.Initial)
	assert.True(t, cfg.Forward)
	assert.True(t, cfg.Debug)
	assert.InDelta(t, 0.75, cfg.SSAO.Radius, 1e-6)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(cliFlags{configPath: filepath.Join(t.TempDir(), "missing.yaml"), lights: -1})
	assert.Error(t, err, "an explicit path must exist")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  width: 0\n"), 0o644))
	_, err = loadConfig(cliFlags{configPath: path, lights: -1})
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestGLOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.SSAO.KernelSize = 32
	cfg.Exposure.Initial = 2
	cfg.Debug = true

	opts := glOptions(cfg)
	assert.Equal(t, 32, opts.SSAO.KernelSize)
	assert.Equal(t, cfg.SSAO.KernelSeed, opts.SSAO.KernelSeed)
	assert.InDelta(t, 2, opts.InitialExp, 1e-6)
	assert.InDelta(t, cfg.Exposure.RiseHalfLife, opts.Exposure.RiseHalfLife, 1e-6)
	assert.True(t, opts.Debug)

	wc := windowConfig(cfg)
	assert.Equal(t, cfg.Window.Width, wc.Width)
	assert.Equal(t, cfg.Window.Title, wc.Title)
}
