package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"

	"deferred-engine/config"
	"deferred-engine/core"
	"deferred-engine/internal/opengl"
	"deferred-engine/pipeline"
)

// cliFlags are the command-line overrides.
type cliFlags struct {
	configPath  string
	lights      int // -1 keeps the config value
	debug       bool
	forward     bool
	screenshots string
}

func parseFlags(args []string, out io.Writer) (cliFlags, error) {
	var f cliFlags
	set := flag.NewFlagSet("demo", flag.ContinueOnError)
	set.SetOutput(out)
	set.StringVar(&f.configPath, "config", "", "YAML config file; "+defaultConfigPath+" is used if present")
	set.IntVar(&f.lights, "lights", -1, "initial light count (-1 keeps the config value)")
	set.BoolVar(&f.debug, "debug", false, "poll GL errors after every pass and log at debug level")
	set.BoolVar(&f.forward, "forward", false, "start in forward shading mode")
	set.StringVar(&f.screenshots, "screenshots", ".", "directory F12 screenshots are written to")
	if err := set.Parse(args); err != nil {
		return f, err
	}
	return f, nil
}

// loadConfig reads the config file, if any, and applies the flags on top.
func loadConfig(f cliFlags) (config.Config, error) {
	cfg := config.Default()
	switch loaded, err := config.Load(pathOr(f.configPath, defaultConfigPath)); {
	case err == nil:
		cfg = loaded
	case f.configPath == "" && errors.Is(err, fs.ErrNotExist):
	default:
		return cfg, err
	}
	if f.lights >= 0 {
		cfg.Lights.Initial = f.lights
	}
	if f.debug {
		cfg.Debug = true
	}
	if f.forward {
		cfg.Forward = true
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// defaultConfigPath is tried when -config is not given; a missing file is fine.
const defaultConfigPath = "deferred.yaml"

func pathOr(path, fallback string) string {
	if path == "" {
		return fallback
	}
	return path
}

func windowConfig(cfg config.Config) core.WindowConfig {
	wc := core.DefaultWindowConfig()
	wc.Width = cfg.Window.Width
	wc.Height = cfg.Window.Height
	wc.Title = cfg.Window.Title
	wc.VSync = cfg.Window.VSync
	wc.Fullscreen = cfg.Window.Fullscreen
	return wc
}

func glOptions(cfg config.Config) opengl.Options {
	return opengl.Options{
		SSAO: opengl.SSAOOptions{
			KernelSize: cfg.SSAO.KernelSize,
			KernelSeed: cfg.SSAO.KernelSeed,
			NoiseSeed:  cfg.SSAO.NoiseSeed,
			Radius:     cfg.SSAO.Radius,
			Bias:       cfg.SSAO.Bias,
		},
		Exposure: pipeline.ExposureParams{
			K:            cfg.Exposure.K,
			Min:          cfg.Exposure.Min,
			Max:          cfg.Exposure.Max,
			FallHalfLife: cfg.Exposure.FallHalfLife,
			RiseHalfLife: cfg.Exposure.RiseHalfLife,
			MaxFallStep:  cfg.Exposure.MaxFallStep,
			MaxRiseStep:  cfg.Exposure.MaxRiseStep,
		},
		InitialExp:  cfg.Exposure.Initial,
		Environment: pipeline.DefaultEnvironment(),
		Debug:       cfg.Debug,
	}
}
