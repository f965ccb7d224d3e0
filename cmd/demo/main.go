package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"deferred-engine/core"
	"deferred-engine/internal/logger"
	"deferred-engine/internal/opengl"
	"deferred-engine/renderer"
	"deferred-engine/scene"
)

// windowControl is what key handling needs from core.Window.
type windowControl interface {
	ToggleFullscreen()
	SetCursorCaptured(captured bool)
	SetShouldClose(v bool)
}

// app ties input to the engine.
type app struct {
	engine     *renderer.Engine
	window     windowControl
	controller *CameraController
	hud        *DebugOverlay
	log        *zap.Logger

	screenshotDir     string
	screenshotPending bool
}

// handleKey reacts to a single key press. Shift multiplies the light
// steps by ten.
func (a *app) handleKey(key int, mods core.ModifierKey) {
	step := 1
	if mods&core.ModShift != 0 {
		step = 10
	}
	switch key {
	case core.KeyEscape:
		a.window.SetShouldClose(true)
	case core.KeyF10:
		a.window.ToggleFullscreen()
	case core.KeyF12:
		a.screenshotPending = true
	case core.Key0:
		a.engine.RemoveAllLights()
	case core.KeyRightBracket:
		a.engine.AddLights(10 * step)
	case core.KeyLeftBracket:
		a.engine.RemoveLights(10 * step)
	case core.KeyEqual:
		a.engine.AddLights(step)
	case core.KeyMinus:
		a.engine.RemoveLights(step)
	case core.KeyF:
		a.engine.ToggleForwardMode()
	case core.KeyO:
		a.engine.ToggleSSAO()
	case core.KeyH:
		a.hud.Visible = !a.hud.Visible
	case core.KeyLeftAlt, core.KeyRightAlt:
		captured := !a.controller.Captured()
		a.controller.SetCaptured(captured)
		a.window.SetCursorCaptured(captured)
	}
}

// takeScreenshot writes the presented frame if F12 was pressed.
func (a *app) takeScreenshot() {
	if !a.screenshotPending {
		return
	}
	a.screenshotPending = false
	path, err := a.engine.Screenshot(a.screenshotDir)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

func main() {
	flags, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}
	os.Exit(run(flags))
}

func run(flags cliFlags) int {
	if err := logger.Init(flags.debug); err != nil {
		return 1
	}
	defer logger.Sync()

	cfg, err := loadConfig(flags)
	if err != nil {
		logger.Log.Error("failed to load config", zap.Error(err))
		return 1
	}
	if cfg.Debug && !flags.debug {
		if err := logger.Init(true); err != nil {
			return 1
		}
	}
	log := logger.Log
	log.Debug("config", zap.Int("lights", cfg.Lights.Initial), zap.Bool("forward", cfg.Forward),
		zap.Bool("ssao", cfg.SSAO.Enabled), zap.String("model", cfg.Assets.Model))

	assets, err := scene.LoadAssets(context.Background(), cfg.Assets.Model, cfg.Assets.Ground)
	if err != nil {
		log.Error("failed to load assets", zap.Error(err))
		return 1
	}

	window, err := core.NewWindow(windowConfig(cfg))
	if err != nil {
		log.Error("failed to create window", zap.Error(err))
		return 1
	}
	defer window.Destroy()

	backend, err := opengl.NewRenderer(glOptions(cfg), window.Width, window.Height, log.Named("gl"))
	if err != nil {
		log.Error("failed to create renderer", zap.Error(err))
		return 1
	}
	engine := renderer.New(cfg, backend, assets.Objects(), window.Width, window.Height, log.Named("engine"))
	defer engine.Destroy()

	camera := scene.NewCamera(mgl32.Vec3(cfg.Camera.Position), cfg.Camera.Yaw, cfg.Camera.Pitch)
	camera.FOV = cfg.Camera.FOV
	camera.Far = cfg.Camera.Far

	a := &app{
		engine:        engine,
		window:        window,
		controller:    NewCameraController(cfg.Camera.MoveSpeed, cfg.Camera.LookSpeed),
		hud:           &DebugOverlay{Visible: true},
		log:           log,
		screenshotDir: flags.screenshots,
	}
	window.OnKeyPress(a.handleKey)

	exitCode := 0
	window.OnResize(func(width, height int) {
		if err := engine.Resize(width, height); err != nil {
			log.Error("failed to rebuild buffers", zap.Int("width", width), zap.Int("height", height), zap.Error(err))
			exitCode = 1
			window.SetShouldClose(true)
		}
	})

	a.controller.SetCaptured(true)
	window.SetCursorCaptured(true)

	log.Info("controls",
		zap.String("move", "WASD, Shift faster, Ctrl slower, mouse look while captured (Alt)"),
		zap.String("lights", "] +10, [ -10, = +1, - -1 (Shift x10), 0 remove all"),
		zap.String("toggles", "F forward/deferred, O ssao, H hud, F10 fullscreen, F12 screenshot"),
		zap.String("exit", "Esc"))

	timer := NewFrameTimer(2, log.Named("timer"))
	var deltaTime float32
	for !window.ShouldClose() {
		window.PollEvents()

		a.controller.Update(window, camera, deltaTime)
		engine.Update(deltaTime)
		engine.Render(engine.Lights().Lights(), camera)

		a.hud.Fill(hudStats{
			Mode:     engine.Mode(),
			SSAO:     engine.SSAOEnabled(),
			Lights:   engine.Lights().Len(),
			FPS:      timer.FPS(),
			MsLight:  timer.MsPerLight(),
			Exposure: engine.Exposure(),
		})
		if lines := a.hud.Lines(); lines != nil {
			engine.DrawText(lines, 10, 10, core.ColorWhite)
		}
		engine.Present()
		a.takeScreenshot()

		window.SwapBuffers()
		deltaTime = timer.Tick(core.Time(), engine.Lights().Len())
	}

	log.Info("shutting down", zap.Uint64("frames", engine.Frames()))
	return exitCode
}
