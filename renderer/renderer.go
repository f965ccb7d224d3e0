package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"deferred-engine/config"
	"deferred-engine/core"
	"deferred-engine/pipeline"
	"deferred-engine/scene"
)

// Backend draws frames. *opengl.Renderer is the production implementation.
type Backend interface {
	Render(f pipeline.Frame)
	Resize(width, height int) error
	Exposure() float32
	DrawText(lines []string, x, y int, color core.Color)
	Screenshot(dir string) (string, error)
	Destroy()
}

// textCmd is a queued DrawText call, flushed in Present().
type textCmd struct {
	lines []string
	x, y  int
	color core.Color
}

// Engine owns the light population and the per-frame pipeline settings and
// turns them into frames for the backend.
type Engine struct {
	backend Backend
	log     *zap.Logger

	lights  *scene.LightSet
	objects []scene.Object
	camera  config.CameraConfig

	mode pipeline.Mode
	ssao bool

	width, height int
	frames        uint64

	textQueue []textCmd
}

// New builds an engine over backend and seeds cfg.Lights.Initial lights.
// width and height must match the size the backend was created at.
func New(cfg config.Config, backend Backend, objects []scene.Object, width, height int, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	atten := scene.Attenuation{
		Constant:  cfg.Attenuation.Constant,
		Linear:    cfg.Attenuation.Linear,
		Quadratic: cfg.Attenuation.Quadratic,
		Threshold: cfg.Attenuation.Threshold,
		MinRadius: cfg.Attenuation.MinRadius,
	}
	params := scene.LightParams{
		OrbitSpeed:   cfg.Lights.OrbitSpeed,
		MinDistance:  cfg.Lights.MinDistance,
		MaxDistance:  cfg.Lights.MaxDistance,
		MaxHeight:    cfg.Lights.MaxHeight,
		MinIntensity: cfg.Lights.MinIntensity,
		MaxIntensity: cfg.Lights.MaxIntensity,
		MarkerScale:  cfg.Lights.MarkerScale,
	}

	e := &Engine{
		backend: backend,
		log:     log,
		lights:  scene.NewLightSet(params, atten, cfg.Lights.Seed, log.Named("lights")),
		objects: objects,
		camera:  cfg.Camera,
		ssao:    cfg.SSAO.Enabled,
		width:   width,
		height:  height,
	}
	if cfg.Forward {
		e.mode = pipeline.ModeForward
	}
	e.lights.Add(cfg.Lights.Initial)
	return e
}

// Lights is the engine's light population.
func (e *Engine) Lights() *scene.LightSet { return e.lights }

// AddLights appends n generated lights.
func (e *Engine) AddLights(n int) {
	e.lights.Add(n)
}

// RemoveLights pops up to n lights and returns how many went. Asking for
// more than exist empties the set and logs a warning.
func (e *Engine) RemoveLights(n int) int {
	return e.lights.Remove(n)
}

// RemoveAllLights empties the set without a warning.
func (e *Engine) RemoveAllLights() int {
	return e.lights.Remove(e.lights.Len())
}

// Update advances the light orbits by dt seconds.
func (e *Engine) Update(dt float32) {
	e.lights.Update(dt)
}

func (e *Engine) Mode() pipeline.Mode { return e.mode }

// ToggleForwardMode switches between deferred and forward shading and
// returns the new mode. It takes effect on the next Render.
func (e *Engine) ToggleForwardMode() pipeline.Mode {
	e.mode = e.mode.Toggle()
	e.log.Info("render mode", zap.Stringer("mode", e.mode))
	return e.mode
}

func (e *Engine) SSAOEnabled() bool { return e.ssao }

// ToggleSSAO flips ambient occlusion. Forward mode never runs it.
func (e *Engine) ToggleSSAO() bool {
	e.ssao = !e.ssao
	e.log.Info("ssao", zap.Bool("enabled", e.ssao))
	return e.ssao
}

// Resize rebuilds the backend's buffers. A zero-area size, as reported for
// a minimized window, is ignored and rendering pauses until the next real
// size arrives.
func (e *Engine) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		e.log.Debug("ignoring zero-area resize", zap.Int("width", width), zap.Int("height", height))
		e.width, e.height = 0, 0
		return nil
	}
	if width == e.width && height == e.height {
		return nil
	}
	if err := e.backend.Resize(width, height); err != nil {
		return err
	}
	e.width, e.height = width, height
	return nil
}

// Viewport is the current render size.
func (e *Engine) Viewport() core.Viewport {
	return core.Viewport{Width: e.width, Height: e.height}
}

// Projection is cam's projection for the current mode: forward shading
// pushes the near plane out to keep depth precision for its many passes.
func (e *Engine) Projection(cam *scene.Camera) mgl32.Mat4 {
	c := *cam
	c.Near = e.camera.NearDeferred
	if e.mode == pipeline.ModeForward {
		c.Near = e.camera.NearForward
	}
	return c.Projection(e.Viewport().Aspect())
}

// Frame assembles what the backend needs for one frame.
func (e *Engine) Frame(lights []scene.Light, cam *scene.Camera) pipeline.Frame {
	return pipeline.Frame{
		Plan:        pipeline.Plan{Mode: e.mode, SSAO: e.ssao && e.mode == pipeline.ModeDeferred},
		Objects:     e.objects,
		Lights:      lights,
		Attenuation: e.lights.Attenuation(),
		View:        cam.View(),
		Proj:        e.Projection(cam),
		CameraPos:   cam.Position,
	}
}

// Render draws lights and the scene objects as seen from cam. Nothing is
// drawn while the surface has no area.
func (e *Engine) Render(lights []scene.Light, cam *scene.Camera) {
	if e.Viewport().Empty() {
		return
	}
	e.backend.Render(e.Frame(lights, cam))
	e.frames++
}

// Frames is the number of frames rendered so far.
func (e *Engine) Frames() uint64 { return e.frames }

func (e *Engine) Exposure() float32 { return e.backend.Exposure() }

// DrawText queues lines to be drawn at pixel (x, y) in the next Present().
// Text is drawn after tone mapping, so it bypasses HDR and is always readable.
func (e *Engine) DrawText(lines []string, x, y int, color core.Color) {
	e.textQueue = append(e.textQueue, textCmd{lines: lines, x: x, y: y, color: color})
}

// Present flushes queued text onto the frame. The caller swaps buffers.
func (e *Engine) Present() {
	if !e.Viewport().Empty() {
		for _, cmd := range e.textQueue {
			e.backend.DrawText(cmd.lines, cmd.x, cmd.y, cmd.color)
		}
	}
	e.textQueue = e.textQueue[:0]
}

// Screenshot saves the current frame under dir.
func (e *Engine) Screenshot(dir string) (string, error) {
	return e.backend.Screenshot(dir)
}

func (e *Engine) Destroy() {
	e.backend.Destroy()
}
