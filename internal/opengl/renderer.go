package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"deferred-engine/core"
	"deferred-engine/pipeline"
)

// Options configure the GL backend.
type Options struct {
	SSAO        SSAOOptions
	Exposure    pipeline.ExposureParams
	InitialExp  float32
	Environment pipeline.Environment
	Debug       bool // poll glGetError after every pass
}

// Renderer is the OpenGL rendering backend. It owns every GL object and
// must only be used from the thread that owns the context.
type Renderer struct {
	log   *zap.Logger
	debug bool
	env   pipeline.Environment

	buffers *pipeline.BufferSet
	meshes  *meshCache
	quadVAO uint32 // empty VAO for gl_VertexID full-screen draws

	geometry *geometryPass
	ssao     *ssaoStage
	lighting *lightingPass
	volumes  *lightVolumePass
	forward  *forwardPass
	markers  *markerPass
	exposure *exposureStage
	text     *textOverlay

	exposureState *pipeline.ExposureState
	culler        pipeline.Culler
}

// NewRenderer loads GL, compiles every pass and allocates the buffer set
// at width x height. The GL context must be current.
func NewRenderer(opts Options, width, height int, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("opengl ready",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	r := &Renderer{
		log:           log,
		debug:         opts.Debug,
		env:           opts.Environment,
		buffers:       pipeline.NewBufferSet(glDevice{}),
		meshes:        newMeshCache(),
		exposureState: pipeline.NewExposureState(opts.InitialExp, opts.Exposure),
	}
	if err := r.init(opts, width, height); err != nil {
		r.Destroy()
		return nil, err
	}
	return r, nil
}

func (r *Renderer) init(opts Options, width, height int) error {
	gl.GenVertexArrays(1, &r.quadVAO)

	var err error
	if r.geometry, err = newGeometryPass(); err != nil {
		return err
	}
	if r.ssao, err = newSSAOStage(opts.SSAO); err != nil {
		return err
	}
	if r.lighting, err = newLightingPass(); err != nil {
		return err
	}
	if r.volumes, err = newLightVolumePass(); err != nil {
		return err
	}
	if r.forward, err = newForwardPass(); err != nil {
		return err
	}
	if r.markers, err = newMarkerPass(); err != nil {
		return err
	}
	if r.exposure, err = newExposureStage(r.exposureState); err != nil {
		return err
	}
	if r.text, err = newTextOverlay(); err != nil {
		return err
	}
	if err := r.buffers.Create(width, height); err != nil {
		return err
	}
	applyState(pipeline.DefaultState)
	r.check("init")
	return nil
}

// Render draws one frame into the default framebuffer, running the passes
// f.Plan selects in order. Lights and objects outside the view are skipped.
func (r *Renderer) Render(f pipeline.Frame) {
	if !r.buffers.Created() {
		return
	}
	f = r.culler.Cull(f)
	for _, pass := range f.Plan.Passes() {
		switch pass {
		case pipeline.PassGeometry:
			r.geometry.run(r.buffers, &f, r.meshes)
		case pipeline.PassSSAO:
			r.ssao.run(r.buffers, &f, r.quadVAO)
		case pipeline.PassLighting:
			r.lighting.run(r.buffers, &f, r.env, r.quadVAO)
		case pipeline.PassLightVolumes:
			r.volumes.run(r.buffers, &f, r.meshes)
		case pipeline.PassForward:
			r.forward.run(r.buffers, &f, r.env, r.meshes)
		case pipeline.PassMarkers:
			r.markers.run(r.buffers, &f)
		case pipeline.PassExposure:
			r.exposure.run(r.buffers, r.quadVAO)
		}
		r.check(pass.String())
	}
}

// Resize rebuilds the buffer set. Handles from the old set are invalid
// afterwards and the next frame skips the luminance read.
func (r *Renderer) Resize(width, height int) error {
	if err := r.buffers.Resize(width, height); err != nil {
		return err
	}
	r.log.Debug("buffers resized", zap.Int("width", width), zap.Int("height", height))
	return nil
}

// Exposure is the exposure the last frame was tone-mapped with.
func (r *Renderer) Exposure() float32 {
	return r.exposureState.Exposure
}

// Luminance is the average luminance read back by the last frame.
func (r *Renderer) Luminance() float32 {
	return r.exposure.LastLuminance
}

// DrawText blends lines over the default framebuffer with the top-left
// corner at pixel (x, y). Call after Render.
func (r *Renderer) DrawText(lines []string, x, y int, color core.Color) {
	r.text.draw(lines, x, y, r.buffers.Width, r.buffers.Height, color, r.quadVAO)
	r.check("text")
}

// Screenshot writes the current back buffer to a PNG under dir.
func (r *Renderer) Screenshot(dir string) (string, error) {
	img := captureFramebuffer(r.buffers.Width, r.buffers.Height)
	return writeScreenshot(img, dir)
}

func (r *Renderer) check(stage string) {
	if r.debug {
		drainErrors(r.log, stage)
	}
}

// Destroy releases all GPU resources. Safe on a partially built renderer.
func (r *Renderer) Destroy() {
	if r.geometry != nil {
		r.geometry.destroy()
	}
	if r.ssao != nil {
		r.ssao.destroy()
	}
	if r.lighting != nil {
		r.lighting.destroy()
	}
	if r.volumes != nil {
		r.volumes.destroy(r.meshes)
	}
	if r.forward != nil {
		r.forward.destroy()
	}
	if r.markers != nil {
		r.markers.destroy()
	}
	if r.exposure != nil {
		r.exposure.destroy()
	}
	if r.text != nil {
		r.text.destroy()
	}
	r.meshes.destroy()
	r.buffers.Destroy()
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
		r.quadVAO = 0
	}
}
