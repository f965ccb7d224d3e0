package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"deferred-engine/pipeline"
)

// exposureStage adapts the exposure from the lighting buffer's average
// color and tone-maps it to the default framebuffer.
type exposureStage struct {
	prog        *program
	exposureLoc int32

	state *pipeline.ExposureState
	pixel [4]float32

	// LastLuminance is the most recent read-back, for the HUD.
	LastLuminance float32
}

func newExposureStage(state *pipeline.ExposureState) (*exposureStage, error) {
	prog, err := newNamedProgram("tonemap", fullscreenVertSrc, tonemapFragSrc)
	if err != nil {
		return nil, err
	}
	s := &exposureStage{
		prog:        prog,
		exposureLoc: prog.required("exposure"),
		state:       state,
	}
	hdrLoc := prog.required("hdrTex")
	if err := prog.check(); err != nil {
		prog.delete()
		return nil, err
	}
	prog.use()
	gl.Uniform1i(hdrLoc, 0)
	return s, nil
}

// run reads the 1x1 mip left by the previous frame, adapts, then rebuilds
// the mips from this frame's image. The read is the one blocking GPU sync
// of the frame and is always one frame stale.
func (s *exposureStage) run(b *pipeline.BufferSet, quadVAO uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, uint32(b.LightingColor))

	if b.MipsValid {
		gl.GetTexImage(gl.TEXTURE_2D, int32(b.LightingLevels-1), gl.RGBA, gl.FLOAT, gl.Ptr(&s.pixel[0]))
		s.LastLuminance = pipeline.Luminance(mgl32.Vec3{s.pixel[0], s.pixel[1], s.pixel[2]})
		s.state.Adapt(s.LastLuminance)
	}
	gl.GenerateMipmap(gl.TEXTURE_2D)
	b.MipsValid = true

	gl.Viewport(0, 0, int32(b.Width), int32(b.Height))
	applyState(pipeline.ToneMapState)

	s.prog.use()
	gl.Uniform1f(s.exposureLoc, s.state.Exposure)
	gl.BindVertexArray(quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
}

func (s *exposureStage) destroy() {
	s.prog.delete()
}
