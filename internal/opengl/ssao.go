package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"deferred-engine/pipeline"
)

// ssaoStage estimates ambient occlusion from the G-buffer into SSAORaw and
// box-blurs it into SSAOBlur, which the lighting pass multiplies into the
// ambient term.
type ssaoStage struct {
	ssaoProg *program
	blurProg *program

	viewLoc       int32
	projLoc       int32
	radiusLoc     int32
	biasLoc       int32
	noiseScaleLoc int32

	noiseTex uint32

	Radius float32
	Bias   float32
}

// SSAOOptions configure the occlusion estimate.
type SSAOOptions struct {
	KernelSize int
	KernelSeed int64
	NoiseSeed  int64
	Radius     float32
	Bias       float32
}

func newSSAOStage(opts SSAOOptions) (*ssaoStage, error) {
	if opts.KernelSize <= 0 || opts.KernelSize > 64 {
		return nil, fmt.Errorf("ssao kernel size %d out of range", opts.KernelSize)
	}
	ssaoProg, err := newNamedProgram("ssao", fullscreenVertSrc, ssaoFragSrc)
	if err != nil {
		return nil, err
	}
	blurProg, err := newNamedProgram("ssao blur", fullscreenVertSrc, ssaoBlurFragSrc)
	if err != nil {
		ssaoProg.delete()
		return nil, err
	}

	s := &ssaoStage{
		ssaoProg:      ssaoProg,
		blurProg:      blurProg,
		viewLoc:       ssaoProg.required("view"),
		projLoc:       ssaoProg.required("proj"),
		radiusLoc:     ssaoProg.required("radius"),
		biasLoc:       ssaoProg.required("bias"),
		noiseScaleLoc: ssaoProg.required("noiseScale"),
		Radius:        opts.Radius,
		Bias:          opts.Bias,
	}
	kernelLoc := ssaoProg.required("kernel")
	kernelSizeLoc := ssaoProg.required("kernelSize")
	gPosLoc := ssaoProg.required("gPosition")
	gNormLoc := ssaoProg.required("gNormal")
	noiseLoc := ssaoProg.required("noiseTex")
	srcLoc := blurProg.required("ssaoTex")
	for _, p := range []*program{ssaoProg, blurProg} {
		if err := p.check(); err != nil {
			s.destroy()
			return nil, err
		}
	}

	kernel := pipeline.GenerateKernel(opts.KernelSize, opts.KernelSeed)
	ssaoProg.use()
	gl.Uniform1i(gPosLoc, 0)
	gl.Uniform1i(gNormLoc, 1)
	gl.Uniform1i(noiseLoc, 2)
	gl.Uniform3fv(kernelLoc, int32(len(kernel)), &kernel[0][0])
	gl.Uniform1i(kernelSizeLoc, int32(len(kernel)))

	blurProg.use()
	gl.Uniform1i(srcLoc, 0)

	s.uploadNoise(pipeline.GenerateNoise(opts.NoiseSeed))
	return s, nil
}

// uploadNoise stores the rotation vectors in a tiling RGB32F texture.
func (s *ssaoStage) uploadNoise(noise []mgl32.Vec3) {
	gl.GenTextures(1, &s.noiseTex)
	gl.BindTexture(gl.TEXTURE_2D, s.noiseTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB32F, pipeline.NoiseSize, pipeline.NoiseSize, 0,
		gl.RGB, gl.FLOAT, gl.Ptr(&noise[0][0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// run draws both passes with the full-screen cover state, so background
// pixels keep the cleared "no occlusion" value.
func (s *ssaoStage) run(b *pipeline.BufferSet, f *pipeline.Frame, quadVAO uint32) {
	gl.Viewport(0, 0, int32(b.Width), int32(b.Height))
	applyState(pipeline.FullscreenCoverState)
	gl.BindVertexArray(quadVAO)
	gl.ClearColor(1, 1, 1, 1)

	// ── Estimate ──────────────────────────────────────────────────────────────
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(b.SSAORawFBO))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	s.ssaoProg.use()
	setMat4(s.viewLoc, f.View)
	setMat4(s.projLoc, f.Proj)
	gl.Uniform1f(s.radiusLoc, s.Radius)
	gl.Uniform1f(s.biasLoc, s.Bias)
	gl.Uniform2f(s.noiseScaleLoc,
		float32(b.Width)/pipeline.NoiseSize,
		float32(b.Height)/pipeline.NoiseSize)
	bindTextures(b.GPosition, b.GNormal, pipeline.Handle(s.noiseTex))
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	// ── Blur ──────────────────────────────────────────────────────────────────
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(b.SSAOBlurFBO))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	s.blurProg.use()
	bindTextures(b.SSAORaw)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	gl.BindVertexArray(0)
}

func (s *ssaoStage) destroy() {
	s.ssaoProg.delete()
	s.blurProg.delete()
	if s.noiseTex != 0 {
		gl.DeleteTextures(1, &s.noiseTex)
		s.noiseTex = 0
	}
}

// bindTextures binds texs to units 0..n in order.
func bindTextures(texs ...pipeline.Handle) {
	for i, t := range texs {
		gl.ActiveTexture(uint32(gl.TEXTURE0 + i))
		gl.BindTexture(gl.TEXTURE_2D, uint32(t))
	}
	gl.ActiveTexture(gl.TEXTURE0)
}
