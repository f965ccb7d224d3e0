package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"deferred-engine/pipeline"
	"deferred-engine/scene"
)

// attenuationLocs are the uniforms shadingGLSL declares.
type attenuationLocs struct {
	constant, linear, quadratic int32
}

func resolveAttenuation(p *program) attenuationLocs {
	// optional: programs that never call pointLight lose them
	return attenuationLocs{
		constant:  p.optional("attConstant"),
		linear:    p.optional("attLinear"),
		quadratic: p.optional("attQuadratic"),
	}
}

func (l attenuationLocs) set(a scene.Attenuation) {
	gl.Uniform1f(l.constant, a.Constant)
	gl.Uniform1f(l.linear, a.Linear)
	gl.Uniform1f(l.quadratic, a.Quadratic)
}

// lightingPass resolves the G-buffer into the lighting buffer: ambient
// (scaled by SSAO) plus the sun. Point lights are added afterwards by the
// light volume pass.
type lightingPass struct {
	prog *program

	useSSAOLoc  int32
	ambientLoc  int32
	sunDirLoc   int32
	sunColorLoc int32
	viewPosLoc  int32
}

func newLightingPass() (*lightingPass, error) {
	prog, err := newNamedProgram("lighting", fullscreenVertSrc, lightingFragSrc)
	if err != nil {
		return nil, err
	}
	p := &lightingPass{
		prog:        prog,
		useSSAOLoc:  prog.required("useSSAO"),
		ambientLoc:  prog.required("ambient"),
		sunDirLoc:   prog.required("sunDir"),
		sunColorLoc: prog.required("sunColor"),
		viewPosLoc:  prog.required("viewPos"),
	}
	samplers := []int32{
		prog.required("gPosition"),
		prog.required("gNormal"),
		prog.required("gAlbedoSpec"),
		prog.optional("ssaoTex"),
	}
	if err := prog.check(); err != nil {
		prog.delete()
		return nil, err
	}
	prog.use()
	for unit, loc := range samplers {
		gl.Uniform1i(loc, int32(unit))
	}
	return p, nil
}

// run clears the lighting color to the sky and shades every pixel that has
// geometry. Depth and stencil are shared with the G-buffer and not cleared.
func (p *lightingPass) run(b *pipeline.BufferSet, f *pipeline.Frame, env pipeline.Environment, quadVAO uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(b.Lighting))
	gl.Viewport(0, 0, int32(b.Width), int32(b.Height))
	applyState(pipeline.FullscreenCoverState)
	gl.ClearColor(env.Clear[0], env.Clear[1], env.Clear[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	p.prog.use()
	useSSAO := int32(0)
	if f.Plan.SSAO {
		useSSAO = 1
	}
	gl.Uniform1i(p.useSSAOLoc, useSSAO)
	setVec3(p.ambientLoc, env.Ambient)
	setVec3(p.sunDirLoc, env.SunDir)
	setVec3(p.sunColorLoc, env.SunColor)
	setVec3(p.viewPosLoc, f.CameraPos)
	bindTextures(b.GPosition, b.GNormal, b.GAlbedoSpec, b.SSAOBlur)

	gl.BindVertexArray(quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
}

func (p *lightingPass) destroy() {
	p.prog.delete()
}
