package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"deferred-engine/pipeline"
	"deferred-engine/scene"
)

// meshLocs are the transform and surface uniforms of a program built on
// meshVertSrc.
type meshLocs struct {
	model, view, proj int32
	albedo, specular  int32
}

func resolveMeshLocs(p *program, surface bool) meshLocs {
	l := meshLocs{
		model:    p.required("model"),
		view:     p.required("view"),
		proj:     p.required("proj"),
		albedo:   -1,
		specular: -1,
	}
	if surface {
		l.albedo = p.required("albedo")
		l.specular = p.required("specular")
	}
	return l
}

func (l meshLocs) setCamera(f *pipeline.Frame) {
	setMat4(l.view, f.View)
	setMat4(l.proj, f.Proj)
}

func (l meshLocs) setObject(obj *scene.Object) {
	setMat4(l.model, obj.World)
	setVec3(l.albedo, obj.Albedo)
	gl.Uniform1f(l.specular, obj.Specular)
}

// forwardPass shades the scene without a G-buffer: a depth pre-pass, one
// ambient+sun pass, then one additive pass per light. It renders into the
// lighting buffer so markers and exposure work the same in both modes.
type forwardPass struct {
	depthProg *program
	baseProg  *program
	lightProg *program

	depth meshLocs
	base  meshLocs
	light meshLocs

	baseAmbientLoc  int32
	baseSunDirLoc   int32
	baseSunColorLoc int32
	baseViewPosLoc  int32

	lightViewPosLoc int32
	lightPosLoc     int32
	lightColorLoc   int32
	lightRadiusLoc  int32
	atten           attenuationLocs
}

func newForwardPass() (*forwardPass, error) {
	p := &forwardPass{}
	var err error
	if p.depthProg, err = newNamedProgram("forward depth", meshVertSrc, emptyFragSrc); err != nil {
		return nil, err
	}
	if p.baseProg, err = newNamedProgram("forward base", meshVertSrc, forwardBaseFragSrc); err != nil {
		p.destroy()
		return nil, err
	}
	if p.lightProg, err = newNamedProgram("forward light", meshVertSrc, forwardLightFragSrc); err != nil {
		p.destroy()
		return nil, err
	}

	p.depth = resolveMeshLocs(p.depthProg, false)
	p.base = resolveMeshLocs(p.baseProg, true)
	p.light = resolveMeshLocs(p.lightProg, true)

	p.baseAmbientLoc = p.baseProg.required("ambient")
	p.baseSunDirLoc = p.baseProg.required("sunDir")
	p.baseSunColorLoc = p.baseProg.required("sunColor")
	p.baseViewPosLoc = p.baseProg.required("viewPos")

	p.lightViewPosLoc = p.lightProg.required("viewPos")
	p.lightPosLoc = p.lightProg.required("lightPos")
	p.lightColorLoc = p.lightProg.required("lightColor")
	p.lightRadiusLoc = p.lightProg.required("lightRadius")
	p.atten = resolveAttenuation(p.lightProg)

	for _, prog := range []*program{p.depthProg, p.baseProg, p.lightProg} {
		if err := prog.check(); err != nil {
			p.destroy()
			return nil, err
		}
	}
	return p, nil
}

func (p *forwardPass) run(b *pipeline.BufferSet, f *pipeline.Frame, env pipeline.Environment, meshes *meshCache) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(b.Lighting))
	gl.Viewport(0, 0, int32(b.Width), int32(b.Height))

	// ── Depth pre-pass ────────────────────────────────────────────────────────
	applyState(pipeline.ForwardDepthState)
	gl.ClearColor(env.Clear[0], env.Clear[1], env.Clear[2], 1)
	gl.ClearDepth(1)
	gl.ClearStencil(0)
	gl.ColorMask(true, true, true, true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
	gl.ColorMask(false, false, false, false)

	p.depthProg.use()
	p.depth.setCamera(f)
	for i := range f.Objects {
		setMat4(p.depth.model, f.Objects[i].World)
		meshes.draw(f.Objects[i].Mesh)
	}

	// ── Base ──────────────────────────────────────────────────────────────────
	applyState(pipeline.ForwardBaseState)
	p.baseProg.use()
	p.base.setCamera(f)
	setVec3(p.baseAmbientLoc, env.Ambient)
	setVec3(p.baseSunDirLoc, env.SunDir)
	setVec3(p.baseSunColorLoc, env.SunColor)
	setVec3(p.baseViewPosLoc, f.CameraPos)
	for i := range f.Objects {
		p.base.setObject(&f.Objects[i])
		meshes.draw(f.Objects[i].Mesh)
	}

	// ── One additive pass per light ───────────────────────────────────────────
	if len(f.Lights) == 0 {
		return
	}
	applyState(pipeline.ForwardLightState)
	p.lightProg.use()
	p.light.setCamera(f)
	setVec3(p.lightViewPosLoc, f.CameraPos)
	p.atten.set(f.Attenuation)
	for li := range f.Lights {
		l := &f.Lights[li]
		setVec3(p.lightPosLoc, l.Position)
		setVec3(p.lightColorLoc, l.Color)
		gl.Uniform1f(p.lightRadiusLoc, l.Radius)
		for i := range f.Objects {
			p.light.setObject(&f.Objects[i])
			meshes.draw(f.Objects[i].Mesh)
		}
	}
}

func (p *forwardPass) destroy() {
	p.depthProg.delete()
	p.baseProg.delete()
	p.lightProg.delete()
}
