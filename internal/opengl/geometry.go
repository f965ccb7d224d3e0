package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"deferred-engine/pipeline"
)

// geometryPass writes position, normal and albedo+specular of every opaque
// mesh into the G-buffer.
type geometryPass struct {
	prog *program

	modelLoc    int32
	viewLoc     int32
	projLoc     int32
	albedoLoc   int32
	specularLoc int32
}

func newGeometryPass() (*geometryPass, error) {
	prog, err := newNamedProgram("geometry", meshVertSrc, geometryFragSrc)
	if err != nil {
		return nil, err
	}
	p := &geometryPass{
		prog:        prog,
		modelLoc:    prog.required("model"),
		viewLoc:     prog.required("view"),
		projLoc:     prog.required("proj"),
		albedoLoc:   prog.required("albedo"),
		specularLoc: prog.required("specular"),
	}
	if err := prog.check(); err != nil {
		prog.delete()
		return nil, err
	}
	return p, nil
}

func (p *geometryPass) run(b *pipeline.BufferSet, f *pipeline.Frame, meshes *meshCache) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(b.GBuffer))
	gl.Viewport(0, 0, int32(b.Width), int32(b.Height))

	// state first: the clear honours the depth and stencil write masks
	applyState(pipeline.GeometryState)
	gl.ClearColor(0, 0, 0, 0)
	gl.ClearDepth(1)
	gl.ClearStencil(0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)

	p.prog.use()
	setMat4(p.viewLoc, f.View)
	setMat4(p.projLoc, f.Proj)
	for _, obj := range f.Objects {
		setMat4(p.modelLoc, obj.World)
		setVec3(p.albedoLoc, obj.Albedo)
		gl.Uniform1f(p.specularLoc, obj.Specular)
		meshes.draw(obj.Mesh)
	}
}

func (p *geometryPass) destroy() {
	p.prog.delete()
}
