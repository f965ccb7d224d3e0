package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"deferred-engine/pipeline"
	"deferred-engine/scene"
)

// lightVolumePass adds every point light to the lighting buffer by drawing
// its bounding sphere twice: once into the stencil, once additively. The
// sequence itself lives in pipeline.RunVolumes.
type lightVolumePass struct {
	markProg  *program
	shadeProg *program
	sphere    *scene.Mesh

	markMVPLoc int32

	shadeMVPLoc   int32
	screenSizeLoc int32
	viewPosLoc    int32
	lightPosLoc   int32
	lightColorLoc int32
	radiusLoc     int32
	atten         attenuationLocs
}

func newLightVolumePass() (*lightVolumePass, error) {
	markProg, err := newNamedProgram("light volume mark", volumeVertSrc, emptyFragSrc)
	if err != nil {
		return nil, err
	}
	shadeProg, err := newNamedProgram("light volume shade", volumeVertSrc, volumeFragSrc)
	if err != nil {
		markProg.delete()
		return nil, err
	}
	p := &lightVolumePass{
		markProg:      markProg,
		shadeProg:     shadeProg,
		sphere:        scene.CreateVolumeSphere(16, 12),
		markMVPLoc:    markProg.required("mvp"),
		shadeMVPLoc:   shadeProg.required("mvp"),
		screenSizeLoc: shadeProg.required("screenSize"),
		viewPosLoc:    shadeProg.required("viewPos"),
		lightPosLoc:   shadeProg.required("lightPos"),
		lightColorLoc: shadeProg.required("lightColor"),
		radiusLoc:     shadeProg.required("lightRadius"),
		atten:         resolveAttenuation(shadeProg),
	}
	samplers := []int32{
		shadeProg.required("gPosition"),
		shadeProg.required("gNormal"),
		shadeProg.required("gAlbedoSpec"),
	}
	for _, prog := range []*program{markProg, shadeProg} {
		if err := prog.check(); err != nil {
			p.destroy(nil)
			return nil, err
		}
	}
	shadeProg.use()
	for unit, loc := range samplers {
		gl.Uniform1i(loc, int32(unit))
	}
	return p, nil
}

// run draws into the lighting framebuffer bound by the lighting pass.
func (p *lightVolumePass) run(b *pipeline.BufferSet, f *pipeline.Frame, meshes *meshCache) {
	if len(f.Lights) == 0 {
		return
	}
	p.shadeProg.use()
	gl.Uniform2f(p.screenSizeLoc, float32(b.Width), float32(b.Height))
	setVec3(p.viewPosLoc, f.CameraPos)
	p.atten.set(f.Attenuation)
	bindTextures(b.GPosition, b.GNormal, b.GAlbedoSpec)

	pipeline.RunVolumes(&glVolumeTarget{
		pass:     p,
		meshes:   meshes,
		lights:   f.Lights,
		viewProj: f.Proj.Mul4(f.View),
	}, len(f.Lights))
}

func (p *lightVolumePass) destroy(meshes *meshCache) {
	p.markProg.delete()
	p.shadeProg.delete()
	if meshes != nil {
		meshes.release(p.sphere)
	}
}

// glVolumeTarget is the lighting framebuffer seen through
// pipeline.VolumeTarget for one frame.
type glVolumeTarget struct {
	pass     *lightVolumePass
	meshes   *meshCache
	lights   []scene.Light
	viewProj mgl32.Mat4
}

func (t *glVolumeTarget) ClearStencil() {
	gl.StencilMask(0xff)
	gl.ClearStencil(0)
	gl.Clear(gl.STENCIL_BUFFER_BIT)
}

func (t *glVolumeTarget) Apply(s pipeline.PassState) {
	applyState(s)
}

func (t *glVolumeTarget) DrawVolume(i int, sub pipeline.Subpass) {
	l := &t.lights[i]
	mvp := t.viewProj.Mul4(l.VolumeTransform)
	p := t.pass

	if sub == pipeline.SubpassMark {
		p.markProg.use()
		setMat4(p.markMVPLoc, mvp)
	} else {
		p.shadeProg.use()
		setMat4(p.shadeMVPLoc, mvp)
		setVec3(p.lightPosLoc, l.Position)
		setVec3(p.lightColorLoc, l.Color)
		gl.Uniform1f(p.radiusLoc, l.Radius)
	}
	t.meshes.draw(p.sphere)
}
