package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"deferred-engine/pipeline"
)

// markerFloats is the per-instance layout: position xyz, size, color rgb.
const markerFloats = 7

// markerPass draws one camera-facing disc per light in a single instanced
// call. Instance i is light i.
type markerPass struct {
	prog *program

	viewLoc       int32
	projLoc       int32
	brightnessLoc int32

	vao         uint32
	cornerVBO   uint32
	instanceVBO uint32
	instanceCap int
	buf         []float32

	Brightness float32
}

func newMarkerPass() (*markerPass, error) {
	prog, err := newNamedProgram("markers", markerVertSrc, markerFragSrc)
	if err != nil {
		return nil, err
	}
	p := &markerPass{
		prog:          prog,
		viewLoc:       prog.required("view"),
		projLoc:       prog.required("proj"),
		brightnessLoc: prog.required("brightness"),
		Brightness:    4,
	}
	if err := prog.check(); err != nil {
		prog.delete()
		return nil, err
	}

	corners := []float32{-1, -1, 1, -1, -1, 1, 1, 1}
	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)

	gl.GenBuffers(1, &p.cornerVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.cornerVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(corners)*4, gl.Ptr(corners), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))

	const stride = int32(markerFloats * 4)
	gl.GenBuffers(1, &p.instanceVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.instanceVBO)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.VertexAttribDivisor(3, 1)
	gl.EnableVertexAttribArray(4)
	gl.VertexAttribPointer(4, 1, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.VertexAttribDivisor(4, 1)
	gl.EnableVertexAttribArray(5)
	gl.VertexAttribPointer(5, 3, gl.FLOAT, false, stride, gl.PtrOffset(4*4))
	gl.VertexAttribDivisor(5, 1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return p, nil
}

// upload rewrites the instance buffer from the current lights, growing it
// when the population outgrows it.
func (p *markerPass) upload(f *pipeline.Frame) {
	n := len(f.Lights)
	p.buf = p.buf[:0]
	for i := range f.Lights {
		l := &f.Lights[i]
		p.buf = append(p.buf,
			l.Position[0], l.Position[1], l.Position[2],
			l.MarkerSize(),
			l.Color[0], l.Color[1], l.Color[2])
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, p.instanceVBO)
	if n > p.instanceCap {
		gl.BufferData(gl.ARRAY_BUFFER, len(p.buf)*4, gl.Ptr(p.buf), gl.DYNAMIC_DRAW)
		p.instanceCap = n
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(p.buf)*4, gl.Ptr(p.buf))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// run draws into the lighting framebuffer, depth tested against the scene.
func (p *markerPass) run(b *pipeline.BufferSet, f *pipeline.Frame) {
	if len(f.Lights) == 0 {
		return
	}
	p.upload(f)

	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(b.Lighting))
	gl.Viewport(0, 0, int32(b.Width), int32(b.Height))
	applyState(pipeline.MarkerState)

	p.prog.use()
	setMat4(p.viewLoc, f.View)
	setMat4(p.projLoc, f.Proj)
	gl.Uniform1f(p.brightnessLoc, p.Brightness)

	gl.BindVertexArray(p.vao)
	gl.DrawArraysInstanced(gl.TRIANGLE_STRIP, 0, 4, int32(len(f.Lights)))
	gl.BindVertexArray(0)
}

func (p *markerPass) destroy() {
	p.prog.delete()
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
		p.vao = 0
	}
	if p.cornerVBO != 0 {
		gl.DeleteBuffers(1, &p.cornerVBO)
		p.cornerVBO = 0
	}
	if p.instanceVBO != 0 {
		gl.DeleteBuffers(1, &p.instanceVBO)
		p.instanceVBO = 0
	}
}
