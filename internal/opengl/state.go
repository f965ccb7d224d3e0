package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"deferred-engine/pipeline"
)

var compareFuncs = [...]uint32{
	pipeline.CompareNever:        gl.NEVER,
	pipeline.CompareLess:         gl.LESS,
	pipeline.CompareLessEqual:    gl.LEQUAL,
	pipeline.CompareEqual:        gl.EQUAL,
	pipeline.CompareGreater:      gl.GREATER,
	pipeline.CompareGreaterEqual: gl.GEQUAL,
	pipeline.CompareNotEqual:     gl.NOTEQUAL,
	pipeline.CompareAlways:       gl.ALWAYS,
}

var stencilOps = [...]uint32{
	pipeline.StencilKeep:    gl.KEEP,
	pipeline.StencilZero:    gl.ZERO,
	pipeline.StencilReplace: gl.REPLACE,
	pipeline.StencilIncr:    gl.INCR,
	pipeline.StencilDecr:    gl.DECR,
}

// applyState sets every piece of fixed-function state a PassState names,
// so no pass depends on what the previous one left behind.
func applyState(s pipeline.PassState) {
	if s.Depth.Test {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.DepthFunc(compareFuncs[s.Depth.Func])
	gl.DepthMask(s.Depth.Write)

	st := s.Stencil
	if st.Test {
		gl.Enable(gl.STENCIL_TEST)
	} else {
		gl.Disable(gl.STENCIL_TEST)
	}
	gl.StencilFunc(compareFuncs[st.Func], int32(st.Ref), uint32(st.ReadMask))
	gl.StencilMask(uint32(st.WriteMask))
	gl.StencilOp(stencilOps[st.SFail], stencilOps[st.ZFail], stencilOps[st.ZPass])

	switch s.Cull {
	case pipeline.CullNone:
		gl.Disable(gl.CULL_FACE)
	case pipeline.CullBack:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	case pipeline.CullFront:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	}

	switch s.Blend {
	case pipeline.BlendNone:
		gl.Disable(gl.BLEND)
	case pipeline.BlendAdditive:
		gl.Enable(gl.BLEND)
		gl.BlendEquation(gl.FUNC_ADD)
		gl.BlendFunc(gl.ONE, gl.ONE)
	case pipeline.BlendAlpha:
		gl.Enable(gl.BLEND)
		gl.BlendEquation(gl.FUNC_ADD)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}

	c := s.ColorWrite
	gl.ColorMask(c, c, c, c)
}
