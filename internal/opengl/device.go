package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"deferred-engine/pipeline"
)

// glDevice allocates pipeline render targets as GL textures and
// framebuffer objects.
type glDevice struct{}

var _ pipeline.Device = glDevice{}

type texFormat struct {
	internal int32
	format   uint32
	xtype    uint32
}

var texFormats = map[pipeline.TextureFormat]texFormat{
	pipeline.FormatRGBA32F:         {gl.RGBA32F, gl.RGBA, gl.FLOAT},
	pipeline.FormatRGBA16F:         {gl.RGBA16F, gl.RGBA, gl.FLOAT},
	pipeline.FormatRGBA8:           {gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE},
	pipeline.FormatR16F:            {gl.R16F, gl.RED, gl.FLOAT},
	pipeline.FormatDepth24Stencil8: {gl.DEPTH24_STENCIL8, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8},
}

func (glDevice) CreateTexture(desc pipeline.TextureDesc) (pipeline.Handle, error) {
	f, ok := texFormats[desc.Format]
	if !ok {
		return 0, fmt.Errorf("unsupported format %v", desc.Format)
	}
	levels := max(desc.Levels, 1)

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	w, h := int32(desc.Width), int32(desc.Height)
	for level := int32(0); level < int32(levels); level++ {
		gl.TexImage2D(gl.TEXTURE_2D, level, f.internal, w, h, 0, f.format, f.xtype, nil)
		w, h = max(w/2, 1), max(h/2, 1)
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_BASE_LEVEL, 0)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, int32(levels-1))
	if levels > 1 {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return pipeline.Handle(tex), nil
}

func (glDevice) DeleteTexture(h pipeline.Handle) {
	tex := uint32(h)
	gl.DeleteTextures(1, &tex)
}

func (glDevice) CreateFramebuffer(desc pipeline.FramebufferDesc) (pipeline.Handle, error) {
	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)

	drawBuffers := make([]uint32, len(desc.Color))
	for i, h := range desc.Color {
		attachment := uint32(gl.COLOR_ATTACHMENT0 + i)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachment, gl.TEXTURE_2D, uint32(h), 0)
		drawBuffers[i] = attachment
	}
	if len(drawBuffers) > 0 {
		gl.DrawBuffers(int32(len(drawBuffers)), &drawBuffers[0])
	} else {
		gl.DrawBuffer(gl.NONE)
	}
	if desc.DepthStencil != 0 {
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT,
			gl.TEXTURE_2D, uint32(desc.DepthStencil), 0)
	}

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		gl.DeleteFramebuffers(1, &fbo)
		return 0, fmt.Errorf("status 0x%X: %w", status, pipeline.ErrIncompleteFramebuffer)
	}
	return pipeline.Handle(fbo), nil
}

func (glDevice) DeleteFramebuffer(h pipeline.Handle) {
	fbo := uint32(h)
	gl.DeleteFramebuffers(1, &fbo)
}
