package opengl

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"deferred-engine/core"
	"deferred-engine/pipeline"
)

const textPadding = 4

// textOverlay rasterizes a block of text with the built-in 7x13 bitmap face
// and blends it over the default framebuffer. The texture is only rebuilt
// when the text changes.
type textOverlay struct {
	prog    *program
	rectLoc int32
	tintLoc int32

	tex        uint32
	texW, texH int
	last       string
	face       font.Face
}

func newTextOverlay() (*textOverlay, error) {
	prog, err := newNamedProgram("overlay", overlayVertSrc, overlayFragSrc)
	if err != nil {
		return nil, err
	}
	t := &textOverlay{
		prog:    prog,
		rectLoc: prog.required("rect"),
		tintLoc: prog.required("tint"),
		face:    basicfont.Face7x13,
	}
	texLoc := prog.required("textTex")
	if err := prog.check(); err != nil {
		prog.delete()
		return nil, err
	}
	prog.use()
	gl.Uniform1i(texLoc, 0)

	gl.GenTextures(1, &t.tex)
	gl.BindTexture(gl.TEXTURE_2D, t.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

// rasterize draws lines white on a translucent black panel.
func (t *textOverlay) rasterize(lines []string) *image.RGBA {
	metrics := t.face.Metrics()
	lineH := metrics.Height.Ceil()
	width := 0
	for _, l := range lines {
		width = max(width, font.MeasureString(t.face, l).Ceil())
	}
	img := image.NewRGBA(image.Rect(0, 0, width+2*textPadding, len(lines)*lineH+2*textPadding))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{0, 0, 0, 140}), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: t.face,
	}
	for i, l := range lines {
		d.Dot = fixed.P(textPadding, textPadding+i*lineH+metrics.Ascent.Ceil())
		d.DrawString(l)
	}
	return img
}

// overlayRect is the clip-space rectangle (left, bottom, width, height) of a
// texW x texH block whose top-left corner sits at pixel (x, y).
func overlayRect(x, y, texW, texH, screenW, screenH int) [4]float32 {
	sw, sh := float32(screenW), float32(screenH)
	return [4]float32{
		-1 + 2*float32(x)/sw,
		1 - 2*float32(y+texH)/sh,
		2 * float32(texW) / sw,
		2 * float32(texH) / sh,
	}
}

// draw places the block with its top-left corner at pixel (x, y) of a
// screenW x screenH framebuffer. vao is an empty VAO for the gl_VertexID
// quad; core profiles reject draws with none bound.
func (t *textOverlay) draw(lines []string, x, y, screenW, screenH int, tint core.Color, vao uint32) {
	if len(lines) == 0 || screenW <= 0 || screenH <= 0 {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, t.tex)
	if text := strings.Join(lines, "\n"); text != t.last {
		img := t.rasterize(lines)
		t.texW, t.texH = img.Rect.Dx(), img.Rect.Dy()
		gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(t.texW), int32(t.texH), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		t.last = text
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(screenW), int32(screenH))
	applyState(pipeline.OverlayState)

	rect := overlayRect(x, y, t.texW, t.texH, screenW, screenH)
	t.prog.use()
	gl.Uniform4f(t.rectLoc, rect[0], rect[1], rect[2], rect[3])
	gl.Uniform4f(t.tintLoc, tint.R, tint.G, tint.B, tint.A)
	gl.BindVertexArray(vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

func (t *textOverlay) destroy() {
	t.prog.delete()
	if t.tex != 0 {
		gl.DeleteTextures(1, &t.tex)
		t.tex = 0
	}
}
