package opengl

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

func TestOverlayRect(t *testing.T) {
	// a 100x50 block at the top-left corner of an 800x600 screen
	r := overlayRect(0, 0, 100, 50, 800, 600)
	assert.InDelta(t, -1, r[0], 1e-6)
	assert.InDelta(t, 1-2*50.0/600, r[1], 1e-6)
	assert.InDelta(t, 0.25, r[2], 1e-6)
	assert.InDelta(t, 2*50.0/600, r[3], 1e-6)

	// the block's top edge stays at pixel row y
	r = overlayRect(10, 20, 40, 30, 200, 100)
	assert.InDelta(t, -0.9, r[0], 1e-6)
	assert.InDelta(t, 1-2*20.0/100, r[1]+r[3], 1e-6)
}

func TestTextRasterize(t *testing.T) {
	o := &textOverlay{face: basicfont.Face7x13}
	img := o.rasterize([]string{"fps: 60", "lights: 20000"})

	// 13 characters of 7 pixels, two 13 pixel lines, padding on both sides
	assert.Equal(t, 13*7+2*textPadding, img.Rect.Dx())
	assert.Equal(t, 2*13+2*textPadding, img.Rect.Dy())

	assert.Equal(t, color.RGBA{0, 0, 0, 140}, img.RGBAAt(0, 0), "panel background")
	lit := 0
	for i := 0; i+3 < len(img.Pix); i += 4 {
		if img.Pix[i] == 0xff {
			lit++
		}
	}
	require.Positive(t, lit, "glyphs are drawn in white")
}
