package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
	// ColorSky is the clear color of the lighting buffer.
	ColorSky = Color{0.2, 0.3, 0.4, 1}
)

func (c Color) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{c.R, c.G, c.B}
}

// Vertex is the interleaved layout uploaded to every mesh VBO:
// position (loc 0), texcoord (loc 1), normal (loc 2).
type Vertex struct {
	Position mgl32.Vec3
	UV       mgl32.Vec2
	Normal   mgl32.Vec3
}

// Viewport is the pixel size of the output surface.
type Viewport struct {
	Width, Height int
}

// Empty reports whether the surface has no area (e.g. a minimized window).
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

func (v Viewport) Aspect() float32 {
	if v.Height <= 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}
