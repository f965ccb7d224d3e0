package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const maxPitch = 89.9

// Camera is a yaw/pitch fly camera. Yaw 0 looks down -Z; positive pitch
// looks down.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32 // degrees
	Pitch    float32 // degrees

	FOV  float32 // vertical, degrees
	Near float32
	Far  float32
}

func NewCamera(position mgl32.Vec3, yaw, pitch float32) *Camera {
	c := &Camera{
		Position: position,
		Yaw:      yaw,
		FOV:      60,
		Near:     0.1,
		Far:      1000,
	}
	c.SetPitch(pitch)
	return c
}

func (c *Camera) SetPitch(pitch float32) {
	c.Pitch = mgl32.Clamp(pitch, -maxPitch, maxPitch)
}

// Rotate applies a mouse delta in degrees.
func (c *Camera) Rotate(dYaw, dPitch float32) {
	c.Yaw = float32(math.Mod(float64(c.Yaw+dYaw), 360))
	c.SetPitch(c.Pitch + dPitch)
}

func (c *Camera) Front() mgl32.Vec3 {
	y := float64(mgl32.DegToRad(c.Yaw))
	p := float64(mgl32.DegToRad(c.Pitch))
	return mgl32.Vec3{
		float32(math.Cos(p) * math.Sin(y)),
		float32(-math.Sin(p)),
		float32(-math.Cos(p) * math.Cos(y)),
	}
}

func (c *Camera) Right() mgl32.Vec3 {
	return c.Front().Cross(mgl32.Vec3{0, 1, 0}).Normalize()
}

// Move translates along the view axes. forward and right are in units.
func (c *Camera) Move(forward, right, up float32) {
	c.Position = c.Position.
		Add(c.Front().Mul(forward)).
		Add(c.Right().Mul(right)).
		Add(mgl32.Vec3{0, up, 0})
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

// Projection builds the perspective matrix for the given aspect ratio.
func (c *Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}
